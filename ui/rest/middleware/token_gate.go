package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	domainAccess "github.com/photoframe/photoframe/domains/access"
	pkgError "github.com/photoframe/photoframe/pkg/error"
	"github.com/photoframe/photoframe/pkg/utils"
	"github.com/sirupsen/logrus"
)

// TokenGate admits a request only when header carries the stored access
// token. It is the self-hosted counterpart of the API Gateway authorizer.
func TokenGate(service domainAccess.IAccessUsecase, header string) fiber.Handler {
	if header == "" {
		header = domainAccess.DefaultTokenHeader
	}
	return func(c *fiber.Ctx) error {
		err := service.Verify(c.UserContext(), c.Get(header))
		if err == nil {
			return c.Next()
		}

		var unauthorized pkgError.UnauthorizedError
		if errors.As(err, &unauthorized) {
			return c.Status(fiber.StatusUnauthorized).JSON(utils.ResponseData{
				Status:  fiber.StatusUnauthorized,
				Code:    unauthorized.ErrCode(),
				Message: unauthorized.Error(),
			})
		}

		logrus.WithError(err).Error("[REST] Token gate could not verify request")
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ResponseData{
			Status:  fiber.StatusInternalServerError,
			Code:    "INTERNAL_SERVER_ERROR",
			Message: "internal server error",
		})
	}
}
