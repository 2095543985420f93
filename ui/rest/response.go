package rest

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	pkgError "github.com/photoframe/photoframe/pkg/error"
	"github.com/photoframe/photoframe/pkg/utils"
	"github.com/sirupsen/logrus"
)

// respondError renders typed errors with their own status and hides the
// details of everything else behind a 500.
func respondError(c *fiber.Ctx, err error) error {
	var generic pkgError.GenericError
	if errors.As(err, &generic) {
		return c.Status(generic.StatusCode()).JSON(utils.ResponseData{
			Status:  generic.StatusCode(),
			Code:    generic.ErrCode(),
			Message: generic.Error(),
		})
	}

	logrus.WithError(err).WithField("path", c.Path()).Error("[REST] Request failed")
	return c.Status(fiber.StatusInternalServerError).JSON(utils.ResponseData{
		Status:  fiber.StatusInternalServerError,
		Code:    "INTERNAL_SERVER_ERROR",
		Message: "internal server error",
	})
}
