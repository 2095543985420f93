package middleware

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	pkgError "github.com/photoframe/photoframe/pkg/error"
	"github.com/photoframe/photoframe/pkg/utils"
	"github.com/sirupsen/logrus"
)

func Recovery() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		defer func() {
			err := recover()
			if err != nil {
				res := utils.ResponseData{
					Status:  fiber.StatusInternalServerError,
					Code:    "INTERNAL_SERVER_ERROR",
					Message: "internal server error",
				}

				logrus.WithField("path", ctx.Path()).Errorf("[REST] Panic recovered: %v", fmt.Sprint(err))

				if generic, ok := err.(pkgError.GenericError); ok {
					res.Status = generic.StatusCode()
					res.Code = generic.ErrCode()
					res.Message = generic.Error()
				}

				_ = ctx.Status(res.Status).JSON(res)
			}
		}()

		return ctx.Next()
	}
}
