package rest

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	domainImage "github.com/photoframe/photoframe/domains/image"
)

type Image struct {
	Service domainImage.IImageUsecase
}

// InitRestImage mounts GET /image behind gate.
func InitRestImage(app fiber.Router, service domainImage.IImageUsecase, gate fiber.Handler) Image {
	handler := Image{Service: service}
	app.Get("/image", gate, handler.GetRandom)
	return handler
}

func (h *Image) GetRandom(c *fiber.Ctx) error {
	img, err := h.Service.Random(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}

	c.Set(fiber.HeaderContentType, img.ContentType)
	c.Set(fiber.HeaderContentLength, strconv.FormatInt(img.ContentLength, 10))
	c.Set(fiber.HeaderCacheControl, "no-store")
	return c.Status(fiber.StatusOK).Send(img.Data)
}
