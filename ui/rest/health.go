package rest

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/photoframe/photoframe/core/config"
	"github.com/photoframe/photoframe/pkg/utils"
	"github.com/sirupsen/logrus"
)

const dependencyTimeout = 2 * time.Second

// Dependency is a backing service the health endpoint pings.
type Dependency struct {
	Name string
	Ping func(ctx context.Context) error
}

type Health struct {
	Version      string
	Dependencies []Dependency
}

func InitRestHealth(app fiber.Router, version string, deps ...Dependency) Health {
	handler := Health{Version: version, Dependencies: deps}
	app.Get("/health", handler.GetStatus)
	return handler
}

// GetStatus reports 503 when any dependency fails its ping.
func (h *Health) GetStatus(c *fiber.Ctx) error {
	results := config.GetAllSettings()
	status, code := fiber.StatusOK, "SUCCESS"

	if len(h.Dependencies) > 0 {
		states := make(map[string]string, len(h.Dependencies))
		for _, dep := range h.Dependencies {
			ctx, cancel := context.WithTimeout(c.UserContext(), dependencyTimeout)
			err := dep.Ping(ctx)
			cancel()
			if err != nil {
				logrus.WithError(err).Warnf("[HEALTH] %s unreachable", dep.Name)
				states[dep.Name] = err.Error()
				status, code = fiber.StatusServiceUnavailable, "UNAVAILABLE"
				continue
			}
			states[dep.Name] = "ok"
		}
		results["dependencies"] = states
	}

	return c.Status(status).JSON(utils.ResponseData{
		Status:  status,
		Code:    code,
		Message: "photoframe " + h.Version,
		Results: results,
	})
}
