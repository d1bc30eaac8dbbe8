// Package health provides the liveness endpoint used by load balancers and
// the graceful shutdown drain.
package health

import (
	"sync/atomic"

	"github.com/gofiber/fiber/v2"

	"github.com/caraban-app/caraban-api/internal/web/handler"
)

// Path is the path to the health endpoint.
const Path = handler.RootPath + "health"

// Service is the health handler service.
type Service struct {
	alive *atomic.Bool
}

// Handler is the health handler.
var Handler = Service{}

// Init registers the health route. alive is flipped off by the web service
// when shutdown starts so upstreams stop routing new traffic here.
func (s *Service) Init(api fiber.Router, alive *atomic.Bool) {
	s.alive = alive

	api.Get(Path, s.Get)
}

// Get reports whether the service accepts traffic.
func (s *Service) Get(c *fiber.Ctx) error {
	if s.alive != nil && !s.alive.Load() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "draining"})
	}

	return c.JSON(fiber.Map{"status": "ok"})
}
