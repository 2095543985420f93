package lambda

import (
	"context"

	domainLiveness "github.com/photoframe/photoframe/domains/liveness"
)

// Presence consumes AWS IoT lifecycle events forwarded by a topic rule.
type Presence struct {
	Service domainLiveness.ILivenessUsecase
}

func NewPresence(service domainLiveness.ILivenessUsecase) *Presence {
	return &Presence{Service: service}
}

func (h *Presence) Handle(ctx context.Context, event domainLiveness.PresenceEvent) (err error) {
	defer shield("presence", &err)
	return h.Service.RecordPresence(ctx, event)
}
