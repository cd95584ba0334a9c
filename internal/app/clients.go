package app

import (
	"context"

	redisclient "github.com/brandforge/brandforge-backend/internal/clients/redis"
	"github.com/brandforge/brandforge-backend/internal/logger"
	"github.com/brandforge/brandforge-backend/internal/sse"
)

// wireBus connects the redis event bus when enabled. A missing or
// unreachable redis degrades to in-process SSE only; the bus is optional
// everywhere it is consumed.
func wireBus(cfg Config, log *logger.Logger) redisclient.Bus {
	if !cfg.RedisEnabled {
		log.Info("Redis disabled, dashboard events stay in-process")
		return nil
	}
	bus, err := redisclient.NewBus(log)
	if err != nil {
		log.Warn("Redis unavailable, dashboard events stay in-process", "error", err)
		return nil
	}
	return bus
}

// startForwarder relays bus messages from other instances into the local
// SSE hub.
func startForwarder(ctx context.Context, bus redisclient.Bus, hub *sse.Hub, log *logger.Logger) {
	if bus == nil {
		return
	}
	if err := bus.StartForwarder(ctx, func(m sse.Message) {
		hub.Broadcast(m)
	}); err != nil {
		log.Warn("Redis forwarder failed to start", "error", err)
	}
}
