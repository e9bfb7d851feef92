package bootstrap

import (
	"context"
	"log/slog"
)

// Stopper is anything with a context-bound stop, like server.Server
type Stopper interface {
	Stop(ctx context.Context) error
}

// HubStopper closes the event stream hub
type HubStopper interface {
	Stop()
}

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server Stopper
	Hub    HubStopper
}

// GracefulShutdown closes the event hub first, which ends open streams, so the
// HTTP server is left with only short requests to drain.
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	if components.Hub != nil {
		slog.Info(LogMsgStoppingEventHub)
		components.Hub.Stop()
	}

	slog.Info(LogMsgShuttingDownServer)
	if components.Server != nil {
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	slog.Info(LogMsgServerStopped)
}
