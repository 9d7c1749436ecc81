package nrun

import (
	"log/slog"

	"go.uber.org/fx"
)

// Params are the dependencies of a Tracker constructed through [Module].
type Params struct {
	fx.In

	Log *slog.Logger `optional:"true"`
}

// Module provides a *[Tracker] to an fx application.
func Module() fx.Option {
	return fx.Module("nrun",
		fx.Provide(NewFromParams),
	)
}

// NewFromParams constructs a Tracker from fx-provided dependencies.
func NewFromParams(p Params) *Tracker {
	log := p.Log
	if log == nil {
		log = slog.Default()
	}
	return New(log.With("sys", "running_tracker"))
}
