package nevent

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

// Params are the dependencies of an Aggregator
// constructed through [Module].
type Params struct {
	fx.In

	Lifecycle fx.Lifecycle

	Log        *slog.Logger          `optional:"true"`
	Registerer prometheus.Registerer `optional:"true"`
}

// Module provides an *[Aggregator] to an fx application.
// The Aggregator is closed when the application stops,
// which ends every consumer loop once it drains its queue.
//
// Applications that rely on the package-level [Publish] and [Subscribe]
// do not need this module.
func Module() fx.Option {
	return fx.Module("nevent",
		fx.Provide(NewFromParams),
	)
}

// NewFromParams constructs an Aggregator from fx-provided dependencies.
func NewFromParams(p Params) *Aggregator {
	log := p.Log
	if log == nil {
		log = slog.Default()
	}

	a := New(log.With("sys", "event_aggregator"), Config{
		Registerer: p.Registerer,
	})
	p.Lifecycle.Append(fx.StopHook(a.Close))
	return a
}
