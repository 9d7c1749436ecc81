package neovide

import (
	"github.com/juchiast/neovide/nevent"
	"github.com/juchiast/neovide/nrun"
	"go.uber.org/fx"
)

// Module provides an *[nevent.Aggregator] and an *[nrun.Tracker]
// to an fx application.
// Both use the application's *slog.Logger if one is provided.
func Module() fx.Option {
	return fx.Options(
		nevent.Module(),
		nrun.Module(),
	)
}
