package app

import (
	"log/slog"

	"marga.transitlab.org/internal/appconf"
	"marga.transitlab.org/internal/routing"
	"marga.transitlab.org/internal/session"
)

// Application holds the dependencies for our HTTP handlers, helpers,
// and middleware.
type Application struct {
	Config   appconf.Config
	Logger   *slog.Logger
	Engine   *routing.Engine
	Sessions *session.Store
}
