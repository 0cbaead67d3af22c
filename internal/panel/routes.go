package panel

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/wordowl-games/wordowl/internal/server"
	"github.com/wordowl-games/wordowl/internal/wordowl"
)

func New(manager *wordowl.Manager) *Panel {
	return &Panel{manager: manager}
}

// Panel is the HTTP surface the display and the voice pipeline talk to: a
// websocket pushing rendered frames out, and a small REST surface pushing
// commands and view changes in.
type Panel struct {
	manager *wordowl.Manager
}

func (p *Panel) Routes(ctx context.Context) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", server.HandleHealth(ctx).ServeHTTP)
	r.Get("/ws", p.handleWS(ctx))

	r.Route("/api", func(r chi.Router) {
		r.Post("/commands/{command}", p.handleCommand(ctx))
		r.Post("/view/tab", p.handleSetTab(ctx))
		r.Post("/view/period", p.handleSetPeriod(ctx))
		r.Post("/view/filter", p.handleSetFilter(ctx))
		r.Post("/view/expand", p.handleToggleRow(ctx))
		r.Post("/view/help", p.handleSetHelp(ctx))
	})

	return r
}
