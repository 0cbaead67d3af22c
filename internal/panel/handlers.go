package panel

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/wordowl-games/wordowl/internal/logging"
	"github.com/wordowl-games/wordowl/internal/wordowl"
	"github.com/wordowl-games/wordowl/internal/wordowl/view"
)

// handleCommand accepts one game command and returns immediately. The
// outcome is never in the response body; it arrives on the websocket as the
// next frame's feedback.
func (p *Panel) handleCommand(ctx context.Context) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := logging.FromContext(ctx).Named("panel.handleCommand")

		name := chi.URLParam(r, "command")
		if !wordowl.KnownCommand(name) {
			http.Error(w, "unknown command", http.StatusNotFound)
			return
		}

		var cmd wordowl.Command
		if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil && err != io.EOF {
			http.Error(w, "invalid body", http.StatusBadRequest)
			return
		}
		cmd.Name = name

		if err := p.manager.Post(r.Context(), wordowl.CommandMsg{Command: cmd}); err != nil {
			logger.Errorf("failed to post command: %v", err)
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
			return
		}

		w.WriteHeader(http.StatusAccepted)
	}
}

func (p *Panel) handleSetTab(ctx context.Context) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Tab string `json:"tab"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid body", http.StatusBadRequest)
			return
		}
		if !view.ValidTab(view.Tab(body.Tab)) {
			http.Error(w, "unknown tab", http.StatusBadRequest)
			return
		}

		p.post(ctx, w, r, wordowl.SetTabMsg{Tab: view.Tab(body.Tab)})
	}
}

func (p *Panel) handleSetPeriod(ctx context.Context) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Period string `json:"period"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid body", http.StatusBadRequest)
			return
		}
		if !view.ValidPeriod(view.Period(body.Period)) {
			http.Error(w, "unknown period", http.StatusBadRequest)
			return
		}

		p.post(ctx, w, r, wordowl.SetPeriodMsg{Period: view.Period(body.Period)})
	}
}

func (p *Panel) handleSetFilter(ctx context.Context) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Filter string `json:"filter"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid body", http.StatusBadRequest)
			return
		}

		p.post(ctx, w, r, wordowl.SetHistoryFilterMsg{Filter: body.Filter})
	}
}

func (p *Panel) handleToggleRow(ctx context.Context) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			ID string `json:"id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.ID == "" {
			http.Error(w, "invalid body", http.StatusBadRequest)
			return
		}

		p.post(ctx, w, r, wordowl.ToggleHistoryRowMsg{ID: body.ID})
	}
}

func (p *Panel) handleSetHelp(ctx context.Context) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Open bool `json:"open"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid body", http.StatusBadRequest)
			return
		}

		p.post(ctx, w, r, wordowl.SetHelpMsg{Open: body.Open})
	}
}

func (p *Panel) post(ctx context.Context, w http.ResponseWriter, r *http.Request, msg wordowl.Msg) {
	logger := logging.FromContext(ctx).Named("panel.post")

	if err := p.manager.Post(r.Context(), msg); err != nil {
		logger.Errorf("failed to post message: %v", err)
		http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusAccepted)
}
