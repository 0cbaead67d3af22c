package panel

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/wordowl-games/wordowl/internal/logging"
	"github.com/wordowl-games/wordowl/internal/wordowl"
	"github.com/wordowl-games/wordowl/internal/wordowl/view"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

// clientMessage is what a connected panel may send upstream over the socket.
// Type selects the action; the other fields are read per type.
type clientMessage struct {
	Type string `json:"type"`

	Tab    string `json:"tab,omitempty"`
	Period string `json:"period,omitempty"`
	Filter string `json:"filter,omitempty"`
	ID     string `json:"id,omitempty"`
	Open   bool   `json:"open,omitempty"`

	Command *wordowl.Command `json:"command,omitempty"`
}

func (p *Panel) handleWS(ctx context.Context) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := logging.FromContext(ctx).Named("panel.ws")

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			InsecureSkipVerify: true,
		})
		if err != nil {
			logger.Errorf("websocket accept failed: %v", err)
			return
		}
		defer conn.Close(websocket.StatusInternalError, "closed")

		clientID := uuid.New()
		outbox := make(chan wordowl.Frame, wordowl.OutboxSize)

		if err := p.manager.Post(r.Context(), wordowl.JoinMsg{ClientID: clientID, Outbox: outbox}); err != nil {
			return
		}
		defer func() {
			// LeaveMsg is a no-op when the manager already dropped us
			_ = p.manager.Post(context.Background(), wordowl.LeaveMsg{ClientID: clientID})
		}()

		connCtx, cancel := context.WithCancel(r.Context())
		defer cancel()

		go func() {
			defer cancel()
			for frame := range outbox {
				if err := wsjson.Write(connCtx, conn, frame); err != nil {
					return
				}
			}
			conn.Close(websocket.StatusNormalClosure, "server shutting down")
		}()

		for {
			var msg clientMessage
			if err := wsjson.Read(connCtx, conn, &msg); err != nil {
				logger.Debugf("client %s disconnected: %v", clientID, err)
				return
			}

			upstream, ok := toMsg(msg)
			if !ok {
				logger.Debugf("ignoring unknown client message type %q", msg.Type)
				continue
			}

			if err := p.manager.Post(connCtx, upstream); err != nil {
				return
			}
		}
	}
}

func toMsg(msg clientMessage) (wordowl.Msg, bool) {
	switch msg.Type {
	case "set_tab":
		return wordowl.SetTabMsg{Tab: view.Tab(msg.Tab)}, true
	case "set_period":
		return wordowl.SetPeriodMsg{Period: view.Period(msg.Period)}, true
	case "set_filter":
		return wordowl.SetHistoryFilterMsg{Filter: msg.Filter}, true
	case "toggle_row":
		return wordowl.ToggleHistoryRowMsg{ID: msg.ID}, true
	case "set_help":
		return wordowl.SetHelpMsg{Open: msg.Open}, true
	case "command":
		if msg.Command == nil || !wordowl.KnownCommand(msg.Command.Name) {
			return nil, false
		}
		return wordowl.CommandMsg{Command: *msg.Command}, true
	}
	return nil, false
}
