package panel

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/wordowl-games/wordowl/internal/wordowl"
	"github.com/wordowl-games/wordowl/internal/wordowl/api"
	"github.com/wordowl-games/wordowl/internal/wordowl/game"
	"github.com/wordowl-games/wordowl/internal/wordowl/view"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

type stubGame struct{}

func (stubGame) StartGame(context.Context, bool) (game.Result, error) {
	return game.Result{Success: true}, nil
}
func (stubGame) SubmitAnswer(context.Context, string) (game.Result, error) { return game.Result{}, nil }
func (stubGame) SetWager(int) (game.Result, error)                         { return game.Result{}, nil }
func (stubGame) RevealLetter(context.Context) (game.Result, error)         { return game.Result{}, nil }
func (stubGame) SkipWord() (game.Result, error)                            { return game.Result{}, nil }
func (stubGame) RepeatClue() (game.Result, error)                          { return game.Result{}, nil }
func (stubGame) GiveUp(context.Context) (game.Result, error)               { return game.Result{}, nil }
func (stubGame) StartSpelling() (game.Result, error)                       { return game.Result{}, nil }
func (stubGame) AddLetter(string) (game.Result, error)                     { return game.Result{}, nil }
func (stubGame) FinishSpelling(context.Context, string) (game.Result, error) {
	return game.Result{}, nil
}
func (stubGame) CancelSpelling() (game.Result, error) { return game.Result{}, nil }
func (stubGame) HandleTimeout() (game.Result, error)  { return game.Result{}, nil }
func (stubGame) ResetTimeout()                        {}
func (stubGame) Snapshot() game.State                 { return game.State{} }

type stubFetcher struct{}

func (stubFetcher) CurrentUser(context.Context) (api.User, error) { return api.User{}, nil }
func (stubFetcher) Stats(context.Context) (api.Stats, error)      { return api.Stats{}, nil }
func (stubFetcher) Leaderboard(context.Context, string, int) (api.Leaderboard, error) {
	return api.Leaderboard{}, nil
}
func (stubFetcher) Games(context.Context, int, string) (api.GamesPage, error) {
	return api.GamesPage{}, nil
}

func testPanel(t *testing.T) *httptest.Server {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())

	manager := wordowl.NewManager(
		wordowl.Config{PollInterval: time.Second},
		stubGame{}, stubFetcher{}, nil,
	)
	go func() { _ = manager.Run(ctx) }()

	srv := httptest.NewServer(New(manager).Routes(ctx))
	t.Cleanup(srv.Close)
	t.Cleanup(cancel)

	return srv
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	srv := testPanel(t)

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
}

func TestCommandEndpoint(t *testing.T) {
	t.Parallel()

	srv := testPanel(t)

	resp, err := http.Post(srv.URL+"/api/commands/start_game", "application/json", nil)
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusAccepted {
		t.Errorf("expected 202, got %d", resp.StatusCode)
	}

	resp, err = http.Post(srv.URL+"/api/commands/self_destruct", "application/json", nil)
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown command must 404, got %d", resp.StatusCode)
	}
}

func TestViewEndpointsValidate(t *testing.T) {
	t.Parallel()

	srv := testPanel(t)

	cases := []struct {
		path string
		body string
		want int
	}{
		{"/api/view/tab", `{"tab":"stats"}`, http.StatusAccepted},
		{"/api/view/tab", `{"tab":"bogus"}`, http.StatusBadRequest},
		{"/api/view/period", `{"period":"weekly"}`, http.StatusAccepted},
		{"/api/view/period", `{"period":"hourly"}`, http.StatusBadRequest},
		{"/api/view/expand", `{"id":"r1"}`, http.StatusAccepted},
		{"/api/view/expand", `{}`, http.StatusBadRequest},
		{"/api/view/help", `{"open":true}`, http.StatusAccepted},
	}

	for _, tc := range cases {
		resp, err := http.Post(srv.URL+tc.path, "application/json", bytes.NewBufferString(tc.body))
		if err != nil {
			t.Fatalf("post %s: %v", tc.path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != tc.want {
			t.Errorf("%s %s: expected %d got %d", tc.path, tc.body, tc.want, resp.StatusCode)
		}
	}
}

func TestWebsocketStreamsFrames(t *testing.T) {
	t.Parallel()

	srv := testPanel(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "")

	var frame wordowl.Frame
	if err := wsjson.Read(ctx, conn, &frame); err != nil {
		t.Fatalf("read first frame: %v", err)
	}
	if frame.Tab != view.TabGame {
		t.Errorf("expected game tab, got %q", frame.Tab)
	}
	if frame.Content == "" {
		t.Error("expected rendered content")
	}

	if err := wsjson.Write(ctx, conn, map[string]string{"type": "set_tab", "tab": "stats"}); err != nil {
		t.Fatalf("write: %v", err)
	}

	for {
		if err := wsjson.Read(ctx, conn, &frame); err != nil {
			t.Fatalf("read: %v", err)
		}
		if frame.Tab == view.TabStats {
			return
		}
	}
}
