package wordowl

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/valyala/fastrand"
	statedb "github.com/wordowl-games/wordowl/internal/database/mirrorstate/database"
	statemodel "github.com/wordowl-games/wordowl/internal/database/mirrorstate/model"
	"github.com/wordowl-games/wordowl/internal/logging"
	"github.com/wordowl-games/wordowl/internal/wordowl/api"
	"github.com/wordowl-games/wordowl/internal/wordowl/view"
)

// OutboxSize bounds each client's frame queue. A client that falls this far
// behind is dropped rather than stalling the broadcast; transports must size
// their outbox channels with it.
const OutboxSize = 8

// Fetcher is the read side of the puzzle service the mirror refreshes from.
// Satisfied by *api.Client.
type Fetcher interface {
	CurrentUser(ctx context.Context) (api.User, error)
	Stats(ctx context.Context) (api.Stats, error)
	Leaderboard(ctx context.Context, period string, limit int) (api.Leaderboard, error)
	Games(ctx context.Context, limit int, gameType string) (api.GamesPage, error)
}

func NewManager(config Config, source GameSource, fetcher Fetcher, stateDB *statedb.DB) *Manager {
	return &Manager{
		config:  config,
		game:    source,
		fetcher: fetcher,
		stateDB: stateDB,
		inbox:   make(chan Msg, 64),
		clients: map[string]chan Frame{},
		model:   view.Model{View: view.NewState()},
	}
}

// Manager is the sync core: a single goroutine owning the mirrored read
// models and the UI selection. Everything reaches it through the inbox, and
// every mutation ends in a broadcast of one freshly rendered frame.
type Manager struct {
	config  Config
	game    GameSource
	fetcher Fetcher
	stateDB *statedb.DB

	inbox chan Msg

	// all fields below are owned by the Run goroutine
	model     view.Model
	version   uint64
	clients   map[string]chan Frame
	lastShown string
	wasActive bool
}

// Post delivers a message to the manager, blocking until accepted or the
// context ends.
func (m *Manager) Post(ctx context.Context, msg Msg) error {
	select {
	case m.inbox <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run drives the manager until ctx is cancelled. It loads the persisted
// mirror once, then alternates between inbox messages and poll ticks; on
// shutdown the current mirror is saved back for the next warm start.
func (m *Manager) Run(ctx context.Context) error {
	logger := logging.FromContext(ctx).Named("wordowl.Run")

	m.warmStart(ctx)
	m.fetchUser(ctx)

	timer := time.NewTimer(m.pollInterval())
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Infof("manager shutting down")
			m.saveMirror(ctx)
			for id, outbox := range m.clients {
				close(outbox)
				delete(m.clients, id)
			}
			return nil
		case msg := <-m.inbox:
			m.handle(ctx, msg)
		case <-timer.C:
			if m.pollActive() {
				m.refresh(ctx)
			}
			timer.Reset(m.pollInterval())
		}
	}
}

// pollActive gates the poll loop: only the game tab needs live updates, and
// an open help overlay pauses them entirely.
func (m *Manager) pollActive() bool {
	return m.model.View.Tab == view.TabGame && !m.model.View.HelpOpen
}

// pollInterval adds a little jitter so a fleet of panels does not hit the
// service in lockstep.
func (m *Manager) pollInterval() time.Duration {
	base := m.config.PollInterval
	if base <= 0 {
		base = time.Second
	}

	jitterMs := base.Milliseconds() / 8
	if jitterMs <= 0 {
		return base
	}

	return base + time.Duration(fastrand.Uint32n(uint32(jitterMs)))*time.Millisecond
}

func (m *Manager) handle(ctx context.Context, msg Msg) {
	logger := logging.FromContext(ctx).Named("wordowl.handle")

	switch msg := msg.(type) {
	case JoinMsg:
		m.clients[msg.ClientID.String()] = msg.Outbox
		m.refresh(ctx)
	case LeaveMsg:
		if outbox, ok := m.clients[msg.ClientID.String()]; ok {
			close(outbox)
			delete(m.clients, msg.ClientID.String())
		}
	case SetTabMsg:
		if !view.ValidTab(msg.Tab) {
			logger.Debugf("ignoring unknown tab %q", msg.Tab)
			return
		}
		m.model.View.Tab = msg.Tab
		switch msg.Tab {
		case view.TabLeaderboard:
			if m.model.Leaderboard == nil {
				m.fetchLeaderboard(ctx, m.model.View.Period)
			}
		case view.TabStats:
			if m.model.Stats == nil {
				m.fetchStats(ctx)
			}
			if !m.model.HistoryLoaded {
				m.fetchHistory(ctx, m.model.View.HistoryFilter)
			}
		}
		m.broadcast("")
	case SetPeriodMsg:
		if !view.ValidPeriod(msg.Period) {
			logger.Debugf("ignoring unknown period %q", msg.Period)
			return
		}
		if msg.Period == m.model.View.Period {
			return
		}
		// clear before refetch so a slow previous period can never bleed in
		m.model.View.Period = msg.Period
		m.model.Leaderboard = nil
		m.fetchLeaderboard(ctx, msg.Period)
		m.broadcast("")
	case SetHistoryFilterMsg:
		if msg.Filter == m.model.View.HistoryFilter {
			return
		}
		m.model.View.HistoryFilter = msg.Filter
		m.model.History = nil
		m.model.HistoryLoaded = false
		m.fetchHistory(ctx, msg.Filter)
		m.broadcast("")
	case ToggleHistoryRowMsg:
		m.model.View.Expanded[msg.ID] = !m.model.View.Expanded[msg.ID]
		m.broadcast("")
	case SetHelpMsg:
		m.model.View.HelpOpen = msg.Open
		m.broadcast("")
	case CommandMsg:
		m.dispatch(ctx, msg.Command)
	case RefreshMsg:
		m.refresh(ctx)
	case userFetchedMsg:
		if msg.err != nil {
			logger.Errorf("user fetch failed: %v", msg.err)
			return
		}
		user := msg.user
		m.model.User = &user
		m.broadcast("")
	case statsFetchedMsg:
		if msg.err != nil {
			logger.Errorf("stats fetch failed: %v", msg.err)
			return
		}
		stats := msg.stats
		m.model.Stats = &stats
		m.broadcast("")
	case leaderboardFetchedMsg:
		if msg.period != m.model.View.Period {
			logger.Debugf("dropping stale leaderboard for period %q", msg.period)
			return
		}
		if msg.err != nil {
			// keep whatever is already mirrored; a failed refresh must not
			// blank the panel
			logger.Errorf("leaderboard fetch failed: %v", msg.err)
			return
		}
		board := msg.board
		m.model.Leaderboard = &board
		m.broadcast("")
	case historyFetchedMsg:
		if msg.filter != m.model.View.HistoryFilter {
			logger.Debugf("dropping stale history for filter %q", msg.filter)
			return
		}
		if msg.err != nil {
			logger.Errorf("history fetch failed: %v", msg.err)
			return
		}
		m.model.History = msg.games
		m.model.HistoryLoaded = true
		m.broadcast("")
	case lastGameFetchedMsg:
		if msg.err != nil {
			logger.Errorf("last game fetch failed: %v", msg.err)
			return
		}
		if m.model.Game.IsActive {
			// a new game started before the summary arrived
			return
		}
		m.model.LastGame = msg.record
		m.broadcast("")
	}
}

// dispatch runs one command against the session off the manager goroutine.
// Fire and forget: the result message surfaces through the next refresh's
// feedback, never through a synchronous reply.
func (m *Manager) dispatch(ctx context.Context, cmd Command) {
	logger := logging.FromContext(ctx).Named("wordowl.dispatch")

	go func() {
		var err error
		switch cmd.Name {
		case CmdStartGame:
			_, err = m.game.StartGame(ctx, cmd.Bonus)
		case CmdSubmitAnswer:
			_, err = m.game.SubmitAnswer(ctx, cmd.Answer)
		case CmdSetWager:
			_, err = m.game.SetWager(cmd.Amount)
		case CmdRevealLetter:
			_, err = m.game.RevealLetter(ctx)
		case CmdSkipWord:
			_, err = m.game.SkipWord()
		case CmdRepeatClue:
			_, err = m.game.RepeatClue()
		case CmdGiveUp:
			_, err = m.game.GiveUp(ctx)
		case CmdStartSpelling:
			_, err = m.game.StartSpelling()
		case CmdAddLetter:
			_, err = m.game.AddLetter(cmd.Letter)
		case CmdFinishSpelling:
			_, err = m.game.FinishSpelling(ctx, cmd.Text)
		case CmdCancelSpelling:
			_, err = m.game.CancelSpelling()
		case CmdTimeout:
			_, err = m.game.HandleTimeout()
		case CmdResetTimeout:
			m.game.ResetTimeout()
		default:
			logger.Debugf("unknown command %q", cmd.Name)
			return
		}

		if err != nil {
			logger.Debugf("command %s failed: %v", cmd.Name, err)
		}

		select {
		case m.inbox <- RefreshMsg{}:
		case <-ctx.Done():
		}
	}()
}

// refresh re-reads the game snapshot, detects the end-of-game edge, derives
// feedback via the last-message debounce and broadcasts one frame.
func (m *Manager) refresh(ctx context.Context) {
	snap := m.game.Snapshot()

	if m.wasActive && !snap.IsActive {
		// one shot per transition: pull the finished game's breakdown and
		// refresh the read models it changed. The stale copies stay on
		// screen until the fresh ones land.
		m.fetchLastGame(ctx)
		m.fetchStats(ctx)
		m.fetchHistory(ctx, m.model.View.HistoryFilter)
		m.fetchLeaderboard(ctx, m.model.View.Period)
	}
	if !m.wasActive && snap.IsActive {
		m.model.LastGame = nil
	}
	m.wasActive = snap.IsActive

	var feedback string
	if snap.LastMessage != "" && snap.LastMessage != m.lastShown {
		feedback = snap.LastMessage
		m.lastShown = snap.LastMessage
	}

	m.model.Game = snap
	m.broadcast(feedback)
}

func (m *Manager) broadcast(feedback string) {
	m.version++
	frame := Frame{
		Version:  m.version,
		Tab:      m.model.View.Tab,
		Content:  view.Render(m.model),
		Feedback: feedback,
	}

	for id, outbox := range m.clients {
		select {
		case outbox <- frame:
		default:
			// slow consumer, cut it loose
			close(outbox)
			delete(m.clients, id)
		}
	}
}

func (m *Manager) fetchUser(ctx context.Context) {
	go func() {
		user, err := m.fetcher.CurrentUser(ctx)
		m.post(ctx, userFetchedMsg{user: user, err: err})
	}()
}

func (m *Manager) fetchStats(ctx context.Context) {
	go func() {
		stats, err := m.fetcher.Stats(ctx)
		m.post(ctx, statsFetchedMsg{stats: stats, err: err})
	}()
}

func (m *Manager) fetchLeaderboard(ctx context.Context, period view.Period) {
	limit := m.config.LeaderboardLimit
	go func() {
		board, err := m.fetcher.Leaderboard(ctx, string(period), limit)
		m.post(ctx, leaderboardFetchedMsg{period: period, board: board, err: err})
	}()
}

func (m *Manager) fetchHistory(ctx context.Context, filter string) {
	limit := m.config.HistoryLimit
	go func() {
		page, err := m.fetcher.Games(ctx, limit, filter)
		m.post(ctx, historyFetchedMsg{filter: filter, games: page.Games, err: err})
	}()
}

func (m *Manager) fetchLastGame(ctx context.Context) {
	go func() {
		page, err := m.fetcher.Games(ctx, 1, "")
		var record *api.GameRecord
		if err == nil && len(page.Games) > 0 {
			record = &page.Games[0]
		}
		m.post(ctx, lastGameFetchedMsg{record: record, err: err})
	}()
}

func (m *Manager) post(ctx context.Context, msg Msg) {
	select {
	case m.inbox <- msg:
	case <-ctx.Done():
	}
}

// warmStart restores the read models persisted by the previous run, then
// clears them so a crash loop cannot replay arbitrarily old data.
func (m *Manager) warmStart(ctx context.Context) {
	logger := logging.FromContext(ctx).Named("wordowl.warmStart")

	if m.stateDB == nil {
		return
	}

	records, err := m.stateDB.FetchAll()
	if err != nil {
		if !errors.Is(err, statedb.EntryNotFoundErr) {
			logger.Errorf("failed to load mirror state: %v", err)
		}
		return
	}

	for _, record := range records {
		switch record.Kind {
		case statemodel.KindUser:
			var user api.User
			if err := json.Unmarshal(record.Payload, &user); err == nil {
				m.model.User = &user
			}
		case statemodel.KindStats:
			var stats api.Stats
			if err := json.Unmarshal(record.Payload, &stats); err == nil {
				m.model.Stats = &stats
			}
		case statemodel.KindLeaderboard:
			var board api.Leaderboard
			if err := json.Unmarshal(record.Payload, &board); err == nil {
				m.model.Leaderboard = &board
				if view.ValidPeriod(view.Period(board.Period)) {
					m.model.View.Period = view.Period(board.Period)
				}
			}
		}
	}

	if err := m.stateDB.Clean(); err != nil && !errors.Is(err, statedb.BucketNotFoundErr) {
		logger.Errorf("failed to clean mirror state: %v", err)
	}
}

func (m *Manager) saveMirror(ctx context.Context) {
	logger := logging.FromContext(ctx).Named("wordowl.saveMirror")

	if m.stateDB == nil {
		return
	}

	save := func(kind statemodel.Kind, v interface{}) {
		payload, err := json.Marshal(v)
		if err != nil {
			logger.Errorf("failed to marshal %s: %v", kind, err)
			return
		}
		if err := m.stateDB.Add(statemodel.NewRecord(kind, payload)); err != nil {
			logger.Errorf("failed to save %s: %v", kind, err)
		}
	}

	if m.model.User != nil {
		save(statemodel.KindUser, m.model.User)
	}
	if m.model.Stats != nil {
		save(statemodel.KindStats, m.model.Stats)
	}
	if m.model.Leaderboard != nil {
		save(statemodel.KindLeaderboard, m.model.Leaderboard)
	}
}
