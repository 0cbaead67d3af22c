package wordowl

import (
	"github.com/google/uuid"
	"github.com/wordowl-games/wordowl/internal/wordowl/api"
	"github.com/wordowl-games/wordowl/internal/wordowl/view"
)

// Frame is one rendered panel update pushed to every connected client.
// Feedback carries a freshly changed voice line, empty when nothing new
// needs announcing.
type Frame struct {
	Version  uint64   `json:"version"`
	Tab      view.Tab `json:"tab"`
	Content  string   `json:"content"`
	Feedback string   `json:"feedback,omitempty"`
}

// Msg is anything the manager's inbox accepts. All state lives on the
// manager goroutine; messages are the only way in.
type Msg interface{ isMsg() }

type JoinMsg struct {
	ClientID uuid.UUID
	Outbox   chan Frame
}

type LeaveMsg struct {
	ClientID uuid.UUID
}

type SetTabMsg struct {
	Tab view.Tab
}

type SetPeriodMsg struct {
	Period view.Period
}

type SetHistoryFilterMsg struct {
	Filter string
}

type ToggleHistoryRowMsg struct {
	ID string
}

type SetHelpMsg struct {
	Open bool
}

type CommandMsg struct {
	Command Command
}

// RefreshMsg forces an immediate snapshot and broadcast, posted after every
// dispatched command instead of waiting for the next poll tick.
type RefreshMsg struct{}

func (JoinMsg) isMsg()             {}
func (LeaveMsg) isMsg()            {}
func (SetTabMsg) isMsg()           {}
func (SetPeriodMsg) isMsg()        {}
func (SetHistoryFilterMsg) isMsg() {}
func (ToggleHistoryRowMsg) isMsg() {}
func (SetHelpMsg) isMsg()          {}
func (CommandMsg) isMsg()          {}
func (RefreshMsg) isMsg()          {}

// fetch completions, posted back to the inbox by fetch goroutines so the
// manager goroutine stays the only writer

type userFetchedMsg struct {
	user api.User
	err  error
}

type statsFetchedMsg struct {
	stats api.Stats
	err   error
}

// leaderboardFetchedMsg carries the period it was requested for; results
// from a period the user has already switched away from are dropped.
type leaderboardFetchedMsg struct {
	period view.Period
	board  api.Leaderboard
	err    error
}

type historyFetchedMsg struct {
	filter string
	games  []api.GameRecord
	err    error
}

type lastGameFetchedMsg struct {
	record *api.GameRecord
	err    error
}

func (userFetchedMsg) isMsg()        {}
func (statsFetchedMsg) isMsg()       {}
func (leaderboardFetchedMsg) isMsg() {}
func (historyFetchedMsg) isMsg()     {}
func (lastGameFetchedMsg) isMsg()    {}
