package wordowl

import (
	"context"

	"github.com/wordowl-games/wordowl/internal/wordowl/game"
)

const (
	CmdStartGame      = "start_game"
	CmdSubmitAnswer   = "submit_answer"
	CmdSetWager       = "set_wager"
	CmdRevealLetter   = "reveal_letter"
	CmdSkipWord       = "skip_word"
	CmdRepeatClue     = "repeat_clue"
	CmdGiveUp         = "give_up"
	CmdStartSpelling  = "start_spelling"
	CmdAddLetter      = "add_letter"
	CmdFinishSpelling = "finish_spelling"
	CmdCancelSpelling = "cancel_spelling"
	CmdTimeout        = "timeout"
	CmdResetTimeout   = "reset_timeout"
)

// Command is one voice action to run against the game session. Fields beyond
// Name are read per command and ignored otherwise.
type Command struct {
	Name   string `json:"name"`
	Answer string `json:"answer,omitempty"`
	Letter string `json:"letter,omitempty"`
	Text   string `json:"text,omitempty"`
	Amount int    `json:"amount,omitempty"`
	Bonus  bool   `json:"bonus,omitempty"`
}

func KnownCommand(name string) bool {
	switch name {
	case CmdStartGame, CmdSubmitAnswer, CmdSetWager, CmdRevealLetter,
		CmdSkipWord, CmdRepeatClue, CmdGiveUp, CmdStartSpelling,
		CmdAddLetter, CmdFinishSpelling, CmdCancelSpelling,
		CmdTimeout, CmdResetTimeout:
		return true
	}
	return false
}

// GameSource is the slice of the session the manager drives. Satisfied by
// *game.Session.
type GameSource interface {
	StartGame(ctx context.Context, bonus bool) (game.Result, error)
	SubmitAnswer(ctx context.Context, answer string) (game.Result, error)
	SetWager(amount int) (game.Result, error)
	RevealLetter(ctx context.Context) (game.Result, error)
	SkipWord() (game.Result, error)
	RepeatClue() (game.Result, error)
	GiveUp(ctx context.Context) (game.Result, error)
	StartSpelling() (game.Result, error)
	AddLetter(letter string) (game.Result, error)
	FinishSpelling(ctx context.Context, text string) (game.Result, error)
	CancelSpelling() (game.Result, error)
	HandleTimeout() (game.Result, error)
	ResetTimeout()
	Snapshot() game.State
}
