package game

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/wordowl-games/wordowl/internal/wordowl/api"
	"github.com/wordowl-games/wordowl/internal/wordowl/resource"
)

type fakeBackend struct {
	puzzle    api.Puzzle
	puzzleErr error

	checkWordFn  func(wordIndex int, answer string) (api.CheckWordResult, error)
	checkThemeFn func(guess string) (api.CheckThemeResult, error)
	revealFn     func(wordIndex int) (api.RevealResult, error)

	submissions []api.ScoreSubmission
}

func (f *fakeBackend) DailyPuzzle(_ context.Context, _ bool) (api.Puzzle, error) {
	return f.puzzle, f.puzzleErr
}

func (f *fakeBackend) StartGame(_ context.Context, _ string) (api.SessionStart, error) {
	return api.SessionStart{GameID: "g1", SessionID: "s1", RevealsRemaining: BaseReveals}, nil
}

func (f *fakeBackend) CheckWord(_ context.Context, _, _ string, wordIndex int, answer string) (api.CheckWordResult, error) {
	if f.checkWordFn != nil {
		return f.checkWordFn(wordIndex, answer)
	}
	if strings.EqualFold(f.puzzle.Words[wordIndex].Word, answer) {
		return api.CheckWordResult{Correct: true, PointsEarned: 10}, nil
	}
	return api.CheckWordResult{}, nil
}

func (f *fakeBackend) CheckTheme(_ context.Context, _, _, guess string) (api.CheckThemeResult, error) {
	if f.checkThemeFn != nil {
		return f.checkThemeFn(guess)
	}
	if strings.EqualFold(f.puzzle.Theme, guess) {
		return api.CheckThemeResult{Correct: true, BonusPoints: 25}, nil
	}
	return api.CheckThemeResult{}, nil
}

func (f *fakeBackend) RevealLetter(_ context.Context, _, _ string, wordIndex int) (api.RevealResult, error) {
	if f.revealFn != nil {
		return f.revealFn(wordIndex)
	}
	return api.RevealResult{Success: true, Letter: "X", Position: 0, RevealsRemaining: -1}, nil
}

func (f *fakeBackend) SubmitScore(_ context.Context, submission api.ScoreSubmission) (api.ScoreResult, error) {
	f.submissions = append(f.submissions, submission)
	return api.ScoreResult{FinalScore: submission.FinalScore}, nil
}

func testPuzzle() api.Puzzle {
	return api.Puzzle{
		ID:    "p1",
		Date:  "2024-06-01",
		Theme: "COLORS",
		Words: []api.PuzzleWord{
			{Word: "RED", Clue: "stop light"},
			{Word: "BLUE", Clue: "the sky"},
			{Word: "GREEN", Clue: "go light"},
			{Word: "BLACK", Clue: "darkest shade"},
			{Word: "WHITE", Clue: "lightest shade"},
		},
	}
}

func startedSession(t *testing.T) (*Session, *fakeBackend) {
	t.Helper()

	backend := &fakeBackend{puzzle: testPuzzle()}
	session := NewSession(backend)

	result, err := session.StartGame(context.Background(), false)
	if err != nil {
		t.Fatalf("start game: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success, got %#v", result)
	}

	return session, backend
}

func solveAllWords(t *testing.T, session *Session) {
	t.Helper()

	for _, word := range []string{"RED", "BLUE", "GREEN", "BLACK", "WHITE"} {
		result, err := session.SubmitAnswer(context.Background(), word)
		if err != nil {
			t.Fatalf("submit %s: %v", word, err)
		}
		if !result.Correct {
			t.Fatalf("expected %s to be correct, got %#v", word, result)
		}
	}
}

func TestStartGame(t *testing.T) {
	t.Parallel()

	session, _ := startedSession(t)
	state := session.Snapshot()

	if !state.IsActive {
		t.Fatal("expected active game")
	}
	if state.Phase != PhaseWordSolving {
		t.Errorf("expected word solving phase, got %s", state.Phase)
	}
	if state.WordNumber != 1 {
		t.Errorf("expected word 1, got %d", state.WordNumber)
	}
	if state.Blanks != "_ _ _" {
		t.Errorf("expected blanks for RED, got %q", state.Blanks)
	}
	if state.Clue != "stop light" {
		t.Errorf("expected first clue, got %q", state.Clue)
	}
	if state.Theme != "" {
		t.Errorf("theme must stay hidden while active, got %q", state.Theme)
	}
}

func TestStartGameNoPuzzle(t *testing.T) {
	t.Parallel()

	session := NewSession(&fakeBackend{})
	result, err := session.StartGame(context.Background(), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Message != resource.TextNoPuzzleMsg {
		t.Errorf("expected no puzzle message, got %q", result.Message)
	}
	if session.Snapshot().IsActive {
		t.Error("session must stay inactive without a puzzle")
	}
}

func TestWrongAnswerKeepsCursor(t *testing.T) {
	t.Parallel()

	session, _ := startedSession(t)

	result, err := session.SubmitAnswer(context.Background(), "PURPLE")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Correct {
		t.Fatal("expected wrong answer")
	}

	state := session.Snapshot()
	if state.WordNumber != 1 {
		t.Errorf("cursor must not move on a wrong answer, got word %d", state.WordNumber)
	}
	if state.Score != 0 {
		t.Errorf("score must not change, got %d", state.Score)
	}
}

func TestSolveAllWordsEntersWager(t *testing.T) {
	t.Parallel()

	session, _ := startedSession(t)
	solveAllWords(t, session)

	state := session.Snapshot()
	if state.Phase != PhaseWager {
		t.Fatalf("expected wager phase, got %s", state.Phase)
	}
	if state.WordNumber != ThemeSlot {
		t.Errorf("expected theme slot, got %d", state.WordNumber)
	}
	if state.CurrentScore != 50 {
		t.Errorf("expected 50 wagerable points, got %d", state.CurrentScore)
	}
	if len(state.SolvedWordIndices) != WordsPerPuzzle {
		t.Errorf("expected all words solved, got %v", state.SolvedWordIndices)
	}
}

func TestAnswerDuringWagerAsksForWager(t *testing.T) {
	t.Parallel()

	session, _ := startedSession(t)
	solveAllWords(t, session)

	result, err := session.SubmitAnswer(context.Background(), "COLORS")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Message != fmt.Sprintf(resource.TextWagerFirstMsg, 50) {
		t.Errorf("expected wager prompt, got %q", result.Message)
	}
}

func TestSetWager(t *testing.T) {
	t.Parallel()

	session, _ := startedSession(t)

	// not allowed before the wager phase
	result, err := session.SetWager(10)
	if err != nil {
		t.Fatalf("set wager: %v", err)
	}
	if result.Message != resource.TextNoWagerNowMsg {
		t.Errorf("expected wager rejection, got %q", result.Message)
	}

	solveAllWords(t, session)

	// out of range
	result, err = session.SetWager(60)
	if err != nil {
		t.Fatalf("set wager: %v", err)
	}
	if result.Message != fmt.Sprintf(resource.TextWagerOutOfRangeMsg, 50) {
		t.Errorf("expected out of range message, got %q", result.Message)
	}
	if session.Snapshot().Phase != PhaseWager {
		t.Fatal("phase must not advance on an invalid wager")
	}

	result, err = session.SetWager(30)
	if err != nil {
		t.Fatalf("set wager: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success, got %#v", result)
	}

	state := session.Snapshot()
	if state.Phase != PhaseThemeGuess {
		t.Fatalf("expected theme guess phase, got %s", state.Phase)
	}
	if state.WagerAmount != 30 {
		t.Errorf("expected wager 30, got %d", state.WagerAmount)
	}
	if !strings.HasPrefix(state.Blanks, "C") {
		t.Errorf("first theme letter must be revealed, got %q", state.Blanks)
	}
}

func TestSetWagerAllIn(t *testing.T) {
	t.Parallel()

	session, _ := startedSession(t)
	solveAllWords(t, session)

	result, err := session.SetWager(resource.WagerAllIn)
	if err != nil {
		t.Fatalf("set wager: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success, got %#v", result)
	}
	if got := session.Snapshot().WagerAmount; got != 50 {
		t.Errorf("all in must wager the full score, got %d", got)
	}
}

func TestThemeCorrectEndsGame(t *testing.T) {
	t.Parallel()

	session, backend := startedSession(t)
	solveAllWords(t, session)

	if _, err := session.SetWager(20); err != nil {
		t.Fatalf("set wager: %v", err)
	}

	result, err := session.SubmitAnswer(context.Background(), "colors")
	if err != nil {
		t.Fatalf("submit theme: %v", err)
	}
	if !result.GameOver {
		t.Fatalf("expected game over, got %#v", result)
	}

	state := session.Snapshot()
	if state.IsActive {
		t.Fatal("session must be inactive after the theme")
	}
	if state.Theme != "COLORS" {
		t.Errorf("theme must be revealed after the game, got %q", state.Theme)
	}
	if !state.PlayedToday {
		t.Error("scheduled game must mark today as played")
	}

	if len(backend.submissions) != 1 {
		t.Fatalf("expected one score submission, got %d", len(backend.submissions))
	}
	submission := backend.submissions[0]
	if submission.WagerAmount != 20 {
		t.Errorf("expected wager 20 in submission, got %d", submission.WagerAmount)
	}
	if !submission.ThemeCorrect {
		t.Error("expected theme correct in submission")
	}
	if submission.WordsSolved != WordsPerPuzzle {
		t.Errorf("expected %d words solved, got %d", WordsPerPuzzle, submission.WordsSolved)
	}
}

func TestGiveUp(t *testing.T) {
	t.Parallel()

	session, backend := startedSession(t)

	result, err := session.GiveUp(context.Background())
	if err != nil {
		t.Fatalf("give up: %v", err)
	}
	if !result.GameOver {
		t.Fatalf("expected game over, got %#v", result)
	}
	if !strings.Contains(result.Message, "COLORS") {
		t.Errorf("give up must reveal the theme, got %q", result.Message)
	}

	if len(backend.submissions) != 1 {
		t.Fatalf("expected one score submission, got %d", len(backend.submissions))
	}
	if backend.submissions[0].ThemeCorrect {
		t.Error("giving up must not count the theme as correct")
	}
}

func TestSkipWrapsAround(t *testing.T) {
	t.Parallel()

	session, _ := startedSession(t)

	// skip every word; the cursor must then cycle back to the first one
	for i := 0; i < WordsPerPuzzle; i++ {
		if _, err := session.SkipWord(); err != nil {
			t.Fatalf("skip %d: %v", i, err)
		}
	}

	state := session.Snapshot()
	if state.WordNumber != 1 {
		t.Errorf("expected cursor back on word 1, got %d", state.WordNumber)
	}
	if len(state.SkippedWordIndices) != WordsPerPuzzle {
		t.Errorf("expected all words skipped, got %v", state.SkippedWordIndices)
	}
}

func TestSkipThenSolveClearsSkip(t *testing.T) {
	t.Parallel()

	session, _ := startedSession(t)

	if _, err := session.SkipWord(); err != nil {
		t.Fatalf("skip: %v", err)
	}

	// cursor is now on BLUE; solve everything, ending back on RED
	for _, word := range []string{"BLUE", "GREEN", "BLACK", "WHITE", "RED"} {
		result, err := session.SubmitAnswer(context.Background(), word)
		if err != nil {
			t.Fatalf("submit %s: %v", word, err)
		}
		if !result.Correct {
			t.Fatalf("expected %s correct, got %#v", word, result)
		}
	}

	state := session.Snapshot()
	if state.Phase != PhaseWager {
		t.Fatalf("expected wager phase, got %s", state.Phase)
	}
	if len(state.SkippedWordIndices) != 0 {
		t.Errorf("a solved word must not show as skipped, got %v", state.SkippedWordIndices)
	}
}

func TestRevealLetter(t *testing.T) {
	t.Parallel()

	session, _ := startedSession(t)

	result, err := session.RevealLetter(context.Background())
	if err != nil {
		t.Fatalf("reveal: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success, got %#v", result)
	}

	state := session.Snapshot()
	if state.Reveals != BaseReveals-1 {
		t.Errorf("expected %d reveals left, got %d", BaseReveals-1, state.Reveals)
	}
	if state.Blanks != "R _ _" {
		t.Errorf("revealed position must show the letter, got %q", state.Blanks)
	}
}

func TestRevealLetterDuringWagerRejected(t *testing.T) {
	t.Parallel()

	session, _ := startedSession(t)
	solveAllWords(t, session)

	result, err := session.RevealLetter(context.Background())
	if err != nil {
		t.Fatalf("reveal: %v", err)
	}
	if result.Message != resource.TextNoRevealNowMsg {
		t.Errorf("expected reveal rejection, got %q", result.Message)
	}
}

func TestSpelling(t *testing.T) {
	t.Parallel()

	session, _ := startedSession(t)

	if _, err := session.StartSpelling(); err != nil {
		t.Fatalf("start spelling: %v", err)
	}

	result, err := session.AddLetter("7")
	if err != nil {
		t.Fatalf("add letter: %v", err)
	}
	if result.Message != resource.TextInvalidLetterMsg {
		t.Errorf("expected invalid letter message, got %q", result.Message)
	}

	for _, letter := range []string{"r", "E", "d"} {
		if _, err := session.AddLetter(letter); err != nil {
			t.Fatalf("add letter %s: %v", letter, err)
		}
	}

	result, err = session.FinishSpelling(context.Background(), "")
	if err != nil {
		t.Fatalf("finish spelling: %v", err)
	}
	if !result.Correct {
		t.Fatalf("expected RED to be accepted, got %#v", result)
	}

	state := session.Snapshot()
	if state.SpellingMode {
		t.Error("spelling mode must end on finish")
	}
	if len(state.SolvedWordIndices) != 1 {
		t.Errorf("expected one solved word, got %v", state.SolvedWordIndices)
	}
}

func TestFinishSpellingWithNothing(t *testing.T) {
	t.Parallel()

	session, _ := startedSession(t)

	if _, err := session.StartSpelling(); err != nil {
		t.Fatalf("start spelling: %v", err)
	}

	result, err := session.FinishSpelling(context.Background(), "")
	if err != nil {
		t.Fatalf("finish spelling: %v", err)
	}
	if result.Message != resource.TextNothingSpelledMsg {
		t.Errorf("expected nothing spelled message, got %q", result.Message)
	}
}

func TestHandleTimeoutEscalates(t *testing.T) {
	t.Parallel()

	session, _ := startedSession(t)

	expected := []string{
		resource.TextTimeoutFirstMsg,
		resource.TextTimeoutSecondMsg,
		resource.TextTimeoutLateMsg,
		resource.TextTimeoutLateMsg,
	}
	for i, want := range expected {
		result, err := session.HandleTimeout()
		if err != nil {
			t.Fatalf("timeout %d: %v", i, err)
		}
		if result.Message != want {
			t.Errorf("timeout %d: expected %q got %q", i, want, result.Message)
		}
	}

	session.ResetTimeout()
	result, err := session.HandleTimeout()
	if err != nil {
		t.Fatalf("timeout after reset: %v", err)
	}
	if result.Message != resource.TextTimeoutFirstMsg {
		t.Errorf("expected first message after reset, got %q", result.Message)
	}
}

func TestBlanks(t *testing.T) {
	t.Parallel()

	cases := []struct {
		word     string
		revealed []int
		want     string
	}{
		{"RED", nil, "_ _ _"},
		{"RED", []int{0}, "R _ _"},
		{"RED", []int{0, 2}, "R _ D"},
		{"ICE AGE", []int{0}, "I _ _   _ _ _"},
	}

	for _, tc := range cases {
		if got := blanks(tc.word, tc.revealed); got != tc.want {
			t.Errorf("blanks(%q, %v): expected %q got %q", tc.word, tc.revealed, tc.want, got)
		}
	}
}

func TestNoActiveGameCommands(t *testing.T) {
	t.Parallel()

	session := NewSession(&fakeBackend{puzzle: testPuzzle()})

	result, err := session.SubmitAnswer(context.Background(), "RED")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Message != resource.TextNoActiveGameMsg {
		t.Errorf("expected no active game, got %q", result.Message)
	}

	result, err = session.RevealLetter(context.Background())
	if err != nil {
		t.Fatalf("reveal: %v", err)
	}
	if result.Message != resource.TextNoActiveGameMsg {
		t.Errorf("expected no active game, got %q", result.Message)
	}

	result, err = session.RepeatClue()
	if err != nil {
		t.Fatalf("repeat clue: %v", err)
	}
	if result.Message != resource.TextNoActiveGameMsg {
		t.Errorf("expected no active game, got %q", result.Message)
	}
}
