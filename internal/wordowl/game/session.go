package game

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/wordowl-games/wordowl/internal/logging"
	"github.com/wordowl-games/wordowl/internal/wordowl/api"
	"github.com/wordowl-games/wordowl/internal/wordowl/resource"
)

// Backend is the slice of the puzzle service a session needs. Satisfied by
// *api.Client.
type Backend interface {
	DailyPuzzle(ctx context.Context, bonus bool) (api.Puzzle, error)
	StartGame(ctx context.Context, puzzleID string) (api.SessionStart, error)
	CheckWord(ctx context.Context, puzzleID, sessionID string, wordIndex int, answer string) (api.CheckWordResult, error)
	CheckTheme(ctx context.Context, puzzleID, sessionID, themeGuess string) (api.CheckThemeResult, error)
	RevealLetter(ctx context.Context, puzzleID, sessionID string, wordIndex int) (api.RevealResult, error)
	SubmitScore(ctx context.Context, submission api.ScoreSubmission) (api.ScoreResult, error)
}

func NewSession(backend Backend) *Session {
	return &Session{backend: backend}
}

// Session owns the live game state. Scoring, word selection and wager
// resolution are authoritative on the server; the session only mirrors
// what the last response said and keeps the cursor/blanks bookkeeping the
// server does not track for us.
type Session struct {
	mtx sync.Mutex

	backend Backend

	gameID    string
	sessionID string
	puzzleID  string
	bonus     bool

	theme string
	words []string
	clues []string

	phase            Phase
	cursor           int
	score            int
	revealsRemaining int
	revealsUsed      int

	solved        []int
	skipped       []int
	revealed      map[int][]int
	themeRevealed []int

	wager    int
	wagerSet bool

	isActive    bool
	gaveUp      bool
	startedAt   time.Time
	completedAt time.Time

	lastMessage string

	spellingMode   bool
	spellingBuffer []string

	timeoutCount int

	// date of the last completed scheduled (non-bonus) puzzle
	playedDate string
}

func (s *Session) reset() {
	s.gameID = ""
	s.sessionID = ""
	s.puzzleID = ""
	s.bonus = false
	s.theme = ""
	s.words = nil
	s.clues = nil
	s.phase = PhaseWordSolving
	s.cursor = 0
	s.score = 0
	s.revealsRemaining = BaseReveals
	s.revealsUsed = 0
	s.solved = nil
	s.skipped = nil
	s.revealed = map[int][]int{}
	s.themeRevealed = nil
	s.wager = 0
	s.wagerSet = false
	s.isActive = false
	s.gaveUp = false
	s.startedAt = time.Time{}
	s.completedAt = time.Time{}
	s.lastMessage = ""
	s.spellingMode = false
	s.spellingBuffer = nil
	s.timeoutCount = 0
}

func (s *Session) StartGame(ctx context.Context, bonus bool) (Result, error) {
	logger := logging.FromContext(ctx).Named("game.StartGame")

	s.mtx.Lock()
	defer s.mtx.Unlock()

	puzzle, err := s.backend.DailyPuzzle(ctx, bonus)
	if err != nil {
		logger.Errorf("failed to fetch puzzle: %v", err)
		return Result{Message: resource.TextNoPuzzleMsg}, fmt.Errorf("daily puzzle: %w", err)
	}

	if puzzle.ID == "" {
		return Result{Message: resource.TextNoPuzzleMsg}, nil
	}

	started, err := s.backend.StartGame(ctx, puzzle.ID)
	if err != nil {
		logger.Errorf("failed to start session: %v", err)
		return Result{Message: resource.TextStartFailedMsg}, fmt.Errorf("start game: %w", err)
	}

	s.reset()
	s.gameID = started.GameID
	s.sessionID = started.SessionID
	s.puzzleID = puzzle.ID
	s.bonus = bonus || puzzle.Bonus
	s.theme = puzzle.Theme
	s.words = make([]string, 0, len(puzzle.Words))
	s.clues = make([]string, 0, len(puzzle.Words))
	for _, w := range puzzle.Words {
		s.words = append(s.words, strings.ToUpper(w.Word))
		s.clues = append(s.clues, w.Clue)
	}

	if started.RevealsRemaining > 0 {
		s.revealsRemaining = started.RevealsRemaining
	}

	s.isActive = true
	s.startedAt = time.Now()
	s.phase = PhaseWordSolving
	s.cursor = 0

	clue := resource.TextNoClueMsg
	if len(s.clues) > 0 {
		clue = s.clues[0]
	}
	s.lastMessage = fmt.Sprintf(resource.TextGameStartedMsg, 1, WordsPerPuzzle, clue)

	return Result{Success: true, Message: s.lastMessage}, nil
}

func (s *Session) SubmitAnswer(ctx context.Context, answer string) (Result, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if !s.isActive {
		return Result{Message: resource.TextNoActiveGameMsg}, nil
	}

	answer = strings.ToUpper(strings.TrimSpace(answer))
	if answer == "" {
		return Result{Message: resource.TextEmptyAnswerMsg}, nil
	}

	switch s.phase {
	case PhaseWordSolving:
		return s.submitWord(ctx, answer)
	case PhaseWager:
		s.lastMessage = fmt.Sprintf(resource.TextWagerFirstMsg, s.score)
		return Result{Success: true, Message: s.lastMessage}, nil
	default:
		return s.submitTheme(ctx, answer)
	}
}

func (s *Session) submitWord(ctx context.Context, answer string) (Result, error) {
	logger := logging.FromContext(ctx).Named("game.submitWord")
	wordIndex := s.cursor

	result, err := s.backend.CheckWord(ctx, s.puzzleID, s.sessionID, wordIndex, answer)
	if err != nil {
		logger.Errorf("failed to check word: %v", err)
		return Result{Message: resource.TextAnswerFailedMsg}, fmt.Errorf("check word: %w", err)
	}

	if !result.Correct {
		message := resource.TextWrongAnswerMsg
		if result.AttemptsRemaining != nil && *result.AttemptsRemaining <= 5 {
			message += fmt.Sprintf(resource.TextAttemptsLeftMsg, *result.AttemptsRemaining)
		}
		s.lastMessage = message
		return Result{Success: true, Message: message}, nil
	}

	s.solved = append(s.solved, wordIndex)
	points := result.PointsEarned
	s.score += points
	if result.RevealsRemaining > 0 {
		s.revealsRemaining = result.RevealsRemaining
	}

	if len(s.solved) >= WordsPerPuzzle {
		return s.toWagerPhase(points), nil
	}

	next, ok := s.findNextUnsolved()
	if !ok {
		return s.toWagerPhase(points), nil
	}

	s.cursor = next
	s.lastMessage = fmt.Sprintf(resource.TextCorrectNextWordMsg, points, next+1, WordsPerPuzzle, s.clues[next])

	return Result{Success: true, Correct: true, Message: s.lastMessage}, nil
}

// toWagerPhase freezes the score as the wagerable amount. Must hold mtx.
func (s *Session) toWagerPhase(points int) Result {
	s.phase = PhaseWager
	s.cursor = -1
	s.lastMessage = fmt.Sprintf(resource.TextAllWordsSolvedMsg, points, s.score)

	return Result{Success: true, Correct: true, Message: s.lastMessage}
}

func (s *Session) SetWager(amount int) (Result, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if !s.isActive || s.phase != PhaseWager {
		return Result{Message: resource.TextNoWagerNowMsg}, nil
	}

	if amount == resource.WagerAllIn {
		amount = s.score
	}

	if amount < 0 || amount > s.score {
		s.lastMessage = fmt.Sprintf(resource.TextWagerOutOfRangeMsg, s.score)
		return Result{Message: s.lastMessage}, nil
	}

	s.wager = amount
	s.wagerSet = true
	s.phase = PhaseThemeGuess

	// first letter of the theme as a hint, same as the hosted game
	if s.theme != "" {
		s.themeRevealed = []int{0}
	}

	s.lastMessage = fmt.Sprintf(resource.TextWagerPlacedMsg, amount, s.themeBlanks())

	return Result{Success: true, Message: s.lastMessage}, nil
}

func (s *Session) submitTheme(ctx context.Context, answer string) (Result, error) {
	logger := logging.FromContext(ctx).Named("game.submitTheme")

	result, err := s.backend.CheckTheme(ctx, s.puzzleID, s.sessionID, answer)
	if err != nil {
		logger.Errorf("failed to check theme: %v", err)
		return Result{Message: resource.TextAnswerFailedMsg}, fmt.Errorf("check theme: %w", err)
	}

	if !result.Correct {
		message := resource.TextWrongThemeMsg
		if result.AttemptsRemaining != nil && *result.AttemptsRemaining <= 3 {
			message += fmt.Sprintf(resource.TextAttemptsLeftMsg, *result.AttemptsRemaining)
		}
		s.lastMessage = message
		return Result{Success: true, Message: message}, nil
	}

	s.score += result.BonusPoints
	message := fmt.Sprintf(resource.TextThemeCorrectMsg, s.theme, result.BonusPoints, s.score)

	return s.endGame(ctx, true, message), nil
}

// endGame submits the score and deactivates the session. The wager is
// resolved server-side from the submission; failures are logged only, the
// symptom is simply a missing history row. Must hold mtx.
func (s *Session) endGame(ctx context.Context, themeCorrect bool, message string) Result {
	logger := logging.FromContext(ctx).Named("game.endGame")

	s.isActive = false
	s.completedAt = time.Now()

	var timeSeconds int
	if !s.startedAt.IsZero() {
		timeSeconds = int(s.completedAt.Sub(s.startedAt).Seconds())
	}

	if _, err := s.backend.SubmitScore(ctx, api.ScoreSubmission{
		PuzzleID:     s.puzzleID,
		SessionID:    s.sessionID,
		FinalScore:   s.score,
		TimeSeconds:  timeSeconds,
		WordsSolved:  len(s.solved),
		ThemeCorrect: themeCorrect,
		WagerAmount:  s.wager,
	}); err != nil {
		logger.Errorf("failed to submit score: %v", err)
	}

	if !s.bonus {
		s.playedDate = time.Now().Format("2006-01-02")
	}

	s.lastMessage = message

	return Result{Success: true, GameOver: true, Message: message}
}

func (s *Session) RevealLetter(ctx context.Context) (Result, error) {
	logger := logging.FromContext(ctx).Named("game.RevealLetter")

	s.mtx.Lock()
	defer s.mtx.Unlock()

	if !s.isActive {
		return Result{Message: resource.TextNoActiveGameMsg}, nil
	}

	if s.phase == PhaseWager {
		return Result{Message: resource.TextNoRevealNowMsg}, nil
	}

	if s.revealsRemaining <= 0 {
		return Result{Message: resource.TextNoRevealsLeftMsg}, nil
	}

	wordIndex := s.cursor
	if s.phase != PhaseWordSolving {
		wordIndex = -1
	}

	result, err := s.backend.RevealLetter(ctx, s.puzzleID, s.sessionID, wordIndex)
	if err != nil {
		logger.Errorf("failed to reveal letter: %v", err)
		return Result{Message: resource.TextRevealFailedMsg}, fmt.Errorf("reveal letter: %w", err)
	}

	if !result.Success {
		message := result.Message
		if message == "" {
			message = resource.TextRevealFailedMsg
		}
		return Result{Message: message}, nil
	}

	if result.RevealsRemaining >= 0 {
		s.revealsRemaining = result.RevealsRemaining
	} else {
		s.revealsRemaining--
	}
	s.revealsUsed++

	if s.phase == PhaseWordSolving {
		s.revealed[wordIndex] = append(s.revealed[wordIndex], result.Position)
	} else {
		s.themeRevealed = append(s.themeRevealed, result.Position)
	}

	s.lastMessage = fmt.Sprintf(resource.TextLetterRevealedMsg, result.Letter, s.revealsRemaining)

	return Result{Success: true, Message: s.lastMessage}, nil
}

func (s *Session) SkipWord() (Result, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if !s.isActive || s.phase != PhaseWordSolving {
		return Result{Message: resource.TextNoSkipNowMsg}, nil
	}

	wordIndex := s.cursor
	if !contains(s.skipped, wordIndex) {
		s.skipped = append(s.skipped, wordIndex)
	}

	if next, ok := s.findNextUnsolved(); ok {
		s.cursor = next
		s.lastMessage = fmt.Sprintf(resource.TextSkippedMsg, next+1, WordsPerPuzzle, s.clues[next])
		return Result{Success: true, Message: s.lastMessage}, nil
	}

	// everything solved or skipped: cycle back to the first skipped word
	for _, i := range s.skipped {
		if !contains(s.solved, i) {
			s.cursor = i
			s.lastMessage = fmt.Sprintf(resource.TextBackToWordMsg, i+1, s.clues[i])
			return Result{Success: true, Message: s.lastMessage}, nil
		}
	}

	return Result{Message: resource.TextNothingToSkipMsg}, nil
}

func (s *Session) RepeatClue() (Result, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if !s.isActive {
		return Result{Message: resource.TextNoActiveGameMsg}, nil
	}

	return Result{Success: true, Message: s.currentClue()}, nil
}

func (s *Session) GiveUp(ctx context.Context) (Result, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if !s.isActive {
		return Result{Message: resource.TextNoActiveGameMsg}, nil
	}

	s.gaveUp = true
	message := fmt.Sprintf(resource.TextGaveUpMsg, strings.Join(s.words, ", "), s.theme, s.score)

	return s.endGame(ctx, false, message), nil
}

func (s *Session) StartSpelling() (Result, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.spellingMode = true
	s.spellingBuffer = nil
	s.lastMessage = resource.TextSpellingStartedMsg

	return Result{Success: true, Message: s.lastMessage}, nil
}

func (s *Session) AddLetter(letter string) (Result, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	letter = strings.ToUpper(strings.TrimSpace(letter))
	if len(letter) != 1 || letter[0] < 'A' || letter[0] > 'Z' {
		return Result{Message: resource.TextInvalidLetterMsg}, nil
	}

	s.spellingBuffer = append(s.spellingBuffer, letter)
	s.lastMessage = fmt.Sprintf(resource.TextSpelledSoFarMsg, strings.Join(s.spellingBuffer, " "))

	return Result{Success: true, Message: s.lastMessage}, nil
}

func (s *Session) FinishSpelling(ctx context.Context, text string) (Result, error) {
	s.mtx.Lock()
	if text != "" {
		s.spellingBuffer = nil
		for _, r := range strings.ToUpper(text) {
			if r >= 'A' && r <= 'Z' {
				s.spellingBuffer = append(s.spellingBuffer, string(r))
			}
		}
	}

	if len(s.spellingBuffer) == 0 {
		s.mtx.Unlock()
		return Result{Message: resource.TextNothingSpelledMsg}, nil
	}

	word := strings.Join(s.spellingBuffer, "")
	s.spellingMode = false
	s.spellingBuffer = nil
	s.mtx.Unlock()

	return s.SubmitAnswer(ctx, word)
}

func (s *Session) CancelSpelling() (Result, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.spellingMode = false
	s.spellingBuffer = nil
	s.lastMessage = fmt.Sprintf(resource.TextSpellingCancelledMsg, s.currentClue())

	return Result{Success: true, Message: s.lastMessage}, nil
}

// HandleTimeout picks an encouragement for a listening timeout; the text
// escalates with consecutive timeouts, same as the voice flow it replaces.
func (s *Session) HandleTimeout() (Result, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.timeoutCount++

	var message string
	switch {
	case s.timeoutCount >= 3:
		message = resource.TextTimeoutLateMsg
	case s.timeoutCount == 2:
		message = resource.TextTimeoutSecondMsg
	default:
		message = resource.TextTimeoutFirstMsg
	}

	s.lastMessage = message

	return Result{Success: true, Message: message}, nil
}

func (s *Session) ResetTimeout() {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	s.timeoutCount = 0
}

// Snapshot builds the read model the sync core polls. It never issues a
// network call.
func (s *Session) Snapshot() State {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	state := State{
		IsActive:     s.isActive,
		Phase:        s.phase,
		GameID:       s.gameID,
		Score:        s.score,
		Reveals:      s.revealsRemaining,
		LastMessage:  s.lastMessage,
		SpellingMode: s.spellingMode,
		Bonus:        s.bonus,
		PlayedToday:  s.playedDate == time.Now().Format("2006-01-02"),
	}

	if s.phase == PhaseWordSolving && s.cursor >= 0 {
		state.WordNumber = s.cursor + 1
		state.Blanks = s.currentBlanks()
	} else {
		state.WordNumber = ThemeSlot
		if s.phase == PhaseThemeGuess {
			state.Blanks = s.themeBlanks()
		}
	}

	state.Clue = s.currentClue()

	if s.phase == PhaseWager || s.phase == PhaseThemeGuess {
		state.CurrentScore = s.score
	}
	if s.wagerSet {
		state.WagerAmount = s.wager
	}

	for _, i := range s.solved {
		if i >= 0 && i < len(s.words) {
			state.SolvedWords = append(state.SolvedWords, s.words[i])
		}
	}
	state.SolvedWordIndices = append(state.SolvedWordIndices, s.solved...)
	for _, i := range s.skipped {
		if !contains(s.solved, i) {
			state.SkippedWordIndices = append(state.SkippedWordIndices, i)
		}
	}

	state.SpellingBuffer = append(state.SpellingBuffer, s.spellingBuffer...)

	if !s.isActive {
		state.Theme = s.theme
	}

	return state
}

func (s *Session) currentClue() string {
	if s.phase == PhaseWordSolving && s.cursor >= 0 && s.cursor < len(s.clues) {
		return s.clues[s.cursor]
	}
	return resource.TextGuessThemeClue
}

func (s *Session) currentBlanks() string {
	if s.phase != PhaseWordSolving || s.cursor < 0 || s.cursor >= len(s.words) {
		return s.themeBlanks()
	}

	return blanks(s.words[s.cursor], s.revealed[s.cursor])
}

func (s *Session) themeBlanks() string {
	if s.theme == "" {
		return ""
	}

	return blanks(s.theme, s.themeRevealed)
}

func blanks(word string, revealed []int) string {
	parts := make([]string, 0, len(word))
	for i, r := range word {
		switch {
		case r == ' ':
			parts = append(parts, " ")
		case containsPos(revealed, i):
			parts = append(parts, string(r))
		default:
			parts = append(parts, "_")
		}
	}

	return strings.Join(parts, " ")
}

// findNextUnsolved scans forward from the cursor, wraps around, then falls
// back to skipped words, matching the hosted game's word order.
func (s *Session) findNextUnsolved() (int, bool) {
	for i := s.cursor + 1; i < WordsPerPuzzle; i++ {
		if !contains(s.solved, i) && !contains(s.skipped, i) {
			return i, true
		}
	}

	for i := 0; i < s.cursor; i++ {
		if !contains(s.solved, i) && !contains(s.skipped, i) {
			return i, true
		}
	}

	for _, i := range s.skipped {
		if !contains(s.solved, i) {
			return i, true
		}
	}

	return 0, false
}

func contains(list []int, n int) bool {
	for _, v := range list {
		if v == n {
			return true
		}
	}
	return false
}

func containsPos(list []int, n int) bool {
	return contains(list, n)
}
