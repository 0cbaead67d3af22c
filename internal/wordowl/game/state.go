package game

const (
	WordsPerPuzzle = 5
	BaseReveals    = 3
	// ThemeSlot is the sixth progress slot, shown after the five words.
	ThemeSlot = 6
)

type Phase uint8

const (
	PhaseWordSolving Phase = iota + 1
	PhaseWager
	PhaseThemeGuess
)

func (p Phase) String() string {
	switch p {
	case PhaseWordSolving:
		return "word_solving"
	case PhaseWager:
		return "theme_wager"
	case PhaseThemeGuess:
		return "theme_guess"
	default:
		return "unknown"
	}
}

// State is the attribute bag the sync core reads on every refresh tick. It
// is a value copy; mutating it never touches the session.
type State struct {
	IsActive bool   `json:"isActive"`
	Phase    Phase  `json:"phase"`
	GameID   string `json:"gameId"`

	// WordNumber is 1..5 during word solving, ThemeSlot afterwards.
	WordNumber int    `json:"wordNumber"`
	Score      int    `json:"score"`
	Reveals    int    `json:"reveals"`
	Blanks     string `json:"blanks"`
	Clue       string `json:"clue"`

	// Theme is populated only once the game is over.
	Theme string `json:"theme"`

	SolvedWords        []string `json:"solvedWords"`
	SolvedWordIndices  []int    `json:"solvedWordIndices"`
	SkippedWordIndices []int    `json:"skippedWordIndices"`

	LastMessage string `json:"lastMessage"`

	// CurrentScore is the score available to wager, set in the wager phase.
	CurrentScore int `json:"currentScore"`
	WagerAmount  int `json:"wagerAmount"`

	SpellingMode   bool     `json:"spellingMode"`
	SpellingBuffer []string `json:"spellingBuffer"`

	// PlayedToday reports whether today's scheduled puzzle was already
	// completed, so the idle view can tell "come back tomorrow" from
	// "never played".
	PlayedToday bool `json:"playedToday"`
	Bonus       bool `json:"bonus"`
}

// Result is the immediate outcome of one command, used for voice feedback.
// Displayed state is always re-derived from the next refresh instead.
type Result struct {
	Success  bool   `json:"success"`
	Correct  bool   `json:"correct"`
	GameOver bool   `json:"gameOver"`
	Message  string `json:"message"`
}
