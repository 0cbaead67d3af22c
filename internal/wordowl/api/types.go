package api

// Payload schemas are owned by the puzzle service; every field here is
// decoded defensively and missing values stay at their zero value.

type User struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
}

// Name returns the best display identity the service gave us.
func (u User) Name() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Username
}

type RegisterDeviceResult struct {
	APIKey string `json:"api_key"`
	User   User   `json:"user"`
}

type PuzzleWord struct {
	Word string `json:"word"`
	Clue string `json:"clue"`
}

type Puzzle struct {
	ID    string       `json:"id"`
	Date  string       `json:"date"`
	Theme string       `json:"theme"`
	Bonus bool         `json:"is_bonus"`
	Words []PuzzleWord `json:"words"`
}

type SessionStart struct {
	GameID           string `json:"game_id"`
	SessionID        string `json:"session_id"`
	RevealsRemaining int    `json:"reveals_remaining"`
}

type CheckWordResult struct {
	Correct           bool `json:"correct"`
	PointsEarned      int  `json:"points_earned"`
	RevealsRemaining  int  `json:"reveals_remaining"`
	AttemptsRemaining *int `json:"attempts_remaining"`
}

type CheckThemeResult struct {
	Correct           bool `json:"correct"`
	BonusPoints       int  `json:"bonus_points"`
	AttemptsRemaining *int `json:"attempts_remaining"`
}

type RevealResult struct {
	Success          bool   `json:"success"`
	Letter           string `json:"letter"`
	Position         int    `json:"position"`
	RevealsRemaining int    `json:"reveals_remaining"`
	Message          string `json:"message"`
}

type ScoreSubmission struct {
	PuzzleID     string `json:"puzzle_id"`
	SessionID    string `json:"session_id"`
	FinalScore   int    `json:"final_score"`
	TimeSeconds  int    `json:"time_seconds"`
	WordsSolved  int    `json:"words_solved"`
	ThemeCorrect bool   `json:"theme_correct"`
	WagerAmount  int    `json:"wager_amount"`
}

type ScoreResult struct {
	FinalScore int  `json:"final_score"`
	WagerWon   bool `json:"wager_won"`
	Rank       int  `json:"rank"`
}

type LeaderboardEntry struct {
	Rank        int    `json:"rank"`
	DisplayName string `json:"display_name"`
	Score       int    `json:"score"`
	GamesPlayed int    `json:"games_played"`
}

// Leaderboard entries arrive rank-ascending; the client never re-sorts.
type Leaderboard struct {
	Period  string             `json:"period"`
	Entries []LeaderboardEntry `json:"entries"`
}

type StatsSplit struct {
	GamesPlayed  int     `json:"games_played"`
	TotalScore   int     `json:"total_score"`
	AverageScore float64 `json:"average_score"`
	BestScore    int     `json:"best_score"`
}

type Stats struct {
	GamesPlayed   int         `json:"games_played"`
	TotalScore    int         `json:"total_score"`
	AverageScore  float64     `json:"average_score"`
	BestScore     int         `json:"best_score"`
	CurrentStreak int         `json:"current_streak"`
	BestStreak    int         `json:"best_streak"`
	PerfectGames  int         `json:"perfect_games"`
	WordsSolved   int         `json:"words_solved"`
	Daily         *StatsSplit `json:"daily"`
	Bonus         *StatsSplit `json:"bonus"`
}

// GameRecord is one past game's full breakdown, fetched on demand.
type GameRecord struct {
	ID           string `json:"id"`
	PuzzleDate   string `json:"puzzle_date"`
	GameType     string `json:"game_type"`
	FinalScore   int    `json:"final_score"`
	WordScore    int    `json:"word_score"`
	TimeBonus    int    `json:"time_bonus"`
	RevealBonus  int    `json:"reveal_bonus"`
	WagerAmount  int    `json:"wager_amount"`
	WagerWon     bool   `json:"wager_won"`
	RevealsUsed  int    `json:"reveals_used"`
	TimeSeconds  int    `json:"time_seconds"`
	WordsSolved  int    `json:"words_solved"`
	ThemeCorrect bool   `json:"theme_correct"`
	PlayedAt     string `json:"played_at"`
}

type GamesPage struct {
	Games []GameRecord `json:"games"`
}

type healthResult struct {
	Status string `json:"status"`
}

type errorResult struct {
	Detail string `json:"detail"`
}
