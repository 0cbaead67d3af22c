package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/enescakir/emoji"
	"github.com/wordowl-games/wordowl/internal/strpool"
	"github.com/wordowl-games/wordowl/internal/wordowl/api"
	"github.com/wordowl-games/wordowl/internal/wordowl/game"
)

// Model is everything a render needs: the mirrored read models plus the UI
// selection. Any pointer may be nil; a nil read model renders as a loading
// placeholder or is omitted, never as an error.
type Model struct {
	Game        game.State
	User        *api.User
	Stats       *api.Stats
	Leaderboard *api.Leaderboard
	History     []api.GameRecord
	// HistoryLoaded distinguishes "not fetched yet" from "fetched, empty".
	HistoryLoaded bool
	// LastGame is the end-of-game summary captured on the active→inactive
	// edge; cleared when the next game starts.
	LastGame *api.GameRecord
	View     State
}

// Render projects the model into the panel's text content. It has no side
// effects: rendering the same model twice yields identical output.
func Render(m Model) string {
	if m.View.HelpOpen {
		return renderHelp()
	}

	switch m.View.Tab {
	case TabLeaderboard:
		return renderLeaderboard(m)
	case TabStats:
		return renderStats(m)
	default:
		return renderGame(m)
	}
}

func renderGame(m Model) string {
	buf := strpool.Get()
	defer func() {
		buf.Reset()
		strpool.Put(buf)
	}()

	_, _ = fmt.Fprintf(buf, "%s *Word Owl*\n\n", emoji.Owl.String())

	s := m.Game
	if !s.IsActive {
		if m.LastGame != nil {
			writeSummary(buf, m.LastGame)
			return buf.String()
		}
		writeIdle(buf, s.PlayedToday)
		return buf.String()
	}

	switch s.Phase {
	case game.PhaseWager:
		writeWager(buf, s)
	case game.PhaseThemeGuess:
		writeThemeGuess(buf, s)
	default:
		writeWordSolving(buf, s)
	}

	return buf.String()
}

func writeWordSolving(buf *strings.Builder, s game.State) {
	_, _ = fmt.Fprintf(buf, "Word %d of %d\n\n", s.WordNumber, game.WordsPerPuzzle)
	_, _ = fmt.Fprintf(buf, "%s %s\n\n", emoji.LightBulb.String(), s.Clue)
	_, _ = fmt.Fprintf(buf, "`%s`\n\n", s.Blanks)
	_, _ = fmt.Fprintf(buf, "%s\n\n", renderDots(s))
	_, _ = fmt.Fprintf(
		buf,
		"%s %d points   %s %d reveals left\n",
		emoji.HundredPoints.String(),
		s.Score,
		emoji.Flashlight.String(),
		s.Reveals,
	)

	if s.SpellingMode {
		spelled := "(nothing yet)"
		if len(s.SpellingBuffer) > 0 {
			spelled = strings.Join(s.SpellingBuffer, " ")
		}
		_, _ = fmt.Fprintf(buf, "\n%s Spelling: %s\n", emoji.InputLatinLetters.String(), spelled)
	}
}

func writeWager(buf *strings.Builder, s game.State) {
	_, _ = fmt.Fprintf(buf, "%s All five words solved!\n\n", emoji.PartyPopper.String())
	_, _ = fmt.Fprintf(buf, "You have *%d points*\n\n", s.CurrentScore)
	_, _ = fmt.Fprintf(buf, "Wager from 0 to %d points on guessing the theme,\nor go all in\n\n", s.CurrentScore)
	_, _ = fmt.Fprintf(buf, "%s\n", renderDots(s))
}

func writeThemeGuess(buf *strings.Builder, s game.State) {
	_, _ = fmt.Fprintf(buf, "%s Guess the theme!\n\n", emoji.DirectHit.String())

	if len(s.SolvedWords) > 0 {
		buf.WriteString("The words were: ")
		for i, word := range s.SolvedWords {
			if i > 0 {
				buf.WriteString(", ")
			}
			_, _ = fmt.Fprintf(buf, "*%s*", word)
		}
		buf.WriteString("\n\n")
	}

	_, _ = fmt.Fprintf(buf, "`%s`\n\n", s.Blanks)
	_, _ = fmt.Fprintf(buf, "Wagered: %d points\n\n", s.WagerAmount)
	_, _ = fmt.Fprintf(buf, "%s\n", renderDots(s))
}

func writeIdle(buf *strings.Builder, playedToday bool) {
	if playedToday {
		_, _ = fmt.Fprintf(
			buf,
			"%s You already solved today's puzzle.\n\nCome back tomorrow, or start a bonus game!\n",
			emoji.CheckMarkButton.String(),
		)
		return
	}

	_, _ = fmt.Fprintf(
		buf,
		"%s Ready for today's puzzle?\n\nFive words, one theme. Say \"start the puzzle\" or press start.\n",
		emoji.GameDie.String(),
	)
}

func writeSummary(buf *strings.Builder, rec *api.GameRecord) {
	_, _ = fmt.Fprintf(buf, "%s Game over!\n\n", emoji.ChequeredFlag.String())
	_, _ = fmt.Fprintf(buf, "Words: +%d\n", rec.WordScore)
	_, _ = fmt.Fprintf(buf, "Time bonus: +%d\n", rec.TimeBonus)
	_, _ = fmt.Fprintf(buf, "Reveal bonus: +%d\n", rec.RevealBonus)

	if rec.WagerAmount > 0 {
		if rec.WagerWon {
			_, _ = fmt.Fprintf(buf, "Wager: +%d\n", rec.WagerAmount)
		} else {
			_, _ = fmt.Fprintf(buf, "Wager: -%d\n", rec.WagerAmount)
		}
	}

	_, _ = fmt.Fprintf(buf, "\n%s *Final score: %d*\n\n", emoji.Trophy.String(), rec.FinalScore)
	_, _ = fmt.Fprintf(
		buf,
		"%d/%d words, %d reveals, %ds",
		rec.WordsSolved,
		game.WordsPerPuzzle,
		rec.RevealsUsed,
		rec.TimeSeconds,
	)
	if rec.ThemeCorrect {
		_, _ = fmt.Fprintf(buf, ", theme %s", emoji.CheckMarkButton.String())
	} else {
		_, _ = fmt.Fprintf(buf, ", theme %s", emoji.CrossMark.String())
	}
	buf.WriteString("\n")
}

// renderDots draws the six progress slots: five words and the theme. Each
// word slot gets exactly one class: solved, skipped, pending (the current
// word while solving) or neutral. The theme slot pulses only during the
// theme guess.
func renderDots(s game.State) string {
	buf := strpool.Get()
	defer func() {
		buf.Reset()
		strpool.Put(buf)
	}()

	for slot := 0; slot < game.WordsPerPuzzle; slot++ {
		switch {
		case containsInt(s.SolvedWordIndices, slot):
			buf.WriteString(emoji.GreenCircle.String())
		case containsInt(s.SkippedWordIndices, slot):
			buf.WriteString(emoji.YellowCircle.String())
		case s.IsActive && s.Phase == game.PhaseWordSolving && s.WordNumber == slot+1:
			buf.WriteString(emoji.RedCircle.String())
		default:
			buf.WriteString(emoji.WhiteCircle.String())
		}
		buf.WriteString(" ")
	}

	if s.IsActive && s.Phase == game.PhaseThemeGuess {
		buf.WriteString(emoji.PurpleCircle.String())
	} else {
		buf.WriteString(emoji.WhiteCircle.String())
	}

	return buf.String()
}

func renderLeaderboard(m Model) string {
	buf := strpool.Get()
	defer func() {
		buf.Reset()
		strpool.Put(buf)
	}()

	_, _ = fmt.Fprintf(buf, "%s *Leaderboard*\n\n", emoji.Trophy.String())
	_, _ = fmt.Fprintf(buf, "%s\n\n", renderPeriodSelector(m.View.Period))

	if m.Leaderboard == nil {
		_, _ = fmt.Fprintf(buf, "%s Loading…\n", emoji.HourglassNotDone.String())
		return buf.String()
	}

	if len(m.Leaderboard.Entries) == 0 {
		buf.WriteString("No scores yet for this period\n")
		return buf.String()
	}

	var medalIcon = func(n int) string {
		var medal string
		if n == 0 {
			medal = emoji.FirstPlaceMedal.String()
		} else if n == 1 {
			medal = emoji.SecondPlaceMedal.String()
		} else if n == 2 {
			medal = emoji.ThirdPlaceMedal.String()
		}

		return medal
	}

	for n, entry := range m.Leaderboard.Entries {
		_, _ = fmt.Fprintf(
			buf,
			"%s. %s*%s*, %s points",
			strconv.Itoa(entry.Rank),
			medalIcon(n),
			entry.DisplayName,
			strconv.Itoa(entry.Score),
		)
		if entry.GamesPlayed > 0 {
			_, _ = fmt.Fprintf(buf, ", %s games", strconv.Itoa(entry.GamesPlayed))
		}
		buf.WriteString("\n")
	}

	return buf.String()
}

func renderPeriodSelector(selected Period) string {
	buf := strpool.Get()
	defer func() {
		buf.Reset()
		strpool.Put(buf)
	}()

	for i, p := range []Period{PeriodDaily, PeriodWeekly, PeriodAllTime} {
		if i > 0 {
			buf.WriteString(" | ")
		}
		if p == selected {
			_, _ = fmt.Fprintf(buf, "[*%s*]", p)
		} else {
			buf.WriteString(string(p))
		}
	}

	return buf.String()
}

func renderStats(m Model) string {
	buf := strpool.Get()
	defer func() {
		buf.Reset()
		strpool.Put(buf)
	}()

	_, _ = fmt.Fprintf(buf, "%s *My stats*", emoji.BarChart.String())
	if m.User != nil {
		_, _ = fmt.Fprintf(buf, " — %s", m.User.Name())
	}
	buf.WriteString("\n\n")

	if m.Stats == nil {
		_, _ = fmt.Fprintf(buf, "%s Loading…\n", emoji.HourglassNotDone.String())
		return buf.String()
	}

	s := m.Stats
	_, _ = fmt.Fprintf(buf, "Games played: %d\n", s.GamesPlayed)
	_, _ = fmt.Fprintf(buf, "Total score: %d\n", s.TotalScore)
	_, _ = fmt.Fprintf(buf, "Average score: %.1f\n", s.AverageScore)
	_, _ = fmt.Fprintf(buf, "Best score: %d\n", s.BestScore)
	_, _ = fmt.Fprintf(buf, "Streak: %d (best %d)\n", s.CurrentStreak, s.BestStreak)
	_, _ = fmt.Fprintf(buf, "Perfect games: %d\n", s.PerfectGames)
	_, _ = fmt.Fprintf(buf, "Words solved: %d\n", s.WordsSolved)

	if s.Daily != nil {
		_, _ = fmt.Fprintf(
			buf,
			"\nDaily: %d games, best %d, avg %.1f\n",
			s.Daily.GamesPlayed,
			s.Daily.BestScore,
			s.Daily.AverageScore,
		)
	}
	if s.Bonus != nil {
		_, _ = fmt.Fprintf(
			buf,
			"Bonus: %d games, best %d, avg %.1f\n",
			s.Bonus.GamesPlayed,
			s.Bonus.BestScore,
			s.Bonus.AverageScore,
		)
	}

	buf.WriteString("\n")
	writeHistory(buf, m)

	return buf.String()
}

func writeHistory(buf *strings.Builder, m Model) {
	_, _ = fmt.Fprintf(buf, "%s *Recent games*", emoji.Scroll.String())
	if m.View.HistoryFilter != "" {
		_, _ = fmt.Fprintf(buf, " (%s)", m.View.HistoryFilter)
	}
	buf.WriteString("\n\n")

	if !m.HistoryLoaded {
		_, _ = fmt.Fprintf(buf, "%s Loading…\n", emoji.HourglassNotDone.String())
		return
	}

	if len(m.History) == 0 {
		buf.WriteString("No games yet\n")
		return
	}

	for _, rec := range m.History {
		_, _ = fmt.Fprintf(buf, "%s — %d points (%s)\n", rec.PuzzleDate, rec.FinalScore, rec.GameType)
		if !m.View.Expanded[rec.ID] {
			continue
		}

		_, _ = fmt.Fprintf(buf, "    words +%d, time +%d, reveals +%d", rec.WordScore, rec.TimeBonus, rec.RevealBonus)
		if rec.WagerAmount > 0 {
			if rec.WagerWon {
				_, _ = fmt.Fprintf(buf, ", wager +%d", rec.WagerAmount)
			} else {
				_, _ = fmt.Fprintf(buf, ", wager -%d", rec.WagerAmount)
			}
		}
		_, _ = fmt.Fprintf(
			buf,
			"\n    %d/%d words, %d reveals, %ds",
			rec.WordsSolved,
			game.WordsPerPuzzle,
			rec.RevealsUsed,
			rec.TimeSeconds,
		)
		if rec.ThemeCorrect {
			_, _ = fmt.Fprintf(buf, ", theme %s\n", emoji.CheckMarkButton.String())
		} else {
			_, _ = fmt.Fprintf(buf, ", theme %s\n", emoji.CrossMark.String())
		}
	}
}

func renderHelp() string {
	buf := strpool.Get()
	defer func() {
		buf.Reset()
		strpool.Put(buf)
	}()

	_, _ = fmt.Fprintf(buf, "%s *How to play*\n\n", emoji.Bookmark.String())
	buf.WriteString("Solve five words from their clues, then wager your points on guessing the theme that connects them.\n\n")
	buf.WriteString("Say an answer, or:\n")
	buf.WriteString("- \"reveal a letter\" — show one letter for a point cost\n")
	buf.WriteString("- \"skip\" — come back to this word later\n")
	buf.WriteString("- \"repeat the clue\"\n")
	buf.WriteString("- \"spell it\" — spell your answer letter by letter\n")
	buf.WriteString("- \"I give up\" — end the game and reveal everything\n")

	return buf.String()
}

func containsInt(list []int, n int) bool {
	for _, v := range list {
		if v == n {
			return true
		}
	}
	return false
}
