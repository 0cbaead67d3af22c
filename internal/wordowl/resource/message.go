package resource

// manage text messages
var (
	TextGameStartedMsg     = "Let's play! Word %d of %d. %s"
	TextNoPuzzleMsg        = "No puzzle available today"
	TextStartFailedMsg     = "Failed to start game, please try again"
	TextNoActiveGameMsg    = "No active game"
	TextEmptyAnswerMsg     = "Say an answer first"
	TextNoClueMsg          = "No clue available"
	TextCorrectNextWordMsg = "Correct! %d points. Word %d of %d. %s"
	TextWrongAnswerMsg     = "Not quite. Try again!"
	TextWrongThemeMsg      = "Not the theme. Try again!"
	TextAttemptsLeftMsg    = " (%d attempts left)"
	TextAnswerFailedMsg    = "Error checking answer"

	TextAllWordsSolvedMsg  = "Correct! %d points. All words solved! You have %d points. How much will you wager on the theme?"
	TextWagerFirstMsg      = "Place your wager first, from 0 to %d points, or say all in"
	TextNoWagerNowMsg      = "You can only wager after solving all the words"
	TextWagerOutOfRangeMsg = "Wager must be between 0 and %d points"
	TextWagerPlacedMsg     = "You wagered %d points. Now guess the theme: %s"
	TextThemeCorrectMsg    = "Correct! The theme was %s. Bonus %d points! Final score: %d"
	TextGuessThemeClue     = "Guess the theme!"

	TextNoRevealNowMsg    = "No letters to reveal during the wager"
	TextNoRevealsLeftMsg  = "No reveals remaining"
	TextRevealFailedMsg   = "Cannot reveal a letter right now"
	TextLetterRevealedMsg = "Revealed letter %s. %d reveals left."

	TextNoSkipNowMsg     = "Cannot skip now"
	TextSkippedMsg       = "Skipped. Word %d of %d. %s"
	TextBackToWordMsg    = "Back to word %d. %s"
	TextNothingToSkipMsg = "No more words to skip to"

	TextGaveUpMsg = "Game over. The words were: %s. The theme was: %s. Final score: %d"

	TextSpellingStartedMsg   = "Spelling mode. Say each letter, then say 'done' when finished."
	TextSpelledSoFarMsg      = "Spelled so far: %s"
	TextInvalidLetterMsg     = "Invalid letter"
	TextNothingSpelledMsg    = "Nothing spelled"
	TextSpellingCancelledMsg = "Spelling cancelled. %s"

	TextTimeoutFirstMsg  = "Still thinking?"
	TextTimeoutSecondMsg = "Take your time."
	TextTimeoutLateMsg   = "I'll wait. Say your answer when ready."
)
