package resource

const (
	ProjectName    = "wordowl"
	ProjectVersion = "1.1.5"
	GithubURL      = "https://github.com/wordowl-games/wordowl"
)

// WagerAllIn is the sentinel wager meaning "stake the entire score". It is
// distinct from 0, which means no wager at all.
const WagerAllIn = -1

const Graffiti = `
                      _               _
 __      _____  _ __ __| | _____      _| |
 \ \ /\ / / _ \| '__/ _' |/ _ \ \ /\ / / |
  \ V  V / (_) | | | (_| | (_) \ V  V /| |
   \_/\_/ \___/|_|  \__,_|\___/ \_/\_/ |_|

`

const GreetingCLI = "%s v%s — five words, one theme\n%s\n\n"
