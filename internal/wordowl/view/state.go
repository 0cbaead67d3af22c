package view

type Tab string

const (
	TabGame        Tab = "game"
	TabLeaderboard Tab = "leaderboard"
	TabStats       Tab = "stats"
)

type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodAllTime Period = "alltime"
)

func ValidTab(t Tab) bool {
	return t == TabGame || t == TabLeaderboard || t == TabStats
}

func ValidPeriod(p Period) bool {
	return p == PeriodDaily || p == PeriodWeekly || p == PeriodAllTime
}

// State is the transient UI selection the server never sees: active tab,
// filters, expansion and the help overlay. It is a plain serializable value
// so rendering stays a pure function of (mirror, State).
type State struct {
	Tab           Tab             `json:"tab"`
	Period        Period          `json:"period"`
	HistoryFilter string          `json:"historyFilter"`
	Expanded      map[string]bool `json:"expanded"`
	HelpOpen      bool            `json:"helpOpen"`
}

func NewState() State {
	return State{
		Tab:      TabGame,
		Period:   PeriodDaily,
		Expanded: map[string]bool{},
	}
}
