package wordowl

import (
	"time"

	"github.com/wordowl-games/wordowl/internal/database"
)

type Config struct {
	Debug bool `envconfig:"WORDOWL_DEBUG" default:"false"`

	// Port serves the panel: websocket stream plus the command REST surface.
	Port     string `envconfig:"WORDOWL_PORT" default:"8586"`
	ProfPort string `envconfig:"WORDOWL_PROF_PORT" default:"8888"`

	APIBaseURL string        `envconfig:"WORDOWL_API_BASE_URL" default:"https://puzzleapi.techshit.xyz"`
	APITimeout time.Duration `envconfig:"WORDOWL_API_TIMEOUT" default:"30s"`

	// PollInterval is how often the mirror re-reads the game snapshot while
	// the game tab is visible. Lower is snappier, higher is cheaper.
	PollInterval time.Duration `envconfig:"WORDOWL_POLL_INTERVAL" default:"1s"`

	LeaderboardLimit int `envconfig:"WORDOWL_LEADERBOARD_LIMIT" default:"20"`
	HistoryLimit     int `envconfig:"WORDOWL_HISTORY_LIMIT" default:"10"`

	// DeviceName is sent once at registration; the service mints an api key
	// for it which is then persisted locally.
	DeviceName  string `envconfig:"WORDOWL_DEVICE_NAME" default:"wordowl"`
	DisplayName string `envconfig:"WORDOWL_DISPLAY_NAME" default:""`

	CacheSize int `envconfig:"WORDOWL_CACHE_SIZE" default:"1024"`

	Db database.Config
}
