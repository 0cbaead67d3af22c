package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindUser        Kind = "user"
	KindStats       Kind = "stats"
	KindLeaderboard Kind = "leaderboard"
)

// Record is one serialized read model, written on shutdown and loaded once
// at startup so the panel has something to render before the first fetch.
type Record struct {
	ID      uuid.UUID       `json:"id"`
	Kind    Kind            `json:"kind"`
	SavedAt time.Time       `json:"savedAt"`
	Payload json.RawMessage `json:"payload"`
}

func NewRecord(kind Kind, payload []byte) Record {
	return Record{ID: uuid.New(), Kind: kind, SavedAt: time.Now(), Payload: payload}
}
