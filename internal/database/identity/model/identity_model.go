package model

import "time"

// Identity is the device registration issued by the puzzle service. It is
// created once on first start and reused across restarts.
type Identity struct {
	APIKey       string    `json:"apiKey"`
	UserID       string    `json:"userId"`
	Username     string    `json:"username"`
	DisplayName  string    `json:"displayName"`
	DeviceName   string    `json:"deviceName"`
	RegisteredAt time.Time `json:"registeredAt"`
}
