package domain

import (
	"time"

	"github.com/google/uuid"
)

// Court is a playable venue listed on the map.
type Court struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	Sport     string    `json:"sport"`
	Surface   string    `json:"surface,omitempty"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Lights    bool      `json:"lights"`
	CreatedAt time.Time `json:"created_at"`
}
