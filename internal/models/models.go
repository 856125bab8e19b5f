package models

import "time"

type Profile struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

type Deck struct {
	ID          int64     `json:"id"`
	ProfileID   int64     `json:"profile_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CardCount   int       `json:"card_count"`
	CreatedAt   time.Time `json:"created_at"`
}
