package models

import "time"

type Profile struct {
	ID        int64
	UserID    string
	Name      string
	Color     string
	CreatedAt time.Time
}
