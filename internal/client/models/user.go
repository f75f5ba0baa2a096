// Package models defines client-side data models used by the Notflix CLI:
// the signed-in user, viewing profiles, catalog items and the watch-state
// rows read from the backend.
package models

import "time"

// User is the authenticated identity held by the session store.
type User struct {
	ID    string
	Email string
}

// Profile is a named, colored viewing identity under one account.
type Profile struct {
	ID        int64
	UserID    string
	Name      string
	Color     string
	CreatedAt time.Time
}

// StoredProfile is the persisted "current profile" pointer.
type StoredProfile struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

func (p Profile) Stored() StoredProfile {
	return StoredProfile{ID: p.ID, Name: p.Name, Color: p.Color}
}
