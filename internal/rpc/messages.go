package rpc

import "time"

type Empty struct{}

type PingResponse struct {
	Status string `json:"status"`
}

type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type SessionResponse struct {
	User         User   `json:"user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type ChangePasswordRequest struct {
	Password string `json:"password"`
}

type Profile struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
}

type ListProfilesResponse struct {
	Profiles []Profile `json:"profiles"`
}

type CreateProfileRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type UpdateProfileRequest struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

type DeleteProfileRequest struct {
	ID int64 `json:"id"`
}

// Title is a backend title record keyed by the external catalog id.
type Title struct {
	ID          int64     `json:"id"`
	TMDBID      string    `json:"tmdb_id"`
	IMDbID      string    `json:"imdb_id,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	PosterURL   string    `json:"poster_url"`
	BackdropURL string    `json:"backdrop_url"`
	ReleaseYear int       `json:"release_year"`
	Rating      float64   `json:"rating"`
	Type        string    `json:"type"`
	CreatedAt   time.Time `json:"created_at"`
}

type FindTitleRequest struct {
	TMDBID string `json:"tmdb_id"`
}

type CreateTitleRequest struct {
	Title Title `json:"title"`
}

// EntryRequest addresses a (profile, title) pair in the watchlist or history.
type EntryRequest struct {
	ProfileID int64 `json:"profile_id"`
	TitleID   int64 `json:"title_id"`
}

type ListRequest struct {
	ProfileID int64 `json:"profile_id"`
}

type WatchlistEntry struct {
	ID        int64     `json:"id"`
	ProfileID int64     `json:"profile_id"`
	TitleID   int64     `json:"title_id"`
	AddedAt   time.Time `json:"added_at"`
}

type WatchlistRow struct {
	ID      int64     `json:"id"`
	AddedAt time.Time `json:"added_at"`
	Title   Title     `json:"title"`
}

type ListWatchlistResponse struct {
	Rows []WatchlistRow `json:"rows"`
}

type HistoryEntry struct {
	ID          int64     `json:"id"`
	ProfileID   int64     `json:"profile_id"`
	TitleID     int64     `json:"title_id"`
	LastWatched time.Time `json:"last_watched"`
}

type InsertHistoryRequest struct {
	ProfileID int64     `json:"profile_id"`
	TitleID   int64     `json:"title_id"`
	At        time.Time `json:"at"`
}

type TouchHistoryRequest struct {
	ID        int64     `json:"id"`
	ProfileID int64     `json:"profile_id"`
	At        time.Time `json:"at"`
}

type HistoryRow struct {
	ID          int64     `json:"id"`
	LastWatched time.Time `json:"last_watched"`
	Title       Title     `json:"title"`
}

type ListHistoryResponse struct {
	Rows []HistoryRow `json:"rows"`
}
