package services

import "github.com/dmitrijs2005/notflix/internal/client/models"

const (
	refreshTokenKey      = "session/refresh_token"
	currentProfilePrefix = "current_profile/"
)

func currentProfileKey(userID string) string {
	return currentProfilePrefix + userID
}

func cloneProfile(p *models.Profile) *models.Profile {
	if p == nil {
		return nil
	}
	cp := *p
	return &cp
}

func sameProfile(a, b *models.Profile) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.ID == b.ID
}
