package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/dmitrijs2005/notflix/internal/client/models"
	"github.com/dmitrijs2005/notflix/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/notflix/internal/common"
	"github.com/dmitrijs2005/notflix/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var alice = &models.User{ID: "u1", Email: "alice@example.com"}

func newProfiles(t *testing.T) (*ProfileStore, *fakeBackend, *metadata.SQLiteRepository) {
	t.Helper()
	f := newFakeBackend()
	meta := setupMeta(t)
	return NewProfileStore(f, meta, logging.Nop()), f, meta
}

func storedPointer(t *testing.T, meta metadata.Repository, userID string) models.StoredProfile {
	t.Helper()
	raw, err := meta.Get(context.Background(), currentProfileKey(userID))
	require.NoError(t, err)
	var sp models.StoredProfile
	require.NoError(t, json.Unmarshal(raw, &sp))
	return sp
}

func TestOnUserChanged_CreatesDefaultProfileOnce(t *testing.T) {
	ctx := context.Background()
	s, f, meta := newProfiles(t)

	var seen []*models.Profile
	s.Subscribe(func(_ context.Context, p *models.Profile) { seen = append(seen, p) })
	assert.True(t, s.Loading())

	s.OnUserChanged(ctx, alice)

	require.Len(t, s.Profiles(), 1)
	cur := s.Current()
	require.NotNil(t, cur)
	assert.Equal(t, "alice", cur.Name)
	assert.Equal(t, common.DefaultProfileColor, cur.Color)
	assert.Equal(t, cur.ID, storedPointer(t, meta, "u1").ID)
	require.Len(t, seen, 1)
	assert.False(t, s.Loading())

	s.FetchProfiles(ctx)
	assert.Equal(t, 1, f.count("CreateProfile"))
	assert.Len(t, seen, 1, "same selection must not notify again")
}

func TestDefaultProfileName(t *testing.T) {
	tests := []struct {
		email string
		want  string
	}{
		{"alice@example.com", "alice"},
		{"al@example.com", "User"},
		{"averyveryverylongemailname@example.com", "averyveryverylongema"},
		{"@example.com", "User"},
	}
	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.want, defaultProfileName(tt.email))
		})
	}
}

func TestFetchProfiles_RestoresPointer(t *testing.T) {
	ctx := context.Background()
	s, f, meta := newProfiles(t)
	f.addProfile("Main")
	kids := f.addProfile("Kids")

	b, err := json.Marshal(kids.Stored())
	require.NoError(t, err)
	require.NoError(t, meta.Set(ctx, currentProfileKey("u1"), b))

	s.OnUserChanged(ctx, alice)

	require.NotNil(t, s.Current())
	assert.Equal(t, kids.ID, s.Current().ID)
	assert.Equal(t, []string{"Main", "Kids"}, names(s.Profiles()))
}

func TestFetchProfiles_StalePointerFallsBackToFirst(t *testing.T) {
	ctx := context.Background()
	s, f, meta := newProfiles(t)
	main := f.addProfile("Main")
	f.addProfile("Kids")

	require.NoError(t, meta.Set(ctx, currentProfileKey("u1"), []byte(`{"id":999,"name":"Gone","color":"bg-red-600"}`)))

	s.OnUserChanged(ctx, alice)

	assert.Equal(t, main.ID, s.Current().ID)
	assert.Equal(t, main.ID, storedPointer(t, meta, "u1").ID)
}

func TestFetchProfiles_ErrorLeavesEmptyList(t *testing.T) {
	ctx := context.Background()
	s, f, _ := newProfiles(t)
	f.setErr("ListProfiles", errBoom)

	assert.Empty(t, s.FetchProfiles(ctx), "signed out fetch is a no-op")
	assert.Equal(t, 0, f.count("ListProfiles"))

	s.OnUserChanged(ctx, alice)
	assert.Empty(t, s.Profiles())
	assert.Nil(t, s.Current())
	assert.Equal(t, 0, f.count("CreateProfile"))
	assert.False(t, s.Loading())
}

func TestAddProfile_Validation(t *testing.T) {
	ctx := context.Background()
	s, f, _ := newProfiles(t)

	require.ErrorIs(t, s.AddProfile(ctx, "Kids", common.DefaultProfileColor), common.ErrNoSession)

	s.OnUserChanged(ctx, alice)
	created := f.count("CreateProfile")

	for _, name := range []string{"", "ab", "   ", "a-name-well-over-twenty-runes"} {
		require.ErrorIs(t, s.AddProfile(ctx, name, common.DefaultProfileColor), common.ErrorValidation, name)
	}
	require.ErrorIs(t, s.AddProfile(ctx, "Kids", "bg-chartreuse"), common.ErrorValidation)
	assert.Equal(t, created, f.count("CreateProfile"))

	require.NoError(t, s.AddProfile(ctx, "  Kids  ", "bg-blue-600"))
	assert.Contains(t, names(s.Profiles()), "Kids")
}

func TestAddProfile_RejectsSixth(t *testing.T) {
	ctx := context.Background()
	s, f, _ := newProfiles(t)
	for _, n := range []string{"One", "Two", "Three", "Four", "Five"} {
		f.addProfile(n)
	}
	s.OnUserChanged(ctx, alice)

	err := s.AddProfile(ctx, "Six", common.DefaultProfileColor)
	var ve *common.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "profiles", ve.Field)
	assert.Equal(t, 0, f.count("CreateProfile"))
}

func TestUpdateProfile_CurrentUpdatesPointer(t *testing.T) {
	ctx := context.Background()
	s, f, meta := newProfiles(t)
	p := f.addProfile("Main")
	s.OnUserChanged(ctx, alice)

	require.NoError(t, s.UpdateProfile(ctx, p.ID, "Renamed", "bg-blue-600"))

	assert.Equal(t, "Renamed", s.Current().Name)
	sp := storedPointer(t, meta, "u1")
	assert.Equal(t, "Renamed", sp.Name)
	assert.Equal(t, "bg-blue-600", sp.Color)

	f.setErr("UpdateProfile", errBoom)
	var re *common.RemoteError
	require.ErrorAs(t, s.UpdateProfile(ctx, p.ID, "Again", "bg-blue-600"), &re)
	assert.Equal(t, "Renamed", s.Current().Name)
}

func TestDeleteProfile_SelectsReplacementFirst(t *testing.T) {
	ctx := context.Background()
	s, f, meta := newProfiles(t)
	main := f.addProfile("Main")
	kids := f.addProfile("Kids")
	s.OnUserChanged(ctx, alice)
	require.Equal(t, main.ID, s.Current().ID)

	var seen []*models.Profile
	s.Subscribe(func(_ context.Context, p *models.Profile) { seen = append(seen, p) })

	f.setHook("DeleteProfile", func() {
		cur := s.Current()
		require.NotNil(t, cur)
		assert.Equal(t, kids.ID, cur.ID, "replacement must be selected before the remote delete")
	})

	require.NoError(t, s.DeleteProfile(ctx, main.ID))
	assert.Equal(t, []string{"Kids"}, names(s.Profiles()))
	assert.Equal(t, kids.ID, storedPointer(t, meta, "u1").ID)
	require.Len(t, seen, 1)
	assert.Equal(t, kids.ID, seen[0].ID)
}

func TestDeleteProfile_OnlyProfile(t *testing.T) {
	ctx := context.Background()
	s, f, _ := newProfiles(t)
	only := f.addProfile("Main")
	s.OnUserChanged(ctx, alice)

	f.setHook("DeleteProfile", func() { assert.Nil(t, s.Current()) })

	require.NoError(t, s.DeleteProfile(ctx, only.ID))

	// the refresh finds no profiles and creates the default again
	require.Len(t, s.Profiles(), 1)
	assert.Equal(t, "alice", s.Current().Name)
	assert.NotEqual(t, only.ID, s.Current().ID)
}

func TestDeleteProfile_RemoteError(t *testing.T) {
	ctx := context.Background()
	s, f, _ := newProfiles(t)
	f.addProfile("Main")
	kids := f.addProfile("Kids")
	s.OnUserChanged(ctx, alice)

	f.setErr("DeleteProfile", errBoom)
	err := s.DeleteProfile(ctx, kids.ID)
	var re *common.RemoteError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "delete profile", re.Op)
	assert.Len(t, s.Profiles(), 2)
}

func TestSwitchProfile(t *testing.T) {
	ctx := context.Background()
	s, f, meta := newProfiles(t)

	require.ErrorIs(t, s.SwitchProfile(ctx, 1), common.ErrNoSession)

	f.addProfile("Main")
	kids := f.addProfile("Kids")
	s.OnUserChanged(ctx, alice)

	var seen []*models.Profile
	s.Subscribe(func(_ context.Context, p *models.Profile) { seen = append(seen, p) })

	require.NoError(t, s.SwitchProfile(ctx, kids.ID))
	assert.Equal(t, kids.ID, s.Current().ID)
	assert.Equal(t, kids.ID, storedPointer(t, meta, "u1").ID)
	require.Len(t, seen, 1)

	require.ErrorIs(t, s.SwitchProfile(ctx, 999), common.ErrorNotFound)
	assert.Equal(t, kids.ID, s.Current().ID)
}

func TestOnUserChanged_SignOutClearsEverything(t *testing.T) {
	ctx := context.Background()
	s, f, meta := newProfiles(t)
	f.addProfile("Main")
	s.OnUserChanged(ctx, alice)
	require.NoError(t, meta.Set(ctx, currentProfileKey("u-other"), []byte(`{"id":7}`)))

	var seen []*models.Profile
	s.Subscribe(func(_ context.Context, p *models.Profile) { seen = append(seen, p) })

	s.OnUserChanged(ctx, nil)

	assert.Empty(t, s.Profiles())
	assert.Nil(t, s.Current())
	assert.False(t, hasKey(t, meta, currentProfileKey("u1")))
	assert.False(t, hasKey(t, meta, currentProfileKey("u-other")))
	require.Len(t, seen, 1)
	assert.Nil(t, seen[0])
}

func TestFetchProfiles_DiscardedAfterSignOut(t *testing.T) {
	ctx := context.Background()
	s, f, _ := newProfiles(t)
	f.addProfile("Main")

	f.setHook("ListProfiles", func() { s.OnUserChanged(ctx, nil) })

	s.OnUserChanged(ctx, alice)

	assert.Empty(t, s.Profiles())
	assert.Nil(t, s.Current())
}

func names(ps []models.Profile) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.Name)
	}
	return out
}
