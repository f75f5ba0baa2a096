package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/notflix/internal/client/models"
	"github.com/dmitrijs2005/notflix/internal/common"
	"github.com/dmitrijs2005/notflix/internal/rpc"
	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      rpc.BackendClient

	mu           sync.Mutex
	accessToken  string
	refreshToken string

	// refreshMu collapses concurrent refreshes into one.
	refreshMu sync.Mutex

	onRefresh func(refreshToken string)
}

var _ Client = (*GRPCClient)(nil)

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	md.Set(common.AccessTokenHeaderName, token)
	if len(md.Get(common.RequestIDHeaderName)) == 0 {
		md.Set(common.RequestIDHeaderName, uuid.NewString())
	}

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) tokens() (string, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accessToken, s.refreshToken
}

func (s *GRPCClient) setTokens(access, refresh string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = access
	s.refreshToken = refresh
}

func isTokenExpired(err error) bool {
	st, ok := status.FromError(err)
	return ok && st.Code() == codes.Unauthenticated && st.Message() == common.ErrTokenExpired.Error()
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {

	used, _ := s.tokens()

	err := invoker(withAccessToken(ctx, used), method, req, reply, cc, opts...)
	if err == nil || !isTokenExpired(err) {
		return err
	}

	fresh, rerr := s.refreshAfter(ctx, used)
	if rerr != nil {
		return err
	}

	// tokens refreshed, retrying once with the new access token
	return invoker(withAccessToken(ctx, fresh), method, req, reply, cc, opts...)
}

// refreshAfter rotates the token pair unless another caller already did so
// since stale was read, and returns the access token to retry with.
func (s *GRPCClient) refreshAfter(ctx context.Context, stale string) (string, error) {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	access, refresh := s.tokens()
	if access != stale {
		return access, nil
	}
	if refresh == "" {
		return "", ErrUnauthorized
	}

	resp, err := s.client.RefreshToken(ctx, &rpc.RefreshTokenRequest{RefreshToken: refresh})
	if err != nil {
		return "", err
	}

	s.setTokens(resp.AccessToken, resp.RefreshToken)
	if s.onRefresh != nil {
		s.onRefresh(resp.RefreshToken)
	}
	return resp.AccessToken, nil
}

// OnTokenRefresh registers fn to be called with the rotated refresh token
// after a transparent refresh. Must be set before the first call.
func (s *GRPCClient) OnTokenRefresh(fn func(refreshToken string)) {
	s.onRefresh = fn
}

func NewNotflixClientService(endpointURL string) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}
	err := c.InitGRPCClient()
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient() error {

	conn, err := grpc.NewClient(s.endpointURL,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor),
	)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = rpc.NewBackendClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *GRPCClient) RefreshToken() string {
	_, refresh := s.tokens()
	return refresh
}

func (s *GRPCClient) adopt(resp *rpc.SessionResponse) *models.User {
	s.setTokens(resp.AccessToken, resp.RefreshToken)
	return &models.User{ID: resp.User.ID, Email: resp.User.Email}
}

func (s *GRPCClient) SignUp(ctx context.Context, email, password string) (*models.User, error) {
	resp, err := s.client.SignUp(ctx, &rpc.CredentialsRequest{Email: email, Password: password})
	if err != nil {
		return nil, s.mapError(err)
	}
	return s.adopt(resp), nil
}

func (s *GRPCClient) SignIn(ctx context.Context, email, password string) (*models.User, error) {
	resp, err := s.client.SignIn(ctx, &rpc.CredentialsRequest{Email: email, Password: password})
	if err != nil {
		return nil, s.mapError(err)
	}
	return s.adopt(resp), nil
}

func (s *GRPCClient) Restore(ctx context.Context, refreshToken string) (*models.User, error) {
	resp, err := s.client.RefreshToken(ctx, &rpc.RefreshTokenRequest{RefreshToken: refreshToken})
	if err != nil {
		return nil, s.mapError(err)
	}
	return s.adopt(resp), nil
}

// SignOut forgets the local tokens first, then revokes the refresh token on
// the backend.
func (s *GRPCClient) SignOut(ctx context.Context) error {
	_, refresh := s.tokens()
	s.setTokens("", "")

	if refresh == "" {
		return nil
	}
	if _, err := s.client.SignOut(ctx, &rpc.RefreshTokenRequest{RefreshToken: refresh}); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) ChangePassword(ctx context.Context, password string) error {
	if _, err := s.client.ChangePassword(ctx, &rpc.ChangePasswordRequest{Password: password}); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) DeleteAccount(ctx context.Context) error {
	if _, err := s.client.DeleteAccount(ctx, &rpc.Empty{}); err != nil {
		return s.mapError(err)
	}
	s.setTokens("", "")
	return nil
}

func (s *GRPCClient) Ping(ctx context.Context) error {

	resp, err := s.client.Ping(ctx, &rpc.Empty{})
	if err != nil {
		return s.mapError(err)
	}

	if resp.Status != "OK" {
		return ErrUnavailable
	}

	return nil

}

func (s *GRPCClient) ListProfiles(ctx context.Context) ([]models.Profile, error) {
	resp, err := s.client.ListProfiles(ctx, &rpc.Empty{})
	if err != nil {
		return nil, s.mapError(err)
	}

	out := make([]models.Profile, 0, len(resp.Profiles))
	for _, p := range resp.Profiles {
		out = append(out, profileFromRPC(p))
	}
	return out, nil
}

func (s *GRPCClient) CreateProfile(ctx context.Context, name, color string) (*models.Profile, error) {
	resp, err := s.client.CreateProfile(ctx, &rpc.CreateProfileRequest{Name: name, Color: color})
	if err != nil {
		return nil, s.mapError(err)
	}
	p := profileFromRPC(*resp)
	return &p, nil
}

func (s *GRPCClient) UpdateProfile(ctx context.Context, id int64, name, color string) error {
	if _, err := s.client.UpdateProfile(ctx, &rpc.UpdateProfileRequest{ID: id, Name: name, Color: color}); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) DeleteProfile(ctx context.Context, id int64) error {
	if _, err := s.client.DeleteProfile(ctx, &rpc.DeleteProfileRequest{ID: id}); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) FindTitle(ctx context.Context, externalID string) (*models.Title, error) {
	resp, err := s.client.FindTitle(ctx, &rpc.FindTitleRequest{TMDBID: externalID})
	if err != nil {
		return nil, s.mapError(err)
	}
	t := titleFromRPC(*resp)
	return &t, nil
}

func (s *GRPCClient) CreateTitle(ctx context.Context, t *models.Title) (*models.Title, error) {
	resp, err := s.client.CreateTitle(ctx, &rpc.CreateTitleRequest{Title: titleToRPC(t)})
	if err != nil {
		return nil, s.mapError(err)
	}
	out := titleFromRPC(*resp)
	return &out, nil
}

func (s *GRPCClient) FindWatchlistEntry(ctx context.Context, profileID, titleID int64) (*models.WatchlistEntry, error) {
	resp, err := s.client.FindWatchlistEntry(ctx, &rpc.EntryRequest{ProfileID: profileID, TitleID: titleID})
	if err != nil {
		return nil, s.mapError(err)
	}
	return &models.WatchlistEntry{ID: resp.ID, ProfileID: resp.ProfileID, TitleID: resp.TitleID, AddedAt: resp.AddedAt}, nil
}

func (s *GRPCClient) InsertWatchlistEntry(ctx context.Context, profileID, titleID int64) error {
	if _, err := s.client.InsertWatchlistEntry(ctx, &rpc.EntryRequest{ProfileID: profileID, TitleID: titleID}); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) DeleteWatchlistEntry(ctx context.Context, profileID, titleID int64) error {
	if _, err := s.client.DeleteWatchlistEntry(ctx, &rpc.EntryRequest{ProfileID: profileID, TitleID: titleID}); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) ListWatchlist(ctx context.Context, profileID int64) ([]models.WatchlistRow, error) {
	resp, err := s.client.ListWatchlist(ctx, &rpc.ListRequest{ProfileID: profileID})
	if err != nil {
		return nil, s.mapError(err)
	}

	out := make([]models.WatchlistRow, 0, len(resp.Rows))
	for _, r := range resp.Rows {
		out = append(out, models.WatchlistRow{ID: r.ID, AddedAt: r.AddedAt, Title: titleFromRPC(r.Title)})
	}
	return out, nil
}

func (s *GRPCClient) FindHistoryEntry(ctx context.Context, profileID, titleID int64) (*models.HistoryEntry, error) {
	resp, err := s.client.FindHistoryEntry(ctx, &rpc.EntryRequest{ProfileID: profileID, TitleID: titleID})
	if err != nil {
		return nil, s.mapError(err)
	}
	return &models.HistoryEntry{ID: resp.ID, ProfileID: resp.ProfileID, TitleID: resp.TitleID, LastWatched: resp.LastWatched}, nil
}

func (s *GRPCClient) InsertHistoryEntry(ctx context.Context, profileID, titleID int64, at time.Time) error {
	if _, err := s.client.InsertHistoryEntry(ctx, &rpc.InsertHistoryRequest{ProfileID: profileID, TitleID: titleID, At: at}); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) TouchHistoryEntry(ctx context.Context, profileID, id int64, at time.Time) error {
	if _, err := s.client.TouchHistoryEntry(ctx, &rpc.TouchHistoryRequest{ID: id, ProfileID: profileID, At: at}); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) DeleteHistoryEntry(ctx context.Context, profileID, titleID int64) error {
	if _, err := s.client.DeleteHistoryEntry(ctx, &rpc.EntryRequest{ProfileID: profileID, TitleID: titleID}); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) ListHistory(ctx context.Context, profileID int64) ([]models.HistoryRow, error) {
	resp, err := s.client.ListHistory(ctx, &rpc.ListRequest{ProfileID: profileID})
	if err != nil {
		return nil, s.mapError(err)
	}

	out := make([]models.HistoryRow, 0, len(resp.Rows))
	for _, r := range resp.Rows {
		out = append(out, models.HistoryRow{ID: r.ID, LastWatched: r.LastWatched, Title: titleFromRPC(r.Title)})
	}
	return out, nil
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.NotFound:
		return common.ErrorNotFound
	case codes.AlreadyExists:
		return common.ErrorAlreadyExists
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", common.ErrorValidation, st.Message())
	case codes.Unauthenticated, codes.PermissionDenied:
		if st.Message() == common.ErrRefreshTokenExpired.Error() {
			return common.ErrRefreshTokenExpired
		}
		return ErrUnauthorized
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}

func profileFromRPC(p rpc.Profile) models.Profile {
	return models.Profile{ID: p.ID, UserID: p.UserID, Name: p.Name, Color: p.Color, CreatedAt: p.CreatedAt}
}

func titleFromRPC(t rpc.Title) models.Title {
	return models.Title{
		ID:          t.ID,
		TMDBID:      t.TMDBID,
		IMDbID:      t.IMDbID,
		Title:       t.Title,
		Description: t.Description,
		PosterURL:   t.PosterURL,
		BackdropURL: t.BackdropURL,
		ReleaseYear: t.ReleaseYear,
		Rating:      t.Rating,
		Type:        models.MediaKind(t.Type),
	}
}

func titleToRPC(t *models.Title) rpc.Title {
	return rpc.Title{
		TMDBID:      t.TMDBID,
		IMDbID:      t.IMDbID,
		Title:       t.Title,
		Description: t.Description,
		PosterURL:   t.PosterURL,
		BackdropURL: t.BackdropURL,
		ReleaseYear: t.ReleaseYear,
		Rating:      t.Rating,
		Type:        string(t.Type),
	}
}
