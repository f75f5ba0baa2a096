package grpc

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/notflix/internal/common"
	"github.com/dmitrijs2005/notflix/internal/rpc"
	"github.com/dmitrijs2005/notflix/internal/server/models"
	"github.com/dmitrijs2005/notflix/internal/server/services"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type userService interface {
	SignUp(ctx context.Context, email, password string) (*services.Session, error)
	SignIn(ctx context.Context, email, password string) (*services.Session, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.Session, error)
	SignOut(ctx context.Context, refreshToken string) error
	ChangePassword(ctx context.Context, userID, password string) error
	DeleteAccount(ctx context.Context, userID string) error
	ValidateAccessToken(token string) (string, error)
}

type storeService interface {
	ListProfiles(ctx context.Context, userID string) ([]models.Profile, error)
	CreateProfile(ctx context.Context, userID, name, color string) (*models.Profile, error)
	UpdateProfile(ctx context.Context, userID string, id int64, name, color string) error
	DeleteProfile(ctx context.Context, userID string, id int64) error

	FindTitle(ctx context.Context, tmdbID string) (*models.Title, error)
	CreateTitle(ctx context.Context, t *models.Title) (*models.Title, error)

	FindWatchlistEntry(ctx context.Context, userID string, profileID, titleID int64) (*models.WatchlistEntry, error)
	InsertWatchlistEntry(ctx context.Context, userID string, profileID, titleID int64) (*models.WatchlistEntry, error)
	DeleteWatchlistEntry(ctx context.Context, userID string, profileID, titleID int64) error
	ListWatchlist(ctx context.Context, userID string, profileID int64) ([]models.WatchlistRow, error)

	FindHistoryEntry(ctx context.Context, userID string, profileID, titleID int64) (*models.HistoryEntry, error)
	InsertHistoryEntry(ctx context.Context, userID string, profileID, titleID int64, at time.Time) (*models.HistoryEntry, error)
	TouchHistoryEntry(ctx context.Context, userID string, profileID, id int64, at time.Time) error
	DeleteHistoryEntry(ctx context.Context, userID string, profileID, titleID int64) error
	ListHistory(ctx context.Context, userID string, profileID int64) ([]models.HistoryRow, error)
}

// toStatus maps service errors onto gRPC status codes. Anything
// unrecognized is reported as Internal without leaking the cause.
func toStatus(err error) error {
	var ve *common.ValidationError
	switch {
	case errors.As(err, &ve):
		return status.Error(codes.InvalidArgument, ve.Error())
	case errors.Is(err, common.ErrorValidation):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, "not found")
	case errors.Is(err, common.ErrorAlreadyExists):
		return status.Error(codes.AlreadyExists, "already exists")
	case errors.Is(err, common.ErrRefreshTokenExpired):
		return status.Error(codes.Unauthenticated, common.ErrRefreshTokenExpired.Error())
	case errors.Is(err, common.ErrTokenExpired):
		return status.Error(codes.Unauthenticated, common.ErrTokenExpired.Error())
	case errors.Is(err, common.ErrorUnauthorized), errors.Is(err, common.ErrInvalidToken):
		return status.Error(codes.Unauthenticated, "unauthorized")
	default:
		return status.Error(codes.Internal, "internal error")
	}
}

func (s *GRPCServer) Ping(ctx context.Context, req *rpc.Empty) (*rpc.PingResponse, error) {
	return &rpc.PingResponse{Status: "OK"}, nil
}

func (s *GRPCServer) SignUp(ctx context.Context, req *rpc.CredentialsRequest) (*rpc.SessionResponse, error) {

	session, err := s.users.SignUp(ctx, req.Email, req.Password)
	if err != nil {
		return nil, toStatus(err)
	}

	s.logger.Info(ctx, "Registered", "user_id", session.User.ID)
	return sessionToRPC(session), nil
}

func (s *GRPCServer) SignIn(ctx context.Context, req *rpc.CredentialsRequest) (*rpc.SessionResponse, error) {

	session, err := s.users.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		return nil, toStatus(err)
	}

	return sessionToRPC(session), nil
}

func (s *GRPCServer) RefreshToken(ctx context.Context, req *rpc.RefreshTokenRequest) (*rpc.SessionResponse, error) {

	session, err := s.users.RefreshToken(ctx, req.RefreshToken)
	if err != nil {
		return nil, toStatus(err)
	}

	return sessionToRPC(session), nil
}

func (s *GRPCServer) SignOut(ctx context.Context, req *rpc.RefreshTokenRequest) (*rpc.Empty, error) {
	if err := s.users.SignOut(ctx, req.RefreshToken); err != nil {
		return nil, toStatus(err)
	}
	return &rpc.Empty{}, nil
}

func (s *GRPCServer) ChangePassword(ctx context.Context, req *rpc.ChangePasswordRequest) (*rpc.Empty, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.users.ChangePassword(ctx, userID, req.Password); err != nil {
		return nil, toStatus(err)
	}
	return &rpc.Empty{}, nil
}

func (s *GRPCServer) DeleteAccount(ctx context.Context, req *rpc.Empty) (*rpc.Empty, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.users.DeleteAccount(ctx, userID); err != nil {
		return nil, toStatus(err)
	}
	s.logger.Info(ctx, "Account deleted", "user_id", userID)
	return &rpc.Empty{}, nil
}

func (s *GRPCServer) ListProfiles(ctx context.Context, req *rpc.Empty) (*rpc.ListProfilesResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	list, err := s.store.ListProfiles(ctx, userID)
	if err != nil {
		return nil, toStatus(err)
	}

	resp := &rpc.ListProfilesResponse{Profiles: make([]rpc.Profile, 0, len(list))}
	for i := range list {
		resp.Profiles = append(resp.Profiles, profileToRPC(&list[i]))
	}
	return resp, nil
}

func (s *GRPCServer) CreateProfile(ctx context.Context, req *rpc.CreateProfileRequest) (*rpc.Profile, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	p, err := s.store.CreateProfile(ctx, userID, req.Name, req.Color)
	if err != nil {
		return nil, toStatus(err)
	}

	out := profileToRPC(p)
	return &out, nil
}

func (s *GRPCServer) UpdateProfile(ctx context.Context, req *rpc.UpdateProfileRequest) (*rpc.Empty, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.store.UpdateProfile(ctx, userID, req.ID, req.Name, req.Color); err != nil {
		return nil, toStatus(err)
	}
	return &rpc.Empty{}, nil
}

func (s *GRPCServer) DeleteProfile(ctx context.Context, req *rpc.DeleteProfileRequest) (*rpc.Empty, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.store.DeleteProfile(ctx, userID, req.ID); err != nil {
		return nil, toStatus(err)
	}
	return &rpc.Empty{}, nil
}

func (s *GRPCServer) FindTitle(ctx context.Context, req *rpc.FindTitleRequest) (*rpc.Title, error) {
	t, err := s.store.FindTitle(ctx, req.TMDBID)
	if err != nil {
		return nil, toStatus(err)
	}
	out := titleToRPC(t)
	return &out, nil
}

func (s *GRPCServer) CreateTitle(ctx context.Context, req *rpc.CreateTitleRequest) (*rpc.Title, error) {
	t, err := s.store.CreateTitle(ctx, titleFromRPC(&req.Title))
	if err != nil {
		return nil, toStatus(err)
	}
	out := titleToRPC(t)
	return &out, nil
}

func (s *GRPCServer) FindWatchlistEntry(ctx context.Context, req *rpc.EntryRequest) (*rpc.WatchlistEntry, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	e, err := s.store.FindWatchlistEntry(ctx, userID, req.ProfileID, req.TitleID)
	if err != nil {
		return nil, toStatus(err)
	}
	return watchlistEntryToRPC(e), nil
}

func (s *GRPCServer) InsertWatchlistEntry(ctx context.Context, req *rpc.EntryRequest) (*rpc.WatchlistEntry, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	e, err := s.store.InsertWatchlistEntry(ctx, userID, req.ProfileID, req.TitleID)
	if err != nil {
		return nil, toStatus(err)
	}
	return watchlistEntryToRPC(e), nil
}

func (s *GRPCServer) DeleteWatchlistEntry(ctx context.Context, req *rpc.EntryRequest) (*rpc.Empty, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.store.DeleteWatchlistEntry(ctx, userID, req.ProfileID, req.TitleID); err != nil {
		return nil, toStatus(err)
	}
	return &rpc.Empty{}, nil
}

func (s *GRPCServer) ListWatchlist(ctx context.Context, req *rpc.ListRequest) (*rpc.ListWatchlistResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := s.store.ListWatchlist(ctx, userID, req.ProfileID)
	if err != nil {
		return nil, toStatus(err)
	}

	resp := &rpc.ListWatchlistResponse{Rows: make([]rpc.WatchlistRow, 0, len(rows))}
	for i := range rows {
		resp.Rows = append(resp.Rows, rpc.WatchlistRow{ID: rows[i].ID, AddedAt: rows[i].AddedAt, Title: titleToRPC(&rows[i].Title)})
	}
	return resp, nil
}

func (s *GRPCServer) FindHistoryEntry(ctx context.Context, req *rpc.EntryRequest) (*rpc.HistoryEntry, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	e, err := s.store.FindHistoryEntry(ctx, userID, req.ProfileID, req.TitleID)
	if err != nil {
		return nil, toStatus(err)
	}
	return historyEntryToRPC(e), nil
}

func (s *GRPCServer) InsertHistoryEntry(ctx context.Context, req *rpc.InsertHistoryRequest) (*rpc.HistoryEntry, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	e, err := s.store.InsertHistoryEntry(ctx, userID, req.ProfileID, req.TitleID, atOrNow(req.At))
	if err != nil {
		return nil, toStatus(err)
	}
	return historyEntryToRPC(e), nil
}

func (s *GRPCServer) TouchHistoryEntry(ctx context.Context, req *rpc.TouchHistoryRequest) (*rpc.Empty, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.store.TouchHistoryEntry(ctx, userID, req.ProfileID, req.ID, atOrNow(req.At)); err != nil {
		return nil, toStatus(err)
	}
	return &rpc.Empty{}, nil
}

func (s *GRPCServer) DeleteHistoryEntry(ctx context.Context, req *rpc.EntryRequest) (*rpc.Empty, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.store.DeleteHistoryEntry(ctx, userID, req.ProfileID, req.TitleID); err != nil {
		return nil, toStatus(err)
	}
	return &rpc.Empty{}, nil
}

func (s *GRPCServer) ListHistory(ctx context.Context, req *rpc.ListRequest) (*rpc.ListHistoryResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := s.store.ListHistory(ctx, userID, req.ProfileID)
	if err != nil {
		return nil, toStatus(err)
	}

	resp := &rpc.ListHistoryResponse{Rows: make([]rpc.HistoryRow, 0, len(rows))}
	for i := range rows {
		resp.Rows = append(resp.Rows, rpc.HistoryRow{ID: rows[i].ID, LastWatched: rows[i].LastWatched, Title: titleToRPC(&rows[i].Title)})
	}
	return resp, nil
}

func atOrNow(at time.Time) time.Time {
	if at.IsZero() {
		return time.Now().UTC()
	}
	return at
}
