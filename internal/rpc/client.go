package rpc

import (
	"context"

	"google.golang.org/grpc"
)

// BackendClient is the client side of notflix.Backend.
type BackendClient interface {
	Ping(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*PingResponse, error)
	SignUp(ctx context.Context, in *CredentialsRequest, opts ...grpc.CallOption) (*SessionResponse, error)
	SignIn(ctx context.Context, in *CredentialsRequest, opts ...grpc.CallOption) (*SessionResponse, error)
	RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*SessionResponse, error)
	SignOut(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*Empty, error)
	ChangePassword(ctx context.Context, in *ChangePasswordRequest, opts ...grpc.CallOption) (*Empty, error)
	DeleteAccount(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*Empty, error)
	ListProfiles(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ListProfilesResponse, error)
	CreateProfile(ctx context.Context, in *CreateProfileRequest, opts ...grpc.CallOption) (*Profile, error)
	UpdateProfile(ctx context.Context, in *UpdateProfileRequest, opts ...grpc.CallOption) (*Empty, error)
	DeleteProfile(ctx context.Context, in *DeleteProfileRequest, opts ...grpc.CallOption) (*Empty, error)
	FindTitle(ctx context.Context, in *FindTitleRequest, opts ...grpc.CallOption) (*Title, error)
	CreateTitle(ctx context.Context, in *CreateTitleRequest, opts ...grpc.CallOption) (*Title, error)
	FindWatchlistEntry(ctx context.Context, in *EntryRequest, opts ...grpc.CallOption) (*WatchlistEntry, error)
	InsertWatchlistEntry(ctx context.Context, in *EntryRequest, opts ...grpc.CallOption) (*WatchlistEntry, error)
	DeleteWatchlistEntry(ctx context.Context, in *EntryRequest, opts ...grpc.CallOption) (*Empty, error)
	ListWatchlist(ctx context.Context, in *ListRequest, opts ...grpc.CallOption) (*ListWatchlistResponse, error)
	FindHistoryEntry(ctx context.Context, in *EntryRequest, opts ...grpc.CallOption) (*HistoryEntry, error)
	InsertHistoryEntry(ctx context.Context, in *InsertHistoryRequest, opts ...grpc.CallOption) (*HistoryEntry, error)
	TouchHistoryEntry(ctx context.Context, in *TouchHistoryRequest, opts ...grpc.CallOption) (*Empty, error)
	DeleteHistoryEntry(ctx context.Context, in *EntryRequest, opts ...grpc.CallOption) (*Empty, error)
	ListHistory(ctx context.Context, in *ListRequest, opts ...grpc.CallOption) (*ListHistoryResponse, error)
}

type backendClient struct {
	cc grpc.ClientConnInterface
}

func NewBackendClient(cc grpc.ClientConnInterface) BackendClient {
	return &backendClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *backendClient) Ping(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, "Ping", in, opts)
}

func (c *backendClient) SignUp(ctx context.Context, in *CredentialsRequest, opts ...grpc.CallOption) (*SessionResponse, error) {
	return invoke[SessionResponse](ctx, c.cc, "SignUp", in, opts)
}

func (c *backendClient) SignIn(ctx context.Context, in *CredentialsRequest, opts ...grpc.CallOption) (*SessionResponse, error) {
	return invoke[SessionResponse](ctx, c.cc, "SignIn", in, opts)
}

func (c *backendClient) RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*SessionResponse, error) {
	return invoke[SessionResponse](ctx, c.cc, "RefreshToken", in, opts)
}

func (c *backendClient) SignOut(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, "SignOut", in, opts)
}

func (c *backendClient) ChangePassword(ctx context.Context, in *ChangePasswordRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, "ChangePassword", in, opts)
}

func (c *backendClient) DeleteAccount(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, "DeleteAccount", in, opts)
}

func (c *backendClient) ListProfiles(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ListProfilesResponse, error) {
	return invoke[ListProfilesResponse](ctx, c.cc, "ListProfiles", in, opts)
}

func (c *backendClient) CreateProfile(ctx context.Context, in *CreateProfileRequest, opts ...grpc.CallOption) (*Profile, error) {
	return invoke[Profile](ctx, c.cc, "CreateProfile", in, opts)
}

func (c *backendClient) UpdateProfile(ctx context.Context, in *UpdateProfileRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, "UpdateProfile", in, opts)
}

func (c *backendClient) DeleteProfile(ctx context.Context, in *DeleteProfileRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, "DeleteProfile", in, opts)
}

func (c *backendClient) FindTitle(ctx context.Context, in *FindTitleRequest, opts ...grpc.CallOption) (*Title, error) {
	return invoke[Title](ctx, c.cc, "FindTitle", in, opts)
}

func (c *backendClient) CreateTitle(ctx context.Context, in *CreateTitleRequest, opts ...grpc.CallOption) (*Title, error) {
	return invoke[Title](ctx, c.cc, "CreateTitle", in, opts)
}

func (c *backendClient) FindWatchlistEntry(ctx context.Context, in *EntryRequest, opts ...grpc.CallOption) (*WatchlistEntry, error) {
	return invoke[WatchlistEntry](ctx, c.cc, "FindWatchlistEntry", in, opts)
}

func (c *backendClient) InsertWatchlistEntry(ctx context.Context, in *EntryRequest, opts ...grpc.CallOption) (*WatchlistEntry, error) {
	return invoke[WatchlistEntry](ctx, c.cc, "InsertWatchlistEntry", in, opts)
}

func (c *backendClient) DeleteWatchlistEntry(ctx context.Context, in *EntryRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, "DeleteWatchlistEntry", in, opts)
}

func (c *backendClient) ListWatchlist(ctx context.Context, in *ListRequest, opts ...grpc.CallOption) (*ListWatchlistResponse, error) {
	return invoke[ListWatchlistResponse](ctx, c.cc, "ListWatchlist", in, opts)
}

func (c *backendClient) FindHistoryEntry(ctx context.Context, in *EntryRequest, opts ...grpc.CallOption) (*HistoryEntry, error) {
	return invoke[HistoryEntry](ctx, c.cc, "FindHistoryEntry", in, opts)
}

func (c *backendClient) InsertHistoryEntry(ctx context.Context, in *InsertHistoryRequest, opts ...grpc.CallOption) (*HistoryEntry, error) {
	return invoke[HistoryEntry](ctx, c.cc, "InsertHistoryEntry", in, opts)
}

func (c *backendClient) TouchHistoryEntry(ctx context.Context, in *TouchHistoryRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, "TouchHistoryEntry", in, opts)
}

func (c *backendClient) DeleteHistoryEntry(ctx context.Context, in *EntryRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, "DeleteHistoryEntry", in, opts)
}

func (c *backendClient) ListHistory(ctx context.Context, in *ListRequest, opts ...grpc.CallOption) (*ListHistoryResponse, error) {
	return invoke[ListHistoryResponse](ctx, c.cc, "ListHistory", in, opts)
}
