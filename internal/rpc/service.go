package rpc

import (
	"context"

	"google.golang.org/grpc"
)

const ServiceName = "notflix.Backend"

// FullMethod returns the gRPC method path for a backend method name.
func FullMethod(name string) string {
	return "/" + ServiceName + "/" + name
}

// BackendServer is implemented by the server-side handler.
type BackendServer interface {
	Ping(context.Context, *Empty) (*PingResponse, error)

	SignUp(context.Context, *CredentialsRequest) (*SessionResponse, error)
	SignIn(context.Context, *CredentialsRequest) (*SessionResponse, error)
	RefreshToken(context.Context, *RefreshTokenRequest) (*SessionResponse, error)
	SignOut(context.Context, *RefreshTokenRequest) (*Empty, error)
	ChangePassword(context.Context, *ChangePasswordRequest) (*Empty, error)
	DeleteAccount(context.Context, *Empty) (*Empty, error)

	ListProfiles(context.Context, *Empty) (*ListProfilesResponse, error)
	CreateProfile(context.Context, *CreateProfileRequest) (*Profile, error)
	UpdateProfile(context.Context, *UpdateProfileRequest) (*Empty, error)
	DeleteProfile(context.Context, *DeleteProfileRequest) (*Empty, error)

	FindTitle(context.Context, *FindTitleRequest) (*Title, error)
	CreateTitle(context.Context, *CreateTitleRequest) (*Title, error)

	FindWatchlistEntry(context.Context, *EntryRequest) (*WatchlistEntry, error)
	InsertWatchlistEntry(context.Context, *EntryRequest) (*WatchlistEntry, error)
	DeleteWatchlistEntry(context.Context, *EntryRequest) (*Empty, error)
	ListWatchlist(context.Context, *ListRequest) (*ListWatchlistResponse, error)

	FindHistoryEntry(context.Context, *EntryRequest) (*HistoryEntry, error)
	InsertHistoryEntry(context.Context, *InsertHistoryRequest) (*HistoryEntry, error)
	TouchHistoryEntry(context.Context, *TouchHistoryRequest) (*Empty, error)
	DeleteHistoryEntry(context.Context, *EntryRequest) (*Empty, error)
	ListHistory(context.Context, *ListRequest) (*ListHistoryResponse, error)
}

// RegisterBackendServer attaches srv to a gRPC server.
func RegisterBackendServer(s grpc.ServiceRegistrar, srv BackendServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// unary adapts a typed BackendServer method to a grpc.MethodDesc.
func unary[Req, Resp any](name string, call func(BackendServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(BackendServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(name)}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(BackendServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*BackendServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("Ping", BackendServer.Ping),
		unary("SignUp", BackendServer.SignUp),
		unary("SignIn", BackendServer.SignIn),
		unary("RefreshToken", BackendServer.RefreshToken),
		unary("SignOut", BackendServer.SignOut),
		unary("ChangePassword", BackendServer.ChangePassword),
		unary("DeleteAccount", BackendServer.DeleteAccount),
		unary("ListProfiles", BackendServer.ListProfiles),
		unary("CreateProfile", BackendServer.CreateProfile),
		unary("UpdateProfile", BackendServer.UpdateProfile),
		unary("DeleteProfile", BackendServer.DeleteProfile),
		unary("FindTitle", BackendServer.FindTitle),
		unary("CreateTitle", BackendServer.CreateTitle),
		unary("FindWatchlistEntry", BackendServer.FindWatchlistEntry),
		unary("InsertWatchlistEntry", BackendServer.InsertWatchlistEntry),
		unary("DeleteWatchlistEntry", BackendServer.DeleteWatchlistEntry),
		unary("ListWatchlist", BackendServer.ListWatchlist),
		unary("FindHistoryEntry", BackendServer.FindHistoryEntry),
		unary("InsertHistoryEntry", BackendServer.InsertHistoryEntry),
		unary("TouchHistoryEntry", BackendServer.TouchHistoryEntry),
		unary("DeleteHistoryEntry", BackendServer.DeleteHistoryEntry),
		unary("ListHistory", BackendServer.ListHistory),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "notflix/backend",
}
