// Package grpc exposes the backend services over the notflix.Backend gRPC
// service.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/notflix/internal/logging"
	"github.com/dmitrijs2005/notflix/internal/rpc"
	"google.golang.org/grpc"
)

type GRPCServer struct {
	address string
	users   userService
	store   storeService
	logger  logging.Logger
}

var _ rpc.BackendServer = (*GRPCServer)(nil)

func NewGRPCServer(a string, l logging.Logger, us userService, ss storeService) *GRPCServer {
	return &GRPCServer{
		address: a,
		logger:  l.With("module", "grpc_server"),
		users:   us,
		store:   ss,
	}
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is cancelled, then stops
// gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {

	// creates gRPC-server
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor))

	// registers service
	rpc.RegisterBackendServer(srv, s)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}
