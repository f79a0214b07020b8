package grpc

import (
	"fmt"
	"net"
	"runtime/debug"
	"time"

	grpc_middleware "github.com/grpc-ecosystem/go-grpc-middleware"
	grpc_logrus "github.com/grpc-ecosystem/go-grpc-middleware/logging/logrus"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/recovery"
	grpc_ctxtags "github.com/grpc-ecosystem/go-grpc-middleware/tags"
	grpc_prometheus "github.com/grpc-ecosystem/go-grpc-prometheus"
	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/keepalive"
	"google.golang.org/grpc/status"

	"github.com/jacksonrnewhouse/arroyo/internal/common/apierrors"
	"github.com/jacksonrnewhouse/arroyo/internal/common/consolecontext"
	"github.com/jacksonrnewhouse/arroyo/internal/common/grpc/configuration"
	"github.com/jacksonrnewhouse/arroyo/pkg/api"
)

// CreateGrpcServer creates a gRPC server (by calling grpc.NewServer) with settings specific to
// this project: the api codecs, request logging, metrics, error mapping and panic recovery.
func CreateGrpcServer(
	keepaliveParams keepalive.ServerParameters,
	keepaliveEnforcementPolicy keepalive.EnforcementPolicy,
	tlsConfig configuration.TlsConfig,
) (*grpc.Server, error) {
	api.EnsureCodecs()

	tlsOption, err := setupTls(tlsConfig)
	if err != nil {
		return nil, err
	}

	logrusEntry := log.NewEntry(log.StandardLogger())
	recoveryOpts := []grpc_recovery.Option{grpc_recovery.WithRecoveryHandler(panicRecoveryHandler)}

	grpcServer := grpc.NewServer(
		grpc.KeepaliveParams(keepaliveParams),
		grpc.KeepaliveEnforcementPolicy(keepaliveEnforcementPolicy),
		tlsOption,
		grpc_middleware.WithUnaryServerChain(
			grpc_ctxtags.UnaryServerInterceptor(),
			grpc_prometheus.UnaryServerInterceptor,
			grpc_logrus.UnaryServerInterceptor(logrusEntry),
			apierrors.UnaryServerInterceptor(),
			grpc_recovery.UnaryServerInterceptor(recoveryOpts...),
		),
		grpc_middleware.WithStreamServerChain(
			grpc_ctxtags.StreamServerInterceptor(),
			grpc_prometheus.StreamServerInterceptor,
			grpc_logrus.StreamServerInterceptor(logrusEntry),
			apierrors.StreamServerInterceptor(),
			grpc_recovery.StreamServerInterceptor(recoveryOpts...),
		),
	)
	return grpcServer, nil
}

// RegisterMetrics initialises the server metrics of every service registered
// on grpcServer. Call it after registering the services.
func RegisterMetrics(grpcServer *grpc.Server) {
	grpc_prometheus.Register(grpcServer)
}

// Listen serves grpcServer on port until ctx is done. The server is given
// gracePeriod to drain before it is stopped forcibly.
func Listen(ctx *consolecontext.Context, port uint16, grpcServer *grpc.Server, gracePeriod time.Duration) error {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return fmt.Errorf("failed to listen on %d: %w", port, err)
	}

	go func() {
		<-ctx.Done()
		go func() {
			time.Sleep(gracePeriod)
			grpcServer.Stop()
		}()
		grpcServer.GracefulStop()
	}()

	ctx.Log.Infof("Grpc listening on %d", port)
	defer ctx.Log.Infof("Stopping server.")
	return grpcServer.Serve(lis)
}

func setupTls(tlsConfig configuration.TlsConfig) (grpc.ServerOption, error) {
	if !tlsConfig.Enabled {
		return grpc.EmptyServerOption{}, nil
	}
	creds, err := credentials.NewServerTLSFromFile(tlsConfig.CertPath, tlsConfig.KeyPath)
	if err != nil {
		return nil, fmt.Errorf("error loading tls certificate: %w", err)
	}
	return grpc.Creds(creds), nil
}

// This function is called whenever a gRPC handler panics.
func panicRecoveryHandler(p interface{}) (err error) {
	log.Errorf("Request triggered panic with cause %v \n%s", p, string(debug.Stack()))
	return status.Errorf(codes.Internal, "Internal server error caused by %v", p)
}
