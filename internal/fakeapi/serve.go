package fakeapi

import (
	"context"
	"net"

	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/test/bufconn"

	commongrpc "github.com/jacksonrnewhouse/arroyo/internal/common/grpc"
	"github.com/jacksonrnewhouse/arroyo/internal/common/grpc/configuration"
	"github.com/jacksonrnewhouse/arroyo/pkg/api"
	"github.com/jacksonrnewhouse/arroyo/pkg/client"
)

const bufferSize = 1 << 20

// NewGrpcServer returns a grpc server with s registered.
func NewGrpcServer(s *Server, config configuration.GrpcConfig) (*grpc.Server, error) {
	grpcServer, err := commongrpc.CreateGrpcServer(config.KeepaliveParams, config.KeepaliveEnforcementPolicy, config.Tls)
	if err != nil {
		return nil, err
	}
	api.RegisterApiServer(grpcServer, s)
	commongrpc.RegisterMetrics(grpcServer)
	return grpcServer, nil
}

// InProcess is a Server reachable over an in-memory listener.
type InProcess struct {
	Server *Server
	Conn   *grpc.ClientConn
	Client api.ApiClient

	grpcServer *grpc.Server
	listener   *bufconn.Listener
}

// StartInProcess serves s in memory and connects a client to it using codec.
func StartInProcess(s *Server, codec string) (*InProcess, error) {
	listener := bufconn.Listen(bufferSize)
	grpcServer, err := NewGrpcServer(s, configuration.GrpcConfig{})
	if err != nil {
		return nil, err
	}
	go func() {
		if err := grpcServer.Serve(listener); err != nil {
			log.WithError(err).Error("fake api server stopped")
		}
	}()

	conn, err := client.CreateApiConnection(
		&client.ApiConnectionDetails{ApiUrl: "bufnet", ForceNoTls: true, Codec: codec},
		grpc.WithContextDialer(func(context.Context, string) (net.Conn, error) {
			return listener.Dial()
		}),
	)
	if err != nil {
		grpcServer.Stop()
		return nil, err
	}

	return &InProcess{
		Server:     s,
		Conn:       conn,
		Client:     api.NewApiClient(conn),
		grpcServer: grpcServer,
		listener:   listener,
	}, nil
}

func (p *InProcess) Close() {
	p.Conn.Close()
	p.grpcServer.Stop()
}
