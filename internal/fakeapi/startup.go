package fakeapi

import (
	"github.com/jacksonrnewhouse/arroyo/internal/common"
	"github.com/jacksonrnewhouse/arroyo/internal/common/consolecontext"
	commongrpc "github.com/jacksonrnewhouse/arroyo/internal/common/grpc"
)

// StartUp serves a seeded Server on config.Grpc.Port until ctx is done.
func StartUp(ctx *consolecontext.Context, config Configuration) error {
	s := New()
	Seed(s, config)

	grpcServer, err := NewGrpcServer(s, config.Grpc)
	if err != nil {
		return err
	}

	shutdownMetrics := common.ServeMetrics(config.MetricsPort)
	defer shutdownMetrics()

	g, gctx := consolecontext.ErrGroup(ctx)
	g.Go(func() error {
		return commongrpc.Listen(gctx, config.Grpc.Port, grpcServer, config.GracePeriod)
	})
	return g.Wait()
}
