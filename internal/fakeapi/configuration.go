package fakeapi

import (
	"fmt"
	"time"

	"github.com/jacksonrnewhouse/arroyo/internal/common/grpc/configuration"
	"github.com/jacksonrnewhouse/arroyo/pkg/api"
)

type Configuration struct {
	Grpc        configuration.GrpcConfig
	MetricsPort uint16
	// Time given to open streams before the server is stopped forcibly.
	GracePeriod time.Duration
	Sources     []*api.SourceDef
	Sinks       []*api.SinkDef
	Pipelines   []*api.PipelineDef
	Outputs     OutputConfig
}

// OutputConfig shapes the output of every launched job.
type OutputConfig struct {
	// Number of records a job emits before its stream goes quiet.
	Count    int
	Interval time.Duration
}

// Seed loads the configured catalog into s and makes every job emit sample output.
func Seed(s *Server, config Configuration) {
	for _, source := range config.Sources {
		s.AddSource(source)
	}
	for _, sink := range config.Sinks {
		s.AddSink(sink)
	}
	for _, pipeline := range config.Pipelines {
		s.AddPipeline(pipeline)
	}
	s.FallbackScript(func() *JobScript {
		return SampleScript(config.Outputs.Count, config.Outputs.Interval)
	})
}

// SampleScript is DefaultScript emitting count bid records, one every interval.
func SampleScript(count int, interval time.Duration) *JobScript {
	script := DefaultScript()
	script.OutputInterval = interval
	start := time.Now()
	for i := 0; i < count; i++ {
		script.Outputs = append(script.Outputs, &api.OutputData{
			OperatorId: "sink_2",
			Timestamp:  uint64(start.Add(time.Duration(i) * interval).UnixMicro()),
			Value:      fmt.Sprintf(`{"auction": %d, "bidder": %d, "price": %d}`, 1000+i%7, 2000+i%13, 100+i*17%900),
		})
	}
	return script
}
