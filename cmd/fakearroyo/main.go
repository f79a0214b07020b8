package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/jacksonrnewhouse/arroyo/internal/common"
	"github.com/jacksonrnewhouse/arroyo/internal/common/consolecontext"
	"github.com/jacksonrnewhouse/arroyo/internal/fakeapi"
	"github.com/jacksonrnewhouse/arroyo/pkg/api"
)

const CustomConfigLocation string = "config"

func init() {
	pflag.StringSlice(
		CustomConfigLocation,
		[]string{},
		"Fully qualified path to application configuration file (for multiple config files repeat this arg or separate paths with commas)",
	)
	pflag.Uint16("port", 8001, "Port the fake api listens on")
	pflag.Parse()
}

func main() {
	common.ConfigureLogging()
	if err := viper.BindPFlags(pflag.CommandLine); err != nil {
		log.Fatal(err)
	}

	config := defaultConfiguration()
	userSpecifiedConfigs := viper.GetStringSlice(CustomConfigLocation)
	if _, err := common.LoadConfig(&config, userSpecifiedConfigs); err != nil {
		log.Fatalf("failed to load configuration: %s", err)
	}
	if viper.IsSet("port") {
		config.Grpc.Port = uint16(viper.GetUint("port"))
	}

	ctx, cancel := consolecontext.WithCancel(consolecontext.Background())
	shutdownChannel := make(chan os.Signal, 1)
	signal.Notify(shutdownChannel, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-shutdownChannel
		cancel()
	}()

	if err := fakeapi.StartUp(ctx, config); err != nil {
		log.WithError(err).Fatal("fake api failed")
	}
}

func defaultConfiguration() fakeapi.Configuration {
	config := fakeapi.Configuration{
		MetricsPort: 9001,
		GracePeriod: 5 * time.Second,
		Sources: []*api.SourceDef{
			{Id: 1, Name: "nexmark", Kind: "nexmark", Fields: []*api.SourceField{
				{Name: "auction", Type: "bigint"},
				{Name: "bidder", Type: "bigint"},
				{Name: "price", Type: "bigint"},
			}},
		},
		Sinks:   []*api.SinkDef{{Id: 1, Name: "kafka_bids", Kind: "kafka"}},
		Outputs: fakeapi.OutputConfig{Count: 1000, Interval: 200 * time.Millisecond},
	}
	config.Grpc.Port = 8001
	return config
}
