package common

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/weaveworks/promrus"
)

var (
	promrusHookInstalled bool
	envKeyReplacer       = strings.NewReplacer(".", "_")
)

// ConfigureCommandLineLogging sets up logging for interactive tools: plain text on stderr,
// so that stdout stays reserved for command output.
func ConfigureCommandLineLogging() {
	commandLineFormatter := new(log.TextFormatter)
	commandLineFormatter.ForceColors = true
	commandLineFormatter.FullTimestamp = true
	log.SetFormatter(commandLineFormatter)
	log.SetOutput(os.Stderr)
	installPromrusHook()
}

// ConfigureLogging sets up logging for long-running services.
func ConfigureLogging() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetOutput(os.Stdout)
	installPromrusHook()
}

// installPromrusHook exports the number of log lines per level as prometheus counters.
func installPromrusHook() {
	if promrusHookInstalled {
		return
	}
	log.AddHook(promrus.MustNewPrometheusHook())
	promrusHookInstalled = true
}

// LoadConfig reads config.yaml from each of the given paths into config, later paths overriding earlier ones.
func LoadConfig(config interface{}, userConfigPaths []string, options ...viper.DecoderConfigOption) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	for _, path := range userConfigPaths {
		v.SetConfigFile(path)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config from %s: %s", path, err)
		}
		log.Infof("Read config from %s", path)
	}
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.SetEnvPrefix("ARROYO")
	v.AutomaticEnv()

	if err := v.Unmarshal(config, options...); err != nil {
		return nil, err
	}
	return v, nil
}

// ServeMetrics exposes the default prometheus registry on /metrics and returns a function
// that shuts the server down.
func ServeMetrics(port uint16) (shutdown func()) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Infof("Serving metrics on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("metrics server failed")
		}
	}()
	return func() {
		ctx, cancel := ContextWithDefaultTimeout()
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.WithError(err).Warn("failed to shut down metrics server cleanly")
		}
	}
}
