package console

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/jacksonrnewhouse/arroyo/internal/common"
	"github.com/jacksonrnewhouse/arroyo/internal/common/consolecontext"
)

type Configuration struct {
	// Delay between job detail fetches while waiting for a preview to run.
	PollInterval time.Duration
	// Upper bound on the wait for Running. Zero disables the bound.
	MaxWait time.Duration
	// Delay between job detail fetches while waiting for a stop to land.
	StopPollInterval time.Duration
	// Upper bound on the wait for Stopped. Zero disables the bound.
	StopMaxWait time.Duration
	// Deadline of every single request to the server.
	RequestTimeout time.Duration

	DefaultParallelism          uint64
	DefaultCheckpointIntervalMs uint64
	// Pipeline name used for preview jobs.
	PreviewName string
}

func Defaults() Configuration {
	return Configuration{
		PollInterval:                time.Second,
		MaxWait:                     5 * time.Minute,
		StopPollInterval:            250 * time.Millisecond,
		StopMaxWait:                 time.Minute,
		RequestTimeout:              common.DefaultRequestTimeout,
		DefaultParallelism:          4,
		DefaultCheckpointIntervalMs: 5000,
		PreviewName:                 "preview",
	}
}

func (c Configuration) Validate() error {
	var result *multierror.Error
	if c.PollInterval <= 0 {
		result = multierror.Append(result, fmt.Errorf("pollInterval must be positive, got %s", c.PollInterval))
	}
	if c.StopPollInterval <= 0 {
		result = multierror.Append(result, fmt.Errorf("stopPollInterval must be positive, got %s", c.StopPollInterval))
	}
	if c.RequestTimeout <= 0 {
		result = multierror.Append(result, fmt.Errorf("requestTimeout must be positive, got %s", c.RequestTimeout))
	}
	if c.MaxWait < 0 {
		result = multierror.Append(result, fmt.Errorf("maxWait must not be negative, got %s", c.MaxWait))
	}
	if c.StopMaxWait < 0 {
		result = multierror.Append(result, fmt.Errorf("stopMaxWait must not be negative, got %s", c.StopMaxWait))
	}
	if c.DefaultParallelism == 0 {
		result = multierror.Append(result, fmt.Errorf("defaultParallelism must be at least 1"))
	}
	if c.PreviewName == "" {
		result = multierror.Append(result, fmt.Errorf("previewName must not be empty"))
	}
	return result.ErrorOrNil()
}

// withDefaults fills every unset field from Defaults.
func (c Configuration) withDefaults() Configuration {
	defaults := Defaults()
	if c.PollInterval == 0 {
		c.PollInterval = defaults.PollInterval
	}
	if c.StopPollInterval == 0 {
		c.StopPollInterval = defaults.StopPollInterval
	}
	if c.RequestTimeout == 0 {
		c.RequestTimeout = defaults.RequestTimeout
	}
	if c.DefaultParallelism == 0 {
		c.DefaultParallelism = defaults.DefaultParallelism
	}
	if c.DefaultCheckpointIntervalMs == 0 {
		c.DefaultCheckpointIntervalMs = defaults.DefaultCheckpointIntervalMs
	}
	if c.PreviewName == "" {
		c.PreviewName = defaults.PreviewName
	}
	return c
}

// requestContext bounds a single request made on behalf of ctx.
func requestContext(ctx *consolecontext.Context, timeout time.Duration) (*consolecontext.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = common.DefaultRequestTimeout
	}
	return consolecontext.WithTimeout(ctx, timeout)
}
