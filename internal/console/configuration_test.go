package console

import (
	"testing"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/mitchellh/mapstructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacksonrnewhouse/arroyo/pkg/api"
)

func TestDefaults(t *testing.T) {
	config := Defaults()
	assert.NoError(t, config.Validate())
	assert.Equal(t, time.Second, config.PollInterval)
	assert.Equal(t, 10*time.Second, config.RequestTimeout)
	assert.Equal(t, uint64(4), config.DefaultParallelism)
	assert.Equal(t, uint64(5000), config.DefaultCheckpointIntervalMs)
	assert.Equal(t, "preview", config.PreviewName)
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	config := Defaults()
	config.PollInterval = 0
	config.MaxWait = -time.Second
	config.PreviewName = ""

	err := config.Validate()
	require.Error(t, err)

	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	assert.Len(t, merr.Errors, 3)
}

func TestSinkDecodeHook(t *testing.T) {
	tests := map[string]SinkSelection{
		"web":          BuiltinSink{Kind: api.BuiltinSinkWeb},
		"Null":         BuiltinSink{Kind: api.BuiltinSinkNull},
		"LOG":          BuiltinSink{Kind: api.BuiltinSinkLog},
		"kafka_orders": NamedSink{Name: "kafka_orders"},
	}
	for input, expected := range tests {
		t.Run(input, func(t *testing.T) {
			var target struct {
				DefaultSink SinkSelection
			}
			decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
				DecodeHook: SinkDecodeHook(),
				Result:     &target,
			})
			require.NoError(t, err)

			require.NoError(t, decoder.Decode(map[string]interface{}{"defaultSink": input}))
			assert.Equal(t, expected, target.DefaultSink)
		})
	}
}

func TestParseSink_Empty(t *testing.T) {
	assert.Nil(t, ParseSink(""))
}
