package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/encoding"
)

func TestEnsureCodecs(t *testing.T) {
	EnsureCodecs()
	EnsureCodecs()

	assert.NotNil(t, encoding.GetCodec(CodecJSON))
	assert.NotNil(t, encoding.GetCodec(CodecCBOR))
	assert.True(t, IsKnownCodec(CodecCBOR))
	assert.False(t, IsKnownCodec("proto"))
}

func TestCodecs_SinkOneofKeepsOnlyTheSetCase(t *testing.T) {
	EnsureCodecs()
	for _, name := range []string{CodecJSON, CodecCBOR} {
		t.Run(name, func(t *testing.T) {
			codec := encoding.GetCodec(name)
			data, err := codec.Marshal(&CreatePipelineReq{
				Name: "orders",
				Sql:  &CreateSqlJob{Query: "SELECT 1", Sink: &Sink{User: "kafka_orders"}},
			})
			require.NoError(t, err)

			decoded := &CreatePipelineReq{}
			require.NoError(t, codec.Unmarshal(data, decoded))
			assert.Equal(t, "kafka_orders", decoded.GetSql().Sink.GetUser())
			assert.Equal(t, BuiltinSink(""), decoded.GetSql().Sink.GetBuiltin())
		})
	}
}

func TestCborCodec_IsDeterministic(t *testing.T) {
	codec := newCborCodec()
	msg := &JobStatus{JobId: "job_1", State: JobStateRunning, RunId: 3}

	first, err := codec.Marshal(msg)
	require.NoError(t, err)
	second, err := codec.Marshal(msg)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
