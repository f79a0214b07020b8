package console

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jacksonrnewhouse/arroyo/pkg/api"
)

func TestOutputBuffer_EvictsOldestFirst(t *testing.T) {
	evictions := 0
	b := newOutputBuffer(MaxOutputs, func() { evictions++ })

	for i := 1; i <= 150; i++ {
		record := b.append(&api.OutputData{Timestamp: uint64(i)})
		assert.Equal(t, uint64(i), record.SequenceID)
		assert.LessOrEqual(t, b.len(), MaxOutputs)
	}

	records := b.list()
	assert.Len(t, records, MaxOutputs)
	assert.Equal(t, uint64(51), records[0].SequenceID)
	assert.Equal(t, uint64(150), records[len(records)-1].SequenceID)
	for i, r := range records {
		assert.Equal(t, uint64(51+i), r.SequenceID)
		assert.Equal(t, r.SequenceID, r.Payload.Timestamp)
	}
	assert.Equal(t, 50, evictions)
	assert.Equal(t, uint64(50), b.evicted)
}

func TestOutputBuffer_101stRecord(t *testing.T) {
	b := newOutputBuffer(MaxOutputs, nil)
	for i := 0; i < MaxOutputs; i++ {
		b.append(&api.OutputData{})
	}
	assert.Equal(t, uint64(1), b.list()[0].SequenceID)

	record := b.append(&api.OutputData{})

	assert.Equal(t, uint64(101), record.SequenceID)
	records := b.list()
	assert.Len(t, records, MaxOutputs)
	assert.Equal(t, uint64(2), records[0].SequenceID)
	assert.Equal(t, uint64(101), records[MaxOutputs-1].SequenceID)
}

func TestOutputBuffer_Empty(t *testing.T) {
	b := newOutputBuffer(MaxOutputs, nil)
	assert.Empty(t, b.list())
	assert.Equal(t, 0, b.len())
}
