package console

import (
	lru "github.com/hashicorp/golang-lru/simplelru"

	"github.com/jacksonrnewhouse/arroyo/pkg/api"
)

// MaxOutputs is the number of records a preview keeps.
const MaxOutputs = 100

// OutputRecord is one streamed result. SequenceID starts at 1 within a
// session and is never reused.
type OutputRecord struct {
	SequenceID uint64
	Payload    *api.OutputData
}

// outputBuffer keeps the newest MaxOutputs records and evicts the oldest
// first. Records are only ever read with Peek so the recency order stays the
// insertion order. Not safe for concurrent use.
type outputBuffer struct {
	records *lru.LRU
	nextID  uint64
	evicted uint64
}

func newOutputBuffer(size int, onEvict func()) *outputBuffer {
	b := &outputBuffer{nextID: 1}
	records, err := lru.NewLRU(size, func(_ interface{}, _ interface{}) {
		b.evicted++
		if onEvict != nil {
			onEvict()
		}
	})
	if err != nil {
		// Only returned for a non-positive size.
		panic(err)
	}
	b.records = records
	return b
}

// append stores payload under the next sequence id.
func (b *outputBuffer) append(payload *api.OutputData) OutputRecord {
	record := OutputRecord{SequenceID: b.nextID, Payload: payload}
	b.nextID++
	b.records.Add(record.SequenceID, record)
	return record
}

// list returns the buffered records, oldest first.
func (b *outputBuffer) list() []OutputRecord {
	keys := b.records.Keys()
	out := make([]OutputRecord, 0, len(keys))
	for _, k := range keys {
		if v, ok := b.records.Peek(k); ok {
			out = append(out, v.(OutputRecord))
		}
	}
	return out
}

func (b *outputBuffer) len() int {
	return b.records.Len()
}
