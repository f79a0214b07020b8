package pipeline

import (
	"fmt"

	"github.com/jacksonrnewhouse/arroyo/pkg/client/util"
)

// File is a pipeline described in a json or yaml document, e.g.
//
//	name: orders
//	sink: kafka_orders
//	query: SELECT * FROM orders
type File struct {
	Name                 string `json:"name"`
	Query                string `json:"query"`
	Udfs                 string `json:"udfs,omitempty"`
	Sink                 string `json:"sink,omitempty"`
	Parallelism          uint64 `json:"parallelism,omitempty"`
	CheckpointIntervalMs uint64 `json:"checkpointIntervalMs,omitempty"`
}

func LoadFile(path string) (*File, error) {
	file := &File{}
	if err := util.BindJsonOrYaml(path, file); err != nil {
		return nil, err
	}
	if file.Query == "" {
		return nil, fmt.Errorf("pipeline file %s has no query", path)
	}
	return file, nil
}
