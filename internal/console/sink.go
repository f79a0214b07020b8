package console

import (
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/jacksonrnewhouse/arroyo/pkg/api"
)

// SinkSelection is where a launched pipeline writes its results: either a
// BuiltinSink or a NamedSink.
type SinkSelection interface {
	Label() string
	toAPI() *api.Sink
}

type BuiltinSink struct {
	Kind api.BuiltinSink
}

func (s BuiltinSink) Label() string {
	return string(s.Kind)
}

func (s BuiltinSink) toAPI() *api.Sink {
	return &api.Sink{Builtin: s.Kind}
}

// NamedSink is a sink the user created in the catalog.
type NamedSink struct {
	Name string
}

func (s NamedSink) Label() string {
	return s.Name
}

func (s NamedSink) toAPI() *api.Sink {
	return &api.Sink{User: s.Name}
}

var builtinSinks = []api.BuiltinSink{api.BuiltinSinkWeb, api.BuiltinSinkLog, api.BuiltinSinkNull}

// ParseSink maps a configured sink name onto a selection. The builtin names
// match case-insensitively; anything else names a user sink.
func ParseSink(name string) SinkSelection {
	if name == "" {
		return nil
	}
	for _, kind := range builtinSinks {
		if strings.EqualFold(name, string(kind)) {
			return BuiltinSink{Kind: kind}
		}
	}
	return NamedSink{Name: name}
}

// SinkDecodeHook decodes config strings such as "web" or "my_kafka_sink" into
// a SinkSelection.
func SinkDecodeHook() mapstructure.DecodeHookFuncType {
	sinkType := reflect.TypeOf((*SinkSelection)(nil)).Elem()
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if from.Kind() != reflect.String || to != sinkType {
			return data, nil
		}
		return ParseSink(data.(string)), nil
	}
}
