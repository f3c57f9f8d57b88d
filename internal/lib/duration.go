package lib

import (
	"encoding/json"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration and allows itself to be unmarshalled in to,
// from both JSON (websocket session configs) and YAML (the config file).
type Duration struct {
	time.Duration
}

// DurationFrom gets around the "struct literal uses unkeyed fields" warning if
// you try to declare a Duration literal such as lib.Duration{time.Second}.
func DurationFrom(t time.Duration) Duration {
	return Duration{t}
}

func (duration *Duration) UnmarshalJSON(b []byte) error {
	var unmarshalledJson interface{}

	err := json.Unmarshal(b, &unmarshalledJson)
	if err != nil {
		return err
	}

	return duration.fromAny(unmarshalledJson)
}

func (duration *Duration) UnmarshalYAML(value *yaml.Node) error {
	var decoded interface{}
	if err := value.Decode(&decoded); err != nil {
		return err
	}
	return duration.fromAny(decoded)
}

func (duration *Duration) fromAny(value interface{}) (err error) {
	switch v := value.(type) {
	case float64:
		duration.Duration = time.Duration(v)
	case int:
		duration.Duration = time.Duration(v)
	case string:
		duration.Duration, err = time.ParseDuration(v)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("invalid duration: %#v", value)
	}

	return nil
}
