package intent

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// wireKeys are the exact keys a backend answer must carry.
var wireKeys = []string{"thought", "action", "param", "reply"}

type wireIntent struct {
	Thought string         `mapstructure:"thought"`
	Action  *string        `mapstructure:"action"`
	Param   map[string]any `mapstructure:"param"`
	Reply   string         `mapstructure:"reply"`
}

// DecodeIntent parses a backend answer. The payload must be a single JSON
// object with exactly the keys thought, action, param and reply; action and
// param may be null. Anything else is an error.
func DecodeIntent(data []byte) (Intent, error) {
	var raw map[string]any
	dec := json.NewDecoder(bytes.NewReader(bytes.TrimSpace(data)))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return Intent{}, fmt.Errorf("response is not a JSON object: %w", err)
	}
	if dec.More() {
		return Intent{}, fmt.Errorf("response has trailing data after the JSON object")
	}
	if raw == nil {
		return Intent{}, fmt.Errorf("response is null")
	}
	for _, key := range wireKeys {
		if _, ok := raw[key]; !ok {
			return Intent{}, fmt.Errorf("response is missing key %q", key)
		}
	}

	var wire wireIntent
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      &wire,
	})
	if err != nil {
		return Intent{}, err
	}
	if err := decoder.Decode(raw); err != nil {
		return Intent{}, fmt.Errorf("response has the wrong shape: %w", err)
	}

	intent := Intent{
		Thought:    wire.Thought,
		Parameters: wire.Param,
		Reply:      wire.Reply,
	}
	if wire.Action != nil {
		intent.Action = *wire.Action
	}
	if intent.Parameters == nil {
		intent.Parameters = map[string]any{}
	}
	return intent, nil
}
