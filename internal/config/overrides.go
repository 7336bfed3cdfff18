package config

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	// ErrMalformedOverride indicates an override spec without key=value shape.
	ErrMalformedOverride = errors.New("malformed override")

	// ErrUnknownOverrideKey indicates an override for a key outside the schema.
	ErrUnknownOverrideKey = errors.New("unknown override key")
)

// Override is one parsed key=value override with its scalar value in
// its natural type.
type Override struct {
	Key   string
	Value any
}

// parseOverrides parses --set style specs ("mem_every=3",
// "long_term.max_mem_frames=20"). Keys must belong to the run schema;
// model.* keys are accepted as-is because architecture parameters pass
// through unchecked.
func parseOverrides(specs []string) ([]Override, error) {
	if len(specs) == 0 {
		return nil, nil
	}

	known := make(map[string]bool, len(knownKeys))
	for _, k := range knownKeys {
		known[k] = true
	}

	overrides := make([]Override, 0, len(specs))
	for _, spec := range specs {
		key, rawValue, ok := strings.Cut(spec, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: %q (expected key=value)", ErrMalformedOverride, spec)
		}

		if !known[key] && !strings.HasPrefix(key, "model.") {
			return nil, fmt.Errorf("%w: %q", ErrUnknownOverrideKey, key)
		}

		overrides = append(overrides, Override{
			Key:   key,
			Value: parseScalar(rawValue),
		})
	}

	return overrides, nil
}

// parseScalar interprets an override value with YAML scalar rules, so
// "true", "-1" and "0.5" come out typed while anything else stays a
// string.
func parseScalar(raw string) any {
	var value any
	if err := yaml.Unmarshal([]byte(raw), &value); err != nil {
		return raw
	}
	if value == nil {
		return ""
	}
	return value
}
