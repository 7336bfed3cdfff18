package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const selfMarker = "_self_"

var (
	// ErrBadDefaultsList indicates a malformed defaults: directive.
	ErrBadDefaultsList = errors.New("malformed defaults list")

	// ErrMissingSubConfig indicates a defaults: entry naming a document
	// that does not exist under the config directory.
	ErrMissingSubConfig = errors.New("missing sub-config")
)

// layer is one entry of the defaults: list. An empty group marks the
// run document's own position (_self_).
type layer struct {
	group string
	name  string
}

func (l layer) isSelf() bool {
	return l.group == ""
}

// sectionGroups are the groups whose documents form a nested section of
// the run schema. Any other group is a preset: its keys merge at the
// top level of the run document.
var sectionGroups = map[string]bool{
	"model":   true,
	"logging": true,
}

// scope places a sub-config's mapping where the group dictates. Preset
// groups additionally record the chosen document name under the group
// key (so ${dataset} resolves to the preset name), unless the preset
// sets the key itself.
func (l layer) scope(sub map[string]any) map[string]any {
	if sectionGroups[l.group] {
		return map[string]any{l.group: sub}
	}
	scoped := make(map[string]any, len(sub)+1)
	scoped[l.group] = l.name
	for k, val := range sub {
		scoped[k] = val
	}
	return scoped
}

// parseRunDocument parses the raw run document and its defaults: list.
// It returns the ordered layers and the document's own mapping with the
// defaults: key stripped. A missing _self_ entry places the document
// last, so listed sub-configs act as presets the document overrides.
func parseRunDocument(raw []byte) ([]layer, map[string]any, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, nil, fmt.Errorf("failed to parse run document: %w", err)
	}
	if doc == nil {
		doc = map[string]any{}
	}

	rawList, ok := doc["defaults"]
	delete(doc, "defaults")
	if !ok {
		return []layer{{}}, doc, nil
	}

	entries, ok := rawList.([]any)
	if !ok {
		return nil, nil, fmt.Errorf("%w: defaults must be a list, got %T", ErrBadDefaultsList, rawList)
	}

	layers := make([]layer, 0, len(entries)+1)
	sawSelf := false
	for i, entry := range entries {
		switch e := entry.(type) {
		case string:
			if e != selfMarker {
				return nil, nil, fmt.Errorf("%w: entry %d: bare string must be %q, got %q", ErrBadDefaultsList, i, selfMarker, e)
			}
			if sawSelf {
				return nil, nil, fmt.Errorf("%w: %q listed twice", ErrBadDefaultsList, selfMarker)
			}
			sawSelf = true
			layers = append(layers, layer{})
		case map[string]any:
			if len(e) != 1 {
				return nil, nil, fmt.Errorf("%w: entry %d must name exactly one group", ErrBadDefaultsList, i)
			}
			for group, name := range e {
				nameStr, ok := name.(string)
				if !ok {
					return nil, nil, fmt.Errorf("%w: entry %d: %s must name a document, got %T", ErrBadDefaultsList, i, group, name)
				}
				layers = append(layers, layer{group: group, name: nameStr})
			}
		default:
			return nil, nil, fmt.Errorf("%w: entry %d has unsupported type %T", ErrBadDefaultsList, i, entry)
		}
	}

	if !sawSelf {
		layers = append(layers, layer{})
	}

	return layers, doc, nil
}

// loadSubConfig reads <configDir>/<group>/<name>.yaml into a mapping.
func loadSubConfig(configDir string, l layer) (map[string]any, error) {
	name := l.name
	if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
		name += ".yaml"
	}
	path := filepath.Join(configDir, l.group, name)

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s/%s (looked in %s)", ErrMissingSubConfig, l.group, l.name, path)
		}
		return nil, fmt.Errorf("failed to read sub-config %s: %w", path, err)
	}

	var doc map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse sub-config %s: %w", path, err)
	}
	return doc, nil
}
