package search

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// MappingMode controls how the index maps the log sub-object
type MappingMode int

const (
	// MappingDynamic sends no mapping; every log.* field is mapped dynamically
	MappingDynamic MappingMode = iota
	// MappingDisabled stores log without indexing or mapping its contents
	MappingDisabled
	// MappingTemplates maps log.* through dynamic templates that skip indexing
	MappingTemplates
	// MappingObject declares log as a plain object with dynamic sub-fields
	MappingObject
)

var modeNames = map[MappingMode]string{
	MappingDynamic:   "dynamic",
	MappingDisabled:  "disabled",
	MappingTemplates: "templates",
	MappingObject:    "object",
}

var modeDescriptions = map[MappingMode]string{
	MappingDynamic:   "no explicit mapping (all log.* fields dynamically mapped)",
	MappingDisabled:  "log.enabled=false (no indexing or mapping of log contents)",
	MappingTemplates: "dynamic_templates (skip indexing for log.* fields)",
	MappingObject:    "log declared as object (sub-fields dynamically mapped)",
}

// MappingModes lists every mode in numeric order
var MappingModes = []MappingMode{MappingDynamic, MappingDisabled, MappingTemplates, MappingObject}

// ParseMappingMode accepts a mode number ("0".."3") or name
func ParseMappingMode(s string) (MappingMode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(s); err == nil {
		mode := MappingMode(n)
		if _, ok := modeNames[mode]; ok {
			return mode, nil
		}
		return 0, fmt.Errorf("unknown mapping mode %d (valid: 0-3)", n)
	}
	for mode, name := range modeNames {
		if name == s {
			return mode, nil
		}
	}
	return 0, fmt.Errorf("unknown mapping mode %q (valid: dynamic, disabled, templates, object)", s)
}

// String returns the mode name
func (m MappingMode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return "mode(" + strconv.Itoa(int(m)) + ")"
}

// Description explains what the mode does to the log sub-object
func (m MappingMode) Description() string {
	return modeDescriptions[m]
}

// skipIndexing is the per-field mapping used by the dynamic templates
var skipIndexing = map[string]any{
	"index":      false,
	"doc_values": false,
}

// MappingBody returns the index creation body for the mode, or nil when the
// index should be created without one
func (m MappingMode) MappingBody() ([]byte, error) {
	var mappings map[string]any

	switch m {
	case MappingDynamic:
		return nil, nil
	case MappingDisabled:
		mappings = map[string]any{
			"properties": map[string]any{
				"log": map[string]any{"type": "object", "enabled": false},
			},
		}
	case MappingTemplates:
		mappings = map[string]any{
			"properties": map[string]any{
				"log": map[string]any{"type": "object"},
			},
			"dynamic_templates": []any{
				map[string]any{
					"skip_text": map[string]any{
						"match_mapping_type": "string",
						"path_match":         "log.*",
						"mapping": map[string]any{
							"type":       "keyword",
							"index":      false,
							"doc_values": false,
						},
					},
				},
				map[string]any{
					"skip_indexing": map[string]any{
						"path_match": "log.*",
						"mapping":    skipIndexing,
					},
				},
			},
		}
	case MappingObject:
		mappings = map[string]any{
			"properties": map[string]any{
				"log": map[string]any{"type": "object"},
			},
		}
	default:
		return nil, fmt.Errorf("unknown mapping mode %d", int(m))
	}

	return json.Marshal(map[string]any{"mappings": mappings})
}

// DefaultFieldLimit is the total_fields limit applied before loading
const DefaultFieldLimit = 1000000

// SettingsBody returns the settings update that raises the field limit
func SettingsBody(fieldLimit int) []byte {
	if fieldLimit <= 0 {
		fieldLimit = DefaultFieldLimit
	}
	body, _ := json.Marshal(map[string]any{
		"settings": map[string]any{
			"index.mapping.total_fields.limit": fieldLimit,
		},
	})
	return body
}
