package cli

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/vburojevic/osbench/internal/output"
	"github.com/vburojevic/osbench/internal/search"
)

// MappingCmd prints the index creation body a mapping mode sends
type MappingCmd struct {
	Mode       string `arg:"" optional:"" help:"Mapping mode: 0|dynamic, 1|disabled, 2|templates, 3|object (default from config)"`
	FieldLimit int    `help:"Also print the settings body with this field limit" default:"${config_field_limit}"`
	List       bool   `help:"List every mode with its description"`
}

type mappingOutput struct {
	Type          string          `json:"type"` // Always "mapping"
	SchemaVersion int             `json:"schemaVersion"`
	Mode          int             `json:"mode"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Body          json.RawMessage `json:"body"`
	Settings      json.RawMessage `json:"settings,omitempty"`
}

// Run executes the mapping command
func (c *MappingCmd) Run(globals *Globals) error {
	cfg := globals.config()

	modes := search.MappingModes
	if !c.List {
		mode, err := search.ParseMappingMode(orString(c.Mode, cfg.Load.MappingMode))
		if err != nil {
			return outputErrorCommon(globals, "INVALID_MAPPING_MODE", err.Error(), hintForMappingMode())
		}
		modes = []search.MappingMode{mode}
	}
	settings := search.SettingsBody(c.FieldLimit)

	w := output.NewNDJSONWriter(globals.Stdout)
	p := &textPrinter{w: globals.Stdout}
	for _, mode := range modes {
		body, err := mode.MappingBody()
		if err != nil {
			return outputErrorCommon(globals, "INVALID_MAPPING_MODE", err.Error())
		}

		if globals.Format == "ndjson" {
			out := mappingOutput{
				Type:          "mapping",
				SchemaVersion: output.SchemaVersion,
				Mode:          int(mode),
				Name:          mode.String(),
				Description:   mode.Description(),
				Body:          body,
				Settings:      settings,
			}
			if body == nil {
				out.Body = json.RawMessage("null")
			}
			if err := w.WriteRaw(out); err != nil {
				return err
			}
			continue
		}

		p.f("%s %d (%s): %s\n", output.Styles.Header.Render("Mapping mode"), int(mode), mode, mode.Description())
		if body == nil {
			p.f("  (no body; index is created with dynamic mapping)\n")
		} else {
			p.f("%s\n", indentJSON(body))
		}
		p.f("%s\n%s\n\n", output.Styles.Label.Render("Settings:"), indentJSON(settings))
	}
	return p.err
}

func indentJSON(raw []byte) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "  ", "  "); err != nil {
		return string(raw)
	}
	return fmt.Sprintf("  %s", buf.String())
}
