package portals

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"imovelhub/server/internal/forms"
	"imovelhub/server/internal/models"
)

//go:embed portal_config.schema.json
var portalConfigSchema []byte

const schemaURL = "portal_config.schema.json"

// Validator checks portal payloads once, at the API boundary
type Validator struct {
	schema *jsonschema.Schema
}

func NewValidator() (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(schemaURL, bytes.NewReader(portalConfigSchema)); err != nil {
		return nil, fmt.Errorf("failed to add portal config schema: %w", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("failed to compile portal config schema: %w", err)
	}
	return &Validator{schema: schema}, nil
}

// Update is the body of a property's syndication settings
type Update struct {
	Published bool            `json:"published"`
	Portals   []string        `json:"portals"`
	Config    json.RawMessage `json:"config"`
}

// Result is a validated Update
type Result struct {
	Published bool
	Portals   []string
	Config    models.PortalConfig
}

// Validate checks the selection and the override map against the catalog
func (v *Validator) Validate(catalog []models.Portal, update Update) (*Result, error) {
	selected, unknown := Normalize(catalog, update.Portals)
	if len(unknown) > 0 {
		return nil, &forms.ValidationError{
			Field:   "portals",
			Message: fmt.Sprintf("unknown portals: %s", strings.Join(unknown, ", ")),
		}
	}

	config, err := v.ParseConfig(catalog, update.Config)
	if err != nil {
		return nil, err
	}

	return &Result{
		Published: update.Published,
		Portals:   selected,
		Config:    config,
	}, nil
}

// ParseConfig validates raw override JSON and decodes it into a PortalConfig.
// Empty or null input yields an empty config.
func (v *Validator) ParseConfig(catalog []models.Portal, raw json.RawMessage) (models.PortalConfig, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return models.PortalConfig{}, nil
	}

	var doc interface{}
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	if err := decoder.Decode(&doc); err != nil {
		return nil, &forms.ValidationError{Field: "config", Message: "must be a JSON object"}
	}
	if err := v.schema.Validate(doc); err != nil {
		return nil, &forms.ValidationError{Field: "config", Message: schemaMessage(err)}
	}

	var config models.PortalConfig
	if err := json.Unmarshal(raw, &config); err != nil {
		return nil, &forms.ValidationError{Field: "config", Message: err.Error()}
	}

	var unknown []string
	for id := range config {
		if !IsSelected(SelectAll(catalog), id) {
			unknown = append(unknown, id)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, &forms.ValidationError{
			Field:   "config",
			Message: fmt.Sprintf("unknown portals: %s", strings.Join(unknown, ", ")),
		}
	}
	return config, nil
}

func schemaMessage(err error) string {
	if verr, ok := err.(*jsonschema.ValidationError); ok {
		leaf := verr
		for len(leaf.Causes) > 0 {
			leaf = leaf.Causes[0]
		}
		if leaf.InstanceLocation != "" {
			return fmt.Sprintf("%s: %s", leaf.InstanceLocation, leaf.Message)
		}
		return leaf.Message
	}
	return err.Error()
}
