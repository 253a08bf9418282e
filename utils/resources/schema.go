package resources

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.json
var schemaFS embed.FS

type schema string

const (
	legacyIDSchema   schema = "legacy_ids"
	statesSchema     schema = "states"
	propertiesSchema schema = "properties"
)

var compiled = map[schema]*jsonschema.Schema{}

func init() {
	c := jsonschema.NewCompiler()
	for _, s := range []schema{legacyIDSchema, statesSchema, propertiesSchema} {
		data, err := schemaFS.ReadFile(s.file())
		if err != nil {
			panic(err)
		}
		if err := c.AddResource(s.url(), bytes.NewReader(data)); err != nil {
			panic(err)
		}
	}
	for _, s := range []schema{legacyIDSchema, statesSchema, propertiesSchema} {
		compiled[s] = c.MustCompile(s.url())
	}
}

func (s schema) file() string {
	return "schemas/" + string(s) + ".json"
}

func (s schema) url() string {
	return "https://blockmap.bedrock-tool.dev/" + s.file()
}

func (s schema) validate(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return err
	}
	if err := compiled[s].Validate(v); err != nil {
		return fmt.Errorf("%s table: %w", s, err)
	}
	return nil
}
