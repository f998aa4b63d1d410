package content

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"nutzy-site/errors"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed schemas/*.json
var schemaFS embed.FS

const (
	BlogSchema  = "blog"
	EventSchema = "event"
)

// SchemaValidator checks assembled entries against one of the embedded collection schemas.
type SchemaValidator struct {
	name   string
	schema *jsonschema.Schema
}

func NewSchemaValidator(name string) (*SchemaValidator, error) {
	raw, err := schemaFS.ReadFile("schemas/" + name + ".json")
	if err != nil {
		return nil, fmt.Errorf("unknown schema %q: %w", name, err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}

	url := "mem://" + name + ".json"
	c := jsonschema.NewCompiler()
	c.AssertFormat()
	if err := c.AddResource(url, doc); err != nil {
		return nil, err
	}
	sch, err := c.Compile(url)
	if err != nil {
		return nil, err
	}
	return &SchemaValidator{name: name, schema: sch}, nil
}

// Validate round-trips data through JSON so the schema sees exactly what gets stored.
func (v *SchemaValidator) Validate(data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(payload))
	if err != nil {
		return err
	}
	if err := v.schema.Validate(inst); err != nil {
		return fmt.Errorf("%w (%s): %v", errors.ErrSchemaViolation, v.name, err)
	}
	return nil
}
