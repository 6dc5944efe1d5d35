package manifest

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/goccy/go-yaml"
	"github.com/google/jsonschema-go/jsonschema"

	"go.jacobcolvin.com/defaultargs/defaultargs"
)

var resolved = sync.OnceValues(func() (*jsonschema.Resolved, error) {
	s, err := Schema()
	if err != nil {
		return nil, err
	}

	return s.Resolve(nil)
})

// Schema returns the JSON Schema of the manifest format.
func Schema() (*jsonschema.Schema, error) {
	s, err := jsonschema.For[Manifest](nil)
	if err != nil {
		return nil, fmt.Errorf("infer manifest schema: %w", err)
	}

	s.Title = "defaultargs manifest"
	closed(s)

	callable := s.Properties["callables"].Items
	closed(callable)

	param := callable.Properties["params"].Items
	closed(param)

	roles := defaultargs.RoleNames()
	param.Properties["role"].Enum = make([]any, 0, len(roles))

	for _, r := range roles {
		param.Properties["role"].Enum = append(param.Properties["role"].Enum, r)
	}

	param.Properties["name"].MinLength = jsonschema.Ptr(1)

	return s, nil
}

// Validate checks YAML or JSON manifest content against [Schema].
func Validate(data []byte) error {
	rs, err := resolved()
	if err != nil {
		return err
	}

	js, err := yaml.YAMLToJSON(data)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDecode, err)
	}

	var instance any

	err = json.Unmarshal(js, &instance)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDecode, err)
	}

	err = rs.Validate(instance)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	return nil
}

// closed rejects properties the schema does not declare.
func closed(s *jsonschema.Schema) {
	s.AdditionalProperties = &jsonschema.Schema{Not: &jsonschema.Schema{}}
}
