package manifest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"go.jacobcolvin.com/defaultargs/defaultargs"
	"go.jacobcolvin.com/defaultargs/fieldlist"
)

var (
	// ErrDecode indicates manifest content could not be parsed.
	ErrDecode = errors.New("decode manifest")
	// ErrInvalid indicates a manifest does not match the schema.
	ErrInvalid = errors.New("invalid manifest")
	// ErrEncode indicates a manifest could not be written.
	ErrEncode = errors.New("encode manifest")
)

// Format is a manifest serialization format.
type Format string

const (
	// FormatYAML writes YAML with multi-line docstrings as literal blocks.
	FormatYAML Format = "yaml"
	// FormatJSON writes indented JSON.
	FormatJSON Format = "json"
)

// FormatForPath returns [FormatJSON] for ".json" files and [FormatYAML]
// otherwise.
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}

	return FormatYAML
}

// Manifest lists callables whose docstrings should be annotated.
type Manifest struct {
	Callables []Callable `json:"callables" jsonschema:"callables to annotate, in output order" yaml:"callables"`
}

// Callable is one introspected function or method.
type Callable struct {
	Name      string  `json:"name"             jsonschema:"qualified name, used in messages"                yaml:"name"`
	Docstring string  `json:"docstring"        jsonschema:"reStructuredText docstring, lines separated by LF" yaml:"docstring"`
	Params    []Param `json:"params,omitempty" jsonschema:"parameters in declaration order"                 yaml:"params,omitempty"`
}

// Param is one parameter of a [Callable].
type Param struct {
	// Default is the source representation of the default value. Nil means
	// the parameter has no default.
	Default *string `json:"default,omitempty" jsonschema:"source representation of the default value" yaml:"default,omitempty"`
	Name    string  `json:"name"              jsonschema:"parameter name without asterisks"            yaml:"name"`
	Role    string  `json:"role,omitempty"    jsonschema:"binding role, positional when omitted"       yaml:"role,omitempty"`
}

// Signature converts the parameters to a [defaultargs.Signature].
func (c *Callable) Signature() (defaultargs.Signature, error) {
	sig := defaultargs.Signature{Params: make([]defaultargs.Param, 0, len(c.Params))}

	for _, p := range c.Params {
		role, err := defaultargs.ParseRole(p.Role)
		if err != nil {
			return defaultargs.Signature{}, fmt.Errorf("%s: %w", c.Name, err)
		}

		sig.Params = append(sig.Params, defaultargs.Param{
			Name:    p.Name,
			Role:    role,
			Default: p.Default,
		})
	}

	return sig, nil
}

// Lines returns the docstring split on LF.
func (c *Callable) Lines() []string {
	return strings.Split(c.Docstring, "\n")
}

// SetLines replaces the docstring.
func (c *Callable) SetLines(lines []string) {
	c.Docstring = strings.Join(lines, "\n")
}

// Decode parses and validates a YAML or JSON manifest.
func Decode(data []byte) (*Manifest, error) {
	err := Validate(data)
	if err != nil {
		return nil, err
	}

	var m Manifest

	err = yaml.Unmarshal(data, &m)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	return &m, nil
}

// Encode writes m to w in the given format.
func Encode(w io.Writer, m *Manifest, format Format) error {
	var (
		out []byte
		err error
	)

	switch format {
	case FormatJSON:
		out, err = json.MarshalIndent(m, "", "  ")
		out = append(out, '\n')

	case FormatYAML:
		out, err = yaml.MarshalWithOptions(m,
			yaml.Indent(2),
			yaml.IndentSequence(true),
			yaml.UseLiteralStyleIfMultiline(true),
		)

	default:
		return fmt.Errorf("%w: unknown format %q", ErrEncode, format)
	}

	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}

	_, err = w.Write(out)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}

	return nil
}

// Annotate runs a over every callable in m, in order, and returns the number
// of callables whose docstring changed. It stops at the first error or when
// ctx is done.
func (m *Manifest) Annotate(ctx context.Context, a *defaultargs.Annotator) (int, error) {
	changed := 0

	for i := range m.Callables {
		err := ctx.Err()
		if err != nil {
			return changed, err
		}

		c := &m.Callables[i]
		lines := fieldlist.NewLines(c.Lines())

		err = a.AnnotateCallable(c, lines)
		if err != nil {
			return changed, fmt.Errorf("callable %s: %w", c.Name, err)
		}

		if lines.Edits() == 0 {
			continue
		}

		c.SetLines(lines.Strings())
		changed++
	}

	return changed, nil
}
