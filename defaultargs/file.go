package defaultargs

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
)

// ErrReadConfig indicates a config file could not be read or decoded.
var ErrReadConfig = errors.New("read config")

// FileConfig is the on-disk configuration. Keys use the option names of the
// Sphinx extension this tool mirrors, so existing conf.py values can be
// copied over. Nil fields are unset.
type FileConfig struct {
	AlwaysDocument    *bool       `json:"always_document_default_args"                   toml:"always_document_default_args"                   yaml:"always_document_default_args"`
	Flags             *[][]string `json:"docstring_default_arg_flags"                    toml:"docstring_default_arg_flags"                    yaml:"docstring_default_arg_flags"`
	MultilineMatching *bool       `json:"docstring_default_arg_flags_multiline_matching" toml:"docstring_default_arg_flags_multiline_matching" yaml:"docstring_default_arg_flags_multiline_matching"`
	StripMatching     *bool       `json:"docstring_default_arg_strip_matching"           toml:"docstring_default_arg_strip_matching"           yaml:"docstring_default_arg_strip_matching"`
	AfterDirectives   *bool       `json:"docstring_default_arg_after_directives"         toml:"docstring_default_arg_after_directives"         yaml:"docstring_default_arg_after_directives"`
	Substitution      *string     `json:"docstring_default_arg_substitution"             toml:"docstring_default_arg_substitution"             yaml:"docstring_default_arg_substitution"`
}

// LoadFile reads a config file. The format is chosen by extension: .toml
// is TOML, and .yaml, .yml and .json are YAML (JSON being a subset).
// Unknown keys are rejected.
func LoadFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadConfig, err)
	}

	fc, err := ParseFile(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return fc, nil
}

// ParseFile decodes config file content. ext selects the format as in
// [LoadFile].
func ParseFile(data []byte, ext string) (*FileConfig, error) {
	var fc FileConfig

	switch strings.ToLower(ext) {
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()

		err := dec.Decode(&fc)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrReadConfig, err)
		}

	case ".yaml", ".yml", ".json":
		err := yaml.UnmarshalWithOptions(data, &fc, yaml.Strict())
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrReadConfig, err)
		}

	default:
		return nil, fmt.Errorf("%w: unsupported config extension %q", ErrReadConfig, ext)
	}

	return &fc, nil
}

// DelimiterFlags converts the configured [head, tail] pairs.
func (fc *FileConfig) DelimiterFlags() ([]Flag, error) {
	if fc.Flags == nil {
		return nil, nil
	}

	flags := make([]Flag, 0, len(*fc.Flags))

	for i, pair := range *fc.Flags {
		if len(pair) != 2 {
			return nil, fmt.Errorf("%w: docstring_default_arg_flags[%d]: want [head, tail], got %d values",
				ErrInvalidOption, i, len(pair))
		}

		flags = append(flags, Flag{Head: pair[0], Tail: pair[1]})
	}

	return flags, nil
}
