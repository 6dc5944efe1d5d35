package defaultargs

import (
	"fmt"
	"strings"
)

// Role is the way a parameter binds to call arguments.
type Role int

// Parameter roles.
const (
	// Positional parameters may be passed by position or by name.
	Positional Role = iota
	// PositionalOnly parameters may only be passed by position. They are
	// documented like [Positional] parameters.
	PositionalOnly
	// VarPositional collects extra positional arguments (*args).
	VarPositional
	// KeywordOnly parameters may only be passed by name.
	KeywordOnly
	// VarKeyword collects extra keyword arguments (**kwargs).
	VarKeyword
)

var roleNames = map[Role]string{
	Positional:     "positional",
	PositionalOnly: "positional_only",
	VarPositional:  "var_positional",
	KeywordOnly:    "keyword_only",
	VarKeyword:     "var_keyword",
}

// RoleNames returns the textual names of all roles in declaration order.
func RoleNames() []string {
	return []string{
		roleNames[Positional],
		roleNames[PositionalOnly],
		roleNames[VarPositional],
		roleNames[KeywordOnly],
		roleNames[VarKeyword],
	}
}

// ParseRole parses a role name. The empty string is [Positional].
func ParseRole(s string) (Role, error) {
	if s == "" {
		return Positional, nil
	}

	for role, name := range roleNames {
		if name == s {
			return role, nil
		}
	}

	return 0, fmt.Errorf("%w: unknown parameter role %q", ErrInvalidSignature, s)
}

// String returns the role name.
func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}

	return fmt.Sprintf("Role(%d)", int(r))
}

// Param describes one parameter of a callable.
type Param struct {
	// Default is the source representation of the default value, e.g.
	// "None" or "''". Nil means the parameter has no default.
	Default *string
	Name    string
	Role    Role
}

// DefaultArg is a parameter that declares a default value.
type DefaultArg struct {
	// Name is escaped for embedding in field markers, see [EscapeName].
	Name        string
	Default     string
	KeywordOnly bool
}

// Signature is the ordered parameter list of a callable.
type Signature struct {
	Params []Param
}

// Callable is implemented by anything that can describe its own signature.
// Hosts introspect their native callables and expose the result through this
// interface.
type Callable interface {
	Signature() (Signature, error)
}

// Validate checks that parameter names are present and unique and that
// variadic parameters carry no default.
func (s Signature) Validate() error {
	seen := make(map[string]bool, len(s.Params))

	for i, p := range s.Params {
		if p.Name == "" {
			return fmt.Errorf("%w: parameter %d has no name", ErrInvalidSignature, i)
		}

		if seen[p.Name] {
			return fmt.Errorf("%w: duplicate parameter %q", ErrInvalidSignature, p.Name)
		}

		seen[p.Name] = true

		if p.Default != nil && (p.Role == VarPositional || p.Role == VarKeyword) {
			return fmt.Errorf("%w: variadic parameter %q has a default", ErrInvalidSignature, p.Name)
		}

		if _, ok := roleNames[p.Role]; !ok {
			return fmt.Errorf("%w: parameter %q: %s", ErrInvalidSignature, p.Name, p.Role)
		}
	}

	return nil
}

// Args returns every parameter name in order, escaped with [EscapeName].
func (s Signature) Args() []string {
	args := make([]string, 0, len(s.Params))
	for _, p := range s.Params {
		args = append(args, EscapeName(p.Name, p.Role))
	}

	return args
}

// DefaultArgs returns the parameters that declare a default, in order.
func (s Signature) DefaultArgs() []DefaultArg {
	var out []DefaultArg

	for _, p := range s.Params {
		if p.Default == nil {
			continue
		}

		out = append(out, DefaultArg{
			Name:        EscapeName(p.Name, p.Role),
			Default:     *p.Default,
			KeywordOnly: p.Role == KeywordOnly,
		})
	}

	return out
}

// EscapeName escapes a parameter name for use inside reStructuredText: a
// trailing underscore would start a reference, and leading asterisks would
// start emphasis.
//
//	EscapeName("type_", Positional)   // type\_
//	EscapeName("args", VarPositional) // \*args
//	EscapeName("kw", VarKeyword)      // \*\*kw
func EscapeName(name string, role Role) string {
	if base, ok := strings.CutSuffix(name, "_"); ok {
		name = base + `\_`
	}

	switch role {
	case VarPositional:
		return `\*` + name
	case VarKeyword:
		return `\*\*` + name
	}

	return name
}

// CodeLiteral renders a default value representation as inline code.
func CodeLiteral(repr string) string {
	return ":code:`" + strings.ReplaceAll(repr, "`", "\\`") + "`"
}
