// Package defaultargs documents default parameter values in reStructuredText
// docstrings.
//
// Given the signature of a callable and the lines of its docstring, an
// [Annotator] rewrites the field list so that every parameter with a default
// shows it:
//
//	:param x: foo                       :param x: foo |default| :code:`None`
//	:type x: int                  ->    :type x: int, optional
//
// The marker ("|default|" unless configured otherwise) is meant to be
// defined as a substitution by the documentation project, and doubles as the
// signal that a field was already annotated. Annotating twice is therefore a
// no-op.
//
// # Documented defaults
//
// Authors may write the default themselves at the end of the description,
// between a pair of delimiters such as "(Default: " and ")". The delimited
// text replaces the introspected value:
//
//	:param y: bar (Default: empty)  ->  :param y: bar |default| empty
//
// # Missing fields
//
// With [WithAlwaysDocument], parameters that have a default but no field get
// one, along with a type field reading "optional". New fields are placed
// before the next documented parameter, or after the previous one and ahead
// of fields such as :returns:, so the field list keeps its order.
//
// # Configuration
//
// [Config] binds annotator options to CLI flags and to config files in YAML,
// JSON or TOML, see [LoadFile].
package defaultargs
