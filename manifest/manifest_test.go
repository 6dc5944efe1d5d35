package manifest_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/defaultargs/defaultargs"
	"go.jacobcolvin.com/defaultargs/manifest"
	"go.jacobcolvin.com/defaultargs/stringtest"
)

var fetchManifest = stringtest.Input(`
	callables:
	  - name: pkg.fetch
	    params:
	      - name: url
	      - name: timeout
	        default: "None"
	      - name: kwargs
	        role: var_keyword
	    docstring: |
	      Fetch a URL.

	      :param url: target
	      :param timeout: seconds to wait
	      :type timeout: float
`) + "\n"

func TestDecode(t *testing.T) {
	t.Parallel()

	m, err := manifest.Decode([]byte(fetchManifest))
	require.NoError(t, err)
	require.Len(t, m.Callables, 1)

	c := m.Callables[0]
	assert.Equal(t, "pkg.fetch", c.Name)
	require.Len(t, c.Params, 3)
	assert.Nil(t, c.Params[0].Default)
	require.NotNil(t, c.Params[1].Default)
	assert.Equal(t, "None", *c.Params[1].Default)
	assert.Equal(t, "var_keyword", c.Params[2].Role)
	assert.Equal(t, []string{
		"Fetch a URL.",
		"",
		":param url: target",
		":param timeout: seconds to wait",
		":type timeout: float",
		"",
	}, c.Lines())

	sig, err := c.Signature()
	require.NoError(t, err)
	assert.Equal(t, []string{"url", "timeout", `\*\*kwargs`}, sig.Args())
}

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	m, err := manifest.Decode([]byte(`{"callables": [{"name": "f", "docstring": ":param x: foo", "params": [{"name": "x", "default": "1", "role": "keyword_only"}]}]}`))
	require.NoError(t, err)

	sig, err := m.Callables[0].Signature()
	require.NoError(t, err)
	assert.Equal(t, defaultargs.KeywordOnly, sig.Params[0].Role)
}

func TestDecodeErrors(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		wantErr error
		input   string
	}{
		"not yaml": {
			input:   "callables: [",
			wantErr: manifest.ErrDecode,
		},
		"missing callables": {
			input:   "{}",
			wantErr: manifest.ErrInvalid,
		},
		"unknown role": {
			input:   `{"callables": [{"name": "f", "docstring": "", "params": [{"name": "x", "role": "varargs"}]}]}`,
			wantErr: manifest.ErrInvalid,
		},
		"numeric default": {
			input:   `{"callables": [{"name": "f", "docstring": "", "params": [{"name": "x", "default": 1}]}]}`,
			wantErr: manifest.ErrInvalid,
		},
		"unknown key": {
			input:   `{"callables": [{"name": "f", "docstring": "", "doc": "x"}]}`,
			wantErr: manifest.ErrInvalid,
		},
		"empty param name": {
			input:   `{"callables": [{"name": "f", "docstring": "", "params": [{"name": ""}]}]}`,
			wantErr: manifest.ErrInvalid,
		},
		"missing docstring": {
			input:   `{"callables": [{"name": "f"}]}`,
			wantErr: manifest.ErrInvalid,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := manifest.Decode([]byte(tc.input))
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestAnnotate(t *testing.T) {
	t.Parallel()

	m, err := manifest.Decode([]byte(fetchManifest))
	require.NoError(t, err)

	orig := m.Callables[0].Docstring

	a, err := defaultargs.New()
	require.NoError(t, err)

	changed, err := m.Annotate(t.Context(), a)
	require.NoError(t, err)
	assert.Equal(t, 1, changed)
	assert.Equal(t, stringtest.JoinLF(
		"Fetch a URL.",
		"",
		":param url: target",
		":param timeout: seconds to wait |default| :code:`None`",
		":type timeout: float, optional",
		"",
	), m.Callables[0].Docstring)

	assert.NotEqual(t, orig, m.Callables[0].Docstring)

	changed, err = m.Annotate(t.Context(), a)
	require.NoError(t, err)
	assert.Zero(t, changed)
}

func TestAnnotateErrors(t *testing.T) {
	t.Parallel()

	a, err := defaultargs.New()
	require.NoError(t, err)

	m := &manifest.Manifest{Callables: []manifest.Callable{{
		Name:   "f",
		Params: []manifest.Param{{Name: "x"}, {Name: "x"}},
	}}}

	_, err = m.Annotate(t.Context(), a)
	require.ErrorIs(t, err, defaultargs.ErrInvalidSignature)
	assert.ErrorContains(t, err, "callable f")

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err = m.Annotate(ctx, a)
	require.ErrorIs(t, err, context.Canceled)
}

func TestEncode(t *testing.T) {
	t.Parallel()

	m, err := manifest.Decode([]byte(fetchManifest))
	require.NoError(t, err)

	for _, format := range []manifest.Format{manifest.FormatYAML, manifest.FormatJSON} {
		t.Run(string(format), func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			require.NoError(t, manifest.Encode(&buf, m, format))

			got, err := manifest.Decode(buf.Bytes())
			require.NoError(t, err)
			assert.Equal(t, m, got)
		})
	}

	var buf bytes.Buffer
	require.NoError(t, manifest.Encode(&buf, m, manifest.FormatYAML))
	assert.Contains(t, buf.String(), "docstring: |")

	require.ErrorIs(t, manifest.Encode(&buf, m, "xml"), manifest.ErrEncode)
}

func TestFormatForPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, manifest.FormatJSON, manifest.FormatForPath("a/b.JSON"))
	assert.Equal(t, manifest.FormatYAML, manifest.FormatForPath("a/b.yml"))
	assert.Equal(t, manifest.FormatYAML, manifest.FormatForPath("-"))
}

func TestSchema(t *testing.T) {
	t.Parallel()

	s, err := manifest.Schema()
	require.NoError(t, err)

	out, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"var_keyword"`)
	assert.Contains(t, string(out), `"callables"`)
}
