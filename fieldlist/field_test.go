package fieldlist_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/defaultargs/fieldlist"
)

// fieldFixture mixes single-line, multi-line and whitespace-only
// continuation lines.
var fieldFixture = []string{
	":param x:",
	":parameter y: foo",
	"             line",
	":arg a: bar",
	"..  \t\v",
	":argument b:",
	" \t\v",
	"",
	":rtype: int",
	"",
}

func TestFindField(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		target       fieldlist.Target
		wantText     []string
		wantTag      string
		wantStart    int
		wantEnd      int
		includeBlank bool
		wantFound    bool
	}{
		"single line without text": {
			target:    fieldlist.Tag(":param x:"),
			wantFound: true,
			wantStart: 0,
			wantEnd:   1,
			wantTag:   ":param x:",
			wantText:  []string{""},
		},
		"alternatives with continuation": {
			target:    fieldlist.Tags{":param y:", ":parameter y:"},
			wantFound: true,
			wantStart: 1,
			wantEnd:   3,
			wantTag:   ":parameter y:",
			wantText:  []string{"foo", "line"},
		},
		"terminated by comment line": {
			target:    fieldlist.Tag(":arg a:"),
			wantFound: true,
			wantStart: 3,
			wantEnd:   4,
			wantTag:   ":arg a:",
			wantText:  []string{"bar"},
		},
		"whitespace-only line continues": {
			target:    fieldlist.Tags{":argument b:", ":arg b:"},
			wantFound: true,
			wantStart: 5,
			wantEnd:   7,
			wantTag:   ":argument b:",
			wantText:  []string{"", ""},
		},
		"blank line included": {
			target:       fieldlist.Tags{":argument b:", ":arg b:"},
			includeBlank: true,
			wantFound:    true,
			wantStart:    5,
			wantEnd:      8,
			wantTag:      ":argument b:",
			wantText:     []string{"", "", ""},
		},
		"not found": {
			target:    fieldlist.Tags{":argument z:", ":arg z:"},
			wantFound: false,
			wantStart: 10,
			wantEnd:   10,
		},
		"field without name": {
			target:    fieldlist.Tag(":rtype:"),
			wantFound: true,
			wantStart: 8,
			wantEnd:   9,
			wantTag:   ":rtype:",
			wantText:  []string{"int"},
		},
		"pattern reports matched text as tag": {
			target:    fieldlist.PatternOf(regexp.MustCompile(`:\S+ y:`)),
			wantFound: true,
			wantStart: 1,
			wantEnd:   3,
			wantTag:   ":parameter y:",
			wantText:  []string{"foo", "line"},
		},
		"pattern only matches line start": {
			target:    fieldlist.PatternOf(regexp.MustCompile(`y: foo`)),
			wantFound: false,
			wantStart: 10,
			wantEnd:   10,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			span, err := fieldlist.FindField(fieldFixture, tc.target, tc.includeBlank)
			require.NoError(t, err)

			assert.Equal(t, tc.wantFound, span.Found)
			assert.Equal(t, tc.wantStart, span.Start)
			assert.Equal(t, tc.wantEnd, span.End)
			assert.Equal(t, tc.wantTag, span.Tag)

			if tc.wantFound {
				assert.Equal(t, tc.wantText, span.Text)
			} else {
				assert.Nil(t, span.Text)
			}
		})
	}
}

func TestFindFieldEmptyInput(t *testing.T) {
	t.Parallel()

	span, err := fieldlist.FindField(nil, fieldlist.Tag(":param x:"), false)
	require.NoError(t, err)
	assert.Equal(t, fieldlist.Span{}, span)
}

func TestFindFieldInvalidTarget(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		target fieldlist.Target
	}{
		"nil target":       {target: nil},
		"empty tag":        {target: fieldlist.Tag("")},
		"no tags":          {target: fieldlist.Tags{}},
		"empty tag in set": {target: fieldlist.Tags{":param x:", ""}},
		"zero pattern":     {target: fieldlist.Pattern{}},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := fieldlist.FindField(fieldFixture, tc.target, false)
			require.ErrorIs(t, err, fieldlist.ErrInvalidTarget)
		})
	}
}

func TestNewPattern(t *testing.T) {
	t.Parallel()

	_, err := fieldlist.NewPattern(`:param (`)
	require.ErrorIs(t, err, fieldlist.ErrInvalidTarget)

	p, err := fieldlist.NewPattern(`:arg\S* b:`)
	require.NoError(t, err)

	span, err := fieldlist.FindField(fieldFixture, p, false)
	require.NoError(t, err)
	assert.Equal(t, ":argument b:", span.Tag)
}

func TestFindFieldSpanInvariant(t *testing.T) {
	t.Parallel()

	inputs := [][]string{
		nil,
		{""},
		{"", ""},
		fieldFixture,
		{":param x: a", "  b", "", "  c"},
		{"text", ":param x:"},
	}

	targets := []fieldlist.Target{
		fieldlist.Tag(":param x:"),
		fieldlist.Tags{":rtype:", ":arg a:"},
		fieldlist.PatternOf(regexp.MustCompile(`:\w+`)),
		fieldlist.PatternOf(regexp.MustCompile(`nothing`)),
	}

	for _, lines := range inputs {
		for _, target := range targets {
			for _, includeBlank := range []bool{false, true} {
				span, err := fieldlist.FindField(lines, target, includeBlank)
				require.NoError(t, err)
				assert.Equal(t, span.Found, span.Start != span.End, "lines=%q target=%v", lines, target)
				assert.Len(t, span.Text, span.End-span.Start)
			}
		}
	}
}

func TestSpanColumn(t *testing.T) {
	t.Parallel()

	lines := []string{
		":param x: alpha",
		"          beta",
		"   gamma",
	}

	span, err := fieldlist.FindField(lines, fieldlist.Tag(":param x:"), false)
	require.NoError(t, err)

	assert.Equal(t, []string{"alpha", "beta", "gamma"}, span.Text)
	assert.Equal(t, []int{10, 10, 3}, span.Offsets)
	assert.Equal(t, 10, span.TagWidth())
	assert.Equal(t, 12, span.Column(0, 2))
	assert.Equal(t, 3, span.Column(2, 0))
}
