package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/pmezard/go-difflib/difflib"
)

// diffContext is the number of unchanged lines shown around each change.
const diffContext = 3

// writeDiff writes a unified diff between before and after. Changed lines
// are colorized when useColor is set.
func writeDiff(w io.Writer, path string, before, after []byte, useColor bool) error {
	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(before)),
		B:        difflib.SplitLines(string(after)),
		FromFile: path,
		ToFile:   path + " (annotated)",
		Context:  diffContext,
		Eol:      "\n",
	})
	if err != nil {
		return fmt.Errorf("diff: %w", err)
	}

	if !useColor {
		_, err = io.WriteString(w, text)

		return err
	}

	var (
		header  = color.New(color.Bold)
		hunk    = color.New(color.FgCyan)
		removed = color.New(color.FgRed)
		added   = color.New(color.FgGreen)
	)

	for _, c := range []*color.Color{header, hunk, removed, added} {
		c.EnableColor()
	}

	var sb strings.Builder

	for line := range strings.Lines(text) {
		body := strings.TrimSuffix(line, "\n")

		switch {
		case strings.HasPrefix(line, "---"), strings.HasPrefix(line, "+++"):
			header.Fprint(&sb, body)
		case strings.HasPrefix(line, "@@"):
			hunk.Fprint(&sb, body)
		case strings.HasPrefix(line, "-"):
			removed.Fprint(&sb, body)
		case strings.HasPrefix(line, "+"):
			added.Fprint(&sb, body)
		default:
			sb.WriteString(body)
		}

		if len(body) < len(line) {
			sb.WriteByte('\n')
		}
	}

	_, err = io.WriteString(w, sb.String())

	return err
}
