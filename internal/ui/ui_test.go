package ui

import (
	"bytes"
	"regexp"
	"strings"
	"testing"
)

var ansi = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func capture(t *testing.T, fn func()) string {
	t.Helper()
	var buf bytes.Buffer
	prev := Out
	Out = &buf
	t.Cleanup(func() { Out = prev })
	fn()
	return buf.String()
}

func TestPrintTableRow_TruncatesLongColumns(t *testing.T) {
	got := capture(t, func() {
		PrintTableRow(strings.Repeat("x", 50), "Brick", "12", "4")
	})
	if !strings.Contains(got, strings.Repeat("x", 33)+"...") {
		t.Errorf("long column not truncated: %q", got)
	}
	if !strings.Contains(got, "Brick") {
		t.Errorf("material column missing: %q", got)
	}
}

func TestPrintYAML(t *testing.T) {
	got := capture(t, func() {
		PrintYAML([]byte("scene: street.glb\n"))
	})
	if !strings.Contains(ansi.ReplaceAllString(got, ""), "scene: street.glb") {
		t.Errorf("output = %q", got)
	}
}

func TestPrintTree_Indents(t *testing.T) {
	got := capture(t, func() {
		PrintTree(2, "Window", "")
	})
	if !strings.Contains(got, "    Window") {
		t.Errorf("output = %q", got)
	}
}
