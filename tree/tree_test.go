package tree

import (
	"strings"
	"testing"

	"github.com/cwbudde/swinglibrary-go/element"
	"github.com/cwbudde/swinglibrary-go/match"
	"github.com/gkampitakis/go-snaps/snaps"
)

func sampleTree() *match.Node {
	ok := &match.Node{Handle: element.ComponentHandle(2), ClassName: "javax.swing.JButton", Name: "okButton", Text: "OK", Enabled: true, Visible: true, Showing: true}
	label := &match.Node{Handle: element.ComponentHandle(1), ClassName: "javax.swing.JLabel", Name: "statusLabel", Text: "Ready"}
	panel := &match.Node{Handle: element.ComponentHandle(0), ClassName: "javax.swing.JPanel", Children: []*match.Node{label, ok}}
	return panel
}

func TestRenderTextSnapshot(t *testing.T) {
	out, err := Render(sampleTree(), FormatText, -1)
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	snaps.MatchSnapshot(t, out)
}

func TestRenderJSONSnapshot(t *testing.T) {
	out, err := Render(sampleTree(), FormatJSON, -1)
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	snaps.MatchSnapshot(t, out)
}

func TestRenderDepthZeroIsRootOnly(t *testing.T) {
	out, err := Render(sampleTree(), FormatText, 0)
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if strings.Count(out, "\n") != 1 {
		t.Fatalf("Render(maxDepth=0) printed %d lines, want exactly the root", strings.Count(out, "\n"))
	}
	if strings.Contains(out, "statusLabel") || strings.Contains(out, "okButton") {
		t.Errorf("Render(maxDepth=0) = %q, should not descend past the root", out)
	}
}

func TestRenderMaxDepth(t *testing.T) {
	out, err := Render(sampleTree(), FormatText, 1)
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	snaps.MatchSnapshot(t, out)
}

func TestRenderUnsupportedFormat(t *testing.T) {
	_, err := Render(sampleTree(), FormatYAML, 0)
	if err == nil {
		t.Fatal("expected an UnsupportedFormat error for yaml")
	}
}
