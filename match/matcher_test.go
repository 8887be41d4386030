package match

import (
	"testing"

	"github.com/cwbudde/swinglibrary-go/internal/parser"
)

func buildTestTree() *Node {
	ok := &Node{Handle: 2, ClassName: "javax.swing.JButton", Name: "okButton", Text: "OK", Enabled: true, Visible: true, Showing: true}
	cancel := &Node{Handle: 3, ClassName: "javax.swing.JButton", Name: "cancelButton", Text: "Cancel", Enabled: false, Visible: true, Showing: true}
	label := &Node{Handle: 4, ClassName: "javax.swing.JLabel", Name: "statusLabel", Text: "Ready"}
	panel := &Node{Handle: 1, ClassName: "javax.swing.JPanel", Name: "buttonPanel", Children: []*Node{label, ok, cancel}}
	root := &Node{Handle: 10, ClassName: "javax.swing.JFrame", Name: "main", Children: []*Node{panel}}
	return root
}

func TestFindAllCss(t *testing.T) {
	root := buildTestTree()

	tests := []struct {
		name    string
		locator string
		want    []string // expected Name fields, in order
	}{
		{"type selector", "JButton", []string{"okButton", "cancelButton"}},
		{"fully-qualified type", "javax.swing.JButton", []string{"okButton", "cancelButton"}},
		{"normalised element type", "Button", []string{"okButton", "cancelButton"}},
		{"normalised element type label", "Label", []string{"statusLabel"}},
		{"name attribute", "[name=okButton]", []string{"okButton"}},
		{"enabled pseudo", "JButton:enabled", []string{"okButton"}},
		{"disabled pseudo", "JButton:disabled", []string{"cancelButton"}},
		{"descendant", "JPanel JButton", []string{"okButton", "cancelButton"}},
		{"child combinator", "JFrame > JButton", nil},
		{"child combinator via panel", "JPanel > JButton", []string{"okButton", "cancelButton"}},
		{"first-child", "JPanel *:first-child", []string{"statusLabel"}},
		{"adjacent sibling", "JLabel + JButton", []string{"okButton"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := parser.Parse(tt.locator)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.locator, err)
			}
			got := FindAll(root, parsed)
			names := make([]string, len(got))
			for i, n := range got {
				names[i] = n.Name
			}
			if !equalStrings(names, tt.want) {
				t.Errorf("FindAll(%q) = %v, want %v", tt.locator, names, tt.want)
			}
		})
	}
}

func TestFindAllLegacy(t *testing.T) {
	root := buildTestTree()

	parsed, err := parser.Parse("#okButton")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	got := FindAll(root, parsed)
	if len(got) != 1 || got[0].Name != "okButton" {
		t.Fatalf("FindAll(#okButton) = %v, want [okButton]", got)
	}
}

func TestFindAllXPath(t *testing.T) {
	root := buildTestTree()

	parsed, err := parser.Parse("//JButton[@name='okButton']")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	got := FindAll(root, parsed)
	if len(got) != 1 || got[0].Name != "okButton" {
		t.Fatalf("FindAll xpath = %v, want [okButton]", got)
	}
}

func TestEvaluateCascadeCapture(t *testing.T) {
	root := buildTestTree()

	parsed, err := parser.Parse("JPanel >> *JButton >> JLabel")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	// No JLabel exists under the first JButton, so validating the chain
	// past the capture fails the whole cascade.
	got := FindAll(root, parsed)
	if len(got) != 0 {
		t.Fatalf("FindAll = %v, want empty (chain validation past the capture fails)", got)
	}

	parsed2, err := parser.Parse("JPanel >> *JButton")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	got2 := FindAll(root, parsed2)
	if len(got2) != 1 || got2[0].Name != "okButton" {
		t.Fatalf("FindAll = %v, want the first button only (single-handle threading)", got2)
	}
}

func TestVisiblePseudoRequiresShowing(t *testing.T) {
	root := buildTestTree()
	// Visible but not showing: an ancestor is hidden, so the widget is not
	// actually on screen.
	offscreen := &Node{Handle: 6, ClassName: "javax.swing.JButton", Name: "hiddenButton", Enabled: true, Visible: true, Showing: false}
	root.Children[0].Children = append(root.Children[0].Children, offscreen)

	parsed, err := parser.Parse("JButton:visible")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	for _, n := range FindAll(root, parsed) {
		if n.Name == "hiddenButton" {
			t.Fatalf(":visible matched a widget that is not showing")
		}
	}

	parsed, err = parser.Parse("JButton:hidden")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	got := FindAll(root, parsed)
	if len(got) != 1 || got[0].Name != "hiddenButton" {
		t.Fatalf("FindAll(:hidden) = %v, want just the non-showing button", got)
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
