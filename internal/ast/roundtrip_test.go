package ast_test

import (
	"testing"

	"github.com/cwbudde/swinglibrary-go/internal/parser"
)

// TestRoundTrip checks the round-trip property: printing a parsed
// Ast and re-parsing the result yields a structurally identical Ast (here
// checked via String() equality, since every node's String() is a pure
// function of its fields).
func TestRoundTrip(t *testing.T) {
	inputs := []string{
		"JButton",
		"javax.swing.JButton",
		"#okButton",
		"name:okButton",
		"JPanel > JButton:enabled",
		"JButton, JLabel",
		"JButton#ok.primary[enabled]",
		"[name*=ok]",
		"//JPanel/JButton[@name='ok']",
		"//JButton[@enabled and @visible]",
		"JPanel >> *JButton >> JLabel:contains('OK')",
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			first, err := parser.Parse(in)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", in, err)
			}
			printed := first.String()
			second, err := parser.Parse(printed)
			if err != nil {
				t.Fatalf("re-Parse(%q) error: %v", printed, err)
			}
			if second.String() != printed {
				t.Errorf("round-trip mismatch: %q -> %q -> %q", in, printed, second.String())
			}
		})
	}
}
