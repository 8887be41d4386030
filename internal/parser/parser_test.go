package parser

import (
	"testing"

	"github.com/cwbudde/swinglibrary-go/errs"
	"github.com/cwbudde/swinglibrary-go/internal/ast"
)

func TestParseCss(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bare type", "JButton", "JButton"},
		{"dotted type", "javax.swing.JButton", "javax.swing.JButton"},
		{"id selector", "JButton#okButton", "JButton#okButton"},
		{"universal", "*", "*"},
		{"class selector", ".primary", ".primary"},
		{"attribute exists", "[enabled]", "[enabled]"},
		{"attribute eq", "[name=ok]", "[name=ok]"},
		{"attribute quoted value", "[name='Ok Button']", "[name='Ok Button']"},
		{"attribute contains", "[text*=Save]", "[text*=Save]"},
		{"attribute prefix", "[name^=ok]", "[name^=ok]"},
		{"attribute suffix", "[name$=Button]", "[name$=Button]"},
		{"pseudo simple", "JButton:enabled", "JButton:enabled"},
		{"pseudo nth-child", "JPanel:nth-child(2)", "JPanel:nth-child(2)"},
		{"pseudo contains", "JLabel:contains('OK Button')", "JLabel:contains('OK Button')"},
		{"descendant combinator", "JPanel JButton", "JPanel JButton"},
		{"child combinator", "JPanel > JButton", "JPanel > JButton"},
		{"adjacent sibling", "JLabel + JTextField", "JLabel + JTextField"},
		{"general sibling", "JLabel ~ JTextField", "JLabel ~ JTextField"},
		{"selector list", "JButton, JLabel", "JButton, JLabel"},
		{"compound", "JButton#ok.primary[enabled]", "JButton#ok.primary[enabled]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.input, err)
			}
			if _, ok := got.(*ast.Css); !ok {
				t.Fatalf("Parse(%q) = %T, want *ast.Css", tt.input, got)
			}
			if s := got.String(); s != tt.want {
				t.Errorf("Parse(%q).String() = %q, want %q", tt.input, s, tt.want)
			}
		})
	}
}

func TestParseXPath(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"descendant step", "//JButton"},
		{"chained steps", "//JPanel/JButton"},
		{"attr eq predicate", "//JButton[@name='ok']"},
		{"attr exists predicate", "//JButton[@enabled]"},
		{"contains predicate", "//JLabel[contains(@text,'Save')]"},
		{"starts-with predicate", "//JLabel[starts-with(@text,'Sav')]"},
		{"text predicate", "//JButton[text()='OK']"},
		{"position shorthand", "//JButton[1]"},
		{"position function", "//JButton[position()=2]"},
		{"last predicate", "//JButton[last()]"},
		{"and predicate", "//JButton[@enabled and @visible]"},
		{"or predicate", "//JButton[@name='ok' or @name='cancel']"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.input, err)
			}
			if _, ok := got.(*ast.XPath); !ok {
				t.Fatalf("Parse(%q) = %T, want *ast.XPath", tt.input, got)
			}
		})
	}
}

func TestParseLegacy(t *testing.T) {
	tests := []struct {
		input    string
		wantKind ast.LegacyKind
		wantVal  string
	}{
		{"#okButton", ast.LegacyName, "okButton"},
		{"name:okButton", ast.LegacyName, "okButton"},
		{"text:Submit*", ast.LegacyText, "Submit*"},
		{"id:ok", ast.LegacyID, "ok"},
		{"index:2", ast.LegacyIndex, "2"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.input, err)
			}
			legacy, ok := got.(*ast.Legacy)
			if !ok {
				t.Fatalf("Parse(%q) = %T, want *ast.Legacy", tt.input, got)
			}
			if legacy.Kind != tt.wantKind || legacy.Value != tt.wantVal {
				t.Errorf("Parse(%q) = {%s %q}, want {%s %q}", tt.input, legacy.Kind, legacy.Value, tt.wantKind, tt.wantVal)
			}
		})
	}
}

func TestParseEnginePrefixed(t *testing.T) {
	got, err := Parse("xpath=//JButton[@name='ok']")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := got.(*ast.XPath); !ok {
		t.Fatalf("got %T, want *ast.XPath", got)
	}

	got, err = Parse("css=.primary")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := got.(*ast.Css); !ok {
		t.Fatalf("got %T, want *ast.Css", got)
	}
}

func TestParseCascade(t *testing.T) {
	got, err := Parse("JPanel >> *JButton >> text:OK")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cascade, ok := got.(*ast.Cascade)
	if !ok {
		t.Fatalf("got %T, want *ast.Cascade", got)
	}
	if len(cascade.Segments) != 3 {
		t.Fatalf("got %d segments, want 3", len(cascade.Segments))
	}
	if !cascade.Segments[1].Capture {
		t.Errorf("segment 1 should be marked as captured")
	}
	if cascade.CaptureIndex() != 1 {
		t.Errorf("CaptureIndex() = %d, want 1", cascade.CaptureIndex())
	}
}

func TestParseCascadeNoCaptureUsesLast(t *testing.T) {
	got, err := Parse("JPanel >> JButton")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cascade := got.(*ast.Cascade)
	if cascade.CaptureIndex() != 1 {
		t.Errorf("CaptureIndex() = %d, want 1 (last segment)", cascade.CaptureIndex())
	}
}

func TestParseSingleSegmentCascadeCollapses(t *testing.T) {
	got, err := Parse("*JButton")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := got.(*ast.Css); !ok {
		t.Fatalf("single-segment cascade should collapse to its inner Ast, got %T", got)
	}
}

func TestParseEmptyLocator(t *testing.T) {
	_, err := Parse("")
	if _, ok := err.(*errs.EmptyLocator); !ok {
		t.Fatalf("Parse(\"\") error = %v, want *errs.EmptyLocator", err)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []string{
		"[enabled",
		"JButton:unknown-pseudo",
		"nth-child-bad:nth-child(0)",
		"//",
		"//JButton[@name=]",
	}
	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			if err == nil {
				t.Fatalf("Parse(%q) expected error, got nil", input)
			}
			if _, ok := err.(*errs.LocatorParseError); !ok {
				t.Errorf("Parse(%q) error type = %T, want *errs.LocatorParseError", input, err)
			}
		})
	}
}

func TestParseUnterminatedQuoteIsDistinctFromGenericExpectation(t *testing.T) {
	tests := []string{
		"[name='ok",
		"JButton:contains('ok",
	}
	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			pe, ok := err.(*errs.LocatorParseError)
			if !ok {
				t.Fatalf("Parse(%q) error type = %T, want *errs.LocatorParseError", input, err)
			}
			if pe.Expected != "a closing quote" {
				t.Errorf("Expected = %q, want %q", pe.Expected, "a closing quote")
			}
		})
	}
}

func TestCascadeQuotedSeparatorNotSplit(t *testing.T) {
	got, err := Parse("[text='a>>b']")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := got.(*ast.Css); !ok {
		t.Fatalf("got %T, want *ast.Css (quoted '>>' must not split the cascade)", got)
	}
}
