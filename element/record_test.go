package element

import (
	"encoding/json"
	"testing"

	"github.com/cwbudde/swinglibrary-go/internal/jsonvalue"
)

func TestNewRecordDecodesProperties(t *testing.T) {
	var props jsonvalue.Value
	payload := `{
		"class": "javax.swing.JButton", "toolkit": "swing",
		"name": "ok", "text": "OK", "tooltip": "Press me",
		"bounds": {"x": 10, "y": 20, "width": 80, "height": 25},
		"visible": true, "showing": true, "enabled": true,
		"focused": false, "selected": false
	}`
	if err := json.Unmarshal([]byte(payload), &props); err != nil {
		t.Fatalf("bad fixture: %v", err)
	}

	rec := NewRecord(7, "#ok", props)
	if rec.Handle != 7 || rec.Locator != "#ok" {
		t.Errorf("identity = %d/%q, want 7/#ok", rec.Handle, rec.Locator)
	}
	if rec.ClassName != "javax.swing.JButton" || rec.SimpleName != "JButton" {
		t.Errorf("class = %q/%q, want javax.swing.JButton/JButton", rec.ClassName, rec.SimpleName)
	}
	if rec.ElementType != "Button" {
		t.Errorf("ElementType = %q, want Button (derived from the simple name)", rec.ElementType)
	}
	if rec.Toolkit != "swing" || rec.Name != "ok" || rec.Text != "OK" || rec.Tooltip != "Press me" {
		t.Errorf("attributes = %q/%q/%q/%q", rec.Toolkit, rec.Name, rec.Text, rec.Tooltip)
	}
	if rec.Bounds != (Bounds{X: 10, Y: 20, Width: 80, Height: 25}) {
		t.Errorf("Bounds = %+v, want {10 20 80 25}", rec.Bounds)
	}
	want := State{Visible: true, Showing: true, Enabled: true}
	if rec.State != want {
		t.Errorf("State = %+v, want %+v", rec.State, want)
	}
	if rec.Extra.IsNull() {
		t.Error("Extra should carry the full property object")
	}
}

func TestSimpleName(t *testing.T) {
	if got := SimpleName("javax.swing.JButton"); got != "JButton" {
		t.Errorf("SimpleName = %q, want JButton", got)
	}
	if got := SimpleName("Button"); got != "Button" {
		t.Errorf("SimpleName = %q, want Button", got)
	}
}
