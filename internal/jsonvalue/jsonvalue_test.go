package jsonvalue

import (
	"encoding/json"
	"testing"
)

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	v := Object(map[string]Value{
		"name":    String("ok"),
		"enabled": Bool(true),
		"count":   Number(3),
		"tags":    Array(String("a"), String("b")),
		"empty":   Null,
	})

	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}

	var got Value
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}

	if name, ok := got.Get("name").AsString(); !ok || name != "ok" {
		t.Errorf("name = %q, %v, want \"ok\", true", name, ok)
	}
	if enabled, ok := got.Get("enabled").AsBool(); !ok || !enabled {
		t.Errorf("enabled = %v, %v, want true, true", enabled, ok)
	}
	if n, ok := got.Get("count").AsNumber(); !ok || n != 3 {
		t.Errorf("count = %v, %v, want 3, true", n, ok)
	}
	if !got.Get("empty").IsNull() {
		t.Error("empty should be null")
	}
}

func TestText(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{String("hello"), "hello"},
		{Number(42), "42"},
		{Bool(true), "true"},
		{Bool(false), "false"},
		{Null, ""},
	}
	for _, tt := range tests {
		if got := tt.v.Text(); got != tt.want {
			t.Errorf("Text() = %q, want %q", got, tt.want)
		}
	}
}

func TestDumpStableKeyOrder(t *testing.T) {
	v := Object(map[string]Value{"b": Number(2), "a": Number(1)})
	got := Dump(v)
	want := `{"a":1,"b":2}`
	if got != want {
		t.Errorf("Dump() = %q, want %q", got, want)
	}
}
