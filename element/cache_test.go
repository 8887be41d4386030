package element

import (
	"testing"

	"github.com/cwbudde/swinglibrary-go/internal/jsonvalue"
)

func TestElementCacheInsertAndGet(t *testing.T) {
	c := NewElementCache()
	rec := ElementRecord{Handle: 1, Locator: "#ok", ClassName: "JButton"}
	c.InsertOrRefresh(rec)

	got, ok := c.Get(1)
	if !ok {
		t.Fatal("expected handle 1 to be cached")
	}
	if got.Locator != "#ok" {
		t.Errorf("got locator %q, want %q", got.Locator, "#ok")
	}
}

func TestElementCacheRefresh(t *testing.T) {
	c := NewElementCache()
	c.InsertOrRefresh(ElementRecord{Handle: 1, ClassName: "JButton"})

	ok := c.Refresh(1, jsonvalue.String("updated"))
	if !ok {
		t.Fatal("Refresh should report true for a known handle")
	}
	rec, _ := c.Get(1)
	if text, _ := rec.Extra.AsString(); text != "updated" {
		t.Errorf("got extra %q, want %q", text, "updated")
	}

	if c.Refresh(99, jsonvalue.Null) {
		t.Error("Refresh should report false for an unknown handle")
	}
}

func TestElementCacheInvalidate(t *testing.T) {
	c := NewElementCache()
	c.InsertOrRefresh(ElementRecord{Handle: 1})
	c.InsertOrRefresh(ElementRecord{Handle: 2})

	c.Invalidate(1)
	if _, ok := c.Get(1); ok {
		t.Error("handle 1 should have been invalidated")
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}

	c.InvalidateAll()
	if c.Len() != 0 {
		t.Errorf("Len() after InvalidateAll = %d, want 0", c.Len())
	}
}

func TestElementCacheLookupByLocator(t *testing.T) {
	c := NewElementCache()
	c.InsertOrRefresh(ElementRecord{Handle: 5, Locator: "#ok", ClassName: "JButton"})

	rec, ok := c.Lookup("#ok")
	if !ok {
		t.Fatal("expected #ok to resolve from the cache")
	}
	if rec.Handle != 5 {
		t.Errorf("Handle = %d, want 5", rec.Handle)
	}

	if _, ok := c.Lookup("#missing"); ok {
		t.Error("Lookup should report false for a locator never cached")
	}

	c.Invalidate(5)
	if _, ok := c.Lookup("#ok"); ok {
		t.Error("Lookup should report false once the handle behind it is invalidated")
	}
}
