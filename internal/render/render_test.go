package render

import (
	"strings"
	"testing"
)

func TestMarkdown(t *testing.T) {
	out, err := Markdown("# Title\n\nSome **bold** text.", DefaultOptions())
	if err != nil {
		t.Fatalf("Markdown failed: %v", err)
	}
	if !strings.Contains(out, "Title") {
		t.Errorf("rendered output missing heading: %q", out)
	}
}

func TestMarkdownWithWidth(t *testing.T) {
	out, err := MarkdownWithWidth("plain text", 40)
	if err != nil {
		t.Fatalf("MarkdownWithWidth failed: %v", err)
	}
	if out == "" {
		t.Error("expected non-empty output")
	}
}

func TestRendererPoolReuse(t *testing.T) {
	ClearCache()

	opts := DefaultOptions().WithWidth(60)
	if _, err := Markdown("one", opts); err != nil {
		t.Fatal(err)
	}
	if _, err := Markdown("two", opts); err != nil {
		t.Fatal(err)
	}

	if got := CacheSize(); got != 1 {
		t.Errorf("CacheSize = %d, want 1 (same options share a pool)", got)
	}

	if _, err := Markdown("three", opts.WithWidth(100)); err != nil {
		t.Fatal(err)
	}
	if got := CacheSize(); got != 2 {
		t.Errorf("CacheSize = %d, want 2 after a second option set", got)
	}
}

func TestOptionsBuilders(t *testing.T) {
	opts := DefaultOptions().WithWidth(50).WithStyle("light")
	if opts.Width != 50 || opts.Style != "light" {
		t.Errorf("unexpected options: %+v", opts)
	}

	// Builders return copies
	base := DefaultOptions()
	_ = base.WithWidth(10)
	if base.Width != 80 {
		t.Error("WithWidth must not mutate the receiver")
	}
}
