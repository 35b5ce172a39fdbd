package plugin

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dshills/transmute/internal/transform"
	"github.com/dshills/transmute/internal/transform/catalog"
)

func writeScript(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

const shoutScript = `
return {
    name = "shout",
    category = "TextProcessing",
    transform = function(input, opts)
        return string.upper(input)
    end,
    validate = function(input)
        return #input > 0
    end,
}
`

func newHost(t *testing.T, scripts map[string]string) (*Host, *catalog.Catalog) {
	t.Helper()
	dir := t.TempDir()
	for name, body := range scripts {
		writeScript(t, dir, name, body)
	}

	c := catalog.New()
	h := NewHost(c)
	t.Cleanup(h.Close)
	if err := h.LoadDir(dir); err != nil {
		t.Fatalf("LoadDir() error = %v", err)
	}
	return h, c
}

func TestLoadAndTransform(t *testing.T) {
	h, c := newHost(t, map[string]string{"shout.lua": shoutScript})

	if len(h.Plugins()) != 1 {
		t.Fatalf("loaded %d plugins, want 1", len(h.Plugins()))
	}

	d, err := c.Lookup("shout")
	if err != nil {
		t.Fatalf("Lookup(shout) error = %v", err)
	}
	if d.Category != transform.TextProcessing {
		t.Errorf("Category = %v, want TextProcessing", d.Category)
	}

	got, err := d.Transform("hello", nil)
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	if got != "HELLO" {
		t.Errorf("Transform(hello) = %q, want HELLO", got)
	}

	if d.Accepts("") {
		t.Error("validate accepted empty input")
	}
	if !d.Accepts("x") {
		t.Error("validate rejected non-empty input")
	}
}

func TestTransformErrorReturn(t *testing.T) {
	script := `
return {
    name = "picky",
    category = "Special",
    transform = function(input, opts)
        return nil, "cannot handle " .. input
    end,
}
`
	_, c := newHost(t, map[string]string{"picky.lua": script})

	d, err := c.Lookup("picky")
	if err != nil {
		t.Fatal(err)
	}
	_, err = d.Transform("x", nil)
	if err == nil {
		t.Fatal("Transform() error = nil, want input error")
	}
}

func TestMultipleSpecsPerScript(t *testing.T) {
	script := `
return {
    {
        name = "first",
        category = "Special",
        transform = function(input) return input end,
    },
    {
        name = "second",
        category = "Special",
        transform = function(input) return input .. "!" end,
    },
}
`
	h, c := newHost(t, map[string]string{"pair.lua": script})

	if got := len(h.Plugins()[0].Transformers); got != 2 {
		t.Fatalf("plugin registered %d transformers, want 2", got)
	}
	d, err := c.Lookup("second")
	if err != nil {
		t.Fatal(err)
	}
	got, err := d.Transform("a", nil)
	if err != nil {
		t.Fatal(err)
	}
	if got != "a!" {
		t.Errorf("Transform(a) = %q, want a!", got)
	}
}

func TestBrokenScriptIsIsolated(t *testing.T) {
	h, c := newHost(t, map[string]string{
		"broken.lua": `this is not lua`,
		"good.lua":   shoutScript,
	})

	if len(h.Plugins()) != 1 {
		t.Errorf("loaded %d plugins, want 1", len(h.Plugins()))
	}
	if len(h.Failures()) != 1 {
		t.Fatalf("recorded %d failures, want 1", len(h.Failures()))
	}
	if h.Failures()[0].Path == "" {
		t.Error("failure has no path")
	}

	if _, err := c.Lookup("shout"); err != nil {
		t.Errorf("good plugin missing from catalog: %v", err)
	}
}

func TestUnknownCategoryFails(t *testing.T) {
	script := `
return {
    name = "odd",
    category = "NoSuchCategory",
    transform = function(input) return input end,
}
`
	h, _ := newHost(t, map[string]string{"odd.lua": script})
	if len(h.Failures()) != 1 {
		t.Fatalf("recorded %d failures, want 1", len(h.Failures()))
	}
}

func TestSandboxBlocksCodeLoading(t *testing.T) {
	script := `
return {
    name = "escape",
    category = "Special",
    transform = function(input)
        if dofile == nil and loadfile == nil and load == nil then
            return "sandboxed"
        end
        return "open"
    end,
}
`
	_, c := newHost(t, map[string]string{"escape.lua": script})

	d, err := c.Lookup("escape")
	if err != nil {
		t.Fatal(err)
	}
	got, err := d.Transform("", nil)
	if err != nil {
		t.Fatal(err)
	}
	if got != "sandboxed" {
		t.Errorf("Transform() = %q, want sandboxed", got)
	}
}

func TestMissingDirIsNoError(t *testing.T) {
	h := NewHost(catalog.New())
	if err := h.LoadDir(filepath.Join(t.TempDir(), "nope")); err != nil {
		t.Errorf("LoadDir(missing) error = %v, want nil", err)
	}
}
