// Package plugin loads Lua transformer scripts and registers them in the
// catalog alongside the builtins.
//
// A script returns a table describing one transformer:
//
//	return {
//	    name = "shout",
//	    category = "TextProcessing",
//	    transform = function(input, opts)
//	        return string.upper(input)
//	    end,
//	    validate = function(input)       -- optional
//	        return #input > 0
//	    end,
//	}
//
// or an array of such tables to contribute several transformers from one
// file. The transform function returns the output string, or nil and an
// error message to reject the input.
package plugin

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/transmute/internal/transform"
	"github.com/dshills/transmute/internal/transform/catalog"
)

// Plugin is one loaded script. Each plugin owns an isolated sandboxed LState
// so a broken script cannot corrupt its neighbors.
type Plugin struct {
	ID   uuid.UUID
	Name string
	Path string

	// Transformers registered by this plugin.
	Transformers []string

	exec *executor
}

// LoadError records a script that failed to load. One bad script never
// aborts the rest of the directory.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading plugin %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Host owns every loaded plugin and their executors.
type Host struct {
	catalog *catalog.Catalog
	plugins []*Plugin
	failed  []*LoadError
}

// NewHost creates a plugin host that registers transformers into c.
func NewHost(c *catalog.Catalog) *Host {
	return &Host{catalog: c}
}

// Plugins returns the successfully loaded plugins.
func (h *Host) Plugins() []*Plugin {
	return h.plugins
}

// Failures returns the scripts that could not be loaded.
func (h *Host) Failures() []*LoadError {
	return h.failed
}

// LoadDir loads every *.lua file in dir, isolating per-script failures. A
// missing directory is not an error: having no plugins is the common case.
func (h *Host) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading plugin dir %s: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".lua") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := h.loadFile(path); err != nil {
			h.failed = append(h.failed, &LoadError{Path: path, Err: err})
		}
	}
	return nil
}

// loadFile runs one script in a fresh sandboxed state and registers its
// transformers.
func (h *Host) loadFile(path string) error {
	state := newSandboxedState()

	if err := state.DoFile(path); err != nil {
		state.Close()
		return err
	}

	ret := state.Get(-1)
	state.Pop(1)

	specs, err := transformerSpecs(ret)
	if err != nil {
		state.Close()
		return err
	}

	p := &Plugin{
		ID:   uuid.New(),
		Name: strings.TrimSuffix(filepath.Base(path), ".lua"),
		Path: path,
		exec: newExecutor(state),
	}

	for _, spec := range specs {
		d := &transform.Descriptor{
			Name:      spec.name,
			Category:  spec.category,
			Transform: p.bindTransform(spec.transform),
		}
		if spec.validate != nil {
			d.Validate = p.bindValidate(spec.validate)
		}
		if err := h.catalog.Register(d); err != nil {
			p.exec.close()
			return err
		}
		p.Transformers = append(p.Transformers, spec.name)
	}

	h.plugins = append(h.plugins, p)
	return nil
}

// Close shuts down every plugin executor and state.
func (h *Host) Close() {
	for _, p := range h.plugins {
		p.exec.close()
	}
}

type transformerSpec struct {
	name      string
	category  transform.Category
	transform *lua.LFunction
	validate  *lua.LFunction
}

// transformerSpecs interprets a script's return value: one spec table, or
// an array of them.
func transformerSpecs(ret lua.LValue) ([]transformerSpec, error) {
	tbl, ok := ret.(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("script must return a table, got %s", ret.Type())
	}

	// A spec table has a "name" field; an array of specs does not.
	if tbl.RawGetString("name") != lua.LNil {
		spec, err := parseSpec(tbl)
		if err != nil {
			return nil, err
		}
		return []transformerSpec{spec}, nil
	}

	var specs []transformerSpec
	var parseErr error
	tbl.ForEach(func(_, v lua.LValue) {
		if parseErr != nil {
			return
		}
		entry, ok := v.(*lua.LTable)
		if !ok {
			parseErr = fmt.Errorf("spec array entry must be a table, got %s", v.Type())
			return
		}
		spec, err := parseSpec(entry)
		if err != nil {
			parseErr = err
			return
		}
		specs = append(specs, spec)
	})
	if parseErr != nil {
		return nil, parseErr
	}
	if len(specs) == 0 {
		return nil, fmt.Errorf("script returned no transformer specs")
	}
	return specs, nil
}

func parseSpec(tbl *lua.LTable) (transformerSpec, error) {
	var spec transformerSpec

	name, ok := tbl.RawGetString("name").(lua.LString)
	if !ok || name == "" {
		return spec, fmt.Errorf("spec is missing a name")
	}
	spec.name = string(name)

	catName, ok := tbl.RawGetString("category").(lua.LString)
	if !ok {
		return spec, fmt.Errorf("spec %s is missing a category", spec.name)
	}
	cat, ok := transform.CategoryFromName(string(catName))
	if !ok {
		return spec, fmt.Errorf("spec %s has unknown category %q", spec.name, catName)
	}
	spec.category = cat

	fn, ok := tbl.RawGetString("transform").(*lua.LFunction)
	if !ok {
		return spec, fmt.Errorf("spec %s is missing a transform function", spec.name)
	}
	spec.transform = fn

	if v := tbl.RawGetString("validate"); v != lua.LNil {
		vfn, ok := v.(*lua.LFunction)
		if !ok {
			return spec, fmt.Errorf("spec %s validate must be a function", spec.name)
		}
		spec.validate = vfn
	}

	return spec, nil
}

// bindTransform wraps a Lua function as a TransformFunc. The call crosses
// into the plugin's executor goroutine and back.
func (p *Plugin) bindTransform(fn *lua.LFunction) transform.TransformFunc {
	return func(input string, opts transform.Options) (string, error) {
		var out string
		err := p.exec.execute(func(L *lua.LState) error {
			optsTbl := L.NewTable()
			for k, v := range opts {
				optsTbl.RawSetString(k, lua.LString(v))
			}
			if err := L.CallByParam(lua.P{Fn: fn, NRet: 2, Protect: true},
				lua.LString(input), optsTbl); err != nil {
				return fmt.Errorf("plugin %s: %w", p.Name, err)
			}
			result := L.Get(-2)
			errVal := L.Get(-1)
			L.Pop(2)

			if s, ok := result.(lua.LString); ok {
				out = string(s)
				return nil
			}
			if msg, ok := errVal.(lua.LString); ok {
				return transform.InputError("%s", string(msg))
			}
			return fmt.Errorf("plugin %s returned %s, want string", p.Name, result.Type())
		})
		return out, err
	}
}

// bindValidate wraps a Lua predicate as a ValidateFunc. Any execution error
// counts as a rejection.
func (p *Plugin) bindValidate(fn *lua.LFunction) transform.ValidateFunc {
	return func(input string) bool {
		accepted := false
		err := p.exec.execute(func(L *lua.LState) error {
			if err := L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true},
				lua.LString(input)); err != nil {
				return err
			}
			accepted = lua.LVAsBool(L.Get(-1))
			L.Pop(1)
			return nil
		})
		return err == nil && accepted
	}
}
