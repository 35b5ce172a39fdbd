// Package app wires the catalog, dispatcher, state machine, hotkey manager,
// and plugin host into one running application and drives the interaction
// loop between them.
package app

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/dshills/transmute/internal/config"
	"github.com/dshills/transmute/internal/debounce"
	"github.com/dshills/transmute/internal/dispatch"
	"github.com/dshills/transmute/internal/hotkey"
	"github.com/dshills/transmute/internal/plugin"
	"github.com/dshills/transmute/internal/state"
	"github.com/dshills/transmute/internal/transform"
	"github.com/dshills/transmute/internal/transform/catalog"
	"github.com/dshills/transmute/internal/transform/cipher"
	"github.com/dshills/transmute/internal/transform/encoding"
	"github.com/dshills/transmute/internal/transform/hashing"
	"github.com/dshills/transmute/internal/transform/special"
	"github.com/dshills/transmute/internal/transform/textproc"
)

// searchQuiet is the idle period after the last keystroke before a catalog
// search runs.
const searchQuiet = 150 * time.Millisecond

// Surface is the window the application drives. Snapshot, Restore, and
// Focus are invoked from the interaction loop during visibility
// transitions; Present delivers transformation outcomes.
type Surface interface {
	// Snapshot returns the current input and output pane contents.
	Snapshot() (input, output string)

	// Restore applies preserved pane contents after a show transition.
	Restore(input, output string)

	// Focus moves keyboard focus to the input pane.
	Focus()

	// Present displays a terminal outcome for a submission.
	Present(d dispatch.Delivery)
}

// Options configure a new Application.
type Options struct {
	// ConfigPath overrides the default config file location. Empty uses
	// config.DefaultPath.
	ConfigPath string

	// Listener installs the global activation hotkey. Required.
	Listener hotkey.Listener

	// Surface is the window the application drives. Required.
	Surface Surface

	// PluginDir overrides the plugin script directory. Empty falls back to
	// the configured dir, then config.DefaultPluginDir.
	PluginDir string

	// LogOutput receives log lines. Nil means os.Stderr.
	LogOutput io.Writer

	// WatchConfig enables live reload of the config file.
	WatchConfig bool
}

// Application owns every subsystem and runs the interaction loop.
type Application struct {
	cfgPath string
	surface Surface
	log     *Logger

	catalog    *catalog.Catalog
	dispatcher *dispatch.Dispatcher
	machine    *state.Machine
	hotkeys    *hotkey.Manager
	plugins    *plugin.Host
	watcher    *config.Watcher

	cfgMu    sync.Mutex
	cfg      *config.Config
	cfgDirty bool

	searchMu      sync.Mutex
	searchQuery   string
	searchDeliver func([]*transform.Descriptor)
	searchDeb     *debounce.Debouncer

	mu       sync.Mutex
	running  bool
	quitting bool
	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// New builds an application from the config at opts.ConfigPath. Builtin
// transformer modules that fail to register are logged and skipped; the
// application starts with whatever modules loaded.
func New(opts Options) (*Application, error) {
	if opts.Surface == nil {
		return nil, NewOperationError("init", "surface", ErrInitialization).WithContext("no surface provided")
	}
	if opts.Listener == nil {
		return nil, NewOperationError("init", "hotkey listener", ErrInitialization).WithContext("no listener provided")
	}

	cfgPath := opts.ConfigPath
	if cfgPath == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return nil, NewOperationError("init", "config path", err)
		}
		cfgPath = p
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, NewOperationError("init", "config", err)
	}

	log := NewLogger(ParseLogLevel(cfg.LogLevel), opts.LogOutput)

	a := &Application{
		cfgPath: cfgPath,
		cfg:     cfg,
		surface: opts.Surface,
		log:     log,
		catalog: catalog.New(),
		done:    make(chan struct{}),
	}

	a.registerBuiltins()

	a.plugins = plugin.NewHost(a.catalog)
	pluginDir := opts.PluginDir
	if pluginDir == "" {
		pluginDir = cfg.PluginDir
	}
	if pluginDir == "" {
		if d, derr := config.DefaultPluginDir(); derr == nil {
			pluginDir = d
		}
	}
	if pluginDir != "" {
		if err := a.plugins.LoadDir(pluginDir); err != nil {
			log.WithComponent("plugin").Warn("plugin directory scan failed: %v", err)
		}
		for _, fail := range a.plugins.Failures() {
			log.WithComponent("plugin").Warn("skipped plugin %s: %v", fail.Path, fail.Err)
		}
		for _, p := range a.plugins.Plugins() {
			log.WithComponent("plugin").Info("loaded %s (%d transformers)", p.Name, len(p.Transformers))
		}
	}

	a.dispatcher = dispatch.New()

	a.machine = state.New(state.Hooks{
		Capture: a.surface.Snapshot,
		Restore: a.surface.Restore,
		Focus:   a.surface.Focus,
	})

	a.hotkeys = hotkey.NewManager(opts.Listener)
	if err := a.hotkeys.SetBinding(cfg.Hotkey); err != nil {
		a.dispatcher.Stop()
		a.plugins.Close()
		return nil, NewOperationError("init", "hotkey", err).WithContext(cfg.Hotkey)
	}

	a.searchDeb = debounce.New(searchQuiet, a.runSearch)

	if opts.WatchConfig {
		w, err := config.Watch(cfgPath, a.applyConfig, func(err error) {
			log.WithComponent("config").Warn("reload failed, keeping previous config: %v", err)
		})
		if err != nil {
			log.WithComponent("config").Warn("config watch unavailable: %v", err)
		} else {
			a.watcher = w
		}
	}

	log.Info("started with %d transformers, hotkey %s", a.catalog.Count(), a.hotkeys.Binding())
	return a, nil
}

// registerBuiltins loads every builtin transformer module. A module that
// fails leaves the others intact.
func (a *Application) registerBuiltins() {
	modules := []struct {
		name     string
		register func(*catalog.Catalog) error
	}{
		{"encoding", encoding.Register},
		{"hashing", hashing.Register},
		{"textproc", textproc.Register},
		{"cipher", cipher.Register},
		{"special", special.Register},
	}
	for _, m := range modules {
		if err := m.register(a.catalog); err != nil {
			a.log.WithComponent("catalog").Error("module %s failed to register: %v", m.name, err)
		}
	}
}

// Catalog exposes the transformer registry.
func (a *Application) Catalog() *catalog.Catalog {
	return a.catalog
}

// Config returns a copy of the active configuration.
func (a *Application) Config() config.Config {
	a.cfgMu.Lock()
	defer a.cfgMu.Unlock()
	return *a.cfg
}

// Hotkey returns the active binding.
func (a *Application) Hotkey() hotkey.Binding {
	return a.hotkeys.Binding()
}

// Visibility reports the current window visibility.
func (a *Application) Visibility() state.Visibility {
	return a.machine.Visibility()
}

// Run drives the interaction loop until Shutdown or Exit. It blocks the
// calling goroutine.
func (a *Application) Run() error {
	a.mu.Lock()
	if a.running {
		a.mu.Unlock()
		return ErrAlreadyRunning
	}
	a.running = true
	a.mu.Unlock()

	activations := a.hotkeys.Activations()
	outcomes := a.dispatcher.Outcomes()

	for {
		select {
		case <-a.done:
			a.mu.Lock()
			quit := a.quitting
			a.mu.Unlock()
			if quit {
				return ErrQuit
			}
			return nil
		case <-activations:
			if err := a.machine.Toggle(); err != nil {
				a.log.WithComponent("state").Debug("toggle ignored: %v", err)
				continue
			}
			// Surface hooks run synchronously inside Toggle; the visible
			// effect is complete when it returns.
			a.machine.TransitionDone()
		case d, ok := <-outcomes:
			if !ok {
				outcomes = nil
				continue
			}
			a.present(d)
		}
	}
}

func (a *Application) present(d dispatch.Delivery) {
	switch d.Outcome.Status {
	case dispatch.StatusFailed:
		a.log.WithComponent("dispatch").Warn("transform %s failed: %s", d.Request.Descriptor.Name, d.Outcome.Reason)
	case dispatch.StatusValidationFailed:
		a.log.WithComponent("dispatch").Debug("transform %s rejected input: %s", d.Request.Descriptor.Name, d.Outcome.Reason)
	}
	a.surface.Present(d)
}

// Submit runs the named transformer against input. The outcome arrives at
// the surface; the returned handle resolves even if a newer submission
// supersedes this one.
func (a *Application) Submit(name, input string, opts transform.Options) (*dispatch.Handle, error) {
	desc, err := a.catalog.Lookup(name)
	if err != nil {
		return nil, NewOperationError("submit", name, err)
	}

	a.cfgMu.Lock()
	if a.cfg.LastCategory != string(desc.Category) {
		a.cfg.LastCategory = string(desc.Category)
		a.cfgDirty = true
	}
	a.cfgMu.Unlock()

	return a.dispatcher.Submit(desc, input, opts), nil
}

// Search schedules a debounced catalog search. Rapid successive calls
// collapse; only the final query runs, delivering to the final callback.
func (a *Application) Search(query string, deliver func([]*transform.Descriptor)) {
	a.searchMu.Lock()
	a.searchQuery = query
	a.searchDeliver = deliver
	a.searchMu.Unlock()
	a.searchDeb.Trigger()
}

func (a *Application) runSearch() {
	a.searchMu.Lock()
	query := a.searchQuery
	deliver := a.searchDeliver
	a.searchMu.Unlock()
	if deliver == nil {
		return
	}
	deliver(a.catalog.Search(query))
}

// ToggleVisibility requests a visibility transition, as if the hotkey had
// fired.
func (a *Application) ToggleVisibility() error {
	return a.machine.Toggle()
}

// TransitionDone acknowledges that the surface finished animating the
// current transition.
func (a *Application) TransitionDone() {
	a.machine.TransitionDone()
}

// SetHotkey validates and installs a new activation binding, then persists
// it. The previous binding stays active if the new one is rejected.
func (a *Application) SetHotkey(spec string) error {
	if err := a.hotkeys.SetBinding(spec); err != nil {
		return NewOperationError("rebind", spec, err)
	}

	a.cfgMu.Lock()
	a.cfg.Hotkey = spec
	cfg := *a.cfg
	a.cfgMu.Unlock()

	if err := cfg.Save(a.cfgPath); err != nil {
		a.log.WithComponent("config").Warn("hotkey active but not persisted: %v", err)
	}
	return nil
}

// applyConfig folds a reloaded configuration into the running application.
func (a *Application) applyConfig(cfg *config.Config) {
	a.cfgMu.Lock()
	prev := a.cfg
	a.cfg = cfg
	a.cfgMu.Unlock()

	if cfg.LogLevel != prev.LogLevel {
		a.log.SetLevel(ParseLogLevel(cfg.LogLevel))
		a.log.WithComponent("config").Info("log level now %s", cfg.LogLevel)
	}
	if cfg.Hotkey != prev.Hotkey {
		if err := a.hotkeys.SetBinding(cfg.Hotkey); err != nil {
			a.log.WithComponent("config").Warn("reloaded hotkey %q rejected, keeping %s: %v", cfg.Hotkey, a.hotkeys.Binding(), err)
		} else {
			a.log.WithComponent("config").Info("hotkey now %s", a.hotkeys.Binding())
		}
	}
}

// Exit terminates the application; Run then returns ErrQuit. Exit is only
// valid while hidden; the window must be dismissed first.
func (a *Application) Exit() error {
	if err := a.machine.Exit(); err != nil {
		return fmt.Errorf("exit: %w", err)
	}

	a.mu.Lock()
	a.quitting = true
	a.mu.Unlock()

	a.Shutdown()
	return nil
}

// Shutdown stops every subsystem and unblocks Run. Safe to call more than
// once and from any goroutine.
func (a *Application) Shutdown() {
	a.stopOnce.Do(func() {
		close(a.done)
		if a.watcher != nil {
			a.watcher.Close()
		}

		a.cfgMu.Lock()
		dirty := a.cfgDirty
		cfg := *a.cfg
		a.cfgMu.Unlock()
		if dirty {
			if err := cfg.Save(a.cfgPath); err != nil {
				a.log.WithComponent("config").Warn("session state not persisted: %v", err)
			}
		}

		a.searchDeb.Cancel()
		a.hotkeys.Stop()
		a.dispatcher.Stop()
		a.plugins.Close()
		a.log.Info("shut down")
	})
}
