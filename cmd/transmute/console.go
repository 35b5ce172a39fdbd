package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/dshills/transmute/internal/app"
	"github.com/dshills/transmute/internal/dispatch"
	"github.com/dshills/transmute/internal/hotkey"
	"github.com/dshills/transmute/internal/state"
	"github.com/dshills/transmute/internal/transform"
)

// manualListener satisfies the hotkey manager without installing any hook.
// Activation comes from the :toggle command instead of a key press; the
// manager still validates and tracks the binding so :bind behaves exactly
// as it would with a real listener.
type manualListener struct{}

func (manualListener) Start(hotkey.Binding, func()) error { return nil }

func (manualListener) Stop() {}

// console is a line-oriented front end. It doubles as the application
// surface: the panes are plain strings, transitions complete instantly, and
// outcomes print to the writer.
type console struct {
	out io.Writer

	mu     sync.Mutex
	input  string
	output string

	app         *app.Application
	transformer string
	opts        transform.Options
}

func newConsole(out io.Writer) *console {
	return &console{
		out:         out,
		transformer: "to_upper_case",
		opts:        transform.Options{},
	}
}

func (c *console) Snapshot() (string, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.input, c.output
}

func (c *console) Restore(input, output string) {
	c.mu.Lock()
	c.input = input
	c.output = output
	c.mu.Unlock()
	if input != "" || output != "" {
		fmt.Fprintf(c.out, "restored: %q -> %q\n", input, output)
	}
}

func (c *console) Focus() {}

func (c *console) Present(d dispatch.Delivery) {
	switch d.Outcome.Status {
	case dispatch.StatusSuccess:
		c.mu.Lock()
		c.output = d.Outcome.Output
		c.mu.Unlock()
		fmt.Fprintln(c.out, d.Outcome.Output)
	case dispatch.StatusValidationFailed:
		fmt.Fprintf(c.out, "input rejected: %s\n", d.Outcome.Reason)
	case dispatch.StatusFailed:
		fmt.Fprintf(c.out, "transform failed: %s\n", d.Outcome.Reason)
	}
}

// loop reads lines until EOF or :exit. Lines starting with ':' are
// commands; anything else becomes the input pane and is submitted to the
// current transformer.
func (c *console) loop(in io.Reader) {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, ":") {
			if c.command(line) {
				return
			}
			continue
		}

		if c.app.Visibility() != state.Visible {
			fmt.Fprintln(c.out, "window is hidden; :toggle to show it")
			continue
		}

		c.mu.Lock()
		c.input = line
		name := c.transformer
		opts := c.opts
		c.mu.Unlock()

		if _, err := c.app.Submit(name, line, opts); err != nil {
			fmt.Fprintf(c.out, "error: %v\n", err)
		}
	}

	c.app.Shutdown()
}

// command executes one colon command. It returns true when the loop should
// stop.
func (c *console) command(line string) bool {
	fields := strings.Fields(line)
	cmd := fields[0]
	rest := strings.TrimSpace(strings.TrimPrefix(line, cmd))

	switch cmd {
	case ":help":
		c.printHelp()

	case ":list":
		c.printCatalog(rest)

	case ":search":
		c.app.Search(rest, func(ds []*transform.Descriptor) {
			for _, d := range ds {
				fmt.Fprintf(c.out, "  %-24s %s\n", d.Name, d.Category)
			}
			fmt.Fprintf(c.out, "%d match(es)\n", len(ds))
		})

	case ":use":
		if rest == "" {
			fmt.Fprintf(c.out, "current transformer: %s\n", c.currentTransformer())
			break
		}
		if _, err := c.app.Catalog().Lookup(rest); err != nil {
			fmt.Fprintf(c.out, "error: %v\n", err)
			break
		}
		c.mu.Lock()
		c.transformer = rest
		c.opts = transform.Options{}
		c.mu.Unlock()
		fmt.Fprintf(c.out, "using %s\n", rest)

	case ":opt":
		if len(fields) != 3 {
			fmt.Fprintln(c.out, "usage: :opt <key> <value>")
			break
		}
		c.mu.Lock()
		c.opts[fields[1]] = fields[2]
		c.mu.Unlock()

	case ":toggle":
		if err := c.app.ToggleVisibility(); err != nil {
			fmt.Fprintf(c.out, "error: %v\n", err)
			break
		}
		c.app.TransitionDone()
		fmt.Fprintf(c.out, "window %s\n", c.app.Visibility())

	case ":bind":
		if err := c.app.SetHotkey(rest); err != nil {
			fmt.Fprintf(c.out, "error: %v\n", err)
			break
		}
		fmt.Fprintf(c.out, "hotkey now %s\n", c.app.Hotkey())

	case ":exit", ":quit":
		if c.app.Visibility() == state.Visible {
			if err := c.app.ToggleVisibility(); err != nil {
				fmt.Fprintf(c.out, "error: %v\n", err)
				break
			}
			c.app.TransitionDone()
		}
		if err := c.app.Exit(); err != nil {
			fmt.Fprintf(c.out, "error: %v\n", err)
			break
		}
		return true

	default:
		fmt.Fprintf(c.out, "unknown command %s (:help for commands)\n", cmd)
	}
	return false
}

func (c *console) currentTransformer() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.transformer
}

func (c *console) printCatalog(category string) {
	if category == "" {
		for _, cat := range c.app.Catalog().Categories() {
			fmt.Fprintf(c.out, "%s (%d)\n", cat, len(c.app.Catalog().ByCategory(cat)))
		}
		fmt.Fprintln(c.out, "use :list <category> for transformer names")
		return
	}

	cat, ok := transform.CategoryFromName(category)
	if !ok {
		fmt.Fprintf(c.out, "unknown category %q\n", category)
		return
	}
	for _, d := range c.app.Catalog().ByCategory(cat) {
		fmt.Fprintf(c.out, "  %s\n", d.Name)
	}
}

func (c *console) printHelp() {
	fmt.Fprint(c.out, `commands:
  :list [category]    list categories or transformers
  :search <query>     search transformers by name or category
  :use <name>         select the active transformer
  :opt <key> <value>  set a transformer option (e.g. :opt shift 7)
  :toggle             hide or show the window (preserves panes)
  :bind <spec>        rebind the activation hotkey (e.g. ctrl+alt+y)
  :exit               hide if needed, then quit
any other line is transformed with the active transformer
`)
}
