package hotkey

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/transmute/internal/hotkey/key"
)

// TerminalListener is a Listener backed by a tcell screen. It is not a
// true OS-global hook: it only sees keys while its terminal has focus, and
// exists for running the core interactively in a terminal (the -terminal
// mode). The Primary modifier resolves to Ctrl here.
type TerminalListener struct {
	mu     sync.Mutex
	screen tcell.Screen
}

// NewTerminalListener creates a terminal-backed listener.
func NewTerminalListener() *TerminalListener {
	return &TerminalListener{}
}

// Start initializes the screen and begins polling key events on a dedicated
// goroutine. A screen that cannot be created or initialized (no TTY, no
// TERM) is reported as a permission error: the environment denies the hook.
func (l *TerminalListener) Start(b Binding, activated func()) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.screen != nil {
		return fmt.Errorf("terminal listener already started")
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrListenerPermission, err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("%w: %v", ErrListenerPermission, err)
	}

	l.screen = screen
	target := resolvePrimary(b.Event())

	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				// Screen finalized; the listener was stopped.
				return
			}
			keyEv, ok := ev.(*tcell.EventKey)
			if !ok {
				continue
			}
			if convertTcellKey(keyEv).Equals(target) {
				activated()
			}
		}
	}()

	return nil
}

// Stop finalizes the screen, which unblocks the polling goroutine.
func (l *TerminalListener) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.screen != nil {
		l.screen.Fini()
		l.screen = nil
	}
}

// resolvePrimary rewrites the Primary placeholder to the modifier this
// listener actually observes (Ctrl in a terminal).
func resolvePrimary(ev key.Event) key.Event {
	if ev.Modifiers.Has(key.ModPrimary) {
		ev.Modifiers = ev.Modifiers.Without(key.ModPrimary).With(key.ModCtrl)
	}
	return ev
}

// convertTcellKey maps a tcell key event into the package's Event form.
func convertTcellKey(ev *tcell.EventKey) key.Event {
	mods := convertTcellMod(ev.Modifiers())

	switch k := ev.Key(); {
	case k == tcell.KeyRune:
		return key.NewRuneEvent(ev.Rune(), mods)
	case k == tcell.KeyEnter:
		return key.NewSpecialEvent(key.KeyEnter, mods)
	case k == tcell.KeyEscape:
		return key.NewSpecialEvent(key.KeyEscape, mods)
	case k == tcell.KeyTab:
		return key.NewSpecialEvent(key.KeyTab, mods)
	case k == tcell.KeyBackspace || k == tcell.KeyBackspace2:
		return key.NewSpecialEvent(key.KeyBackspace, mods)
	case k == tcell.KeyDelete:
		return key.NewSpecialEvent(key.KeyDelete, mods)
	case k == tcell.KeyInsert:
		return key.NewSpecialEvent(key.KeyInsert, mods)
	case k == tcell.KeyUp:
		return key.NewSpecialEvent(key.KeyUp, mods)
	case k == tcell.KeyDown:
		return key.NewSpecialEvent(key.KeyDown, mods)
	case k == tcell.KeyLeft:
		return key.NewSpecialEvent(key.KeyLeft, mods)
	case k == tcell.KeyRight:
		return key.NewSpecialEvent(key.KeyRight, mods)
	case k == tcell.KeyHome:
		return key.NewSpecialEvent(key.KeyHome, mods)
	case k == tcell.KeyEnd:
		return key.NewSpecialEvent(key.KeyEnd, mods)
	case k == tcell.KeyPgUp:
		return key.NewSpecialEvent(key.KeyPageUp, mods)
	case k == tcell.KeyPgDn:
		return key.NewSpecialEvent(key.KeyPageDown, mods)
	case k >= tcell.KeyF1 && k <= tcell.KeyF12:
		return key.NewSpecialEvent(key.KeyF1+key.Key(k-tcell.KeyF1), mods)
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		// Terminals fold Ctrl+letter into a control code.
		return key.NewRuneEvent('a'+rune(k-tcell.KeyCtrlA), mods.With(key.ModCtrl))
	default:
		return key.Event{}
	}
}

// convertTcellMod maps tcell's modifier mask onto the package's Modifier.
func convertTcellMod(m tcell.ModMask) key.Modifier {
	var result key.Modifier
	if m&tcell.ModShift != 0 {
		result = result.With(key.ModShift)
	}
	if m&tcell.ModCtrl != 0 {
		result = result.With(key.ModCtrl)
	}
	if m&tcell.ModAlt != 0 {
		result = result.With(key.ModAlt)
	}
	if m&tcell.ModMeta != 0 {
		result = result.With(key.ModMeta)
	}
	return result
}
