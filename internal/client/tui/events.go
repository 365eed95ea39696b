package tui

import "context"

// Key identifies a non-character key, or KeyRune for a character.
type Key int

const (
	KeyRune Key = iota
	KeyEnter
	KeyTab
	KeyEsc
	KeyBackspace
	KeyUp
	KeyDown
)

// KeyEvent is one keystroke, already decoded from the terminal.
type KeyEvent struct {
	Key  Key
	Rune rune
	Ctrl bool
}

// HandleKey applies one key event to the application state. Any network
// call triggered by the event runs to completion before HandleKey returns,
// so at most one vault operation is ever in flight.
func (a *App) HandleKey(ctx context.Context, ev KeyEvent) {
	if ev.Ctrl {
		switch ev.Rune {
		case 'c':
			a.Quit = true
		case 'l':
			a.Screen = ScreenLogin
			a.Mode = ModeEditing
		case 'r':
			a.Screen = ScreenRegister
			a.Mode = ModeEditing
		}
		return
	}

	switch a.Mode {
	case ModeNormal:
		a.handleNormal(ctx, ev)
	case ModeEditing:
		a.handleEditing(ctx, ev)
	}
}

func (a *App) handleNormal(ctx context.Context, ev KeyEvent) {
	switch ev.Key {
	case KeyEsc:
		if a.Screen == ScreenSecrets || a.Screen == ScreenAdd {
			a.Screen = ScreenMenu
		}
		a.Mode = ModeNormal
	case KeyUp:
		a.Prev()
	case KeyDown:
		a.Next()
	case KeyEnter:
		a.Submit(ctx)
	case KeyTab:
		if a.Screen == ScreenSecrets {
			a.NextDetail()
		}
	case KeyRune:
		a.handleCommand(ctx, ev.Rune)
	}
}

// handleCommand dispatches single-letter commands. The unlock screen keeps
// commands disabled so a locked session cannot reach the vault.
func (a *App) handleCommand(ctx context.Context, r rune) {
	if a.Screen == ScreenUnlock && r != 'e' {
		return
	}
	switch r {
	case 's':
		a.SyncSecrets(ctx)
	case 'v':
		a.ViewSecrets(ctx)
	case 'a':
		a.EnterAdd()
	case 'l':
		a.Logout()
	case 'd':
		if a.Screen == ScreenSecrets {
			a.DeleteSelected(ctx)
		}
	case 'c':
		if a.Screen == ScreenSecrets {
			a.CopySelected()
		}
	case 'e':
		if a.Screen == ScreenSecrets {
			a.Reveal = !a.Reveal
		} else {
			a.Mode = ModeEditing
		}
	}
}

func (a *App) handleEditing(ctx context.Context, ev KeyEvent) {
	switch ev.Key {
	case KeyEsc:
		a.Mode = ModeNormal
	case KeyTab:
		a.NextField()
	case KeyEnter:
		a.Submit(ctx)
	case KeyBackspace:
		a.Backspace()
	case KeyUp:
		if a.Screen == ScreenAdd && a.AddFields[a.AddFocus] == FieldKind {
			a.CycleKind(-1)
		}
	case KeyDown:
		if a.Screen == ScreenAdd && a.AddFields[a.AddFocus] == FieldKind {
			a.CycleKind(1)
		}
	case KeyRune:
		if ev.Rune != 0 {
			a.PushRune(ev.Rune)
		}
	}
}
