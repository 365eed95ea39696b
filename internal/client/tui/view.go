package tui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Rendering only; no state lives here.

var (
	styleDefault = tcell.StyleDefault
	styleTitle   = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleFocus   = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleDim     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleError   = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleSuccess = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleInfo    = tcell.StyleDefault.Foreground(tcell.ColorTeal)
)

func draw(s tcell.Screen, a *App) {
	s.Clear()
	_, height := s.Size()

	drawText(s, 2, 1, styleTitle, "GopherKeeper")
	if user := a.vault.CurrentUser(); user != "" {
		drawText(s, 16, 1, styleDim, "["+user+"]")
	}

	switch a.Screen {
	case ScreenLogin:
		drawAuthForm(s, a, "Log in", false)
	case ScreenRegister:
		drawAuthForm(s, a, "Register", true)
	case ScreenUnlock:
		drawUnlock(s, a)
	case ScreenMenu:
		drawMenu(s)
	case ScreenSecrets:
		drawSecrets(s, a)
	case ScreenAdd:
		drawAddForm(s, a)
	}

	if n := a.Notification; n != nil {
		style := styleInfo
		switch n.Level {
		case LevelError:
			style = styleError
		case LevelSuccess:
			style = styleSuccess
		}
		drawText(s, 2, height-2, style, n.Message)
	}
	drawText(s, 2, height-1, styleDim, helpLine(a))

	s.Show()
}

func drawAuthForm(s tcell.Screen, a *App, title string, withConfirm bool) {
	drawText(s, 2, 3, styleDefault, title+" (Tab: next field, Enter: submit)")
	drawField(s, 4, 5, "Username", a.Username, a.Mode == ModeEditing && a.AuthStep == StepUsername, false)
	drawField(s, 4, 7, "Password", a.Password, a.Mode == ModeEditing && a.AuthStep == StepPassword, true)
	if withConfirm {
		drawField(s, 4, 9, "Confirm", a.Confirm, a.Mode == ModeEditing && a.AuthStep == StepConfirm, true)
	}
}

func drawUnlock(s tcell.Screen, a *App) {
	drawText(s, 2, 3, styleDefault, "Enter master password to unlock the vault")
	drawField(s, 4, 5, "Master password", a.Password, a.Mode == ModeEditing, true)
}

func drawMenu(s tcell.Screen) {
	drawText(s, 2, 3, styleDefault, "Menu")
	items := []string{
		"s  sync secrets",
		"v  view secrets",
		"a  add secret",
		"l  log out",
	}
	for i, item := range items {
		drawText(s, 4, 5+i, styleDefault, item)
	}
}

func drawSecrets(s tcell.Screen, a *App) {
	drawText(s, 2, 3, styleDefault, fmt.Sprintf("Secrets (%d)", len(a.Secrets)))
	if len(a.Secrets) == 0 {
		drawText(s, 4, 5, styleDim, "nothing here yet; press a to add a secret")
		return
	}

	for i, sec := range a.Secrets {
		style := styleDefault
		prefix := "  "
		if i == a.Selected {
			style = styleFocus
			prefix = "> "
		}
		drawText(s, 4, 5+i, style, fmt.Sprintf("%s%-8s %s", prefix, sec.Type, sec.Payload.Title))
	}

	// Detail pane for the selected secret.
	sel := a.Secrets[a.Selected]
	y := 6 + len(a.Secrets)
	drawText(s, 4, y, styleDim, "id: "+sel.ID)
	for i, f := range fieldsFor(sel.Payload.Kind)[1:] {
		value := payloadField(sel.Payload, f)
		if secretFields[f] && !a.Reveal {
			value = strings.Repeat("*", len(value))
		}
		style := styleDefault
		if i == a.DetailCursor {
			style = styleFocus
		}
		drawText(s, 4, y+1+i, style, fmt.Sprintf("%-8s %s", string(f)+":", value))
	}
}

func drawAddForm(s tcell.Screen, a *App) {
	drawText(s, 2, 3, styleDefault, "Add secret (Tab: next field, Up/Down on kind: change kind)")
	for i, f := range a.AddFields {
		focused := a.Mode == ModeEditing && a.AddFocus == i
		value := a.AddValues[f]
		if f == FieldKind {
			value = string(a.AddKind)
		}
		drawField(s, 4, 5+2*i, string(f), value, focused, secretFields[f])
	}
}

func drawField(s tcell.Screen, x, y int, label, value string, focused, mask bool) {
	style := styleDefault
	if focused {
		style = styleFocus
	}
	if mask {
		value = strings.Repeat("*", len([]rune(value)))
	}
	cursor := ""
	if focused {
		cursor = "_"
	}
	drawText(s, x, y, style, fmt.Sprintf("%-16s %s%s", label+":", value, cursor))
}

func helpLine(a *App) string {
	if a.Mode == ModeEditing {
		return "Esc: normal mode | Enter: submit | Tab: next field | Ctrl+C: quit"
	}
	switch a.Screen {
	case ScreenSecrets:
		return "Up/Down: select | Tab: field | d: delete | c: copy | e: reveal | Esc: menu | Ctrl+C: quit"
	case ScreenMenu:
		return "s: sync | v: view | a: add | l: logout | Ctrl+C: quit"
	default:
		return "e: edit | Enter: submit | Ctrl+C: quit"
	}
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for i, r := range []rune(text) {
		s.SetContent(x+i, y, r, nil, style)
	}
}
