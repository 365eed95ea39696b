// Package tui implements the interactive terminal session: a finite set of
// screens and input modes driven by key events. The state machine itself is
// terminal-agnostic; the runner feeds it events from tcell and renders the
// result. All vault access goes through the Vault interface, never by
// mutating session state directly.
package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"go.uber.org/zap"

	"github.com/mkalinin/gopherkeeper/internal/models"
)

// Vault is the slice of the session manager the interaction loop drives.
type Vault interface {
	Register(ctx context.Context, login, password string) error
	Login(ctx context.Context, login, password string) error
	TryAutoLogin() error
	Unlock(password string) error
	Logout()
	Sync(ctx context.Context) ([]models.DecryptedSecret, error)
	Add(ctx context.Context, payload models.SecretPayload) error
	Delete(ctx context.Context, id string) error
	CurrentUser() string
}

// Screen enumerates the TUI screens.
type Screen int

const (
	ScreenLogin Screen = iota
	ScreenRegister
	ScreenUnlock
	ScreenMenu
	ScreenSecrets
	ScreenAdd
)

// InputMode decides whether keys are commands or text entry.
type InputMode int

const (
	ModeNormal InputMode = iota
	ModeEditing
)

// Steps of the login/register forms.
const (
	StepUsername = iota
	StepPassword
	StepConfirm
)

// Level classifies a notification for rendering.
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelError
)

// Notification is a single ephemeral status message. Setting a new one
// replaces any pending one; there is no queue.
type Notification struct {
	Message string
	Level   Level
	Expires time.Time
}

// App is the interaction state machine. Exported fields are read by the
// view; they are only ever mutated through App methods.
type App struct {
	vault Vault
	log   *zap.SugaredLogger

	Screen Screen
	Mode   InputMode
	Quit   bool

	// Secrets list view state.
	Secrets      []models.DecryptedSecret
	Selected     int
	DetailCursor int
	Reveal       bool

	// Login/register form state.
	AuthStep int
	Username string
	Password string
	Confirm  string

	// Add-secret form state. AddFields is derived from AddKind and owns the
	// Tab order; AddValues holds the text entered per field.
	AddKind   models.SecretKind
	AddFields []Field
	AddFocus  int
	AddValues map[Field]string

	Notification *Notification
}

// New builds the App and attempts auto-login from the persisted token.
// Success lands on the unlock screen; any failure falls back to the login
// screen with no user-visible error.
func New(vault Vault, log *zap.SugaredLogger) *App {
	a := &App{vault: vault, log: log}
	a.resetAddForm(models.KindPassword)

	if err := vault.TryAutoLogin(); err == nil {
		a.Screen = ScreenUnlock
		a.Mode = ModeEditing
		a.notifyInfo("Welcome back, " + vault.CurrentUser())
	} else {
		log.Debugw("auto login unavailable", "reason", err)
		a.Screen = ScreenLogin
		a.Mode = ModeEditing
	}
	return a
}

func (a *App) notify(level Level, msg string, ttl time.Duration) {
	a.Notification = &Notification{Message: msg, Level: level, Expires: time.Now().Add(ttl)}
}

func (a *App) notifySuccess(msg string) { a.notify(LevelSuccess, msg, 2*time.Second) }
func (a *App) notifyError(msg string)   { a.notify(LevelError, msg, 3*time.Second) }
func (a *App) notifyInfo(msg string)    { a.notify(LevelInfo, msg, 2*time.Second) }

// ExpireNotification clears the pending notification once now passes its
// expiry. Called by the runner on every wakeup.
func (a *App) ExpireNotification(now time.Time) {
	if a.Notification != nil && now.After(a.Notification.Expires) {
		a.Notification = nil
	}
}

// Next moves the selection down, clamped to the last secret. Moving to a
// different secret resets the detail cursor.
func (a *App) Next() {
	if len(a.Secrets) == 0 {
		return
	}
	if a.Selected < len(a.Secrets)-1 {
		a.Selected++
		a.DetailCursor = 0
	}
}

// Prev moves the selection up, clamped to the first secret.
func (a *App) Prev() {
	if len(a.Secrets) == 0 {
		return
	}
	if a.Selected > 0 {
		a.Selected--
		a.DetailCursor = 0
	}
}

// NextDetail cycles the detail field cursor of the selected secret.
func (a *App) NextDetail() {
	if len(a.Secrets) == 0 {
		return
	}
	fields := fieldsFor(a.Secrets[a.Selected].Payload.Kind)[1:]
	a.DetailCursor = (a.DetailCursor + 1) % len(fields)
}

// NextField advances the focused field of the active form, wrapping.
func (a *App) NextField() {
	switch a.Screen {
	case ScreenLogin:
		a.AuthStep = (a.AuthStep + 1) % 2
	case ScreenRegister:
		a.AuthStep = (a.AuthStep + 1) % 3
	case ScreenAdd:
		a.AddFocus = (a.AddFocus + 1) % len(a.AddFields)
	}
}

// CycleKind steps the add-form kind selector. Switching kind re-derives the
// field order and clears everything entered so far.
func (a *App) CycleKind(step int) {
	idx := 0
	for i, k := range models.Kinds {
		if k == a.AddKind {
			idx = i
			break
		}
	}
	next := models.Kinds[(idx+step+len(models.Kinds))%len(models.Kinds)]
	a.resetAddForm(next)
}

func (a *App) resetAddForm(kind models.SecretKind) {
	a.AddKind = kind
	a.AddFields = fieldsFor(kind)
	a.AddFocus = 0
	a.AddValues = make(map[Field]string)
}

// PushRune appends a character to the active field of the active screen.
// On the kind selector any character steps the selector instead.
func (a *App) PushRune(r rune) {
	switch a.Screen {
	case ScreenLogin, ScreenRegister:
		switch a.AuthStep {
		case StepUsername:
			a.Username += string(r)
		case StepPassword:
			a.Password += string(r)
		case StepConfirm:
			a.Confirm += string(r)
		}
	case ScreenUnlock:
		a.Password += string(r)
	case ScreenAdd:
		f := a.AddFields[a.AddFocus]
		if f == FieldKind {
			a.CycleKind(1)
			return
		}
		a.AddValues[f] += string(r)
	}
}

// Backspace deletes the last character of the active field.
func (a *App) Backspace() {
	switch a.Screen {
	case ScreenLogin, ScreenRegister:
		switch a.AuthStep {
		case StepUsername:
			a.Username = trimLastRune(a.Username)
		case StepPassword:
			a.Password = trimLastRune(a.Password)
		case StepConfirm:
			a.Confirm = trimLastRune(a.Confirm)
		}
	case ScreenUnlock:
		a.Password = trimLastRune(a.Password)
	case ScreenAdd:
		f := a.AddFields[a.AddFocus]
		if f != FieldKind {
			a.AddValues[f] = trimLastRune(a.AddValues[f])
		}
	}
}

func trimLastRune(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	return string(r[:len(r)-1])
}

// Submit advances the active form one step or fires its final action.
func (a *App) Submit(ctx context.Context) {
	switch a.Screen {
	case ScreenLogin:
		switch a.AuthStep {
		case StepUsername:
			a.AuthStep = StepPassword
		case StepPassword:
			a.login(ctx)
		}
	case ScreenRegister:
		switch a.AuthStep {
		case StepUsername:
			a.AuthStep = StepPassword
		case StepPassword:
			a.AuthStep = StepConfirm
		case StepConfirm:
			a.register(ctx)
		}
	case ScreenUnlock:
		a.unlock()
	case ScreenAdd:
		a.addSecret(ctx)
	}
}

func (a *App) login(ctx context.Context) {
	if err := a.vault.Login(ctx, a.Username, a.Password); err != nil {
		a.notifyError("Login failed: " + err.Error())
		return
	}
	a.Username, a.Password, a.Confirm = "", "", ""
	a.AuthStep = StepUsername
	a.Screen = ScreenMenu
	a.Mode = ModeNormal
	a.notifySuccess("Logged in")
}

func (a *App) register(ctx context.Context) {
	if a.Username == "" || a.Password == "" {
		a.notifyError("Username and password are required")
		return
	}
	if a.Password != a.Confirm {
		a.notifyError("Passwords do not match")
		return
	}
	if err := a.vault.Register(ctx, a.Username, a.Password); err != nil {
		a.notifyError("Register failed: " + err.Error())
		return
	}
	a.Confirm = ""
	a.AuthStep = StepUsername
	// Registration chains straight into login so the master password gets
	// cached from the same credentials.
	a.login(ctx)
}

func (a *App) unlock() {
	if a.Password == "" {
		a.notifyError("Master password cannot be empty")
		return
	}
	if err := a.vault.Unlock(a.Password); err != nil {
		a.notifyError(err.Error())
		return
	}
	a.Password = ""
	a.Screen = ScreenMenu
	a.Mode = ModeNormal
	a.notifySuccess("Vault unlocked")
}

func (a *App) addSecret(ctx context.Context) {
	payload, err := a.addPayload()
	if err != nil {
		a.notifyError(err.Error())
		return
	}
	if err := a.vault.Add(ctx, payload); err != nil {
		a.notifyError("Add failed: " + err.Error())
		return
	}
	a.resetAddForm(a.AddKind)
	a.Screen = ScreenMenu
	a.Mode = ModeNormal
	a.notifySuccess("Secret added")
}

// addPayload validates the form and assembles the payload for the chosen
// kind. Only the URL is optional.
func (a *App) addPayload() (models.SecretPayload, error) {
	p := models.SecretPayload{Kind: a.AddKind, Title: a.AddValues[FieldTitle]}
	if p.Title == "" {
		return p, errors.New("title is required")
	}
	switch a.AddKind {
	case models.KindPassword:
		p.Login = a.AddValues[FieldLogin]
		p.Password = a.AddValues[FieldPassword]
		p.URL = a.AddValues[FieldURL]
		if p.Login == "" || p.Password == "" {
			return p, errors.New("login and password are required")
		}
	case models.KindNote:
		p.Content = a.AddValues[FieldContent]
		if p.Content == "" {
			return p, errors.New("content is required")
		}
	case models.KindCard:
		p.Holder = a.AddValues[FieldHolder]
		p.Number = a.AddValues[FieldNumber]
		p.Expiry = a.AddValues[FieldExpiry]
		p.CVV = a.AddValues[FieldCVV]
		if p.Holder == "" || p.Number == "" || p.Expiry == "" || p.CVV == "" {
			return p, errors.New("all card fields are required")
		}
	default:
		return p, fmt.Errorf("unknown secret kind %q", a.AddKind)
	}
	return p, nil
}

// SyncSecrets refreshes the decrypted list from the server. From the menu a
// non-empty result jumps straight to the secrets screen.
func (a *App) SyncSecrets(ctx context.Context) {
	list, err := a.vault.Sync(ctx)
	if err != nil {
		a.notifyError("Sync failed: " + err.Error())
		return
	}
	a.Secrets = list
	a.Selected = 0
	a.DetailCursor = 0
	a.notifySuccess("Secrets synced")
	if a.Screen == ScreenMenu && len(list) > 0 {
		a.Screen = ScreenSecrets
		a.Mode = ModeNormal
	}
}

// ViewSecrets opens the secrets screen, syncing first if the cache is empty.
func (a *App) ViewSecrets(ctx context.Context) {
	if len(a.Secrets) == 0 {
		list, err := a.vault.Sync(ctx)
		if err != nil {
			a.notifyError("Failed to load secrets: " + err.Error())
			return
		}
		a.Secrets = list
		a.Selected = 0
		a.DetailCursor = 0
	}
	a.Screen = ScreenSecrets
	a.Mode = ModeNormal
}

// EnterAdd opens a fresh add-secret form.
func (a *App) EnterAdd() {
	a.resetAddForm(a.AddKind)
	a.Screen = ScreenAdd
	a.Mode = ModeEditing
}

// DeleteSelected deletes the selected secret remotely and from the list.
// A failed delete leaves the list untouched.
func (a *App) DeleteSelected(ctx context.Context) {
	if len(a.Secrets) == 0 {
		return
	}
	id := a.Secrets[a.Selected].ID
	if err := a.vault.Delete(ctx, id); err != nil {
		a.notifyError("Delete failed: " + err.Error())
		return
	}
	a.Secrets = append(a.Secrets[:a.Selected], a.Secrets[a.Selected+1:]...)
	if a.Selected > 0 {
		a.Selected--
	}
	a.DetailCursor = 0
	a.notifySuccess("Secret deleted")
}

// CopySelected puts the selected secret's sensitive field on the clipboard.
func (a *App) CopySelected() {
	if len(a.Secrets) == 0 {
		a.notifyError("No secrets to copy")
		return
	}
	p := a.Secrets[a.Selected].Payload
	var value string
	switch p.Kind {
	case models.KindNote:
		value = p.Content
	case models.KindCard:
		value = p.Number
	default:
		value = p.Password
	}
	if err := clipboard.WriteAll(value); err != nil {
		a.notifyError("Clipboard error: " + err.Error())
		return
	}
	a.notifySuccess("Copied to clipboard")
}

// Logout clears the session and all view state and returns to the login
// screen.
func (a *App) Logout() {
	a.vault.Logout()
	a.Secrets = nil
	a.Selected = 0
	a.DetailCursor = 0
	a.Reveal = false
	a.Username, a.Password, a.Confirm = "", "", ""
	a.AuthStep = StepUsername
	a.Screen = ScreenLogin
	a.Mode = ModeEditing
	a.notifyInfo("Logged out")
}
