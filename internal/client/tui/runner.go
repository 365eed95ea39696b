package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
)

// tickInterval is how often the loop wakes up to expire notifications when
// no key is pressed.
const tickInterval = 250 * time.Millisecond

// Runner drives the App against a real terminal. One goroutine runs the
// loop; network calls block it by design, so there is never more than one
// outstanding vault operation.
type Runner struct {
	app    *App
	screen tcell.Screen
}

// NewRunner initializes the terminal.
func NewRunner(app *App) (*Runner, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	return &Runner{app: app, screen: screen}, nil
}

// Run polls terminal events until the app quits, redrawing after each one.
func (r *Runner) Run(ctx context.Context) error {
	defer r.screen.Fini()

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		ticker := time.NewTicker(tickInterval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				_ = r.screen.PostEvent(tcell.NewEventInterrupt(nil))
			}
		}
	}()

	for !r.app.Quit {
		r.app.ExpireNotification(time.Now())
		draw(r.screen, r.app)

		switch ev := r.screen.PollEvent().(type) {
		case *tcell.EventKey:
			r.app.HandleKey(ctx, translateKey(ev))
		case *tcell.EventResize:
			r.screen.Sync()
		case nil:
			return nil
		}
	}
	return nil
}

func translateKey(ev *tcell.EventKey) KeyEvent {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return KeyEvent{Key: KeyRune, Rune: 'c', Ctrl: true}
	case tcell.KeyCtrlL:
		return KeyEvent{Key: KeyRune, Rune: 'l', Ctrl: true}
	case tcell.KeyCtrlR:
		return KeyEvent{Key: KeyRune, Rune: 'r', Ctrl: true}
	case tcell.KeyEnter:
		return KeyEvent{Key: KeyEnter}
	case tcell.KeyTab:
		return KeyEvent{Key: KeyTab}
	case tcell.KeyEscape:
		return KeyEvent{Key: KeyEsc}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return KeyEvent{Key: KeyBackspace}
	case tcell.KeyUp:
		return KeyEvent{Key: KeyUp}
	case tcell.KeyDown:
		return KeyEvent{Key: KeyDown}
	case tcell.KeyRune:
		return KeyEvent{Key: KeyRune, Rune: ev.Rune(), Ctrl: ev.Modifiers()&tcell.ModCtrl != 0}
	}
	return KeyEvent{Key: KeyRune}
}
