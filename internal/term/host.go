package term

import (
	"context"
	"time"

	"flockbg/internal/core"
	"flockbg/internal/flock"

	"github.com/gdamore/tcell/v2"
)

// Options tune a Host.
type Options struct {
	TPS int
	// OnTheme is called after the viewer toggles the theme.
	OnTheme func(dark bool)
}

// Host runs a flock driver against a tcell screen.
type Host struct {
	screen  tcell.Screen
	driver  *flock.Driver
	surface *Surface
	timer   *core.FixedStep
	opts    Options
}

// NewHost wraps an initialized screen. Run takes ownership of the screen and
// finalizes it on return.
func NewHost(screen tcell.Screen, d *flock.Driver, opts Options) *Host {
	return &Host{
		screen:  screen,
		driver:  d,
		surface: NewSurface(screen),
		timer:   core.NewFixedStep(opts.TPS),
		opts:    opts,
	}
}

// Driver exposes the driven flock.
func (h *Host) Driver() *flock.Driver { return h.driver }

// Start enables mouse and focus reporting and mounts the driver on the
// current screen size.
func (h *Host) Start() error {
	h.screen.EnableMouse(tcell.MouseMotionEvents)
	h.screen.EnableFocus()
	h.screen.HideCursor()
	w, ht := h.screen.Size()
	return h.driver.Mount(w*CellW, ht*CellH)
}

// Run processes events and draws frames until ctx is done or the viewer
// quits.
func (h *Host) Run(ctx context.Context) error {
	defer h.screen.Fini()
	if err := h.Start(); err != nil {
		return err
	}
	defer h.driver.Unmount()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(h.timer.Interval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !h.HandleEvent(ev) {
				return nil
			}
		case now := <-ticker.C:
			h.Tick(now)
		}
	}
}

// Tick advances as many steps as are due at now and redraws.
func (h *Host) Tick(now time.Time) {
	n := h.timer.Due(now)
	for i := 0; i < n; i++ {
		h.driver.Advance()
	}
	if h.driver.State() == flock.Running {
		h.driver.Draw(h.surface)
		h.screen.Show()
	}
}

// HandleEvent applies one terminal event. It returns false when the viewer
// asked to quit.
func (h *Host) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			return h.handleRune(ev.Rune())
		}
	case *tcell.EventMouse:
		x, y := ev.Position()
		h.driver.PointerMove((float64(x)+0.5)*CellW, (float64(y)+0.5)*CellH)
	case *tcell.EventFocus:
		if !ev.Focused {
			h.driver.PointerLeave()
		}
	case *tcell.EventResize:
		w, ht := ev.Size()
		h.driver.Resize(w*CellW, ht*CellH)
		h.screen.Sync()
	}
	return true
}

func (h *Host) handleRune(r rune) bool {
	switch r {
	case 'q':
		return false
	case 't':
		dark := !h.driver.Flock().Dark()
		h.driver.SetDark(dark)
		if h.opts.OnTheme != nil {
			h.opts.OnTheme(dark)
		}
	}
	return true
}
