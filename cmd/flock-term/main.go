package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"flockbg/internal/app"
	"flockbg/internal/flock"
	"flockbg/internal/prefs"
	"flockbg/internal/term"

	"github.com/gdamore/tcell/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.TPS = 30
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	fc, err := cfg.FlockConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	p, prefsPath, err := cfg.Preferences()
	if err != nil {
		log.Printf("preferences: %v", err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("terminal: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("terminal: %v", err)
	}

	d := flock.NewDriver(flock.New(fc))
	d.SetDark(p.Dark())
	host := term.NewHost(screen, d, term.Options{
		TPS: cfg.TPS,
		OnTheme: func(dark bool) {
			if prefsPath == "" {
				return
			}
			p.SetDark(dark)
			if err := prefs.Save(prefsPath, p); err != nil {
				log.Printf("save preferences: %v", err)
			}
		},
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := host.Run(ctx); err != nil {
		log.Fatalf("run: %v", err)
	}
}
