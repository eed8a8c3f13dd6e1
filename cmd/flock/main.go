//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"flockbg/internal/app"
	"flockbg/internal/flock"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
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

	f := flock.New(fc)
	game := app.New(f, p, prefsPath)

	ebiten.SetWindowTitle("flock")
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(fc.Width, fc.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
