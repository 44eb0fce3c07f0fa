//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"wavefloat/internal/app"
	"wavefloat/internal/sims/floating"
	"wavefloat/internal/watch"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	world, err := cfg.LoadWorld()
	if err != nil {
		log.Fatal(err)
	}

	var reload <-chan floating.Config
	if cfg.Watch && cfg.Config != "" {
		w, err := watch.New(cfg.Config)
		if err != nil {
			log.Fatal(err)
		}
		defer w.Close()
		reload = watch.Reload(w, floating.LoadConfig, func(err error) {
			log.Printf("floatsim: reload %s: %v", cfg.Config, err)
		})
	}

	game := app.New(world, cfg.Scale, cfg.HUDWidth, reload)
	size := world.Size()

	ebiten.SetWindowTitle("wavefloat: " + world.Name())
	ebiten.SetTPS(world.Config().TPS)
	ebiten.SetWindowSize(size.W*cfg.Scale+cfg.HUDWidth, size.H*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
