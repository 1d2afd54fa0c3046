package main

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/Tank-Duel/internal/audio"
	"github.com/Garsondee/Tank-Duel/internal/config"
	"github.com/Garsondee/Tank-Duel/internal/game"
)

func main() {
	if err := config.LoadEnv(); err != nil {
		log.Printf("env: %v", err)
	}
	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatal(err)
	}

	var sound game.SoundPlayer
	if cfg.Audio.Enabled {
		sm := audio.NewSoundManager(cfg.Audio.Volume)
		if err := sm.Init(); err != nil {
			log.Printf("audio disabled: %v", err)
		} else {
			defer sm.Close()
			sound = sm
		}
	}

	g, err := game.New(cfg, sound)
	if err != nil {
		log.Fatal(err)
	}
	defer g.Close()

	w, h := g.WindowSize()
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowSize(int(float64(w)*cfg.Window.Scale), int(float64(h)*cfg.Window.Scale))
	ebiten.SetTPS(cfg.Sim.TicksPerSecond)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
