package ebitenhost

import (
	"context"
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/san-kum/plexus/internal/sim"
)

// Run opens the window and drives the backdrop until it is closed or ctx ends.
func Run(ctx context.Context, opts sim.Options, o Options, observers ...sim.Observer) error {
	ebiten.SetWindowSize(o.Width, o.Height)
	ebiten.SetWindowTitle("plexus")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if o.FPS > 0 {
		ebiten.SetTPS(o.FPS)
	}

	g := NewGame(o)
	s := sim.New(g, opts)
	s.AddObserver(g)
	for _, obs := range observers {
		s.AddObserver(obs)
	}
	d, err := s.Start()
	if err != nil {
		return err
	}
	defer d.Release()

	done := make(chan error, 1)
	go func() {
		err := s.Run(ctx)
		g.Close()
		done <- err
	}()

	gameErr := ebiten.RunGame(g)
	g.Close()
	d.Release()
	runErr := <-done

	if gameErr != nil && !errors.Is(gameErr, ebiten.Termination) {
		return gameErr
	}
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}
	return nil
}
