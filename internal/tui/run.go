package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/plexus/internal/sim"
	"github.com/san-kum/plexus/internal/viz"
)

type Options struct {
	FPS       int
	CellScale int
	Theme     viz.Theme
	// Observers are attached to the scheduler alongside the status line.
	Observers []sim.Observer
}

// Run shows the backdrop in the terminal until the user quits or ctx ends.
func Run(ctx context.Context, opts sim.Options, o Options) error {
	if o.CellScale <= 0 {
		o.CellScale = 8
	}

	host := newHost(80, 24, float64(o.CellScale), o.Theme, nil)
	if o.FPS > 0 {
		host.FPS = o.FPS
	}
	p := tea.NewProgram(model{host: host}, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithContext(ctx))
	host.send = p.Send

	s := sim.New(host, opts)
	s.AddObserver(host)
	for _, obs := range o.Observers {
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
		p.Quit()
		done <- err
	}()

	_, uiErr := p.Run()
	host.Close()
	d.Release()
	runErr := <-done

	if uiErr != nil && !errors.Is(uiErr, tea.ErrProgramKilled) {
		return fmt.Errorf("terminal: %w", uiErr)
	}
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}
	return nil
}
