// Package tui is a terminal frontend for the submission controller: the
// message floats away as a balloon and the comfort message appears in a card.
package tui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"student-relief/internal/submission"
)

const fallingStarInterval = 4 * time.Second

func Run(ctx context.Context, fetcher submission.Fetcher, timings submission.Timings) error {
	var p *tea.Program
	ui := programUI{send: func(msg tea.Msg) { p.Send(msg) }}
	ctrl := submission.NewController(fetcher, ui, timings)

	m := newModel(submitCmd(ctx, ctrl))
	p = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	stars := submission.StartTicker(fallingStarInterval, func() { p.Send(starMsg{}) })
	defer stars.Stop()

	_, err := p.Run()
	if err != nil && ctx.Err() != nil && errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

// submitCmd runs the controller off the event loop; its stages come back as
// messages through programUI.
func submitCmd(ctx context.Context, ctrl *submission.Controller) func(text string) tea.Cmd {
	return func(text string) tea.Cmd {
		return func() tea.Msg {
			ctrl.Submit(ctx, text)
			return nil
		}
	}
}
