// Package tui renders the sync status dashboard for the terminal agent: a
// connectivity banner, the pending capture list and a manual retry action.
package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rmartell/go-site-sync/internal/logger"
	"github.com/rmartell/go-site-sync/internal/service"
	"github.com/rmartell/go-site-sync/models"
)

type TUI struct {
	services *service.ClientServices
}

func New(services *service.ClientServices, _ *logger.Logger) (*TUI, error) {
	return &TUI{services: services}, nil
}

// Run blocks in the dashboard until the user quits or ctx is cancelled.
// Status transitions and resolved captures are pushed into the program, so
// the banner updates without polling from the view side.
func (t *TUI) Run(ctx context.Context) error {
	model := newStatusModel(ctx, t.services)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	t.services.Status.Subscribe(func(state models.SyncState) {
		p.Send(stateMsg{state: state})
	})
	t.services.Sync.SubscribeResolved(func(localID string, rec models.RemoteMediaRecord) {
		p.Send(resolvedMsg{localID: localID, record: rec})
	})

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
