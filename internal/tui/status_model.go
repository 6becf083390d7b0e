// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 R. Martell

package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rmartell/go-site-sync/internal/service"
	"github.com/rmartell/go-site-sync/models"
)

const pendingReloadInterval = 2 * time.Second

type reloadTickMsg struct{}

type statusModel struct {
	ctx      context.Context
	services *service.ClientServices

	state    models.SyncState
	entries  []models.QueueEntry
	idx      int
	spinner  spinner.Model
	status   string
	errMsg   string
	retrying bool
}

func newStatusModel(ctx context.Context, services *service.ClientServices) statusModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot

	return statusModel{
		ctx:      ctx,
		services: services,
		state:    services.Status.Current(ctx),
		spinner:  s,
	}
}

func (m statusModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadPending(), reloadTick())
}

func reloadTick() tea.Cmd {
	return tea.Tick(pendingReloadInterval, func(time.Time) tea.Msg {
		return reloadTickMsg{}
	})
}

func (m statusModel) loadPending() tea.Cmd {
	return func() tea.Msg {
		entries, err := m.services.Status.ListPending(m.ctx)
		return pendingLoadedMsg{entries: entries, err: err}
	}
}

func (m statusModel) retry() tea.Cmd {
	return func() tea.Msg {
		return retryDoneMsg{err: m.services.Sync.RetryNow(m.ctx)}
	}
}

func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

func (m statusModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.quit):
			return m, tea.Quit
		case key.Matches(msg, keys.up):
			if m.idx > 0 {
				m.idx--
			}
		case key.Matches(msg, keys.down):
			if m.idx < len(m.entries)-1 {
				m.idx++
			}
		case key.Matches(msg, keys.retry):
			if !m.retrying {
				m.retrying = true
				m.errMsg = ""
				return m, m.retry()
			}
		}

	case stateMsg:
		m.state = msg.state
		return m, m.loadPending()

	case pendingLoadedMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.entries = msg.entries
		if m.idx >= len(m.entries) {
			m.idx = max(0, len(m.entries)-1)
		}

	case resolvedMsg:
		m.status = fmt.Sprintf("synced %s", msg.record.ObjectPath)
		return m, tea.Batch(m.loadPending(), clearStatusAfter(5*time.Second))

	case retryDoneMsg:
		m.retrying = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
		}
		return m, m.loadPending()

	case clearStatusMsg:
		m.status = ""

	case reloadTickMsg:
		return m, tea.Batch(m.loadPending(), reloadTick())

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m statusModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Site Sync"))
	b.WriteString("\n\n")
	b.WriteString(m.bannerView())
	b.WriteString("\n\n")
	b.WriteString(m.pendingView())

	if m.status != "" {
		b.WriteString("\n" + syncedStyle.Render(m.status))
	}
	if m.errMsg != "" {
		b.WriteString("\n" + warnStyle.Render(m.errMsg))
	}

	b.WriteString("\n\n" + helpStyle.Render("r retry · j/k move · q quit"))

	return appStyle.Render(b.String())
}

func (m statusModel) bannerView() string {
	switch m.state.Phase {
	case models.PhaseOffline:
		return offlineStyle.Render(fmt.Sprintf("OFFLINE — %d capture(s) waiting", m.state.PendingCount))
	case models.PhaseSyncing:
		return syncingStyle.Render(fmt.Sprintf("%s syncing — %d remaining", m.spinner.View(), m.state.PendingCount))
	case models.PhasePendingRetry:
		if m.state.NeedsAttention > 0 {
			return warnStyle.Render(fmt.Sprintf("%d capture(s) need attention, %d pending", m.state.NeedsAttention, m.state.PendingCount))
		}
		return syncingStyle.Render(fmt.Sprintf("%d capture(s) pending retry", m.state.PendingCount))
	default:
		return syncedStyle.Render("all captures synced")
	}
}

func (m statusModel) pendingView() string {
	if len(m.entries) == 0 {
		return helpStyle.Render("queue is empty")
	}

	var b strings.Builder
	for i, entry := range m.entries {
		line := fmt.Sprintf("%s  %s  attempts:%d", entry.FileName, entry.MediaType, entry.Attempts)
		if entry.LastError != "" {
			line += "  " + warnStyle.Render("! "+entry.LastError)
		}
		if i == m.idx {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		if i < len(m.entries)-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}
