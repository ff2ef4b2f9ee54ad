package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/andareed/gpias-marker/chart"
	"github.com/andareed/gpias-marker/dialogs"
	"github.com/andareed/gpias-marker/logging"
)

const legend = "(? help · space toggle · ←/→ trial · y limits · e export)"

func (m *model) footerMode() string {
	switch m.ui.mode {
	case modeCommand:
		switch m.ui.command.cmd {
		case CmdJump:
			return "JUMP"
		case CmdRemove:
			return "REMOVE"
		}
	case modeLimits:
		return "LIMITS"
	}
	if m.ui.loading != "" {
		return "LOADING"
	}
	return "NORMAL"
}

// footerView renders the 2-line footer. width is the content width.
func (m *model) footerView(width int) string {
	st := footerState{
		Mode:        m.footerMode(),
		FileName:    m.session.Source(),
		AxisLabel:   m.axisStatusLabel(),
		Trial:       m.session.Ordinal(),
		TotalTrials: m.session.Total(),
		Legend:      legend,
	}
	_, st.Rejected = m.session.Table().StatusCounts()
	if m.ui.mode == modeCommand {
		st.ModeInput = m.activeCommandLine()
		st.Legend = m.commandHintsLine(m.ui.command.cmd)
	}
	if m.ui.noticeMsg != "" {
		st.StatusMessage = noticeText(m.ui.noticeMsg, m.ui.noticeType)
	}

	if logging.IsDebugMode() {
		l := m.layout()
		st.Legend += fmt.Sprintf(" | dbg term=%dx%d plot=%dx%d panel=%d",
			m.terminalWidth, m.terminalHeight, l.plotW, l.mainH, l.panelW)
	}

	return renderFooter(width, st, defaultFooterStyles())
}

func (m *model) plotView(l layout) string {
	w := max(0, l.plotW-plotStyle.GetHorizontalFrameSize())
	h := max(0, l.mainH-plotStyle.GetVerticalFrameSize())
	return plotStyle.Render(chart.Render(m.session.Frame(), w, h))
}

func (m *model) panelView(l layout) string {
	innerW := max(0, l.panelW-panelStyle.GetHorizontalFrameSize())
	innerH := max(0, l.mainH-panelStyle.GetVerticalFrameSize())
	title := panelTitleStyle.Render(truncatePlain(m.rejectedTitle(), innerW))
	body := lipgloss.JoinVertical(lipgloss.Left, title, m.panel.View())
	return panelStyle.Width(l.panelW - 1).Height(innerH).MaxHeight(l.mainH).Render(body)
}

func (m *model) View() string {
	if !m.ready {
		return "loading..."
	}

	if m.activeDialog != nil && m.activeDialog.IsVisible() {
		return dialogs.Overlay(m.activeDialog, m.terminalWidth, m.terminalHeight)
	}

	l := m.layout()
	main := m.plotView(l)
	if l.panelW > 0 {
		main = lipgloss.JoinHorizontal(lipgloss.Top, main, m.panelView(l))
	}

	parts := []string{main}
	if m.ui.limits.open {
		parts = append(parts, m.limitsDrawerView(l.contentW))
	}
	parts = append(parts, m.footerView(l.contentW))
	return appstyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}
