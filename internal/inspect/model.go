/*
 * Jacobin VM - A Java virtual machine
 * Copyright (c) 2021-4 by the Jacobin authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package inspect

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"jacobin/jvm"
	"jacobin/types"
)

// maxDepthHistory bounds the operand-stack-depth sparkline's backlog, so a
// long-running program's history render stays a fixed width.
const maxDepthHistory = 120

// model is the Bubble Tea model driving the step debugger: it owns a
// jvm.Session and advances it one opcode per Step key press, or
// continuously while autorun is true, following mabhi256-jdiag's
// Model/Init/Update/View shape (internal/monitor/tui_model.go).
type model struct {
	session *jvm.Session
	help    help.Model

	width int

	autorun bool
	done    bool
	err     error

	depthHistory []float64
}

func initialModel(s *jvm.Session) model {
	return model{
		session: s,
		help:    help.New(),
		width:   80,
	}
}

type autorunTickMsg time.Time

func scheduleAutorun() tea.Cmd {
	return tea.Tick(6*time.Millisecond, func(t time.Time) tea.Msg {
		return autorunTickMsg(t)
	})
}

func (m model) Init() tea.Cmd {
	return nil
}

// step advances the session one opcode and records the resulting operand
// stack depth for the sparkline.
func (m *model) step() {
	finished, err := m.session.Step()
	if f := m.session.CurrentFrame(); f != nil {
		m.depthHistory = append(m.depthHistory, float64(len(f.OpStack)))
		if len(m.depthHistory) > maxDepthHistory {
			m.depthHistory = m.depthHistory[len(m.depthHistory)-maxDepthHistory:]
		}
	}
	if finished {
		m.done = true
		m.err = err
		m.autorun = false
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case autorunTickMsg:
		if !m.autorun || m.done {
			return m, nil
		}
		m.step()
		if m.done {
			return m, nil
		}
		return m, scheduleAutorun()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Step):
			if !m.done {
				m.autorun = false
				m.step()
			}
			return m, nil
		case key.Matches(msg, keys.Run):
			if !m.done {
				m.autorun = true
				return m, scheduleAutorun()
			}
			return m, nil
		case key.Matches(msg, keys.Pause):
			m.autorun = false
			return m, nil
		}
	}
	return m, nil
}

func (m model) View() string {
	var b strings.Builder

	status := goodStyle.Render("running")
	if m.done {
		if m.err != nil {
			status = criticalStyle.Render("stopped: " + m.err.Error())
		} else {
			status = goodStyle.Render("finished")
		}
	} else if m.autorun {
		status = warningStyle.Render("autorun")
	}

	b.WriteString(titleStyle.Render(fmt.Sprintf("jacobin inspect — step %d", m.session.Steps)))
	b.WriteString("  ")
	b.WriteString(status)
	b.WriteString("\n\n")

	f := m.session.CurrentFrame()
	if f == nil {
		b.WriteString(mutedStyle.Render("no active frame"))
		b.WriteString("\n")
	} else {
		op, name, ok := m.session.NextOpcode()
		nextOp := mutedStyle.Render("(at end of code)")
		if ok {
			nextOp = infoStyle.Render(fmt.Sprintf("0x%02x %s", op, name))
		}

		header := fmt.Sprintf("%s.%s  pc=%d  next=%s", f.ClName, f.MethName, f.PC, nextOp)
		b.WriteString(boxStyle.Render(header))
		b.WriteString("\n\n")

		b.WriteString(textStyle.Render("operand stack: "))
		b.WriteString(renderValues(f.OpStack))
		b.WriteString("\n")

		b.WriteString(textStyle.Render("locals:        "))
		b.WriteString(renderValues(f.Locals))
		b.WriteString("\n\n")
	}

	if len(m.depthHistory) > 1 {
		b.WriteString(mutedStyle.Render("stack depth: "))
		b.WriteString(createSparkline(m.depthHistory, maxDepthHistory))
		b.WriteString("\n\n")
	}

	b.WriteString(helpStyle.Render(m.help.View(keys)))
	return b.String()
}

func renderValues(vals []types.Value) string {
	if len(vals) == 0 {
		return mutedStyle.Render("(empty)")
	}
	parts := make([]string, 0, len(vals))
	for _, v := range vals {
		parts = append(parts, renderValue(v))
	}
	return strings.Join(parts, " ")
}

func renderValue(v types.Value) string {
	switch v.Tag() {
	case types.Int:
		return fmt.Sprintf("i:%d", v.Int())
	case types.Long:
		return fmt.Sprintf("l:%d", v.Long())
	case types.Float:
		return fmt.Sprintf("f:%g", v.Float())
	case types.Double:
		return fmt.Sprintf("d:%g", v.Double())
	case types.Reference:
		if v.IsNull() {
			return "ref:null"
		}
		return fmt.Sprintf("ref:%d", v.Reference())
	case types.ReturnAddress:
		return fmt.Sprintf("ret:%d", v.ReturnAddress())
	default:
		return "?"
	}
}

// createSparkline renders a block-character history bar, grounded on
// mabhi256-jdiag/utils/styles.go's CreateSparkline, adapted to take the
// trailing portion of a longer history rather than requiring the caller to
// pre-truncate it.
func createSparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}

	lo, hi := values[0], values[0]
	for _, v := range values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if hi == lo {
		return lipgloss.NewStyle().Foreground(infoColor).Render(strings.Repeat("─", len(values)))
	}

	chars := []string{"▁", "▂", "▃", "▄", "▅", "▆", "▇", "█"}
	var out strings.Builder
	for _, v := range values {
		normalized := (v - lo) / (hi - lo)
		idx := int(normalized * float64(len(chars)-1))
		if idx >= len(chars) {
			idx = len(chars) - 1
		}
		out.WriteString(chars[idx])
	}
	return infoStyle.Render(out.String())
}
