/*
 * Jacobin VM - A Java virtual machine
 * Copyright (c) 2021-4 by the Jacobin authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package inspect

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the step debugger's key bindings, following
// mabhi256-jdiag's KeyMap/ShortHelp/FullHelp convention.
type keyMap struct {
	Step  key.Binding
	Run   key.Binding
	Pause key.Binding
	Quit  key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Step, k.Run, k.Pause, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Step, k.Run, k.Pause, k.Quit},
	}
}

var keys = keyMap{
	Step:  key.NewBinding(key.WithKeys("s", "right", "enter"), key.WithHelp("s/→/enter", "step one opcode")),
	Run:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "run to completion")),
	Pause: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause autorun")),
	Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}
