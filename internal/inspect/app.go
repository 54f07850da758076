/*
 * Jacobin VM - A Java virtual machine
 * Copyright (c) 2021-4 by the Jacobin authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package inspect

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"jacobin/jvm"
)

// Run loads mainClass, builds a step-debugger session for it, and drives a
// full-screen Bubble Tea program over it until the user quits or the
// program under inspection finishes, mirroring the teacher's cmd package
// convention of a package-level Run/Execute entrypoint called from cmd/.
func Run(mainClass string, args []string) error {
	session, err := jvm.NewSession(mainClass, args)
	if err != nil {
		return fmt.Errorf("starting session: %w", err)
	}

	p := tea.NewProgram(initialModel(session), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
