package util

import (
	"fmt"
	"os"
	"strings"

	"github.com/bedtime-cli/bedtime/filesystem"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// TerminalSize is the size of the terminal attached to stdout.
func TerminalSize() (width, height int, err error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// PrintErasable prints msg without a newline. Calling erase blanks it out again.
func PrintErasable(msg string) (erase func()) {
	fmt.Print("\r" + msg)
	return func() {
		fmt.Print("\r" + strings.Repeat(" ", lipgloss.Width(msg)) + "\r")
	}
}

// Delete removes path, including everything below it.
// A missing path is an error.
func Delete(path string) error {
	if _, err := filesystem.API().Stat(path); err != nil {
		return err
	}
	return filesystem.API().RemoveAll(path)
}
