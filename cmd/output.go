package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	green  = color.New(color.FgGreen)
	red    = color.New(color.FgRed)
	cyan   = color.New(color.FgCyan)
	yellow = color.New(color.FgYellow)
)

// success prints a confirmation line to stdout.
func (a *app) success(format string, args ...any) {
	green.Fprintf(a.out, format+"\n", args...)
}

// notFound reports a missing task on stderr.
func (a *app) notFound(id int) error {
	red.Fprintf(a.errOut, "Task %d not found\n", id)
	return ErrReported
}

// PrintError writes err to w unless it was already reported.
func PrintError(w io.Writer, err error) {
	if err == nil || errors.Is(err, ErrReported) {
		return
	}
	red.Fprint(w, "Error: ")
	fmt.Fprintln(w, err)
}
