package edit

import (
	"fmt"
	"strings"

	"src.crispy.sh/pkg/cli/term"
	"src.crispy.sh/pkg/errutil"
	"src.crispy.sh/pkg/interp"
)

// Hands the line to the interpreter, prints the result below it and starts
// a new line after the result.
func submit(ed *Editor) error {
	line := ed.buf.String()
	res := interp.Interpret(line)
	logger.Printf("submitted %q: %v", line, res.Kind)
	if res.Kind == interp.Quit {
		return ErrTerminate
	}

	// The footer would scroll up with the output.
	if err := ed.ClearFooter(); err != nil {
		return err
	}
	s := ed.surface
	var errs []error
	for _, text := range append(strings.Split(res.Text, "\n"), ed.opts.Prompt) {
		errs = append(errs, s.Write("\n\r"), s.Clear(term.ClearToEOL), s.Write(text))
	}
	if err := errutil.Multi(errs...); err != nil {
		return fmt.Errorf("write result: %w", err)
	}

	row := ed.buf.Pos().Row + 1 + strings.Count(res.Text, "\n") + 1
	if height := ed.height(); height > 0 {
		row = min(row, height-1)
	}
	row, err := ed.scrollAboveFooter(row)
	if err != nil {
		return err
	}
	ed.buf.Clear()
	ed.buf.SetRow(row)
	if err := ed.display(); err != nil {
		return err
	}
	if ed.opts.StatusLine && ed.status != "" {
		return ed.paintStatus()
	}
	return nil
}
