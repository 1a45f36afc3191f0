package shell

import (
	"fmt"
	"os"

	"src.crispy.sh/pkg/cli/tcellterm"
	"src.crispy.sh/pkg/cli/term"
	"src.crispy.sh/pkg/config"
	"src.crispy.sh/pkg/edit"
	"src.crispy.sh/pkg/errutil"
)

// A terminal backend: an event source and a surface that can be stopped.
type terminal interface {
	edit.EventSource
	term.Surface
	// Close makes the event source return term.ErrStopped.
	Close()
}

// Acquires the terminal. The returned function releases every mode that was
// acquired; it is non-nil whenever the error is nil.
func openTerminal(fds [3]*os.File, cfg config.Config) (terminal, func() error, error) {
	opts := term.SetupOptions{
		MouseCapture: cfg.MouseCapture, KittyKeyboard: cfg.KittyKeyboard}
	switch cfg.Backend {
	case config.BackendTcell:
		return tcellterm.Open(opts)
	case config.BackendVT:
		restore, err := term.Setup(fds[0], fds[1], opts)
		if err != nil {
			if restore == nil {
				return nil, nil, err
			}
			// Raw mode is on, only some VT sequence failed.
			logger.Println(err)
		}
		tty, err := term.NewTTY(fds[0], fds[1], cfg.KittyKeyboard)
		if err != nil {
			return nil, nil, errutil.Multi(err, restore())
		}
		return tty, restore, nil
	}
	return nil, nil, fmt.Errorf("unknown backend %q", cfg.Backend)
}
