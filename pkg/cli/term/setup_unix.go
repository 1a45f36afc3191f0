//go:build unix

package term

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"src.crispy.sh/pkg/errutil"
)

func setup(in, out *os.File, opts SetupOptions) (func() error, error) {
	// On Unix, use input file for changing termios. All fds pointing to the
	// same terminal are equivalent.
	fd := int(in.Fd())
	saved, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("can't set up terminal attribute: %w", err)
	}

	var errSetupVT error
	if err := setupVT(out, opts); err != nil {
		errSetupVT = fmt.Errorf("can't setup VT: %w", err)
	}

	restore := func() error {
		return errutil.Multi(restoreVT(out, opts), term.Restore(fd, saved))
	}
	return restore, errSetupVT
}

func setupVT(out *os.File, opts SetupOptions) error {
	seq := blinkingBlockCursor
	if opts.MouseCapture {
		seq += enableMouse
	}
	if opts.KittyKeyboard {
		seq += pushKittyFlags
	}
	_, err := out.WriteString(seq)
	return err
}

func restoreVT(out *os.File, opts SetupOptions) error {
	seq := defaultCursor + showCursor
	if opts.MouseCapture {
		seq += disableMouse
	}
	if opts.KittyKeyboard {
		seq += popKittyFlags
	}
	_, err := out.WriteString(seq)
	return err
}
