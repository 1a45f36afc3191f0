package term

import "os"

// SetupOptions controls the terminal modes enabled by Setup.
type SetupOptions struct {
	// Enable SGR mouse reporting.
	MouseCapture bool
	// Push the kitty keyboard protocol flags that report key releases.
	KittyKeyboard bool
}

// Setup sets up the terminal so that it is suitable for the Reader and
// Writer to use. It returns a function that can be used to restore the
// original terminal config.
func Setup(in, out *os.File, opts SetupOptions) (func() error, error) {
	return setup(in, out, opts)
}
