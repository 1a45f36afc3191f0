// Package shell is the entry point for the REPL of crispy.
package shell

import (
	"errors"
	"fmt"
	"os"

	"src.crispy.sh/pkg/config"
	"src.crispy.sh/pkg/edit"
	"src.crispy.sh/pkg/errutil"
	"src.crispy.sh/pkg/killring"
	"src.crispy.sh/pkg/logutil"
	"src.crispy.sh/pkg/prog"
	"src.crispy.sh/pkg/sys"
)

var logger = logutil.GetLogger("[shell] ")

// Messages shown when the REPL starts and ends.
const (
	Welcome  = "Welcome to the crispy repl 😁!"
	Farewell = "Bye 😁!"
)

var errNotTerminal = errors.New("crispy must be run in a terminal")

// Program is the REPL subprogram.
type Program struct{}

func (Program) Run(fds [3]*os.File, f *prog.Flags, args []string) error {
	if len(args) > 0 {
		return prog.BadUsage("crispy takes no arguments")
	}
	cfg, err := loadConfig(f)
	if err != nil {
		return err
	}
	if f.Log == "" && cfg.Log != "" {
		if err := logutil.SetOutputFile(cfg.Log); err != nil {
			fmt.Fprintln(fds[2], "Warning:", err)
		}
	}
	if !sys.IsATTY(fds[0].Fd()) {
		return errNotTerminal
	}

	kills, err := openKillRing(cfg.KillRing)
	if err != nil {
		return err
	}
	defer kills.Close()

	err = interact(fds, cfg, kills)
	if err != nil {
		logger.Println("session failed:", err)
		fmt.Fprintf(fds[2], "Error: %v\r\n", err)
	}
	fmt.Fprintf(fds[1], "\n%s\n", Farewell)
	if err != nil {
		return prog.Exit(1)
	}
	return nil
}

// Reads the rc file chosen by the flags and applies the flags that override
// it.
func loadConfig(f *prog.Flags) (config.Config, error) {
	var cfg config.Config
	var err error
	switch {
	case f.NoRc:
		cfg = config.Default()
	case f.RC != "":
		cfg, err = config.Load(f.RC)
	default:
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		return config.Config{}, fmt.Errorf("can't load rc file: %w", err)
	}
	if f.Backend != "" {
		cfg.Backend = f.Backend
	}
	if f.Kitty.Given {
		cfg.KittyKeyboard = f.Kitty.Value
	}
	if f.Debug.Given {
		cfg.Debug = f.Debug.Value
	}
	if f.Log != "" {
		cfg.Log = f.Log
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func openKillRing(cfg config.KillRing) (killring.Ring, error) {
	if cfg.DB == "" {
		return killring.NewMemory(cfg.Size), nil
	}
	return killring.OpenDB(cfg.DB, cfg.Size)
}

// Runs one editor session. The terminal is restored on every path out.
func interact(fds [3]*os.File, cfg config.Config, kills killring.Ring) (err error) {
	t, restore, err := openTerminal(fds, cfg)
	if err != nil {
		return err
	}
	defer func() {
		err = errutil.Multi(err, restore())
	}()
	defer t.Close()
	defer watchSignals(t)()

	if err := errutil.Multi(t.Write(Welcome+"\r\n"), t.Flush()); err != nil {
		return fmt.Errorf("write welcome message: %w", err)
	}
	ed := edit.NewEditor(t, t, kills, edit.Options{
		Prompt: cfg.Prompt, StatusLine: cfg.StatusLine, Debug: cfg.Debug})
	return errutil.Multi(ed.Run(), ed.ClearFooter())
}
