//go:build unix

package shell

import (
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sys/unix"
)

// Stops the terminal on SIGTERM, SIGHUP and SIGINT, so that the session loop
// ends and the terminal gets restored. The returned function stops watching.
func watchSignals(t interface{ Close() }) func() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGHUP, syscall.SIGINT)
	done := make(chan struct{})
	go func() {
		select {
		case sig := <-sigCh:
			logger.Println("signal", unix.SignalName(sig.(syscall.Signal)))
			t.Close()
		case <-done:
		}
	}()
	return func() {
		signal.Stop(sigCh)
		close(done)
	}
}
