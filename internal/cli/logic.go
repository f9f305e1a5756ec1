package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/spf13/afero"

	"github.com/idelchi/topfiles/internal/dirstat"
)

func logic(options dirstat.Options, stdout, stderr io.Writer) error {
	enableProgress := options.Output == "table" && !options.Debug && isTerminal(stderr)

	// Simple progress callback that prints directly to stderr
	var progressHook func(files, bytes int64)

	if enableProgress {
		// Hide cursor for in-place updates; restore on exit.
		fmt.Fprint(stderr, "\033[?25l")
		defer fmt.Fprint(stderr, "\033[?25h")

		progressHook = func(files, bytes int64) {
			msg := fmt.Sprintf("Scanning… %d files, %s",
				files, humanize.Bytes(uint64(bytes))) //nolint:gosec // Bytes is always positive
			fmt.Fprintf(stderr, "\r\033[2K%s\r", msg)
		}
	}

	stats, err := dirstat.Run(afero.NewOsFs(), options, stderr, progressHook)

	// Clear the status line
	if enableProgress {
		fmt.Fprint(stderr, "\r\033[2K\r")
	}

	if err != nil {
		return err
	}

	switch options.Output {
	case "json":
		return PrintJSON(stats.TopFiles, stdout)
	case "paths":
		return PrintPaths(stats.TopFiles, stdout)
	case "table":
		return PrintTable(stats, stdout)
	default:
		return fmt.Errorf("unknown output format: %s", options.Output)
	}
}

// isTerminal reports whether w is a file attached to a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)

	return ok && isatty.IsTerminal(f.Fd())
}
