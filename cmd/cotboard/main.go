package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spboyer/cotboard/internal/cot"
	"github.com/spboyer/cotboard/internal/models"
)

// Exit codes for different failure modes
const (
	ExitSuccess   = 0 // View rendered or server stopped cleanly
	ExitDataError = 1 // Published reports are inconsistent
	ExitError     = 2 // Configuration, fetch or runtime error
)

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// exitCode separates data-integrity failures from everything else.
func exitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, models.ErrUnknownModel), errors.Is(err, cot.ErrInconsistentTasks):
		return ExitDataError
	default:
		return ExitError
	}
}
