package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes for different failure modes
const (
	ExitSuccess      = 0 // Benchmark completed and results were reported
	ExitReportFailed = 1 // Benchmark computed but the durable copy failed to write
	ExitError        = 2 // Configuration or runtime error
)

// PersistenceError indicates the benchmark completed and results were
// printed, but writing the output file failed. The computed results are
// not lost — only the durable copy is.
type PersistenceError struct {
	Message string
}

func (e *PersistenceError) Error() string {
	return e.Message
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		var persistErr *PersistenceError
		if errors.As(err, &persistErr) {
			os.Exit(ExitReportFailed)
		}

		// All other errors are configuration/runtime errors
		os.Exit(ExitError)
	}
}
