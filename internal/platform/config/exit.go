package config

import (
	"fmt"
	"os"
)

// Exitf reports a fatal startup error on stderr and exits with code 1. The
// short-lived Abacus CLIs use it where the long-running services go through
// log.Fatalf.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
