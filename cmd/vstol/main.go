// Package main provides the vstol command-line tool: one cobra sub-command
// per engine operation, plus config management and boundary stubs for the
// conversion/annotation/visualization surface.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/pirl-unc/vstol-go/internal/cachedb"
	"github.com/pirl-unc/vstol-go/internal/vstolerr"
)

// Exit codes: 0 on success, non-zero on any failure.
const (
	ExitSuccess = 0
	ExitError   = 1
	ExitUsage   = 2
)

// runtime bundles the dependencies every sub-command needs, built once in
// the root command's PersistentPreRunE and threaded down explicitly,
// never held in a package-level singleton.
type runtime struct {
	log   *zap.Logger
	cache *cachedb.Store
}

func (r *runtime) Close() {
	if r.cache != nil {
		r.cache.Close()
	}
}

func main() {
	os.Exit(run())
}

func run() int {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		printError(err)
		return ExitError
	}
	return ExitSuccess
}

// printError writes the CLI's one-line diagnostic naming the error kind
// and the offending record/predicate. No output file is produced on error.
func printError(err error) {
	if verr, ok := err.(*vstolerr.Error); ok {
		fmt.Fprintf(os.Stderr, "error: %s\n", verr.Error())
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
}
