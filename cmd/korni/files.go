package main

import (
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"
)

// processFiles runs work for each file in args concurrently, one goroutine
// per file, then prints each file's buffered output in argument order so
// concurrency never reorders what the terminal sees. If any file's work
// returns an error, processFiles prints that error to stderr in the
// file's argument position, prints nothing to stdout for that file, and
// returns a non-nil error so the caller can set a failing exit code.
func processFiles(args []string, work func(filename string, content []byte) (string, error)) error {
	outputs := make([]string, len(args))
	errs := make([]error, len(args))

	var g errgroup.Group
	for i, filename := range args {
		i, filename := i, filename
		g.Go(func() error {
			content, err := os.ReadFile(filename)
			if err != nil {
				errs[i] = fmt.Errorf("%s: %w", filename, err)
				return nil
			}
			out, err := work(filename, content)
			if err != nil {
				errs[i] = fmt.Errorf("%s: %w", filename, err)
				return nil
			}
			outputs[i] = out
			return nil
		})
	}
	_ = g.Wait()

	var failed bool
	for i := range args {
		if errs[i] != nil {
			fmt.Fprintln(os.Stderr, errs[i])
			failed = true
			continue
		}
		if outputs[i] != "" {
			fmt.Print(outputs[i])
		}
	}

	if failed {
		return fmt.Errorf("one or more files failed")
	}
	return nil
}
