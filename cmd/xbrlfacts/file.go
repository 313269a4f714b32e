package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Run executes the file command.
func (c *FileCmd) Run(deps *Dependencies) error {
	opts := outputOptions{Preview: c.Preview, Force: c.Force}

	var failed int
	for _, p := range c.Paths {
		name := strings.TrimSuffix(filepath.Base(p), filepath.Ext(p))

		data, err := os.ReadFile(p)
		if err != nil {
			failed++
			fmt.Fprintf(deps.Stderr, "error: %v\n", err)
			continue
		}

		result, err := deps.Ingester.Ingest(data)
		if err != nil {
			failed++
			fmt.Fprintf(deps.Stderr, "error: %s: %s\n", p, describe(err))
			continue
		}

		if err := emit(deps, name, result, opts); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s: %s\n", p, describe(err))
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d archives failed", failed, len(c.Paths))
	}
	return nil
}
