// Copyright © 2025 Scrollkit contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/scrollview/main.go
// Summary: Demo host for the scroll engine. Views a syntax-highlighted file
// in a virtualized list with a custom scrollbar, wheel inertia, click/drag
// navigation, and scroll position restore across runs.
// Usage: scrollview [flags] <file>

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"golang.org/x/term"

	"github.com/framegrace/scrollkit/config"
	"github.com/framegrace/scrollkit/session"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	fs := flag.NewFlagSet("scrollview", flag.ContinueOnError)
	styleName := fs.String("style", "catppuccin-mocha", "Chroma style for highlighting")
	dbPath := fs.String("positions", "", "Scroll position database (default: <user-config>/scrollkit/positions.db)")
	fromTop := fs.Bool("from-top", false, "Ignore any saved scroll position")
	if err := fs.Parse(os.Args[1:]); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: scrollview [flags] <file>")
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("scrollview needs a terminal")
	}

	path, err := filepath.Abs(fs.Arg(0))
	if err != nil {
		return err
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	cfg := config.Load()
	if err := config.Err(); err != nil {
		log.Printf("[CONFIG] using defaults: %v", err)
	}

	store, err := openStore(*dbPath)
	if err != nil {
		// The viewer works without persistence; say so and move on.
		log.Printf("[SESSION] position store unavailable: %v", err)
		store = nil
	} else {
		defer store.Close()
	}

	lines := colorize(path, string(src), *styleName)
	app := newApp(path, lines, cfg, store, !*fromTop)
	return app.run()
}

func openStore(override string) (*session.Store, error) {
	path := override
	if path == "" {
		root, err := os.UserConfigDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(root, "scrollkit", "positions.db")
	}
	return session.Open(path)
}
