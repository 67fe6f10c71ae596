// Copyright 2025 The WordServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the wordcheck completion and spell checking server and CLI.

wordcheck loads a plain text frequency dictionary into a prefix trie, a bloom
filter, a frequency table and a BK-tree, and answers prefix completions,
membership checks and edit distance corrections. Results are cached in an LRU
keyed by query kind and canonical input.

# Usage

Start the msgpack IPC server on stdin/stdout:

	wordcheck serve

Try completions and corrections interactively:

	wordcheck cli

One shot queries:

	wordcheck complete prog -l 5
	wordcheck check recieve
	wordcheck correct recieve -m 2
	wordcheck batch queries.txt --mode spell

# Dictionary

One entry per line, a word followed by an optional integer weight:

	program 4500
	programs 410
	receive

Words are lowercased and reduced to ASCII letters before indexing. Lines with a
non numeric or negative weight, or of 1 MiB or more, are skipped with a warning.

# Configuration

The config file lives at ~/.config/wordcheck/config.toml and is created with
defaults on first run:

	[engine]
	cache_capacity = 100
	filter_bits = 10000
	filter_hashes = 4
	table_buckets = 1000
	invalidate_on_update = false

	[query]
	default_limit = 10
	max_limit = 64
	max_distance = 2
	min_prefix = 1
	max_prefix = 60

	[dict]
	path = "data/dictionary.txt"

With invalidate_on_update set, recording a word use drops the cached completions
for every prefix of that word and all cached corrections.

# IPC Protocol

Requests and responses are MessagePack maps, one per message:

	{"id": "r1", "op": "complete", "q": "prog", "l": 5}
	{"id": "r1", "s": [{"w": "program", "r": 1}, {"w": "programs", "r": 2}], "c": 2, "t": 42}

	{"id": "r2", "op": "correct", "q": "recieve", "d": 2}
	{"id": "r2", "q": "recieve", "w": ["relieve", "receive"], "c": 2, "t": 88}

The server writes {"status": "ready"} once the dictionary is loaded. Logs go to
stderr.
*/
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

const (
	Version = "0.1.0"
	AppName = "wordcheck"
	gh      = "https://github.com/bastiangx/wordcheck"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

func main() {
	sigHandler()

	var app appFlags
	rootCmd := &cobra.Command{
		Use:           AppName,
		Short:         "Fast word completions and spelling corrections",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if app.debug {
				log.SetLevel(log.DebugLevel)
				log.SetReportTimestamp(true)
			} else {
				log.SetLevel(log.WarnLevel)
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&app.configPath, "config", "", "Path to a custom config.toml")
	rootCmd.PersistentFlags().StringVar(&app.dictPath, "dict", "", "Dictionary file (overrides [dict] path)")
	rootCmd.PersistentFlags().BoolVarP(&app.debug, "debug", "d", false, "Toggle debug mode")

	rootCmd.AddCommand(createServeCmd(&app))
	rootCmd.AddCommand(createCliCmd(&app))
	rootCmd.AddCommand(createCompleteCmd(&app))
	rootCmd.AddCommand(createCheckCmd(&app))
	rootCmd.AddCommand(createCorrectCmd(&app))
	rootCmd.AddCommand(createStatsCmd(&app))
	rootCmd.AddCommand(createBatchCmd(&app))
	rootCmd.AddCommand(createVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
