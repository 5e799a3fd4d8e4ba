// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/bureau-foundation/archetype/cmd/archetype/cli"
	"github.com/bureau-foundation/archetype/lib/config"
	"github.com/bureau-foundation/archetype/lib/docstore"
)

// cacheParams selects the cache database.
type cacheParams struct {
	cli.JSONOutput
	Config string `json:"config" flag:"config" desc:"configuration file (default: $ARCHETYPE_CONFIG)"`
	Path   string `json:"path"   flag:"cache"  desc:"reduction cache database (overrides cache.path)"`
}

// open opens the cache the parameters select.
func (p *cacheParams) open(logger *slog.Logger) (*docstore.Store, string, error) {
	cfg, err := loadConfig(p.Config, func(cfg *config.Config) {
		setIf(&cfg.Cache.Path, p.Path)
		cfg.Cache.Enabled = true
	})
	if err != nil {
		return nil, "", err
	}
	store, err := openCache(cfg, logger)
	if err != nil {
		return nil, "", err
	}
	return store, cfg.Cache.Path, nil
}

func cacheCommand() *cli.Command {
	return &cli.Command{
		Name:    "cache",
		Summary: "Manage the reduction cache",
		Description: `The reduction cache stores each reduced building keyed by the BLAKE3
digest of its model file and the reduction options. "archetype reduce"
consults it before reducing a model.`,
		Subcommands: []*cli.Command{
			cacheStatsCommand(),
			cacheListCommand(),
			cacheClearCommand(),
		},
	}
}

type cacheStatsReport struct {
	Path string `json:"path"`
	docstore.Stats
}

func cacheStatsCommand() *cli.Command {
	var params cacheParams
	return &cli.Command{
		Name:    "stats",
		Summary: "Show the number and size of cached reductions",
		Params:  func() any { return &params },
		Run: func(ctx context.Context, _ []string, logger *slog.Logger) error {
			store, path, err := params.open(logger)
			if err != nil {
				return err
			}
			defer store.Close()
			stats, err := store.Stats(ctx)
			if err != nil {
				return err
			}
			if done, err := params.EmitJSON(cacheStatsReport{Path: path, Stats: stats}); done {
				return err
			}
			fmt.Printf("%s\n  entries: %d\n  stored:  %d bytes\n  raw:     %d bytes\n",
				path, stats.Entries, stats.StoredBytes, stats.RawBytes)
			return nil
		},
	}
}

type cacheEntryReport struct {
	Key         string    `json:"key"`
	Name        string    `json:"name"`
	Source      string    `json:"source"`
	RunID       string    `json:"run_id"`
	CreatedAt   time.Time `json:"created_at"`
	Compression string    `json:"compression"`
	Size        int64     `json:"size"`
	RawSize     int64     `json:"raw_size"`
}

func cacheListCommand() *cli.Command {
	var params cacheParams
	return &cli.Command{
		Name:    "list",
		Summary: "List cached reductions, newest first",
		Params:  func() any { return &params },
		Run: func(ctx context.Context, _ []string, logger *slog.Logger) error {
			store, _, err := params.open(logger)
			if err != nil {
				return err
			}
			defer store.Close()
			entries, err := store.Entries(ctx)
			if err != nil {
				return err
			}
			reports := make([]cacheEntryReport, len(entries))
			for i, entry := range entries {
				reports[i] = cacheEntryReport{
					Key:         entry.Key.String(),
					Name:        entry.Name,
					Source:      entry.Source,
					RunID:       entry.RunID,
					CreatedAt:   entry.CreatedAt,
					Compression: entry.Compression.String(),
					Size:        entry.Size,
					RawSize:     entry.RawSize,
				}
			}
			if done, err := params.EmitJSON(reports); done {
				return err
			}
			writer := tabwriter.NewWriter(os.Stdout, 2, 0, 3, ' ', 0)
			fmt.Fprintf(writer, "KEY\tNAME\tSOURCE\tCREATED\tSIZE\n")
			for _, report := range reports {
				fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%d\n",
					report.Key[:12], report.Name, report.Source,
					report.CreatedAt.Format(time.RFC3339), report.Size)
			}
			return writer.Flush()
		},
	}
}

func cacheClearCommand() *cli.Command {
	var params cacheParams
	return &cli.Command{
		Name:    "clear",
		Summary: "Delete every cached reduction",
		Params:  func() any { return &params },
		Run: func(ctx context.Context, _ []string, logger *slog.Logger) error {
			store, path, err := params.open(logger)
			if err != nil {
				return err
			}
			defer store.Close()
			removed, err := store.Clear(ctx)
			if err != nil {
				return err
			}
			if done, err := params.EmitJSON(map[string]any{"path": path, "removed": removed}); done {
				return err
			}
			fmt.Printf("removed %d cached reduction(s) from %s\n", removed, path)
			return nil
		},
	}
}
