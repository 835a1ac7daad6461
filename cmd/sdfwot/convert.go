package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/urmzd/sdfwot/pkg/config"
	"github.com/urmzd/sdfwot/pkg/convert"
	"github.com/urmzd/sdfwot/pkg/db"
	"github.com/urmzd/sdfwot/pkg/document"
)

type convertFlags struct {
	target string
	outDir string
	globs  []string
	watch  string
	record bool
	dbPath string
}

func convertCmd(global *globalFlags) *cobra.Command {
	flags := &convertFlags{}

	cmd := &cobra.Command{
		Use:   "convert <input> [output|dir]",
		Short: "Convert an SDF or WoT file into the other format",
		Long: `Convert reads an SDF model or WoT Thing Model and writes the other format.

The target is taken from --target, then from the output file suffix, then
from the configuration (tm by default for SDF input). Thing Descriptions
cannot be converted back to SDF.

With --glob every matching file is converted; with --watch the directory is
watched and changed files are converted until interrupted.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(flags.globs) > 0 || flags.watch != "" {
				if len(args) > 0 {
					return errors.New("positional arguments cannot be combined with --glob or --watch")
				}
				return nil
			}
			if len(args) < 1 || len(args) > 2 {
				return errors.New("requires an input file and an optional output file")
			}
			if _, err := document.KindFromPath(args[0]); err != nil {
				return err
			}
			if len(args) == 2 && !isDir(args[1]) {
				if _, err := document.KindFromPath(args[1]); err != nil {
					return err
				}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(global)
			if err != nil {
				return err
			}
			return runConvert(cmd.Context(), cfg, flags, args)
		},
	}

	cmd.Flags().StringVarP(&flags.target, "target", "t", "", "Target kind (sdf, tm or td)")
	cmd.Flags().StringVarP(&flags.outDir, "out-dir", "o", "", "Directory for converted files (default: next to the input)")
	cmd.Flags().StringArrayVarP(&flags.globs, "glob", "g", nil, "Convert every file matching the pattern (supports **)")
	cmd.Flags().StringVarP(&flags.watch, "watch", "w", "", "Watch a directory and convert files as they change")
	cmd.Flags().BoolVar(&flags.record, "record", false, "Record conversions in the history database")
	cmd.Flags().StringVar(&flags.dbPath, "db", "", "Path to database file (default: ~/.config/sdfwot/sdfwot.db)")

	return cmd
}

func runConvert(ctx context.Context, cfg *config.Config, flags *convertFlags, args []string) error {
	sdfTarget, err := cfg.Target()
	if err != nil {
		return err
	}
	var target document.Kind
	if flags.target != "" {
		if target, err = document.ParseKind(flags.target); err != nil {
			return err
		}
	} else if len(args) == 2 && !isDir(args[1]) {
		target, _ = document.KindFromPath(args[1])
	}

	opts := []convert.Option{
		convert.WithIndent(cfg.Output.Indent),
		convert.WithSDFTarget(sdfTarget),
	}
	if flags.record {
		database, profileID, err := openHistory(ctx, flags.dbPath)
		if err != nil {
			return err
		}
		defer func() { _ = database.Close() }()
		opts = append(opts, convert.WithHistory(database.Conversions(), profileID))
	}
	svc := convert.NewService(document.NewLoader(), opts...)

	outDir := flags.outDir
	if outDir == "" {
		outDir = cfg.Output.Dir
	}

	switch {
	case flags.watch != "":
		return runWatch(ctx, svc, cfg, flags.watch, outDir, target)

	case len(flags.globs) > 0:
		results, err := svc.ConvertGlob(ctx, outDir, target, flags.globs...)
		if err != nil {
			return err
		}
		var failed int
		for _, r := range results {
			if r.Err != nil {
				failed++
			}
		}
		log.Info().Int("converted", len(results)-failed).Int("failed", failed).Msg("Batch conversion finished")
		if failed > 0 {
			return fmt.Errorf("%d of %d files failed to convert", failed, len(results))
		}
		return nil

	default:
		out := ""
		if len(args) == 2 {
			out = args[1]
		} else if outDir != "" {
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
			out = outDir
		}
		_, err := svc.ConvertFile(ctx, args[0], out, target)
		return err
	}
}

func runWatch(ctx context.Context, svc *convert.Service, cfg *config.Config, dir, outDir string, target document.Kind) error {
	sources, err := cfg.WatchSources()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	w, err := svc.NewWatcher(convert.WatchConfig{
		Dir:      dir,
		OutDir:   outDir,
		Sources:  sources,
		Target:   target,
		Debounce: cfg.Watch.Debounce,
	})
	if err != nil {
		return err
	}
	return w.Run(ctx)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// openHistory opens and prepares the database and returns the active
// profile's ID.
func openHistory(ctx context.Context, path string) (*db.DB, *int64, error) {
	database, err := db.Open(path)
	if err != nil {
		return nil, nil, err
	}
	if err := database.Migrate(ctx); err != nil {
		_ = database.Close()
		return nil, nil, fmt.Errorf("failed to run database migrations: %w", err)
	}
	needsBootstrap, err := database.NeedsBootstrap(ctx)
	if err != nil {
		_ = database.Close()
		return nil, nil, fmt.Errorf("failed to check bootstrap status: %w", err)
	}
	if needsBootstrap {
		if err := database.Bootstrap(ctx); err != nil {
			_ = database.Close()
			return nil, nil, fmt.Errorf("failed to bootstrap database: %w", err)
		}
	}
	active, err := database.ActiveConfig(ctx)
	if err != nil {
		_ = database.Close()
		return nil, nil, err
	}
	return database, &active.Profile.ID, nil
}
