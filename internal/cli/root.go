// Package cli implements the visit command, which walks a list of files the way a data-join
// worker would and reports the BatchInfo stream it produces
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"github.com/zeuson0/fedlearner"
	"github.com/zeuson0/fedlearner/filelist"
	"github.com/zeuson0/fedlearner/internal/config"
	"github.com/zeuson0/fedlearner/logging"
	"github.com/zeuson0/fedlearner/runner"
	"github.com/zeuson0/fedlearner/source/jsonl"
	"github.com/zeuson0/fedlearner/source/parquet"
	"github.com/zeuson0/fedlearner/visitor"
	"github.com/zeuson0/fedlearner/wire"
	"go.uber.org/zap"
)

// NewRootCmd creates the visit command
func NewRootCmd() *cobra.Command {
	var configPath string
	flags := config.Defaults()

	cmd := &cobra.Command{
		Use:   "visit [glob...]",
		Short: "Stream fixed-size batches out of a list of files",
		Long: "visit walks an ordered list of Parquet or JSON lines files in batches and prints\n" +
			"the progress (finished, file index, batch index) reported for every batch.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Defaults()
			if configPath != "" {
				loaded, err := config.Load(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			applyFlags(cmd, &cfg, flags)
			if len(args) > 0 {
				cfg.Inputs = args
			}
			if err := config.Validate(cfg); err != nil {
				return err
			}
			log, err := logging.New(cfg.LogLevel, cfg.Development)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()
			return Visit(cmd.Context(), cfg, log, cmd.OutOrStdout())
		},
	}

	f := cmd.Flags()
	f.StringVarP(&configPath, "config", "c", "", "YAML configuration file")
	f.StringVar(&flags.Format, "format", flags.Format, "file format: parquet or jsonl")
	f.IntVarP(&flags.BatchSize, "batch-size", "b", flags.BatchSize, "rows per batch")
	f.StringSliceVar(&flags.Columns, "columns", nil, "columns to read (default all)")
	f.BoolVar(&flags.ConsumeRemainder, "consume-remainder", false, "merge the trailing batch of each file into the previous one")
	f.Int64Var(&flags.FirstIndex, "first-index", 0, "index assigned to the first file")
	f.IntVar(&flags.Shards, "shards", flags.Shards, "number of disjoint file partitions")
	f.IntVar(&flags.Parallelism, "parallelism", flags.Parallelism, "number of partitions visited at once")
	f.StringVarP(&flags.Output, "output", "o", flags.Output, "output: text, wire or none")
	f.StringVar(&flags.LogLevel, "log-level", flags.LogLevel, "log level")
	f.BoolVar(&flags.Development, "dev", false, "human-readable logs")
	return cmd
}

// applyFlags copies the flags which were set explicitly over cfg
func applyFlags(cmd *cobra.Command, cfg *config.Config, flags config.Config) {
	f := cmd.Flags()
	if f.Changed("format") {
		cfg.Format = flags.Format
	}
	if f.Changed("batch-size") {
		cfg.BatchSize = flags.BatchSize
	}
	if f.Changed("columns") {
		cfg.Columns = flags.Columns
	}
	if f.Changed("consume-remainder") {
		cfg.ConsumeRemainder = flags.ConsumeRemainder
	}
	if f.Changed("first-index") {
		cfg.FirstIndex = flags.FirstIndex
	}
	if f.Changed("shards") {
		cfg.Shards = flags.Shards
	}
	if f.Changed("parallelism") {
		cfg.Parallelism = flags.Parallelism
	}
	if f.Changed("output") {
		cfg.Output = flags.Output
	}
	if f.Changed("log-level") {
		cfg.LogLevel = flags.LogLevel
	}
	if f.Changed("dev") {
		cfg.Development = flags.Development
	}
}

// Visit runs one traversal pass as described by cfg, writing progress to out
func Visit(ctx context.Context, cfg config.Config, log *zap.Logger, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	files, err := filelist.FromGlobs(cfg.Inputs, cfg.FirstIndex)
	if err != nil {
		return err
	}
	log.Info("visiting files",
		zap.Int("files", files.Len()),
		zap.Uint64("fingerprint", files.Fingerprint()),
		zap.String("format", cfg.Format),
		zap.Int("batch_size", cfg.BatchSize))
	shards, err := files.Shard(cfg.Shards)
	if err != nil {
		return err
	}

	opener := openerFor(cfg.Format)
	var tally runner.Tally
	var outLock sync.Mutex
	build := func(shard int, files *filelist.List) (fedlearner.Visitor, error) {
		return visitor.Create(files, opener, &visitor.Conf{
			BatchSize:        cfg.BatchSize,
			Columns:          cfg.Columns,
			ConsumeRemainder: cfg.ConsumeRemainder,
			Logger:           log.With(zap.Int("shard", shard)),
		})
	}
	consume := func(shard int, group fedlearner.BatchGroup, info fedlearner.BatchInfo) error {
		tally.Add(group, info)
		outLock.Lock()
		defer outLock.Unlock()
		switch cfg.Output {
		case config.OutputText:
			_, err := fmt.Fprintf(out, "shard=%d batch_idx=%d file_idx=%d rows=%d batches=%d finished=%t\n",
				shard, info.BatchIdx, info.FileIdx, group.NumRows(), len(group), info.Finished)
			return err
		case config.OutputWire:
			return wire.WriteDelimitedBatchInfo(out, info)
		}
		return nil
	}
	if err := runner.Run(ctx, shards, cfg.Parallelism, build, consume); err != nil {
		return err
	}

	summary := tally.Summary()
	log.Info("visit complete",
		zap.Int64("batches", summary.Batches),
		zap.Int64("rows", summary.Rows),
		zap.Int64("finished_files", summary.FinishedFiles),
		zap.Int64("merged_groups", summary.MergedGroups))
	if cfg.Output == config.OutputText {
		_, err := fmt.Fprintf(out, "total batches=%d rows=%d finished_files=%d merged=%d\n",
			summary.Batches, summary.Rows, summary.FinishedFiles, summary.MergedGroups)
		return err
	}
	return nil
}

func openerFor(format string) fedlearner.FileOpener {
	switch strings.ToLower(format) {
	case config.FormatJSONL:
		return jsonl.CreateSource(nil)
	default:
		return parquet.CreateSource(nil)
	}
}
