// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/bureau-foundation/archetype/cmd/archetype/cli"
	"github.com/bureau-foundation/archetype/lib/compress"
	"github.com/bureau-foundation/archetype/lib/config"
	"github.com/bureau-foundation/archetype/lib/docfile"
	"github.com/bureau-foundation/archetype/lib/model"
	"github.com/bureau-foundation/archetype/lib/reduce"
	"github.com/bureau-foundation/archetype/lib/umi"
)

type reduceParams struct {
	cli.Verbosity
	cli.JSONOutput

	Output        string `json:"output"         flag:"output,o"       desc:"library document path; its extensions select the encoding"`
	Name          string `json:"name"           flag:"name"           desc:"library name (default: output file name)"`
	Parallel      int    `json:"parallel"       flag:"parallel,p"     desc:"concurrent reductions (default: reduce.parallel, else one per CPU)"`
	AllZones      bool   `json:"all_zones"      flag:"all-zones,z"    desc:"also write the zones each template was reduced from"`
	ZoneWeight    string `json:"zone_weight"    flag:"zone-weight"    desc:"zone weighting: volume or area"`
	CoreDetection string `json:"core_detection" flag:"core-detection" desc:"core classification: geometry or table"`
	StrictNames   bool   `json:"strict_names"   flag:"strict-names"   desc:"fail on entities that share a name but differ in value"`
	Format        string `json:"format"         flag:"format"         desc:"document format without --output: json or cbor"`
	Compression   string `json:"compression"    flag:"compression"    desc:"document compression without --output: none, zstd, or lz4"`
	Config        string `json:"config"         flag:"config"         desc:"configuration file (default: $ARCHETYPE_CONFIG)"`
	Cache         string `json:"cache"          flag:"cache"          desc:"reduction cache database (overrides cache.path)"`
	NoCache       bool   `json:"no_cache"       flag:"no-cache"       desc:"reduce every model, ignoring the cache"`
	Weather       string `json:"weather"        flag:"weather"        desc:"weather file reference recorded on every model"`
}

func reduceCommand() *cli.Command {
	var params reduceParams
	return &cli.Command{
		Name:    "reduce",
		Summary: "Reduce building models to two-zone templates",
		Description: `Reduce each building model to a building template with one core
and one perimeter zone, and write every template to one library
document.

Models are reduced concurrently. A model that fails is reported and
skipped; the command fails only when every model failed. Reductions
are cached by model content and options, so rerunning over unchanged
models rebuilds their templates from the cache.`,
		Usage:  "archetype reduce [flags] <model.json>...",
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			return runReduce(ctx, &params, args, logger)
		},
		Examples: []cli.Example{
			{
				Description: "Reduce a directory of models with area weighting",
				Command:     "archetype reduce --zone-weight area -o offices.json models/*.json",
			},
			{
				Description: "Keep the reduced-from zones and write compressed CBOR",
				Command:     "archetype reduce -z -o offices.cbor.zst models/*.json",
			},
		},
	}
}

// buildingReport is the outcome of one model.
type buildingReport struct {
	Path       string  `json:"path"`
	Template   string  `json:"template,omitempty"`
	Cached     bool    `json:"cached"`
	DurationMS float64 `json:"duration_ms"`
	Error      string  `json:"error,omitempty"`
}

type reduceReport struct {
	Output    string           `json:"output,omitempty"`
	Library   string           `json:"library"`
	Weather   string           `json:"weather,omitempty"`
	Templates int              `json:"templates"`
	Failed    int              `json:"failed"`
	Buildings []buildingReport `json:"buildings"`
}

func runReduce(ctx context.Context, params *reduceParams, args []string, logger *slog.Logger) error {
	if len(args) == 0 {
		return fmt.Errorf("at least one model path is required")
	}

	cfg, err := loadConfig(params.Config, func(cfg *config.Config) {
		setIf(&cfg.Reduce.ZoneWeight, params.ZoneWeight)
		setIf(&cfg.Reduce.CoreDetection, params.CoreDetection)
		setIf(&cfg.Output.Format, params.Format)
		setIf(&cfg.Output.Compression, params.Compression)
		setIf(&cfg.Cache.Path, params.Cache)
		if params.Parallel > 0 {
			cfg.Reduce.Parallel = params.Parallel
		}
		cfg.Reduce.AllZones = cfg.Reduce.AllZones || params.AllZones
		cfg.Reduce.StrictNames = cfg.Reduce.StrictNames || params.StrictNames
		cfg.Cache.Enabled = cfg.Cache.Enabled && !params.NoCache
	})
	if err != nil {
		return err
	}

	zoneWeight, err := umi.ParseZoneWeight(cfg.Reduce.ZoneWeight)
	if err != nil {
		return err
	}
	coreDetection, err := reduce.ParseCoreDetection(cfg.Reduce.CoreDetection)
	if err != nil {
		return err
	}
	output, name, err := outputPath(params, cfg)
	if err != nil {
		return err
	}

	batch := &reduce.Batch{
		Loader: weatherLoader{weather: params.Weather},
		Options: reduce.Options{
			CoreDetection: coreDetection,
			AllZones:      cfg.Reduce.AllZones,
		},
		ZoneWeight:  zoneWeight,
		StrictNames: cfg.Reduce.StrictNames,
		Parallel:    cfg.Reduce.Parallel,
		Logger:      logger,
	}
	if cfg.Cache.Enabled {
		store, err := openCache(cfg, logger)
		if err != nil {
			return fmt.Errorf("opening reduction cache: %w", err)
		}
		defer store.Close()
		batch.Cache = store
	}

	results, runErr := batch.Run(ctx, args)
	report := reduceReport{
		Library: name,
		Weather: params.Weather,
	}
	for _, result := range results {
		building := buildingReport{
			Path:       result.Path,
			Cached:     result.Cached,
			DurationMS: float64(result.Duration.Microseconds()) / 1000,
		}
		if result.Err != nil {
			building.Error = result.Err.Error()
			report.Failed++
		} else {
			building.Template = result.Template.Name
			report.Templates++
		}
		report.Buildings = append(report.Buildings, building)
	}

	switch {
	case errors.Is(runErr, reduce.ErrAllFailed):
		logger.Error("no template written", "error", runErr)
		if err := printReduceReport(params, report); err != nil {
			return err
		}
		return &cli.ExitError{Code: 1}
	case runErr != nil:
		return runErr
	}

	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := docfile.Write(output, reduce.Library(name, results).Document(), cfg.Output.Indent); err != nil {
		return err
	}
	report.Output = output
	logger.Info("library written", "path", output, "templates", report.Templates, "failed", report.Failed)
	return printReduceReport(params, report)
}

// outputPath returns the document path and library name. Without
// --output the document goes to paths.output, named after the library
// and encoded as the output section says.
func outputPath(params *reduceParams, cfg *config.Config) (path string, name string, err error) {
	name = params.Name
	if params.Output != "" {
		if name == "" {
			name = documentName(params.Output)
		}
		return params.Output, name, nil
	}
	if name == "" {
		name = "library"
	}
	format, err := docfile.ParseFormat(cfg.Output.Format)
	if err != nil {
		return "", "", err
	}
	tag, err := compress.ParseTag(cfg.Output.Compression)
	if err != nil {
		return "", "", err
	}
	encoding := docfile.Encoding{Format: format, Compression: tag}
	return filepath.Join(cfg.Paths.Output, encoding.Path(name)), name, nil
}

func printReduceReport(params *reduceParams, report reduceReport) error {
	if done, err := params.EmitJSON(report); done {
		return err
	}
	writer := tabwriter.NewWriter(os.Stdout, 2, 0, 3, ' ', 0)
	fmt.Fprintf(writer, "MODEL\tTEMPLATE\tCACHED\tTIME\n")
	for _, building := range report.Buildings {
		template := building.Template
		if building.Error != "" {
			template = "FAILED: " + building.Error
		}
		fmt.Fprintf(writer, "%s\t%s\t%t\t%.1fms\n", building.Path, template, building.Cached, building.DurationMS)
	}
	writer.Flush()
	if report.Output != "" {
		fmt.Printf("\n%d template(s) written to %s (%d failed)\n", report.Templates, report.Output, report.Failed)
	}
	return nil
}

// weatherLoader loads models from files and records weather on each
// one when set.
type weatherLoader struct {
	weather string
}

func (l weatherLoader) Load(ctx context.Context, path string) (*model.Building, error) {
	building, err := model.FileLoader{}.Load(ctx, path)
	if err != nil {
		return nil, err
	}
	if l.weather != "" {
		building.Weather = l.weather
	}
	return building, nil
}
