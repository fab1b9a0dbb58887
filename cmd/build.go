package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dstockto/partgen/cad"
	"github.com/dstockto/partgen/db"
	"github.com/dstockto/partgen/metrics"
	"github.com/dstockto/partgen/models"
	"github.com/dstockto/partgen/parts"
	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/unixpickle/model3d/model3d"
	"go.uber.org/zap"
)

// part is a buildable model: its name, output file and the parameters that
// produce it.
type part struct {
	Name   string
	File   string
	Params any
	Solid  func() (model3d.Solid, error)
}

func clipPart(p models.ClipParams) part {
	return part{
		Name:   "clip",
		File:   parts.ClipFile,
		Params: p,
		Solid:  func() (model3d.Solid, error) { return parts.Clip(p) },
	}
}

func tailPart(p models.TailParams) part {
	return part{
		Name:   "tail",
		File:   p.ModelName(),
		Params: p,
		Solid:  func() (model3d.Solid, error) { return parts.Tail(p) },
	}
}

// allParts lists the parts in build order.
func allParts(cfg *Config) []part {
	return []part{clipPart(cfg.Clip), tailPart(cfg.Tail)}
}

// pipeline builds parts one at a time, timing each stage.
type pipeline struct {
	cfg     *Config
	log     *zap.Logger
	metrics *metrics.Manager
	history *db.Client
	runID   string
}

func newPipeline(cfg *Config, log *zap.Logger) (*pipeline, error) {
	p := &pipeline{
		cfg:     cfg,
		log:     log,
		metrics: metrics.NewManager(),
		runID:   uuid.NewString(),
	}
	if cfg.Database != "" {
		h, err := db.NewClient(cfg.Database)
		if err != nil {
			return nil, err
		}
		p.history = h
	}
	return p, nil
}

// Close flushes metrics and closes the history database.
func (p *pipeline) Close() error {
	var errs []error
	if p.cfg.MetricsFile != "" {
		errs = append(errs, p.metrics.WriteTextfile(p.cfg.MetricsFile))
	}
	if p.history != nil {
		errs = append(errs, p.history.Close())
	}
	return errors.Join(errs...)
}

// stage runs fn and records its duration.
func (p *pipeline) stage(name, stage string, fn func() error) error {
	start := time.Now()
	err := fn()
	d := time.Since(start)
	p.metrics.ObserveStage(name, stage, d)
	p.log.Debug("stage finished",
		zap.String("run_id", p.runID),
		zap.String("part", name),
		zap.String("stage", stage),
		zap.Duration("duration", d),
		zap.Error(err))
	return err
}

// Build turns pt into an STL file in the output directory. Nothing is
// written when any stage fails.
func (p *pipeline) Build(pt part) (*cad.ExportResult, error) {
	res, err := p.build(pt)
	if err != nil {
		p.metrics.RecordFailure(pt.Name)
		return nil, fmt.Errorf("%s: %w", pt.Name, err)
	}
	p.metrics.RecordExport(pt.Name, res.Triangles, res.Volume)
	return res, nil
}

func (p *pipeline) build(pt part) (*cad.ExportResult, error) {
	if err := os.MkdirAll(p.cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	var (
		solid model3d.Solid
		mesh  *model3d.Mesh
		res   *cad.ExportResult
	)
	err := p.stage(pt.Name, "build", func() (err error) {
		solid, err = pt.Solid()
		return err
	})
	if err != nil {
		return nil, err
	}
	err = p.stage(pt.Name, "mesh", func() (err error) {
		mesh, err = cad.Mesh(solid, p.cfg.MeshOptions())
		return err
	})
	if err != nil {
		return nil, err
	}
	err = p.stage(pt.Name, "write", func() (err error) {
		res, err = cad.WriteSTL(filepath.Join(p.cfg.OutputDir, pt.File), mesh)
		return err
	})
	if err != nil {
		return nil, err
	}

	p.log.Info("exported",
		zap.String("run_id", p.runID),
		zap.String("part", pt.Name),
		zap.String("file", res.Path),
		zap.Int("triangles", res.Triangles),
		zap.Float64("volume_mm3", res.Volume))

	if err := p.record(pt, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (p *pipeline) record(pt part, res *cad.ExportResult) error {
	if p.history == nil {
		return nil
	}
	hash, err := models.ParamsHash(pt.Params)
	if err != nil {
		return err
	}
	_, err = p.history.RecordBuild(db.Build{
		RunID:       p.runID,
		Part:        pt.Name,
		File:        res.Path,
		ParamsHash:  hash,
		SHA256:      res.SHA256,
		Triangles:   res.Triangles,
		Volume:      res.Volume,
		Resolution:  p.cfg.Resolution,
		SearchIters: p.cfg.SearchIters,
	})
	return err
}

// runParts builds each part in order and prints a summary line per file.
func runParts(cmd *cobra.Command, list []part) error {
	p, err := newPipeline(Cfg, Logger)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	var buildErr error
	for _, pt := range list {
		res, err := p.Build(pt)
		if err != nil {
			_, _ = fmt.Fprintf(out, "%s %s\n", color.RedString("✗"), err)
			buildErr = err
			break
		}
		_, _ = fmt.Fprintf(out, "%s %s  %s triangles  %s\n",
			color.GreenString("✔"),
			color.CyanString(res.Path),
			color.YellowString("%d", res.Triangles),
			summarizeExtent(res))
	}
	return errors.Join(buildErr, p.Close())
}

func summarizeExtent(res *cad.ExportResult) string {
	size := res.Max.Sub(res.Min)
	return fmt.Sprintf("%.1f x %.1f x %.1f mm, %.2f cm³", size.X, size.Y, size.Z, res.Volume/1000)
}

// selectParts resolves part names given on the command line.
func selectParts(cfg *Config, names []string) ([]part, error) {
	if len(names) == 0 {
		return allParts(cfg), nil
	}
	byName := map[string]part{}
	for _, pt := range allParts(cfg) {
		byName[pt.Name] = pt
	}
	var out []part
	for _, n := range names {
		pt, ok := byName[strings.ToLower(strings.TrimSpace(n))]
		if !ok {
			return nil, fmt.Errorf("unknown part %q (known: clip, tail)", n)
		}
		out = append(out, pt)
	}
	return out, nil
}

var buildCmd = &cobra.Command{
	Use:   "build [part...]",
	Short: "Build parts and export them as STL",
	Long: `Build the named parts, or all of them, into the output directory.

Parts are built one after another. With -i the parts are picked from a list.`,
	Example: `  partgen build
  partgen build tail --resolution 0.1
  partgen build -i`,
	ValidArgs: []string{"clip", "tail"},
	RunE: func(cmd *cobra.Command, args []string) error {
		interactive, _ := cmd.Flags().GetBool("interactive")
		if interactive && len(args) == 0 {
			if !isInteractiveAllowed(false) {
				return errors.New("interactive selection needs a terminal")
			}
			picked, canceled, err := selectPartInteractively(allParts(Cfg))
			if err != nil {
				return err
			}
			if canceled {
				fmt.Println("Canceled.")
				return nil
			}
			return runParts(cmd, []part{picked})
		}

		list, err := selectParts(Cfg, args)
		if err != nil {
			return err
		}
		return runParts(cmd, list)
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().BoolP("interactive", "i", false, "choose the part to build from a list")
}
