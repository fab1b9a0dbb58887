package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dstockto/partgen/api"
	"github.com/dstockto/partgen/cad"
	"github.com/dstockto/partgen/models"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// requirementFunc turns a part volume in mm³ into what the plate needs.
type requirementFunc func(file string, volume float64) models.PlateRequirement

// defaultRequirement uses the configured density and guesses the filament
// name from the file name, like clip2.stl -> clip.
func defaultRequirement(density float64) requirementFunc {
	return func(file string, volume float64) models.PlateRequirement {
		name := strings.Map(func(r rune) rune {
			if r >= '0' && r <= '9' {
				return -1
			}
			return r
		}, partName(file))
		name = strings.TrimSpace(name)
		if name == "" {
			name = "Replace Me"
		}
		return models.PlateRequirement{
			Name:     name,
			Material: "PLA",
			Amount:   models.FilamentGrams(volume, density),
		}
	}
}

func spoolRequirement(s *models.Spool) requirementFunc {
	return func(_ string, volume float64) models.PlateRequirement {
		return s.Requirement(volume)
	}
}

// buildPlan creates a one-project plan with a plate per STL file in dir.
func buildPlan(dir, projectName string, need requirementFunc) (models.PlanFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return models.PlanFile{}, fmt.Errorf("failed to read %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".stl") {
			continue
		}
		files = append(files, e.Name())
	}
	sort.Strings(files)
	if len(files) == 0 {
		return models.PlanFile{}, fmt.Errorf("no STL files in %s; run partgen build first", dir)
	}

	var plates []models.Plate
	for _, f := range files {
		mesh, err := cad.LoadSTL(filepath.Join(dir, f))
		if err != nil {
			return models.PlanFile{}, err
		}
		plates = append(plates, models.Plate{
			Name:   partName(f),
			Model:  f,
			Status: models.StatusTodo,
			Needs:  []models.PlateRequirement{need(f, mesh.Volume())},
		})
	}

	plan := models.PlanFile{
		Projects: []models.Project{{
			Name:   projectName,
			Status: models.StatusTodo,
			Plates: plates,
		}},
	}
	return plan, plan.Validate()
}

// writePlan writes plan to path and refuses to replace an existing file.
func writePlan(path string, plan models.PlanFile) error {
	out, err := yaml.Marshal(plan)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("file %s already exists", path)
		}
		return err
	}
	if _, err := f.Write(out); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}
	return f.Close()
}

// resolveSpool finds the spool the plan should draw from: by id, or by
// filament name with a prompt when several spools match.
func resolveSpool(client *api.Client, id int, name string, interactive bool) (*models.Spool, error) {
	if id > 0 {
		s, err := client.FindSpoolsById(id)
		if err != nil {
			return nil, fmt.Errorf("spool %d: %w", id, err)
		}
		return s, nil
	}

	spools, err := client.FindSpoolsByName(name, api.NotArchived)
	if err != nil {
		return nil, err
	}
	switch {
	case len(spools) == 0:
		return nil, fmt.Errorf("%q: %w", name, api.ErrSpoolNotFound)
	case len(spools) == 1:
		return &spools[0], nil
	case !interactive:
		return nil, fmt.Errorf("%d spools match %q; use --spool with an id", len(spools), name)
	}

	s, canceled, err := selectSpoolInteractively(spools, name)
	if err != nil {
		return nil, err
	}
	if canceled {
		return nil, errors.New("spool selection canceled")
	}
	return &s, nil
}

var planCmd = &cobra.Command{
	Use:   "plan [filename]",
	Short: "Create a print plan from the exported STL files",
	Long: `Create a print plan with one plate per STL file in the output directory.

Each plate lists the grams of filament it needs, from the mesh volume and the
filament density. The density is the configured one unless a Spoolman spool
is named with --spool or --filament. Existing plan files are never replaced.`,
	Example: `  partgen plan
  partgen plan rocket --spool 42
  partgen plan --filament "Galaxy Black" -i`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current working directory (it may have been deleted): %w", err)
		}
		projectName := filepath.Base(cwd)

		var filename string
		if len(args) > 0 {
			filename = args[0]
			if !strings.HasSuffix(filename, ".yaml") && !strings.HasSuffix(filename, ".yml") {
				filename += ".yaml"
			}
			projectName = strings.TrimSuffix(strings.TrimSuffix(filepath.Base(filename), ".yaml"), ".yml")
		} else {
			filename = projectName + ".yaml"
		}
		projectName = ToProjectName(projectName)

		need := defaultRequirement(Cfg.Density)
		spoolID, _ := cmd.Flags().GetInt("spool")
		filament, _ := cmd.Flags().GetString("filament")
		if spoolID > 0 || filament != "" {
			if Cfg.ApiBase == "" {
				return errors.New("api_base must be configured to look up spools")
			}
			interactive, _ := cmd.Flags().GetBool("interactive")
			spool, err := resolveSpool(api.NewClient(Cfg.ApiBase), spoolID, filament, interactive && isInteractiveAllowed(false))
			if err != nil {
				return err
			}
			Logger.Info("using spool", zap.Int("spool", spool.Id), zap.Float64("density", spool.Density()))
			need = spoolRequirement(spool)
		}

		plan, err := buildPlan(Cfg.OutputDir, projectName, need)
		if err != nil {
			return err
		}
		if err := writePlan(filename, plan); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		_, _ = fmt.Fprintf(out, "Created new plan: %s\n", FormatPath(filename))
		for _, pl := range plan.Projects[0].Plates {
			_, _ = fmt.Fprintf(out, "  %-14s %sg\n", pl.Name, color.YellowString("%.1f", pl.Grams()))
		}
		_, _ = fmt.Fprintf(out, "  %-14s %sg\n", "total", color.New(color.Bold).Sprintf("%.1f", RoundAmount(plan.Projects[0].Grams())))

		return nil
	},
}

func init() {
	rootCmd.AddCommand(planCmd)
	planCmd.Flags().Int("spool", 0, "Spoolman spool id to take filament and density from")
	planCmd.Flags().String("filament", "", "Spoolman filament name to find the spool by")
	planCmd.Flags().BoolP("interactive", "i", false, "pick a spool when several match --filament")
}
