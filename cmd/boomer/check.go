package main

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/marmidr/boomer/internal/config"
	"github.com/marmidr/boomer/pkg/boomer"
	"github.com/marmidr/boomer/pkg/boomer/models"
	"github.com/marmidr/boomer/pkg/boomer/output"
	"github.com/marmidr/boomer/pkg/boomer/parser"
)

type checkFlags struct {
	bomPath     string
	pnpPath     string
	pnp2Path    string
	project     string
	profile     string
	minDistance float64
	mm          bool
	format      string
	outputPath  string
	saveProject bool
	watch       bool
	strict      bool
	noColor     bool
	bomLastRow  int
	pnpLastRow  int
}

func newCheckCmd() *cobra.Command {
	f := &checkFlags{}
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Cross-check a BOM against its PnP file(s)",
		Long: `check reads a BOM and one or two PnP files, maps their columns with a
profile from the config file and reports parts missing on either side,
comment mismatches and PnP parts placed closer than the minimum distance.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, f)
		},
	}

	cmd.Flags().StringVar(&f.bomPath, "bom", "", "BOM file (csv, txt, xls, xlsx, ods)")
	cmd.Flags().StringVar(&f.pnpPath, "pnp", "", "PnP file")
	cmd.Flags().StringVar(&f.pnp2Path, "pnp2", "", "Second PnP file holding the bottom side")
	cmd.Flags().StringVar(&f.project, "project", "", "Load BOM, PnP and profile from the project saved for this BOM path")
	cmd.Flags().StringVarP(&f.profile, "profile", "p", "", "Column mapping profile (default: first saved profile)")
	cmd.Flags().Float64Var(&f.minDistance, "min-distance", 0, "Minimum distance between parts in mm (default: from config)")
	cmd.Flags().BoolVar(&f.mm, "mm", false, "PnP coordinates are in millimeters, overriding the profile")
	cmd.Flags().StringVarP(&f.format, "format", "f", "text", "Report format: text, html, json")
	cmd.Flags().StringVarP(&f.outputPath, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().BoolVar(&f.saveProject, "save-project", false, "Save the BOM, PnP files and profile as a project")
	cmd.Flags().BoolVarP(&f.watch, "watch", "w", false, "Re-run the check whenever an input file changes")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "Exit with status 2 when discrepancies are found")
	cmd.Flags().BoolVar(&f.noColor, "no-color", false, "Disable colors in the text report")
	cmd.Flags().IntVar(&f.bomLastRow, "bom-last-row", 0, "Last BOM row to check (1-based, inclusive, as shown by preview; default: all)")
	cmd.Flags().IntVar(&f.pnpLastRow, "pnp-last-row", 0, "Last PnP row to check (1-based, inclusive; counts the merged rows with --pnp2; default: all)")
	return cmd
}

// checkJob is a fully resolved check invocation.
type checkJob struct {
	bomPath  string
	pnpPath  string
	pnp2Path string
	profile  *config.Profile
	format   string
	output   string
	color    bool
	opts     boomer.Options

	// exclusive LastDataRow values, models.ToEnd when unlimited
	bomLastRow int
	pnpLastRow int
}

func (j *checkJob) inputs() []string {
	paths := []string{j.bomPath, j.pnpPath}
	if j.pnp2Path != "" {
		paths = append(paths, j.pnp2Path)
	}
	return paths
}

func runCheck(cmd *cobra.Command, f *checkFlags) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if f.project != "" {
		proj, err := cfg.Project(f.project)
		if err != nil {
			return err
		}
		pnp, pnp2 := proj.Paths(f.project)
		if f.bomPath == "" {
			f.bomPath = f.project
		}
		if f.pnpPath == "" {
			f.pnpPath = pnp
		}
		if f.pnp2Path == "" {
			f.pnp2Path = pnp2
		}
		if f.profile == "" {
			f.profile = proj.Profile
		}
	}
	if f.bomPath == "" || f.pnpPath == "" {
		return fmt.Errorf("both --bom and --pnp are required (or --project)")
	}
	if f.profile == "" {
		f.profile = cfg.ProfileNames()[0]
	}

	profile, err := cfg.Profile(f.profile)
	if err != nil {
		return fmt.Errorf("%w (see 'boomer profiles')", err)
	}
	if err := profile.CheckBOMColumns(); err != nil {
		return err
	}
	if err := profile.CheckPnPColumns(f.pnp2Path != ""); err != nil {
		return err
	}

	switch f.format {
	case "text", "html", "json":
	default:
		return fmt.Errorf("invalid format: %s (must be text, html, or json)", f.format)
	}

	bomLastRow, err := lastDataRow("bom-last-row", f.bomLastRow)
	if err != nil {
		return err
	}
	pnpLastRow, err := lastDataRow("pnp-last-row", f.pnpLastRow)
	if err != nil {
		return err
	}

	opts := boomer.DefaultOptions()
	opts.MinDistanceMM = cfg.Common.MinDistanceMM
	if cmd.Flags().Changed("min-distance") {
		if f.minDistance <= 0 {
			return fmt.Errorf("invalid min distance: %v (must be positive)", f.minDistance)
		}
		opts.MinDistanceMM = f.minDistance
	}
	opts.UnitIsMils = profile.PnP.UnitIsMils() && !f.mm
	opts.Logger = slog.Default()

	job := &checkJob{
		bomPath:  f.bomPath,
		pnpPath:  f.pnpPath,
		pnp2Path: f.pnp2Path,
		profile:  profile,
		format:   f.format,
		output:   f.outputPath,
		opts:     opts,

		bomLastRow: bomLastRow,
		pnpLastRow: pnpLastRow,
	}
	job.color = f.format == "text" && f.outputPath == "" && !f.noColor &&
		!cfg.Common.NoColor && isTerminal(os.Stdout)

	if f.saveProject {
		err := cfg.SaveProject(f.bomPath, config.Project{PnP: f.pnpPath, PnP2: f.pnp2Path, Profile: f.profile})
		if err != nil {
			return fmt.Errorf("failed to save project: %w", err)
		}
		slog.Info("project saved", slog.String("bom", f.bomPath), slog.String("config", cfg.FilePath()))
	}

	if f.watch {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return watch(ctx, job.inputs(), func() {
			if _, err := job.run(cmd.OutOrStdout()); err != nil {
				slog.Error("check failed", slog.Any("error", err))
			}
		})
	}

	result, err := job.run(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if f.strict && !result.Clean() {
		return errDiscrepancies
	}
	return nil
}

// lastDataRow converts a 1-based inclusive row flag to an exclusive
// LastDataRow; 0 means no limit.
func lastDataRow(flag string, row int) (int, error) {
	switch {
	case row < 0:
		return 0, fmt.Errorf("invalid --%s: %d (rows are numbered from 1)", flag, row)
	case row == 0:
		return models.ToEnd, nil
	default:
		return row, nil
	}
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// run reads the inputs, cross-checks them and writes the report.
func (j *checkJob) run(stdout io.Writer) (*models.Result, error) {
	bom, err := j.bomInput()
	if err != nil {
		return nil, err
	}
	pnp, err := j.pnpInput()
	if err != nil {
		return nil, err
	}

	result, err := boomer.CrossCheck(bom, pnp, j.opts)
	if err != nil {
		return nil, fmt.Errorf("cross-check failed: %w", err)
	}

	var buf bytes.Buffer
	if err := j.render(&buf, result); err != nil {
		return nil, fmt.Errorf("report failed: %w", err)
	}

	if j.output != "" {
		if err := os.WriteFile(j.output, buf.Bytes(), 0644); err != nil {
			return nil, fmt.Errorf("failed to write output: %w", err)
		}
		slog.Info("report written", slog.String("path", j.output))
		return result, nil
	}
	if _, err := stdout.Write(buf.Bytes()); err != nil {
		return nil, err
	}
	return result, nil
}

func (j *checkJob) render(w io.Writer, result *models.Result) error {
	project := filepath.Base(j.bomPath)
	switch j.format {
	case "html":
		return output.WriteHTML(w, project, result)
	case "json":
		data, err := output.ToJSON(project, result, true)
		if err != nil {
			return err
		}
		_, err = w.Write(append(data, '\n'))
		return err
	default:
		return output.WriteText(w, project, result, j.color)
	}
}

func (j *checkJob) bomInput() (boomer.Input, error) {
	sep, err := j.profile.BOM.CSVSeparator()
	if err != nil {
		return boomer.Input{}, fmt.Errorf("BOM: %w", err)
	}
	mapping, err := j.profile.BOMMapping()
	if err != nil {
		return boomer.Input{}, err
	}
	mapping.LastDataRow = j.bomLastRow
	grid, err := parser.ReadFile(j.bomPath, parser.ReadOptions{Separator: sep, Logger: j.opts.Logger})
	if err != nil {
		return boomer.Input{}, err
	}
	return boomer.Input{Grid: grid, Mapping: mapping}, nil
}

func (j *checkJob) pnpInput() (boomer.Input, error) {
	sep, err := j.profile.PnP.CSVSeparator()
	if err != nil {
		return boomer.Input{}, fmt.Errorf("PnP: %w", err)
	}
	mapping, err := j.profile.PnPMapping()
	if err != nil {
		return boomer.Input{}, err
	}
	mapping.LastDataRow = j.pnpLastRow
	readOpts := parser.ReadOptions{Separator: sep, Logger: j.opts.Logger}

	grid, err := parser.ReadFile(j.pnpPath, readOpts)
	if err != nil {
		return boomer.Input{}, err
	}
	if j.pnp2Path != "" {
		bottom, err := parser.ReadFile(j.pnp2Path, readOpts)
		if err != nil {
			return boomer.Input{}, err
		}
		if grid, err = boomer.MergePnP(grid, bottom, mapping.DataRowStart()); err != nil {
			return boomer.Input{}, err
		}
	}
	return boomer.Input{Grid: grid, Mapping: mapping}, nil
}
