package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/marmidr/boomer/internal/config"
)

func newProfilesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "List column mapping profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return listProfiles(cmd.OutOrStdout(), cfg)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show NAME",
		Short: "Print a profile as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			p, err := cfg.Profile(args[0])
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(p)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "init NAME",
		Short: "Add a profile with every column unspecified",
		Long: `init adds a profile template to the config file. Replace each "?" with a
column header title, or with a 0-based index or column letter when the
file has no header row.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if _, err := cfg.Profile(args[0]); err == nil {
				return fmt.Errorf("profile %q already exists", args[0])
			}
			cfg.SetProfile(args[0], config.NewProfile())
			if err := cfg.Save(); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}
			slog.Info("profile added", slog.String("profile", args[0]), slog.String("config", cfg.FilePath()))
			return nil
		},
	})

	var force bool
	deleteCmd := &cobra.Command{
		Use:   "delete NAME",
		Short: "Remove a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if n := cfg.ProfileUseCount(args[0]); n > 0 && !force {
				return fmt.Errorf("profile %q is used by %d project(s); use --force to delete it anyway", args[0], n)
			}
			if err := cfg.DeleteProfile(args[0]); err != nil {
				return err
			}
			return cfg.Save()
		},
	}
	deleteCmd.Flags().BoolVar(&force, "force", false, "Delete even if projects use the profile")
	cmd.AddCommand(deleteCmd)

	return cmd
}

func listProfiles(w io.Writer, cfg *config.Config) error {
	for _, name := range cfg.ProfileNames() {
		if _, err := cfg.Profile(name); err != nil {
			fmt.Fprintf(w, "%s (not saved)\n", name)
			continue
		}
		fmt.Fprintf(w, "%s (%d project(s))\n", name, cfg.ProfileUseCount(name))
	}
	return nil
}

func newProjectsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "List saved projects",
		Long: `projects lists the saved BOM/PnP projects. Projects whose BOM file no
longer exists are removed from the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			paths, pruned := cfg.ProjectPaths()
			for _, p := range pruned {
				slog.Warn("project removed, BOM file not found", slog.String("bom", p))
			}
			if len(pruned) > 0 {
				if err := cfg.Save(); err != nil {
					return fmt.Errorf("failed to save config: %w", err)
				}
			}
			return listProjects(cmd.OutOrStdout(), cfg, paths)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "delete BOM",
		Short: "Remove the project saved for a BOM file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := cfg.DeleteProject(args[0]); err != nil {
				return err
			}
			return cfg.Save()
		},
	})
	return cmd
}

func listProjects(w io.Writer, cfg *config.Config, paths []string) error {
	for _, bom := range paths {
		p, err := cfg.Project(bom)
		if err != nil {
			return err
		}
		pnp, pnp2 := p.Paths(bom)
		fmt.Fprintf(w, "%s\n  pnp: %s\n", bom, pnp)
		if pnp2 != "" {
			fmt.Fprintf(w, "  pnp2: %s\n", pnp2)
		}
		fmt.Fprintf(w, "  profile: %s\n", p.Profile)
	}
	return nil
}
