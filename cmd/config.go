package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/nibzard/taskinder-go/internal/config"
)

func newConfigCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long: `Show every configuration value and the layer it came from:
default, user file, project file, config file, environment or flag.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cws, err := a.config()
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			for _, field := range config.Fields() {
				fmt.Fprintf(tw, "%s\t%s\t%s\n",
					cyan.Sprint(field),
					cws.Config.Value(field),
					yellow.Sprintf("(%s)", cws.Sources[field]))
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			if len(cws.Files) == 0 {
				fmt.Fprintln(a.out, "\nNo config files found.")
				return nil
			}
			fmt.Fprintln(a.out, "\nConfig files:")
			for _, f := range cws.Files {
				fmt.Fprintf(a.out, "  %s\n", f)
			}
			return nil
		},
	}
	cmd.AddCommand(newConfigInitCommand(a))
	return cmd
}

func newConfigInitCommand(a *app) *cobra.Command {
	var user, force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write an example config file",
		Long: `Write an example config file to ./taskinder.toml, or to
~/.taskinder/taskinder.toml with --user. Existing files are kept
unless --force is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configInitPath(user)
			if err != nil {
				return err
			}

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("checking %s: %w", path, err)
			}

			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return fmt.Errorf("creating config directory: %w", err)
			}
			if err := os.WriteFile(path, []byte(config.ExampleConfig()), 0o644); err != nil {
				return fmt.Errorf("writing config file: %w", err)
			}
			a.success("Config written: %s", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&user, "user", false, "Write the user-level config file")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	return cmd
}

func configInitPath(user bool) (string, error) {
	if user {
		return config.UserConfigPath()
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}
	return config.ProjectConfigPath(wd), nil
}
