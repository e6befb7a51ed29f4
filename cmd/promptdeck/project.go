package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/promptdeck/promptdeck/internal/catalog"
	"github.com/promptdeck/promptdeck/internal/clitools"
	"github.com/promptdeck/promptdeck/internal/config"
	"github.com/promptdeck/promptdeck/internal/git"
	"github.com/promptdeck/promptdeck/internal/services"
)

func newProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage registered projects",
	}

	cmd.AddCommand(newProjectAddCmd())
	cmd.AddCommand(newProjectListCmd())
	cmd.AddCommand(newProjectDeleteCmd())
	cmd.AddCommand(newProjectLaunchCmd())

	return cmd
}

func newProjectAddCmd() *cobra.Command {
	var (
		name        string
		description string
		launchMode  string
		envText     string
	)

	cmd := &cobra.Command{
		Use:   "add [path]",
		Short: "Register a project directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}

			// Default to the enclosing git repository, falling back to the
			// directory itself.
			info, err := git.Detect(path)
			if err != nil {
				return err
			}
			if info.IsRepo {
				if path == "" {
					path = info.Root
				}
			} else if path == "" {
				path, err = os.Getwd()
				if err != nil {
					return err
				}
			}

			absPath, err := filepath.Abs(path)
			if err != nil {
				return err
			}

			if name == "" {
				name = filepath.Base(absPath)
			}

			if envText != "" {
				if _, err := clitools.ParseEnvironment(envText); err != nil {
					return err
				}
			}

			store, err := openStore()
			if err != nil {
				return err
			}
			defer func() {
				_ = store.Close()
			}()

			ctx := context.Background()
			project, err := services.NewProjectService(store).Create(ctx, catalog.Project{
				Name:                 name,
				Path:                 absPath,
				Description:          description,
				LaunchMode:           catalog.LaunchMode(launchMode),
				EnvironmentVariables: envText,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Registered '%s' at %s\n", project.Name, project.Path)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Project name (directory name if not given)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Add description metadata")
	cmd.Flags().StringVar(&launchMode, "launch", "normal", "Launch mode: normal or bypass")
	cmd.Flags().StringVar(&envText, "env", "", "Environment variables, one KEY=VALUE per line")

	return cmd
}

func newProjectListCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			defer func() {
				_ = store.Close()
			}()

			ctx := context.Background()
			projects, err := services.NewProjectService(store).List(ctx)
			if err != nil {
				return err
			}

			switch format {
			case "json":
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(projects)
			case "table":
				t := table.NewWriter()
				t.SetOutputMirror(cmd.OutOrStdout())
				t.SetStyle(table.StyleLight)
				t.AppendHeader(table.Row{"Name", "Path", "Launch", "Created"})
				for _, p := range projects {
					t.AppendRow(table.Row{
						p.Name,
						p.Path,
						string(p.LaunchMode),
						p.CreatedAt.Format(time.DateOnly),
					})
				}
				t.Render()
				return nil
			default:
				return fmt.Errorf("invalid format: %s (valid values: table, json)", format)
			}
		},
	}

	cmd.Flags().StringVar(&format, "format", "table", "Output format: table or json")

	return cmd
}

func newProjectDeleteCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <path>",
		Short: "Remove a project registration",
		Long:  "Remove a project registration from the catalog. The directory itself is untouched.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			absPath, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}

			store, err := openStore()
			if err != nil {
				return err
			}
			defer func() {
				_ = store.Close()
			}()

			ctx := context.Background()
			svc := services.NewProjectService(store)

			project, err := svc.GetByPath(ctx, absPath)
			if err != nil {
				return err
			}
			if project == nil {
				return fmt.Errorf("no project registered at %s", absPath)
			}

			if !force {
				ok, err := confirm(cmd, fmt.Sprintf("Remove project '%s'? (y/N) ", project.Name))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Deletion cancelled")
					return nil
				}
			}

			if err := svc.Delete(ctx, project.ID); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Removed '%s'\n", project.Name)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip confirmation prompt")

	return cmd
}

func newProjectLaunchCmd() *cobra.Command {
	var toolFlag string

	cmd := &cobra.Command{
		Use:   "launch <path>",
		Short: "Launch a tool inside a registered project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			absPath, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}

			tool, ok := config.ParseTool(toolFlag)
			if !ok {
				return fmt.Errorf("invalid tool: %s (valid values: claude, codex)", toolFlag)
			}

			store, err := openStore()
			if err != nil {
				return err
			}
			defer func() {
				_ = store.Close()
			}()

			ctx := context.Background()
			project, err := services.NewProjectService(store).GetByPath(ctx, absPath)
			if err != nil {
				return err
			}
			if project == nil {
				return fmt.Errorf("no project registered at %s", absPath)
			}

			argv, err := clitools.LaunchCommand(tool, project.LaunchMode)
			if err != nil {
				return err
			}

			env := os.Environ()
			if project.EnvironmentVariables != "" {
				extra, err := clitools.ParseEnvironment(project.EnvironmentVariables)
				if err != nil {
					return err
				}
				env = append(env, extra...)
			}

			launch := exec.Command(argv[0], argv[1:]...)
			launch.Dir = project.Path
			launch.Env = env
			launch.Stdin = os.Stdin
			launch.Stdout = os.Stdout
			launch.Stderr = os.Stderr

			return launch.Run()
		},
	}

	cmd.Flags().StringVar(&toolFlag, "tool", "codex", "Tool to launch: claude or codex")

	return cmd
}
