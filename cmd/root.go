// Package cmd implements the CLI command structure for taskinder.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/nibzard/taskinder-go/internal/config"
	"github.com/nibzard/taskinder-go/internal/logging"
	"github.com/nibzard/taskinder-go/internal/repository"
	"github.com/nibzard/taskinder-go/internal/service"
	"github.com/nibzard/taskinder-go/internal/store"
	"github.com/nibzard/taskinder-go/internal/task"
)

// Version is set via ldflags at build time.
var Version = "dev"

// ErrReported means the command already told the user what went wrong.
// Callers should exit non-zero without printing it again.
var ErrReported = errors.New("error already reported")

const (
	groupTasks = "tasks"
	groupOther = "other"
)

// Run executes the taskinder CLI against the process streams.
func Run(ctx context.Context, args []string) error {
	return Execute(ctx, args, os.Stdout, os.Stderr)
}

// Execute runs the CLI with args, writing command output to stdout and
// diagnostics to stderr.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	root := newRootCommand(&app{out: stdout, errOut: stderr})
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.ExecuteContext(ctx)
}

// app carries the objects shared by subcommands. They are built on first
// use so that commands like version never read configuration.
type app struct {
	out    io.Writer
	errOut io.Writer

	cfg    *config.ConfigWithSources
	logger *log.Logger
	svc    *service.Service
	root   *cobra.Command
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "taskinder",
		Short: "taskinder - a small task manager backed by a JSON file",
		Long: `taskinder keeps a list of tasks in a single JSON document.

Each task has an ID, a title, an optional description, a status
(TODO, DOING or DONE) and creation and update timestamps.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	a.root = root
	config.RegisterFlags(root.PersistentFlags())

	root.AddGroup(
		&cobra.Group{ID: groupTasks, Title: "Task Commands:"},
		&cobra.Group{ID: groupOther, Title: "Other Commands:"},
	)

	for _, c := range []*cobra.Command{
		newAddCommand(a),
		newListCommand(a),
		newShowCommand(a),
		newFindCommand(a),
		newUpdateCommand(a),
		newStatusCommand(a, "start", "Mark a task as DOING", task.StatusDoing),
		newStatusCommand(a, "done", "Mark a task as DONE", task.StatusDone),
		newDeleteCommand(a),
	} {
		c.GroupID = groupTasks
		root.AddCommand(c)
	}
	for _, c := range []*cobra.Command{
		newTUICommand(a),
		newConfigCommand(a),
		newVersionCommand(a),
	} {
		c.GroupID = groupOther
		root.AddCommand(c)
	}
	root.SetHelpCommandGroupID(groupOther)
	root.SetCompletionCommandGroupID(groupOther)

	return root
}

// config loads configuration once per invocation.
func (a *app) config() (*config.ConfigWithSources, error) {
	if a.cfg != nil {
		return a.cfg, nil
	}
	cws, err := config.LoadWithSources(a.root.PersistentFlags())
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	a.cfg = cws
	a.logger = logging.NewFromConfig(a.errOut,
		cws.Config.LogLevel,
		cws.Config.LogFormat,
		cws.Config.LogTimestamps,
		cws.Config.LogCaller,
	)
	a.logger.Debug("config loaded", "store", cws.Config.StoreFile, "files", cws.Files)
	return cws, nil
}

// service wires config, logger, store, repository and service together.
func (a *app) service() (*service.Service, error) {
	if a.svc != nil {
		return a.svc, nil
	}
	cws, err := a.config()
	if err != nil {
		return nil, err
	}
	cfg := cws.Config

	s, err := store.New(cfg.StoreFile, store.WithLogger(a.logger))
	if err != nil {
		return nil, err
	}

	repoOpts := []repository.Option{repository.WithLogger(a.logger)}
	if cfg.Lock {
		repoOpts = append(repoOpts, repository.WithLocker(store.NewFileLock(cfg.LockFile())))
	}

	a.svc = service.New(repository.New(s, repoOpts...), service.WithLogger(a.logger))
	return a.svc, nil
}

// template returns the configured display template.
func (a *app) template() (string, error) {
	cws, err := a.config()
	if err != nil {
		return "", err
	}
	return cws.Config.Template, nil
}
