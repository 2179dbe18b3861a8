package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nibzard/taskinder-go/internal/render"
	"github.com/nibzard/taskinder-go/internal/service"
	"github.com/nibzard/taskinder-go/internal/task"
)

func newAddCommand(a *app) *cobra.Command {
	var description string
	cmd := &cobra.Command{
		Use:     "add <title>",
		Aliases: []string{"create"},
		Short:   "Create a new task",
		Long: `Create a new task with status TODO.

Examples:
  taskinder add "Buy milk"
  taskinder add "Write report" -d "Quarterly numbers"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			t, err := svc.CreateTask(args[0], description)
			if err != nil {
				return err
			}
			a.success("Task created: %d", t.ID())
			return nil
		},
	}
	cmd.Flags().StringVarP(&description, "description", "d", "", "Task description")
	return cmd
}

func newListCommand(a *app) *cobra.Command {
	var status string
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		Long: `List all tasks in insertion order, optionally filtered by status.

The status filter is case-insensitive: todo, doing or done.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			tmpl, err := a.template()
			if err != nil {
				return err
			}

			var tasks []*task.Task
			if cmd.Flags().Changed("status") {
				s, err := parseStatusArg(status)
				if err != nil {
					return err
				}
				tasks, err = svc.ListByStatus(s)
				if err != nil {
					return err
				}
			} else {
				tasks, err = svc.ListTasks()
				if err != nil {
					return err
				}
			}
			return render.Tasks(a.out, tasks, tmpl)
		},
	}
	cmd.Flags().StringVarP(&status, "status", "s", "", "Filter by status (todo, doing, done)")
	return cmd
}

func newShowCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "show <id>",
		Aliases: []string{"get"},
		Short:   "Show one task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			svc, err := a.service()
			if err != nil {
				return err
			}
			tmpl, err := a.template()
			if err != nil {
				return err
			}
			t, ok, err := svc.GetTask(id)
			if err != nil {
				return err
			}
			if !ok {
				return a.notFound(id)
			}
			return render.Task(a.out, t, tmpl)
		},
	}
}

func newFindCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "find <title>",
		Short: "Find tasks by exact title",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			tmpl, err := a.template()
			if err != nil {
				return err
			}
			tasks, err := svc.GetTasksByTitle(args[0])
			if err != nil {
				return err
			}
			return render.Tasks(a.out, tasks, tmpl)
		},
	}
}

func newUpdateCommand(a *app) *cobra.Command {
	var title, description, status string
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change the title, description or status of a task",
		Long: `Change one or more fields of a task. Fields that are not given keep
their current value.

Examples:
  taskinder update 3 --title "Buy oat milk"
  taskinder update 3 --status doing --description ""`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			var update service.TaskUpdate
			flags := cmd.Flags()
			if flags.Changed("title") {
				update.Title = &title
			}
			if flags.Changed("description") {
				update.Description = &description
			}
			if flags.Changed("status") {
				s, err := parseStatusArg(status)
				if err != nil {
					return err
				}
				update.Status = &s
			}
			if update.IsEmpty() {
				return fmt.Errorf("nothing to update: pass --title, --description or --status")
			}

			return a.update(id, update)
		},
	}
	cmd.Flags().StringVarP(&title, "title", "t", "", "New title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "New description")
	cmd.Flags().StringVarP(&status, "status", "s", "", "New status (todo, doing, done)")
	return cmd
}

// newStatusCommand builds a shortcut that moves a task to status.
func newStatusCommand(a *app, use, short string, status task.Status) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return a.update(id, service.TaskUpdate{Status: &status})
		},
	}
}

func newDeleteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			svc, err := a.service()
			if err != nil {
				return err
			}
			removed, err := svc.DeleteTask(id)
			if err != nil {
				return err
			}
			if !removed {
				return a.notFound(id)
			}
			a.success("Task %d deleted", id)
			return nil
		},
	}
}

func (a *app) update(id int, update service.TaskUpdate) error {
	svc, err := a.service()
	if err != nil {
		return err
	}
	t, ok, err := svc.UpdateTask(id, update)
	if err != nil {
		return err
	}
	if !ok {
		return a.notFound(id)
	}
	a.success("Task %d updated", t.ID())
	return nil
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid task id %q: must be a positive integer", arg)
	}
	return id, nil
}

// parseStatusArg accepts a status name in any letter case.
func parseStatusArg(arg string) (task.Status, error) {
	s, err := task.ParseStatus(strings.ToUpper(strings.TrimSpace(arg)))
	if err != nil {
		return "", fmt.Errorf("invalid status %q: choose one of %s", arg, statusChoices())
	}
	return s, nil
}

func statusChoices() string {
	names := make([]string, 0, len(task.Statuses()))
	for _, s := range task.Statuses() {
		names = append(names, strings.ToLower(s.String()))
	}
	return strings.Join(names, ", ")
}
