// Package render draws tasks as tables using named display templates.
package render

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/nibzard/taskinder-go/internal/task"
)

// DefaultTemplate is used when no template is named.
const DefaultTemplate = "default"

// DisplayTimeLayout formats timestamps in local time.
const DisplayTimeLayout = "2006-01-02 15:04"

// EmptyMessage is written instead of a table when there are no tasks.
const EmptyMessage = "No tasks found."

// ErrUnknownTemplate is returned for a template name that is not registered.
var ErrUnknownTemplate = errors.New("unknown template")

// Column names.
const (
	ColumnID          = "ID"
	ColumnTitle       = "Title"
	ColumnDescription = "Description"
	ColumnStatus      = "Status"
	ColumnCreatedAt   = "Created At"
	ColumnUpdatedAt   = "Updated At"
)

// columns maps a column name to the value it shows.
var columns = map[string]func(*task.Task) string{
	ColumnID:          func(t *task.Task) string { return strconv.Itoa(t.ID()) },
	ColumnTitle:       func(t *task.Task) string { return t.Title() },
	ColumnDescription: func(t *task.Task) string { return t.Description() },
	ColumnStatus:      func(t *task.Task) string { return t.Status().String() },
	ColumnCreatedAt:   func(t *task.Task) string { return formatTime(t.CreatedAt()) },
	ColumnUpdatedAt:   func(t *task.Task) string { return formatTime(t.UpdatedAt()) },
}

// Template describes a table layout.
type Template struct {
	Columns     []string
	HeaderColor lipgloss.Color
	BorderColor lipgloss.Color
	Bold        bool
}

var templates = map[string]Template{
	"default": {
		Columns:     []string{ColumnStatus, ColumnTitle, ColumnID},
		HeaderColor: lipgloss.Color("6"),
		BorderColor: lipgloss.Color("4"),
	},
	"detailed": {
		Columns:     []string{ColumnStatus, ColumnTitle, ColumnDescription, ColumnCreatedAt, ColumnUpdatedAt},
		HeaderColor: lipgloss.Color("5"),
		Bold:        true,
	},
	"all": {
		Columns:     []string{ColumnStatus, ColumnID, ColumnTitle, ColumnDescription, ColumnCreatedAt, ColumnUpdatedAt},
		HeaderColor: lipgloss.Color("2"),
		BorderColor: lipgloss.Color("4"),
	},
}

// Templates returns the registered template names, sorted.
func Templates() []string {
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the template registered under name. An empty name selects
// the default template.
func Lookup(name string) (Template, error) {
	if name == "" {
		name = DefaultTemplate
	}
	tmpl, ok := templates[name]
	if !ok {
		return Template{}, fmt.Errorf("%w %q (available: %v)", ErrUnknownTemplate, name, Templates())
	}
	return tmpl, nil
}

// Tasks writes tasks to w as a table in the named template.
func Tasks(w io.Writer, tasks []*task.Task, name string) error {
	tmpl, err := Lookup(name)
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		_, err := fmt.Fprintln(w, EmptyMessage)
		return err
	}
	_, err = fmt.Fprintln(w, tmpl.table(lipgloss.NewRenderer(w), tasks).String())
	return err
}

// Task writes a single task to w in the named template.
func Task(w io.Writer, t *task.Task, name string) error {
	return Tasks(w, []*task.Task{t}, name)
}

// Rows returns the cell values of tasks for the template's columns.
func (tmpl Template) Rows(tasks []*task.Task) [][]string {
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		row := make([]string, len(tmpl.Columns))
		for i, col := range tmpl.Columns {
			if value, ok := columns[col]; ok {
				row[i] = value(t)
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func (tmpl Template) table(r *lipgloss.Renderer, tasks []*task.Task) *table.Table {
	header := r.NewStyle().Foreground(tmpl.HeaderColor).Bold(tmpl.Bold).Padding(0, 1)
	cell := r.NewStyle().Padding(0, 1)
	border := r.NewStyle()
	if tmpl.BorderColor != "" {
		border = border.Foreground(tmpl.BorderColor)
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(border).
		Headers(tmpl.Columns...).
		Rows(tmpl.Rows(tasks)...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(DisplayTimeLayout)
}
