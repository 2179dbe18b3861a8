// Package ui provides optional terminal interfaces.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/taskinder-go/internal/task"
)

// Source supplies the tasks the viewer displays.
type Source interface {
	ListTasks() ([]*task.Task, error)
}

// TUIOption configures the TUI behavior.
type TUIOption func(*tuiConfig)

type tuiConfig struct {
	refreshInterval time.Duration
	storePath       string
}

// WithRefreshInterval sets how often the task list is reloaded.
func WithRefreshInterval(d time.Duration) TUIOption {
	return func(c *tuiConfig) {
		if d > 0 {
			c.refreshInterval = d
		}
	}
}

// WithStorePath shows the store location in the footer.
func WithStorePath(path string) TUIOption {
	return func(c *tuiConfig) {
		c.storePath = path
	}
}

// RunTUI starts the interactive viewer over src.
func RunTUI(ctx context.Context, src Source, opts ...TUIOption) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}
	model := newTUIModel(src, opts...)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	sectionStyle = lipgloss.NewStyle().Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
)

type tuiModel struct {
	src             Source
	storePath       string
	refreshInterval time.Duration
	loadErr         error
	data            *tuiData
	filter          task.Status
	showHelp        bool
}

type tuiData struct {
	counts  map[task.Status]int
	tasks   []*task.Task
	current *task.Task
	recent  []*task.Task
}

type tickMsg time.Time

func newTUIModel(src Source, opts ...TUIOption) *tuiModel {
	c := &tuiConfig{refreshInterval: 2 * time.Second}
	for _, opt := range opts {
		opt(c)
	}
	return &tuiModel{
		src:             src,
		storePath:       c.storePath,
		refreshInterval: c.refreshInterval,
	}
}

func (m *tuiModel) Init() tea.Cmd {
	m.refresh()
	return tickCmd(m.refreshInterval)
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r", "f5":
			m.refresh()
		case "h", "?":
			m.showHelp = !m.showHelp
		case "1":
			m.filter = task.StatusTodo
		case "2":
			m.filter = task.StatusDoing
		case "3":
			m.filter = task.StatusDone
		case "0":
			m.filter = ""
		}
	case tickMsg:
		m.refresh()
		return m, tickCmd(m.refreshInterval)
	}
	return m, nil
}

func (m *tuiModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("taskinder") + "\n\n")

	if m.showHelp {
		writeHelp(&b)
		m.writeFooter(&b)
		return b.String()
	}

	if m.filter != "" {
		fmt.Fprintf(&b, "Filter: %s (0 to clear)\n\n", m.filter)
	}

	switch {
	case m.loadErr != nil:
		b.WriteString(errorStyle.Render("Error loading tasks:") + "\n")
		b.WriteString("  " + m.loadErr.Error() + "\n\n")
	case m.data == nil:
		b.WriteString("Loading...\n\n")
	default:
		writeOverview(&b, m.data)
		writeCurrent(&b, m.data)
		writeTasks(&b, m.visible())
		writeRecent(&b, m.data)
	}

	m.writeFooter(&b)
	return b.String()
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *tuiModel) refresh() {
	tasks, err := m.src.ListTasks()
	if err != nil {
		m.loadErr = err
		m.data = nil
		return
	}
	m.loadErr = nil
	m.data = buildTUIData(tasks)
}

// visible returns the tasks matching the active filter.
func (m *tuiModel) visible() []*task.Task {
	if m.data == nil {
		return nil
	}
	if m.filter == "" {
		return m.data.tasks
	}
	var out []*task.Task
	for _, t := range m.data.tasks {
		if t.Status() == m.filter {
			out = append(out, t)
		}
	}
	return out
}

func buildTUIData(tasks []*task.Task) *tuiData {
	data := &tuiData{
		counts: make(map[task.Status]int, len(task.Statuses())),
		tasks:  tasks,
	}
	for _, s := range task.Statuses() {
		data.counts[s] = 0
	}

	for _, t := range tasks {
		data.counts[t.Status()]++
		if data.current == nil && t.Status() == task.StatusDoing {
			data.current = t
		}
	}

	var done []*task.Task
	for _, t := range tasks {
		if t.Status() == task.StatusDone {
			done = append(done, t)
		}
	}
	sort.SliceStable(done, func(i, j int) bool {
		return done[i].UpdatedAt().After(done[j].UpdatedAt())
	})
	if len(done) > 5 {
		done = done[:5]
	}
	data.recent = done

	return data
}

func writeOverview(b *strings.Builder, data *tuiData) {
	b.WriteString(sectionStyle.Render("Overview") + "\n\n")
	fmt.Fprintf(b, "  Todo: %d  Doing: %d  Done: %d\n\n",
		data.counts[task.StatusTodo],
		data.counts[task.StatusDoing],
		data.counts[task.StatusDone],
	)
}

func writeCurrent(b *strings.Builder, data *tuiData) {
	b.WriteString(sectionStyle.Render("In Progress") + "\n\n")
	if data.current == nil {
		b.WriteString("  Nothing in progress.\n\n")
		return
	}
	b.WriteString(formatTask(data.current, true) + "\n\n")
}

func writeTasks(b *strings.Builder, tasks []*task.Task) {
	b.WriteString(sectionStyle.Render("Tasks") + "\n\n")
	if len(tasks) == 0 {
		b.WriteString("  No tasks found.\n\n")
		return
	}
	for _, t := range tasks {
		b.WriteString(formatTask(t, false) + "\n")
	}
	b.WriteString("\n")
}

func writeRecent(b *strings.Builder, data *tuiData) {
	b.WriteString(sectionStyle.Render("Recently Completed") + "\n\n")
	if len(data.recent) == 0 {
		b.WriteString("  No completed tasks yet.\n\n")
		return
	}
	for _, t := range data.recent {
		b.WriteString(formatTask(t, false) + "\n")
	}
	b.WriteString("\n")
}

func writeHelp(b *strings.Builder) {
	b.WriteString(sectionStyle.Render("Keyboard Shortcuts") + "\n\n")
	b.WriteString("  q, ctrl+c    Quit\n")
	b.WriteString("  r, F5        Refresh\n")
	b.WriteString("  h, ?         Toggle this help screen\n")
	b.WriteString("  1            Filter by TODO\n")
	b.WriteString("  2            Filter by DOING\n")
	b.WriteString("  3            Filter by DONE\n")
	b.WriteString("  0            Clear filter\n\n")
}

func (m *tuiModel) writeFooter(b *strings.Builder) {
	footer := fmt.Sprintf("Press h for help | q to quit | Refreshing every %s", m.refreshInterval)
	if m.storePath != "" {
		footer += " | " + m.storePath
	}
	b.WriteString(dimStyle.Render(footer) + "\n")
}

func formatTask(t *task.Task, verbose bool) string {
	icon := " "
	switch t.Status() {
	case task.StatusDoing:
		icon = ">"
	case task.StatusDone:
		icon = "x"
	}

	line := fmt.Sprintf("  %s [%d] %s", icon, t.ID(), t.Title())
	if !verbose || t.Description() == "" {
		return line
	}
	details := t.Description()
	if len(details) > 60 {
		details = details[:57] + "..."
	}
	return line + "\n      " + details
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
