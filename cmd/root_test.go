package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nibzard/taskinder-go/internal/render"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

type result struct {
	stdout string
	stderr string
	err    error
}

// setupEnv isolates config lookup and returns the store path used by run.
func setupEnv(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("TASKINDER_CONFIG", "")
	t.Setenv("TASKINDER_TEMPLATE", "")
	t.Setenv("TASKINDER_LOCK", "")
	t.Setenv("TASKINDER_LOG_LEVEL", "")
	chdir(t, t.TempDir())

	storePath := filepath.Join(t.TempDir(), "tasks.json")
	t.Setenv("TASKINDER_STORE", storePath)
	return storePath
}

func run(t *testing.T, args ...string) result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := Execute(context.Background(), args, &stdout, &stderr)
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

type storedDoc struct {
	LastID int `json:"last_id"`
	Tasks  []struct {
		ID          int    `json:"id"`
		Title       string `json:"title"`
		Description string `json:"description"`
		Status      string `json:"status"`
	} `json:"tasks"`
}

func readDoc(t *testing.T, path string) storedDoc {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc storedDoc
	require.NoError(t, json.Unmarshal(data, &doc))
	return doc
}

func TestAddListDelete(t *testing.T) {
	storePath := setupEnv(t)

	res := run(t, "add", "Buy milk", "-d", "two litres")
	require.NoError(t, res.err)
	assert.Equal(t, "Task created: 1\n", res.stdout)

	res = run(t, "create", "Walk dog")
	require.NoError(t, res.err)
	assert.Equal(t, "Task created: 2\n", res.stdout)

	doc := readDoc(t, storePath)
	assert.Equal(t, 2, doc.LastID)
	require.Len(t, doc.Tasks, 2)
	assert.Equal(t, "two litres", doc.Tasks[0].Description)
	assert.Equal(t, "TODO", doc.Tasks[1].Status)

	res = run(t, "list")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Buy milk")
	assert.Contains(t, res.stdout, "Walk dog")

	res = run(t, "rm", "1")
	require.NoError(t, res.err)
	assert.Equal(t, "Task 1 deleted\n", res.stdout)

	doc = readDoc(t, storePath)
	require.Len(t, doc.Tasks, 1)
	assert.Equal(t, "Walk dog", doc.Tasks[0].Title)
}

func TestAdd_EmptyTitle(t *testing.T) {
	storePath := setupEnv(t)

	res := run(t, "add", "   ")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "title")

	_, err := os.Stat(storePath)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestList_Empty(t *testing.T) {
	setupEnv(t)

	res := run(t, "ls")
	require.NoError(t, res.err)
	assert.Equal(t, render.EmptyMessage+"\n", res.stdout)
}

func TestList_StatusFilterIsCaseInsensitive(t *testing.T) {
	setupEnv(t)
	require.NoError(t, run(t, "add", "first").err)
	require.NoError(t, run(t, "add", "second").err)
	require.NoError(t, run(t, "done", "2").err)

	res := run(t, "list", "--status", "done")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "second")
	assert.NotContains(t, res.stdout, "first")

	res = run(t, "list", "--status", "ToDo")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "first")
	assert.NotContains(t, res.stdout, "second")
}

func TestList_InvalidStatus(t *testing.T) {
	setupEnv(t)

	res := run(t, "list", "--status", "archived")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), `invalid status "archived"`)
	assert.Contains(t, res.err.Error(), "todo, doing, done")
}

func TestList_Templates(t *testing.T) {
	setupEnv(t)
	require.NoError(t, run(t, "add", "Report", "-d", "quarterly").err)

	res := run(t, "list", "--template", "all")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Description")
	assert.Contains(t, res.stdout, "quarterly")

	t.Setenv("TASKINDER_TEMPLATE", "detailed")
	res = run(t, "list")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Created At")

	res = run(t, "list", "--template", "fancy")
	require.Error(t, res.err)
	assert.ErrorIs(t, res.err, render.ErrUnknownTemplate)
}

func TestShowAndFind(t *testing.T) {
	setupEnv(t)
	require.NoError(t, run(t, "add", "same").err)
	require.NoError(t, run(t, "add", "other").err)
	require.NoError(t, run(t, "add", "same").err)

	res := run(t, "show", "2")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "other")

	res = run(t, "find", "same")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "same")
	assert.NotContains(t, res.stdout, "other")
}

func TestNotFoundMessages(t *testing.T) {
	setupEnv(t)

	for _, args := range [][]string{
		{"show", "42"},
		{"get", "42"},
		{"delete", "42"},
		{"update", "42", "--title", "x"},
		{"start", "42"},
		{"done", "42"},
	} {
		t.Run(args[0], func(t *testing.T) {
			res := run(t, args...)
			assert.ErrorIs(t, res.err, ErrReported)
			assert.Equal(t, "Task 42 not found\n", res.stderr)
			assert.Empty(t, res.stdout)
		})
	}
}

func TestUpdate(t *testing.T) {
	storePath := setupEnv(t)
	require.NoError(t, run(t, "add", "Original", "-d", "keep").err)

	res := run(t, "update", "1", "--title", "Renamed", "--status", "Doing")
	require.NoError(t, res.err)
	assert.Equal(t, "Task 1 updated\n", res.stdout)

	doc := readDoc(t, storePath)
	require.Len(t, doc.Tasks, 1)
	assert.Equal(t, "Renamed", doc.Tasks[0].Title)
	assert.Equal(t, "keep", doc.Tasks[0].Description)
	assert.Equal(t, "DOING", doc.Tasks[0].Status)

	res = run(t, "update", "1", "--description", "")
	require.NoError(t, res.err)
	assert.Empty(t, readDoc(t, storePath).Tasks[0].Description)
}

func TestUpdate_NothingToUpdate(t *testing.T) {
	setupEnv(t)
	require.NoError(t, run(t, "add", "x").err)

	res := run(t, "update", "1")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "nothing to update")
}

func TestStatusShortcuts(t *testing.T) {
	storePath := setupEnv(t)
	require.NoError(t, run(t, "add", "x").err)

	require.NoError(t, run(t, "start", "1").err)
	assert.Equal(t, "DOING", readDoc(t, storePath).Tasks[0].Status)

	require.NoError(t, run(t, "done", "1").err)
	assert.Equal(t, "DONE", readDoc(t, storePath).Tasks[0].Status)
}

func TestInvalidID(t *testing.T) {
	setupEnv(t)

	for _, arg := range []string{"abc", "0", "-3"} {
		res := run(t, "show", "--", arg)
		require.Error(t, res.err, arg)
		assert.Contains(t, res.err.Error(), "invalid task id")
	}
}

func TestLockedStore(t *testing.T) {
	storePath := setupEnv(t)

	require.NoError(t, run(t, "--lock", "add", "locked").err)
	assert.Len(t, readDoc(t, storePath).Tasks, 1)
	assert.FileExists(t, storePath+".lock")
}

func TestStoreFlagOverridesEnv(t *testing.T) {
	setupEnv(t)
	other := filepath.Join(t.TempDir(), "nested", "other.json")

	require.NoError(t, run(t, "--store", other, "add", "elsewhere").err)
	assert.Equal(t, "elsewhere", readDoc(t, other).Tasks[0].Title)
}

func TestCorruptStore(t *testing.T) {
	storePath := setupEnv(t)
	require.NoError(t, os.WriteFile(storePath, []byte("{not json"), 0o644))

	res := run(t, "list")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), storePath)
}

func TestVersion(t *testing.T) {
	res := run(t, "version")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "taskinder "+Version)
}

func TestUnknownCommand(t *testing.T) {
	res := run(t, "frobnicate")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "unknown command")
}

func TestConfigCommand(t *testing.T) {
	storePath := setupEnv(t)

	res := run(t, "config", "--template", "all")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, storePath)
	assert.Contains(t, res.stdout, "(environment)")
	assert.Contains(t, res.stdout, "(flag)")
	assert.Contains(t, res.stdout, "No config files found.")
}

func TestConfigInit(t *testing.T) {
	setupEnv(t)

	res := run(t, "config", "init")
	require.NoError(t, res.err)
	assert.FileExists(t, "taskinder.toml")

	res = run(t, "config", "init")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "already exists")

	require.NoError(t, run(t, "config", "init", "--force").err)

	res = run(t, "config")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "(project file)")
}

func TestPrintError(t *testing.T) {
	var buf bytes.Buffer
	PrintError(&buf, ErrReported)
	assert.Empty(t, buf.String())

	PrintError(&buf, os.ErrPermission)
	assert.Equal(t, "Error: "+os.ErrPermission.Error()+"\n", buf.String())
}
