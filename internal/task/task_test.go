package task_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nibzard/taskinder-go/internal/task"
)

func TestNew(t *testing.T) {
	tsk, err := task.New(1, "Buy milk", "2 litres")

	require.NoError(t, err)
	assert.Equal(t, 1, tsk.ID())
	assert.Equal(t, "Buy milk", tsk.Title())
	assert.Equal(t, "2 litres", tsk.Description())
	assert.Equal(t, task.StatusTodo, tsk.Status())
	assert.False(t, tsk.CreatedAt().IsZero())
	assert.True(t, tsk.UpdatedAt().Equal(tsk.CreatedAt()))
	assert.Equal(t, time.UTC, tsk.CreatedAt().Location())
}

func TestNew_EmptyTitle(t *testing.T) {
	for _, title := range []string{"", "   ", "\t\n"} {
		t.Run(title, func(t *testing.T) {
			_, err := task.New(1, title, "")

			require.Error(t, err)
			assert.ErrorIs(t, err, task.ErrEmptyTitle)
			var vErr *task.ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, "title", vErr.Field)
		})
	}
}

func TestNew_WithOptions(t *testing.T) {
	created := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	updated := created.Add(time.Hour)

	tsk, err := task.New(7, "Write report", "", task.WithStatus(task.StatusDoing), task.WithTimestamps(created, updated))

	require.NoError(t, err)
	assert.Equal(t, task.StatusDoing, tsk.Status())
	assert.True(t, tsk.CreatedAt().Equal(created))
	assert.True(t, tsk.UpdatedAt().Equal(updated))
}

func TestNew_InvalidStatus(t *testing.T) {
	_, err := task.New(1, "Test", "", task.WithStatus("BLOCKED"))

	require.Error(t, err)
	assert.ErrorIs(t, err, task.ErrInvalidStatus)
	var vErr *task.ValidationError
	require.True(t, errors.As(err, &vErr), "expected *ValidationError, got %T", err)
	assert.Equal(t, "status", vErr.Field)
	var fErr *task.FormatError
	assert.False(t, errors.As(err, &fErr))
}

func TestNew_UpdatedBeforeCreated(t *testing.T) {
	created := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

	_, err := task.New(1, "Test", "", task.WithTimestamps(created, created.Add(-time.Second)))

	require.Error(t, err)
	assert.ErrorIs(t, err, task.ErrInvalidTimestamp)
}

func TestTask_Rename(t *testing.T) {
	tsk, _ := task.New(1, "Original", "")
	before := tsk.UpdatedAt()

	err := tsk.Rename("Updated")

	require.NoError(t, err)
	assert.Equal(t, "Updated", tsk.Title())
	assert.True(t, tsk.UpdatedAt().After(before))
}

func TestTask_Rename_Empty(t *testing.T) {
	tsk, _ := task.New(1, "Original", "")
	before := tsk.UpdatedAt()

	err := tsk.Rename("")

	require.Error(t, err)
	assert.ErrorIs(t, err, task.ErrEmptyTitle)
	assert.Equal(t, "Original", tsk.Title())
	assert.True(t, tsk.UpdatedAt().Equal(before))
}

func TestTask_SetStatus(t *testing.T) {
	tsk, _ := task.New(1, "Test", "")
	before := tsk.UpdatedAt()

	err := tsk.SetStatus(task.StatusDone)

	require.NoError(t, err)
	assert.Equal(t, task.StatusDone, tsk.Status())
	assert.True(t, tsk.UpdatedAt().After(before))
}

func TestTask_SetStatus_SameStatusRefreshesTimestamp(t *testing.T) {
	tsk, _ := task.New(1, "Test", "")
	before := tsk.UpdatedAt()

	err := tsk.SetStatus(task.StatusTodo)

	require.NoError(t, err)
	assert.Equal(t, task.StatusTodo, tsk.Status())
	assert.True(t, tsk.UpdatedAt().After(before))
}

func TestTask_SetStatus_Invalid(t *testing.T) {
	tsk, _ := task.New(1, "Test", "")

	err := tsk.SetStatus("done")

	require.Error(t, err)
	assert.ErrorIs(t, err, task.ErrInvalidStatus)
	assert.Equal(t, task.StatusTodo, tsk.Status())
}

func TestTask_SetDescription(t *testing.T) {
	tsk, _ := task.New(1, "Test", "old")
	before := tsk.UpdatedAt()

	tsk.SetDescription("new")

	assert.Equal(t, "new", tsk.Description())
	assert.True(t, tsk.UpdatedAt().After(before))
}

func TestTask_MutationsKeepCreatedAt(t *testing.T) {
	tsk, _ := task.New(1, "Test", "")
	created := tsk.CreatedAt()

	require.NoError(t, tsk.Rename("Renamed"))
	require.NoError(t, tsk.SetStatus(task.StatusDoing))
	tsk.SetDescription("details")

	assert.True(t, tsk.CreatedAt().Equal(created))
	assert.False(t, tsk.UpdatedAt().Before(tsk.CreatedAt()))
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		input   string
		want    task.Status
		wantErr bool
	}{
		{"TODO", task.StatusTodo, false},
		{"DOING", task.StatusDoing, false},
		{"DONE", task.StatusDone, false},
		{"done", "", true},
		{"BLOCKED", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := task.ParseStatus(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, task.ErrInvalidStatus)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
