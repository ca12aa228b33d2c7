package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPriority_IsValid(t *testing.T) {
	for _, p := range []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent} {
		assert.True(t, p.IsValid(), p.String())
	}
	assert.False(t, Priority("").IsValid())
	assert.False(t, Priority("critical").IsValid())
}

func TestDefaultColumns(t *testing.T) {
	cols := DefaultColumns()

	assert.Equal(t, []ColumnTemplate{
		{Name: "Backlog", Color: "#6b7280"},
		{Name: "To Do", Color: "#6130ba"},
		{Name: "In Progress", Color: "#fd4987"},
		{Name: "Done", Color: "#22c55e"},
	}, cols)
}

func TestProjectPatch_Apply(t *testing.T) {
	due := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	p := Project{Title: "Old", Priority: PriorityLow, Labels: []string{"a"}}

	title := "New"
	prio := PriorityUrgent
	labels := []string{"x", "y"}
	ProjectPatch{Title: &title, Priority: &prio, Labels: &labels, DueDate: &due}.Apply(&p)

	assert.Equal(t, "New", p.Title)
	assert.Equal(t, PriorityUrgent, p.Priority)
	assert.Equal(t, []string{"x", "y"}, p.Labels)
	assert.Equal(t, due, *p.DueDate)

	ProjectPatch{ClearDueDate: true}.Apply(&p)
	assert.Nil(t, p.DueDate)
	assert.Equal(t, "New", p.Title)
}

func TestTaskPatch_Apply(t *testing.T) {
	task := Task{Title: "Write", Position: 2}

	done := true
	TaskPatch{Completed: &done}.Apply(&task)

	assert.True(t, task.Completed)
	assert.Equal(t, "Write", task.Title)
	assert.Equal(t, 2, task.Position)
}
