package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDerivedStatus(t *testing.T) {
	tests := []struct {
		name  string
		tasks []Task
		want  ListStatus
	}{
		{
			name:  "empty list is ongoing",
			tasks: nil,
			want:  ListOngoing,
		},
		{
			name:  "one incomplete task",
			tasks: []Task{{ID: 1, Label: "read chapter", Completed: false}},
			want:  ListOngoing,
		},
		{
			name: "mixed tasks",
			tasks: []Task{
				{ID: 1, Completed: true},
				{ID: 2, Completed: false},
			},
			want: ListOngoing,
		},
		{
			name: "all tasks complete",
			tasks: []Task{
				{ID: 1, Completed: true},
				{ID: 2, Completed: true},
			},
			want: ListCompleted,
		},
		{
			name:  "single complete task",
			tasks: []Task{{ID: 1, Completed: true}},
			want:  ListCompleted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list := TodoList{ID: 1, Title: "finals prep", Tasks: tt.tasks}
			assert.Equal(t, tt.want, list.DerivedStatus())
		})
	}
}
