package page

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jrnavarro/coursetrack-client/internal/models"
)

func TestPagesLifecycleSkipsUnsetPages(t *testing.T) {
	api := &mockTodoListAPI{lists: []models.TodoList{{ID: 1, Title: "prep"}}}
	status := NewStatusPage(StatusPageConfig{API: api})
	pages := NewPages(nil, nil, nil, status, nil, nil, nil)

	// must not panic on the nil pages
	pages.StartAll(context.Background())
	require.Len(t, status.Lists(), 1)

	pages.StopAll()
	pages.StopAll()
}

func TestPagesRestartAfterStopAll(t *testing.T) {
	api := &mockTodoListAPI{lists: []models.TodoList{{ID: 1, Title: "prep"}}}
	status := NewStatusPage(StatusPageConfig{API: api})
	pages := NewPages(nil, nil, nil, status, nil, nil, nil)

	pages.StartAll(context.Background())
	pages.StopAll()

	api.lists = append(api.lists, models.TodoList{ID: 2, Title: "review"})
	pages.StartAll(context.Background())
	defer pages.StopAll()

	assert.Len(t, status.Lists(), 2, "a fresh login refetches every page")
}
