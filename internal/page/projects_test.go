package page

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jrnavarro/coursetrack-client/internal/form"
	"github.com/jrnavarro/coursetrack-client/internal/models"
	"github.com/jrnavarro/coursetrack-client/internal/notify"
	"github.com/jrnavarro/coursetrack-client/internal/remote"
	appErrors "github.com/jrnavarro/coursetrack-client/pkg/errors"
)

type mockProjectAPI struct {
	projects []models.Project
	nextID   int64

	createCalls int

	createErr error
	updateErr error
	deleteErr error
}

func (m *mockProjectAPI) ListProjects(ctx context.Context) ([]models.Project, error) {
	out := make([]models.Project, len(m.projects))
	copy(out, m.projects)
	return out, nil
}

func (m *mockProjectAPI) CreateProject(ctx context.Context, payload remote.ProjectPayload) (*models.Project, error) {
	m.createCalls++
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.nextID++
	return &models.Project{ID: m.nextID + 500, Title: payload.Title, Description: payload.Description, Status: payload.Status, CreatedAt: time.Now()}, nil
}

func (m *mockProjectAPI) UpdateProject(ctx context.Context, id int64, payload remote.ProjectPayload) (*models.Project, error) {
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	return &models.Project{ID: id, Title: payload.Title, Description: payload.Description, Status: payload.Status}, nil
}

func (m *mockProjectAPI) DeleteProject(ctx context.Context, id int64) error { return m.deleteErr }

func newProjectsTestPage(t *testing.T, api *mockProjectAPI) (*ProjectsPage, *notify.Notifier) {
	t.Helper()
	notifier := notify.New(time.Minute)
	p := NewProjectsPage(ProjectsPageConfig{API: api, Notifier: notifier})
	require.NoError(t, p.Start(context.Background()))
	t.Cleanup(p.Stop)
	return p, notifier
}

func TestProjectsSortedByCreation(t *testing.T) {
	now := time.Now()
	api := &mockProjectAPI{projects: []models.Project{
		{ID: 2, Title: "newer", CreatedAt: now},
		{ID: 1, Title: "older", CreatedAt: now.Add(-time.Hour)},
	}}
	p, _ := newProjectsTestPage(t, api)

	projects := p.Projects()
	require.Len(t, projects, 2)
	assert.Equal(t, "older", projects[0].Title)
}

func TestProjectsAdd(t *testing.T) {
	p, notifier := newProjectsTestPage(t, &mockProjectAPI{})

	p.Form().OpenAdd()
	assert.Equal(t, models.ProjectNotStarted, p.Form().Draft().Status, "new drafts start as not started")

	require.NoError(t, p.Add(context.Background(), ProjectDraft{Title: "Thesis", Status: models.ProjectInProgress}))

	projects := p.Projects()
	require.Len(t, projects, 1)
	assert.Equal(t, "Thesis", projects[0].Title)
	assert.Equal(t, form.ModeClosed, p.Form().Mode())
	assert.Equal(t, "Project added successfully!", notifier.Current().Text)
}

func TestProjectsAddInvalidStatus(t *testing.T) {
	api := &mockProjectAPI{}
	p, notifier := newProjectsTestPage(t, api)

	err := p.Add(context.Background(), ProjectDraft{Title: "Thesis", Status: "SHIPPED"})
	require.Error(t, err)
	assert.Zero(t, api.createCalls)
	assert.Equal(t, "Invalid value for status.", notifier.Current().Text)
}

func TestProjectsEdit(t *testing.T) {
	api := &mockProjectAPI{projects: []models.Project{
		{ID: 1, Title: "Thesis", Status: models.ProjectInProgress},
	}}
	p, _ := newProjectsTestPage(t, api)

	require.NoError(t, p.OpenEdit(1))
	draft := p.Form().Draft()
	draft.Status = models.ProjectCompleted
	require.NoError(t, p.Edit(context.Background(), 1, draft))

	projects := p.Projects()
	assert.Equal(t, models.ProjectCompleted, projects[0].Status)
}

func TestProjectsEditFailureKeepsMirror(t *testing.T) {
	api := &mockProjectAPI{
		projects:  []models.Project{{ID: 1, Title: "Thesis", Status: models.ProjectInProgress}},
		updateErr: appErrors.ErrTransport,
	}
	p, notifier := newProjectsTestPage(t, api)

	require.NoError(t, p.OpenEdit(1))
	draft := p.Form().Draft()
	draft.Status = models.ProjectCompleted
	err := p.Edit(context.Background(), 1, draft)

	require.Error(t, err)
	assert.Equal(t, models.ProjectInProgress, p.Projects()[0].Status)
	assert.Equal(t, form.ModeEditing, p.Form().Mode(), "modal stays open to retry")
	assert.Equal(t, "Failed to update project. Try again.", notifier.Current().Text)
}

func TestProjectsDelete(t *testing.T) {
	api := &mockProjectAPI{projects: []models.Project{{ID: 1, Title: "Thesis"}}}
	p, _ := newProjectsTestPage(t, api)

	p.BeginDelete(1)
	require.NoError(t, p.Delete(context.Background()))
	assert.Empty(t, p.Projects())
}
