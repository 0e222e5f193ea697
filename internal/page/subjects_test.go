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

type mockSubjectAPI struct {
	subjects []models.Subject
	nextID   int64

	listCalls   int
	createCalls int
	updateCalls int
	deleteCalls int

	createErr error
	updateErr error
	deleteErr error
}

func (m *mockSubjectAPI) ListSubjects(ctx context.Context) ([]models.Subject, error) {
	m.listCalls++
	out := make([]models.Subject, len(m.subjects))
	copy(out, m.subjects)
	return out, nil
}

func (m *mockSubjectAPI) CreateSubject(ctx context.Context, payload remote.SubjectPayload) (*models.Subject, error) {
	m.createCalls++
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.nextID++
	return &models.Subject{
		ID:          m.nextID + 100,
		SubjectName: payload.SubjectName,
		Category:    payload.Category,
		Status:      payload.Status,
		Priority:    payload.Priority,
	}, nil
}

func (m *mockSubjectAPI) UpdateSubject(ctx context.Context, id int64, payload remote.SubjectPayload) (*models.Subject, error) {
	m.updateCalls++
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	return &models.Subject{
		ID:          id,
		SubjectName: payload.SubjectName,
		Category:    payload.Category,
		Status:      payload.Status,
		Priority:    payload.Priority,
	}, nil
}

func (m *mockSubjectAPI) DeleteSubject(ctx context.Context, id int64) error {
	m.deleteCalls++
	return m.deleteErr
}

func validSubjectDraft() SubjectDraft {
	return SubjectDraft{
		SubjectName: "Operating Systems",
		Category:    models.CategoryProgramming,
		Status:      models.SubjectOngoing,
		Priority:    models.PriorityHigh,
	}
}

func newSubjectsTestPage(t *testing.T, api *mockSubjectAPI) (*SubjectsPage, *notify.Notifier) {
	t.Helper()
	notifier := notify.New(time.Minute)
	p := NewSubjectsPage(SubjectsPageConfig{API: api, Notifier: notifier})
	require.NoError(t, p.Start(context.Background()))
	t.Cleanup(p.Stop)
	return p, notifier
}

func TestSubjectsAddPatchesMirrorAndNotifies(t *testing.T) {
	api := &mockSubjectAPI{}
	p, notifier := newSubjectsTestPage(t, api)

	p.Form().OpenAdd()
	require.NoError(t, p.Add(context.Background(), validSubjectDraft()))

	assert.Equal(t, 1, api.createCalls)
	assert.Equal(t, 1, api.listCalls, "no refetch after a mutation, only the local patch")

	subjects := p.Subjects()
	require.Len(t, subjects, 1)
	assert.Equal(t, "Operating Systems", subjects[0].SubjectName)

	assert.Equal(t, form.ModeClosed, p.Form().Mode())
	assert.Equal(t, defaultSubjectDraft(), p.Form().Draft(), "draft resets after a successful save")

	msg := notifier.Current()
	require.NotNil(t, msg)
	assert.Equal(t, notify.KindSuccess, msg.Kind)
	assert.Equal(t, "Subject added successfully!", msg.Text)
}

func TestSubjectsAddValidationShortCircuitsNetwork(t *testing.T) {
	api := &mockSubjectAPI{}
	p, notifier := newSubjectsTestPage(t, api)

	p.Form().OpenAdd()
	err := p.Add(context.Background(), SubjectDraft{Category: models.CategoryProgramming, Status: models.SubjectPending, Priority: models.PriorityLow})

	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Zero(t, api.createCalls, "invalid drafts never reach the backend")
	assert.Empty(t, p.Subjects())
	assert.Equal(t, form.ModeAdding, p.Form().Mode(), "modal stays open on failure")

	msg := notifier.Current()
	require.NotNil(t, msg)
	assert.Equal(t, notify.KindError, msg.Kind)
	assert.Equal(t, "Please enter a subject name.", msg.Text)
}

func TestSubjectsAddInvalidEnumRejected(t *testing.T) {
	api := &mockSubjectAPI{}
	p, _ := newSubjectsTestPage(t, api)

	draft := validSubjectDraft()
	draft.Priority = "URGENT"
	err := p.Add(context.Background(), draft)

	require.Error(t, err)
	assert.Zero(t, api.createCalls)
}

func TestSubjectsAddRemoteFailureLeavesMirrorUntouched(t *testing.T) {
	api := &mockSubjectAPI{createErr: appErrors.ErrTransport}
	p, notifier := newSubjectsTestPage(t, api)

	p.Form().OpenAdd()
	err := p.Add(context.Background(), validSubjectDraft())

	require.Error(t, err)
	assert.Empty(t, p.Subjects())
	assert.Equal(t, form.ModeAdding, p.Form().Mode())
	assert.False(t, p.Form().InFlight(), "guard releases after failure")

	msg := notifier.Current()
	require.NotNil(t, msg)
	assert.Equal(t, notify.KindError, msg.Kind)
	assert.Equal(t, "Failed to add subject. Try again.", msg.Text)
}

func TestSubjectsEditMovesBetweenCategoryGroups(t *testing.T) {
	api := &mockSubjectAPI{subjects: []models.Subject{
		{ID: 1, SubjectName: "Networks", Category: models.CategoryProgramming, Status: models.SubjectOngoing, Priority: models.PriorityLow},
	}}
	p, _ := newSubjectsTestPage(t, api)

	require.NoError(t, p.OpenEdit(1))
	draft := p.Form().Draft()
	assert.Equal(t, "Networks", draft.SubjectName, "edit modal seeds from current values")

	draft.Category = models.CategoryNetworking
	require.NoError(t, p.Edit(context.Background(), 1, draft))

	_, groups := p.Groups()
	assert.Empty(t, groups[string(models.CategoryProgramming)])
	require.Len(t, groups[string(models.CategoryNetworking)], 1)
	assert.EqualValues(t, 1, groups[string(models.CategoryNetworking)][0].ID)
}

func TestSubjectsOpenEditUnknownID(t *testing.T) {
	p, _ := newSubjectsTestPage(t, &mockSubjectAPI{})

	err := p.OpenEdit(99)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestSubjectsDeleteRequiresPendingTarget(t *testing.T) {
	api := &mockSubjectAPI{}
	p, _ := newSubjectsTestPage(t, api)

	err := p.Delete(context.Background())
	require.Error(t, err)
	assert.Zero(t, api.deleteCalls)
}

func TestSubjectsDeleteRemovesFromMirror(t *testing.T) {
	api := &mockSubjectAPI{subjects: []models.Subject{
		{ID: 1, SubjectName: "Networks", Category: models.CategoryNetworking},
		{ID: 2, SubjectName: "Databases", Category: models.CategoryDatabase},
	}}
	p, notifier := newSubjectsTestPage(t, api)

	p.BeginDelete(2)
	require.NoError(t, p.Delete(context.Background()))

	assert.Equal(t, 1, api.deleteCalls)
	subjects := p.Subjects()
	require.Len(t, subjects, 1)
	assert.EqualValues(t, 1, subjects[0].ID)
	assert.Equal(t, form.ModeClosed, p.Form().Mode())

	msg := notifier.Current()
	require.NotNil(t, msg)
	assert.Equal(t, "Subject deleted successfully!", msg.Text)
}

func TestSubjectsCancelDeleteIssuesNoRequest(t *testing.T) {
	api := &mockSubjectAPI{subjects: []models.Subject{{ID: 1, Category: models.CategoryProgramming}}}
	p, _ := newSubjectsTestPage(t, api)

	p.BeginDelete(1)
	p.CancelDelete()

	assert.Zero(t, api.deleteCalls)
	assert.Len(t, p.Subjects(), 1)
	assert.Equal(t, form.ModeClosed, p.Form().Mode())
}

func TestSubjectsMutationInFlightGuard(t *testing.T) {
	api := &mockSubjectAPI{}
	p, _ := newSubjectsTestPage(t, api)

	require.True(t, p.Form().TryBegin(), "simulate a mutation already running")
	err := p.Add(context.Background(), validSubjectDraft())

	require.Error(t, err)
	assert.Equal(t, appErrors.ErrMutationInFlight.Code, appErrors.FromError(err).Code)
	assert.Zero(t, api.createCalls)
}

func TestSubjectsGroupsKeepFixedCategoryOrder(t *testing.T) {
	api := &mockSubjectAPI{subjects: []models.Subject{
		{ID: 1, Category: models.CategorySecurity},
	}}
	p, _ := newSubjectsTestPage(t, api)

	keys, groups := p.Groups()
	want := make([]string, 0, len(models.SubjectCategories))
	for _, c := range models.SubjectCategories {
		want = append(want, string(c))
	}
	assert.Equal(t, want, keys)
	assert.Empty(t, groups[string(models.CategoryProgramming)], "empty categories still render")
	assert.Len(t, groups[string(models.CategorySecurity)], 1)
}
