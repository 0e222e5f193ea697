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

type mockNoteAPI struct {
	groups   []models.NoteGroup
	subjects []models.Subject
	nextID   int64

	createCalls int
	deleteCalls int

	createErr error
	updateErr error
	deleteErr error
}

func (m *mockNoteAPI) FetchNoteGroups(ctx context.Context) ([]models.NoteGroup, error) {
	out := make([]models.NoteGroup, len(m.groups))
	copy(out, m.groups)
	return out, nil
}

func (m *mockNoteAPI) CreateNote(ctx context.Context, payload remote.NotePayload) (*models.Note, error) {
	m.createCalls++
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.nextID++
	return &models.Note{ID: m.nextID + 200, Title: payload.Title, Content: payload.Content, SubjectID: payload.SubjectID}, nil
}

func (m *mockNoteAPI) UpdateNote(ctx context.Context, id int64, payload remote.NotePayload) (*models.Note, error) {
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	return &models.Note{ID: id, Title: payload.Title, Content: payload.Content, SubjectID: payload.SubjectID}, nil
}

func (m *mockNoteAPI) DeleteNote(ctx context.Context, id int64) error {
	m.deleteCalls++
	return m.deleteErr
}

func (m *mockNoteAPI) ListSubjects(ctx context.Context) ([]models.Subject, error) {
	out := make([]models.Subject, len(m.subjects))
	copy(out, m.subjects)
	return out, nil
}

func newNotesTestPage(t *testing.T, api *mockNoteAPI) (*NotesPage, *notify.Notifier) {
	t.Helper()
	notifier := notify.New(time.Minute)
	p := NewNotesPage(NotesPageConfig{API: api, Notifier: notifier})
	require.NoError(t, p.Start(context.Background()))
	t.Cleanup(p.Stop)
	return p, notifier
}

func TestNotesOpenAddRequiresASubject(t *testing.T) {
	p, notifier := newNotesTestPage(t, &mockNoteAPI{})

	err := p.OpenAdd()
	require.Error(t, err)
	assert.Equal(t, form.ModeClosed, p.Form().Mode())

	msg := notifier.Current()
	require.NotNil(t, msg)
	assert.Equal(t, "Please add a subject first before creating notes.", msg.Text)
}

func TestNotesAddIntoExistingGroup(t *testing.T) {
	api := &mockNoteAPI{
		subjects: []models.Subject{{ID: 2, SubjectName: "Databases"}},
		groups: []models.NoteGroup{{
			SubjectID:   2,
			SubjectName: "Databases",
			Notes:       []models.Note{{ID: 9, Title: "Normalization", SubjectID: 2}},
		}},
	}
	p, notifier := newNotesTestPage(t, api)

	require.NoError(t, p.OpenAdd())
	require.NoError(t, p.Add(context.Background(), NoteDraft{Title: "Indexes", Content: "B-trees", SubjectID: 2}))

	groups := p.Groups()
	require.Len(t, groups, 1)
	require.Len(t, groups[0].Notes, 2)
	assert.Equal(t, "Indexes", groups[0].Notes[1].Title)
	assert.Equal(t, form.ModeClosed, p.Form().Mode())
	assert.Equal(t, "Note added successfully!", notifier.Current().Text)
}

func TestNotesAddCreatesNewGroup(t *testing.T) {
	api := &mockNoteAPI{
		subjects: []models.Subject{{ID: 3, SubjectName: "Security"}},
	}
	p, _ := newNotesTestPage(t, api)

	require.NoError(t, p.OpenAdd())
	require.NoError(t, p.Add(context.Background(), NoteDraft{Title: "Hashing", Content: "bcrypt", SubjectID: 3}))

	groups := p.Groups()
	require.Len(t, groups, 1)
	assert.EqualValues(t, 3, groups[0].SubjectID)
	assert.Equal(t, "Security", groups[0].SubjectName, "group label resolved from the subjects mirror")
	require.Len(t, groups[0].Notes, 1)
}

func TestNotesAddRequiresSelectedSubject(t *testing.T) {
	api := &mockNoteAPI{subjects: []models.Subject{{ID: 1, SubjectName: "Math"}}}
	p, notifier := newNotesTestPage(t, api)

	err := p.Add(context.Background(), NoteDraft{Title: "t", Content: "c"})
	require.Error(t, err)
	assert.Zero(t, api.createCalls)
	assert.Equal(t, "Please select a subject.", notifier.Current().Text)
}

func TestNotesAddValidationShortCircuits(t *testing.T) {
	api := &mockNoteAPI{subjects: []models.Subject{{ID: 1, SubjectName: "Math"}}}
	p, notifier := newNotesTestPage(t, api)

	err := p.Add(context.Background(), NoteDraft{Content: "c", SubjectID: 1})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Zero(t, api.createCalls)
	assert.Equal(t, "Please enter a title.", notifier.Current().Text)
}

func TestNotesEditReplacesInPlace(t *testing.T) {
	api := &mockNoteAPI{
		subjects: []models.Subject{{ID: 2, SubjectName: "Databases"}},
		groups: []models.NoteGroup{{
			SubjectID:   2,
			SubjectName: "Databases",
			Notes: []models.Note{
				{ID: 9, Title: "Normalization", Content: "3NF", SubjectID: 2},
				{ID: 10, Title: "Indexes", Content: "B-trees", SubjectID: 2},
			},
		}},
	}
	p, _ := newNotesTestPage(t, api)

	require.NoError(t, p.OpenEdit(9))
	draft := p.Form().Draft()
	assert.Equal(t, "Normalization", draft.Title)

	draft.Content = "up to BCNF"
	require.NoError(t, p.Edit(context.Background(), 9, draft))

	groups := p.Groups()
	require.Len(t, groups[0].Notes, 2)
	assert.Equal(t, "up to BCNF", groups[0].Notes[0].Content)
	assert.Equal(t, "Indexes", groups[0].Notes[1].Title, "sibling notes untouched")
}

func TestNotesDeleteDropsEmptyGroup(t *testing.T) {
	api := &mockNoteAPI{
		subjects: []models.Subject{{ID: 2, SubjectName: "Databases"}},
		groups: []models.NoteGroup{{
			SubjectID:   2,
			SubjectName: "Databases",
			Notes:       []models.Note{{ID: 9, Title: "Normalization", SubjectID: 2}},
		}},
	}
	p, _ := newNotesTestPage(t, api)

	p.BeginDelete(9)
	require.NoError(t, p.Delete(context.Background()))

	assert.Equal(t, 1, api.deleteCalls)
	assert.Empty(t, p.Groups(), "a group with no notes left disappears")
}

func TestNotesDeleteFailureKeepsMirror(t *testing.T) {
	api := &mockNoteAPI{
		subjects:  []models.Subject{{ID: 2, SubjectName: "Databases"}},
		groups:    []models.NoteGroup{{SubjectID: 2, SubjectName: "Databases", Notes: []models.Note{{ID: 9, SubjectID: 2}}}},
		deleteErr: appErrors.ErrTransport,
	}
	p, notifier := newNotesTestPage(t, api)

	p.BeginDelete(9)
	err := p.Delete(context.Background())

	require.Error(t, err)
	require.Len(t, p.Groups(), 1)
	require.Len(t, p.Groups()[0].Notes, 1)
	assert.Equal(t, "Failed to delete note. Try again.", notifier.Current().Text)
}

func TestNotesSearchFiltersBySubjectName(t *testing.T) {
	api := &mockNoteAPI{groups: []models.NoteGroup{
		{SubjectID: 1, SubjectName: "Data Structures"},
		{SubjectID: 2, SubjectName: "Databases"},
		{SubjectID: 3, SubjectName: "Security"},
	}}
	p, _ := newNotesTestPage(t, api)

	assert.Len(t, p.Search(""), 3)
	assert.Len(t, p.Search("data"), 2, "match is case-insensitive and substring-based")

	matched := p.Search("SECURITY")
	require.Len(t, matched, 1)
	assert.EqualValues(t, 3, matched[0].SubjectID)

	assert.Empty(t, p.Search("biology"))
}
