package page

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jrnavarro/coursetrack-client/internal/models"
	appErrors "github.com/jrnavarro/coursetrack-client/pkg/errors"
)

type mockGuideAPI struct {
	subjects       []models.Subject
	recommendation *models.CareerRecommendation
	recErr         error
}

func (m *mockGuideAPI) ListSubjects(ctx context.Context) ([]models.Subject, error) {
	out := make([]models.Subject, len(m.subjects))
	copy(out, m.subjects)
	return out, nil
}

func (m *mockGuideAPI) CareerRecommendation(ctx context.Context) (*models.CareerRecommendation, error) {
	if m.recErr != nil {
		return nil, m.recErr
	}
	rec := *m.recommendation
	return &rec, nil
}

func TestGuideGroupsByPriorityHighestFirst(t *testing.T) {
	api := &mockGuideAPI{
		subjects: []models.Subject{
			{ID: 1, SubjectName: "Electives", Priority: models.PriorityLow},
			{ID: 2, SubjectName: "Capstone", Priority: models.PriorityHigh},
		},
		recommendation: &models.CareerRecommendation{RecommendedCareer: "Software Engineer"},
	}
	p := NewGuidePage(api, nil)
	require.NoError(t, p.Start(context.Background()))
	defer p.Stop()

	keys, groups := p.Groups()
	assert.Equal(t, []string{"HIGH", "MODERATE", "LOW"}, keys)
	require.Len(t, groups["HIGH"], 1)
	assert.Equal(t, "Capstone", groups["HIGH"][0].SubjectName)
	assert.Empty(t, groups["MODERATE"], "empty priority bands still render")

	rec := p.Recommendation()
	require.NotNil(t, rec)
	assert.Equal(t, "Software Engineer", rec.RecommendedCareer)
}

func TestGuideRecommendationFailureIsNonFatal(t *testing.T) {
	api := &mockGuideAPI{
		subjects: []models.Subject{{ID: 1, Priority: models.PriorityHigh}},
		recErr:   appErrors.ErrTransport,
	}
	p := NewGuidePage(api, nil)

	require.NoError(t, p.Start(context.Background()), "priority groups still render without the chart")
	defer p.Stop()

	assert.Nil(t, p.Recommendation())
	_, groups := p.Groups()
	assert.Len(t, groups["HIGH"], 1)
}
