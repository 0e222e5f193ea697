package page

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/jrnavarro/coursetrack-client/internal/mirror"
	"github.com/jrnavarro/coursetrack-client/internal/models"
)

type guideAPI interface {
	ListSubjects(ctx context.Context) ([]models.Subject, error)
	CareerRecommendation(ctx context.Context) (*models.CareerRecommendation, error)
}

// GuidePage is read-only: subjects grouped by priority (highest first) and
// the career recommendation chart data, both fetched once on start.
type GuidePage struct {
	api      guideAPI
	subjects *mirror.Collection[models.Subject]
	logger   *zap.Logger

	mu             sync.RWMutex
	recommendation *models.CareerRecommendation
}

// NewGuidePage constructs the page.
func NewGuidePage(api guideAPI, logger *zap.Logger) *GuidePage {
	if logger == nil {
		logger = zap.NewNop()
	}
	groupOrder := make([]string, 0, len(models.SubjectPriorities))
	for _, pr := range models.SubjectPriorities {
		groupOrder = append(groupOrder, string(pr))
	}
	p := &GuidePage{api: api, logger: logger}
	p.subjects = mirror.NewCollection(mirror.Options[models.Subject]{
		Name:       "guide_subjects",
		Fetch:      api.ListSubjects,
		ID:         func(s models.Subject) int64 { return s.ID },
		GroupKey:   func(s models.Subject) string { return string(s.Priority) },
		GroupOrder: groupOrder,
		Logger:     logger,
	})
	return p
}

// Start fetches subjects and the recommendation once. A recommendation
// failure is non-fatal; the priority groups still render.
func (p *GuidePage) Start(ctx context.Context) error {
	if err := p.subjects.Start(ctx); err != nil {
		return err
	}
	rec, err := p.api.CareerRecommendation(ctx)
	if err != nil {
		p.logger.Sugar().Warnw("career recommendation fetch failed", "error", err)
		return nil
	}
	p.mu.Lock()
	p.recommendation = rec
	p.mu.Unlock()
	return nil
}

// Stop exists for symmetry with the polled pages.
func (p *GuidePage) Stop() { p.subjects.Stop() }

// Groups returns subjects partitioned by priority, HIGH first.
func (p *GuidePage) Groups() ([]string, map[string][]models.Subject) {
	return p.subjects.Groups()
}

// Recommendation returns the chart data, or nil when unavailable.
func (p *GuidePage) Recommendation() *models.CareerRecommendation {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.recommendation == nil {
		return nil
	}
	rec := *p.recommendation
	return &rec
}
