package page

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Pages groups every dashboard page for lifecycle management. StartAll is
// invoked once a session exists; a page whose initial fetch fails is
// logged and skipped so one bad endpoint does not keep the rest of the
// dashboard dark.
type Pages struct {
	Subjects *SubjectsPage
	Notes    *NotesPage
	Projects *ProjectsPage
	Status   *StatusPage
	Profile  *ProfilePage
	Guide    *GuidePage

	logger *zap.Logger

	mu      sync.Mutex
	started bool
}

// NewPages bundles the pages.
func NewPages(subjects *SubjectsPage, notes *NotesPage, projects *ProjectsPage, status *StatusPage, profile *ProfilePage, guide *GuidePage, logger *zap.Logger) *Pages {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pages{
		Subjects: subjects,
		Notes:    notes,
		Projects: projects,
		Status:   status,
		Profile:  profile,
		Guide:    guide,
		logger:   logger,
	}
}

type runner interface {
	Start(ctx context.Context) error
	Stop()
}

type namedRunner struct {
	name string
	run  runner
}

// runners skips unset pages with concrete nil checks; wrapping a nil
// pointer in the interface first would defeat the check.
func (p *Pages) runners() []namedRunner {
	out := make([]namedRunner, 0, 6)
	if p.Subjects != nil {
		out = append(out, namedRunner{"subjects", p.Subjects})
	}
	if p.Notes != nil {
		out = append(out, namedRunner{"notes", p.Notes})
	}
	if p.Projects != nil {
		out = append(out, namedRunner{"projects", p.Projects})
	}
	if p.Status != nil {
		out = append(out, namedRunner{"status", p.Status})
	}
	if p.Profile != nil {
		out = append(out, namedRunner{"profile", p.Profile})
	}
	if p.Guide != nil {
		out = append(out, namedRunner{"guide", p.Guide})
	}
	return out
}

// StartAll fetches every page's initial state and begins the poll loops.
// Safe to call more than once; later calls are no-ops.
func (p *Pages) StartAll(ctx context.Context) {
	p.mu.Lock()
	if p.started {
		p.mu.Unlock()
		return
	}
	p.started = true
	p.mu.Unlock()

	for _, nr := range p.runners() {
		if err := nr.run.Start(ctx); err != nil {
			p.logger.Sugar().Warnw("page start failed", "page", nr.name, "error", err)
		}
	}
}

// StopAll cancels every poll loop.
func (p *Pages) StopAll() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.started {
		return
	}
	p.started = false
	for _, nr := range p.runners() {
		nr.run.Stop()
	}
}
