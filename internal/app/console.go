package app

import (
	"context"
	"sync"

	"jobmatch/internal/observability"
)

// Console is the administrator's entry point. Mutations are serialized so a
// shared HTTP adapter behaves like the single session the storage assumes.
type Console struct {
	mu         sync.Mutex
	pipeline   *PipelineService
	views      *ViewService
	selections *SelectionService
	resumes    *ResumeService
	normalizer *Normalizer
	admins     *AdminService
	logger     *observability.Logger
}

func NewConsole(pipeline *PipelineService, views *ViewService, selections *SelectionService, resumes *ResumeService, normalizer *Normalizer, admins *AdminService, logger *observability.Logger) *Console {
	return &Console{
		pipeline:   pipeline,
		views:      views,
		selections: selections,
		resumes:    resumes,
		normalizer: normalizer,
		admins:     admins,
		logger:     logger,
	}
}

// Bootstrap runs the load-time normalization once at startup.
func (c *Console) Bootstrap(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, err := c.admins.EnsureAdmin(ctx); err != nil {
		return err
	}
	users, err := c.normalizer.LoadUsers(ctx)
	if err != nil {
		return err
	}
	companies, err := c.normalizer.LoadCompanies(ctx)
	if err != nil {
		return err
	}
	c.logger.Info("console bootstrapped", "users", len(users), "companies", len(companies))
	return nil
}

func (c *Console) SetPipelineState(ctx context.Context, userID string, update PipelineUpdate) (*SyncResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pipeline.SetPipelineState(ctx, userID, update)
}

func (c *Console) GetFilteredView(ctx context.Context, kind ViewKind, query, statusFilter string) (View, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.views.FilteredView(ctx, ViewQuery{Kind: kind, Query: query, Status: statusFilter})
}

// BulkDelete deletes exactly ids without asking again. The admin's current
// selection is not replaced.
func (c *Console) BulkDelete(ctx context.Context, kind ViewKind, ids []string) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selections.DeleteIDs(ctx, kind, ids)
}

func (c *Console) SelectAll(ctx context.Context, kind ViewKind, query, statusFilter string) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selections.SelectAll(ctx, kind, query, statusFilter)
}

func (c *Console) ToggleSelection(kind ViewKind, id string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selections.Toggle(kind, id)
}

func (c *Console) Selection(kind ViewKind) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selections.Selected(kind)
}

func (c *Console) ClearSelection(kind ViewKind) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selections.Clear(kind)
}

// DeleteSelected deletes the current selection after confirm agrees.
func (c *Console) DeleteSelected(ctx context.Context, kind ViewKind, confirm Confirmer) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selections.BulkDelete(ctx, kind, confirm)
}

func (c *Console) DeleteRecord(ctx context.Context, kind ViewKind, id string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selections.DeleteOne(ctx, kind, id)
}

func (c *Console) DeleteUser(ctx context.Context, id string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selections.DeleteUser(ctx, id)
}

func (c *Console) Resume(ctx context.Context, userID string) (*Resume, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.resumes.Resolve(ctx, userID)
}

func (c *Console) UpdateProfile(ctx context.Context, userID string, changes ProfileChanges) (*ProfileUpdateResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.resumes.UpdateProfile(ctx, userID, changes)
}
