package app

import (
	"context"
	"sort"
	"sync"

	"jobmatch/internal/common"
	"jobmatch/internal/domain/application"
	"jobmatch/internal/domain/proposal"
	"jobmatch/internal/domain/user"
	"jobmatch/internal/observability"
)

// Confirmer is asked before a bulk delete mutates anything. Returning false
// cancels the delete and keeps the selection.
type Confirmer func(count int) bool

// AlwaysConfirm is used when the caller already confirmed out of band.
func AlwaysConfirm(int) bool { return true }

// SelectionService tracks the selected record ids of the applications and
// proposals views. The selection is the source of truth for bulk deletes:
// changing the filter never prunes it.
type SelectionService struct {
	mu           sync.Mutex
	selected     map[ViewKind]map[string]struct{}
	views        *ViewService
	users        user.Repository
	applications application.Repository
	proposals    proposal.Repository
	logger       *observability.Logger
}

func NewSelectionService(views *ViewService, users user.Repository, applications application.Repository, proposals proposal.Repository, logger *observability.Logger) *SelectionService {
	return &SelectionService{
		selected: map[ViewKind]map[string]struct{}{
			ViewApplications: {},
			ViewProposals:    {},
		},
		views:        views,
		users:        users,
		applications: applications,
		proposals:    proposals,
		logger:       logger,
	}
}

func selectableKind(kind ViewKind) error {
	if kind != ViewApplications && kind != ViewProposals {
		return common.NewValidationError("invalid selection", map[string]string{"kind": "kind must be applications or proposals"})
	}
	return nil
}

// SelectAll replaces the selection with exactly the ids visible under the
// given filter.
func (s *SelectionService) SelectAll(ctx context.Context, kind ViewKind, query, status string) ([]string, error) {
	if err := selectableKind(kind); err != nil {
		return nil, err
	}
	view, err := s.views.FilteredView(ctx, ViewQuery{Kind: kind, Query: query, Status: status})
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	set := make(map[string]struct{}, view.Len())
	for _, id := range view.IDs() {
		set[id] = struct{}{}
	}
	s.selected[kind] = set
	return sortedIDs(set), nil
}

// Replace sets the selection to ids verbatim.
func (s *SelectionService) Replace(kind ViewKind, ids []string) error {
	if err := selectableKind(kind); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id = common.NormalizeID(id); id != "" {
			set[id] = struct{}{}
		}
	}
	s.selected[kind] = set
	return nil
}

// Toggle flips one id and reports whether it is selected afterwards.
func (s *SelectionService) Toggle(kind ViewKind, id string) (bool, error) {
	if err := selectableKind(kind); err != nil {
		return false, err
	}
	id = common.NormalizeID(id)
	if id == "" {
		return false, common.NewValidationError("invalid request", map[string]string{"id": "id is required"})
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	set := s.selected[kind]
	if _, ok := set[id]; ok {
		delete(set, id)
		return false, nil
	}
	set[id] = struct{}{}
	return true, nil
}

func (s *SelectionService) Selected(kind ViewKind) ([]string, error) {
	if err := selectableKind(kind); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedIDs(s.selected[kind]), nil
}

func (s *SelectionService) Clear(kind ViewKind) error {
	if err := selectableKind(kind); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected[kind] = map[string]struct{}{}
	return nil
}

// BulkDelete removes every selected id from the kind's collection with a
// single persist and then clears the selection. Ids that no longer exist are
// skipped. A declined confirmation or a failed persist leaves both the
// collection and the selection unchanged.
func (s *SelectionService) BulkDelete(ctx context.Context, kind ViewKind, confirm Confirmer) (int, error) {
	if err := selectableKind(kind); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	set := s.selected[kind]
	if len(set) == 0 {
		return 0, nil
	}
	if confirm == nil || !confirm(len(set)) {
		return 0, common.NewError(common.CodeConflict, "bulk delete was not confirmed", nil)
	}
	removed, err := s.removeIDs(ctx, kind, set)
	if err != nil {
		return 0, err
	}
	s.selected[kind] = map[string]struct{}{}
	s.logger.Info("bulk delete completed", "kind", string(kind), "selected", len(set), "removed", removed)
	return removed, nil
}

// DeleteIDs removes exactly ids with a single persist. The selection is
// otherwise kept; only the removed ids are dropped from it.
func (s *SelectionService) DeleteIDs(ctx context.Context, kind ViewKind, ids []string) (int, error) {
	if err := selectableKind(kind); err != nil {
		return 0, err
	}
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id = common.NormalizeID(id); id != "" {
			set[id] = struct{}{}
		}
	}
	if len(set) == 0 {
		return 0, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	removed, err := s.removeIDs(ctx, kind, set)
	if err != nil {
		return 0, err
	}
	for id := range set {
		delete(s.selected[kind], id)
	}
	s.logger.Info("bulk delete completed", "kind", string(kind), "requested", len(set), "removed", removed)
	return removed, nil
}

// DeleteOne removes a single record and drops it from the selection.
func (s *SelectionService) DeleteOne(ctx context.Context, kind ViewKind, id string) (bool, error) {
	if err := selectableKind(kind); err != nil {
		return false, err
	}
	id = common.NormalizeID(id)
	if id == "" {
		return false, common.NewValidationError("invalid request", map[string]string{"id": "id is required"})
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	removed, err := s.removeIDs(ctx, kind, map[string]struct{}{id: {}})
	if err != nil {
		return false, err
	}
	delete(s.selected[kind], id)
	return removed > 0, nil
}

// DeleteUser removes an account. Applications and proposals that reference
// it are kept.
func (s *SelectionService) DeleteUser(ctx context.Context, id string) (bool, error) {
	id = common.NormalizeID(id)
	if id == "" {
		return false, common.NewValidationError("invalid request", map[string]string{"id": "id is required"})
	}
	users, err := s.users.Load(ctx)
	if err != nil {
		return false, err
	}
	if _, ok := users[id]; !ok {
		return false, nil
	}
	delete(users, id)
	if err := s.users.Save(ctx, users); err != nil {
		return false, err
	}
	s.logger.Info("user account removed", "user_id", id)
	return true, nil
}

func (s *SelectionService) removeIDs(ctx context.Context, kind ViewKind, ids map[string]struct{}) (int, error) {
	switch kind {
	case ViewApplications:
		items, err := s.applications.Load(ctx)
		if err != nil {
			return 0, err
		}
		kept := make([]application.Application, 0, len(items))
		for _, item := range items {
			if _, ok := ids[item.ID]; !ok {
				kept = append(kept, item)
			}
		}
		if err := s.applications.Save(ctx, kept); err != nil {
			return 0, err
		}
		return len(items) - len(kept), nil
	case ViewProposals:
		items, err := s.proposals.Load(ctx)
		if err != nil {
			return 0, err
		}
		kept := make([]proposal.Proposal, 0, len(items))
		for _, item := range items {
			if _, ok := ids[item.ID]; !ok {
				kept = append(kept, item)
			}
		}
		if err := s.proposals.Save(ctx, kept); err != nil {
			return 0, err
		}
		return len(items) - len(kept), nil
	default:
		return 0, selectableKind(kind)
	}
}

func sortedIDs(set map[string]struct{}) []string {
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
