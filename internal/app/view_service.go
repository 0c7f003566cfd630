package app

import (
	"context"
	"sort"
	"strings"

	"jobmatch/internal/common"
	"jobmatch/internal/domain/application"
	"jobmatch/internal/domain/proposal"
	"jobmatch/internal/domain/user"
	"jobmatch/internal/domain/vacancy"
)

type ViewKind string

const (
	ViewApplications ViewKind = "applications"
	ViewProposals    ViewKind = "proposals"
	ViewHired        ViewKind = "hired"
)

// DeletedPostingLabel stands in for the title and company of a job posting
// that no longer exists.
const DeletedPostingLabel = "삭제된 공고"

const statusAll = "all"

func ParseViewKind(value string) (ViewKind, error) {
	kind := ViewKind(strings.ToLower(strings.TrimSpace(value)))
	switch kind {
	case ViewApplications, ViewProposals, ViewHired:
		return kind, nil
	default:
		return "", common.NewValidationError("invalid view", map[string]string{"kind": "kind must be applications, proposals, or hired"})
	}
}

type ViewQuery struct {
	Kind   ViewKind
	Query  string
	Status string
}

type ApplicationRow struct {
	application.Application
	JobTitle     string `json:"jobTitle"`
	CompanyName  string `json:"companyName"`
	MemberNumber string `json:"memberNumber,omitempty"`
}

type ProposalRow struct {
	proposal.Proposal
	LiveCompanyName string `json:"liveCompanyName,omitempty"`
	MemberNumber    string `json:"memberNumber,omitempty"`
}

type View struct {
	Kind         ViewKind         `json:"kind"`
	Applications []ApplicationRow `json:"applications,omitempty"`
	Proposals    []ProposalRow    `json:"proposals,omitempty"`
	Hired        []user.Account   `json:"hired,omitempty"`
}

// IDs returns the record ids visible in the view, in display order.
func (v View) IDs() []string {
	var ids []string
	switch v.Kind {
	case ViewApplications:
		ids = make([]string, 0, len(v.Applications))
		for _, row := range v.Applications {
			ids = append(ids, row.ID)
		}
	case ViewProposals:
		ids = make([]string, 0, len(v.Proposals))
		for _, row := range v.Proposals {
			ids = append(ids, row.ID)
		}
	case ViewHired:
		ids = make([]string, 0, len(v.Hired))
		for _, account := range v.Hired {
			ids = append(ids, account.ID)
		}
	}
	return ids
}

func (v View) Len() int {
	return len(v.Applications) + len(v.Proposals) + len(v.Hired)
}

// ViewService builds the administrator's filtered projections. Nothing is
// cached: every call reloads the collections.
type ViewService struct {
	snapshots *SnapshotLoader
}

func NewViewService(snapshots *SnapshotLoader) *ViewService {
	return &ViewService{snapshots: snapshots}
}

func (s *ViewService) FilteredView(ctx context.Context, q ViewQuery) (View, error) {
	kind, err := ParseViewKind(string(q.Kind))
	if err != nil {
		return View{}, err
	}
	snap, err := s.snapshots.Load(ctx)
	if err != nil {
		return View{}, err
	}
	return BuildView(snap, ViewQuery{Kind: kind, Query: q.Query, Status: q.Status})
}

// BuildView computes a view from an already loaded snapshot.
func BuildView(snap *Snapshot, q ViewQuery) (View, error) {
	query := strings.ToLower(strings.TrimSpace(q.Query))
	switch q.Kind {
	case ViewApplications:
		status, err := parseApplicationFilter(q.Status)
		if err != nil {
			return View{}, err
		}
		return View{Kind: q.Kind, Applications: applicationRows(snap, query, status)}, nil
	case ViewProposals:
		status, err := parseProposalFilter(q.Status)
		if err != nil {
			return View{}, err
		}
		return View{Kind: q.Kind, Proposals: proposalRows(snap, query, status)}, nil
	case ViewHired:
		return View{Kind: q.Kind, Hired: hiredRows(snap, query)}, nil
	default:
		_, err := ParseViewKind(string(q.Kind))
		return View{}, err
	}
}

func parseApplicationFilter(value string) (application.Status, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if normalized == "" || normalized == statusAll {
		return "", nil
	}
	status := application.Status(normalized)
	if !application.IsKnownStatus(status) {
		return "", common.NewValidationError("invalid status filter", map[string]string{"status": "status must be all, pending, viewed, accepted, or rejected"})
	}
	return status, nil
}

func parseProposalFilter(value string) (proposal.Status, error) {
	normalized := strings.TrimSpace(value)
	if normalized == "" || strings.EqualFold(normalized, statusAll) {
		return "", nil
	}
	status := proposal.NormalizeStatus(proposal.Status(normalized))
	if !proposal.IsKnownStatus(status) {
		return "", common.NewValidationError("invalid status filter", map[string]string{"status": "status must be all, PENDING, APPROVED, or REJECTED"})
	}
	return status, nil
}

func applicationRows(snap *Snapshot, query string, status application.Status) []ApplicationRow {
	jobs := make(map[string]vacancy.Vacancy, len(snap.Jobs))
	for _, job := range snap.Jobs {
		jobs[job.ID] = job
	}
	rows := make([]ApplicationRow, 0, len(snap.Applications))
	for _, item := range snap.Applications {
		if status != "" && item.Status != status {
			continue
		}
		row := ApplicationRow{
			Application:  item,
			JobTitle:     DeletedPostingLabel,
			CompanyName:  DeletedPostingLabel,
			MemberNumber: snap.Users[item.UserID].MemberNumber,
		}
		if job, ok := jobs[item.JobID]; ok {
			row.JobTitle = job.Title
			row.CompanyName = job.CompanyName
			if row.CompanyName == "" {
				row.CompanyName = snap.Companies[job.CompanyID].CompanyName
			}
		}
		if !matchesAny(query, row.ApplicantName, row.JobTitle, row.CompanyName, row.MemberNumber) {
			continue
		}
		rows = append(rows, row)
	}
	return rows
}

func proposalRows(snap *Snapshot, query string, status proposal.Status) []ProposalRow {
	rows := make([]ProposalRow, 0, len(snap.Proposals))
	for _, item := range snap.Proposals {
		if status != "" && item.Status != status {
			continue
		}
		row := ProposalRow{
			Proposal:        item,
			LiveCompanyName: snap.Companies[item.CompanyID].CompanyName,
			MemberNumber:    snap.Users[item.UserID].MemberNumber,
		}
		if !matchesAny(query, row.UserName, row.CompanyName, row.LiveCompanyName, row.MemberNumber) {
			continue
		}
		rows = append(rows, row)
	}
	return rows
}

// hiredRows lists HIRED accounts, most recently hired first. Accounts
// without a hire timestamp sort last.
func hiredRows(snap *Snapshot, query string) []user.Account {
	rows := make([]user.Account, 0)
	for _, account := range snap.Users {
		if !account.Hired() {
			continue
		}
		if !matchesAny(query, account.Name, account.MemberNumber, account.Phone, account.Email) {
			continue
		}
		rows = append(rows, account)
	}
	sort.Slice(rows, func(i, j int) bool {
		ti, tj := hiredUnix(rows[i]), hiredUnix(rows[j])
		if ti != tj {
			return ti > tj
		}
		return rows[i].ID < rows[j].ID
	})
	return rows
}

func hiredUnix(account user.Account) int64 {
	if account.HiredAt == nil || account.HiredAt.IsZero() {
		return 0
	}
	return account.HiredAt.UnixNano()
}

// matchesAny reports a case-insensitive substring match of query against any
// field. An empty query matches everything.
func matchesAny(query string, fields ...string) bool {
	if query == "" {
		return true
	}
	for _, field := range fields {
		if field != "" && strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}
