package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"jobmatch/internal/common"
	"jobmatch/internal/domain/application"
	"jobmatch/internal/domain/pipeline"
	"jobmatch/internal/domain/proposal"
	"jobmatch/internal/domain/user"
	"jobmatch/internal/storage"
)

func statusPtr(s pipeline.Status) *pipeline.Status { return &s }

func strPtr(s string) *string { return &s }

func TestSetPipelineStateReconstructsFromApplication(t *testing.T) {
	f := newFixture(t)
	f.seedApplications(t, application.Application{
		ID:             "a1",
		UserID:         "u9",
		ApplicantName:  "Kim",
		ApplicantPhone: "010-1111-2222",
		ApplicantEmail: "kim@x.com",
	})

	result, err := f.pipeline.SetPipelineState(context.Background(), "u9", PipelineUpdate{
		Status:        statusPtr(pipeline.StatusInterviewScheduled),
		InterviewDate: strPtr("2025/03/10"),
	})
	if err != nil {
		t.Fatalf("set pipeline state: %v", err)
	}
	if result.Outcome != ResolveReconstructed {
		t.Fatalf("expected reconstructed outcome, got %s", result.Outcome)
	}

	account, ok := f.loadUsers(t)["u9"]
	if !ok {
		t.Fatalf("expected users[u9] to be created")
	}
	if account.Name != "Kim" || account.Phone != "010-1111-2222" || account.Email != "kim@x.com" {
		t.Fatalf("identity not copied from application: %#v", account)
	}
	if account.ProcessStatus != pipeline.StatusInterviewScheduled || account.InterviewDate != "2025/03/10" {
		t.Fatalf("unexpected pipeline state: %#v", account.State)
	}
	if account.MemberNumber == "" {
		t.Fatalf("reconstructed account should get a member number")
	}

	app := f.loadApplications(t)[0]
	if app.ProcessStatus != pipeline.StatusInterviewScheduled || app.InterviewDate != "2025/03/10" {
		t.Fatalf("application not updated: %#v", app.State)
	}
}

func TestSetPipelineStateReconstructionHiredCopiesIdentity(t *testing.T) {
	f := newFixture(t)
	f.seedApplications(t, application.Application{ID: "a1", UserID: "u3", ApplicantName: "Park", ApplicantPhone: "010-3333-4444", ApplicantEmail: "park@x.com"})
	f.seedProposals(t, proposal.Proposal{ID: "p1", UserID: "u3", UserName: "Park (old)"})

	if _, err := f.pipeline.SetPipelineState(context.Background(), "u3", PipelineUpdate{Status: statusPtr(pipeline.StatusHired)}); err != nil {
		t.Fatalf("set pipeline state: %v", err)
	}
	account := f.loadUsers(t)["u3"]
	if account.ProcessStatus != pipeline.StatusHired {
		t.Fatalf("expected HIRED, got %q", account.ProcessStatus)
	}
	if account.HiredAt == nil || !account.HiredAt.Equal(f.now) {
		t.Fatalf("expected hiredAt at call time, got %v", account.HiredAt)
	}
	if account.Name != "Park" || account.Email != "park@x.com" {
		t.Fatalf("application evidence must win over proposal evidence: %#v", account)
	}
}

func TestSetPipelineStateReconstructsFromProposal(t *testing.T) {
	f := newFixture(t)
	f.seedProposals(t, proposal.Proposal{ID: "p1", UserID: "u4", UserName: "Choi", CompanyName: "Acme"})

	result, err := f.pipeline.SetPipelineState(context.Background(), "u4", PipelineUpdate{InterviewDate: strPtr("2025/04/01")})
	if err != nil {
		t.Fatalf("set pipeline state: %v", err)
	}
	if result.Outcome != ResolveReconstructed {
		t.Fatalf("expected reconstructed, got %s", result.Outcome)
	}
	account := f.loadUsers(t)["u4"]
	if account.Name != "Choi" {
		t.Fatalf("expected name from proposal, got %q", account.Name)
	}
	if account.ProcessStatus != pipeline.StatusInterviewScheduled {
		t.Fatalf("date-only update keeps the placeholder status, got %q", account.ProcessStatus)
	}
	if account.InterviewDate != "2025/04/01" {
		t.Fatalf("expected interview date, got %q", account.InterviewDate)
	}
	if got := f.loadProposals(t)[0]; got.State != account.State {
		t.Fatalf("proposal must mirror the reconstructed account: %#v", got.State)
	}
}

func TestSetPipelineStateWithoutEvidence(t *testing.T) {
	f := newFixture(t)
	f.seedUsers(t, user.Account{ID: "u1", Name: "Han"})
	f.seedApplications(t, application.Application{ID: "a1", UserID: "u1"})

	result, err := f.pipeline.SetPipelineState(context.Background(), "ghost", PipelineUpdate{Status: statusPtr(pipeline.StatusHired)})
	if err != nil {
		t.Fatalf("set pipeline state: %v", err)
	}
	if result.Outcome != ResolveNotFound || result.Account != nil {
		t.Fatalf("expected not found without account, got %#v", result)
	}
	users := f.loadUsers(t)
	if _, ok := users["ghost"]; ok {
		t.Fatalf("no account may be created without evidence")
	}
	if len(users) != 1 {
		t.Fatalf("users collection changed: %#v", users)
	}
	if f.loadApplications(t)[0].ProcessStatus != "" {
		t.Fatalf("other users' applications must be untouched")
	}
}

func TestSetPipelineStateFanOutConsistency(t *testing.T) {
	f := newFixture(t)
	f.seedUsers(t,
		user.Account{ID: "u1", Name: "Kim"},
		user.Account{ID: "u2", Name: "Lee"},
	)
	f.seedApplications(t,
		application.Application{ID: "a1", UserID: "u1"},
		application.Application{ID: "a2", UserID: "u2"},
		application.Application{ID: "a3", UserID: "u1"},
	)
	f.seedProposals(t,
		proposal.Proposal{ID: "p1", UserID: "u1"},
		proposal.Proposal{ID: "p2", UserID: "u2"},
	)
	ctx := context.Background()

	steps := []PipelineUpdate{
		{Status: statusPtr(pipeline.StatusInterviewScheduled), InterviewDate: strPtr("2025/03/10")},
		{InterviewDate: strPtr("2025/03/12")},
		{Status: statusPtr(pipeline.StatusInterviewCompleted)},
		{Status: statusPtr(pipeline.StatusHired)},
	}
	for i, step := range steps {
		if _, err := f.pipeline.SetPipelineState(ctx, "u1", step); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}

	account := f.loadUsers(t)["u1"]
	want := pipeline.State{ProcessStatus: pipeline.StatusHired, InterviewDate: "2025/03/12"}
	if account.State != want {
		t.Fatalf("unexpected account state: %#v", account.State)
	}
	for _, app := range f.loadApplications(t) {
		if app.UserID == "u1" && app.State != want {
			t.Fatalf("application %s out of sync: %#v", app.ID, app.State)
		}
		if app.UserID == "u2" && app.State != (pipeline.State{}) {
			t.Fatalf("application %s of another user changed: %#v", app.ID, app.State)
		}
	}
	for _, prop := range f.loadProposals(t) {
		if prop.UserID == "u1" && prop.State != want {
			t.Fatalf("proposal %s out of sync: %#v", prop.ID, prop.State)
		}
		if prop.UserID == "u2" && prop.State != (pipeline.State{}) {
			t.Fatalf("proposal %s of another user changed: %#v", prop.ID, prop.State)
		}
	}
}

func TestSetPipelineStateHealsDriftedCopies(t *testing.T) {
	f := newFixture(t)
	f.seedUsers(t, user.Account{ID: "u1", State: pipeline.State{ProcessStatus: pipeline.StatusInterviewCompleted}})
	f.seedApplications(t, application.Application{ID: "a1", UserID: "u1", State: pipeline.State{ProcessStatus: pipeline.StatusInterviewScheduled}})

	result, err := f.pipeline.SetPipelineState(context.Background(), "u1", PipelineUpdate{Status: statusPtr(pipeline.StatusInterviewCompleted)})
	if err != nil {
		t.Fatalf("set pipeline state: %v", err)
	}
	if result.ApplicationsUpdated != 1 {
		t.Fatalf("expected drifted application to be rewritten, got %d", result.ApplicationsUpdated)
	}
	if got := f.loadApplications(t)[0].ProcessStatus; got != pipeline.StatusInterviewCompleted {
		t.Fatalf("expected healed status, got %q", got)
	}
}

func TestSetPipelineStateDateOnlyOnReconstructedAccount(t *testing.T) {
	f := newFixture(t)
	f.seedApplications(t, application.Application{ID: "a1", UserID: "u9", ApplicantName: "Kim"})

	if _, err := f.pipeline.SetPipelineState(context.Background(), "u9", PipelineUpdate{InterviewDate: strPtr("2025/03/10")}); err != nil {
		t.Fatalf("set pipeline state: %v", err)
	}
	want := pipeline.State{ProcessStatus: pipeline.StatusInterviewScheduled, InterviewDate: "2025/03/10"}
	if got := f.loadUsers(t)["u9"].State; got != want {
		t.Fatalf("unexpected account state: %#v", got)
	}
	if got := f.loadApplications(t)[0].State; got != want {
		t.Fatalf("application must carry the placeholder status too: %#v", got)
	}
}

func TestSetPipelineStateDateOnlyHealsDriftedStatus(t *testing.T) {
	f := newFixture(t)
	f.seedUsers(t, user.Account{ID: "u1", State: pipeline.State{ProcessStatus: pipeline.StatusHired}})
	f.seedApplications(t, application.Application{ID: "a1", UserID: "u1", State: pipeline.State{ProcessStatus: pipeline.StatusInterviewScheduled}})
	f.seedProposals(t, proposal.Proposal{ID: "p1", UserID: "u1"})

	result, err := f.pipeline.SetPipelineState(context.Background(), "u1", PipelineUpdate{InterviewDate: strPtr("2025/04/01")})
	if err != nil {
		t.Fatalf("set pipeline state: %v", err)
	}
	want := pipeline.State{ProcessStatus: pipeline.StatusHired, InterviewDate: "2025/04/01"}
	if got := f.loadApplications(t)[0].State; got != want {
		t.Fatalf("drifted application not healed: %#v", got)
	}
	if got := f.loadProposals(t)[0].State; got != want {
		t.Fatalf("proposal not synchronized: %#v", got)
	}
	if result.ApplicationsUpdated != 1 || result.ProposalsUpdated != 1 {
		t.Fatalf("unexpected counts %#v", result)
	}
}

func TestSetPipelineStateHiredTimestampNeverDecreases(t *testing.T) {
	f := newFixture(t)
	f.seedUsers(t, user.Account{ID: "u1", State: pipeline.State{ProcessStatus: pipeline.StatusInterviewCompleted}})
	ctx := context.Background()

	if _, err := f.pipeline.SetPipelineState(ctx, "u1", PipelineUpdate{Status: statusPtr(pipeline.StatusHired)}); err != nil {
		t.Fatalf("first hire: %v", err)
	}
	first := *f.loadUsers(t)["u1"].HiredAt

	f.advance(time.Minute)
	if _, err := f.pipeline.SetPipelineState(ctx, "u1", PipelineUpdate{Status: statusPtr(pipeline.StatusHired)}); err != nil {
		t.Fatalf("second hire: %v", err)
	}
	second := *f.loadUsers(t)["u1"].HiredAt

	if second.Before(first) {
		t.Fatalf("hiredAt decreased: %v -> %v", first, second)
	}
	if !second.Equal(f.now) {
		t.Fatalf("re-entering HIRED must refresh hiredAt, got %v want %v", second, f.now)
	}
}

func TestSetPipelineStateHireThenRevert(t *testing.T) {
	f := newFixture(t)
	f.seedUsers(t,
		user.Account{ID: "u1", Name: "Kim", State: pipeline.State{ProcessStatus: pipeline.StatusInterviewCompleted}},
		user.Account{ID: "u2", Name: "Lee", State: pipeline.State{ProcessStatus: pipeline.StatusHired}, HiredAt: timePtr(f.now.Add(-24 * time.Hour))},
	)
	ctx := context.Background()

	if _, err := f.pipeline.SetPipelineState(ctx, "u1", PipelineUpdate{Status: statusPtr(pipeline.StatusHired)}); err != nil {
		t.Fatalf("hire: %v", err)
	}
	view, err := f.views.FilteredView(ctx, ViewQuery{Kind: ViewHired})
	if err != nil {
		t.Fatalf("hired view: %v", err)
	}
	if ids := view.IDs(); len(ids) != 2 || ids[0] != "u1" {
		t.Fatalf("most recent hire should be first, got %v", ids)
	}
	hiredAt := *f.loadUsers(t)["u1"].HiredAt

	f.advance(time.Hour)
	if _, err := f.pipeline.SetPipelineState(ctx, "u1", PipelineUpdate{Status: statusPtr(pipeline.StatusInterviewCompleted)}); err != nil {
		t.Fatalf("revert: %v", err)
	}
	view, err = f.views.FilteredView(ctx, ViewQuery{Kind: ViewHired})
	if err != nil {
		t.Fatalf("hired view: %v", err)
	}
	if ids := view.IDs(); len(ids) != 1 || ids[0] != "u2" {
		t.Fatalf("reverted user must leave the hired view, got %v", ids)
	}
	account := f.loadUsers(t)["u1"]
	if account.HiredAt == nil || !account.HiredAt.Equal(hiredAt) {
		t.Fatalf("hiredAt must be kept when leaving HIRED, got %v", account.HiredAt)
	}
}

func TestSetPipelineStateStopsOnPersistFailure(t *testing.T) {
	f := newFixture(t)
	f.seedUsers(t, user.Account{ID: "u1"})
	f.seedApplications(t, application.Application{ID: "a1", UserID: "u1"})
	f.seedProposals(t, proposal.Proposal{ID: "p1", UserID: "u1"})
	boom := errors.New("write failed")
	f.store.FailSave(storage.CollectionProposals, boom)

	_, err := f.pipeline.SetPipelineState(context.Background(), "u1", PipelineUpdate{Status: statusPtr(pipeline.StatusInterviewScheduled)})
	if !errors.Is(err, boom) {
		t.Fatalf("expected persist error, got %v", err)
	}
	if got := f.loadUsers(t)["u1"].ProcessStatus; got != pipeline.StatusInterviewScheduled {
		t.Fatalf("earlier persists are not rolled back, got %q", got)
	}
	if got := f.loadApplications(t)[0].ProcessStatus; got != pipeline.StatusInterviewScheduled {
		t.Fatalf("applications persisted before the failure, got %q", got)
	}
	if got := f.loadProposals(t)[0].ProcessStatus; got != "" {
		t.Fatalf("failed collection must be unchanged, got %q", got)
	}

	f.store.FailSave(storage.CollectionProposals, nil)
	if _, err := f.pipeline.SetPipelineState(context.Background(), "u1", PipelineUpdate{Status: statusPtr(pipeline.StatusInterviewScheduled)}); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if got := f.loadProposals(t)[0].ProcessStatus; got != pipeline.StatusInterviewScheduled {
		t.Fatalf("next successful call should heal proposals, got %q", got)
	}
}

func TestSetPipelineStateValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := map[string]struct {
		userID string
		update PipelineUpdate
	}{
		"empty user":   {userID: " ", update: PipelineUpdate{Status: statusPtr(pipeline.StatusHired)}},
		"empty update": {userID: "u1", update: PipelineUpdate{}},
		"bad status":   {userID: "u1", update: PipelineUpdate{Status: statusPtr("OFFERED")}},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.pipeline.SetPipelineState(ctx, tc.userID, tc.update)
			if !common.Is(err, common.CodeValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
	if _, found, _ := f.store.Load(ctx, storage.CollectionUsers); found {
		t.Fatalf("rejected updates must not write")
	}
}

func timePtr(t time.Time) *time.Time { return &t }
