package service

import (
	"context"
	"testing"
	"time"

	apperrors "github.com/fraudx/fraudx/internal/errors"
	"github.com/fraudx/fraudx/internal/fraud"
)

// newTestService returns a service with no latency and a fixed seed so
// fixture-free tests stay reproducible.
func newTestService(t *testing.T, seedAlerts int) *Service {
	t.Helper()
	s := New(Config{Seed: 99, SeedAlerts: seedAlerts})
	t.Cleanup(s.Close)
	return s
}

func seedFixtureAlert(s *Service, id string, riskScore int, status fraud.Status) fraud.Alert {
	alert := fraud.Alert{
		ID:            id,
		TransactionID: "TXN-2024-000001",
		Amount:        120.50,
		Currency:      "USD",
		Timestamp:     time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		RiskScore:     riskScore,
		Status:        status,
		Priority:      fraud.PriorityForScore(riskScore),
		CreatedAt:     time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		UpdatedAt:     time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	txn := &fraud.Transaction{Alert: alert}
	s.Insert(alert, txn)
	return alert
}

func TestListAlertsRespectsLimitAndReportsEnd(t *testing.T) {
	s := newTestService(t, 30)
	ctx := context.Background()

	alerts, info, err := s.ListAlerts(ctx, fraud.FilterOptions{}, fraud.PageParams{Limit: 10})
	if err != nil {
		t.Fatalf("list alerts: %v", err)
	}
	if len(alerts) > 10 {
		t.Fatalf("page length %d exceeds limit 10", len(alerts))
	}
	if info.Total != 30 {
		t.Fatalf("expected total 30, got %d", info.Total)
	}
	if !info.HasMore {
		t.Fatal("expected more pages")
	}

	// A window reaching the end reports hasMore=false.
	alerts, info, err = s.ListAlerts(ctx, fraud.FilterOptions{}, fraud.PageParams{Limit: 200})
	if err != nil {
		t.Fatalf("list alerts: %v", err)
	}
	if len(alerts) != 30 || info.HasMore {
		t.Fatalf("expected full window without more, got %d alerts hasMore=%v", len(alerts), info.HasMore)
	}
}

func TestListAlertsPagingIsGapFree(t *testing.T) {
	s := newTestService(t, 57)
	ctx := context.Background()

	full, _, err := s.ListAlerts(ctx, fraud.FilterOptions{}, fraud.PageParams{Limit: 200, SortBy: "riskScore", SortOrder: fraud.SortAsc})
	if err != nil {
		t.Fatalf("list all: %v", err)
	}

	var paged []fraud.Alert
	cursor := ""
	for {
		window, info, err := s.ListAlerts(ctx, fraud.FilterOptions{}, fraud.PageParams{
			Cursor: cursor, Limit: 10, SortBy: "riskScore", SortOrder: fraud.SortAsc,
		})
		if err != nil {
			t.Fatalf("list page: %v", err)
		}
		paged = append(paged, window...)
		if !info.HasMore {
			break
		}
		cursor = info.Cursor
	}

	if len(paged) != len(full) {
		t.Fatalf("expected %d alerts across pages, got %d", len(full), len(paged))
	}
	for i := range full {
		if paged[i].ID != full[i].ID {
			t.Fatalf("page concatenation diverges at %d: %s vs %s", i, paged[i].ID, full[i].ID)
		}
	}
}

func TestListAlertsFiltersAreConjunctive(t *testing.T) {
	s := newTestService(t, 200)
	ctx := context.Background()

	min, max := 50, 90
	alerts, info, err := s.ListAlerts(ctx, fraud.FilterOptions{
		Status:       []fraud.Status{fraud.StatusPending, fraud.StatusFlagged},
		RiskScoreMin: &min,
		RiskScoreMax: &max,
	}, fraud.PageParams{Limit: 200})
	if err != nil {
		t.Fatalf("list alerts: %v", err)
	}
	if info.Total != len(alerts) {
		t.Fatalf("total %d disagrees with window %d under max limit", info.Total, len(alerts))
	}
	for _, alert := range alerts {
		if alert.Status != fraud.StatusPending && alert.Status != fraud.StatusFlagged {
			t.Fatalf("status %q escaped filter", alert.Status)
		}
		if alert.RiskScore < min || alert.RiskScore > max {
			t.Fatalf("risk score %d escaped range filter", alert.RiskScore)
		}
	}
}

func TestListAlertsSortStability(t *testing.T) {
	s := New(Config{})
	t.Cleanup(s.Close)
	ctx := context.Background()

	// Three alerts with equal risk scores; insertion order is C, B, A
	// (Insert prepends, so the newest sits first).
	seedFixtureAlert(s, "ALT-A", 50, fraud.StatusPending)
	seedFixtureAlert(s, "ALT-B", 50, fraud.StatusPending)
	seedFixtureAlert(s, "ALT-C", 50, fraud.StatusPending)

	alerts, _, err := s.ListAlerts(ctx, fraud.FilterOptions{}, fraud.PageParams{SortBy: "riskScore", SortOrder: fraud.SortAsc})
	if err != nil {
		t.Fatalf("list alerts: %v", err)
	}
	if alerts[0].ID != "ALT-C" || alerts[1].ID != "ALT-B" || alerts[2].ID != "ALT-A" {
		t.Fatalf("ties must keep insertion order, got %s, %s, %s", alerts[0].ID, alerts[1].ID, alerts[2].ID)
	}
}

func TestListAlertsRejectsUnknownSortField(t *testing.T) {
	s := newTestService(t, 1)

	_, _, err := s.ListAlerts(context.Background(), fraud.FilterOptions{}, fraud.PageParams{SortBy: "nope"})
	if !apperrors.IsCode(err, apperrors.CodeAlertInvalidSortField) {
		t.Fatalf("expected invalid sort field error, got %v", err)
	}
}

func TestListAlertsUnknownCursorStartsFromBeginning(t *testing.T) {
	s := newTestService(t, 5)

	fromStart, _, err := s.ListAlerts(context.Background(), fraud.FilterOptions{}, fraud.PageParams{Limit: 5})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	fromBogus, _, err := s.ListAlerts(context.Background(), fraud.FilterOptions{}, fraud.PageParams{Cursor: "ALT-MISSING", Limit: 5})
	if err != nil {
		t.Fatalf("list with bogus cursor: %v", err)
	}
	if len(fromBogus) != len(fromStart) || fromBogus[0].ID != fromStart[0].ID {
		t.Fatal("unknown cursor should fall back to the start of the set")
	}
}

func TestApplyActionFlagMutatesOnlyStatusAndUpdatedAt(t *testing.T) {
	s := New(Config{})
	t.Cleanup(s.Close)
	ctx := context.Background()

	before := seedFixtureAlert(s, "ALT-1", 85, fraud.StatusPending)

	result, err := s.ApplyAction(ctx, "ALT-1", fraud.ActionFlag, fraud.ActionPayload{})
	if err != nil {
		t.Fatalf("apply action: %v", err)
	}
	if !result.Success || result.AuditID == "" {
		t.Fatalf("expected successful result with audit id, got %+v", result)
	}

	txn, err := s.GetTransaction(ctx, "ALT-1")
	if err != nil {
		t.Fatalf("get transaction: %v", err)
	}
	after := txn.Alert
	if after.Status != fraud.StatusFlagged {
		t.Fatalf("expected flagged status, got %q", after.Status)
	}
	if !after.UpdatedAt.After(before.UpdatedAt) {
		t.Fatal("expected updatedAt to advance")
	}
	if after.ID != before.ID || after.Amount != before.Amount ||
		after.RiskScore != before.RiskScore || after.AssignedTo != before.AssignedTo ||
		after.Priority != before.Priority || !after.CreatedAt.Equal(before.CreatedAt) {
		t.Fatalf("fields other than status/updatedAt changed: %+v vs %+v", after, before)
	}
}

func TestApplyActionBlocksSeededAlert(t *testing.T) {
	s := New(Config{})
	t.Cleanup(s.Close)
	ctx := context.Background()

	seedFixtureAlert(s, "ALT-1", 85, fraud.StatusPending)

	if _, err := s.ApplyAction(ctx, "ALT-1", fraud.ActionBlock, fraud.ActionPayload{}); err != nil {
		t.Fatalf("apply block: %v", err)
	}
	txn, err := s.GetTransaction(ctx, "ALT-1")
	if err != nil {
		t.Fatalf("get transaction: %v", err)
	}
	if txn.Status != fraud.StatusBlocked {
		t.Fatalf("expected blocked, got %q", txn.Status)
	}
}

func TestApplyActionMissingAlertMutatesNothing(t *testing.T) {
	s := New(Config{})
	t.Cleanup(s.Close)
	ctx := context.Background()

	seedFixtureAlert(s, "ALT-1", 85, fraud.StatusPending)

	_, err := s.ApplyAction(ctx, "ALT-X", fraud.ActionBlock, fraud.ActionPayload{})
	if !apperrors.IsCode(err, apperrors.CodeNotFound) {
		t.Fatalf("expected not-found, got %v", err)
	}

	txn, err := s.GetTransaction(ctx, "ALT-1")
	if err != nil {
		t.Fatalf("get transaction: %v", err)
	}
	if txn.Status != fraud.StatusPending {
		t.Fatalf("missing-id action must not mutate state, status became %q", txn.Status)
	}
	if len(txn.Notes) != 0 || len(txn.Timeline) != 0 {
		t.Fatal("missing-id action must not append notes or timeline entries")
	}
}

func TestApplyActionAssignSetsAssignee(t *testing.T) {
	s := New(Config{})
	t.Cleanup(s.Close)
	ctx := context.Background()

	seedFixtureAlert(s, "ALT-1", 30, fraud.StatusPending)

	_, err := s.ApplyAction(ctx, "ALT-1", fraud.ActionAssign, fraud.ActionPayload{Assignee: "Sarah Chen"})
	if err != nil {
		t.Fatalf("apply assign: %v", err)
	}
	txn, err := s.GetTransaction(ctx, "ALT-1")
	if err != nil {
		t.Fatalf("get transaction: %v", err)
	}
	if txn.Status != fraud.StatusInvestigating {
		t.Fatalf("expected investigating, got %q", txn.Status)
	}
	if txn.AssignedTo != "Sarah Chen" {
		t.Fatalf("expected assignee, got %q", txn.AssignedTo)
	}
}

func TestApplyActionRecordsNoteAndTimeline(t *testing.T) {
	s := New(Config{})
	t.Cleanup(s.Close)
	ctx := context.Background()

	seedFixtureAlert(s, "ALT-1", 85, fraud.StatusPending)

	if _, err := s.ApplyAction(ctx, "ALT-1", fraud.ActionFlag, fraud.ActionPayload{Note: "looks bad"}); err != nil {
		t.Fatalf("apply flag: %v", err)
	}
	if _, err := s.ApplyAction(ctx, "ALT-1", fraud.ActionEscalate, fraud.ActionPayload{}); err != nil {
		t.Fatalf("apply escalate: %v", err)
	}

	txn, err := s.GetTransaction(ctx, "ALT-1")
	if err != nil {
		t.Fatalf("get transaction: %v", err)
	}

	if len(txn.Notes) != 2 {
		t.Fatalf("expected 2 notes, got %d", len(txn.Notes))
	}
	// Most-recent-first with strictly increasing ordinals.
	if txn.Notes[0].ID != 2 || txn.Notes[1].ID != 1 {
		t.Fatalf("note ids out of order: %d, %d", txn.Notes[0].ID, txn.Notes[1].ID)
	}
	if txn.Notes[1].Text != "looks bad" {
		t.Fatalf("expected note payload preserved, got %q", txn.Notes[1].Text)
	}

	if len(txn.Timeline) != 2 {
		t.Fatalf("expected 2 timeline entries, got %d", len(txn.Timeline))
	}
	if txn.Timeline[0].Action != "Escalate" {
		t.Fatalf("expected Escalate entry first, got %q", txn.Timeline[0].Action)
	}
	// Escalate records the action without a status change.
	if txn.Status != fraud.StatusFlagged {
		t.Fatalf("escalate must not change status, got %q", txn.Status)
	}
}

func TestApplyActionRejectsUnknownAction(t *testing.T) {
	s := New(Config{})
	t.Cleanup(s.Close)

	_, err := s.ApplyAction(context.Background(), "ALT-1", fraud.Action("delete"), fraud.ActionPayload{})
	if !apperrors.IsCode(err, apperrors.CodeAlertInvalidAction) {
		t.Fatalf("expected invalid action error, got %v", err)
	}
}

func TestGetTransactionNotFound(t *testing.T) {
	s := New(Config{})
	t.Cleanup(s.Close)

	_, err := s.GetTransaction(context.Background(), "ALT-NOPE")
	if !apperrors.IsCode(err, apperrors.CodeNotFound) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestCreateCaseDefaultsAndPrepends(t *testing.T) {
	s := New(Config{})
	t.Cleanup(s.Close)
	ctx := context.Background()

	first, err := s.CreateCase(ctx, fraud.CaseInput{Title: "X"})
	if err != nil {
		t.Fatalf("create case: %v", err)
	}
	if first.Title != "X" {
		t.Fatalf("expected given title, got %q", first.Title)
	}
	if first.Status != fraud.CaseOpen {
		t.Fatalf("expected open status, got %q", first.Status)
	}
	if first.Priority != fraud.PriorityMedium {
		t.Fatalf("expected medium priority default, got %q", first.Priority)
	}
	if first.AssignedTo != "Unassigned" {
		t.Fatalf("expected Unassigned default, got %q", first.AssignedTo)
	}

	second, err := s.CreateCase(ctx, fraud.CaseInput{Title: "Y", Priority: fraud.PriorityCritical})
	if err != nil {
		t.Fatalf("create second case: %v", err)
	}
	if second.ID == first.ID {
		t.Fatal("case ids must be distinct")
	}
	if second.Priority != fraud.PriorityCritical {
		t.Fatalf("expected explicit priority kept, got %q", second.Priority)
	}

	cases, err := s.ListCases(ctx)
	if err != nil {
		t.Fatalf("list cases: %v", err)
	}
	if len(cases) != 2 || cases[0].ID != second.ID || cases[1].ID != first.ID {
		t.Fatal("expected newest case first")
	}
}

func TestSubscribeDeliversAndStoresNewAlerts(t *testing.T) {
	s := New(Config{FeedMinInterval: time.Millisecond, FeedMaxInterval: 2 * time.Millisecond})
	t.Cleanup(s.Close)

	got := make(chan fraud.Alert, 1)
	cancel := s.Subscribe(func(alert fraud.Alert) {
		select {
		case got <- alert:
		default:
		}
	})
	defer cancel()

	var alert fraud.Alert
	select {
	case alert = <-got:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for feed tick")
	}

	// The pushed alert must already be visible with its transaction stored.
	txn, err := s.GetTransaction(context.Background(), alert.ID)
	if err != nil {
		t.Fatalf("transaction for pushed alert: %v", err)
	}
	if txn.ID != alert.ID {
		t.Fatalf("transaction id %q differs from alert id %q", txn.ID, alert.ID)
	}

	alerts, _, err := s.ListAlerts(context.Background(), fraud.FilterOptions{}, fraud.PageParams{Limit: 200})
	if err != nil {
		t.Fatalf("list alerts: %v", err)
	}
	found := false
	for _, a := range alerts {
		if a.ID == alert.ID {
			found = true
			break
		}
	}
	if !found {
		t.Fatal("pushed alert missing from the queue")
	}
}

func TestUnsubscribeIsIdempotent(t *testing.T) {
	s := New(Config{FeedMinInterval: time.Hour, FeedMaxInterval: time.Hour})
	cancel := s.Subscribe(func(fraud.Alert) {})

	cancel()
	cancel() // must not panic

	s.Close()
	cancel() // safe after Close as well
}

func TestLatencyHonorsContextCancellation(t *testing.T) {
	s := New(Config{MinLatency: time.Minute, MaxLatency: 2 * time.Minute})
	t.Cleanup(s.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, _, err := s.ListAlerts(ctx, fraud.FilterOptions{}, fraud.PageParams{})
	if err == nil {
		t.Fatal("expected context error")
	}
	if time.Since(start) > 5*time.Second {
		t.Fatal("cancelled call took too long")
	}
}
