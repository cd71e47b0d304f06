// Package service implements the in-memory query service behind the mock
// fraud-operations API: alert listing with filters and cursor paging,
// transaction lookup, triage actions, case creation, KPI counters, and the
// synthetic new-alert feed.
package service

import (
	"context"
	"log"
	"math/rand"
	"strings"
	"sync"
	"time"

	apperrors "github.com/fraudx/fraudx/internal/errors"
	"github.com/fraudx/fraudx/internal/fraud"
	"github.com/fraudx/fraudx/internal/fraud/generator"
)

const defaultActor = "Current User"

// Config holds service tuning knobs. Zero latency bounds disable the
// simulated network delay; zero feed bounds fall back to 10-60s ticks.
type Config struct {
	// Seed drives the data generator. Zero picks a high-entropy seed.
	Seed int64
	// SeedAlerts is how many alert/transaction pairs to fabricate at startup.
	SeedAlerts int
	// MinLatency/MaxLatency bound the simulated per-call delay.
	MinLatency time.Duration
	MaxLatency time.Duration
	// FeedMinInterval/FeedMaxInterval bound the synthetic alert feed period.
	FeedMinInterval time.Duration
	FeedMaxInterval time.Duration
}

// Service owns the mock dataset. All collections are guarded by one mutex:
// feed tickers and transport handlers run concurrently, and every mutation
// must be visible as a whole or not at all.
type Service struct {
	mu  sync.Mutex
	gen *generator.Generator
	rng *rand.Rand

	alerts       []fraud.Alert // newest first
	transactions map[string]*fraud.Transaction
	cases        []fraud.Case // newest first

	subs    map[int]*subscription
	nextSub int

	clock      func() time.Time
	minLatency time.Duration
	maxLatency time.Duration
	feedMin    time.Duration
	feedMax    time.Duration
}

// SortFields lists the alert fields the list endpoint accepts for sorting.
// An unset assignee sorts before any named analyst in ascending order.
func SortFields() []string {
	return []string{"timestamp", "amount", "riskScore", "status", "priority", "merchantName", "assignedTo", "id"}
}

// New builds a Service and seeds it with cfg.SeedAlerts generated pairs.
func New(cfg Config) *Service {
	rng, seed := generator.NewSeededRNG(cfg.Seed)
	if cfg.Seed == 0 {
		log.Printf("mock data seed: %d", seed)
	}

	feedMin, feedMax := cfg.FeedMinInterval, cfg.FeedMaxInterval
	if feedMin <= 0 {
		feedMin = 10 * time.Second
	}
	if feedMax < feedMin {
		feedMax = 60 * time.Second
	}

	s := &Service{
		gen:          generator.New(rng),
		rng:          rng,
		transactions: make(map[string]*fraud.Transaction),
		subs:         make(map[int]*subscription),
		clock:        time.Now,
		minLatency:   cfg.MinLatency,
		maxLatency:   cfg.MaxLatency,
		feedMin:      feedMin,
		feedMax:      feedMax,
	}

	for i := 0; i < cfg.SeedAlerts; i++ {
		alert := s.gen.Alert()
		txn := s.gen.Transaction(alert)
		s.alerts = append(s.alerts, alert)
		s.transactions[alert.ID] = &txn
	}
	return s
}

// Insert prepends an alert and stores its transaction. It is the seeding
// hook used by the feed tick and by tests with literal fixtures.
func (s *Service) Insert(alert fraud.Alert, txn *fraud.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.insertLocked(alert, txn)
}

func (s *Service) insertLocked(alert fraud.Alert, txn *fraud.Transaction) {
	s.alerts = append([]fraud.Alert{alert}, s.alerts...)
	if txn != nil {
		s.transactions[alert.ID] = txn
	}
}

// GetTransaction returns the full-detail record for an alert id.
func (s *Service) GetTransaction(ctx context.Context, id string) (fraud.Transaction, error) {
	if err := s.delay(ctx); err != nil {
		return fraud.Transaction{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	txn, ok := s.transactions[id]
	if !ok {
		return fraud.Transaction{}, apperrors.New(apperrors.CodeNotFound, "Transaction not found")
	}
	return cloneTransaction(txn), nil
}

// ApplyAction applies a triage action to an alert: the status moves per the
// action table, UpdatedAt is stamped, and the transaction (when present)
// records a note and a timeline entry. A missing alert id mutates nothing.
func (s *Service) ApplyAction(ctx context.Context, alertID string, action fraud.Action, payload fraud.ActionPayload) (fraud.ActionResult, error) {
	if _, err := fraud.ParseAction(string(action)); err != nil {
		return fraud.ActionResult{}, err
	}
	if err := s.delay(ctx); err != nil {
		return fraud.ActionResult{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.alerts {
		if s.alerts[i].ID == alertID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fraud.ActionResult{}, apperrors.New(apperrors.CodeNotFound, "Alert not found")
	}

	now := s.clock().UTC()
	alert := &s.alerts[idx]
	if status, ok := action.StatusAfter(); ok {
		alert.Status = status
	}
	if action == fraud.ActionAssign {
		alert.AssignedTo = payload.Assignee
	}
	alert.UpdatedAt = now

	if txn, ok := s.transactions[alertID]; ok {
		noteText := payload.Note
		if noteText == "" {
			noteText = "Action: " + string(action)
		}
		txn.Notes = append([]fraud.Note{{
			ID:        txn.NextNoteID(),
			Author:    defaultActor,
			Text:      noteText,
			Timestamp: now,
		}}, txn.Notes...)

		description := payload.Note
		if description == "" {
			description = "Alert " + string(action) + " action applied"
		}
		txn.Timeline = append([]fraud.TimelineEvent{{
			ID:          txn.NextTimelineID(),
			Action:      titleCase(string(action)),
			Description: description,
			Author:      defaultActor,
			Timestamp:   now,
		}}, txn.Timeline...)

		// Keep the embedded alert copy in step with the queue row.
		txn.Alert = *alert
	}

	return fraud.ActionResult{Success: true, AuditID: s.gen.AuditID()}, nil
}

// CreateCase fills unset fields with defaults, assigns a fresh identifier,
// and prepends the case to the visible list.
func (s *Service) CreateCase(ctx context.Context, input fraud.CaseInput) (fraud.Case, error) {
	if err := s.delay(ctx); err != nil {
		return fraud.Case{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock().UTC()
	created := fraud.Case{
		ID:             s.gen.CaseID(),
		Title:          input.Title,
		Description:    input.Description,
		Status:         fraud.CaseOpen,
		Priority:       input.Priority,
		AssignedTo:     input.AssignedTo,
		CreatedBy:      defaultActor,
		TransactionIDs: input.TransactionIDs,
		Tags:           input.Tags,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if created.Title == "" {
		created.Title = "New Investigation Case"
	}
	if created.Priority == "" {
		created.Priority = fraud.PriorityMedium
	}
	if created.AssignedTo == "" {
		created.AssignedTo = "Unassigned"
	}
	if created.TransactionIDs == nil {
		created.TransactionIDs = []string{}
	}
	if created.Tags == nil {
		created.Tags = []string{}
	}

	s.cases = append([]fraud.Case{created}, s.cases...)
	return created, nil
}

// ListCases returns the case list, newest first.
func (s *Service) ListCases(ctx context.Context) ([]fraud.Case, error) {
	if err := s.delay(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]fraud.Case, len(s.cases))
	copy(out, s.cases)
	return out, nil
}

// KPIs fabricates a fresh aggregate counter block on every call.
func (s *Service) KPIs(ctx context.Context) (fraud.KPIData, error) {
	if err := s.delay(ctx); err != nil {
		return fraud.KPIData{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen.KPIs(), nil
}

// delay simulates network latency. It carries no correctness contract and
// returns early when the context ends.
func (s *Service) delay(ctx context.Context) error {
	if s.maxLatency <= 0 {
		return ctx.Err()
	}

	s.mu.Lock()
	span := s.maxLatency - s.minLatency
	d := s.minLatency
	if span > 0 {
		d += time.Duration(s.rng.Int63n(int64(span)))
	}
	s.mu.Unlock()

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func cloneTransaction(txn *fraud.Transaction) fraud.Transaction {
	out := *txn
	out.RuleTriggers = append([]string(nil), txn.RuleTriggers...)
	out.RiskAssessment.Features = append([]fraud.Feature(nil), txn.RiskAssessment.Features...)
	out.Rules = append([]fraud.Rule(nil), txn.Rules...)
	out.Notes = append([]fraud.Note(nil), txn.Notes...)
	out.Timeline = append([]fraud.TimelineEvent(nil), txn.Timeline...)
	return out
}

func titleCase(word string) string {
	if word == "" {
		return word
	}
	return strings.ToUpper(word[:1]) + word[1:]
}
