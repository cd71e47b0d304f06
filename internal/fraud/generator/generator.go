// Package generator fabricates synthetic fraud alerts, transactions, and
// KPI counters with plausible field distributions. Every draw comes from an
// injected pseudo-random generator so a fixed seed reproduces the dataset.
package generator

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/fraudx/fraudx/internal/fraud"
)

const (
	alphaNumUpper = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	alphaNumLower = "abcdefghijklmnopqrstuvwxyz0123456789"
	digits        = "0123456789"

	modelVersion = "v2.4.1"
)

// Generator produces synthetic fraud records. It is not safe for concurrent
// use; callers serialize access (the query service holds its own lock).
type Generator struct {
	rng   *rand.Rand
	clock func() time.Time
}

// New creates a Generator drawing from the given rng.
func New(rng *rand.Rand) *Generator {
	return &Generator{rng: rng, clock: time.Now}
}

// WithClock overrides the time source, for tests that pin timestamps.
func (g *Generator) WithClock(clock func() time.Time) *Generator {
	g.clock = clock
	return g
}

// Alert fabricates one alert. Output is always well-formed: priority is
// derived from the risk score and every field is populated.
func (g *Generator) Alert() fraud.Alert {
	riskScore := g.intRange(1, 100)
	now := g.clock().UTC()
	created := now.Add(-time.Duration(g.rng.Int63n(int64(7 * 24 * time.Hour))))
	updated := now.Add(-time.Duration(g.rng.Int63n(int64(24 * time.Hour))))
	if updated.Before(created) {
		updated = created
	}

	assignee := ""
	if g.rng.Float64() < 0.7 {
		assignee = pick(g.rng, analystNames)
	}

	return fraud.Alert{
		ID:                g.AlertID(),
		TransactionID:     g.TransactionID(),
		Amount:            g.floatRange(10, 50000),
		Currency:          pick(g.rng, currencies),
		Timestamp:         created,
		MerchantName:      g.merchantName(),
		MerchantID:        "MRC-" + g.chars(digits, 4),
		MerchantCategory:  pick(g.rng, merchantCategories),
		CardBIN:           g.chars(digits, 6),
		CardLast4:         g.chars(digits, 4),
		CustomerID:        "CUST-" + g.chars(digits, 6),
		RiskScore:         riskScore,
		Confidence:        g.floatRange(0.50, 0.99),
		Status:            pick(g.rng, fraud.Statuses()),
		Priority:          fraud.PriorityForScore(riskScore),
		AssignedTo:        assignee,
		Country:           pick(g.rng, countryCodes),
		IPAddress:         g.ipAddress(),
		DeviceFingerprint: "fp_" + g.chars(alphaNumLower, 16),
		RuleTriggers:      g.triggers(),
		CreatedAt:         created,
		UpdatedAt:         updated,
	}
}

// Transaction fabricates the full-detail record for an alert. The returned
// transaction shares the alert's identifier, card, device, and merchant
// fields so the investigator view stays consistent with the queue row.
func (g *Generator) Transaction(alert fraud.Alert) fraud.Transaction {
	txn := fraud.Transaction{
		Alert: alert,
		Customer: fraud.Customer{
			ID:         alert.CustomerID,
			Email:      g.email(),
			Phone:      g.phone(),
			AccountAge: g.intRange(30, 2000),
			Verified:   g.rng.Float64() < 0.8,
			RiskLevel:  fraud.RiskLevelForScore(alert.RiskScore),
		},
		Card: fraud.Card{
			BIN:     alert.CardBIN,
			Last4:   alert.CardLast4,
			Type:    pick(g.rng, cardTypes),
			Issuer:  pick(g.rng, cardIssuers),
			Country: alert.Country,
		},
		Merchant: fraud.Merchant{
			ID:        alert.MerchantID,
			Name:      alert.MerchantName,
			Category:  alert.MerchantCategory,
			Country:   pick(g.rng, countryCodes),
			RiskLevel: fraud.RiskLevel(pick(g.rng, ruleSeverities)),
			MCC:       g.chars(digits, 4),
		},
		Device: fraud.Device{
			Fingerprint: alert.DeviceFingerprint,
			IPAddress:   alert.IPAddress,
			UserAgent:   pick(g.rng, userAgents),
			Location: fraud.Location{
				Country: alert.Country,
				City:    pick(g.rng, cityNames),
				Coordinates: [2]float64{
					g.floatRange(-90, 90),
					g.floatRange(-180, 180),
				},
			},
		},
		RiskAssessment: g.riskAssessment(alert),
		Rules:          g.rules(alert.RuleTriggers),
	}

	txn.Notes = g.notes()
	txn.Timeline = g.timeline()
	return txn
}

// KPIs fabricates a fresh aggregate counter block.
func (g *Generator) KPIs() fraud.KPIData {
	return fraud.KPIData{
		TotalAlerts:     g.intRange(800, 1500),
		ConfirmedFraud:  g.intRange(50, 150),
		FalsePositives:  g.intRange(100, 300),
		AvgResponseTime: math.Round(g.floatRange(2.5, 8.5)*10) / 10,
		FraudRate:       math.Round(g.floatRange(0.05, 0.12)*1000) / 1000,
		BlockedAmount:   g.intRange(1000000, 5000000),
		Timestamp:       g.clock().UTC(),
	}
}

// AlertID returns a fresh ALT-prefixed identifier.
func (g *Generator) AlertID() string {
	return "ALT-" + g.chars(alphaNumUpper, 8)
}

// TransactionID returns a fresh TXN-prefixed identifier.
func (g *Generator) TransactionID() string {
	return fmt.Sprintf("TXN-%d-%s", g.clock().Year(), g.chars(digits, 6))
}

// CaseID returns a fresh CASE-prefixed identifier.
func (g *Generator) CaseID() string {
	return "CASE-" + g.chars(alphaNumUpper, 8)
}

// AuditID returns a fresh AUD-prefixed identifier.
func (g *Generator) AuditID() string {
	return "AUD-" + g.chars(alphaNumUpper, 8)
}

func (g *Generator) riskAssessment(alert fraud.Alert) fraud.RiskAssessment {
	features := make([]fraud.Feature, 0, len(featureTemplates))
	for i, tmpl := range featureTemplates {
		value := g.floatRange(0.1, 1.0)
		if i == 0 {
			// The amount feature reports the transaction amount itself.
			value = alert.Amount
		}
		features = append(features, fraud.Feature{
			Name:        tmpl.name,
			Value:       value,
			Impact:      g.floatRange(tmpl.impactMin, tmpl.impactMax),
			Description: tmpl.description,
		})
	}
	return fraud.RiskAssessment{
		OverallScore: alert.RiskScore,
		Confidence:   alert.Confidence,
		ModelVersion: modelVersion,
		Features:     features,
	}
}

func (g *Generator) rules(triggers []string) []fraud.Rule {
	rules := make([]fraud.Rule, 0, len(triggers))
	for _, trigger := range triggers {
		rules = append(rules, fraud.Rule{
			ID:        "RULE-" + g.chars(digits, 3),
			Name:      ruleName(trigger),
			Triggered: true,
			Severity:  pick(g.rng, ruleSeverities),
		})
	}
	return rules
}

// notes returns 0-5 seeded notes, most-recent-first with descending
// timestamps and ids counting down to 1.
func (g *Generator) notes() []fraud.Note {
	count := g.intRange(0, 5)
	notes := make([]fraud.Note, 0, count)
	ts := g.clock().UTC()
	for i := count; i >= 1; i-- {
		ts = ts.Add(-time.Duration(g.rng.Int63n(int64(12 * time.Hour))))
		notes = append(notes, fraud.Note{
			ID:        i,
			Author:    pick(g.rng, analystNames),
			Text:      pick(g.rng, noteTexts),
			Timestamp: ts,
		})
	}
	return notes
}

// timeline returns 2-8 seeded events in the same most-recent-first order.
func (g *Generator) timeline() []fraud.TimelineEvent {
	count := g.intRange(2, 8)
	events := make([]fraud.TimelineEvent, 0, count)
	ts := g.clock().UTC()
	for i := count; i >= 1; i-- {
		ts = ts.Add(-time.Duration(g.rng.Int63n(int64(8 * time.Hour))))
		author := "System"
		if g.rng.Float64() < 0.5 {
			author = pick(g.rng, analystNames)
		}
		events = append(events, fraud.TimelineEvent{
			ID:          i,
			Action:      pick(g.rng, timelineActions),
			Description: pick(g.rng, timelineDescriptions),
			Author:      author,
			Timestamp:   ts,
		})
	}
	return events
}

// triggers draws 1-3 distinct rule triggers.
func (g *Generator) triggers() []string {
	count := g.intRange(1, 3)
	idx := g.rng.Perm(len(ruleTriggers))[:count]
	out := make([]string, 0, count)
	for _, i := range idx {
		out = append(out, ruleTriggers[i])
	}
	return out
}

func (g *Generator) merchantName() string {
	return pick(g.rng, merchantAdjectives) + " " + pick(g.rng, merchantNouns)
}

func (g *Generator) email() string {
	return strings.ToLower(g.chars(alphaNumLower, 8)) + "@" + pick(g.rng, emailDomains)
}

func (g *Generator) phone() string {
	return fmt.Sprintf("+1-%s-%s-%s", g.chars(digits, 3), g.chars(digits, 3), g.chars(digits, 4))
}

func (g *Generator) ipAddress() string {
	return fmt.Sprintf("%d.%d.%d.%d",
		g.intRange(1, 254), g.intRange(0, 254), g.intRange(0, 254), g.intRange(1, 254))
}

// chars draws n characters from the given alphabet.
func (g *Generator) chars(alphabet string, n int) string {
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		b.WriteByte(alphabet[g.rng.Intn(len(alphabet))])
	}
	return b.String()
}

// intRange returns a random number in [min, max].
func (g *Generator) intRange(min, max int) int {
	if min >= max {
		return min
	}
	return min + g.rng.Intn(max-min+1)
}

// floatRange returns a random number in [min, max] rounded to two decimals.
func (g *Generator) floatRange(min, max float64) float64 {
	v := min + g.rng.Float64()*(max-min)
	return math.Round(v*100) / 100
}

func pick[T any](rng *rand.Rand, items []T) T {
	return items[rng.Intn(len(items))]
}

// ruleName renders a trigger constant like VELOCITY_CHECK as "Velocity Check".
func ruleName(trigger string) string {
	words := strings.Split(strings.ToLower(trigger), "_")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
