// Package fraud defines the alert, transaction, and case model served by
// the mock fraud-operations API, along with the enums and derivations the
// rest of the system relies on.
package fraud

import (
	"time"

	apperrors "github.com/fraudx/fraudx/internal/errors"
)

// Status is the triage state of an alert.
type Status string

const (
	StatusPending       Status = "pending"
	StatusInvestigating Status = "investigating"
	StatusFlagged       Status = "flagged"
	StatusApproved      Status = "approved"
	StatusBlocked       Status = "blocked"
)

// Statuses lists every valid alert status.
func Statuses() []Status {
	return []Status{StatusPending, StatusInvestigating, StatusFlagged, StatusApproved, StatusBlocked}
}

// Valid reports whether the status is a known value.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInvestigating, StatusFlagged, StatusApproved, StatusBlocked:
		return true
	}
	return false
}

// Priority is the triage bucket derived from the risk score.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Valid reports whether the priority is a known value.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// Rank orders priorities from low (0) to critical (3) for sorting.
func (p Priority) Rank() int {
	switch p {
	case PriorityCritical:
		return 3
	case PriorityHigh:
		return 2
	case PriorityMedium:
		return 1
	default:
		return 0
	}
}

// PriorityForScore derives the priority bucket from a risk score.
// The thresholds are fixed: >80 critical, >60 high, >40 medium, else low.
func PriorityForScore(score int) Priority {
	switch {
	case score > 80:
		return PriorityCritical
	case score > 60:
		return PriorityHigh
	case score > 40:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// RiskLevel is a coarse low/medium/high banding used on customer and
// merchant records.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// RiskLevelForScore bands a risk score: >70 high, >40 medium, else low.
func RiskLevelForScore(score int) RiskLevel {
	switch {
	case score > 70:
		return RiskHigh
	case score > 40:
		return RiskMedium
	default:
		return RiskLow
	}
}

// Action is an analyst operation applied to an alert.
type Action string

const (
	ActionFlag     Action = "flag"
	ActionBlock    Action = "block"
	ActionApprove  Action = "approve"
	ActionAssign   Action = "assign"
	ActionEscalate Action = "escalate"
	ActionRefund   Action = "refund"
)

// ParseAction validates an action name from the wire.
func ParseAction(raw string) (Action, error) {
	a := Action(raw)
	switch a {
	case ActionFlag, ActionBlock, ActionApprove, ActionAssign, ActionEscalate, ActionRefund:
		return a, nil
	}
	return "", apperrors.New(apperrors.CodeAlertInvalidAction, "unsupported action: "+raw)
}

// StatusAfter returns the status an alert transitions to when the action is
// applied, or ok=false when the action leaves the status untouched
// (escalate and refund record the action without a state change).
func (a Action) StatusAfter() (Status, bool) {
	switch a {
	case ActionFlag:
		return StatusFlagged, true
	case ActionBlock:
		return StatusBlocked, true
	case ActionApprove:
		return StatusApproved, true
	case ActionAssign:
		return StatusInvestigating, true
	}
	return "", false
}

// CaseStatus is the lifecycle state of an investigation case.
type CaseStatus string

const (
	CaseOpen          CaseStatus = "open"
	CaseInvestigating CaseStatus = "investigating"
	CaseClosed        CaseStatus = "closed"
	CaseEscalated     CaseStatus = "escalated"
)

// SortOrder is the direction of a list sort.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ParseSortOrder validates a sort order, defaulting empty input to desc.
func ParseSortOrder(raw string) (SortOrder, error) {
	switch SortOrder(raw) {
	case "":
		return SortDesc, nil
	case SortAsc:
		return SortAsc, nil
	case SortDesc:
		return SortDesc, nil
	}
	return "", apperrors.New(apperrors.CodeAlertInvalidSortOrder, "sort order must be asc or desc")
}

// Alert is the lightweight fraud-flag record surfaced in triage queues.
// Status, AssignedTo, and UpdatedAt are the only mutable fields, and only
// the apply-action operation mutates them.
type Alert struct {
	ID                string    `json:"id"`
	TransactionID     string    `json:"transactionId"`
	Amount            float64   `json:"amount"`
	Currency          string    `json:"currency"`
	Timestamp         time.Time `json:"timestamp"`
	MerchantName      string    `json:"merchantName"`
	MerchantID        string    `json:"merchantId"`
	MerchantCategory  string    `json:"merchantCategory"`
	CardBIN           string    `json:"cardBin"`
	CardLast4         string    `json:"cardLast4"`
	CustomerID        string    `json:"customerId"`
	RiskScore         int       `json:"riskScore"`
	Confidence        float64   `json:"confidence"`
	Status            Status    `json:"status"`
	Priority          Priority  `json:"priority"`
	AssignedTo        string    `json:"assignedTo,omitempty"`
	Country           string    `json:"country"`
	IPAddress         string    `json:"ipAddress"`
	DeviceFingerprint string    `json:"deviceFingerprint"`
	RuleTriggers      []string  `json:"ruleTriggers"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// Customer is the account holder behind a transaction.
type Customer struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	AccountAge int       `json:"accountAge"`
	Verified   bool      `json:"verified"`
	RiskLevel  RiskLevel `json:"riskLevel"`
}

// Card describes the payment instrument.
type Card struct {
	BIN     string `json:"bin"`
	Last4   string `json:"last4"`
	Type    string `json:"type"`
	Issuer  string `json:"issuer"`
	Country string `json:"country"`
}

// Merchant describes the accepting merchant.
type Merchant struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Country   string    `json:"country"`
	RiskLevel RiskLevel `json:"riskLevel"`
	MCC       string    `json:"mcc"`
}

// Location is a coarse device geolocation.
type Location struct {
	Country     string     `json:"country"`
	City        string     `json:"city"`
	Coordinates [2]float64 `json:"coordinates"`
}

// Device is the fingerprinted client that initiated the transaction.
type Device struct {
	Fingerprint string   `json:"fingerprint"`
	IPAddress   string   `json:"ipAddress"`
	UserAgent   string   `json:"userAgent"`
	Location    Location `json:"location"`
}

// Feature is one named model-feature contribution in a risk assessment.
type Feature struct {
	Name        string  `json:"name"`
	Value       float64 `json:"value"`
	Impact      float64 `json:"impact"`
	Description string  `json:"description"`
}

// RiskAssessment is the model-explainability block on a transaction.
type RiskAssessment struct {
	OverallScore int       `json:"overallScore"`
	Confidence   float64   `json:"confidence"`
	ModelVersion string    `json:"modelVersion"`
	Features     []Feature `json:"features"`
}

// Rule is a triggered detection-rule descriptor.
type Rule struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Triggered bool   `json:"triggered"`
	Severity  string `json:"severity"`
}

// Note is a free-text analyst note. Notes are stored most-recent-first and
// their ids strictly increase within a transaction.
type Note struct {
	ID        int       `json:"id"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// TimelineEvent is one entry in a transaction's action history, stored
// most-recent-first with strictly increasing ids.
type TimelineEvent struct {
	ID          int       `json:"id"`
	Action      string    `json:"action"`
	Description string    `json:"description"`
	Author      string    `json:"author"`
	Timestamp   time.Time `json:"timestamp"`
}

// Transaction is the full-detail record behind an alert. It shares the
// alert's identifier and is created exactly once per alert.
type Transaction struct {
	Alert

	Customer       Customer        `json:"customer"`
	Card           Card            `json:"card"`
	Merchant       Merchant        `json:"merchant"`
	Device         Device          `json:"device"`
	RiskAssessment RiskAssessment  `json:"riskAssessment"`
	Rules          []Rule          `json:"rules"`
	Notes          []Note          `json:"notes"`
	Timeline       []TimelineEvent `json:"timeline"`
}

// NextNoteID returns the next strictly-increasing note ordinal.
func (t *Transaction) NextNoteID() int {
	if len(t.Notes) == 0 {
		return 1
	}
	return t.Notes[0].ID + 1
}

// NextTimelineID returns the next strictly-increasing timeline ordinal.
func (t *Transaction) NextTimelineID() int {
	if len(t.Timeline) == 0 {
		return 1
	}
	return t.Timeline[0].ID + 1
}

// Case groups one or more transactions under an investigation. Cases are
// append-only: created via the create-case operation, never updated.
type Case struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Status         CaseStatus `json:"status"`
	Priority       Priority   `json:"priority"`
	AssignedTo     string     `json:"assignedTo"`
	CreatedBy      string     `json:"createdBy"`
	TransactionIDs []string   `json:"transactionIds"`
	Tags           []string   `json:"tags"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
	ClosedAt       *time.Time `json:"closedAt,omitempty"`
}

// KPIData is the synthetic aggregate counter block for the dashboard.
type KPIData struct {
	TotalAlerts     int       `json:"totalAlerts"`
	ConfirmedFraud  int       `json:"confirmedFraud"`
	FalsePositives  int       `json:"falsePositives"`
	AvgResponseTime float64   `json:"avgResponseTime"`
	FraudRate       float64   `json:"fraudRate"`
	BlockedAmount   int       `json:"blockedAmount"`
	Timestamp       time.Time `json:"timestamp"`
}

// FilterOptions narrow an alert listing. Set-valued filters match when the
// alert's field is in the set; nil score bounds are ignored. All predicates
// combine conjunctively.
type FilterOptions struct {
	Status       []Status
	Priority     []Priority
	RiskScoreMin *int
	RiskScoreMax *int
}

// PageParams control list windowing and ordering. Zero values fall back to
// documented defaults (limit 50, sort by timestamp descending).
type PageParams struct {
	Cursor    string
	Limit     int
	SortBy    string
	SortOrder SortOrder
}

// PageInfo reports the window position of a returned page. Cursor is the
// identifier of the last returned record.
type PageInfo struct {
	Cursor  string `json:"cursor"`
	HasMore bool   `json:"hasMore"`
	Total   int    `json:"total"`
}

// ActionPayload carries the optional free-text inputs of an apply-action
// request.
type ActionPayload struct {
	Note     string
	Assignee string
}

// ActionResult acknowledges an applied action.
type ActionResult struct {
	Success bool   `json:"success"`
	AuditID string `json:"auditId"`
}

// CaseInput is the partial case supplied to the create-case operation.
// Unset fields receive defaults: priority medium, assignee "Unassigned".
type CaseInput struct {
	Title          string
	Description    string
	Priority       Priority
	AssignedTo     string
	TransactionIDs []string
	Tags           []string
}
