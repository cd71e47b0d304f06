package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	apperrors "github.com/fraudx/fraudx/internal/errors"
	"github.com/fraudx/fraudx/internal/fraud"
	"github.com/fraudx/fraudx/internal/fraud/service"
)

// envelope is the response shape shared by every JSON endpoint.
type envelope struct {
	Success    bool            `json:"success"`
	Data       any             `json:"data,omitempty"`
	Message    string          `json:"message,omitempty"`
	Pagination *fraud.PageInfo `json:"pagination,omitempty"`
}

type actionRequest struct {
	Action   string `json:"action"`
	Note     string `json:"note,omitempty"`
	Assignee string `json:"assignee,omitempty"`
}

type caseRequest struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Priority       string   `json:"priority"`
	AssignedTo     string   `json:"assignedTo"`
	TransactionIDs []string `json:"transactionIds"`
	Tags           []string `json:"tags"`
}

// NewHandler creates the mock API routes around a query service.
func NewHandler(svc *service.Service) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/up", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	mux.HandleFunc("GET /api/kpis", func(w http.ResponseWriter, r *http.Request) {
		kpis, err := svc.KPIs(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, envelope{Success: true, Data: kpis})
	})

	mux.HandleFunc("GET /api/alerts", func(w http.ResponseWriter, r *http.Request) {
		filters, page, err := parseListQuery(r)
		if err != nil {
			writeError(w, err)
			return
		}

		alerts, info, err := svc.ListAlerts(r.Context(), filters, page)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, envelope{Success: true, Data: alerts, Pagination: &info})
	})

	mux.HandleFunc("GET /api/alerts/{id}", func(w http.ResponseWriter, r *http.Request) {
		txn, err := svc.GetTransaction(r.Context(), r.PathValue("id"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, envelope{Success: true, Data: txn})
	})

	mux.HandleFunc("POST /api/alerts/{id}/actions", func(w http.ResponseWriter, r *http.Request) {
		var req actionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, apperrors.New(apperrors.CodeAlertInvalidAction, "invalid action body"))
			return
		}

		action, err := fraud.ParseAction(req.Action)
		if err != nil {
			writeError(w, err)
			return
		}

		result, err := svc.ApplyAction(r.Context(), r.PathValue("id"), action, fraud.ActionPayload{
			Note:     req.Note,
			Assignee: req.Assignee,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, envelope{Success: true, Data: result})
	})

	mux.HandleFunc("GET /api/cases", func(w http.ResponseWriter, r *http.Request) {
		cases, err := svc.ListCases(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, envelope{Success: true, Data: cases})
	})

	mux.HandleFunc("POST /api/cases", func(w http.ResponseWriter, r *http.Request) {
		var req caseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, apperrors.New(apperrors.CodeCaseTitleEmpty, "invalid case body"))
			return
		}

		created, err := svc.CreateCase(r.Context(), fraud.CaseInput{
			Title:          req.Title,
			Description:    req.Description,
			Priority:       fraud.Priority(req.Priority),
			AssignedTo:     req.AssignedTo,
			TransactionIDs: req.TransactionIDs,
			Tags:           req.Tags,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, envelope{Success: true, Data: created})
	})

	mux.Handle("GET /ws", newWSHandler(svc))

	return mux
}

// parseListQuery reads the alert-listing filters and page controls from the
// query string. Set-valued params accept repetition and comma separation.
func parseListQuery(r *http.Request) (fraud.FilterOptions, fraud.PageParams, error) {
	query := r.URL.Query()

	var filters fraud.FilterOptions
	for _, raw := range splitMulti(query["status"]) {
		filters.Status = append(filters.Status, fraud.Status(raw))
	}
	for _, raw := range splitMulti(query["priority"]) {
		filters.Priority = append(filters.Priority, fraud.Priority(raw))
	}

	minScore, err := intParam(query.Get("riskScoreMin"), "riskScoreMin")
	if err != nil {
		return fraud.FilterOptions{}, fraud.PageParams{}, err
	}
	filters.RiskScoreMin = minScore

	maxScore, err := intParam(query.Get("riskScoreMax"), "riskScoreMax")
	if err != nil {
		return fraud.FilterOptions{}, fraud.PageParams{}, err
	}
	filters.RiskScoreMax = maxScore

	limit := 0
	if raw := query.Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			return fraud.FilterOptions{}, fraud.PageParams{}, apperrors.New(apperrors.CodeAlertInvalidLimit, "limit must be an integer")
		}
	}

	page := fraud.PageParams{
		Cursor:    query.Get("cursor"),
		Limit:     limit,
		SortBy:    query.Get("sortBy"),
		SortOrder: fraud.SortOrder(query.Get("sortOrder")),
	}
	return filters, page, nil
}

func splitMulti(values []string) []string {
	var out []string
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func intParam(raw string, name string) (*int, error) {
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, apperrors.New(apperrors.CodeAlertInvalidRiskRange, name+" must be an integer")
	}
	return &n, nil
}

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := apperrors.GetCode(err).HTTPStatus()
	message := err.Error()

	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		message = appErr.Message
	} else if status >= http.StatusInternalServerError {
		message = "internal error"
	}

	writeJSON(w, status, envelope{Success: false, Message: message})
}
