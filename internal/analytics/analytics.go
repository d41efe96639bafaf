// Package analytics models completed study activity. Sessions record a
// summary here when they finish; the model is kept in memory and aggregates
// accuracy per category and overall.
package analytics

import (
	"sync"
	"time"
)

// Session kinds recorded in a summary.
const (
	TypePractice   = "practice"
	TypeAssessment = "assessment"
	TypeCaseStudy  = "case_study"
)

// SessionSummary is one completed study run.
type SessionSummary struct {
	Type      string    `json:"type"`
	Category  string    `json:"category,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Correct   int       `json:"correct"`
	Total     int       `json:"total"`
}

// Score is the fraction of correct answers, zero for an empty run.
func (s SessionSummary) Score() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Total)
}

// CategoryAggregate accumulates results across sessions of one category.
type CategoryAggregate struct {
	Correct  int `json:"correct"`
	Total    int `json:"total"`
	Sessions int `json:"sessions"`
}

// Accuracy is cumulative correct over cumulative total.
func (a CategoryAggregate) Accuracy() float64 {
	if a.Total == 0 {
		return 0
	}
	return float64(a.Correct) / float64(a.Total)
}

// History accumulates session summaries. Safe for concurrent use.
type History struct {
	mu        sync.RWMutex
	summaries []SessionSummary
}

// NewHistory creates an empty history.
func NewHistory() *History {
	return &History{}
}

// Record appends a summary, stamping it with the current time when the
// caller left the timestamp zero.
func (h *History) Record(summary SessionSummary) {
	if summary.Timestamp.IsZero() {
		summary.Timestamp = time.Now()
	}
	h.mu.Lock()
	h.summaries = append(h.summaries, summary)
	h.mu.Unlock()
}

// Sessions returns a copy of all recorded summaries in record order.
func (h *History) Sessions() []SessionSummary {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]SessionSummary, len(h.summaries))
	copy(out, h.summaries)
	return out
}

// ByCategory aggregates results per category. Summaries with no category,
// like the fixed assessment, are grouped under the empty key.
func (h *History) ByCategory() map[string]CategoryAggregate {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make(map[string]CategoryAggregate)
	for _, s := range h.summaries {
		agg := out[s.Category]
		agg.Correct += s.Correct
		agg.Total += s.Total
		agg.Sessions++
		out[s.Category] = agg
	}
	return out
}

// Overall aggregates every recorded summary.
func (h *History) Overall() CategoryAggregate {
	h.mu.RLock()
	defer h.mu.RUnlock()
	var agg CategoryAggregate
	for _, s := range h.summaries {
		agg.Correct += s.Correct
		agg.Total += s.Total
		agg.Sessions++
	}
	return agg
}
