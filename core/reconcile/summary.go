package reconcile

import (
	"time"

	"github.com/google/uuid"
)

// NewRunSummary starts a summary for a run reading from source.
func NewRunSummary(source string) *RunSummary {
	return &RunSummary{
		RunID:             uuid.NewString(),
		Source:            source,
		StartedAt:         time.Now().UTC(),
		ChangedVariantIDs: []uint{},
		Results:           []ItemResult{},
	}
}

// Record adds an item result and updates the counters.
func (s *RunSummary) Record(r ItemResult) {
	if r.Err != nil && r.Error == "" {
		r.Error = r.Err.Error()
	}
	switch r.Status {
	case StatusSuccess:
		if r.Action == ActionCreate {
			s.Created++
		} else {
			s.Updated++
		}
	case StatusSkipped:
		s.Skipped++
	case StatusFailed:
		s.Failed++
	}
	s.Results = append(s.Results, r)
}

// ChangedVariants returns the distinct ids of variants touched by successful items, in order.
func (s *RunSummary) ChangedVariants() []uint {
	seen := make(map[uint]struct{})
	ids := make([]uint, 0, len(s.Results))
	for _, r := range s.Results {
		if r.Status != StatusSuccess || r.VariantID == 0 {
			continue
		}
		if _, ok := seen[r.VariantID]; ok {
			continue
		}
		seen[r.VariantID] = struct{}{}
		ids = append(ids, r.VariantID)
	}
	return ids
}

// Finish stamps the end time and collects the changed variant ids.
func (s *RunSummary) Finish() {
	s.FinishedAt = time.Now().UTC()
	s.Duration = s.FinishedAt.Sub(s.StartedAt).String()
	s.ChangedVariantIDs = s.ChangedVariants()
}

// IsSuccess returns true if no item failed and finalization succeeded.
func (s *RunSummary) IsSuccess() bool {
	return s.Failed == 0 && !s.Aborted && s.FinalizeError == ""
}

// Errors returns the underlying errors of failed items.
func (s *RunSummary) Errors() []error {
	var errs []error
	for _, r := range s.Results {
		if r.Status == StatusFailed && r.Err != nil {
			errs = append(errs, r.Err)
		}
	}
	return errs
}
