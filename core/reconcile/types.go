package reconcile

import "time"

// ActionType represents the pipeline an item is dispatched to.
type ActionType string

const (
	// ActionUpdate brings an existing entity in line with the remote item.
	ActionUpdate ActionType = "update"
	// ActionCreate provisions a new entity for the remote item.
	ActionCreate ActionType = "create"
)

// Action represents one planned unit of work.
type Action struct {
	// Type specifies the pipeline to run.
	Type ActionType `json:"type"`

	// Key is the external identifier of the item.
	Key string `json:"key"`

	// Index is the position of the item in the fetched feed.
	Index int `json:"index"`

	// Reason explains why this action was chosen.
	Reason string `json:"reason"`
}

// Plan contains the ordered actions for a run.
// All update actions come first, followed by create actions in feed order.
type Plan struct {
	// Actions contains planned operations.
	Actions []Action `json:"actions"`

	// Summary provides aggregate counts.
	Summary PlanSummary `json:"summary"`
}

// PlanSummary provides aggregate statistics for a plan.
type PlanSummary struct {
	// TotalItems is the number of fetched items.
	TotalItems int `json:"total_items"`

	// Matched counts items whose key exists locally.
	Matched int `json:"matched"`

	// Unmatched counts distinct keys that must be created.
	Unmatched int `json:"unmatched"`

	// Duplicates counts items repeating a key already seen in the same feed.
	Duplicates int `json:"duplicates"`
}

// ItemStatus is the outcome of processing one item.
type ItemStatus string

const (
	StatusSuccess ItemStatus = "success"
	StatusSkipped ItemStatus = "skipped"
	StatusFailed  ItemStatus = "failed"
)

// ItemResult records what happened to a single remote item.
type ItemResult struct {
	// Key is the external identifier of the item.
	Key string `json:"key"`

	// Name is the remote display name.
	Name string `json:"name"`

	// Action is the pipeline that ran.
	Action ActionType `json:"action"`

	// Status is the outcome.
	Status ItemStatus `json:"status"`

	// ProductID is the local product touched, if any.
	ProductID uint `json:"product_id,omitempty"`

	// VariantID is the local default variant touched, if any.
	VariantID uint `json:"variant_id,omitempty"`

	// Reason describes why an item was skipped.
	Reason string `json:"reason,omitempty"`

	// Error is the failure message for failed items.
	Error string `json:"error,omitempty"`

	// Err is the underlying failure, kept for errors.Is checks.
	Err error `json:"-"`
}

// RunSummary aggregates the results of one reconciliation run.
type RunSummary struct {
	RunID      string    `json:"run_id"`
	Source     string    `json:"source"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Duration   string    `json:"duration"`

	Plan PlanSummary `json:"plan"`

	Created int `json:"created"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`

	// Aborted is set when processing stopped at the first failure.
	Aborted bool `json:"aborted"`

	// ChangedVariantIDs lists the variants created or updated by the run.
	ChangedVariantIDs []uint `json:"changed_variant_ids"`

	// FinalizeError is set when the reindex or notification step failed.
	FinalizeError string `json:"finalize_error,omitempty"`

	Results []ItemResult `json:"results"`
}
