package reconcile

import (
	"context"
	"fmt"

	"catalog-sync/core/logger"
	core "catalog-sync/core/reconcile"
	"catalog-sync/feature/catalog/feed"
	"catalog-sync/feature/catalog/models"

	"go.uber.org/zap"
)

// Engine runs reconciliation passes.
type Engine struct {
	feed     Feed
	catalog  Catalog
	notifier Notifier
	logger   *zap.Logger
	opts     Options
}

// NewEngine creates an engine. Zero-valued options fall back to DefaultOptions.
func NewEngine(source Feed, catalog Catalog, notifier Notifier, logger *zap.Logger, opts Options) *Engine {
	defaults := DefaultOptions(opts.FeedURL)
	if opts.Rounding == nil {
		opts.Rounding = defaults.Rounding
	}
	if opts.NewVariantStock < 0 {
		opts.NewVariantStock = defaults.NewVariantStock
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		feed:     source,
		catalog:  catalog,
		notifier: notifier,
		logger:   logger,
		opts:     opts,
	}
}

// run holds the state shared by all items of one pass.
type run struct {
	channel  *models.Channel
	language string
	registry *core.Registry
	// productIDs maps external ids to local products, including products created by this run.
	productIDs map[string]uint
}

// Run performs one full reconciliation pass.
//
// A summary is always returned. The error is non-nil only when the run did not reach
// the end: the feed could not be fetched, the catalog could not be prepared, the
// context was cancelled, or an item failed while StopOnError is set.
func (e *Engine) Run(ctx context.Context) (*core.RunSummary, error) {
	summary := core.NewRunSummary(e.opts.FeedURL)
	log := logger.WithRunID(e.logger, summary.RunID)

	abort := func(err error) (*core.RunSummary, error) {
		summary.Aborted = true
		summary.Finish()
		log.Error("Reconciliation aborted", zap.Error(err))
		return summary, err
	}

	items, err := e.feed.Fetch(ctx, e.opts.FeedURL)
	if err != nil {
		return abort(err)
	}
	log.Info("Fetched feed", zap.Int("items", len(items)))

	channel, err := e.catalog.DefaultChannel(ctx)
	if err != nil {
		return abort(persistErr("resolve default channel", err))
	}

	keys := make([]string, len(items))
	lookup := make([]string, 0, len(items))
	for i, item := range items {
		keys[i] = item.ID
		if item.ID != "" {
			lookup = append(lookup, item.ID)
		}
	}

	products, err := e.catalog.FindProductsByExternalIDs(ctx, lookup)
	if err != nil {
		return abort(persistErr("find products by external id", err))
	}

	state := &run{
		channel:    channel,
		language:   channel.DefaultLanguage,
		registry:   core.NewRegistry(),
		productIDs: make(map[string]uint, len(items)),
	}
	existing := make(map[string]struct{}, len(products))
	for _, p := range products {
		if _, ok := state.productIDs[p.ExternalID]; ok {
			continue
		}
		state.productIDs[p.ExternalID] = p.ID
		existing[p.ExternalID] = struct{}{}
	}

	plan := core.BuildPlan(keys, existing)
	summary.Plan = plan.Summary
	log.Info("Planned reconciliation",
		zap.Int("matched", plan.Summary.Matched),
		zap.Int("unmatched", plan.Summary.Unmatched),
		zap.Int("duplicates", plan.Summary.Duplicates),
	)

	for _, action := range plan.Actions {
		if err := ctx.Err(); err != nil {
			return abort(err)
		}

		result := e.processItem(ctx, state, action, items[action.Index])
		summary.Record(result)

		switch result.Status {
		case core.StatusFailed:
			log.Warn("Item failed",
				zap.String("key", result.Key),
				zap.String("action", string(result.Action)),
				zap.Error(result.Err),
			)
			if e.opts.StopOnError {
				return abort(fmt.Errorf("item %s: %w", result.Key, result.Err))
			}
		case core.StatusSkipped:
			log.Debug("Item skipped", zap.String("key", result.Key), zap.String("reason", result.Reason))
		default:
			log.Debug("Item reconciled",
				zap.String("key", result.Key),
				zap.String("action", string(result.Action)),
				zap.Uint("product_id", result.ProductID),
				zap.Uint("variant_id", result.VariantID),
			)
		}
	}

	e.finalize(ctx, summary, log)
	summary.Finish()

	log.Info("Reconciliation finished",
		zap.Int("created", summary.Created),
		zap.Int("updated", summary.Updated),
		zap.Int("skipped", summary.Skipped),
		zap.Int("failed", summary.Failed),
		zap.String("duration", summary.Duration),
	)
	return summary, nil
}

// finalize requests one reindex and emits one variants-changed notification.
func (e *Engine) finalize(ctx context.Context, summary *core.RunSummary, log *zap.Logger) {
	if e.notifier == nil {
		return
	}
	if err := e.notifier.Reindex(ctx); err != nil {
		summary.FinalizeError = fmt.Sprintf("reindex: %v", err)
		log.Error("Reindex failed", zap.Error(err))
		return
	}
	if err := e.notifier.VariantsChanged(ctx, summary.ChangedVariants()); err != nil {
		summary.FinalizeError = fmt.Sprintf("variants changed: %v", err)
		log.Error("Variants changed notification failed", zap.Error(err))
	}
}

// skipReason returns why item cannot be processed, or "" if it can.
func skipReason(item feed.RemoteItem) string {
	switch {
	case item.ID == "":
		return "missing id"
	case item.Name == "":
		return "missing name"
	case item.SKU == "":
		return "missing sku"
	case !item.Price.Valid:
		return fmt.Sprintf("invalid price %q", item.Price.Raw)
	}
	return ""
}

func (e *Engine) processItem(ctx context.Context, state *run, action core.Action, item feed.RemoteItem) core.ItemResult {
	result := core.ItemResult{Key: item.ID, Name: item.Name, Action: action.Type}

	if reason := skipReason(item); reason != "" {
		result.Status = core.StatusSkipped
		result.Reason = reason
		return result
	}

	productID, known := state.productIDs[item.ID]
	if action.Type == core.ActionUpdate && !known {
		// an earlier occurrence failed to create the product
		result.Action = core.ActionCreate
	}

	scope := state.registry.Scope()
	var outcome pipelineResult
	err := e.catalog.Transaction(ctx, func(tx Catalog) error {
		p := &pipeline{
			tx:       tx,
			scope:    scope,
			channel:  state.channel,
			language: state.language,
			opts:     e.opts,
		}
		var err error
		if result.Action == core.ActionCreate {
			outcome, err = p.create(ctx, item)
		} else {
			outcome, err = p.update(ctx, productID, item)
		}
		return err
	})
	if err != nil {
		scope.Rollback()
		result.Status = core.StatusFailed
		result.Err = err
		return result
	}
	scope.Commit()

	if result.Action == core.ActionCreate {
		state.productIDs[item.ID] = outcome.productID
	}
	result.Status = core.StatusSuccess
	result.ProductID = outcome.productID
	result.VariantID = outcome.variantID
	return result
}
