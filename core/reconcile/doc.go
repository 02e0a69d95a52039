// Package reconcile provides the feed-agnostic building blocks of a reconciliation run.
//
// A run fetches remote items, partitions them against what exists locally and
// dispatches every item to an update or create pipeline:
//
//   - BuildPlan partitions keys into update and create actions. Updates come first;
//     repeated keys are routed to the update path so an entity is never created twice.
//   - RunSummary collects per-item results, counters and the ids of changed variants.
//   - Registry caches ids of shared entities (facets, collections, brands) resolved
//     during the run. A Scope ties those ids to one item so they are forgotten when the
//     item's transaction rolls back.
//   - Guard ensures a single run at a time, joining concurrent callers in-process and
//     using a lock.Locker across processes.
//
// # Usage Example
//
//	plan := reconcile.BuildPlan(keys, existing)
//	summary := reconcile.NewRunSummary(feedURL)
//	for _, action := range plan.Actions {
//	    scope := registry.Scope()
//	    // process the item, then scope.Commit() or scope.Rollback()
//	}
//	summary.Finish()
package reconcile
