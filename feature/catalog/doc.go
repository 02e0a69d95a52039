// Package catalog wires the reconciliation engine into the application.
//
// It provides:
//   - Service: runs the engine behind a single-flight guard, keeps the last summary and
//     archives every summary to object storage.
//   - Scheduler: triggers a run every configured number of days, plus one delayed run
//     at startup in worker mode.
//   - Handler: the HTTP endpoints under /catalog.
//   - Feature: the loader.Feature registering the handler.
package catalog
