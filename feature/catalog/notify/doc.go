// Package notify delivers the end-of-run notifications: a search reindex request
// and a "variants changed" event carrying the ids touched by the run.
//
// Log writes both to the zap logger. Webhook posts them as JSON to an HTTP endpoint.
// Multi fans out to several notifiers and joins their errors.
package notify
