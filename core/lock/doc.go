// Package lock provides exclusive run locks.
//
// Reconciliation runs must never overlap: two runs racing on the same external-id
// index could create duplicate products. Local guards a single process; Redis guards
// every process sharing a redis database (e.g. an API server and a background worker).
package lock
