// Package integrity provides health checks for the catalog-sync infrastructure.
//
// # Checks Provided
//
//   - Schema: validates that the catalog database matches the catalog models (tables, columns, declared types),
//     including the join tables of many-to-many relations.
//   - Bucket: verifies that the run report bucket exists and counts the archived reports.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/schema : Runs the schema check.
//   - GET /integrity/bucket : Runs the bucket check (supports ?fix=true).
package integrity
