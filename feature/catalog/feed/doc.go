// Package feed fetches the remote product list.
//
// The feed is a JSON document of the form {"Items": [...]}. A transport failure or a
// non-2xx response yields a *FetchError, which matches ErrFetch with errors.Is.
// The client never retries; a failed fetch is retried by the next scheduled run.
package feed
