// Package taskly provides the client for the external task-management
// backend.
//
// Every data-bearing operation is a single authenticated HTTP call carrying
// both the static service API key and a freshly minted bearer token for the
// acting user. There is no retry policy and no connection pooling: a failed
// attempt is a single reported failure, surfaced as *UpstreamError with the
// network/timeout case distinguished from non-2xx responses.
//
// The health probe is the one exception to the error contract: it never
// fails, degrading to an "unhealthy" status with the underlying message.
package taskly
