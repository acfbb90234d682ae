// Package assist forwards the placed-component list to an external
// text-generation service and returns the raw response.
//
// The builder makes no assumptions about the remote service beyond the
// wire contract: a valid JSON request goes out, JSON (or an error) comes
// back. The response body is returned as [encoding/json.RawMessage] so
// callers can relay it without re-interpretation.
//
// Responses are cached by request hash (see [Client.Suggest]) so that an
// unchanged canvas doesn't trigger a second remote call. Transient
// failures (network errors, 5xx responses) are retried with exponential
// backoff via pkg/httputil.
package assist
