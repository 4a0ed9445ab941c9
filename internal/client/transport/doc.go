// Package transport executes requests against the backend REST API with the
// current credentials attached.
//
// # Refresh
//
// A 401 response triggers exactly one refresh-and-retry cycle:
//
//  1. Without a refresh token the call fails with an *AuthError
//     (ReasonNoRefreshToken) and no refresh is attempted.
//  2. Otherwise POST token/refresh/ is issued. A response carrying a new
//     access token is stored (keeping the old refresh token unless a new one
//     is supplied) and the original request is re-executed once. Whatever
//     that retry returns is final.
//  3. A refresh response without an access token, or a failed refresh call,
//     clears the stored credentials and fails with an *AuthError
//     (ReasonRefreshRejected).
//
// The transport never navigates. AuthError.RedirectURL gives the caller the
// login target; what to do with it is the caller's decision.
//
// # Telemetry
//
// Statuses 401, 429 and 404 are expected in normal operation and are never
// reported. Every other failing exchange, including network faults, is
// reported once to the configured telemetry.Reporter.
package transport
