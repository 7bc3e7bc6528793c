// Package api is the HTTP request client every backend call goes through.
//
// Built on go-resty/resty over a pooled transport:
//   - URLs are base + "/" + endpoint, joined verbatim
//   - JSON in and out (sonic codec), multipart for uploads
//   - Authorization: Bearer <token> read from storage on every call
//   - A shared, reference-counted LoadingState for spinners
//   - Typed errors: NetworkError (no status) and HTTPStatusError (non-2xx)
//
// There are no retries and no circuit breaking; a failed call fails once.
//
// Example Usage:
//
//	client := api.NewClient(api.Options{BaseURL: cfg.API.BaseURL, Store: store})
//	user, err := api.Get[gamifier.UserDashboard](ctx, client, "users/current", nil)
//	if api.IsNetworkError(err) {
//	    // show "disconnected"
//	}
package api
