// Package httputil provides HTTP client utilities shared by outbound
// integrations.
//
// [Retry] wraps requests with automatic retry for transient failures:
// network errors, 5xx responses, and 429 rate limits. Wrap such errors
// in [RetryableError] so the loop knows to try again; anything else is
// returned immediately. Backoff is exponential, starting at half a
// second and doubling per attempt up to [MaxDelay].
//
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    resp, err := client.Do(req)
//	    if err != nil {
//	        return &httputil.RetryableError{Err: err}
//	    }
//	    ...
//	})
package httputil
