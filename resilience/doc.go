// Package resilience wraps calls to remote backends with retries and a
// circuit breaker.
//
//	cb := resilience.NewCircuitBreaker(resilience.DefaultCircuitBreakerConfig("kafka"))
//	err := cb.Execute(func() error {
//	    return resilience.RetryFunc(ctx, resilience.DefaultRetryConfig(), write)
//	})
package resilience
