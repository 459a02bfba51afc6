// Package transport submits encoded diagram payloads to a PlantUML server
// and retrieves the rendered artifact. It owns the bounded retry loop: each
// attempt is a single HTTP GET with a per-attempt timeout, failures are
// classified into renderfail kinds, and retryable failures wait out a fixed
// backoff schedule before the next attempt. Access-denied responses abort
// immediately; every other failure consumes the attempt budget.
package transport
