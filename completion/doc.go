// Package completion is the boundary component issuing prompts to, and
// parsing responses from, an external text-completion service. A Provider
// implements the single low-level call against one vendor API; the Client
// layers the cross-cutting policies on top:
//
//   - CompleteStructured: JSON-only directive, fence stripping, parse-or-fail
//   - CompleteWithRetry: bounded retries with linear backoff
//   - CompleteBatch: concurrency-limited windowed dispatch
//
// Concrete providers live in the anthropic and openai subpackages; the
// MockProvider in this package supports tests and offline development.
package completion
