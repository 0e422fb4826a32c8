package crawler

import (
	"context"
	"runtime/debug"
)

// processURLSafely wraps processURL with panic recovery, adapted from
// the teacher's SafeProcessor: an exception anywhere in steps 3-6 of
// spec.md §4.7 (tokenize, dedupe, analytics, link extraction) must
// never take down a worker goroutine. processURL's own deferred
// cleanup (audit record, mark-complete, processed counter) still runs
// during the panic's unwind, since defers execute before a recover
// further up the stack; this wrapper only needs to stop the panic and
// account for it.
func (c *Crawler) processURLSafely(ctx context.Context, rawURL string) {
	defer func() {
		if r := recover(); r != nil {
			c.errors.Add(1)
			c.logger.Error("panic while processing url",
				"url", rawURL, "panic", r, "stack", string(debug.Stack()))
		}
	}()

	c.processURL(ctx, rawURL)
}
