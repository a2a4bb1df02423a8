/*
Package tracing provides lightweight request tracing for debugging.

Each HTTP request gets a span; tool executions in the service registry open
child spans under it. Finished spans are logged by a background collector
with their trace, span and parent IDs, so one request's log lines can be
grouped.

# Usage

	tracer := tracing.New("projectfs", logger)
	defer tracer.Close()

	router.Use(tracing.HTTPMiddleware(tracer))

	span, ctx := tracer.StartSpan(ctx, "filesystem.search_files")
	span.SetTag("pattern", pattern)
	defer tracer.Finish(span)

# Trace Format

IDs are prefixed ULIDs (trace_..., span_...). Context is propagated with
the X-Trace-ID and X-Span-ID headers; malformed incoming IDs are ignored.
*/
package tracing
