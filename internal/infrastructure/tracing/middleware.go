package tracing

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/projectfs/internal/shared/id"
)

// HTTPMiddleware opens a span per request, continuing an incoming trace when
// the caller sent a valid X-Trace-ID.
func HTTPMiddleware(tracer *Tracer) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if traceID := c.GetHeader(TraceHeader); id.IsValid(traceID) {
			parent := c.GetHeader(SpanHeader)
			if !id.IsValid(parent) {
				parent = ""
			}
			ctx = WithRemoteParent(ctx, id.TraceID(traceID), id.SpanID(parent))
		}

		name := c.FullPath()
		if name == "" {
			name = "unmatched"
		}
		span, ctx := tracer.StartSpan(ctx, c.Request.Method+" "+name)
		span.SetTag("http.method", c.Request.Method)
		span.SetTag("http.path", c.Request.URL.Path)

		c.Request = c.Request.WithContext(ctx)
		c.Header(TraceHeader, span.TraceID.String())
		c.Header(SpanHeader, span.SpanID.String())

		c.Next()

		status := c.Writer.Status()
		span.SetTag("http.status", strconv.Itoa(status))
		if len(c.Errors) > 0 {
			span.SetError(c.Errors.Last())
		} else if status >= 500 {
			span.SetError(errors.New("http " + strconv.Itoa(status)))
		}
		tracer.Finish(span)
	}
}
