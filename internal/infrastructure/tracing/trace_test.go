package tracing

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/GriffinCanCode/projectfs/internal/shared/id"
)

func newObservedTracer(t *testing.T) (*Tracer, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	return New("test", zap.New(core)), logs
}

func TestStartSpanParentChild(t *testing.T) {
	tracer, _ := newObservedTracer(t)
	defer tracer.Close()

	root, ctx := tracer.StartSpan(context.Background(), "root")
	child, childCtx := tracer.StartSpan(ctx, "child")

	assert.NotEmpty(t, root.TraceID)
	assert.Empty(t, root.ParentID)
	assert.Equal(t, root.TraceID, child.TraceID)
	assert.Equal(t, root.SpanID, child.ParentID)
	assert.NotEqual(t, root.SpanID, child.SpanID)
	assert.Equal(t, child.SpanID, SpanIDFrom(childCtx))
	assert.Equal(t, root.TraceID, TraceIDFrom(childCtx))
}

func TestFinishLogsSpans(t *testing.T) {
	tracer, logs := newObservedTracer(t)

	span, _ := tracer.StartSpan(context.Background(), "ok-op")
	span.SetTag("tool", "filesystem.read_file")
	tracer.Finish(span)

	failed, _ := tracer.StartSpan(context.Background(), "bad-op")
	failed.SetError(errors.New("boom"))
	tracer.Finish(failed)

	tracer.Close()

	require.Equal(t, 2, logs.Len())
	first := logs.All()[0]
	assert.Equal(t, "span completed", first.Message)
	assert.Equal(t, "ok-op", first.ContextMap()["operation"])
	assert.Equal(t, "filesystem.read_file", first.ContextMap()["tool"])

	second := logs.All()[1]
	assert.Equal(t, zapcore.WarnLevel, second.Level)
	assert.Equal(t, "boom", second.ContextMap()["error"])
}

func TestFinishAfterCloseIsDropped(t *testing.T) {
	tracer, logs := newObservedTracer(t)
	tracer.Close()
	tracer.Close()

	span, _ := tracer.StartSpan(context.Background(), "late")
	tracer.Finish(span)

	assert.Equal(t, 0, logs.Len())
}

func TestFullBufferDropsSpan(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	tracer := &Tracer{
		service: "test",
		logger:  zap.New(core),
		spans:   make(chan *Span),
		done:    make(chan struct{}),
	}

	span, _ := tracer.StartSpan(context.Background(), "dropped")
	tracer.Finish(span)

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "span buffer full, dropping span", logs.All()[0].Message)
}

func TestHTTPMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tracer, logs := newObservedTracer(t)

	var seen id.TraceID
	router := gin.New()
	router.Use(HTTPMiddleware(tracer))
	router.GET("/ping", func(c *gin.Context) {
		seen = TraceIDFrom(c.Request.Context())
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/ping", nil))
	assert.Equal(t, seen.String(), w.Header().Get(TraceHeader))
	assert.True(t, id.IsValid(w.Header().Get(SpanHeader)))

	incoming := id.NewTraceID()
	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set(TraceHeader, incoming.String())
	req.Header.Set(SpanHeader, "garbage")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, incoming, seen)

	req = httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set(TraceHeader, "garbage")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.NotEqual(t, "garbage", seen.String())

	tracer.Close()
	require.Equal(t, 3, logs.Len())
	assert.Equal(t, "GET /ping", logs.All()[0].ContextMap()["operation"])
	assert.Equal(t, "200", logs.All()[0].ContextMap()["http.status"])
}
