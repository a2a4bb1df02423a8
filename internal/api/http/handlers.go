package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/projectfs/internal/api/middleware"
	"github.com/GriffinCanCode/projectfs/internal/providers/filesystem"
	"github.com/GriffinCanCode/projectfs/internal/service"
	"github.com/GriffinCanCode/projectfs/internal/shared/types"
)

// Version is reported by the root endpoint
const Version = "0.1.0"

// Handlers contains all HTTP handlers
type Handlers struct {
	registry  *service.Registry
	logger    *zap.Logger
	startTime time.Time
}

// NewHandlers creates a new handlers instance
func NewHandlers(registry *service.Registry, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{
		registry:  registry,
		logger:    logger,
		startTime: time.Now(),
	}
}

// Root returns service info
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "projectfs",
		"version": Version,
		"status":  "running",
	})
}

// Health returns detailed health status
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":           "healthy",
		"uptime_seconds":   int64(time.Since(h.startTime).Seconds()),
		"service_registry": h.registry.Stats(),
	})
}

// ListServices lists available services, filtered by ?category= or ranked by ?q=
func (h *Handlers) ListServices(c *gin.Context) {
	if query := c.Query("q"); query != "" {
		c.JSON(http.StatusOK, gin.H{
			"query":    query,
			"services": h.registry.Discover(query, 5),
		})
		return
	}

	var category *types.Category
	if categoryStr := c.Query("category"); categoryStr != "" {
		cat := types.Category(categoryStr)
		category = &cat
	}

	c.JSON(http.StatusOK, gin.H{
		"services": h.registry.List(category),
		"stats":    h.registry.Stats(),
	})
}

// ExecuteService executes any registered tool
func (h *Handlers) ExecuteService(c *gin.Context) {
	var req types.ExecuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if _, ok := h.registry.Tool(req.ToolID); !ok {
		msg := "unknown tool: " + req.ToolID
		c.JSON(http.StatusNotFound, types.Result{Success: false, Error: &msg})
		return
	}

	appCtx := h.appContext(c, "")
	if req.ProjectRoot != nil {
		appCtx.ProjectRoot = req.ProjectRoot
	}

	result, err := h.registry.Execute(c.Request.Context(), req.ToolID, req.Params, appCtx)
	if err != nil {
		h.logger.Warn("tool execution failed", zap.String("tool_id", req.ToolID), zap.Error(err))
		c.JSON(http.StatusNotFound, result)
		return
	}

	h.respond(c, req.ToolID, result)
}

// ProjectRoot returns the default project root
func (h *Handlers) ProjectRoot(c *gin.Context) {
	h.execute(c, "filesystem.get_project_root", map[string]interface{}{}, "")
}

// ReadFile reads a text file
func (h *Handlers) ReadFile(c *gin.Context) {
	var req types.ReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	h.execute(c, "filesystem.read_file", map[string]interface{}{
		"path": req.Path,
	}, req.Root)
}

// WriteFile creates or replaces a file
func (h *Handlers) WriteFile(c *gin.Context) {
	var req types.WriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	h.execute(c, "filesystem.write_file", map[string]interface{}{
		"path":    req.Path,
		"content": req.Content,
	}, req.Root)
}

// EditFile replaces a unique occurrence of old_text
func (h *Handlers) EditFile(c *gin.Context) {
	var req types.EditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	h.execute(c, "filesystem.edit_file", map[string]interface{}{
		"path":     req.Path,
		"old_text": req.OldText,
		"new_text": req.NewText,
	}, req.Root)
}

// ListDirectory lists a directory, optionally recursively
func (h *Handlers) ListDirectory(c *gin.Context) {
	var req types.ListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	h.execute(c, "filesystem.list_directory", map[string]interface{}{
		"path":      req.Path,
		"recursive": req.Recursive,
	}, req.Root)
}

// SearchFiles searches file contents
func (h *Handlers) SearchFiles(c *gin.Context) {
	var req types.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	h.execute(c, "filesystem.search_files", map[string]interface{}{
		"pattern": *req.Pattern,
		"path":    req.Path,
		"glob":    req.Glob,
	}, req.Root)
}

// DirectoryStats aggregates counts under a directory
func (h *Handlers) DirectoryStats(c *gin.Context) {
	var req types.StatsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	h.execute(c, "filesystem.directory_stats", map[string]interface{}{
		"path": req.Path,
	}, req.Root)
}

func (h *Handlers) execute(c *gin.Context, toolID string, params map[string]interface{}, root string) {
	result, err := h.registry.Execute(c.Request.Context(), toolID, params, h.appContext(c, root))
	if err != nil {
		h.logger.Error("filesystem service unavailable", zap.String("tool_id", toolID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, result)
		return
	}
	h.respond(c, toolID, result)
}

func (h *Handlers) respond(c *gin.Context, toolID string, result *types.Result) {
	status := StatusFor(result)
	if status >= http.StatusInternalServerError {
		h.logger.Error("tool failed", zap.String("tool_id", toolID), zap.String("kind", result.Kind), zap.Stringp("error", result.Error))
	}
	c.JSON(status, result)
}

func (h *Handlers) appContext(c *gin.Context, root string) *types.Context {
	appCtx := &types.Context{}
	if root != "" {
		appCtx.ProjectRoot = &root
	}
	if id := middleware.GetRequestID(c); id != "" {
		appCtx.RequestID = &id
	}
	return appCtx
}

func badRequest(c *gin.Context, err error) {
	msg := err.Error()
	c.JSON(http.StatusBadRequest, types.Result{Success: false, Error: &msg})
}

// kindStatus maps failure kinds to HTTP status codes
var kindStatus = map[string]int{
	filesystem.KindPathTraversal.String():  http.StatusForbidden,
	filesystem.KindInvalidRoot.String():    http.StatusBadRequest,
	filesystem.KindNotADirectory.String():  http.StatusBadRequest,
	filesystem.KindInvalidPattern.String(): http.StatusBadRequest,
	filesystem.KindEditNotFound.String():   http.StatusBadRequest,
	filesystem.KindAmbiguousEdit.String():  http.StatusConflict,
	filesystem.KindInvalidUTF8.String():    http.StatusUnprocessableEntity,
	filesystem.KindIO.String():             http.StatusInternalServerError,
}

// StatusFor returns the HTTP status for a tool result. Failures without a
// kind are parameter errors.
func StatusFor(result *types.Result) int {
	if result == nil {
		return http.StatusInternalServerError
	}
	if result.Success {
		return http.StatusOK
	}
	if result.Kind == "" {
		return http.StatusBadRequest
	}
	if status, ok := kindStatus[result.Kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}
