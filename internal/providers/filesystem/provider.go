package filesystem

import (
	"context"
	"fmt"

	"github.com/gabriel-vasile/mimetype"

	"github.com/GriffinCanCode/projectfs/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/projectfs/internal/shared/types"
)

// ServiceID is the registry ID of the filesystem service
const ServiceID = "filesystem"

// Provider exposes Sandbox operations as registry tools
type Provider struct {
	*Sandbox
	metrics *monitoring.Metrics
}

// NewProvider creates a filesystem provider
func NewProvider(sandbox *Sandbox) *Provider {
	return &Provider{Sandbox: sandbox}
}

// WithMetrics attaches a metrics collector
func (p *Provider) WithMetrics(metrics *monitoring.Metrics) *Provider {
	p.metrics = metrics
	return p
}

// Definition returns service metadata
func (p *Provider) Definition() types.Service {
	return types.Service{
		ID:          ServiceID,
		Name:        "Project Filesystem",
		Description: "Read, write, edit, list and search files confined to a project root",
		Category:    types.CategoryFilesystem,
		Capabilities: []string{
			"read",
			"write",
			"edit",
			"list",
			"search",
			"stats",
		},
		Tools: p.GetTools(),
	}
}

// GetTools returns filesystem tool definitions
func (p *Provider) GetTools() []types.Tool {
	root := types.Parameter{Name: "root", Type: "string", Description: "Project root (default: configured root)", Required: false}

	return []types.Tool{
		{
			ID:          "filesystem.get_project_root",
			Name:        "Get Project Root",
			Description: "Return the default project root",
			Parameters:  []types.Parameter{},
			Returns:     "string",
		},
		{
			ID:          "filesystem.read_file",
			Name:        "Read File",
			Description: "Read the contents of a text file. Path is relative to the project root.",
			Parameters: []types.Parameter{
				root,
				{Name: "path", Type: "string", Description: "File path relative to project root", Required: true},
			},
			Returns: "string",
		},
		{
			ID:          "filesystem.write_file",
			Name:        "Write File",
			Description: "Create a new file or overwrite an existing file. Prefer edit_file for modifications.",
			Parameters: []types.Parameter{
				root,
				{Name: "path", Type: "string", Description: "File path relative to project root", Required: true},
				{Name: "content", Type: "string", Description: "Full file content to write", Required: true},
			},
			Returns: "boolean",
		},
		{
			ID:          "filesystem.edit_file",
			Name:        "Edit File",
			Description: "Find and replace text in a file. old_text must appear exactly once.",
			Parameters: []types.Parameter{
				root,
				{Name: "path", Type: "string", Description: "File path relative to project root", Required: true},
				{Name: "old_text", Type: "string", Description: "Exact text to find (must be unique in the file)", Required: true},
				{Name: "new_text", Type: "string", Description: "Text to replace it with", Required: true},
			},
			Returns: "boolean",
		},
		{
			ID:          "filesystem.list_directory",
			Name:        "List Directory",
			Description: "List files and subdirectories with name, path, type and size",
			Parameters: []types.Parameter{
				root,
				{Name: "path", Type: "string", Description: "Directory path relative to project root", Required: true},
				{Name: "recursive", Type: "boolean", Description: "List recursively (default false)", Required: false},
			},
			Returns: "array",
		},
		{
			ID:          "filesystem.search_files",
			Name:        "Search Files",
			Description: "Search file contents by regex. Skips hidden files, node_modules, .git, target and dist.",
			Parameters: []types.Parameter{
				root,
				{Name: "pattern", Type: "string", Description: "Regex pattern to search for", Required: true},
				{Name: "path", Type: "string", Description: "Directory to search (default: entire project)", Required: false},
				{Name: "glob", Type: "string", Description: "File name suffix filter (e.g. '*.ts')", Required: false},
			},
			Returns: "array",
		},
		{
			ID:          "filesystem.directory_stats",
			Name:        "Directory Stats",
			Description: "Count files, directories and bytes under a directory (fast parallel)",
			Parameters: []types.Parameter{
				root,
				{Name: "path", Type: "string", Description: "Directory path relative to project root", Required: true},
			},
			Returns: "object",
		},
	}
}

// Execute runs a filesystem tool
func (p *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	if err := ctx.Err(); err != nil {
		return Failure(fmt.Sprintf("request cancelled: %v", err))
	}

	timer := monitoring.NewTimer(p.metrics, ServiceID, toolID)
	result, err := p.dispatch(toolID, params, appCtx)
	if err != nil || result == nil || !result.Success {
		timer.Stop("failure")
		if p.metrics != nil && result != nil {
			kind := result.Kind
			if kind == "" {
				kind = "rejected"
			}
			p.metrics.RecordServiceError(ServiceID, toolID, kind)
		}
	} else {
		timer.Stop("success")
	}
	return result, err
}

func (p *Provider) dispatch(toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	switch toolID {
	case "filesystem.get_project_root":
		return p.getProjectRoot()
	case "filesystem.read_file":
		return p.readFile(params, appCtx)
	case "filesystem.write_file":
		return p.writeFile(params, appCtx)
	case "filesystem.edit_file":
		return p.editFile(params, appCtx)
	case "filesystem.list_directory":
		return p.listDirectory(params, appCtx)
	case "filesystem.search_files":
		return p.searchFiles(params, appCtx)
	case "filesystem.directory_stats":
		return p.directoryStats(params, appCtx)
	default:
		return Failure(fmt.Sprintf("unknown tool: %s", toolID))
	}
}

func (p *Provider) getProjectRoot() (*types.Result, error) {
	root, err := p.ProjectRoot()
	if err != nil {
		return FailureFrom(err)
	}
	return Success(map[string]interface{}{"root": root})
}

func (p *Provider) readFile(params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	path, ok := params["path"].(string)
	if !ok || path == "" {
		return Failure("path parameter required")
	}
	root, err := p.rootFor(params, appCtx)
	if err != nil {
		return FailureFrom(err)
	}

	content, err := p.Read(root, path)
	if err != nil {
		return FailureFrom(err)
	}

	return Success(map[string]interface{}{
		"path":      path,
		"content":   content,
		"size":      len(content),
		"mime_type": mimetype.Detect([]byte(content)).String(),
	})
}

func (p *Provider) writeFile(params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	path, ok := params["path"].(string)
	if !ok || path == "" {
		return Failure("path parameter required")
	}
	content, ok := params["content"].(string)
	if !ok {
		return Failure("content parameter required")
	}
	root, err := p.rootFor(params, appCtx)
	if err != nil {
		return FailureFrom(err)
	}

	if err := p.Write(root, path, content); err != nil {
		return FailureFrom(err)
	}
	if p.metrics != nil {
		p.metrics.AddBytesWritten(len(content))
	}

	return Success(map[string]interface{}{"written": true, "path": path, "size": len(content)})
}

func (p *Provider) editFile(params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	path, ok := params["path"].(string)
	if !ok || path == "" {
		return Failure("path parameter required")
	}
	oldText, ok := params["old_text"].(string)
	if !ok {
		return Failure("old_text parameter required")
	}
	newText, ok := params["new_text"].(string)
	if !ok {
		return Failure("new_text parameter required")
	}
	root, err := p.rootFor(params, appCtx)
	if err != nil {
		return FailureFrom(err)
	}

	if err := p.Edit(root, path, oldText, newText); err != nil {
		return FailureFrom(err)
	}
	if p.metrics != nil {
		p.metrics.AddBytesWritten(len(newText))
	}

	return Success(map[string]interface{}{"edited": true, "path": path})
}

func (p *Provider) listDirectory(params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	path, ok := params["path"].(string)
	if !ok || path == "" {
		return Failure("path parameter required")
	}
	recursive, _ := params["recursive"].(bool)
	root, err := p.rootFor(params, appCtx)
	if err != nil {
		return FailureFrom(err)
	}

	entries, err := p.List(root, path, recursive)
	if err != nil {
		return FailureFrom(err)
	}

	return Success(map[string]interface{}{
		"path":      path,
		"recursive": recursive,
		"entries":   entries,
		"count":     len(entries),
	})
}

func (p *Provider) searchFiles(params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	// "" is a valid regex that matches every line
	pattern, ok := params["pattern"].(string)
	if !ok {
		return Failure("pattern parameter required")
	}
	path, _ := params["path"].(string)
	glob, _ := params["glob"].(string)
	root, err := p.rootFor(params, appCtx)
	if err != nil {
		return FailureFrom(err)
	}

	results, err := p.Search(root, pattern, path, glob)
	if err != nil {
		return FailureFrom(err)
	}
	if p.metrics != nil {
		p.metrics.ObserveSearchResults(len(results))
	}

	return Success(map[string]interface{}{
		"pattern":   pattern,
		"results":   results,
		"count":     len(results),
		"truncated": len(results) >= p.opts.MaxSearchResults,
	})
}

func (p *Provider) directoryStats(params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	path, ok := params["path"].(string)
	if !ok || path == "" {
		return Failure("path parameter required")
	}
	root, err := p.rootFor(params, appCtx)
	if err != nil {
		return FailureFrom(err)
	}

	stats, err := p.Stats(root, path)
	if err != nil {
		return FailureFrom(err)
	}

	return Success(map[string]interface{}{
		"path":  stats.Path,
		"files": stats.Files,
		"dirs":  stats.Dirs,
		"bytes": stats.Bytes,
	})
}

// rootFor picks the project root: explicit param, then request context,
// then the configured default.
func (p *Provider) rootFor(params map[string]interface{}, appCtx *types.Context) (string, error) {
	if root, ok := params["root"].(string); ok && root != "" {
		return root, nil
	}
	if appCtx != nil && appCtx.ProjectRoot != nil && *appCtx.ProjectRoot != "" {
		return *appCtx.ProjectRoot, nil
	}
	return p.ProjectRoot()
}

// Success helper
func Success(data map[string]interface{}) (*types.Result, error) {
	return &types.Result{Success: true, Data: data}, nil
}

// Failure helper
func Failure(message string) (*types.Result, error) {
	msg := message
	return &types.Result{Success: false, Error: &msg}, nil
}

// FailureFrom converts an operation error into a failed result carrying its kind
func FailureFrom(err error) (*types.Result, error) {
	msg := err.Error()
	return &types.Result{Success: false, Error: &msg, Kind: KindOf(err).String()}, nil
}
