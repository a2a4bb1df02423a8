package types

// ExecuteRequest represents a service execution request
type ExecuteRequest struct {
	ToolID      string                 `json:"tool_id" binding:"required"`
	Params      map[string]interface{} `json:"params"`
	ProjectRoot *string                `json:"project_root,omitempty"`
}

// ReadRequest reads a file relative to the project root
type ReadRequest struct {
	Root string `json:"root"`
	Path string `json:"path" binding:"required"`
}

// WriteRequest replaces a file's content
type WriteRequest struct {
	Root    string `json:"root"`
	Path    string `json:"path" binding:"required"`
	Content string `json:"content"`
}

// EditRequest replaces a unique occurrence of OldText
type EditRequest struct {
	Root    string `json:"root"`
	Path    string `json:"path" binding:"required"`
	OldText string `json:"old_text"`
	NewText string `json:"new_text"`
}

// ListRequest lists a directory
type ListRequest struct {
	Root      string `json:"root"`
	Path      string `json:"path" binding:"required"`
	Recursive bool   `json:"recursive"`
}

// SearchRequest searches file contents by regex
type SearchRequest struct {
	Root    string  `json:"root"`
	Pattern *string `json:"pattern" binding:"required"`
	Path    string  `json:"path,omitempty"`
	Glob    string  `json:"glob,omitempty"`
}

// StatsRequest aggregates counts under a directory
type StatsRequest struct {
	Root string `json:"root"`
	Path string `json:"path" binding:"required"`
}
