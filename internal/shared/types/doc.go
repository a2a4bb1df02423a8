// Package types provides shared data structures for the projectfs backend.
//
// Core Types:
//   - Service: Service provider definition
//   - Tool: Service tool definition
//   - Context: Execution context for operations
//   - Result: Standard operation result
//
// Request Types:
//   - ExecuteRequest: Service tool execution
//   - ReadRequest, WriteRequest, EditRequest: File access
//   - ListRequest, SearchRequest, StatsRequest: Tree traversal
//
// Example Usage:
//
//	root := "/home/me/project"
//	result, err := provider.Execute(ctx, "filesystem.read_file",
//	    map[string]interface{}{"path": "go.mod"},
//	    &types.Context{ProjectRoot: &root})
package types
