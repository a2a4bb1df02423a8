package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/GriffinCanCode/projectfs/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/projectfs/internal/shared/types"
)

const categoryOther types.Category = "other"

type mockProvider struct {
	mock.Mock
	id       string
	category types.Category
}

func newMockProvider(id string, category types.Category) *mockProvider {
	return &mockProvider{id: id, category: category}
}

func (m *mockProvider) Definition() types.Service {
	return types.Service{
		ID:           m.id,
		Name:         "Mock " + m.id,
		Description:  "A mock service for testing",
		Category:     m.category,
		Capabilities: []string{"read", "write"},
		Tools: []types.Tool{
			{
				ID:          m.id + ".test",
				Name:        "Test Tool",
				Description: "A test tool",
				Returns:     "string",
			},
		},
	}
}

func (m *mockProvider) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	args := m.Called(ctx, toolID, params, appCtx)
	return args.Get(0).(*types.Result), args.Error(1)
}

func TestRegister(t *testing.T) {
	r := NewRegistry()
	p := newMockProvider("test", types.CategoryFilesystem)

	require.NoError(t, r.Register(p))

	got, ok := r.Get("test")
	assert.True(t, ok)
	assert.Same(t, p, got)
}

func TestRegisterRejectsInvalid(t *testing.T) {
	r := NewRegistry()

	assert.Error(t, r.Register(newMockProvider("", categoryOther)))
	assert.Error(t, r.Register(newMockProvider("a.b", categoryOther)))

	require.NoError(t, r.Register(newMockProvider("dup", categoryOther)))
	assert.Error(t, r.Register(newMockProvider("dup", categoryOther)))
}

func TestList(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(newMockProvider("zeta", types.CategoryFilesystem)))
	require.NoError(t, r.Register(newMockProvider("alpha", types.CategoryFilesystem)))
	require.NoError(t, r.Register(newMockProvider("sys", categoryOther)))

	services := r.List(nil)
	require.Len(t, services, 3)
	assert.Equal(t, "alpha", services[0].ID)
	assert.Equal(t, "sys", services[1].ID)
	assert.Equal(t, "zeta", services[2].ID)

	cat := types.CategoryFilesystem
	assert.Len(t, r.List(&cat), 2)
}

func TestListEmpty(t *testing.T) {
	services := NewRegistry().List(nil)
	assert.NotNil(t, services)
	assert.Empty(t, services)
}

func TestTool(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(newMockProvider("test", categoryOther)))

	tool, ok := r.Tool("test.test")
	assert.True(t, ok)
	assert.Equal(t, "Test Tool", tool.Name)

	_, ok = r.Tool("test.missing")
	assert.False(t, ok)
	_, ok = r.Tool("nodot")
	assert.False(t, ok)
}

func TestDiscover(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(newMockProvider("storage", categoryOther)))

	results := r.Discover("storage read write", 5)
	require.NotEmpty(t, results)
	assert.Equal(t, "storage", results[0].ID)

	assert.Empty(t, r.Discover("zzz", 5))
}

func TestExecute(t *testing.T) {
	r := NewRegistry()
	p := newMockProvider("test", categoryOther)
	require.NoError(t, r.Register(p))

	ctx := context.Background()
	root := "/project"
	appCtx := &types.Context{ProjectRoot: &root}
	params := map[string]interface{}{"path": "a.txt"}
	expected := &types.Result{Success: true, Data: map[string]interface{}{"result": "success"}}

	p.On("Execute", ctx, "test.test", params, appCtx).Return(expected, nil).Once()

	result, err := r.Execute(ctx, "test.test", params, appCtx)
	require.NoError(t, err)
	assert.Equal(t, expected, result)
	p.AssertExpectations(t)
}

func TestExecuteNilParams(t *testing.T) {
	r := NewRegistry()
	p := newMockProvider("test", categoryOther)
	require.NoError(t, r.Register(p))

	p.On("Execute", mock.Anything, "test.test", map[string]interface{}{}, (*types.Context)(nil)).
		Return(&types.Result{Success: true}, nil).Once()

	result, err := r.Execute(context.Background(), "test.test", nil, nil)
	require.NoError(t, err)
	assert.True(t, result.Success)
	p.AssertExpectations(t)
}

func TestExecuteErrors(t *testing.T) {
	r := NewRegistry()

	result, err := r.Execute(context.Background(), "nodot", nil, nil)
	assert.Error(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "invalid tool ID format", *result.Error)

	result, err = r.Execute(context.Background(), "missing.tool", nil, nil)
	assert.Error(t, err)
	assert.False(t, result.Success)
	assert.Contains(t, *result.Error, "service not found")
}

func TestStats(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(newMockProvider("test1", types.CategoryFilesystem)))
	require.NoError(t, r.Register(newMockProvider("test2", categoryOther)))

	stats := r.Stats()
	assert.Equal(t, 2, stats["total_services"])
	assert.Equal(t, 2, stats["total_tools"])
	assert.Equal(t, map[string]int{"filesystem": 1, "system": 1}, stats["categories"])
}

func TestExecuteWithTracer(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	tracer := tracing.New("test", zap.New(core))

	r := NewRegistry().WithTracer(tracer)
	p := newMockProvider("test", categoryOther)
	require.NoError(t, r.Register(p))

	msg := "nope"
	p.On("Execute", mock.Anything, "test.test", mock.Anything, (*types.Context)(nil)).
		Return(&types.Result{Success: false, Error: &msg, Kind: "edit_not_found"}, nil).Once()

	parent, ctx := tracer.StartSpan(context.Background(), "request")
	_, err := r.Execute(ctx, "test.test", nil, nil)
	require.NoError(t, err)
	tracer.Close()

	// provider saw a context carrying the child span
	call := p.Calls[0]
	childCtx := call.Arguments.Get(0).(context.Context)
	assert.Equal(t, parent.TraceID, tracing.TraceIDFrom(childCtx))
	assert.NotEqual(t, parent.SpanID, tracing.SpanIDFrom(childCtx))

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "test.test", fields["operation"])
	assert.Equal(t, "edit_not_found", fields["kind"])
	assert.Equal(t, parent.SpanID.String(), fields["parent_id"])
}
