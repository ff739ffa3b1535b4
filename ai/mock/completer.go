package mock

import (
	"context"
	"fmt"

	"github.com/poiesic/helpdesk/ai"
)

// MockCompleter is a test double for ai.Completer.
// It records every request and allows custom behavior injection.
type MockCompleter struct {
	// CompleteFunc is called by Complete if set.
	// If nil, uses default echo behavior.
	CompleteFunc func(ctx context.Context, req ai.CompletionRequest) (string, error)

	requests  []ai.CompletionRequest
	callCount int
}

// NewMockCompleter creates a mock completer with default echo behavior.
// Note: Returns concrete type to allow test assertions via GetMockCompleter().
func NewMockCompleter() *MockCompleter {
	return &MockCompleter{}
}

// Complete records the request and returns a recognizable canned answer.
// Default behavior encodes the request shape so tests can assert on it:
// routing requests mention the department, grounded requests mention the
// context document count.
func (m *MockCompleter) Complete(ctx context.Context, req ai.CompletionRequest) (string, error) {
	m.callCount++
	m.requests = append(m.requests, req)

	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, req)
	}

	switch {
	case req.Routing != nil:
		return fmt.Sprintf("your request is being forwarded to %s", req.Routing.Department), nil
	case req.Confident:
		return fmt.Sprintf("grounded answer from %d documents", len(req.Context)), nil
	default:
		return "please contact the support service", nil
	}
}

// CallCount returns the number of times Complete was called.
func (m *MockCompleter) CallCount() int {
	return m.callCount
}

// Requests returns all recorded completion requests in call order.
func (m *MockCompleter) Requests() []ai.CompletionRequest {
	return m.requests
}

// LastRequest returns the most recent request, or nil if none were made.
func (m *MockCompleter) LastRequest() *ai.CompletionRequest {
	if len(m.requests) == 0 {
		return nil
	}
	return &m.requests[len(m.requests)-1]
}

// Reset clears recorded requests and injected behavior.
func (m *MockCompleter) Reset() {
	m.callCount = 0
	m.requests = nil
	m.CompleteFunc = nil
}
