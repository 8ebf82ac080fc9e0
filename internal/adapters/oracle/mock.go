package oracle

import (
	"context"
	"sync"
)

// MockClassifier is a canned-answer Classifier for tests and for
// running the service without an API key.
type MockClassifier struct {
	mu     sync.Mutex
	answer string
	err    error
	calls  int
}

// NewMockClassifier returns a classifier that always answers text.
func NewMockClassifier(answer string) *MockClassifier {
	return &MockClassifier{answer: answer}
}

// SetResponse changes the canned answer and error.
func (m *MockClassifier) SetResponse(answer string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.answer = answer
	m.err = err
}

// Calls returns how many times Classify was invoked.
func (m *MockClassifier) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Classify returns the canned answer, honoring ctx.
func (m *MockClassifier) Classify(ctx context.Context, _ []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	return m.answer, nil
}
