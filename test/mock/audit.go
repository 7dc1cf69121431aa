// test/mock/audit.go
package mock

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/sprintdeck/api/audit"
)

// MockAuditService is a mock implementation of audit.Service
type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) Record(ctx context.Context, entry audit.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditService) QueryEntries(ctx context.Context, from, to time.Time, userID, resourceID string) ([]audit.Entry, error) {
	args := m.Called(ctx, from, to, userID, resourceID)
	return args.Get(0).([]audit.Entry), args.Error(1)
}
