package capture

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockPageMessenger struct {
	mock.Mock
}

func (m *MockPageMessenger) QuerySelection(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockPageMessenger) QueryRelevantImage(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockPageMessenger) Inject(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
