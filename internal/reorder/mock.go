package reorder

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockClient is a mock implementation of Client for testing.
//
// Example usage:
//
//	client := new(MockClient)
//	client.On("List", mock.Anything).Return([]Item{{ID: "a", Category: "drama", Rank: 1}}, nil)
//	client.On("Update", mock.Anything, mock.Anything).Return(nil)
type MockClient struct {
	mock.Mock
}

var _ Client = (*MockClient)(nil)

// List returns the mocked board.
func (m *MockClient) List(ctx context.Context) ([]Item, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]Item)
	return items, args.Error(1)
}

// Update returns the mocked outcome for item.
func (m *MockClient) Update(ctx context.Context, item Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}
