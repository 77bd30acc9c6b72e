package dashboard

import (
	"context"
	"errors"
	"testing"

	"github.com/Domenick1991/flightdb/internal/domain"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCounter struct {
	mock.Mock
}

func (m *MockCounter) Count(ctx context.Context, table domain.Table) (int64, error) {
	args := m.Called(ctx, table)
	return args.Get(0).(int64), args.Error(1)
}

func TestService_Stats(t *testing.T) {
	counter := &MockCounter{}
	svc := NewService(counter, zerolog.Nop())

	ctx := context.Background()
	counter.On("Count", ctx, domain.TableFlight).Return(int64(12), nil)
	counter.On("Count", ctx, domain.TableBooking).Return(int64(0), errors.New("timeout"))
	counter.On("Count", ctx, domain.TableAirline).Return(int64(3), nil)
	counter.On("Count", ctx, domain.TableAirport).Return(int64(5), nil)

	stats := svc.Stats(ctx)

	require.Len(t, stats, 4)
	assert.Equal(t, domain.TableFlight, stats[0].Table)
	assert.Equal(t, int64(12), stats[0].Value)
	assert.True(t, stats[0].Ready)

	assert.Equal(t, domain.TableBooking, stats[1].Table)
	assert.False(t, stats[1].Ready)
	assert.Zero(t, stats[1].Value)

	assert.Equal(t, "Airports", stats[3].Label)
	assert.Equal(t, int64(5), stats[3].Value)
	counter.AssertExpectations(t)
}
