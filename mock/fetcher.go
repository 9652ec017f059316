package mock

import (
	"context"
	"testing"

	"github.com/anoideaopen/substitute/core"
	"github.com/anoideaopen/substitute/core/future"
	"github.com/stretchr/testify/require"
)

// Fetcher is a sample interface with a synchronous and an asynchronous member.
type Fetcher interface {
	Fetch(ctx context.Context, key string) ([]byte, error)
	FetchAsync(ctx context.Context, key string) *future.Future[[]byte]
}

var _ Fetcher = (*MockFetcher)(nil)

// MockFetcher is a substitute for Fetcher.
type MockFetcher struct {
	*core.Substitute
}

// NewMockFetcher returns a Fetcher substitute.
func NewMockFetcher(t testing.TB, opts ...core.Option) *MockFetcher {
	s, err := core.New[Fetcher](opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Shutdown(context.Background()) })

	return &MockFetcher{Substitute: s}
}

func (m *MockFetcher) Fetch(ctx context.Context, key string) ([]byte, error) {
	r := m.Invoke("Fetch", ctx, key)
	return core.Out[[]byte](r, 0), r.Err()
}

func (m *MockFetcher) FetchAsync(ctx context.Context, key string) *future.Future[[]byte] {
	return core.Out[*future.Future[[]byte]](m.Invoke("FetchAsync", ctx, key), 0)
}
