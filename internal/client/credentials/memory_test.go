package credentials

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(Pair{})

	p, err := s.Get(ctx)
	require.NoError(t, err)
	require.True(t, p.Empty())

	require.NoError(t, s.Set(ctx, Pair{Access: "A", Refresh: "R"}))
	p, _ = s.Get(ctx)
	require.Equal(t, Pair{Access: "A", Refresh: "R"}, p)

	require.NoError(t, s.Clear(ctx))
	p, _ = s.Get(ctx)
	require.True(t, p.Empty())
}
