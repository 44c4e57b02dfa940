package telemetry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/crater/internal/adapters/telemetry"
	"go.trai.ch/crater/internal/core/ports"
)

func TestNoop_Record(t *testing.T) {
	tel := telemetry.NewNoop()
	ctx := context.Background()

	got, v := tel.Record(ctx, "fetch _deps/zlib")
	assert.Equal(t, ctx, got)

	_, ok := ports.VertexFromContext(got)
	assert.False(t, ok)

	n, err := v.Stdout().Write([]byte("discarded"))
	require.NoError(t, err)
	assert.Equal(t, 9, n)
	v.Cached()
	v.Complete(nil)

	require.NoError(t, tel.Close())
}
