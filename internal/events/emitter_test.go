package events

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetCustomEmitterFillsRequestID(t *testing.T) {
	t.Cleanup(func() { SetCustomEmitter(nil) })

	var got []GenerationEvent
	SetCustomEmitter(func(ctx context.Context, name string, evt GenerationEvent) {
		assert.Equal(t, GenerationChunk, name)
		got = append(got, evt)
	})

	ctx := WithRequest(context.Background(), "req-42")
	Emit(ctx, GenerationChunk, NewChunk("", "Bon"))
	Emit(ctx, GenerationChunk, NewChunk("explicit", "Bonjour"))

	require.Len(t, got, 2)
	assert.Equal(t, "req-42", got[0].RequestID)
	assert.Equal(t, "explicit", got[1].RequestID)
	assert.Equal(t, EventChunk, got[0].Type)
	assert.NotEmpty(t, got[0].ID)
	assert.NotEqual(t, got[0].ID, got[1].ID)
}

func TestWithRequestIgnoresBlankIDs(t *testing.T) {
	ctx := WithRequest(context.Background(), "  ")
	assert.Empty(t, RequestFromContext(ctx))
}

func TestNilEmitterIsNoop(t *testing.T) {
	SetCustomEmitter(nil)
	Emit(context.Background(), GenerationDone, NewDone("r", "fini"))
}
