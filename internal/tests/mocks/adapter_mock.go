package mocks

import (
	"context"

	"autocorrect/internal/llm/client"

	"github.com/cloudwego/eino/schema"
)

type AdapterMock struct {
	StreamFunc func(ctx context.Context, req client.Request) (*client.FragmentStream, error)
}

func (m *AdapterMock) Stream(ctx context.Context, req client.Request) (*client.FragmentStream, error) {
	if m.StreamFunc != nil {
		return m.StreamFunc(ctx, req)
	}
	return Fragments(), nil
}

// Fragments builds a finished stream yielding the given pieces.
func Fragments(pieces ...string) *client.FragmentStream {
	msgs := make([]*schema.Message, 0, len(pieces))
	for _, piece := range pieces {
		msgs = append(msgs, schema.AssistantMessage(piece, nil))
	}
	return client.NewFragmentStream(schema.StreamReaderFromArray(msgs))
}

// FailingFragments yields the given pieces and then err.
func FailingFragments(err error, pieces ...string) *client.FragmentStream {
	reader, writer := schema.Pipe[*schema.Message](len(pieces) + 1)
	for _, piece := range pieces {
		writer.Send(schema.AssistantMessage(piece, nil), nil)
	}
	writer.Send(nil, err)
	writer.Close()
	return client.NewFragmentStream(reader)
}
