package client

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// FragmentStream yields the non-empty text pieces of a streamed completion in
// arrival order. It is not restartable.
type FragmentStream struct {
	reader *schema.StreamReader[*schema.Message]
}

func NewFragmentStream(reader *schema.StreamReader[*schema.Message]) *FragmentStream {
	return &FragmentStream{reader: reader}
}

// Recv returns the next fragment, or io.EOF once the vendor closed the stream.
func (s *FragmentStream) Recv() (string, error) {
	if s == nil || s.reader == nil {
		return "", io.EOF
	}
	for {
		msg, err := s.reader.Recv()
		if err != nil {
			return "", err
		}
		if msg == nil || msg.Content == "" {
			continue
		}
		return msg.Content, nil
	}
}

// Close releases the underlying connection. Safe to call more than once.
func (s *FragmentStream) Close() {
	if s == nil || s.reader == nil {
		return
	}
	s.reader.Close()
}

// Collect drains the stream and returns every fragment read before the first error.
func Collect(s *FragmentStream) ([]string, error) {
	defer s.Close()
	var out []string
	for {
		fragment, err := s.Recv()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return out, err
		}
		out = append(out, fragment)
	}
}

func streamPrompt(ctx context.Context, cm model.BaseChatModel, prompt string) (*FragmentStream, error) {
	reader, err := cm.Stream(ctx, []*schema.Message{schema.UserMessage(prompt)})
	if err != nil {
		return nil, err
	}
	if reader == nil {
		return nil, fmt.Errorf("model returned nil stream reader")
	}
	return NewFragmentStream(reader), nil
}
