package events

import (
	"context"

	"github.com/wailsapp/wails/v2/pkg/runtime"
)

var Emit = func(ctx context.Context, name string, evt GenerationEvent) {}

func EnableRuntimeEmitter() {
	Emit = func(ctx context.Context, name string, evt GenerationEvent) {
		if evt.RequestID == "" {
			evt.RequestID = RequestFromContext(ctx)
		}

		runtime.EventsEmit(ctx, name, evt)

		if evt.Type != EventChunk {
			logRuntimeEvent(ctx, name, evt)
		}
	}
}

func SetCustomEmitter(f func(ctx context.Context, name string, evt GenerationEvent)) {
	if f == nil {
		Emit = func(context.Context, string, GenerationEvent) {}
		return
	}
	Emit = func(ctx context.Context, name string, evt GenerationEvent) {
		if evt.RequestID == "" {
			evt.RequestID = RequestFromContext(ctx)
		}
		f(ctx, name, evt)
	}
}
