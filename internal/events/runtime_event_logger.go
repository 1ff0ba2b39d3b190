package events

import (
	"context"
	"fmt"

	"github.com/wailsapp/wails/v2/pkg/runtime"
)

// logRuntimeEvent records terminal events without their text, which may hold
// private clipboard content.
func logRuntimeEvent(ctx context.Context, name string, event GenerationEvent) {
	msg := fmt.Sprintf("%s request=%s type=%s chars=%d", name, event.RequestID, event.Type, len([]rune(event.Text)))
	switch event.Type {
	case EventCancelled:
		runtime.LogWarning(ctx, msg)
	default:
		runtime.LogInfo(ctx, msg)
	}
}
