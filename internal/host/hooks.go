package host

import (
	"context"
	"fmt"
	"sync"
)

// Lifecycle hook names
const (
	HookImportsContext = "imports:context"
	HookImportsExtend  = "imports:extend"
	HookModulesDone    = "modules:done"
)

// HookFunc handles one hook call. The payload type depends on the hook:
// *ImportContext for imports:context, *[]models.Import for imports:extend
// and nil for modules:done.
type HookFunc func(ctx context.Context, payload interface{}) error

// Hooks is a registry of named hooks. Handlers run sequentially in
// registration order.
type Hooks struct {
	mu       sync.RWMutex
	handlers map[string][]HookFunc
}

// NewHooks creates an empty registry
func NewHooks() *Hooks {
	return &Hooks{handlers: make(map[string][]HookFunc)}
}

// Hook registers fn under name
func (h *Hooks) Hook(name string, fn HookFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.handlers[name] = append(h.handlers[name], fn)
}

// CallHook runs every handler registered under name and stops at the
// first error
func (h *Hooks) CallHook(ctx context.Context, name string, payload interface{}) error {
	h.mu.RLock()
	handlers := append([]HookFunc{}, h.handlers[name]...)
	h.mu.RUnlock()

	for _, fn := range handlers {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(ctx, payload); err != nil {
			return fmt.Errorf("hook %s: %w", name, err)
		}
	}
	return nil
}
