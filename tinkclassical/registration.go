package tinkclassical

import (
	"fmt"
	"sync"

	"github.com/google/tink/go/core/registry"
)

var (
	registerOnce sync.Once
	registerErr  error
)

// Register adds a KeyManager to Tink's global registry. It is safe to call
// more than once, and a manager registered elsewhere for TypeURL is kept.
func Register() error {
	registerOnce.Do(func() {
		if _, err := registry.GetKeyManager(TypeURL); err == nil {
			return
		}
		if err := registry.RegisterKeyManager(NewKeyManager()); err != nil {
			registerErr = fmt.Errorf("failed to register key manager: %w", err)
		}
	})
	return registerErr
}
