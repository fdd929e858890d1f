package tracking

import (
	"fmt"

	"github.com/gogpu/gpucontext"
)

// Provider names.
const (
	ProviderPlatform  = "platform"
	ProviderSimulated = "simulated"
)

// providers holds registered providers. A platform binding wins over the
// simulated tracker.
var providers = gpucontext.NewRegistry[Provider](
	gpucontext.WithPriority(ProviderPlatform, ProviderSimulated),
)

// Register registers a provider factory with the given name.
// This is typically called from init() functions in provider packages.
// If a provider with the same name is already registered, it is replaced.
func Register(name string, factory func() Provider) {
	providers.Register(name, factory)
}

// Unregister removes a provider from the registry.
func Unregister(name string) {
	providers.Unregister(name)
}

// Available returns the registered provider names.
func Available() []string {
	return providers.Available()
}

// Lookup returns a new provider by name.
func Lookup(name string) (Provider, error) {
	if !providers.Has(name) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, name)
	}
	p := providers.Get(name)
	if p == nil {
		return nil, fmt.Errorf("%w: %q returned nil", ErrUnknownProvider, name)
	}
	return p, nil
}

// Best returns the highest-priority registered provider and its name, or
// nil and "" when none is registered.
func Best() (Provider, string) {
	name := providers.BestName()
	if name == "" {
		return nil, ""
	}
	return providers.Get(name), name
}
