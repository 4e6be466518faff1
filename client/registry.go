package client

import (
	"fmt"
	"sync"

	"github.com/dlsql/dlsql/runtime"
)

var (
	registryMu sync.RWMutex
	registry   = map[string]*runtime.Dispatcher{}
)

// Register associates name with d so that sql.Open(DriverName, name) can
// find it. name has no other meaning — it is not parsed as a DSN, since
// there is no host/port/credential to carry; callers typically use the
// same name they'd otherwise give the database.
func Register(name string, d *runtime.Dispatcher) error {
	if name == "" {
		return fmt.Errorf("client: dispatcher name must not be empty")
	}
	if d == nil {
		return fmt.Errorf("client: dispatcher must not be nil")
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := registry[name]; exists {
		return fmt.Errorf("client: a dispatcher is already registered under name %q", name)
	}
	registry[name] = d
	return nil
}

// Deregister removes name, if present. It is safe to call even if name was
// never registered.
func Deregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(registry, name)
}

func lookup(name string) (*runtime.Dispatcher, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	d, ok := registry[name]
	return d, ok
}
