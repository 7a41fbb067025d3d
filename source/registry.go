package source

import "fmt"

// Factory builds an Adapter (csv, xlsx, …).
type Factory func() Adapter

var registry = map[string]Factory{}

// Register is called from each driver's init().
func Register(name string, f Factory) {
	registry[name] = f
}

// NewAdapter returns a driver by name.
func NewAdapter(name string) (Adapter, error) {
	if f, ok := registry[name]; ok {
		return f(), nil
	}
	return nil, fmt.Errorf("source: unsupported kind %q", name)
}
