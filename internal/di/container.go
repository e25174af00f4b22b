// Package di assembles the services of an nftized node.
package di

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
)

// Container is the dependency injection container.
// It manages service registration, lazy resolution and shutdown.
type Container struct {
	mu       sync.Mutex
	services map[string]any
	builders map[string]Builder

	// built lists services in the order they were created so they are
	// closed in reverse.
	built []string

	// building detects dependency cycles between builders.
	building map[string]bool
}

// Builder is a function that creates a service instance. It may resolve
// other services from the container.
type Builder func(c *Container) (any, error)

// New creates a new dependency injection container.
func New() *Container {
	return &Container{
		services: make(map[string]any),
		builders: make(map[string]Builder),
		building: make(map[string]bool),
	}
}

// Register registers a service instance. The container does not close
// registered instances.
func (c *Container) Register(name string, service any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.services[name] = service
}

// RegisterBuilder registers a builder function for lazy instantiation.
func (c *Container) RegisterBuilder(name string, builder Builder) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.builders[name] = builder
}

// Get retrieves a service by name, building it on first use.
func (c *Container) Get(name string) (any, error) {
	c.mu.Lock()
	if service, exists := c.services[name]; exists {
		c.mu.Unlock()
		return service, nil
	}
	builder, hasBuilder := c.builders[name]
	if !hasBuilder {
		c.mu.Unlock()
		return nil, errors.New("service not found: " + name)
	}
	if c.building[name] {
		c.mu.Unlock()
		return nil, errors.New("dependency cycle at service: " + name)
	}
	c.building[name] = true
	c.mu.Unlock()

	// The builder runs unlocked so it can resolve its own dependencies.
	service, err := builder(c)

	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.building, name)
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", name, err)
	}
	c.services[name] = service
	c.built = append(c.built, name)
	return service, nil
}

// MustGet retrieves a service or panics if not found.
func (c *Container) MustGet(name string) any {
	service, err := c.Get(name)
	if err != nil {
		panic(err)
	}
	return service
}

// Resolve retrieves a service and asserts its type. A builder that
// returned nil (an optional service that is switched off) resolves to the
// zero value.
func Resolve[T any](c *Container, name string) (T, error) {
	var zero T
	service, err := c.Get(name)
	if err != nil || service == nil {
		return zero, err
	}
	typed, ok := service.(T)
	if !ok {
		return zero, fmt.Errorf("service %s has type %T, want %T", name, service, zero)
	}
	return typed, nil
}

// Has checks if a service is registered.
func (c *Container) Has(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.services[name]; exists {
		return true
	}
	_, exists := c.builders[name]
	return exists
}

// ServiceNames returns all registered service names, sorted.
func (c *Container) ServiceNames() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	names := make(map[string]bool)
	for name := range c.services {
		names[name] = true
	}
	for name := range c.builders {
		names[name] = true
	}

	result := make([]string, 0, len(names))
	for name := range names {
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}

// Close closes every built service implementing io.Closer, newest first,
// and forgets every instance. Builders stay registered.
func (c *Container) Close() error {
	c.mu.Lock()
	built := c.built
	services := c.services
	c.built = nil
	c.services = make(map[string]any)
	c.mu.Unlock()

	var errs []error
	for i := len(built) - 1; i >= 0; i-- {
		closer, ok := services[built[i]].(io.Closer)
		if !ok {
			continue
		}
		if err := closer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", built[i], err))
		}
	}
	return errors.Join(errs...)
}

// Service names constants for type-safe access.
const (
	ServiceConfig          = "config"
	ServiceLogger          = "logger"
	ServiceNodeStore       = "nodestore"
	ServiceHistory         = "history"
	ServiceMetricsRegistry = "metrics.registry"
	ServiceMetrics         = "metrics"
	ServiceLedger          = "ledger"
)
