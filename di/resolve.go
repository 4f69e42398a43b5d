package di

import "fmt"

// Resolve resolves a component with type safety, returns error on failure.
//
// Example:
//
//	local, err := di.Resolve[*calls.LocalAnalyzer](a.Container, di.Pkg.LocalAnalyzer)
//	if err != nil {
//	    return nil, err
//	}
func Resolve[T any](c Container, key string) (T, error) {
	var zero T
	instance, err := c.Resolve(key)
	if err != nil {
		return zero, fmt.Errorf("di: failed to resolve %s: %w", key, err)
	}
	result, ok := instance.(T)
	if !ok {
		return zero, fmt.Errorf("di: component %s is %T, expected %T", key, instance, zero)
	}
	return result, nil
}

// TryResolve resolves a component, returns zero value and false if not found.
// Use this when a dependency is optional.
//
// Example:
//
//	if metrics, ok := di.TryResolve[*observability.Metrics](c, di.Pkg.Metrics); ok {
//	    metrics.RecordRequestStart(...)
//	}
func TryResolve[T any](c Container, key string) (T, bool) {
	var zero T
	instance, err := c.Resolve(key)
	if err != nil {
		return zero, false
	}
	result, ok := instance.(T)
	if !ok {
		return zero, false
	}
	return result, true
}
