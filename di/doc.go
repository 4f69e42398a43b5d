// Package di provides a dependency injection container for callsight services.
//
// It supports eager, lazy, and singleton registration modes with type-safe
// resolution using Go generics. The container enables decoupled architecture
// by managing service dependencies and their lifecycle.
//
// # Registration
//
//	container.RegisterSingleton(di.Pkg.LocalAnalyzer, analyzer)
//
// # Resolution
//
//	analyzer, err := di.Resolve[*calls.LocalAnalyzer](container, di.Pkg.LocalAnalyzer)
package di
