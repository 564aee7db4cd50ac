// Package main is the entry point for the PanelOS backend server.
//
// The server tracks every live panel instance, drives show/hide/destroy
// lifecycles, and routes payload data to panels over a keyed channel.
// Rendering stays with the client; the backend only decides which logical
// panel is active and which receives which data, in what order.
//
// The server provides:
//   - REST API for panel lifecycle and data delivery
//   - WebSocket streaming of lifecycle events
//   - YAML-configured panel template factory
//   - Prometheus metrics, rate limiting, CORS
//
// Configuration:
//   - Environment variables (12-factor)
//   - CLI flags (override env vars)
//   - Defaults for development
//
// Usage:
//
//	./server -port 8400 -templates ./templates.yaml
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
