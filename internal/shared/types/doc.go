// Package types provides shared data structures for the panel backend.
//
// This package defines core types used across all backend components,
// ensuring type safety and consistent data structures.
//
// Core Types:
//   - Kind: Open panel classification tag
//   - State: Panel lifecycle state enum
//   - PanelInfo: External view of a registered panel
//   - Event: Lifecycle transition for streaming consumers
//   - Stats: Registry statistics
//
// Request Types:
//   - ShowRequest, HideRequest, SendRequest: HTTP API payloads
package types
