// Package services provides shared plumbing for the external tool clients:
// a common command executor with line-streamed output, context annotations
// for burn sessions and pipeline stages, and the error taxonomy the burn
// orchestrator uses to classify failures.
package services
