// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Interfaces
//
//   - NoteSource: Scans memory note files on disk
//   - SearchIndex: Substring search over projects, tasks and activities
//   - BoardStore, ProjectStore, TaskStore: Kanban persistence
//   - ActivityStore: Activity log persistence
//   - PresenceStore: Expiring agent status entry (Redis or in-process)
//   - CronSource: External scheduled job listing
//   - ConfigStore: Application configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
