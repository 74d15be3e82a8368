// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - AuthAPI / MaterialAPI / ProgressAPI / QuizAPI / AdminAPI: the
//     Studia REST backend, the single source of truth for all data
//   - DocumentSource: opens fetched document bytes and renders pages
//   - ViewerPrefsStore: per-user, per-document viewer preferences
//   - QuizStateStore: locally cached quiz totals and attempt history
//   - SessionStore: the cached bearer token
//   - ConfigStore: application configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
