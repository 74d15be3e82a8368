// Package sqlite provides a unified SQLite-based implementation of the
// local state store ports.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation
// that requires no CGO, enabling easy cross-compilation. It implements
// multiple store interfaces through a single database connection:
//
//   - ViewerPrefsStore: per-user, per-material zoom and resume page
//   - QuizStateStore: local quiz totals and bounded answer history
//   - SessionStore: cached bearer token between invocations
//
// # Schema
//
// The database schema is managed through versioned migrations stored in
// the migrations/ directory. Each migration is a pair of .up.sql and
// .down.sql files.
//
// # Data Location
//
// By default, the database is stored at ~/.studia/data/state.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking
// provided by SQLite in WAL mode.
package sqlite
