// Package domain defines the core business entities for Studia.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - User: An authenticated platform account
//   - Material: A learning material (paged document, video, or text)
//   - Progress: The server-owned reading progress for a material
//   - ViewerSession: Ephemeral state of the document viewer
//   - Question / AnswerResult: The quiz exchange
//   - QuizSchedule: An admin-managed daily question schedule
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
