package tui

import "errors"

// ErrMissingAuthService is returned when the auth service is not provided.
var ErrMissingAuthService = errors.New("tui: auth service is required")

// ErrMissingMaterialService is returned when the material service is not provided.
var ErrMissingMaterialService = errors.New("tui: material service is required")

// ErrMissingViewer is returned when the document viewer is not provided.
var ErrMissingViewer = errors.New("tui: document viewer is required")

// ErrMissingProgressService is returned when the progress service is not provided.
var ErrMissingProgressService = errors.New("tui: progress service is required")

// ErrMissingQuizService is returned when the quiz service is not provided.
var ErrMissingQuizService = errors.New("tui: quiz service is required")
