// Package file provides a TOML file-based implementation of the
// configuration store port.
//
// Configuration lives at ~/.studia/config.toml by default. Nested TOML
// tables are flattened into dot-notation keys, so [viewer] resume_page
// is read as "viewer.resume_page". An optional fsnotify watcher reloads
// the file when it changes on disk.
package file
