// Package textutil provides text processing utilities for track titles,
// duration display, and filename sanitization.
//
// The primary use cases are:
//   - Deriving a readable track title from a bare filename when tags are missing
//   - Formatting track and playlist durations for tables and prompts
//   - Sanitizing titles into safe staging filenames
package textutil
