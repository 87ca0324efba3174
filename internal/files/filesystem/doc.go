// Package filesystem provides the file access abstraction used by the
// normalizer, the composer and the apply command.
//
// Implementations:
//   - OSFileSystem: Production implementation; writes go through a temp file and rename
//   - MemoryFileSystem: In-memory implementation for testing
package filesystem
