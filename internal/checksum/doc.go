// Package checksum fingerprints SQL text.
//
// Every fingerprint carries two SHA-256 digests:
//
//   - Raw: hash of the exact bytes (detects any change)
//   - Normalized: hash after lowercasing, dropping comments and collapsing
//     whitespace (detects changes that matter to the database)
//
// The normalized digest is what the clean command compares before and after
// collapsing blank lines: formatting may change, SQL may not.
//
// Comments are recognized only outside string literals. Single-quoted
// strings, including doubled-quote escapes, and dollar-quoted bodies
// ($$...$$, $fn$...$fn$) are kept verbatim, so "--" inside a function
// body or a literal is preserved.
package checksum
