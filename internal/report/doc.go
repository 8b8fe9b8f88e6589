// Package report renders completed simulation runs in several output
// formats.
//
// Writers implement the Writer interface so formats can be swapped or
// fanned out:
//   - SimpleWriter: aligned human-readable text for the terminal
//   - JSONWriter: stable field names for tool integration
//   - MarkdownWriter: tables for documentation and sharing
//
// A MultiWriter composes several writers behind the same interface.
package report
