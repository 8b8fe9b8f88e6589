// Package rundb persists completed simulation runs in a SQLite
// database so results can be listed and compared between invocations.
package rundb
