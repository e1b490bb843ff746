// Package sqliteexternal provides the optional CGO SQLite driver.
//
// This package is part of the main github.com/mlourenco/extrafn module and
// registers a mattn/go-sqlite3 driver whose connections carry the full
// extension function catalog.
//
// # CGO SQLite Driver
//
// To use the CGO driver (github.com/mattn/go-sqlite3):
//
//	import _ "github.com/mlourenco/extrafn/contrib/sqlite-external"
//
// Build with:
//
//	CGO_ENABLED=1 go build -tags cgo_sqlite
//
// # Default Pure Go Driver
//
// By default, extrafn registers the catalog into the pure Go
// modernc.org/sqlite driver, which requires no CGO. See
// github.com/mlourenco/extrafn/core/sqlite for details.
//
// # When to Use
//
// Use this package when:
//   - Performance is critical
//   - You need other SQLite C extensions loaded into the same connection
//   - You already have CGO in your build pipeline
//
// Use the default pure Go driver when:
//   - Portability is important
//   - Cross-compilation is required
//   - You want simpler deployment (single binary)
package sqliteexternal
