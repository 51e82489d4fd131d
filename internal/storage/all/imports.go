// Package all wires all built-in storage backends into the storage factory.
//
// This package exists purely for side effects: importing it (even as a blank
// import) causes the init functions of each concrete storage backend to run,
// which in turn register their factories and DDL bootstrappers with the
// storage package.
//
// In other words, importing this package makes the following storage kinds
// available at runtime:
//
//   - "sqlite"   (boxoffice/internal/storage/sqlite)
//   - "postgres" (boxoffice/internal/storage/postgres)
//   - "mysql"    (boxoffice/internal/storage/mysql)
//   - "mssql"    (boxoffice/internal/storage/mssql)
//
// Typical usage (in cmd/boxoffice/main.go or a similar wiring layer):
//
//	package main
//
//	import (
//	    "context"
//
//	    _ "boxoffice/internal/storage/all" // enable all built-in backends
//
//	    "boxoffice/internal/config"
//	    "boxoffice/internal/schema"
//	    "boxoffice/internal/storage"
//	)
//
//	func main() {
//	    ctx := context.Background()
//
//	    // Load the pipeline spec (config.Pipeline) from disk, flags, etc.
//	    var spec config.Pipeline
//	    // ... decode spec ...
//
//	    repo, err := storage.New(ctx, storage.Config{
//	        Kind: spec.Storage.Kind,
//	        DSN:  spec.Storage.DB.DSN,
//	    })
//	    if err != nil {
//	        // handle error
//	    }
//	    defer repo.Close()
//
//	    if spec.Storage.DB.AutoCreateTables {
//	        if err := storage.EnsureTables(ctx, spec.Storage.Kind, repo, schema.All()); err != nil {
//	            // handle DDL error
//	        }
//	    }
//
//	    // From this point on, the caller stays fully backend-agnostic. The
//	    // warehouse writes all go through storage.Repository regardless of
//	    // whether the backend is SQLite, Postgres, MySQL, or MSSQL.
//	}
//
// This pattern keeps backend-specific wiring in a single, small package and
// allows the rest of the application (pipeline, CLI) to depend only on the
// storage abstraction rather than individual backends.
//
// Note: if you want a binary that supports only a subset of backends, you can
// define alternative wiring packages that import only the required backends
// instead of this package.
package all

import (
	_ "boxoffice/internal/storage/mssql"
	_ "boxoffice/internal/storage/mysql"
	_ "boxoffice/internal/storage/postgres"
	_ "boxoffice/internal/storage/sqlite"
)
