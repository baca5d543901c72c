package migrations

import "embed"

// FS holds the schema migrations, read by golang-migrate's iofs source.
//
//go:embed *.sql
var FS embed.FS

// Version is the schema version the service expects. Bump it together with
// every new migration pair.
const Version = 2
