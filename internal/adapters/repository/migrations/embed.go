package migrations

import "embed"

// FS contains the Postgres schema migrations, applied in file name order.
//
//go:embed *.sql
var FS embed.FS
