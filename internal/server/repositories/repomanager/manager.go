package repomanager

import (
	"context"
	"database/sql"

	"github.com/localgem/localgem/internal/dbx"
	"github.com/localgem/localgem/internal/server/repositories/places"
	"github.com/localgem/localgem/internal/server/repositories/reviews"
	"github.com/localgem/localgem/internal/server/repositories/tags"
	"github.com/localgem/localgem/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX so the same
// repository code runs against *sql.DB or an open transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Places(db dbx.DBTX) places.Repository
	Reviews(db dbx.DBTX) reviews.Repository
	Tags(db dbx.DBTX) tags.Repository
}
