package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/notflix/internal/dbx"
	"github.com/dmitrijs2005/notflix/internal/server/repositories/history"
	"github.com/dmitrijs2005/notflix/internal/server/repositories/profiles"
	"github.com/dmitrijs2005/notflix/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/notflix/internal/server/repositories/titles"
	"github.com/dmitrijs2005/notflix/internal/server/repositories/users"
	"github.com/dmitrijs2005/notflix/internal/server/repositories/watchlist"
)

// RepositoryManager vends repositories bound to a DBTX, so services can run
// the same code against *sql.DB or inside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Profiles(db dbx.DBTX) profiles.Repository
	Titles(db dbx.DBTX) titles.Repository
	Watchlist(db dbx.DBTX) watchlist.Repository
	History(db dbx.DBTX) history.Repository
}
