// Package repomanager provides a concrete RepositoryManager for PostgreSQL,
// wiring together repository constructors and database migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/notflix/internal/dbx"
	"github.com/dmitrijs2005/notflix/internal/server/migrations"
	"github.com/dmitrijs2005/notflix/internal/server/repositories/history"
	"github.com/dmitrijs2005/notflix/internal/server/repositories/profiles"
	"github.com/dmitrijs2005/notflix/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/notflix/internal/server/repositories/titles"
	"github.com/dmitrijs2005/notflix/internal/server/repositories/users"
	"github.com/dmitrijs2005/notflix/internal/server/repositories/watchlist"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

type PostgresRepositoryManager struct{}

func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) RefreshTokens(db dbx.DBTX) refreshtokens.Repository {
	return refreshtokens.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Profiles(db dbx.DBTX) profiles.Repository {
	return profiles.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Titles(db dbx.DBTX) titles.Repository {
	return titles.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Watchlist(db dbx.DBTX) watchlist.Repository {
	return watchlist.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) History(db dbx.DBTX) history.Repository {
	return history.NewPostgresRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded migrations to db.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, ".")
}

func NewPostgresRepositoryManager() RepositoryManager {
	return &PostgresRepositoryManager{}
}
