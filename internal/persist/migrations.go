package persist

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrations embed.FS

// schemaFS returns the level_results migrations rooted at their directory.
func schemaFS() (fs.FS, error) {
	return fs.Sub(migrations, "migrations")
}

// migrate applies any pending level_results migrations and logs each one
// along with the resulting schema version.
func (db *DB) migrate(ctx context.Context) error {
	schema, err := schemaFS()
	if err != nil {
		return fmt.Errorf("results schema: %w", err)
	}

	sqlDB := stdlib.OpenDBFromPool(db.Pool)
	defer sqlDB.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, sqlDB, schema)
	if err != nil {
		return fmt.Errorf("results schema provider: %w", err)
	}
	applied, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("migrate results schema: %w", err)
	}
	for _, r := range applied {
		db.log.Info("results migration applied",
			zap.Int64("version", r.Source.Version),
			zap.String("file", r.Source.Path),
			zap.Duration("took", r.Duration))
	}

	version, err := provider.GetDBVersion(ctx)
	if err != nil {
		return fmt.Errorf("results schema version: %w", err)
	}
	db.log.Debug("results schema ready",
		zap.Int64("version", version),
		zap.Int("applied", len(applied)))
	return nil
}
