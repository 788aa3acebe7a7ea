package database

import (
	"context"
	"fmt"

	"gametrack/pkg/database/models"

	"gorm.io/gorm"
)

const migrationsLockKey = "gametrack_migrations_lock"

// RunMigrations migrates the schema while holding a postgres advisory lock.
// The api and the scheduler start together, the lock keeps them from migrating at the same time.
func RunMigrations(ctx context.Context, db *gorm.DB) error {
	sqlDb, err := db.DB()
	if err != nil {
		return fmt.Errorf("couldn't get the sql connection: %w", err)
	}

	// The advisory lock belongs to a session, so lock and unlock on the same connection.
	conn, err := sqlDb.Conn(ctx)
	if err != nil {
		return fmt.Errorf("couldn't reserve a connection for the migrations: %w", err)
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, "SELECT pg_advisory_lock(hashtext($1))", migrationsLockKey); err != nil {
		return fmt.Errorf("couldn't acquire the migrations lock: %w", err)
	}
	defer conn.ExecContext(context.Background(), "SELECT pg_advisory_unlock(hashtext($1))", migrationsLockKey)

	err = db.WithContext(ctx).AutoMigrate(
		&models.Player{},
		&models.Match{},
		&models.ParticipationRecord{},
	)
	if err != nil {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}
