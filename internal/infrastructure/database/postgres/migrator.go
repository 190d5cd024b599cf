package postgres

import (
	"embed"
	stderrors "errors"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5" // registers the pgx5:// scheme
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/turtacn/KeyIP-Descriptors/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/KeyIP-Descriptors/pkg/errors"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// MigrationVersion describes the schema state of a database.
type MigrationVersion struct {
	Version uint `json:"version"`
	Dirty   bool `json:"dirty"`
}

// Migrator applies the embedded run-store migrations.
type Migrator struct {
	m      *migrate.Migrate
	logger logging.Logger
}

// NewMigrator opens a migrator for dsn. The DSN must be a URL
// (postgres://...); key=value connection strings are not accepted.
func NewMigrator(dsn string, log logging.Logger) (*Migrator, error) {
	if log == nil {
		log = logging.NewNopLogger()
	}
	src, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "open embedded migrations")
	}
	url, err := migrateURL(dsn)
	if err != nil {
		return nil, err
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, url)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "create migrate instance")
	}
	return &Migrator{m: m, logger: log}, nil
}

// Up applies every pending migration. An up-to-date schema is not an error.
func (mg *Migrator) Up() error {
	if err := mg.m.Up(); err != nil && !stderrors.Is(err, migrate.ErrNoChange) {
		v, _ := mg.Version()
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "apply migrations").
			WithDetailf("current version %d, dirty %t", v.Version, v.Dirty)
	}
	v, err := mg.Version()
	if err != nil {
		return err
	}
	mg.logger.Info("run store migrations applied", logging.Int64("version", int64(v.Version)), logging.Bool("dirty", v.Dirty))
	return nil
}

// Down rolls back steps migrations.
func (mg *Migrator) Down(steps int) error {
	if steps <= 0 {
		return errors.Newf(errors.CodeInvalidParam, "steps must be greater than 0, got %d", steps)
	}
	if err := mg.m.Steps(-steps); err != nil {
		if stderrors.Is(err, migrate.ErrNoChange) {
			return errors.New(errors.CodeInvalidParam, "no migrations to roll back")
		}
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "roll back migrations").WithDetailf("steps %d", steps)
	}
	mg.logger.Info("run store migrations rolled back", logging.Int("steps", steps))
	return nil
}

// Version reports the applied schema version; 0 when nothing is applied.
func (mg *Migrator) Version() (MigrationVersion, error) {
	v, dirty, err := mg.m.Version()
	if err != nil {
		if stderrors.Is(err, migrate.ErrNilVersion) {
			return MigrationVersion{}, nil
		}
		return MigrationVersion{}, errors.Wrap(err, errors.ErrCodeDatabaseError, "read migration version")
	}
	return MigrationVersion{Version: v, Dirty: dirty}, nil
}

// Close releases the source and database handles.
func (mg *Migrator) Close() error {
	srcErr, dbErr := mg.m.Close()
	if srcErr != nil {
		return srcErr
	}
	return dbErr
}

// migrateURL rewrites a postgres URL to the scheme of the pgx5 migrate driver.
func migrateURL(dsn string) (string, error) {
	for _, scheme := range []string{"postgres://", "postgresql://"} {
		if strings.HasPrefix(dsn, scheme) {
			return "pgx5://" + strings.TrimPrefix(dsn, scheme), nil
		}
	}
	if strings.HasPrefix(dsn, "pgx5://") {
		return dsn, nil
	}
	return "", errors.New(errors.ErrCodeConfig, "migrations require a postgres:// URL dsn")
}

//Personal.AI order the ending
