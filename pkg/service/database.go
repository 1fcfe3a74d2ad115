package service

import (
	"context"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

type DatabaseService struct {
	Driver string
	DSN    string
	DB     *sqlx.DB
}

func NewDatabaseService(driver, dsn string) (*DatabaseService, error) {
	if driver == "mysql" {
		var err error
		dsn, err = ReformatMysqlDSN(dsn)
		if err != nil {
			return nil, errors.Wrap(err, "invalid mysql dsn")
		}
	}

	return &DatabaseService{
		Driver: driver,
		DSN:    dsn,
	}, nil
}

func (s *DatabaseService) Connect() error {
	var err error
	s.DB, err = sqlx.Connect(s.Driver, s.DSN)
	return err
}

func (s *DatabaseService) Close() error {
	if s.DB == nil {
		return nil
	}
	return s.DB.Close()
}

// Migrate creates the journal tables when they are missing.
func (s *DatabaseService) Migrate(ctx context.Context) error {
	dialect := GetDialect(s.Driver)
	for _, stmt := range strings.Split(dialect.CreateTradeJournalSQL(), ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}

		if _, err := s.DB.ExecContext(ctx, stmt); err != nil {
			return errors.Wrapf(err, "migration failed: %s", stmt)
		}
	}

	return nil
}

func ReformatMysqlDSN(dsn string) (string, error) {
	config, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", err
	}

	config.ParseTime = true
	dsn = config.FormatDSN()
	return dsn, nil
}
