package service

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

// DatabaseDialect covers the SQL differences between the supported drivers.
type DatabaseDialect interface {
	EscapeColumnName(name string) string
	PlaceholderFormat() sq.PlaceholderFormat

	// CreateTradeJournalSQL returns the DDL of the trade_journal table.
	CreateTradeJournalSQL() string
}

func GetDialect(driverName string) DatabaseDialect {
	switch driverName {
	case "mysql":
		return &MySQLDialect{}
	case "sqlite3":
		return &SQLiteDialect{}
	default:
		return &SQLiteDialect{}
	}
}

type MySQLDialect struct{}

func (d *MySQLDialect) EscapeColumnName(name string) string {
	return fmt.Sprintf("`%s`", name)
}

func (d *MySQLDialect) PlaceholderFormat() sq.PlaceholderFormat {
	return sq.Question
}

func (d *MySQLDialect) CreateTradeJournalSQL() string {
	return "CREATE TABLE IF NOT EXISTS `trade_journal` (" +
		"`id` CHAR(26) NOT NULL PRIMARY KEY," +
		"`symbol` VARCHAR(32) NOT NULL," +
		"`side` VARCHAR(8) NOT NULL," +
		"`order_type` VARCHAR(32) NOT NULL," +
		"`strategy` VARCHAR(32) NOT NULL DEFAULT ''," +
		"`quantity` DECIMAL(24, 8) NOT NULL DEFAULT 0," +
		"`filled_quantity` DECIMAL(24, 8) NOT NULL DEFAULT 0," +
		"`entry_price` DECIMAL(24, 8) NOT NULL DEFAULT 0," +
		"`take_profit` DECIMAL(24, 8) NOT NULL DEFAULT 0," +
		"`stop_loss` DECIMAL(24, 8) NOT NULL DEFAULT 0," +
		"`opening_balance` DECIMAL(24, 8) NOT NULL DEFAULT 0," +
		"`ending_balance` DECIMAL(24, 8) NOT NULL DEFAULT 0," +
		"`profit_and_loss` DECIMAL(24, 8) NOT NULL DEFAULT 0," +
		"`realized_profit` DECIMAL(24, 8) NOT NULL DEFAULT 0," +
		"`ladder_fills` INT NOT NULL DEFAULT 0," +
		"`outcome` VARCHAR(16) NOT NULL," +
		"`started_at` DATETIME(3) NOT NULL," +
		"`ended_at` DATETIME(3) NOT NULL," +
		"INDEX `trade_journal_symbol_started_at` (`symbol`, `started_at`)" +
		")"
}

type SQLiteDialect struct{}

func (d *SQLiteDialect) EscapeColumnName(name string) string {
	return fmt.Sprintf(`"%s"`, name)
}

func (d *SQLiteDialect) PlaceholderFormat() sq.PlaceholderFormat {
	return sq.Question
}

func (d *SQLiteDialect) CreateTradeJournalSQL() string {
	return `CREATE TABLE IF NOT EXISTS "trade_journal" (` +
		`"id" TEXT NOT NULL PRIMARY KEY,` +
		`"symbol" TEXT NOT NULL,` +
		`"side" TEXT NOT NULL,` +
		`"order_type" TEXT NOT NULL,` +
		`"strategy" TEXT NOT NULL DEFAULT '',` +
		`"quantity" REAL NOT NULL DEFAULT 0,` +
		`"filled_quantity" REAL NOT NULL DEFAULT 0,` +
		`"entry_price" REAL NOT NULL DEFAULT 0,` +
		`"take_profit" REAL NOT NULL DEFAULT 0,` +
		`"stop_loss" REAL NOT NULL DEFAULT 0,` +
		`"opening_balance" REAL NOT NULL DEFAULT 0,` +
		`"ending_balance" REAL NOT NULL DEFAULT 0,` +
		`"profit_and_loss" REAL NOT NULL DEFAULT 0,` +
		`"realized_profit" REAL NOT NULL DEFAULT 0,` +
		`"ladder_fills" INTEGER NOT NULL DEFAULT 0,` +
		`"outcome" TEXT NOT NULL,` +
		`"started_at" DATETIME NOT NULL,` +
		`"ended_at" DATETIME NOT NULL` +
		`);` +
		`CREATE INDEX IF NOT EXISTS "trade_journal_symbol_started_at" ON "trade_journal" ("symbol", "started_at");`
}
