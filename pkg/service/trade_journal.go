package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"github.com/ladderbot/ladderbot/pkg/types"
)

var tradeJournalColumns = []string{
	"id", "symbol", "side", "order_type", "strategy",
	"quantity", "filled_quantity", "entry_price", "take_profit", "stop_loss",
	"opening_balance", "ending_balance", "profit_and_loss", "realized_profit", "ladder_fills",
	"outcome", "started_at", "ended_at",
}

type QueryTradeRecordsOptions struct {
	Symbol   string
	Strategy string
	Outcome  types.TradeOutcome
	Since    *time.Time
	Until    *time.Time

	// Ordering is ASC or DESC on started_at, DESC by default.
	Ordering string
	Limit    uint64
}

type TradeJournalService struct {
	DB *sqlx.DB
}

func NewTradeJournalService(db *sqlx.DB) *TradeJournalService {
	return &TradeJournalService{DB: db}
}

func (s *TradeJournalService) Insert(ctx context.Context, record types.TradeRecord) error {
	placeholders := make([]string, len(tradeJournalColumns))
	for i, c := range tradeJournalColumns {
		placeholders[i] = ":" + c
	}

	sql := "INSERT INTO trade_journal (" + strings.Join(tradeJournalColumns, ", ") + ") VALUES (" + strings.Join(placeholders, ", ") + ")"
	_, err := s.DB.NamedExecContext(ctx, sql, record)
	return err
}

func (s *TradeJournalService) Query(ctx context.Context, options QueryTradeRecordsOptions) ([]types.TradeRecord, error) {
	dialect := GetDialect(s.DB.DriverName())
	sel := sq.Select(tradeJournalColumns...).
		From("trade_journal").
		PlaceholderFormat(dialect.PlaceholderFormat())

	if options.Symbol != "" {
		sel = sel.Where(sq.Eq{"symbol": options.Symbol})
	}

	if options.Strategy != "" {
		sel = sel.Where(sq.Eq{"strategy": options.Strategy})
	}

	if options.Outcome != "" {
		sel = sel.Where(sq.Eq{"outcome": string(options.Outcome)})
	}

	if options.Since != nil {
		sel = sel.Where(sq.GtOrEq{"started_at": *options.Since})
	}

	if options.Until != nil {
		sel = sel.Where(sq.Lt{"started_at": *options.Until})
	}

	var ordering string
	switch strings.ToUpper(options.Ordering) {
	case "":
		ordering = "DESC"
	case "ASC", "DESC":
		ordering = strings.ToUpper(options.Ordering)
	default:
		return nil, fmt.Errorf("invalid ordering: %s", options.Ordering)
	}

	sel = sel.OrderBy("started_at " + ordering)

	if options.Limit > 0 {
		sel = sel.Limit(options.Limit)
	}

	sql, args, err := sel.ToSql()
	if err != nil {
		return nil, err
	}

	logrus.Debug(sql)

	var records []types.TradeRecord
	if err := s.DB.SelectContext(ctx, &records, sql, args...); err != nil {
		return nil, err
	}

	return records, nil
}
