// Package answerfreq persists the answer frequency database in PostgreSQL.
package answerfreq

import (
	"context"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/xwstats/internal/adapter/postgres"
	"github.com/heartmarshall/xwstats/internal/freqdb"
)

const (
	table     = "answer_frequencies"
	colAnswer = "answer"
	colCount  = "count"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const truncateSQL = "TRUNCATE " + table

// upsertSQL keeps the larger of the stored and the written count.
var upsertSQL = mustSQL(psql.
	Insert(table).
	Columns(colAnswer, colCount).
	Values("", 0).
	Suffix("ON CONFLICT (" + colAnswer + ") DO UPDATE SET " +
		colCount + " = GREATEST(" + table + "." + colCount + ", EXCLUDED." + colCount + "), " +
		"updated_at = now()"))

// Store is a freqdb.Store backed by PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
	txm  *postgres.TxManager
	log  *slog.Logger
}

// New creates a Store.
func New(pool *pgxpool.Pool, txm *postgres.TxManager, logger *slog.Logger) *Store {
	return &Store{pool: pool, txm: txm, log: logger.With("store", "postgres")}
}

// Load reads every row. An empty table yields an empty database.
func (s *Store) Load(ctx context.Context) (*freqdb.DB, error) {
	query, args, err := psql.
		Select(colAnswer, colCount).
		From(table).
		OrderBy(colCount+" DESC", colAnswer+" ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("answerfreq: build load query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, s.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "answerfreq: load")
	}
	entries, err := pgx.CollectRows(rows, pgx.RowToStructByPos[freqdb.Entry])
	if err != nil {
		return nil, postgres.MapError(err, "answerfreq: load")
	}

	counts := make(map[string]int64, len(entries))
	for _, e := range entries {
		counts[e.Answer] = e.Count
	}

	s.log.DebugContext(ctx, "frequency database loaded", slog.Int("answers", len(counts)))
	return freqdb.FromCounts(counts), nil
}

// Save upserts every answer of db in one transaction.
func (s *Store) Save(ctx context.Context, db *freqdb.DB) error {
	entries := db.Entries()
	if len(entries) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, e := range entries {
		batch.Queue(upsertSQL, e.Answer, e.Count)
	}

	var written int
	err := s.txm.RunInTx(ctx, func(ctx context.Context) error {
		n, err := s.sendBatchExec(ctx, batch)
		written = n
		return err
	})
	if err != nil {
		return postgres.MapError(err, "answerfreq: save")
	}

	s.log.InfoContext(ctx, "frequency database saved",
		slog.Int("answers", len(entries)),
		slog.Int("rows_written", written),
	)
	return nil
}

// Replace empties the table and writes db in one transaction, so a rebuild
// from a smaller corpus leaves no stale answers or counts behind.
func (s *Store) Replace(ctx context.Context, db *freqdb.DB) error {
	entries := db.Entries()

	batch := &pgx.Batch{}
	for _, e := range entries {
		batch.Queue(upsertSQL, e.Answer, e.Count)
	}

	err := s.txm.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := postgres.QuerierFromCtx(ctx, s.pool).Exec(ctx, truncateSQL); err != nil {
			return fmt.Errorf("truncate: %w", err)
		}
		if batch.Len() == 0 {
			return nil
		}
		_, err := s.sendBatchExec(ctx, batch)
		return err
	})
	if err != nil {
		return postgres.MapError(err, "answerfreq: replace")
	}

	s.log.InfoContext(ctx, "frequency database replaced", slog.Int("answers", len(entries)))
	return nil
}

func (s *Store) sendBatchExec(ctx context.Context, batch *pgx.Batch) (int, error) {
	results := postgres.QuerierFromCtx(ctx, s.pool).SendBatch(ctx, batch)
	defer results.Close()

	var affected int
	for range batch.Len() {
		tag, err := results.Exec()
		if err != nil {
			return affected, fmt.Errorf("batch exec: %w", err)
		}
		affected += int(tag.RowsAffected())
	}
	return affected, nil
}

func mustSQL(b sq.InsertBuilder) string {
	query, _, err := b.ToSql()
	if err != nil {
		panic(fmt.Sprintf("answerfreq: build upsert: %v", err))
	}
	return query
}
