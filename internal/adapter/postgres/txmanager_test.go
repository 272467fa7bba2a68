package postgres_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/xwstats/internal/adapter/postgres"
	"github.com/heartmarshall/xwstats/internal/adapter/postgres/testhelper"
)

// uniqueAnswer returns an answer no other test writes.
func uniqueAnswer() string {
	return "TX" + uuid.NewString()[:8]
}

func answerExists(t *testing.T, pool *pgxpool.Pool, answer string) bool {
	t.Helper()
	var exists bool
	err := pool.QueryRow(
		context.Background(),
		`SELECT EXISTS(SELECT 1 FROM answer_frequencies WHERE answer = upper($1))`,
		answer,
	).Scan(&exists)
	if err != nil {
		t.Fatalf("answerExists query: %v", err)
	}
	return exists
}

func insertAnswer(ctx context.Context, pool *pgxpool.Pool, answer string) error {
	q := postgres.QuerierFromCtx(ctx, pool)
	_, err := q.Exec(ctx, `INSERT INTO answer_frequencies (answer, count) VALUES (upper($1), 1)`, answer)
	return err
}

func TestRunInTx_Commit(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)
	answer := uniqueAnswer()

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		return insertAnswer(ctx, pool, answer)
	})
	if err != nil {
		t.Fatalf("RunInTx returned error: %v", err)
	}

	if !answerExists(t, pool, answer) {
		t.Fatal("expected answer to exist after committed transaction")
	}
}

func TestRunInTx_RollbackOnError(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)
	answer := uniqueAnswer()
	sentinel := errors.New("business logic error")

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		if err := insertAnswer(ctx, pool, answer); err != nil {
			t.Fatalf("insert inside tx failed: %v", err)
		}
		return sentinel
	})

	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got: %v", err)
	}
	if answerExists(t, pool, answer) {
		t.Fatal("expected answer NOT to exist after rolled-back transaction")
	}
}

func TestRunInTx_RollbackOnPanic(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)
	answer := uniqueAnswer()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic to be re-raised")
		}
		if r != "test panic" {
			t.Fatalf("expected panic value %q, got %v", "test panic", r)
		}
		if answerExists(t, pool, answer) {
			t.Fatal("expected answer NOT to exist after panic-rolled-back transaction")
		}
	}()

	_ = tm.RunInTx(context.Background(), func(ctx context.Context) error {
		if err := insertAnswer(ctx, pool, answer); err != nil {
			t.Fatalf("insert inside tx failed: %v", err)
		}
		panic("test panic")
	})
}

func TestRunInTx_QuerierFromCtx_UsesTx(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)
	answer := uniqueAnswer()

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		if err := insertAnswer(ctx, pool, answer); err != nil {
			return err
		}

		// Visible inside the transaction, not yet outside it.
		var exists bool
		q := postgres.QuerierFromCtx(ctx, pool)
		err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM answer_frequencies WHERE answer = upper($1))`, answer).Scan(&exists)
		if err != nil {
			return err
		}
		if !exists {
			t.Fatal("expected answer to be visible within the transaction")
		}
		if answerExists(t, pool, answer) {
			t.Fatal("expected answer to be invisible outside the open transaction")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("RunInTx returned error: %v", err)
	}

	if !answerExists(t, pool, answer) {
		t.Fatal("expected answer to exist after committed transaction")
	}
}
