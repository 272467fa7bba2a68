package freqdb

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

var csvHeader = []string{"answer", "count"}

// CSVStore persists a DB as an "answer,count" CSV file.
type CSVStore struct {
	path string
	log  *slog.Logger
}

// NewCSVStore creates a CSVStore for path.
func NewCSVStore(path string, logger *slog.Logger) *CSVStore {
	return &CSVStore{
		path: path,
		log:  logger.With("store", "csv"),
	}
}

// Path returns the file the store reads and writes.
func (s *CSVStore) Path() string { return s.path }

// Load implements Store. A missing file yields an empty DB and a logged notice.
func (s *CSVStore) Load(ctx context.Context) (*DB, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.log.InfoContext(ctx, "no frequency database found, novelty will be 1.0 for all answers",
			slog.String("path", s.path))
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("open frequency database: %w", err)
	}
	defer f.Close()

	db, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("read frequency database %s: %w", s.path, err)
	}

	s.log.DebugContext(ctx, "frequency database loaded",
		slog.String("path", s.path),
		slog.Int("answers", db.Len()),
	)
	return db, nil
}

// Save implements Store. The file is replaced atomically.
func (s *CSVStore) Save(ctx context.Context, db *DB) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if err := WriteCSV(tmp, db); err != nil {
		tmp.Close()
		return fmt.Errorf("write frequency database: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace %s: %w", s.path, err)
	}

	s.log.InfoContext(ctx, "frequency database saved",
		slog.String("path", s.path),
		slog.Int("answers", db.Len()),
	)
	return nil
}

// Replace implements Store. Save already rewrites the whole file.
func (s *CSVStore) Replace(ctx context.Context, db *DB) error {
	return s.Save(ctx, db)
}

// ReadCSV parses an "answer,count" CSV with a header row. Duplicate answers
// are summed; a malformed row fails the whole read.
func ReadCSV(r io.Reader) (*DB, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	answerCol, countCol, err := headerColumns(header)
	if err != nil {
		return nil, err
	}

	db := New()
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		line, _ := reader.FieldPos(0)

		if len(record) <= answerCol || len(record) <= countCol {
			return nil, fmt.Errorf("line %d: expected %d columns, got %d", line, len(csvHeader), len(record))
		}
		answer := strings.TrimSpace(record[answerCol])
		if answer == "" {
			continue
		}
		count, err := strconv.ParseInt(strings.TrimSpace(record[countCol]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: count %q: %w", line, record[countCol], err)
		}
		if count < 0 {
			return nil, fmt.Errorf("line %d: count must be >= 0 (got %d)", line, count)
		}
		db.add(answer, count)
	}

	return db, nil
}

func headerColumns(header []string) (answerCol, countCol int, err error) {
	answerCol, countCol = -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))) {
		case "answer":
			answerCol = i
		case "count":
			countCol = i
		}
	}
	if answerCol < 0 || countCol < 0 {
		return 0, 0, fmt.Errorf("CSV must contain 'answer' and 'count' columns (got %v)", header)
	}
	return answerCol, countCol, nil
}

// WriteCSV writes db as CSV in descending-count order (ties alphabetical).
func WriteCSV(w io.Writer, db *DB) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return err
	}
	for _, e := range db.Entries() {
		if err := writer.Write([]string{e.Answer, strconv.FormatInt(e.Count, 10)}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
