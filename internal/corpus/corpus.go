// Package corpus builds an answer frequency database from a directory of
// puzzle JSON files.
package corpus

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/heartmarshall/xwstats/internal/freqdb"
	"github.com/heartmarshall/xwstats/internal/puzzle"
)

// Stats summarises a build.
type Stats struct {
	Files   int // .json files found
	Parsed  int // files that contributed answers
	Empty   int // files without an answers section
	Failed  int // unreadable or invalid files
	Answers int // answers merged, counting repeats
}

// Builder walks puzzle directories.
type Builder struct {
	log *slog.Logger
}

// NewBuilder creates a Builder.
func NewBuilder(logger *slog.Logger) *Builder {
	return &Builder{log: logger.With("component", "corpus")}
}

// Build walks root recursively and merges the across and down answers of
// every .json file into a new database. A bad file is logged and counted,
// never fatal; only a failure to walk root itself or cancellation aborts.
func (b *Builder) Build(ctx context.Context, root string) (*freqdb.DB, Stats, error) {
	db := freqdb.New()
	var stats Stats

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			b.log.WarnContext(ctx, "skipping unreadable path", slog.String("path", path), slog.String("error", err.Error()))
			stats.Failed++
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".json") {
			return nil
		}

		stats.Files++
		answers, err := readAnswers(path)
		if err != nil {
			b.log.WarnContext(ctx, "skipping puzzle file", slog.String("path", path), slog.String("error", err.Error()))
			stats.Failed++
			return nil
		}
		merged := db.Merge(answers)
		if merged.Added == 0 {
			stats.Empty++
			return nil
		}
		stats.Parsed++
		stats.Answers += merged.Added
		return nil
	})
	if err != nil {
		return nil, stats, fmt.Errorf("corpus: walk %s: %w", root, err)
	}

	b.log.InfoContext(ctx, "corpus built",
		slog.String("root", root),
		slog.Int("files", stats.Files),
		slog.Int("parsed", stats.Parsed),
		slog.Int("empty", stats.Empty),
		slog.Int("failed", stats.Failed),
		slog.Int("answers", stats.Answers),
		slog.Int("distinct", db.Len()),
	)
	return db, stats, nil
}

func readAnswers(path string) ([]string, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	f, err := puzzle.Decode(fh)
	if err != nil {
		return nil, err
	}
	return f.Answers.All(), nil
}
