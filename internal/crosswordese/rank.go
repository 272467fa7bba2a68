package crosswordese

import (
	"context"
	"sort"

	"github.com/heartmarshall/xwstats/internal/domain"
	"github.com/heartmarshall/xwstats/internal/freqdb"
	"github.com/heartmarshall/xwstats/internal/rarity"
)

// Ranked is one answer of a whole-database ranking.
type Ranked struct {
	Rank         int     `json:"rank"         yaml:"rank"`
	Answer       string  `json:"answer"       yaml:"answer"`
	Count        int64   `json:"count"        yaml:"count"`
	Rarity       float64 `json:"rarity"       yaml:"rarity"`
	Crosswordese float64 `json:"crosswordese" yaml:"crosswordese"`
}

// RankDatabase scores every answer of db in ratio form and returns them most
// crosswordese first (ties alphabetical), with 1-based ranks. Answers whose
// rarity cannot be computed are skipped and reported as word errors.
func RankDatabase(ctx context.Context, db *freqdb.DB, rarityFn rarity.Func, params Params) ([]Ranked, []*domain.WordError, error) {
	score, err := New(ModeRatio, params)
	if err != nil {
		return nil, nil, err
	}
	stats, _ := db.Stats()

	var (
		out    []Ranked
		failed []*domain.WordError
	)
	for _, e := range db.Entries() {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		r, err := rarityFn(ctx, e.Answer)
		if err != nil {
			failed = append(failed, &domain.WordError{Word: e.Answer, Err: err})
			continue
		}
		out = append(out, Ranked{
			Answer:       e.Answer,
			Count:        e.Count,
			Rarity:       r,
			Crosswordese: score(Input{Word: e.Answer, Rarity: r, Count: e.Count, Total: stats.Total}),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Crosswordese != out[j].Crosswordese {
			return out[i].Crosswordese > out[j].Crosswordese
		}
		return out[i].Answer < out[j].Answer
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out, failed, nil
}
