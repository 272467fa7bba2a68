package report

import (
	"math"

	"github.com/heartmarshall/xwstats/internal/aggregate"
	"github.com/heartmarshall/xwstats/internal/analysis"
	"github.com/heartmarshall/xwstats/internal/domain"
)

// Document is the serialisable form of one analysis. Undefined map cells
// are nil and encode as null.
type Document struct {
	RunID      string              `json:"run_id"           yaml:"run_id"`
	Algorithms analysis.Algorithms `json:"algorithms"       yaml:"algorithms"`
	Grid       []string            `json:"grid"             yaml:"grid"`
	Words      []Word              `json:"words"            yaml:"words"`
	Errors     []WordError         `json:"errors,omitempty" yaml:"errors,omitempty"`
	Summary    Summary             `json:"summary"          yaml:"summary"`
	Maps       Maps                `json:"maps"             yaml:"maps"`
}

// Word is one scored answer.
type Word struct {
	Word         string           `json:"word"         yaml:"word"`
	Row          int              `json:"row"          yaml:"row"`
	Col          int              `json:"col"          yaml:"col"`
	Direction    domain.Direction `json:"direction"    yaml:"direction"`
	Rarity       float64          `json:"rarity"       yaml:"rarity"`
	Novelty      float64          `json:"novelty"      yaml:"novelty"`
	Crosswordese float64          `json:"crosswordese" yaml:"crosswordese"`
	Count        int64            `json:"count"        yaml:"count"`
}

// WordError is an answer that could not be scored.
type WordError struct {
	Word  string `json:"word"  yaml:"word"`
	Error string `json:"error" yaml:"error"`
}

// Summary names the notable answers.
type Summary struct {
	MostNovel        []string `json:"most_novel"        yaml:"most_novel"`
	Hardest          string   `json:"hardest"           yaml:"hardest"`
	MostCrosswordese string   `json:"most_crosswordese" yaml:"most_crosswordese"`
}

// Maps holds the three per-cell maps.
type Maps struct {
	Rarity       [][]*float64 `json:"rarity"       yaml:"rarity"`
	Novelty      [][]*float64 `json:"novelty"      yaml:"novelty"`
	Crosswordese [][]*float64 `json:"crosswordese" yaml:"crosswordese"`
}

// NewDocument converts a report into its serialisable form.
func NewDocument(rep *analysis.Report, g *domain.Grid) Document {
	doc := Document{
		RunID:      rep.RunID.String(),
		Algorithms: rep.Algorithms,
		Grid:       g.Lines(),
		Words:      make([]Word, 0, len(rep.Records)),
	}

	for _, rec := range rep.Records {
		doc.Words = append(doc.Words, Word{
			Word:         rec.Word,
			Row:          rec.Span.Row,
			Col:          rec.Span.Col,
			Direction:    rec.Span.Direction,
			Rarity:       rec.Rarity,
			Novelty:      rec.Novelty,
			Crosswordese: rec.Crosswordese,
			Count:        rec.Count,
		})
	}
	for _, we := range rep.WordErrors {
		doc.Errors = append(doc.Errors, WordError{Word: we.Word, Error: we.Err.Error()})
	}

	for _, rec := range rep.Summary.MostNovel {
		doc.Summary.MostNovel = append(doc.Summary.MostNovel, rec.Word)
	}
	if h := rep.Summary.Hardest; h != nil {
		doc.Summary.Hardest = h.Word
	}
	if x := rep.Summary.MostCrosswordese; x != nil {
		doc.Summary.MostCrosswordese = x.Word
	}

	if rep.Maps != nil {
		doc.Maps = Maps{
			Rarity:       nullable(rep.Maps.Get(aggregate.Rarity)),
			Novelty:      nullable(rep.Maps.Get(aggregate.Novelty)),
			Crosswordese: nullable(rep.Maps.Get(aggregate.Crosswordese)),
		}
	}
	return doc
}

func nullable(m aggregate.ScoreMap) [][]*float64 {
	out := make([][]*float64, len(m))
	for r, row := range m {
		out[r] = make([]*float64, len(row))
		for c, v := range row {
			if math.IsNaN(v) {
				continue
			}
			v := domain.RoundScore(v)
			out[r][c] = &v
		}
	}
	return out
}
