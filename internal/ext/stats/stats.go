// Package stats registers descriptive statistics aggregates.
//
// Aggregates skip NULL and non-numeric values. Over an empty input they
// return NULL.
package stats

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"

	"github.com/montanaflynn/stats"

	"github.com/nerrad567/sqlean-go/internal/ext/sqlfn"
)

// ErrInvalidPercent is returned when a percentile is outside [0, 100].
var ErrInvalidPercent = errors.New("stats: percent must be between 0 and 100")

// Init registers the stats aggregates on conn.
func Init(conn sqlfn.Conn) error {
	return sqlfn.Register(conn,
		sqlfn.Aggregate("median", func() *sample { return &sample{summary: stats.Median} }),
		sqlfn.Aggregate("percentile", func() *percentile { return &percentile{} }),
		sqlfn.Aggregate("stats_stddev", func() *sample { return &sample{summary: stats.StandardDeviationSample} }),
		sqlfn.Aggregate("stats_var", func() *sample { return &sample{summary: stats.SampleVariance} }),
	)
}

// numeric converts an SQLite value to float64, reporting false for NULL
// and text that does not parse as a number.
func numeric(v any) (float64, bool) {
	switch x := v.(type) {
	case int64:
		return float64(x), true
	case float64:
		return x, true
	case string:
		f, err := strconv.ParseFloat(x, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// sample collects values and summarises them once the group is complete.
type sample struct {
	data    stats.Float64Data
	summary func(stats.Float64Data) (float64, error)
}

func (s *sample) Step(v any) {
	if f, ok := numeric(v); ok {
		s.data = append(s.data, f)
	}
}

func (s *sample) Done() (any, error) {
	if len(s.data) == 0 {
		return nil, nil
	}
	r, err := s.summary(s.data)
	if err != nil {
		if errors.Is(err, stats.ErrEmptyInput) || errors.Is(err, stats.ErrSize) {
			return nil, nil
		}
		return nil, err
	}
	return r, nil
}

// percentile computes the p-th percentile with linear interpolation
// between the closest ranks.
type percentile struct {
	data    []float64
	percent float64
	seen    bool
}

func (p *percentile) Step(v any, pct any) error {
	percent, ok := numeric(pct)
	if !ok || percent < 0 || percent > 100 {
		return fmt.Errorf("%w: %v", ErrInvalidPercent, pct)
	}
	if p.seen && percent != p.percent {
		return errors.New("stats: percent must be constant within a group")
	}
	p.percent, p.seen = percent, true
	if f, ok := numeric(v); ok {
		p.data = append(p.data, f)
	}
	return nil
}

func (p *percentile) Done() any {
	if len(p.data) == 0 {
		return nil
	}
	return interpolate(p.data, p.percent)
}

func interpolate(data []float64, percent float64) float64 {
	sorted := slices.Clone(data)
	slices.Sort(sorted)

	rank := percent / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	return sorted[lo] + (rank-float64(lo))*(sorted[hi]-sorted[lo])
}
