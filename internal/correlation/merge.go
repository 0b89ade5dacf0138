package correlation

import (
	"fmt"
	"sort"
	"time"

	"stock-sentiment-analyzer/internal/frame"
	"stock-sentiment-analyzer/internal/sentiment"
	"stock-sentiment-analyzer/internal/types"
)

// Extra columns carried by a merged frame next to the metrics.
const (
	NeutralPct    = "neutral_pct"
	TotalArticles = "total_articles"
)

// Merged is one ticker's daily sentiment joined with its returns.
type Merged struct {
	Ticker string
	Frame  *frame.Frame
}

// Merge inner-joins one ticker's daily sentiment with a returns frame on calendar date.
// The returns frame must carry Daily_Return; Close is carried over when present.
func Merge(daily []types.DailySentiment, ticker string, returns *frame.Frame) (*frame.Frame, error) {
	if returns == nil {
		return nil, frame.Invalid("merge %s: nil returns frame", ticker)
	}
	if err := returns.Require(ReturnsColumn); err != nil {
		return nil, fmt.Errorf("merge %s: %w", ticker, err)
	}

	rowOf := make(map[time.Time]int, returns.Len())
	for i := 0; i < returns.Len(); i++ {
		rowOf[sentiment.CalendarDay(returns.Date(i))] = i
	}

	var picked []types.DailySentiment
	var rows []int
	for _, d := range daily {
		if d.Ticker != ticker {
			continue
		}
		if i, ok := rowOf[sentiment.CalendarDay(d.Date)]; ok {
			picked = append(picked, d)
			rows = append(rows, i)
		}
	}
	order := make([]int, len(picked))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return picked[order[a]].Date.Before(picked[order[b]].Date) })

	n := len(picked)
	idx := make([]time.Time, n)
	cols := map[string][]float64{}
	names := []string{CompoundMean, CompoundMedian, PolarityMean, PositivePct, NegativePct, NeutralPct, TotalArticles, ReturnsColumn}
	carryClose := returns.Has(frame.Close)
	if carryClose {
		names = append(names, frame.Close)
	}
	for _, name := range names {
		cols[name] = make([]float64, n)
	}
	ret := returns.Column(ReturnsColumn)
	for k, pos := range order {
		d, row := picked[pos], rows[pos]
		idx[k] = sentiment.CalendarDay(d.Date)
		cols[CompoundMean][k] = d.CompoundMean
		cols[CompoundMedian][k] = d.CompoundMedian
		cols[PolarityMean][k] = d.PolarityMean
		cols[PositivePct][k] = d.PositivePct
		cols[NegativePct][k] = d.NegativePct
		cols[NeutralPct][k] = d.NeutralPct
		cols[TotalArticles][k] = float64(d.Total)
		cols[ReturnsColumn][k] = ret[row]
		if carryClose {
			cols[frame.Close][k] = returns.Column(frame.Close)[row]
		}
	}

	b := frame.New(idx).Extend()
	for _, name := range names {
		b.Set(name, cols[name])
	}
	return b.Frame(), nil
}

// MergeAll merges every ticker that has both sentiment and returns, in ticker order.
// Tickers with sentiment but no usable returns are reported in skipped.
func MergeAll(daily []types.DailySentiment, returns map[string]*frame.Frame) (merged []Merged, skipped map[string]error) {
	skipped = map[string]error{}
	seen := map[string]bool{}
	var tickers []string
	for _, d := range daily {
		if !seen[d.Ticker] {
			seen[d.Ticker] = true
			tickers = append(tickers, d.Ticker)
		}
	}
	sort.Strings(tickers)

	for _, t := range tickers {
		r, ok := returns[t]
		if !ok {
			skipped[t] = fmt.Errorf("merge %s: no price history", t)
			continue
		}
		f, err := Merge(daily, t, r)
		if err != nil {
			skipped[t] = err
			continue
		}
		if f.Len() == 0 {
			skipped[t] = fmt.Errorf("merge %s: no overlapping dates", t)
			continue
		}
		merged = append(merged, Merged{Ticker: t, Frame: f})
	}
	return merged, skipped
}

// Frames returns the frames of merged in order.
func Frames(merged []Merged) []*frame.Frame {
	out := make([]*frame.Frame, len(merged))
	for i, m := range merged {
		out[i] = m.Frame
	}
	return out
}
