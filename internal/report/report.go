package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"stock-sentiment-analyzer/internal/types"
)

const dateLayout = "2006-01-02"

type correlationLine struct {
	Metric   string  `csv:"Sentiment_Metric"`
	Pearson  float64 `csv:"Pearson_Correlation"`
	Absolute float64 `csv:"Absolute_Correlation"`
	Strength string  `csv:"Strength"`
}

type lagLine struct {
	Lag       int     `csv:"Lag_Days"`
	Pearson   float64 `csv:"Pearson_Correlation"`
	Absolute  float64 `csv:"Absolute_Correlation"`
	Direction string  `csv:"Direction"`
	Undefined bool    `csv:"Undefined"`
}

type dailyLine struct {
	Ticker         string  `csv:"ticker"`
	Date           string  `csv:"date"`
	CompoundMean   float64 `csv:"compound_mean"`
	CompoundMedian float64 `csv:"compound_median"`
	PolarityMean   float64 `csv:"polarity_mean"`
	Total          int     `csv:"total_articles"`
	PositiveCount  int     `csv:"positive_count"`
	NegativeCount  int     `csv:"negative_count"`
	NeutralCount   int     `csv:"neutral_count"`
	PositivePct    float64 `csv:"positive_pct"`
	NegativePct    float64 `csv:"negative_pct"`
	NeutralPct     float64 `csv:"neutral_pct"`
	Weekday        string  `csv:"day_of_week"`
	ISOWeek        int     `csv:"week"`
	Month          string  `csv:"month"`
}

type riskLine struct {
	Ticker     string  `csv:"ticker"`
	Sharpe     float64 `csv:"Sharpe_Ratio"`
	Sortino    float64 `csv:"Sortino_Ratio"`
	Drawdown   float64 `csv:"Max_Drawdown"`
	Volatility float64 `csv:"Annualized_Volatility"`
	Warnings   int     `csv:"warnings"`
}

// WriteCorrelations writes rows in the order given.
func WriteCorrelations(w io.Writer, rows []types.CorrelationRow) error {
	lines := make([]*correlationLine, len(rows))
	for i, r := range rows {
		lines[i] = &correlationLine{Metric: r.Metric, Pearson: r.Pearson, Absolute: r.Absolute, Strength: string(r.Strength)}
	}
	return gocsv.Marshal(&lines, w)
}

func WriteLagCorrelations(w io.Writer, rows []types.LagCorrelationRow) error {
	lines := make([]*lagLine, len(rows))
	for i, r := range rows {
		lines[i] = &lagLine{Lag: r.Lag, Pearson: r.Pearson, Absolute: r.Absolute, Direction: string(r.Direction), Undefined: r.Undefined}
	}
	return gocsv.Marshal(&lines, w)
}

func WriteDailySentiment(w io.Writer, daily []types.DailySentiment) error {
	lines := make([]*dailyLine, len(daily))
	for i, d := range daily {
		lines[i] = &dailyLine{
			Ticker:         d.Ticker,
			Date:           d.Date.Format(dateLayout),
			CompoundMean:   d.CompoundMean,
			CompoundMedian: d.CompoundMedian,
			PolarityMean:   d.PolarityMean,
			Total:          d.Total,
			PositiveCount:  d.PositiveCount,
			NegativeCount:  d.NegativeCount,
			NeutralCount:   d.NeutralCount,
			PositivePct:    d.PositivePct,
			NegativePct:    d.NegativePct,
			NeutralPct:     d.NeutralPct,
			Weekday:        d.Weekday,
			ISOWeek:        d.ISOWeek,
			Month:          d.Month,
		}
	}
	return gocsv.Marshal(&lines, w)
}

// WriteRiskMetrics writes one line per successful ticker of a batch, in ticker order.
func WriteRiskMetrics(w io.Writer, batch types.BatchResult) error {
	var lines []*riskLine
	for _, t := range batch.Tickers() {
		m := batch.Results[t].Metrics
		if m == nil {
			continue
		}
		lines = append(lines, &riskLine{
			Ticker:     t,
			Sharpe:     m.SharpeRatio,
			Sortino:    m.SortinoRatio,
			Drawdown:   m.MaxDrawdown,
			Volatility: m.AnnualizedVolatility,
			Warnings:   len(m.Warnings),
		})
	}
	if lines == nil {
		lines = []*riskLine{}
	}
	return gocsv.Marshal(&lines, w)
}

// WriteFile creates path, including missing directories, and hands it to write.
func WriteFile(path string, write func(io.Writer) error) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()
	if err := write(out); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
