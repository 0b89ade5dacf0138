package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"stock-sentiment-analyzer/internal/indicators"
	"stock-sentiment-analyzer/internal/loader"
	"stock-sentiment-analyzer/internal/report"
	"stock-sentiment-analyzer/internal/store"
	"stock-sentiment-analyzer/internal/types"
)

var technicalCmd = &cobra.Command{
	Use:   "technical [tickers...]",
	Short: "Indicators and risk metrics for every ticker, plus a cross-ticker heatmap",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, err := loadConfig(ctx)
		if err != nil {
			return err
		}
		tickers := tickersOf(cfg, args)

		frames, _ := loader.LoadMany(ctx, cfg.Data.PriceDir, tickers)
		if len(frames) == 0 {
			return errors.New("no price history could be loaded")
		}

		wb := newWorkbook(cfg)
		orch, err := buildOrchestrator(cfg, wb)
		if err != nil {
			return err
		}
		batch := orch.AnalyzeMany(ctx, frames, cfg.Indicators.Groups)

		for _, t := range batch.Tickers() {
			m := batch.Results[t].Metrics
			fmt.Fprintf(cmd.OutOrStdout(), "%-6s sharpe=%7.3f sortino=%7.3f max_dd=%7.3f vol=%6.3f\n",
				t, m.SharpeRatio, m.SortinoRatio, m.MaxDrawdown, m.AnnualizedVolatility)
		}
		for t, err := range batch.Failures {
			fmt.Fprintf(cmd.OutOrStdout(), "%-6s FAILED: %v\n", t, err)
		}

		err = report.WriteFile(filepath.Join(cfg.Output.Dir, "risk_metrics.csv"), func(w io.Writer) error {
			return report.WriteRiskMetrics(w, batch)
		})
		if err != nil {
			return err
		}
		return saveWorkbook(ctx, cfg, wb)
	},
}

var customIndicators string

var customCmd = &cobra.Command{
	Use:   "custom <ticker>",
	Short: "Compute only the indicator groups that contain the named indicators",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, err := loadConfig(ctx)
		if err != nil {
			return err
		}
		ticker := strings.ToUpper(args[0])
		names := cfg.Indicators.Custom
		if customIndicators != "" {
			names = strings.Split(customIndicators, ",")
		}
		if len(names) == 0 {
			return fmt.Errorf("no indicators requested; known names: %s", strings.Join(knownIndicators(), ","))
		}

		f, err := loader.LoadTicker(ctx, cfg.Data.PriceDir, ticker)
		if err != nil {
			return err
		}
		wb := newWorkbook(cfg)
		orch, err := buildOrchestrator(cfg, wb)
		if err != nil {
			return err
		}
		res := orch.AnalyzeCustom(ctx, f, ticker, names)
		if res.Failed() {
			return res.Err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d columns\n", ticker, len(res.Data.Columns()))
		return saveWorkbook(ctx, cfg, wb)
	},
}

var sentimentCmd = &cobra.Command{
	Use:   "sentiment [tickers...]",
	Short: "Score news headlines and correlate daily sentiment with returns",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, err := loadConfig(ctx)
		if err != nil {
			return err
		}
		tickers := tickersOf(cfg, args)

		docs, err := loader.LoadNews(ctx, cfg.Data.NewsFile)
		if err != nil {
			return err
		}
		docs = loader.FilterTickers(docs, tickers)
		prices, _ := loader.LoadMany(ctx, cfg.Data.PriceDir, tickers)

		orch, err := buildOrchestrator(cfg, nil)
		if err != nil {
			return err
		}
		study, err := orch.AnalyzeSentiment(ctx, docs, prices, cfg.Sentiment.MaxLag)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, r := range study.Correlations {
			fmt.Fprintf(out, "%-16s r=%7.4f %s\n", r.Metric, r.Pearson, r.Strength)
		}
		for _, r := range study.Lagged {
			fmt.Fprintf(out, "lag %d r=%7.4f %s\n", r.Lag, r.Pearson, r.Direction)
		}
		return writeStudy(cfg, study)
	},
}

func init() {
	customCmd.Flags().StringVarP(&customIndicators, "indicators", "i", "", "comma-separated indicator names, e.g. RSI,MACD,ATR")
}

func knownIndicators() []string {
	var out []string
	for _, g := range indicators.GroupNames {
		out = append(out, indicators.Members(g)...)
	}
	return out
}

func tickersOf(cfg *store.Config, args []string) []string {
	if len(args) == 0 {
		return cfg.Tickers
	}
	out := make([]string, len(args))
	for i, a := range args {
		out[i] = strings.ToUpper(strings.TrimSpace(a))
	}
	return out
}

func writeStudy(cfg *store.Config, study types.SentimentStudy) error {
	files := []struct {
		name  string
		write func(io.Writer) error
	}{
		{"daily_sentiment.csv", func(w io.Writer) error { return report.WriteDailySentiment(w, study.Daily) }},
		{"sentiment_correlations.csv", func(w io.Writer) error { return report.WriteCorrelations(w, study.Correlations) }},
		{"lagged_correlations.csv", func(w io.Writer) error { return report.WriteLagCorrelations(w, study.Lagged) }},
	}
	for _, f := range files {
		if err := report.WriteFile(filepath.Join(cfg.Output.Dir, f.name), f.write); err != nil {
			return err
		}
	}
	return nil
}
