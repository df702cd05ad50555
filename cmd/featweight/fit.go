package main

import (
	"context"
	"net/http"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/pcarver/featweight/internal/dataset"
	"github.com/pcarver/featweight/internal/runstore"
	"github.com/pcarver/featweight/internal/selection"
)

var (
	fitThreshold   float64
	fitMaxEvals    int
	fitSigma       float64
	fitSeed        int64
	fitStore       bool
	fitMetricsAddr string
)

var fitCmd = &cobra.Command{
	Use:   "fit <dataset.csv>",
	Short: "Learn feature weights for a CSV dataset",
	Long: `Fit runs the local search over a CSV dataset (last column is the
label), reports the learned weights and, optionally, archives the run.`,
	Args: cobra.ExactArgs(1),
	RunE: runFit,
}

func init() {
	fitCmd.Flags().Float64Var(&fitThreshold, "threshold", 0, "discard threshold for feature weights")
	fitCmd.Flags().IntVar(&fitMaxEvals, "max-evaluations", 0, "fitness evaluation budget")
	fitCmd.Flags().Float64Var(&fitSigma, "sigma", 0, "standard deviation of the Gaussian mutation")
	fitCmd.Flags().Int64Var(&fitSeed, "seed", 0, "random seed")
	fitCmd.Flags().BoolVar(&fitStore, "store", false, "archive the run in Redis")
	fitCmd.Flags().StringVar(&fitMetricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address while fitting")

	rootCmd.AddCommand(fitCmd)
}

func runFit(cmd *cobra.Command, args []string) error {
	path := args[0]

	selCfg := selection.Config{
		Threshold:      cfg.Selection.Threshold,
		MaxEvaluations: cfg.Selection.MaxEvaluations,
		Sigma:          cfg.Selection.Sigma,
		Seed:           cfg.Selection.Seed,
	}
	if cmd.Flags().Changed("threshold") {
		selCfg.Threshold = fitThreshold
	}
	if cmd.Flags().Changed("max-evaluations") {
		selCfg.MaxEvaluations = fitMaxEvals
	}
	if cmd.Flags().Changed("sigma") {
		selCfg.Sigma = fitSigma
	}
	if cmd.Flags().Changed("seed") {
		selCfg.Seed = fitSeed
	}

	if fitMetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		go func() {
			if err := http.ListenAndServe(fitMetricsAddr, mux); err != nil {
				log.Warn().Err(err).Str("addr", fitMetricsAddr).Msg("metrics server stopped")
			}
		}()
		log.Info().Str("addr", fitMetricsAddr).Msg("serving metrics")
	}

	loader, err := dataset.NewLoader(cfg.Dataset.CacheSize)
	if err != nil {
		return err
	}
	ds, err := loader.Load(path)
	if err != nil {
		return err
	}
	log.Info().
		Str("dataset", path).
		Int("samples", ds.Samples()).
		Int("features", ds.FeatureCount()).
		Msg("dataset loaded")

	selector := selection.NewSelector(selCfg)
	start := time.Now()
	if err := selector.Fit(ds.Features, ds.Labels); err != nil {
		return err
	}

	importances := selector.Importances()
	fitness, err := selection.Evaluate(importances, ds.Features, ds.Labels, selCfg.Threshold)
	if err != nil {
		return err
	}

	kept := 0
	for _, w := range importances {
		if w > selCfg.Threshold {
			kept++
		}
	}

	log.Info().
		Float64("fitness", fitness).
		Float64("reduction", selector.Reduction()).
		Int("kept_features", kept).
		Int("evaluations", selector.Evaluations()).
		Dur("elapsed", time.Since(start)).
		Msg("fit complete")
	log.Debug().Floats64("importances", importances).Msg("learned weights")

	if fitStore || cfg.Redis.Enabled {
		store, err := runstore.New(runstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TTL:      cfg.Redis.TTL,
		})
		if err != nil {
			return err
		}
		defer store.Close()

		run := runstore.NewRun(filepath.Base(path), importances, selector.Trace(),
			selector.Evaluations(), selector.Reduction())

		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()
		if err := store.Save(ctx, run); err != nil {
			return err
		}
		log.Info().Str("run_id", run.ID).Msg("run archived")
	}

	return nil
}
