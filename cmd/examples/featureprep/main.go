// Example: prep a recipe on a small training frame, then bake new data.
package main

import (
	"log"
	"math"
	"time"

	"go.uber.org/zap"
	exprand "golang.org/x/exp/rand"

	"github.com/prepline/prepline/pkg/config"
	"github.com/prepline/prepline/pkg/dataset"
	"github.com/prepline/prepline/pkg/recipe"
	"github.com/prepline/prepline/pkg/selector"
	"github.com/prepline/prepline/pkg/step"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	logger, err := cfg.BuildLogger()
	if err != nil {
		log.Fatalf("building logger: %v", err)
	}
	defer logger.Sync()

	training := buildTraining()

	holidayStep, err := step.NewHoliday(
		selector.Columns("admitted"),
		[]string{"ChristmasDay", "NewYearsDay"},
		logger,
	)
	if err != nil {
		logger.Fatal("configuring holiday step", zap.Error(err))
	}

	var src exprand.Source
	if cfg.Seed != 0 {
		src = exprand.NewSource(cfg.Seed)
	}

	r := recipe.New(logger).
		Add(holidayStep).
		Add(step.NewLowerImputeWithConfig(
			selector.Columns("lab_value"), logger,
			step.LowerImputeConfig{Source: src})).
		Add(step.NewBoxCoxWithConfig(
			selector.Columns("income"), logger,
			step.BoxCoxConfig{
				Limits:  [2]float64{cfg.BoxCoxLowerLimit, cfg.BoxCoxUpperLimit},
				NUnique: cfg.BoxCoxMinUnique,
			})).
		Add(step.NewDummy(selector.Columns("diet"), logger))

	prepped, err := r.Prep(training)
	if err != nil {
		logger.Fatal("prepping recipe", zap.Error(err))
	}
	logger.Info("prepped training data",
		zap.Int("rows", prepped.Rows()),
		zap.Strings("columns", prepped.Names()))

	for _, s := range r.Summary() {
		for _, row := range s.Rows {
			logger.Info("learned parameter",
				zap.String("step", s.ID),
				zap.String("column", row.Column),
				zap.String("statistic", row.Statistic),
				zap.Float64("value", row.Value),
				zap.String("detail", row.Detail))
		}
	}

	baked, err := r.Bake(buildNew())
	if err != nil {
		logger.Fatal("baking new data", zap.Error(err))
	}
	logger.Info("baked new data",
		zap.Int("rows", baked.Rows()),
		zap.Strings("columns", baked.Names()))
}

func buildTraining() *dataset.Dataset {
	d := dataset.New()
	must(d.Append("diet", dataset.NewFactor([]string{"omni", "veg", "vegan", "omni", "veg", "omni"})))
	must(d.Append("income", dataset.NewNumeric([]float64{28000, 41500, 39000, 61200, 52250, 33400})))
	must(d.Append("lab_value", dataset.NewNumeric([]float64{0.5, 0.5, 1.2, 2.4, 0.9, 3.1})))
	must(d.Append("admitted", dataset.NewDate([]time.Time{
		date(2000, 12, 24),
		date(2000, 12, 25),
		date(2000, 12, 26),
		date(2001, 1, 1),
		date(2001, 1, 2),
		date(2001, 7, 4),
	})))
	return d
}

func buildNew() *dataset.Dataset {
	d := dataset.New()
	must(d.Append("diet", dataset.NewFactor([]string{"omni", "veg", "omni"})))
	must(d.Append("income", dataset.NewNumeric([]float64{45000, math.NaN(), 58000})))
	must(d.Append("lab_value", dataset.NewNumeric([]float64{0.5, 1.8, 0.6})))
	must(d.Append("admitted", dataset.NewDate([]time.Time{
		date(2002, 12, 25),
		date(2002, 1, 1),
		date(2002, 3, 14),
	})))
	return d
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
