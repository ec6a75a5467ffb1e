package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/homevolt/homevolt/config"
	"github.com/homevolt/homevolt/core/forecast"
	"github.com/homevolt/homevolt/core/model"
	"github.com/homevolt/homevolt/core/registry"
	"github.com/homevolt/homevolt/infra/logger"
)

var (
	predictAppliance string
	predictDate      string
	predictAvgTemp   float64
	predictHousehold int
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Forecast one appliance's energy use for a date",
	RunE:  runPredict,
}

func init() {
	predictCmd.Flags().StringVar(&predictAppliance, "appliance", "", "appliance name (required)")
	predictCmd.Flags().StringVar(&predictDate, "date", "", "target date YYYY-MM-DD (default tomorrow)")
	predictCmd.Flags().Float64Var(&predictAvgTemp, "avg-temp", 25.0, "expected average temperature")
	predictCmd.Flags().IntVar(&predictHousehold, "household-size", 4, "household size")
	_ = predictCmd.MarkFlagRequired("appliance")
	rootCmd.AddCommand(predictCmd)
}

func runPredict(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	reg, err := registry.Load(cfg.Registry.ManifestPath, cfg.Registry.ArtifactRoot, logger.New("registry"))
	if err != nil {
		return fmt.Errorf("model registry: %w", err)
	}

	target := time.Now().AddDate(0, 0, 1)
	if predictDate != "" {
		target, err = time.Parse(model.DateLayout, predictDate)
		if err != nil {
			return fmt.Errorf("parse date: %w", err)
		}
	}
	wd := target.Weekday()

	engine := forecast.NewEngine(reg, nil, logger.New("forecast-engine"))
	res, err := engine.Predict(cmd.Context(), predictAppliance, model.FeatureVector{
		TargetDate:    target,
		AvgTemp:       predictAvgTemp,
		HouseholdSize: predictHousehold,
		Weekend:       wd == time.Saturday || wd == time.Sunday,
	})
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
