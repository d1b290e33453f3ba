// Package main provides the offline fueling plan CLI
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	appplanning "github.com/enduraplan/v2/internal/application/planning"
	"github.com/enduraplan/v2/internal/domain/planning"
	"github.com/enduraplan/v2/internal/infrastructure/catalogfile"
	"github.com/enduraplan/v2/pkg/logger"
)

type cliConfig struct {
	catalogPath  string
	duration     int
	carbsRate    float64
	sodiumRate   float64
	fluidRate    float64
	outputFormat string
	verbose      bool
}

func main() {
	cfg := parseFlags()

	items, err := catalogfile.LoadFile(cfg.catalogPath)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}

	zlog, err := logger.New(logger.Config{
		Level:  logLevel(cfg.verbose),
		Format: "console",
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zlog.Sync() //nolint:errcheck

	engine := planning.NewEngine(planning.DefaultTuning(), zlog)
	result := engine.Generate(planning.Request{
		Catalog:         items,
		DurationMinutes: cfg.duration,
		Rates: planning.Rates{
			CarbsPerHour:  cfg.carbsRate,
			SodiumPerHour: cfg.sodiumRate,
			FluidPerHour:  cfg.fluidRate,
		},
	})

	switch cfg.outputFormat {
	case "json":
		printJSON(result)
	default:
		printReport(result)
	}
}

func parseFlags() cliConfig {
	var cfg cliConfig

	flag.StringVar(&cfg.catalogPath, "catalog", "", "Path to the catalog JSON file (required)")
	flag.IntVar(&cfg.duration, "duration", 0, "Race duration in minutes (required)")
	flag.Float64Var(&cfg.carbsRate, "carbs", 0, "Carbohydrate rate in g/h (default 60)")
	flag.Float64Var(&cfg.sodiumRate, "sodium", 0, "Sodium rate in mg/h (default 500)")
	flag.Float64Var(&cfg.fluidRate, "fluid", 0, "Fluid rate in ml/h (default 500)")
	flag.StringVar(&cfg.outputFormat, "format", "text", "Output format (text, json)")
	flag.BoolVar(&cfg.verbose, "verbose", false, "Enable debug logging")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Generates race fueling plans from a product catalog\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -catalog products.json -duration 180\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -catalog products.json -duration 240 -carbs 90 -format json\n", os.Args[0])
	}

	flag.Parse()

	if cfg.catalogPath == "" || cfg.duration <= 0 {
		flag.Usage()
		os.Exit(2)
	}
	return cfg
}

func logLevel(verbose bool) string {
	if verbose {
		return "debug"
	}
	return "warn"
}

func printJSON(result planning.Result) {
	dto := appplanning.ResultToDTO(result)
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(dto); err != nil {
		log.Fatalf("Failed to encode result: %v", err)
	}
}

func printReport(result planning.Result) {
	t := result.Target
	fmt.Printf("Targets for %.1f h: %d g carbs, %d mg sodium, %d ml fluid\n",
		t.Hours, t.Carbs, t.Sodium, t.Fluid)

	if len(result.Plans) == 0 {
		fmt.Println("\nNo plans could be generated.")
	}

	for i, p := range result.Plans {
		fmt.Printf("\n%d. %s (score %d)\n", i+1, p.StrategyName, p.Score)
		fmt.Printf("   %s\n", p.Description)
		for _, e := range p.Entries {
			serving := e.Item.ServingSize
			if serving == "" {
				serving = "serving"
			}
			fmt.Printf("   - %d x %s (%s): %.0f g carbs, %.0f mg sodium, %.0f ml fluid\n",
				e.Quantity, e.Item.Name, serving, e.Carbs, e.Sodium, e.Fluid)
		}
		fmt.Printf("   Totals: %.0f g carbs (%.0f%%), %.0f mg sodium (%.0f%%), %.0f ml fluid (%.0f%%)\n",
			p.Totals.Carbs, p.Coverage.Carbs,
			p.Totals.Sodium, p.Coverage.Sodium,
			p.Totals.Fluid, p.Coverage.Fluid)
	}

	if len(result.Warnings) > 0 {
		fmt.Printf("\nWarnings:\n")
		for _, w := range result.Warnings {
			fmt.Printf("  ! %s\n", w)
		}
	}
	if len(result.Tips) > 0 {
		fmt.Printf("\nTips:\n")
		for _, tip := range result.Tips {
			fmt.Printf("  * %s\n", tip)
		}
	}
}
