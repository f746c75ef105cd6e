// Package main searches spring and fling friction settings that settle
// bubbles quickly without bouncing far past the screen edge.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/bubbles/config"
)

// EvalRow is one line of tune_log.csv.
type EvalRow struct {
	Eval         int     `csv:"eval"`
	Cost         float64 `csv:"cost"`
	Stiffness    float64 `csv:"stiffness"`
	DampingRatio float64 `csv:"damping_ratio"`
	Friction     float64 `csv:"friction"`
}

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	maxEvals := flag.Int("max-evals", 300, "Maximum number of evaluations")
	method := flag.String("method", "cmaes", "Search method: cmaes or nelder-mead")
	population := flag.Int("population", 0, "CMA-ES population size (0 = auto)")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	baseCfg := config.Cfg()

	params := NewParamVector(baseCfg)
	evaluator := NewEvaluator(float32(baseCfg.Screen.Width))

	searcher, err := newMethod(*method, params.Dim(), *population)
	if err != nil {
		log.Fatal(err)
	}

	logFile, err := os.Create(filepath.Join(*outputDir, "tune_log.csv"))
	if err != nil {
		log.Fatalf("failed to create log file: %v", err)
	}
	defer logFile.Close()

	evalCount := 0
	bestCost := 1e9
	var bestParams []float64
	startTime := time.Now()

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			raw := params.Clamp(params.Denormalize(x))
			cost := evaluator.Evaluate(raw)
			evalCount++

			if cost < bestCost {
				bestCost = cost
				bestParams = append(bestParams[:0], raw...)
			}

			rows := []EvalRow{{Eval: evalCount, Cost: cost, Stiffness: raw[0], DampingRatio: raw[1], Friction: raw[2]}}
			if evalCount == 1 {
				err = gocsv.Marshal(rows, logFile)
			} else {
				err = gocsv.MarshalWithoutHeaders(rows, logFile)
			}
			if err != nil {
				log.Printf("failed to log evaluation %d: %v", evalCount, err)
			}

			if evalCount%25 == 0 {
				fmt.Printf("Eval %d/%d: cost=%.3f (best=%.3f) | elapsed: %s\n",
					evalCount, *maxEvals, cost, bestCost, time.Since(startTime).Round(time.Millisecond))
			}
			return cost
		},
	}

	fmt.Printf("Starting %s search over %d parameters, max_evals=%d\n", *method, params.Dim(), *maxEvals)
	fmt.Printf("Baseline cost: %.3f\n", evaluator.Evaluate(params.DefaultVector()))

	settings := &optimize.Settings{FuncEvaluations: *maxEvals}
	result, err := optimize.Minimize(problem, params.Normalize(params.DefaultVector()), settings, searcher)
	if err != nil {
		log.Printf("search ended: %v", err)
	}
	if bestParams == nil && result != nil {
		bestParams = params.Clamp(params.Denormalize(result.X))
	}
	if bestParams == nil {
		log.Fatal("no evaluation completed")
	}

	fmt.Printf("\nSearch complete after %d evaluations in %s\n", evalCount, time.Since(startTime).Round(time.Millisecond))
	fmt.Printf("Best cost: %.3f\n", bestCost)
	fmt.Println("\nBest parameters:")
	for i, def := range params.Defs {
		fmt.Printf("  %s: %.4f\n", def.Path, bestParams[i])
	}

	fmt.Println("\nPer scenario:")
	spring, friction := springOf(bestParams)
	for _, sc := range evaluator.Scenarios() {
		r := evaluator.Run(sc, spring, friction)
		fmt.Printf("  %-16s settle=%.2fs overshoot=%.1fpx missed=%v\n", sc.Name, r.SettleSec, r.Overshoot, r.Missed)
	}

	bestCfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to reload config: %v", err)
	}
	params.ApplyToConfig(bestCfg, bestParams)

	outPath := filepath.Join(*outputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(outPath); err != nil {
		log.Printf("failed to write best config: %v", err)
	} else {
		fmt.Printf("\nBest config saved to: %s\n", outPath)
	}
}

func newMethod(name string, dim, population int) (optimize.Method, error) {
	switch name {
	case "cmaes":
		if population == 0 {
			population = 4 + 3*dim
		}
		return &optimize.CmaEsChol{InitStepSize: 0.3, Population: population}, nil
	case "nelder-mead":
		return &optimize.NelderMead{SimplexSize: 0.2}, nil
	}
	return nil, fmt.Errorf("unknown method %q", name)
}
