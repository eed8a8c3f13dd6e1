package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"flockbg/internal/app"
	"flockbg/internal/core"
	"flockbg/internal/flock"

	"gonum.org/v1/gonum/spatial/r2"
)

type paramSet struct {
	alignment  float64
	cohesion   float64
	separation float64
	falloff    flock.Falloff
}

func (p paramSet) String() string {
	return fmt.Sprintf("align=%.3f cohesion=%.3f separation=%.3f falloff=%s",
		p.alignment, p.cohesion, p.separation, p.falloff)
}

// overrides merges p into base as registry key/value pairs.
func (p paramSet) overrides(base map[string]string) map[string]string {
	m := make(map[string]string, len(base)+4)
	for k, v := range base {
		m[k] = v
	}
	m["alignment_weight"] = strconv.FormatFloat(p.alignment, 'g', -1, 64)
	m["cohesion_weight"] = strconv.FormatFloat(p.cohesion, 'g', -1, 64)
	m["separation_weight"] = strconv.FormatFloat(p.separation, 'g', -1, 64)
	m["falloff"] = string(p.falloff)
	return m
}

type scenarioResult struct {
	params       paramSet
	polarization float64
	spacing      float64
	minSpacing   float64
}

type unitsProvider interface {
	Units() []flock.Unit
}

func main() {
	simName := flag.String("sim", "boids", "registered simulation to sweep")
	steps := flag.Int("steps", 600, "ticks to simulate per scenario")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	seed := flag.Int64("seed", 1337, "seed used for every scenario")
	top := flag.Int("top", 5, "number of results to print")
	var overrides app.KVList
	flag.Var(&overrides, "set", "base override in key=value form (repeatable)")
	flag.Parse()

	factory, ok := core.Sims()[*simName]
	if !ok {
		log.Fatalf("unknown sim %q (have %s)", *simName, strings.Join(core.Names(), ", "))
	}
	base, err := baseOverrides(overrides)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	sets := grid(
		[]float64{0.02, 0.05, 0.1},
		[]float64{0.005, 0.01, 0.02},
		[]float64{0.05, 0.1, 0.2},
		[]flock.Falloff{flock.FalloffInverse, flock.FalloffUnit},
	)

	fmt.Printf("Sweeping %d parameter sets (%d workers, %d steps)\n", len(sets), *workers, *steps)

	start := time.Now()
	all, err := sweep(factory, base, sets, *steps, *workers, *seed)
	if err != nil {
		log.Fatal(err)
	}
	elapsed := time.Since(start)

	fmt.Printf("\nTop %d results (elapsed %s):\n", *top, elapsed.Round(time.Millisecond))
	for i := 0; i < len(all) && i < *top; i++ {
		res := all[i]
		fmt.Printf("%2d) polarization=%.3f spacing=%.2f minSpacing=%.2f params=%s\n",
			i+1, res.polarization, res.spacing, res.minSpacing, res.params)
	}
}

// baseOverrides merges the -set overrides over the sweep defaults. Overrides
// the flock config rejects are reported instead of silently dropped.
func baseOverrides(overrides app.KVList) (map[string]string, error) {
	check := flock.DefaultConfig()
	if err := overrides.Apply(&check); err != nil {
		return nil, err
	}
	if err := check.Validate(); err != nil {
		return nil, err
	}
	base := map[string]string{"width": "640", "height": "400", "count": "60"}
	for k, v := range overrides.Map() {
		base[k] = v
	}
	return base, nil
}

func grid(align, cohesion, separation []float64, falloffs []flock.Falloff) []paramSet {
	var sets []paramSet
	for _, a := range align {
		for _, c := range cohesion {
			for _, s := range separation {
				for _, f := range falloffs {
					sets = append(sets, paramSet{alignment: a, cohesion: c, separation: s, falloff: f})
				}
			}
		}
	}
	return sets
}

// sweep evaluates every set on a pool of workers and returns the results
// ordered by polarization, most ordered first.
func sweep(factory core.Factory, base map[string]string, sets []paramSet, steps, workers int, seed int64) ([]scenarioResult, error) {
	if workers < 1 {
		workers = 1
	}
	jobs := make(chan paramSet)
	results := make(chan scenarioResult)
	errs := make(chan error, 1)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for params := range jobs {
				res, err := runScenario(factory, base, params, steps, seed)
				if err != nil {
					select {
					case errs <- err:
					default:
					}
					continue
				}
				results <- res
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, params := range sets {
			jobs <- params
		}
		close(jobs)
	}()

	var all []scenarioResult
	for res := range results {
		all = append(all, res)
	}
	select {
	case err := <-errs:
		return nil, err
	default:
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].polarization != all[j].polarization {
			return all[i].polarization > all[j].polarization
		}
		return all[i].spacing > all[j].spacing
	})
	return all, nil
}

func runScenario(factory core.Factory, base map[string]string, params paramSet, steps int, seed int64) (scenarioResult, error) {
	sim := factory(params.overrides(base))
	provider, ok := sim.(unitsProvider)
	if !ok {
		return scenarioResult{}, fmt.Errorf("sim %q does not expose its units", sim.Name())
	}
	sim.Reset(seed)
	for step := 0; step < steps; step++ {
		sim.Step()
	}
	units := provider.Units()
	return scenarioResult{
		params:       params,
		polarization: flock.Polarization(units),
		spacing:      flock.MeanNearestDistance(units),
		minSpacing:   minNearestDistance(units),
	}, nil
}

// minNearestDistance returns the closest pair distance, the tightest
// packing the separation rule allowed.
func minNearestDistance(units []flock.Unit) float64 {
	best := math.Inf(1)
	for i := range units {
		for j := i + 1; j < len(units); j++ {
			best = math.Min(best, r2.Norm(r2.Sub(units[i].Pos, units[j].Pos)))
		}
	}
	if math.IsInf(best, 1) {
		return 0
	}
	return best
}
