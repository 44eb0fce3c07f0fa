package main

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"wavefloat/internal/sims/floating"
)

type paramSet struct {
	nodes     int
	tps       int
	waveSpeed float64
}

func (p paramSet) String() string {
	return fmt.Sprintf("nodes=%d tps=%d c=%.2f", p.nodes, p.tps, p.waveSpeed)
}

type scenarioResult struct {
	params   paramSet
	courant  float64
	peak     float64
	bodyZ    float64
	diverged bool
	// tick at which the surface first left the bound, or -1
	divergedAt int
}

// divergenceFactor bounds the surface at this multiple of the injected
// amplitude before a run counts as diverged.
const divergenceFactor = 10

func grid(nodes, tps []int, speeds []float64) []paramSet {
	sets := make([]paramSet, 0, len(nodes)*len(tps)*len(speeds))
	for _, n := range nodes {
		for _, t := range tps {
			for _, c := range speeds {
				sets = append(sets, paramSet{nodes: n, tps: t, waveSpeed: c})
			}
		}
	}
	return sets
}

// runScenario drops the base scene's bodies onto a surface disturbed at its
// centre and tracks the largest displacement over steps ticks.
func runScenario(base floating.Config, params paramSet, steps int) (scenarioResult, error) {
	cfg := base
	cfg.Bodies = append([]floating.BodyConfig(nil), base.Bodies...)
	cfg.Grid.Rows = params.nodes
	cfg.Grid.Columns = params.nodes
	cfg.TPS = params.tps
	cfg.Physics.WaveSpeed = params.waveSpeed

	world, err := floating.New(cfg)
	if err != nil {
		return scenarioResult{}, fmt.Errorf("%s: %w", params, err)
	}
	field := world.Field()
	amplitude := cfg.Waves.Amplitude
	if err := field.InjectDisturbance(amplitude, 0, 0, cfg.Waves.SigmaX, cfg.Waves.SigmaY); err != nil {
		return scenarioResult{}, fmt.Errorf("%s: %w", params, err)
	}

	dt := 1 / float64(params.tps)
	res := scenarioResult{params: params, courant: field.Courant(dt), divergedAt: -1}
	limit := divergenceFactor * amplitude
	for i := 0; i < steps; i++ {
		world.Step(dt)
		for _, h := range field.Heights() {
			a := math.Abs(h)
			if math.IsNaN(a) || a > limit {
				res.diverged = true
				res.divergedAt = i + 1
				res.peak = math.Inf(1)
				return res, nil
			}
			res.peak = math.Max(res.peak, a)
		}
	}
	if bodies := world.Bodies(); len(bodies) > 0 {
		res.bodyZ = bodies[0].Position().Z()
	}
	return res, nil
}

// sweep runs every set on a pool of workers. Results come back ordered by
// Courant number, then by parameters.
func sweep(base floating.Config, sets []paramSet, steps, workers int) ([]scenarioResult, error) {
	if workers < 1 {
		workers = 1
	}
	jobs := make(chan paramSet)
	results := make(chan scenarioResult)
	errs := make(chan error, len(sets))
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for params := range jobs {
				res, err := runScenario(base, params, steps)
				if err != nil {
					errs <- err
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
	close(errs)
	if err := <-errs; err != nil {
		return nil, err
	}

	sort.Slice(all, func(i, j int) bool {
		a, b := all[i], all[j]
		if a.courant != b.courant {
			return a.courant < b.courant
		}
		if a.params.nodes != b.params.nodes {
			return a.params.nodes < b.params.nodes
		}
		return a.params.tps < b.params.tps
	})
	return all, nil
}

// stabilityLimit returns the largest Courant number among stable runs that is
// below every diverged run, or 0 when the smallest run already diverged.
func stabilityLimit(results []scenarioResult) float64 {
	limit := 0.0
	for _, r := range results {
		if r.diverged {
			break
		}
		limit = r.courant
	}
	return limit
}
