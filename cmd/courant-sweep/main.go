// Command courant-sweep steps the water surface across grid resolutions,
// tick rates and wave speeds, and reports which combinations stay bounded.
package main

import (
	"flag"
	"fmt"
	"log"
	"runtime"
	"strconv"
	"strings"
	"time"

	"wavefloat/internal/sims/floating"
)

func main() {
	steps := flag.Int("steps", 600, "ticks to simulate per scenario")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	scene := flag.String("scene", "beachball", "base scene")
	nodesFlag := flag.String("nodes", "25,50,100,200", "comma separated grid sizes")
	tpsFlag := flag.String("tps", "30,60,120", "comma separated tick rates")
	speedFlag := flag.String("speeds", "0.25,0.5,1,2,4", "comma separated wave speeds")
	flag.Parse()

	base, ok := floating.Scenes[*scene]
	if !ok {
		log.Fatalf("courant-sweep: unknown scene %q", *scene)
	}
	nodes, err := parseInts(*nodesFlag)
	if err != nil {
		log.Fatalf("courant-sweep: -nodes: %v", err)
	}
	tps, err := parseInts(*tpsFlag)
	if err != nil {
		log.Fatalf("courant-sweep: -tps: %v", err)
	}
	speeds, err := parseFloats(*speedFlag)
	if err != nil {
		log.Fatalf("courant-sweep: -speeds: %v", err)
	}

	sets := grid(nodes, tps, speeds)
	fmt.Printf("Sweeping %d parameter sets (%d workers, %d steps)\n", len(sets), *workers, *steps)

	start := time.Now()
	results, err := sweep(base(), sets, *steps, *workers)
	if err != nil {
		log.Fatalf("courant-sweep: %v", err)
	}
	elapsed := time.Since(start)

	for _, res := range results {
		if res.diverged {
			fmt.Printf("courant=%.3f DIVERGED at tick %d %s\n", res.courant, res.divergedAt, res.params)
			continue
		}
		fmt.Printf("courant=%.3f peak=%.4f bodyZ=%.3f %s\n", res.courant, res.peak, res.bodyZ, res.params)
	}
	fmt.Printf("\nLargest stable Courant number: %.3f (elapsed %s)\n", stabilityLimit(results), elapsed.Round(time.Millisecond))
}

func parseInts(s string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func parseFloats(s string) ([]float64, error) {
	var out []float64
	for _, part := range strings.Split(s, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
