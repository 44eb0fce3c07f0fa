package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"wavefloat/internal/core"
	"wavefloat/internal/sims/floating"
)

type kvList []string

func (l *kvList) String() string {
	return strings.Join(*l, ",")
}

func (l *kvList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

// overrides turns repeated key=value flags into a map.
func (l kvList) overrides() (map[string]string, error) {
	out := make(map[string]string, len(l))
	for _, kv := range l {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("override %q is not key=value", kv)
		}
		out[strings.TrimSpace(key)] = value
	}
	return out, nil
}

type scheduledWave struct {
	tick uint64
	zone floating.Interaction
}

// parseWave reads zone@tick, e.g. "ne@120". A bare zone fires on tick 0.
func parseWave(s string) (scheduledWave, error) {
	zoneText, tickText, hasTick := strings.Cut(s, "@")
	zone, err := floating.ParseInteraction(zoneText)
	if err != nil {
		return scheduledWave{}, err
	}
	var tick uint64
	if hasTick {
		tick, err = strconv.ParseUint(strings.TrimSpace(tickText), 10, 64)
		if err != nil {
			return scheduledWave{}, fmt.Errorf("wave %q: bad tick: %w", s, err)
		}
	}
	return scheduledWave{tick: tick, zone: zone}, nil
}

// waveSchedule fires fixed waves at their ticks plus optional random waves
// every autoplay ticks.
type waveSchedule struct {
	waves    []scheduledWave
	next     int
	autoplay uint64
	rng      *core.RNG
}

func newWaveSchedule(waves []string, autoplay int, seed int64) (*waveSchedule, error) {
	s := &waveSchedule{rng: core.NewRNG(seed)}
	if autoplay > 0 {
		s.autoplay = uint64(autoplay)
	}
	for _, text := range waves {
		w, err := parseWave(text)
		if err != nil {
			return nil, err
		}
		s.waves = append(s.waves, w)
	}
	sort.SliceStable(s.waves, func(i, j int) bool { return s.waves[i].tick < s.waves[j].tick })
	return s, nil
}

// due returns the zones to disturb before running tick. Calls must use
// increasing ticks.
func (s *waveSchedule) due(tick uint64) []floating.Interaction {
	var out []floating.Interaction
	for s.next < len(s.waves) && s.waves[s.next].tick <= tick {
		out = append(out, s.waves[s.next].zone)
		s.next++
	}
	if s.autoplay > 0 && tick%s.autoplay == 0 {
		zones := floating.Interactions()
		out = append(out, zones[s.rng.IntN(len(zones))])
	}
	return out
}

func (s *waveSchedule) reset() { s.next = 0 }
