// Command floatrun runs a floating-body scene without a window. It can print
// body traces, save a shaded PNG of the final surface, or stream snapshots to
// websocket clients.
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"time"

	"wavefloat/internal/core"
	"wavefloat/internal/render"
	"wavefloat/internal/sims/floating"
	"wavefloat/internal/stream"
	"wavefloat/internal/watch"
)

type options struct {
	scene    string
	config   string
	steps    int
	dt       float64
	trace    int
	png      string
	scale    int
	serve    string
	watch    bool
	autoplay int
	seed     int64
	waves    kvList
	sets     kvList
}

func main() {
	var opts options
	flag.StringVar(&opts.scene, "scene", "beachball", "registered scene ("+fmt.Sprint(core.Names())+")")
	flag.StringVar(&opts.config, "config", "", "YAML scene file (overrides -scene)")
	flag.IntVar(&opts.steps, "steps", 600, "ticks to simulate (ignored with -serve)")
	flag.Float64Var(&opts.dt, "dt", 0, "time step in seconds (0 uses 1/tps)")
	flag.IntVar(&opts.trace, "trace", 0, "print body state every N ticks as CSV (0 disables)")
	flag.StringVar(&opts.png, "png", "", "write a shaded PNG of the final surface to this path")
	flag.IntVar(&opts.scale, "scale", 4, "pixels per node for -png")
	flag.StringVar(&opts.serve, "serve", "", "stream snapshots over websocket on this address, e.g. :8080")
	flag.BoolVar(&opts.watch, "watch", false, "reload -config when it changes (with -serve)")
	flag.IntVar(&opts.autoplay, "autoplay", 0, "disturb a random zone every N ticks (0 disables)")
	flag.Int64Var(&opts.seed, "seed", 1, "seed for -autoplay")
	flag.Var(&opts.waves, "wave", "scheduled disturbance zone@tick, e.g. ne@120 (repeatable)")
	flag.Var(&opts.sets, "set", "config override in key=value form (repeatable)")
	flag.Parse()

	cfg, err := loadConfig(opts)
	if err != nil {
		log.Fatalf("floatrun: %v", err)
	}
	world, err := floating.New(cfg)
	if err != nil {
		log.Fatalf("floatrun: %v", err)
	}
	schedule, err := newWaveSchedule(opts.waves, opts.autoplay, opts.seed)
	if err != nil {
		log.Fatalf("floatrun: %v", err)
	}
	dt := opts.dt
	if dt <= 0 {
		dt = 1 / float64(cfg.TPS)
	}
	if c := world.Field().Courant(dt); c > 1 {
		log.Printf("floatrun: warning: Courant number %.3f exceeds 1, the surface will diverge", c)
	}

	if opts.serve != "" {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := serve(ctx, opts, world, schedule, dt); err != nil {
			log.Fatalf("floatrun: %v", err)
		}
		return
	}

	start := time.Now()
	if err := runBatch(os.Stdout, world, schedule, opts.steps, dt, opts.trace); err != nil {
		log.Fatalf("floatrun: %v", err)
	}
	peak := peakDisplacement(world.Field().Heights())
	log.Printf("floatrun: %s: %d ticks (%.2fs simulated) in %s, peak displacement %.4f m",
		world.Name(), world.Ticks(), world.Time(), time.Since(start).Round(time.Millisecond), peak)
	for i, b := range world.Bodies() {
		p := b.Position()
		log.Printf("floatrun: body %d (%s) at (%.3f, %.3f, %.3f)", i, b.Kind(), p.X(), p.Y(), p.Z())
	}

	if opts.png != "" {
		canvas := render.NewCanvas(world.Field().Rows(), world.Field().Columns(), opts.scale, render.DefaultPalette())
		if err := canvas.Paint(world.Field(), world.Bodies()); err != nil {
			log.Fatalf("floatrun: %v", err)
		}
		if err := render.SavePNG(opts.png, canvas.Image()); err != nil {
			log.Fatalf("floatrun: %v", err)
		}
		log.Printf("floatrun: wrote %s", opts.png)
	}
}

func loadConfig(opts options) (floating.Config, error) {
	var (
		cfg floating.Config
		err error
	)
	if opts.config != "" {
		cfg, err = floating.LoadConfig(opts.config)
		if err != nil {
			return cfg, err
		}
	} else {
		base, ok := floating.Scenes[opts.scene]
		if !ok {
			return cfg, fmt.Errorf("unknown scene %q", opts.scene)
		}
		cfg = base()
	}
	kv, err := opts.sets.overrides()
	if err != nil {
		return cfg, err
	}
	return floating.FromMap(cfg, kv)
}

// runBatch advances world for steps ticks, writing a CSV trace of every body
// each traceEvery ticks when traceEvery > 0.
func runBatch(out io.Writer, world *floating.World, schedule *waveSchedule, steps int, dt float64, traceEvery int) error {
	var tw *csv.Writer
	if traceEvery > 0 {
		tw = csv.NewWriter(out)
		if err := tw.Write([]string{"tick", "time", "body", "x", "y", "z", "vx", "vy", "vz"}); err != nil {
			return err
		}
	}
	for i := 0; i < steps; i++ {
		for _, zone := range schedule.due(world.Ticks()) {
			if err := world.Interact(zone); err != nil {
				return err
			}
		}
		world.Step(dt)
		if tw != nil && world.Ticks()%uint64(traceEvery) == 0 {
			if err := writeTrace(tw, world); err != nil {
				return err
			}
		}
	}
	if tw != nil {
		tw.Flush()
		return tw.Error()
	}
	return nil
}

func writeTrace(tw *csv.Writer, world *floating.World) error {
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', 6, 64) }
	for i, b := range world.Bodies() {
		p, v := b.Position(), b.Velocity()
		rec := []string{
			strconv.FormatUint(world.Ticks(), 10), f(world.Time()), strconv.Itoa(i),
			f(p.X()), f(p.Y()), f(p.Z()), f(v.X()), f(v.Y()), f(v.Z()),
		}
		if err := tw.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

func peakDisplacement(heights []float64) float64 {
	peak := 0.0
	for _, h := range heights {
		peak = math.Max(peak, math.Abs(h))
	}
	return peak
}

// serve steps the world in real time and broadcasts a snapshot after every
// tick. Client requests and reloads are applied between ticks on this
// goroutine only.
func serve(ctx context.Context, opts options, world *floating.World, schedule *waveSchedule, dt float64) error {
	hub := stream.NewHub(32)
	mux := http.NewServeMux()
	mux.Handle("/ws", hub)
	srv := &http.Server{Addr: opts.serve, Handler: mux}

	var reloads <-chan floating.Config
	if opts.watch {
		if opts.config == "" {
			return errors.New("-watch requires -config")
		}
		w, err := watch.New(opts.config)
		if err != nil {
			return err
		}
		defer w.Close()
		reloads = watch.Reload(w, func(string) (floating.Config, error) { return loadConfig(opts) },
			func(err error) { log.Printf("floatrun: reload: %v", err) })
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("floatrun: streaming %s on ws://%s/ws", world.Name(), opts.serve)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	pace := core.NewFixedStep(int(math.Round(1 / dt)))
	ticker := time.NewTicker(pace.Interval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			shutdown, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = hub.Close()
			return srv.Shutdown(shutdown)
		case err := <-errCh:
			_ = hub.Close()
			return err
		case cfg := <-reloads:
			next, err := floating.New(cfg)
			if err != nil {
				log.Printf("floatrun: reload: %v", err)
				continue
			}
			world = next
			schedule.reset()
			log.Printf("floatrun: reloaded %s", opts.config)
		case req := <-hub.Requests():
			switch req.Type {
			case stream.TypeInteract:
				if err := world.Interact(req.Zone); err != nil {
					log.Printf("floatrun: interact: %v", err)
				}
			case stream.TypeReset:
				world.Reset()
				schedule.reset()
			}
		case <-ticker.C:
			for n := pace.Due(); n > 0; n-- {
				for _, zone := range schedule.due(world.Ticks()) {
					_ = world.Interact(zone)
				}
				world.Step(dt)
			}
			if err := hub.Broadcast(world.Snapshot(true)); err != nil {
				return err
			}
		}
	}
}
