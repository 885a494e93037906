// Command plybench times the PLY load paths against a gzipped input
// file: through-disk (decompress to a sibling file, then load) versus
// through-memory (decompress and decode without touching disk).
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/JTvD/plygo"
	"github.com/JTvD/plygo/blobstore"
	"github.com/JTvD/plygo/compress"
)

func main() {
	var (
		file     = flag.String("file", "example_data/example_pointcloud.ply.gz", "gzipped PLY file to load")
		repeats  = flag.Int("n", 10, "repetitions per load path")
		parallel = flag.Int("parallel", 1, "concurrent loads per repetition batch")
		rps      = flag.Float64("rps", 0, "pace loads at this rate (0 = unpaced)")
	)
	flag.Parse()

	logger := plygo.NewTextLogger(slog.LevelInfo)
	ctx := context.Background()

	benches := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"disk", func(ctx context.Context) error { return loadThroughDisk(ctx, *file) }},
		{"memory", func(ctx context.Context) error { return loadThroughMemory(ctx, *file) }},
	}

	for _, b := range benches {
		mean, stddev, err := run(ctx, b.fn, *repeats, *parallel, *rps)
		if err != nil {
			logger.Error("benchmark failed", "path", b.name, "error", err)
			os.Exit(1)
		}
		fmt.Printf("plygo %s: avg=%.3fs, std=%.3fs over %d runs\n",
			b.name, mean.Seconds(), stddev.Seconds(), *repeats)
	}
}

// run times fn n times, parallel at a time, optionally paced, and
// returns the mean and standard deviation of the wall times.
func run(ctx context.Context, fn func(context.Context) error, n, parallel int, rps float64) (time.Duration, time.Duration, error) {
	limiter := rate.NewLimiter(rate.Inf, 1)
	if rps > 0 {
		limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}

	var (
		mu        sync.Mutex
		durations []time.Duration
	)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			if err := limiter.Wait(ctx); err != nil {
				return err
			}
			start := time.Now()
			if err := fn(ctx); err != nil {
				return err
			}
			elapsed := time.Since(start)

			mu.Lock()
			durations = append(durations, elapsed)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, 0, err
	}

	mean := time.Duration(0)
	for _, d := range durations {
		mean += d
	}
	mean /= time.Duration(len(durations))

	var variance float64
	for _, d := range durations {
		diff := float64(d - mean)
		variance += diff * diff
	}
	stddev := time.Duration(math.Sqrt(variance / float64(len(durations))))
	return mean, stddev, nil
}

// loadThroughDisk mirrors the legacy pipeline: gunzip to a sibling
// file, load the uncompressed copy, remove it.
func loadThroughDisk(ctx context.Context, file string) error {
	raw, err := os.ReadFile(file)
	if err != nil {
		return err
	}
	data, err := (compress.Gzip{}).Decompress(raw)
	if err != nil {
		return err
	}

	dir := filepath.Dir(file)
	name := strings.TrimSuffix(filepath.Base(file), ".gz")
	store := blobstore.NewLocalStore(dir)
	if err := store.Put(ctx, name, data); err != nil {
		return err
	}
	defer os.Remove(filepath.Join(dir, name))

	_, _, err = plygo.Load(ctx, store, name)
	return err
}

// loadThroughMemory decompresses and decodes without an intermediate
// file.
func loadThroughMemory(ctx context.Context, file string) error {
	store := blobstore.NewLocalStore(filepath.Dir(file))
	_, _, err := plygo.Load(ctx, store, filepath.Base(file))
	return err
}
