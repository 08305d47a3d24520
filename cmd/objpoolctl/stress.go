package main

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/joshuapare/objpool/pkg/types"
	"github.com/joshuapare/objpool/pool"
	"github.com/joshuapare/objpool/pool/poolmetrics"
	"github.com/joshuapare/objpool/pool/printer"
)

var (
	stressOps         int
	stressWorkers     int
	stressSeed        uint64
	stressCapacity    int
	stressMaxSize     int
	stressMetricsFile string
)

func init() {
	cmd := newStressCmd()
	addPoolFlags(cmd)
	cmd.Flags().IntVar(&stressOps, "ops", 100000, "Operations per worker")
	cmd.Flags().IntVar(&stressWorkers, "workers", 1, "Concurrent workers sharing the pool")
	cmd.Flags().Uint64Var(&stressSeed, "seed", 1, "Random seed")
	cmd.Flags().IntVar(&stressCapacity, "capacity", pool.DefaultCapacity, "Arena capacity in bytes")
	cmd.Flags().IntVar(&stressMaxSize, "max-size", 0, "Largest block to insert (default capacity/64)")
	cmd.Flags().StringVar(&stressMetricsFile, "metrics-file", "", "Write final Prometheus metrics to this file")
	rootCmd.AddCommand(cmd)
}

func newStressCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stress",
		Short: "Run a random insert/drop workload",
		Long: `The stress command hammers a pool with random inserts, reference changes
and compactions, then prints the pool's statistics. Running out of space is
an expected outcome; any other error fails the command.

Example:
  objpoolctl stress
  objpoolctl stress --ops 1000000 --workers 4 --check
  objpoolctl stress --metrics-file pool.prom --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStress()
		},
	}
	return cmd
}

type stressReport struct {
	Ops       int           `json:"ops"`
	Workers   int           `json:"workers"`
	Seed      uint64        `json:"seed"`
	ElapsedMS int64         `json:"elapsed_ms"`
	NoSpace   uint64        `json:"no_space"`
	Metrics   types.Metrics `json:"metrics"`
}

func runStress() error {
	backing, err := poolBacking()
	if err != nil {
		return err
	}
	maxSize := stressMaxSize
	if maxSize <= 0 {
		maxSize = max(stressCapacity/64, 1)
	}
	if maxSize >= stressCapacity {
		return fmt.Errorf("--max-size %d must be below --capacity %d", maxSize, stressCapacity)
	}
	if stressWorkers < 1 {
		return fmt.Errorf("--workers must be at least 1")
	}

	sp := pool.NewSafe(pool.Options{
		Capacity:        stressCapacity,
		Backing:         backing,
		CheckInvariants: checkInv,
	})
	if err := sp.Init(); err != nil {
		return err
	}
	defer sp.Destroy()

	printVerbose("Pool: capacity %d, backing %s, %d worker(s), seed %d\n",
		stressCapacity, backing, stressWorkers, stressSeed)

	start := time.Now()
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		noSpace uint64
		errs    []error
	)
	for w := range stressWorkers {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			full, err := stressWorker(sp, rand.New(rand.NewPCG(stressSeed, uint64(w))), stressOps, maxSize)
			mu.Lock()
			noSpace += full
			if err != nil {
				errs = append(errs, fmt.Errorf("worker %d: %w", w, err))
			}
			mu.Unlock()
		}(w)
	}
	wg.Wait()
	elapsed := time.Since(start)

	if err := errors.Join(errs...); err != nil {
		return err
	}
	if err := sp.Validate(); err != nil {
		return fmt.Errorf("pool invalid after stress run: %w", err)
	}

	if stressMetricsFile != "" {
		reg := prometheus.NewRegistry()
		reg.MustRegister(poolmetrics.NewCollector(sp, "stress"))
		if err := prometheus.WriteToTextfile(stressMetricsFile, reg); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
		printVerbose("Metrics written to %s\n", stressMetricsFile)
	}

	m := sp.Metrics()
	if jsonOut {
		return printJSON(stressReport{
			Ops:       stressOps * stressWorkers,
			Workers:   stressWorkers,
			Seed:      stressSeed,
			ElapsedMS: elapsed.Milliseconds(),
			NoSpace:   noSpace,
			Metrics:   m,
		})
	}
	if quiet {
		return nil
	}

	total := stressOps * stressWorkers
	mp := message.NewPrinter(language.English)
	mp.Fprintf(os.Stdout, "%d operations in %v (%.0f ops/s), %d inserts refused for space\n\n",
		total, elapsed.Round(time.Millisecond), float64(total)/elapsed.Seconds(), noSpace)
	return printer.New(os.Stdout, printer.Options{Language: language.English}).PrintMetrics(m)
}

// stressWorker runs ops random operations against sp and returns how many
// inserts failed with ErrNoSpace.
func stressWorker(sp *pool.SafePool, rng *rand.Rand, ops, maxSize int) (uint64, error) {
	var (
		held    []types.Handle // one entry per reference this worker owns
		noSpace uint64
	)
	take := func() types.Handle {
		i := rng.IntN(len(held))
		h := held[i]
		held[i] = held[len(held)-1]
		held = held[:len(held)-1]
		return h
	}

	for range ops {
		switch n := rng.IntN(20); {
		case n < 9 || len(held) == 0:
			h, err := sp.Insert(1 + rng.IntN(maxSize))
			switch {
			case errors.Is(err, pool.ErrNoSpace):
				noSpace++
			case err != nil:
				return noSpace, err
			default:
				held = append(held, h)
			}
		case n < 17:
			sp.DropReference(take())
		case n < 19:
			h := held[rng.IntN(len(held))]
			sp.AddReference(h)
			held = append(held, h)
		default:
			sp.Compact()
		}
	}
	return noSpace, nil
}
