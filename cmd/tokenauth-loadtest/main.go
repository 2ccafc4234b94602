// Command tokenauth-loadtest measures refresh session throughput against
// Redis, or an embedded miniredis when no address is given.
//
// It runs four phases over the same seeded sessions: create, lookup,
// rotate and revoke. Rotation follows each chain so every op presents the
// current id.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MrEthical07/tokenAuth/refresh"
	"github.com/MrEthical07/tokenAuth/session"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

type options struct {
	sessions  int
	workers   int
	ops       int
	redisAddr string
	prefix    string
	ttl       time.Duration
}

func parseFlags(args []string) (options, error) {
	var o options
	fs := flag.NewFlagSet("tokenauth-loadtest", flag.ContinueOnError)
	fs.IntVar(&o.sessions, "sessions", 50000, "refresh sessions to seed")
	fs.IntVar(&o.workers, "concurrency", 256, "concurrent workers")
	fs.IntVar(&o.ops, "ops", 200000, "operations per lookup/rotate phase")
	fs.StringVar(&o.redisAddr, "redis-addr", os.Getenv("REDIS_ADDR"), "redis address; empty starts miniredis")
	fs.StringVar(&o.prefix, "prefix", "lt_refresh:", "refresh key prefix")
	fs.DurationVar(&o.ttl, "ttl", 24*time.Hour, "refresh session lifetime")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if o.sessions <= 0 || o.workers <= 0 || o.ops <= 0 {
		return o, errors.New("sessions, concurrency and ops must be > 0")
	}
	return o, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := run(context.Background(), opts); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options) error {
	client, closeClient, err := dial(opts.redisAddr)
	if err != nil {
		return err
	}
	defer closeClient()

	mgr, err := refresh.NewManager(session.NewStore(client, opts.prefix, opts.ttl), opts.ttl, time.Now)
	if err != nil {
		return fmt.Errorf("refresh manager: %w", err)
	}

	ids := make([]atomic.Pointer[string], opts.sessions)
	var seq atomic.Int64
	results := []result{
		measure("create", opts.sessions, opts.workers, func(*rand.Rand) error {
			i := int(seq.Add(1) - 1)
			id, err := mgr.CreateToken(ctx, fmt.Sprintf("user-%d", i%1000))
			if err == nil {
				ids[i].Store(&id)
			}
			return err
		}),
	}

	chains := newChains(ids)
	if len(chains.ids) == 0 {
		return fmt.Errorf("no sessions seeded: %s", results[0])
	}
	results = append(results,
		measure("lookup", opts.ops, opts.workers, func(r *rand.Rand) error {
			_, err := mgr.LiveToken(ctx, chains.peek(r))
			return err
		}),
		measure("rotate", opts.ops, opts.workers, func(r *rand.Rand) error {
			return chains.advance(r, func(id string) (string, error) {
				return mgr.RotateToken(ctx, id)
			})
		}),
	)

	seq.Store(0)
	results = append(results, measure("revoke", len(chains.ids), opts.workers, func(*rand.Rand) error {
		return mgr.RemoveToken(ctx, chains.ids[seq.Add(1)-1])
	}))

	for _, res := range results {
		fmt.Println(res)
	}
	return nil
}

func dial(addr string) (redis.UniversalClient, func(), error) {
	if addr != "" {
		client := redis.NewUniversalClient(&redis.UniversalOptions{Addrs: []string{addr}})
		fmt.Printf("redis %s\n", addr)
		return client, func() { _ = client.Close() }, nil
	}
	mr, err := miniredis.Run()
	if err != nil {
		return nil, nil, fmt.Errorf("start miniredis: %w", err)
	}
	client := redis.NewUniversalClient(&redis.UniversalOptions{Addrs: []string{mr.Addr()}})
	fmt.Printf("miniredis %s\n", mr.Addr())
	return client, func() {
		_ = client.Close()
		mr.Close()
	}, nil
}

// chains holds the current id of each seeded session. A rotation holds the
// chain's lock so no worker presents an id that is being replaced.
type chains struct {
	mu  []sync.Mutex
	ids []string
}

func newChains(seeded []atomic.Pointer[string]) *chains {
	c := &chains{}
	for i := range seeded {
		if id := seeded[i].Load(); id != nil {
			c.ids = append(c.ids, *id)
		}
	}
	c.mu = make([]sync.Mutex, len(c.ids))
	return c
}

func (c *chains) peek(r *rand.Rand) string {
	i := r.IntN(len(c.ids))
	c.mu[i].Lock()
	defer c.mu[i].Unlock()
	return c.ids[i]
}

func (c *chains) advance(r *rand.Rand, rotate func(string) (string, error)) error {
	i := r.IntN(len(c.ids))
	c.mu[i].Lock()
	defer c.mu[i].Unlock()
	next, err := rotate(c.ids[i])
	if err != nil {
		return err
	}
	c.ids[i] = next
	return nil
}

type result struct {
	name          string
	ops, failures int
	elapsed       time.Duration
	p50, p95, p99 time.Duration
}

func (r result) String() string {
	rate := 0.0
	if r.elapsed > 0 {
		rate = float64(r.ops) / r.elapsed.Seconds()
	}
	return fmt.Sprintf("%-6s ops=%d failures=%d elapsed=%s ops/sec=%.0f p50=%s p95=%s p99=%s",
		r.name, r.ops, r.failures, r.elapsed.Round(time.Millisecond), rate,
		r.p50.Round(time.Microsecond), r.p95.Round(time.Microsecond), r.p99.Round(time.Microsecond))
}

// measure runs op n times across workers. Each worker keeps its own samples
// and they are merged once the phase ends.
func measure(name string, n, workers int, op func(*rand.Rand) error) result {
	var (
		next     atomic.Int64
		failures atomic.Int64
		wg       sync.WaitGroup
	)
	samples := make([][]time.Duration, workers)

	start := time.Now()
	for w := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r := rand.New(rand.NewPCG(uint64(start.UnixNano()), uint64(w)))
			for next.Add(1) <= int64(n) {
				t0 := time.Now()
				if err := op(r); err != nil {
					failures.Add(1)
				}
				samples[w] = append(samples[w], time.Since(t0))
			}
		}()
	}
	wg.Wait()

	all := slices.Concat(samples...)
	slices.Sort(all)
	return result{
		name:     name,
		ops:      len(all),
		failures: int(failures.Load()),
		elapsed:  time.Since(start),
		p50:      percentile(all, 50),
		p95:      percentile(all, 95),
		p99:      percentile(all, 99),
	}
}

// percentile expects sorted input.
func percentile(sorted []time.Duration, p int) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	p = min(max(p, 0), 100)
	return sorted[(len(sorted)-1)*p/100]
}
