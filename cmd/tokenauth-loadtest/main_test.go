package main

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentile(t *testing.T) {
	sorted := []time.Duration{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	assert.Equal(t, time.Duration(5), percentile(sorted, 50))
	assert.Equal(t, time.Duration(10), percentile(sorted, 100))
	assert.Equal(t, time.Duration(10), percentile(sorted, 150))
	assert.Equal(t, time.Duration(1), percentile(sorted, -1))
	assert.Zero(t, percentile(nil, 50))
}

func TestMeasureCountsOpsAndFailures(t *testing.T) {
	calls := 0
	res := measure("x", 100, 1, func(*rand.Rand) error {
		calls++
		if calls%10 == 0 {
			return errors.New("boom")
		}
		return nil
	})
	assert.Equal(t, 100, res.ops)
	assert.Equal(t, 10, res.failures)
	assert.Contains(t, res.String(), "failures=10")
}

func TestParseFlagsRejectsNonPositive(t *testing.T) {
	_, err := parseFlags([]string{"-ops", "0"})
	assert.Error(t, err)

	opts, err := parseFlags([]string{"-sessions", "5", "-redis-addr", ""})
	require.NoError(t, err)
	assert.Equal(t, 5, opts.sessions)
}

func TestRunAgainstMiniredis(t *testing.T) {
	err := run(context.Background(), options{
		sessions: 20,
		workers:  4,
		ops:      50,
		prefix:   "lt:",
		ttl:      time.Hour,
	})
	require.NoError(t, err)
}
