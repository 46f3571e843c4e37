package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/rifx/errs"
)

type parseConfig struct {
	strict  bool
	workers int
	applied []string
}

func withStrict(strict bool) Option[*parseConfig] {
	return NoError("WithStrict", func(c *parseConfig) {
		c.strict = strict
		c.applied = append(c.applied, "strict")
	})
}

func withWorkers(n int) Option[*parseConfig] {
	return New("WithWorkers", func(c *parseConfig) error {
		if n < 0 {
			return errors.New("workers cannot be negative")
		}
		c.workers = n
		c.applied = append(c.applied, "workers")

		return nil
	})
}

func TestApply(t *testing.T) {
	t.Run("applies in order", func(t *testing.T) {
		cfg := &parseConfig{}
		require.NoError(t, Apply(cfg, withWorkers(4), withStrict(true), withWorkers(8)))
		require.True(t, cfg.strict)
		require.Equal(t, 8, cfg.workers)
		require.Equal(t, []string{"workers", "strict", "workers"}, cfg.applied)
	})

	t.Run("stops at the first rejected option", func(t *testing.T) {
		cfg := &parseConfig{}
		err := Apply(cfg, withWorkers(2), withWorkers(-1), withStrict(true))
		require.ErrorIs(t, err, errs.ErrInvalidOption)
		require.EqualError(t, err, "invalid option WithWorkers: workers cannot be negative")
		require.Equal(t, 2, cfg.workers)
		require.False(t, cfg.strict)
	})

	t.Run("no options", func(t *testing.T) {
		cfg := &parseConfig{}
		require.NoError(t, Apply(cfg))
		require.Empty(t, cfg.applied)
	})

	t.Run("nil option is skipped", func(t *testing.T) {
		cfg := &parseConfig{}
		require.NoError(t, Apply(cfg, nil, withStrict(true)))
		require.True(t, cfg.strict)
	})
}

func TestName(t *testing.T) {
	require.Equal(t, "WithStrict", withStrict(true).Name())
	require.Equal(t, "WithWorkers", withWorkers(1).Name())

	var n int
	require.NoError(t, Apply(&n, NoError("WithAnswer", func(p *int) { *p = 42 })))
	require.Equal(t, 42, n)
}
