package taxconfig

import (
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryResolve(t *testing.T) {
	reg, err := NewRegistry(validConfig(2024))
	require.NoError(t, err)

	res, err := reg.Resolve(2024, Profile{Status: StatusMarried, Dependents: 2, HasNPWP: true})
	require.NoError(t, err)
	assert.Equal(t, "K/2", res.Category)
	assert.Equal(t, reg.years[2024].PTKP["K/2"], res.PTKP)
	assert.Len(t, res.Brackets, 3)
	assert.True(t, res.Brackets[2].Unbounded)

	_, err = reg.Resolve(1999, Profile{Status: StatusSingle})
	assert.ErrorIs(t, err, ErrUnknownTaxYear)

	_, err = reg.Resolve(2024, Profile{Status: StatusSingle, Dependents: -2})
	assert.ErrorIs(t, err, ErrInvalidProfile)
}

func TestRegistryRejectsInvalidConfig(t *testing.T) {
	bad := validConfig(2024)
	bad.Brackets = bad.Brackets[:2]
	_, err := NewRegistry(validConfig(2023), bad)
	assert.ErrorIs(t, err, ErrInvalidBracketConfig)
}

func TestRegistryCopiesAreIsolated(t *testing.T) {
	cfg := validConfig(2024)
	reg, err := NewRegistry(cfg)
	require.NoError(t, err)

	cfg.PTKP["TK/0"] = 1
	cfg.Brackets[0].Rate = decimal.RequireFromString("0.9")

	got, err := reg.Config(2024)
	require.NoError(t, err)
	assert.EqualValues(t, 54_000_000, got.PTKP["TK/0"])
	assert.True(t, got.Brackets[0].Rate.Equal(decimal.RequireFromString("0.05")))

	got.PTKP["TK/0"] = 2
	again, _ := reg.Config(2024)
	assert.EqualValues(t, 54_000_000, again.PTKP["TK/0"])
}

func TestRegistryYears(t *testing.T) {
	reg, err := NewRegistry(validConfig(2025), validConfig(2023), validConfig(2024))
	require.NoError(t, err)
	assert.Equal(t, []int{2023, 2024, 2025}, reg.Years())
}

func TestStorePublish(t *testing.T) {
	reg, err := NewRegistry(validConfig(2024))
	require.NoError(t, err)
	store := NewStore(reg)

	before := store.Current()

	next := validConfig(2026)
	next.PPNRate = decimal.RequireFromString("0.12")
	published, err := store.Publish(next)
	require.NoError(t, err)

	assert.Same(t, published, store.Current())
	assert.Equal(t, []int{2024}, before.Years(), "old snapshot must not change")
	assert.Equal(t, []int{2024, 2026}, store.Current().Years())

	cfg, err := store.Config(2026)
	require.NoError(t, err)
	assert.True(t, cfg.PPNRate.Equal(decimal.RequireFromString("0.12")))

	invalid := validConfig(2027)
	invalid.Brackets = nil
	_, err = store.Publish(invalid)
	assert.ErrorIs(t, err, ErrInvalidBracketConfig)
	assert.Same(t, published, store.Current())
}

func TestStoreConcurrentPublish(t *testing.T) {
	reg, err := NewRegistry(validConfig(2000))
	require.NoError(t, err)
	store := NewStore(reg)

	var wg sync.WaitGroup
	for y := 2001; y <= 2020; y++ {
		wg.Add(1)
		go func(year int) {
			defer wg.Done()
			_, err := store.Publish(validConfig(year))
			assert.NoError(t, err)
			_, _ = store.Resolve(2000, Profile{Status: StatusSingle})
		}(y)
	}
	wg.Wait()

	assert.Len(t, store.Current().Years(), 21)
}
