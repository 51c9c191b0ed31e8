package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"officebot/configs"
	"officebot/internal/model"
	"officebot/internal/taxconfig"
	"officebot/internal/websocket"
	"officebot/pkg/formatter"
	"officebot/pkg/money"
)

func newStore(t *testing.T) *taxconfig.Store {
	t.Helper()
	doc, err := taxconfig.ParseDocument(configs.TaxYears)
	require.NoError(t, err)
	reg, err := taxconfig.LoadRegistry(doc)
	require.NoError(t, err)
	return taxconfig.NewStore(reg)
}

type fakeLogRepo struct {
	mu      sync.Mutex
	entries []model.CalculationLog
	err     error
}

func (f *fakeLogRepo) Log(_ context.Context, entry *model.CalculationLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeLogRepo) List(_ context.Context, page, limit int) ([]model.CalculationLog, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, 0, f.err
	}
	start := (page - 1) * limit
	if start > len(f.entries) {
		start = len(f.entries)
	}
	end := min(start+limit, len(f.entries))
	return f.entries[start:end], int64(len(f.entries)), nil
}

type fakeTaxYearRepo struct {
	rows map[int]model.TaxYear
	err  error
}

func (f *fakeTaxYearRepo) Upsert(_ context.Context, row *model.TaxYear) error {
	if f.err != nil {
		return f.err
	}
	if f.rows == nil {
		f.rows = map[int]model.TaxYear{}
	}
	f.rows[row.Year] = *row
	return nil
}

func (f *fakeTaxYearRepo) FindByYear(_ context.Context, year int) (*model.TaxYear, error) {
	row, ok := f.rows[year]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}

func (f *fakeTaxYearRepo) List(_ context.Context) ([]model.TaxYear, error) {
	out := make([]model.TaxYear, 0, len(f.rows))
	for _, r := range f.rows {
		out = append(out, r)
	}
	return out, f.err
}

type fakeTx struct {
	calls     int
	commitErr error
}

func (f *fakeTx) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	f.calls++
	if err := fn(ctx); err != nil {
		return err
	}
	return f.commitErr
}

type fakeEvents struct {
	events []websocket.Event
	err    error
}

func (f *fakeEvents) Publish(ev websocket.Event) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, ev)
	return nil
}

func TestAmountUnmarshal(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{`10000000`, 10_000_000},
		{`"Rp 10.000.000"`, 10_000_000},
		{`"10jt"`, 10_000_000},
		{`"1,5M"`, 1_500_000_000},
		{`1500.5`, 1501},
		{`null`, 0},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			var a Amount
			require.NoError(t, json.Unmarshal([]byte(tc.in), &a))
			assert.Equal(t, tc.want, a.Int64())
		})
	}

	var a Amount
	assert.ErrorIs(t, json.Unmarshal([]byte(`"sepuluh"`), &a), formatter.ErrInvalidAmount)
	assert.ErrorIs(t, json.Unmarshal([]byte(`true`), &a), formatter.ErrInvalidAmount)
	assert.ErrorIs(t, json.Unmarshal([]byte(`1e30`), &a), formatter.ErrInvalidAmount)
	assert.ErrorIs(t, json.Unmarshal([]byte(`"-2000 triliun"`), &a), formatter.ErrInvalidAmount)
	require.NoError(t, json.Unmarshal([]byte(`"1000 triliun"`), &a))
	assert.Equal(t, money.MaxAmount, a.Int64())
}

func TestProfileRequest(t *testing.T) {
	no := false

	p, err := ProfileRequest{}.Profile()
	require.NoError(t, err)
	assert.Equal(t, "TK/0", p.Category())
	assert.True(t, p.HasNPWP)

	p, err = ProfileRequest{PTKPCategory: "K/2", MaritalStatus: "TK", HasNPWP: &no}.Profile()
	require.NoError(t, err)
	assert.Equal(t, "K/2", p.Category())
	assert.False(t, p.HasNPWP)

	p, err = ProfileRequest{MaritalStatus: "K", Dependents: 1}.Profile()
	require.NoError(t, err)
	assert.Equal(t, "K/1", p.Category())

	_, err = ProfileRequest{PTKPCategory: "X/9"}.Profile()
	assert.ErrorIs(t, err, taxconfig.ErrInvalidProfile)
}

func TestResolveYearDefaultsToLatest(t *testing.T) {
	store := newStore(t)
	assert.Equal(t, 2025, resolveYear(store, 0))
	assert.Equal(t, 2023, resolveYear(store, 2023))
}

func TestRecorderSwallowsFailures(t *testing.T) {
	repo := &fakeLogRepo{err: errors.New("db down")}
	r := calculationRecorder{repo: repo, log: zap.NewNop()}
	assert.NotPanics(t, func() {
		r.record(context.Background(), model.KindPPh21, yearPtr(2024), map[string]int{"a": 1}, "x")
	})

	assert.NotPanics(t, func() {
		calculationRecorder{log: zap.NewNop()}.record(context.Background(), model.KindROI, nil, nil, "x")
	})
}
