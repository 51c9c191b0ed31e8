package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"officebot/internal/model"
)

func TestCalculationLogList(t *testing.T) {
	at := time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC)
	repo := &fakeLogRepo{}
	for i := 0; i < 3; i++ {
		repo.entries = append(repo.entries, model.CalculationLog{
			ID:        uuid.New(),
			Kind:      model.KindPPh21,
			TaxYear:   yearPtr(2024),
			Request:   `{"gross":10000000}`,
			Summary:   "TK/0 Rp 250.000/bulan",
			CreatedAt: at,
		})
	}
	svc := NewCalculationLogService(repo)

	got, total, err := svc.List(context.Background(), 2, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, got, 1)
	assert.Equal(t, "05/03/2024 14:30", got[0].CreatedAt)
	assert.JSONEq(t, `{"gross":10000000}`, string(got[0].Request))

	repo.err = errors.New("db down")
	_, _, err = svc.List(context.Background(), 1, 20)
	assert.Error(t, err)
}
