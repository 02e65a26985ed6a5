package service_test

import (
	"context"
	"testing"

	"itabus/internal/dto"
	"itabus/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRates_UnconfiguredReadsAsZeros(t *testing.T) {
	svc := service.NewRatesService(&stubRatesRepo{})
	require.NoError(t, svc.Load(context.Background()))

	assert.Nil(t, svc.Snapshot())

	resp, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.False(t, resp.Configured)
	assert.True(t, resp.ProfitMin.IsZero())
	assert.Nil(t, resp.UpdatedAt)
}

func TestRates_LoadPrimesSnapshot(t *testing.T) {
	svc := service.NewRatesService(&stubRatesRepo{record: defaultRates()})
	require.NoError(t, svc.Load(context.Background()))

	snap := svc.Snapshot()
	require.NotNil(t, snap)
	assert.Equal(t, "20", snap.ProfitIdeal.String())

	resp, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.True(t, resp.Configured)
	assert.Equal(t, "15", resp.Taxes.String())
}

func TestRates_UpdateSwapsSnapshot(t *testing.T) {
	repo := &stubRatesRepo{record: defaultRates()}
	svc := service.NewRatesService(repo)
	require.NoError(t, svc.Load(context.Background()))

	// partial update — only taxes changes, the rest keeps its stored value
	taxes := decimal.NewFromInt(18)
	resp, err := svc.Update(context.Background(), dto.UpdateRatesRequest{Taxes: &taxes})
	require.NoError(t, err)
	assert.Equal(t, "18", resp.Taxes.String())
	assert.Equal(t, "20", resp.ProfitIdeal.String())
	assert.NotNil(t, resp.UpdatedAt)

	snap := svc.Snapshot()
	require.NotNil(t, snap)
	assert.Equal(t, "18", snap.Taxes.String())

	// persisted, not just swapped in memory
	stored, err := repo.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "18", stored.Taxes.String())
}

func TestRates_FirstUpdateConfiguresTheSystem(t *testing.T) {
	svc := service.NewRatesService(&stubRatesRepo{})
	require.NoError(t, svc.Load(context.Background()))
	require.Nil(t, svc.Snapshot())

	min := decimal.NewFromInt(10)
	ideal := decimal.NewFromInt(20)
	resp, err := svc.Update(context.Background(), dto.UpdateRatesRequest{
		ProfitMin:   &min,
		ProfitIdeal: &ideal,
	})
	require.NoError(t, err)
	assert.True(t, resp.Configured)
	// omitted percentages start from zero on a fresh record
	assert.True(t, resp.Taxes.IsZero())

	require.NotNil(t, svc.Snapshot())
}
