package draw_stats_repo

import (
	"testing"

	"gacha_backend/internal/model"
	"gacha_backend/pkg/sampler"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTable() *sampler.Table {
	return sampler.MustTable([]sampler.Entry{
		{Label: "SSR", Probability: 0.01},
		{Label: "SR", Probability: 0.04},
		{Label: "R", Probability: 0.25},
		{Label: "N", Probability: 0.70},
	})
}

func TestRecordAndSnapshot(t *testing.T) {
	r := NewDrawStatsRepository(newTestTable())

	r.Record(model.DrawSingle, []string{"N"})
	r.Record(model.DrawBulk, []string{"N", "N", "R", "N", "SR", "N", "N", "R", "N", "N"})

	snap := r.Snapshot()
	assert.Equal(t, 11, snap.TotalDraws)
	assert.Equal(t, 100, snap.TotalSpent)
	assert.Equal(t, 1, snap.Transactions[model.DrawSingle])
	assert.Equal(t, 1, snap.Transactions[model.DrawBulk])

	require.Len(t, snap.Labels, 4)
	assert.Equal(t, "SSR", snap.Labels[0].Label)
	assert.Equal(t, 0, snap.Labels[0].Count)
	assert.Equal(t, 8, snap.Labels[3].Count)
	assert.InDelta(t, 8.0/11.0, snap.Labels[3].Observed, 1e-12)
	assert.InDelta(t, 0.70, snap.Labels[3].Expected, 1e-12)
}

func TestSnapshot_Empty(t *testing.T) {
	snap := NewDrawStatsRepository(newTestTable()).Snapshot()

	assert.Zero(t, snap.TotalDraws)
	assert.Zero(t, snap.ChiSquare)
	assert.Equal(t, 1.0, snap.PValue)
	for _, l := range snap.Labels {
		assert.Zero(t, l.Observed)
	}
}

func TestSnapshot_MatchingDistributionHasHighPValue(t *testing.T) {
	r := NewDrawStatsRepository(newTestTable())

	labels := make([]string, 0, 100)
	labels = append(labels, "SSR")
	for i := 0; i < 4; i++ {
		labels = append(labels, "SR")
	}
	for i := 0; i < 25; i++ {
		labels = append(labels, "R")
	}
	for i := 0; i < 70; i++ {
		labels = append(labels, "N")
	}
	for i := 0; i < 10; i++ {
		r.Record(model.DrawBulk, labels[i*10:(i+1)*10])
	}

	snap := r.Snapshot()
	assert.InDelta(t, 0, snap.ChiSquare, 1e-9)
	assert.InDelta(t, 1, snap.PValue, 1e-9)
	assert.Empty(t, r.State().Warnings)
}

func TestRecord_WindowDeviationIsLogged(t *testing.T) {
	r := NewDrawStatsRepository(newTestTable())

	// Одни SSR - распределение явно не совпадает с таблицей
	batch := make([]string, 10)
	for i := range batch {
		batch[i] = "SSR"
	}
	for i := 0; i < periodDrawsToCheck/10; i++ {
		r.Record(model.DrawBulk, batch)
	}

	st := r.State()
	require.Len(t, st.Warnings, 1)
	assert.Equal(t, periodDrawsToCheck, st.Warnings[0].TotalDraws)
	assert.Less(t, st.Warnings[0].PValue, criticalPValue)
}

func TestRecord_WarningsAreBounded(t *testing.T) {
	r := NewDrawStatsRepository(newTestTable())

	batch := make([]string, 10)
	for i := range batch {
		batch[i] = "SSR"
	}
	checks := maxWarnings + 5
	for i := 0; i < checks*periodDrawsToCheck/10; i++ {
		r.Record(model.DrawBulk, batch)
	}

	st := r.State()
	require.Len(t, st.Warnings, maxWarnings)
	// остаются самые свежие
	assert.Equal(t, 6*periodDrawsToCheck, st.Warnings[0].TotalDraws)
	assert.Equal(t, checks*periodDrawsToCheck, st.Warnings[maxWarnings-1].TotalDraws)
}

func TestRecord_WindowIsBounded(t *testing.T) {
	r := NewDrawStatsRepository(newTestTable())

	batch := []string{"N", "N", "R", "N", "N", "N", "R", "N", "N", "N"}
	for i := 0; i < defaultWindowSize/10+50; i++ {
		r.Record(model.DrawBulk, batch)
	}

	st := r.State()
	assert.Len(t, st.Window, defaultWindowSize)
	assert.Equal(t, defaultWindowSize+500, st.TotalDraws)
}

func TestState_ReturnsCopy(t *testing.T) {
	r := NewDrawStatsRepository(newTestTable())
	r.Record(model.DrawSingle, []string{"R"})

	st := r.State()
	st.Counts["R"] = 100
	st.Transactions[model.DrawSingle] = 100

	assert.Equal(t, 1, r.State().Counts["R"])
	assert.Equal(t, 1, r.State().Transactions[model.DrawSingle])
}
