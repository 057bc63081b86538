package sampler

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

var referenceEntries = []Entry{
	{Label: "SSR", Probability: 0.01},
	{Label: "SR", Probability: 0.04},
	{Label: "R", Probability: 0.25},
	{Label: "N", Probability: 0.70},
}

// fixedSource всегда возвращает одно и то же значение
type fixedSource float64

func (f fixedSource) Float64() float64 { return float64(f) }

// seqSource возвращает значения по очереди
type seqSource struct {
	vals []float64
	i    int
}

func (s *seqSource) Float64() float64 {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v
}

func TestNewTable_Validation(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry
		wantErr error
	}{
		{name: "empty", entries: nil, wantErr: ErrEmptyTable},
		{name: "empty label", entries: []Entry{{Label: "", Probability: 1}}, wantErr: ErrEmptyLabel},
		{name: "negative", entries: []Entry{{Label: "a", Probability: 1.5}, {Label: "b", Probability: -0.5}}, wantErr: ErrNegativeWeight},
		{name: "sum below one", entries: []Entry{{Label: "a", Probability: 0.5}, {Label: "b", Probability: 0.4}}, wantErr: ErrInvalidWeightSum},
		{name: "sum above one", entries: []Entry{{Label: "a", Probability: 0.7}, {Label: "b", Probability: 0.4}}, wantErr: ErrInvalidWeightSum},
		{name: "reference", entries: referenceEntries},
		{name: "sum within tolerance", entries: []Entry{{Label: "a", Probability: 0.5}, {Label: "b", Probability: 0.4999999995}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, err := NewTable(tt.entries)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, tbl)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(tt.entries), tbl.Len())
		})
	}
}

func TestNewTable_CopiesEntries(t *testing.T) {
	src := []Entry{{Label: "a", Probability: 0.5}, {Label: "b", Probability: 0.5}}
	tbl := MustTable(src)

	src[0].Label = "changed"

	assert.Equal(t, []string{"a", "b"}, tbl.Labels())
}

func TestMustTable_Panics(t *testing.T) {
	assert.Panics(t, func() { MustTable(nil) })
}

func TestPick_CumulativeBoundaries(t *testing.T) {
	tbl := MustTable(referenceEntries)

	tests := []struct {
		r    float64
		want string
	}{
		{r: 0, want: "SSR"},
		{r: 0.005, want: "SSR"},
		{r: 0.01, want: "SSR"}, // ровно на границе - берём строку с этой накопленной суммой
		{r: 0.0100001, want: "SR"},
		{r: 0.03, want: "SR"},
		{r: 0.2, want: "R"},
		{r: 0.31, want: "N"},
		{r: 0.999999, want: "N"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tbl.Pick(tt.r), "r=%v", tt.r)
	}
}

func TestPick_BoundaryTieUsesLessOrEqual(t *testing.T) {
	tbl := MustTable([]Entry{
		{Label: "left", Probability: 0.5},
		{Label: "right", Probability: 0.5},
	})

	assert.Equal(t, "left", tbl.Pick(0.5))
	assert.Equal(t, "right", tbl.Pick(0.5000001))
}

func TestPick_FallbackReturnsLastConfiguredEntry(t *testing.T) {
	// Сумма чуть меньше 1.0, но в пределах допуска
	tbl := MustTable([]Entry{
		{Label: "common", Probability: 0.9999999995},
		{Label: "tail", Probability: 0},
	})

	// r больше итоговой накопленной суммы - проход по таблице не находит строку
	assert.Equal(t, "tail", tbl.Pick(0.9999999999))
	assert.Equal(t, "tail", tbl.Pick(1.0))
	assert.Equal(t, "common", tbl.Pick(0.5))
}

func TestPick_ZeroProbabilityEntryIsSkipped(t *testing.T) {
	tbl := MustTable([]Entry{
		{Label: "a", Probability: 0.5},
		{Label: "never", Probability: 0},
		{Label: "b", Probability: 0.5},
	})

	assert.Equal(t, "a", tbl.Pick(0.5))
	assert.Equal(t, "b", tbl.Pick(0.6))
}

func TestDraw_Deterministic(t *testing.T) {
	tbl := MustTable(referenceEntries)

	for _, r := range []float64{0, 0.01, 0.049, 0.05, 0.3, 0.75} {
		first := NewSampler(tbl, fixedSource(r)).Draw()
		second := NewSampler(tbl, fixedSource(r)).Draw()
		assert.Equal(t, first, second)
		assert.Equal(t, tbl.Pick(r), first)
	}
}

func TestDrawN_OrderAndLength(t *testing.T) {
	tbl := MustTable(referenceEntries)
	src := &seqSource{vals: []float64{0.001, 0.02, 0.1, 0.9}}

	got := NewSampler(tbl, src).DrawN(10)

	require.Len(t, got, 10)
	assert.Equal(t, []string{"SSR", "SR", "R", "N", "SSR", "SR", "R", "N", "SSR", "SR"}, got)
	assert.Empty(t, NewSampler(tbl, src).DrawN(0))
}

func TestDraw_AlwaysReturnsTableLabel(t *testing.T) {
	tbl := MustTable(referenceEntries)
	s := NewSampler(tbl, nil)

	for i := 0; i < 10000; i++ {
		assert.True(t, tbl.Contains(s.Draw()))
	}
}

func TestDraw_Distribution(t *testing.T) {
	tbl := MustTable(referenceEntries)
	s := NewSampler(tbl, rand.New(rand.NewPCG(42, 1024)))

	const n = 200000
	counts := make(map[string]float64)
	for _, label := range s.DrawN(n) {
		counts[label]++
	}

	obs := make([]float64, 0, tbl.Len())
	exp := make([]float64, 0, tbl.Len())
	for _, e := range tbl.Entries() {
		obs = append(obs, counts[e.Label])
		exp = append(exp, e.Probability*n)
	}

	chi2 := stat.ChiSquare(obs, exp)
	pValue := distuv.ChiSquared{K: float64(tbl.Len() - 1)}.Survival(chi2)

	assert.Greater(t, pValue, 1e-4, "chi2=%v obs=%v", chi2, obs)
}
