package stats

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"gacha_backend/internal/api/dto"
	"gacha_backend/internal/model"
	"gacha_backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeServ struct {
	service.GachaService
	stats model.DrawStats
}

func (f fakeServ) Stats() model.DrawStats {
	return f.stats
}

func TestStats(t *testing.T) {
	h := NewHandler(HandlerDeps{Serv: fakeServ{stats: model.DrawStats{
		TotalDraws:   10,
		TotalSpent:   90,
		Transactions: map[model.DrawKind]int{model.DrawBulk: 1},
		Labels:       []model.LabelStat{{Label: "N", Count: 10, Expected: 0.7, Observed: 1}},
	}}})

	rec := httptest.NewRecorder()
	h.Stats(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	var got dto.StatsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 10, got.TotalDraws)
	assert.Equal(t, 90, got.TotalSpent)
	assert.Equal(t, 1, got.Transactions["ten"])
	require.Len(t, got.Labels, 1)
	assert.Equal(t, "N", got.Labels[0].Label)
}
