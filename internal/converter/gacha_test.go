package converter

import (
	"testing"

	"gacha_backend/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestToDrawView(t *testing.T) {
	single := ToDrawView(&model.DrawResult{Kind: model.DrawSingle, Labels: []string{"SR"}})
	assert.Equal(t, "SR", single.Single)
	assert.Empty(t, single.Labels)

	labels := []string{"N", "N", "R", "N", "SSR", "N", "N", "SR", "N", "R"}
	bulk := ToDrawView(&model.DrawResult{Kind: model.DrawBulk, Labels: labels})
	assert.Empty(t, bulk.Single)
	assert.Equal(t, labels, bulk.Labels)
}

func TestAvatarURL(t *testing.T) {
	assert.Equal(t, "/static/profiles/alice_pic.png", AvatarURL("alice_pic.png"))
	assert.Equal(t, "/static/profiles/x.png", AvatarURL("../x.png"))
	assert.Empty(t, AvatarURL(""))
}

func TestToStatsResponse(t *testing.T) {
	resp := ToStatsResponse(model.DrawStats{
		TotalDraws:   11,
		TotalSpent:   100,
		Transactions: map[model.DrawKind]int{model.DrawSingle: 1, model.DrawBulk: 1},
		Labels:       []model.LabelStat{{Label: "N", Count: 11, Expected: 0.7, Observed: 1}},
	})

	assert.Equal(t, 11, resp.TotalDraws)
	assert.Equal(t, map[string]int{"one": 1, "ten": 1}, resp.Transactions)
	assert.Equal(t, "N", resp.Labels[0].Label)
}
