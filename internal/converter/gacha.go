package converter

import (
	"path"

	"gacha_backend/internal/api/dto"
	"gacha_backend/internal/model"
)

// AvatarPrefix - URL, под которым раздается каталог загрузок
const AvatarPrefix = "/static/profiles/"

func AvatarURL(avatar string) string {
	if avatar == "" {
		return ""
	}
	return AvatarPrefix + path.Base(avatar)
}

func ToIndexPage(account *model.Account) dto.IndexPage {
	return dto.IndexPage{
		Nickname:  account.Nickname,
		Balance:   account.Balance,
		AvatarURL: AvatarURL(account.Avatar),
	}
}

func ToDrawView(result *model.DrawResult) *dto.DrawView {
	if label, ok := result.Single(); ok {
		return &dto.DrawView{Single: label}
	}
	return &dto.DrawView{Labels: append([]string(nil), result.Labels...)}
}

func ToMyPage(account *model.Account) dto.MyPage {
	return dto.MyPage{
		Username:  account.Username,
		Nickname:  account.Nickname,
		Bio:       account.Bio,
		Balance:   account.Balance,
		AvatarURL: AvatarURL(account.Avatar),
	}
}

func ToStatsResponse(stats model.DrawStats) dto.StatsResponse {
	transactions := make(map[string]int, len(stats.Transactions))
	for kind, n := range stats.Transactions {
		transactions[string(kind)] = n
	}

	labels := make([]dto.LabelStat, len(stats.Labels))
	for i, l := range stats.Labels {
		labels[i] = dto.LabelStat{
			Label:    l.Label,
			Count:    l.Count,
			Expected: l.Expected,
			Observed: l.Observed,
		}
	}

	return dto.StatsResponse{
		TotalDraws:   stats.TotalDraws,
		TotalSpent:   stats.TotalSpent,
		Transactions: transactions,
		Labels:       labels,
		ChiSquare:    stats.ChiSquare,
		PValue:       stats.PValue,
	}
}
