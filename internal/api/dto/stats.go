package dto

type StatsResponse struct {
	TotalDraws   int            `json:"total_draws"`  // Всего разыгранных меток
	TotalSpent   int            `json:"total_spent"`  // Всего списано
	Transactions map[string]int `json:"transactions"` // Количество розыгрышей по виду
	Labels       []LabelStat    `json:"labels"`
	ChiSquare    float64        `json:"chi_square"`
	PValue       float64        `json:"p_value"`
}

type LabelStat struct {
	Label    string  `json:"label"`
	Count    int     `json:"count"`
	Expected float64 `json:"expected"` // Вероятность из таблицы
	Observed float64 `json:"observed"` // Наблюдаемая доля
}
