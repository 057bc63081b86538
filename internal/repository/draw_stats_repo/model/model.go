package model

import gachaModel "gacha_backend/internal/model"

// DrawState - состояние статистики розыгрышей
type DrawState struct {
	TotalDraws   int                         // Сколько всего меток выдано
	TotalSpent   int                         // Сколько валюты потрачено
	Transactions map[gachaModel.DrawKind]int // Сколько розыгрышей каждого вида

	Counts map[string]int // Сколько раз выпала каждая метка

	Window     []string // Окно последних меток для анализа
	WindowSize int      // Размер окна

	Warnings []DeviationLog // Лог предупреждений об отклонении распределения
}

// DeviationLog - запись о подозрительном отклонении распределения от таблицы
type DeviationLog struct {
	TotalDraws int
	ChiSquare  float64
	PValue     float64
}
