package draw_stats_repo

import (
	"sync"

	"gacha_backend/internal/model"
	repoModel "gacha_backend/internal/repository/draw_stats_repo/model"
	"gacha_backend/pkg/sampler"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

const (
	// periodDrawsToCheck Периодичность проверки окна (каждые N меток)
	periodDrawsToCheck = 500
	// defaultWindowSize Размер окна последних меток
	defaultWindowSize = 5000
	// criticalPValue Ниже этого p-value распределение в окне считаем подозрительным
	criticalPValue = 0.001
	// maxWarnings Сколько последних предупреждений хранить
	maxWarnings = 100
)

// StatsRepo хранит статистику розыгрышей в памяти процесса
type StatsRepo struct {
	mtx   sync.RWMutex
	table *sampler.Table
	state repoModel.DrawState
}

// NewDrawStatsRepository Конструктор с пустым состоянием
func NewDrawStatsRepository(table *sampler.Table) *StatsRepo {
	return &StatsRepo{
		table: table,
		state: repoModel.DrawState{
			Transactions: make(map[model.DrawKind]int),
			Counts:       make(map[string]int),
			Window:       make([]string, 0, defaultWindowSize),
			WindowSize:   defaultWindowSize,
		},
	}
}

// State Получение копии текущего состояния
func (r *StatsRepo) State() repoModel.DrawState {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	st := r.state
	st.Transactions = make(map[model.DrawKind]int, len(r.state.Transactions))
	for k, v := range r.state.Transactions {
		st.Transactions[k] = v
	}
	st.Counts = make(map[string]int, len(r.state.Counts))
	for k, v := range r.state.Counts {
		st.Counts[k] = v
	}
	st.Window = append([]string(nil), r.state.Window...)
	st.Warnings = append([]repoModel.DeviationLog(nil), r.state.Warnings...)
	return st
}

// Record Обновление статистики после розыгрыша
func (r *StatsRepo) Record(kind model.DrawKind, labels []string) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.state.Transactions[kind]++
	r.state.TotalSpent += kind.Cost()

	for _, label := range labels {
		r.state.TotalDraws++
		r.state.Counts[label]++

		// Добавляем метку в окно, поддерживаем размер окна
		r.state.Window = append(r.state.Window, label)
		if len(r.state.Window) > r.state.WindowSize {
			r.state.Window = r.state.Window[1:]
		}

		if r.state.TotalDraws%periodDrawsToCheck == 0 {
			r.checkWindow()
		}
	}
}

// Snapshot Сводка для отображения
func (r *StatsRepo) Snapshot() model.DrawStats {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	res := model.DrawStats{
		TotalDraws:   r.state.TotalDraws,
		TotalSpent:   r.state.TotalSpent,
		Transactions: make(map[model.DrawKind]int, len(r.state.Transactions)),
		Labels:       make([]model.LabelStat, 0, r.table.Len()),
		PValue:       1,
	}
	for k, v := range r.state.Transactions {
		res.Transactions[k] = v
	}

	for _, e := range r.table.Entries() {
		ls := model.LabelStat{
			Label:    e.Label,
			Count:    r.state.Counts[e.Label],
			Expected: e.Probability,
		}
		if r.state.TotalDraws > 0 {
			ls.Observed = float64(ls.Count) / float64(r.state.TotalDraws)
		}
		res.Labels = append(res.Labels, ls)
	}

	if r.state.TotalDraws > 0 {
		res.ChiSquare, res.PValue = r.goodnessOfFit(r.state.Counts, r.state.TotalDraws)
	}

	return res
}

// checkWindow Проверка распределения в окне последних меток.
// Вызывается под блокировкой на запись
func (r *StatsRepo) checkWindow() {
	counts := make(map[string]int, r.table.Len())
	for _, label := range r.state.Window {
		counts[label]++
	}

	chi2, pValue := r.goodnessOfFit(counts, len(r.state.Window))
	if pValue >= criticalPValue {
		return
	}

	r.state.Warnings = append(r.state.Warnings, repoModel.DeviationLog{
		TotalDraws: r.state.TotalDraws,
		ChiSquare:  chi2,
		PValue:     pValue,
	})
	if len(r.state.Warnings) > maxWarnings {
		r.state.Warnings = r.state.Warnings[len(r.state.Warnings)-maxWarnings:]
	}

	log.Warn().
		Int("total_draws", r.state.TotalDraws).
		Int("window", len(r.state.Window)).
		Float64("chi_square", chi2).
		Float64("p_value", pValue).
		Msg("draw distribution deviates from probability table")
}

// goodnessOfFit - критерий хи-квадрат по строкам таблицы с ненулевой вероятностью
func (r *StatsRepo) goodnessOfFit(counts map[string]int, total int) (float64, float64) {
	obs := make([]float64, 0, r.table.Len())
	exp := make([]float64, 0, r.table.Len())
	for _, e := range r.table.Entries() {
		if e.Probability == 0 {
			continue
		}
		obs = append(obs, float64(counts[e.Label]))
		exp = append(exp, e.Probability*float64(total))
	}

	if len(obs) < 2 || total == 0 {
		return 0, 1
	}

	chi2 := stat.ChiSquare(obs, exp)
	pValue := distuv.ChiSquared{K: float64(len(obs) - 1)}.Survival(chi2)

	return chi2, pValue
}
