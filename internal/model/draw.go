package model

import "fmt"

// DrawKind - вид розыгрыша, как он приходит из формы
type DrawKind string

const (
	DrawSingle DrawKind = "one"
	DrawBulk   DrawKind = "ten"
)

var drawKinds = map[DrawKind]struct {
	cost    int
	repeats int
}{
	DrawSingle: {cost: 10, repeats: 1},
	DrawBulk:   {cost: 90, repeats: 10},
}

// ParseDrawKind - проверка вида розыгрыша
func ParseDrawKind(s string) (DrawKind, error) {
	k := DrawKind(s)
	if _, ok := drawKinds[k]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidDrawKind, s)
	}
	return k, nil
}

// Cost - стоимость розыгрыша
func (k DrawKind) Cost() int {
	return drawKinds[k].cost
}

// Repeats - сколько раз вызывается сэмплер
func (k DrawKind) Repeats() int {
	return drawKinds[k].repeats
}

type DrawResult struct {
	Kind    DrawKind
	Labels  []string // в порядке розыгрыша
	Balance int      // баланс после списания
}

// Single возвращает метку одиночного розыгрыша
func (r *DrawResult) Single() (string, bool) {
	if r.Kind != DrawSingle || len(r.Labels) != 1 {
		return "", false
	}
	return r.Labels[0], true
}

// DrawStats - сводная статистика розыгрышей с момента запуска
type DrawStats struct {
	TotalDraws   int
	TotalSpent   int
	Transactions map[DrawKind]int
	Labels       []LabelStat
	ChiSquare    float64 // отклонение наблюдаемого распределения от таблицы
	PValue       float64
}

type LabelStat struct {
	Label    string
	Count    int
	Expected float64 // вероятность из таблицы
	Observed float64 // доля среди всех розыгрышей
}
