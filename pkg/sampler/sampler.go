package sampler

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"sync"
)

// Tolerance - допустимое отклонение суммы вероятностей от 1.0
const Tolerance = 1e-9

var (
	ErrEmptyTable       = errors.New("probability table is empty")
	ErrEmptyLabel       = errors.New("probability table entry has empty label")
	ErrNegativeWeight   = errors.New("probability must be a non-negative number")
	ErrInvalidWeightSum = errors.New("probabilities must sum to 1.0")
)

// Entry - одна строка таблицы вероятностей (метка и её вероятность)
type Entry struct {
	Label       string
	Probability float64
}

// Table - упорядоченная таблица вероятностей. Порядок важен на границах.
type Table struct {
	entries []Entry
}

// NewTable проверяет и создаёт таблицу вероятностей
func NewTable(entries []Entry) (*Table, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyTable
	}

	sum := 0.0
	for i, e := range entries {
		if e.Label == "" {
			return nil, fmt.Errorf("entry %d: %w", i, ErrEmptyLabel)
		}
		if math.IsNaN(e.Probability) || math.IsInf(e.Probability, 0) || e.Probability < 0 {
			return nil, fmt.Errorf("entry %d (%s): %w", i, e.Label, ErrNegativeWeight)
		}
		sum += e.Probability
	}

	if math.Abs(sum-1.0) > Tolerance {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidWeightSum, sum)
	}

	cp := make([]Entry, len(entries))
	copy(cp, entries)

	return &Table{entries: cp}, nil
}

// MustTable - как NewTable, но паникует при ошибке
func MustTable(entries []Entry) *Table {
	t, err := NewTable(entries)
	if err != nil {
		panic("sampler: " + err.Error())
	}
	return t
}

// Pick выбирает метку для заданного r из [0, 1).
// Возвращается первая строка, у которой накопленная сумма >= r.
// Если из-за погрешности r больше итоговой суммы - возвращается последняя строка таблицы.
func (t *Table) Pick(r float64) string {
	cumulative := 0.0
	for _, e := range t.entries {
		cumulative += e.Probability
		if r <= cumulative {
			return e.Label
		}
	}

	return t.entries[len(t.entries)-1].Label
}

// Entries возвращает копию строк таблицы
func (t *Table) Entries() []Entry {
	cp := make([]Entry, len(t.entries))
	copy(cp, t.entries)
	return cp
}

// Labels возвращает метки в порядке таблицы
func (t *Table) Labels() []string {
	labels := make([]string, len(t.entries))
	for i, e := range t.entries {
		labels[i] = e.Label
	}
	return labels
}

func (t *Table) Len() int {
	return len(t.entries)
}

// Contains проверяет, есть ли метка в таблице
func (t *Table) Contains(label string) bool {
	for _, e := range t.entries {
		if e.Label == label {
			return true
		}
	}
	return false
}

// Source - источник равномерных случайных чисел из [0, 1)
type Source interface {
	Float64() float64
}

type globalSource struct{}

func (globalSource) Float64() float64 {
	return rand.Float64()
}

// Sampler тянет метки из таблицы, используя Source
type Sampler struct {
	table *Table

	mtx sync.Mutex
	src Source
}

// NewSampler создаёт сэмплер. Если src == nil, используется глобальный генератор math/rand/v2.
func NewSampler(table *Table, src Source) *Sampler {
	if src == nil {
		src = globalSource{}
	}
	return &Sampler{
		table: table,
		src:   src,
	}
}

func (s *Sampler) Table() *Table {
	return s.table
}

// Draw - один розыгрыш
func (s *Sampler) Draw() string {
	s.mtx.Lock()
	r := s.src.Float64()
	s.mtx.Unlock()

	return s.table.Pick(r)
}

// DrawN - n розыгрышей подряд, результаты в порядке розыгрыша
func (s *Sampler) DrawN(n int) []string {
	if n <= 0 {
		return []string{}
	}

	res := make([]string, n)
	for i := range res {
		res[i] = s.Draw()
	}
	return res
}
