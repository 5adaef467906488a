package history

import "bmicalc/internal/bmi"

// Store 是单个会话的计算历史，只追加，不删除也不修改。
// Store 本身不加锁，由所属会话串行化访问。
type Store struct {
	results []bmi.Result
}

// NewStore returns an empty history.
func NewStore() *Store {
	return &Store{}
}

// Append adds r to the end of the history.
func (s *Store) Append(r bmi.Result) {
	s.results = append(s.results, r)
}

// All returns a copy of every result in insertion order.
func (s *Store) All() []bmi.Result {
	if s == nil || len(s.results) == 0 {
		return nil
	}
	out := make([]bmi.Result, len(s.results))
	copy(out, s.results)
	return out
}

func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.results)
}

// Latest returns the most recent result.
func (s *Store) Latest() (bmi.Result, bool) {
	if s.Len() == 0 {
		return bmi.Result{}, false
	}
	return s.results[len(s.results)-1], true
}

// Row is one line of the history table.
type Row struct {
	Index    int          `json:"calculation" yaml:"calculation"`
	BMI      float64      `json:"bmi" yaml:"bmi"`
	Category bmi.Category `json:"category" yaml:"category"`
	Color    string       `json:"color" yaml:"color"`
}

// Rows numbers the results from 1 in submission order.
func Rows(results []bmi.Result) []Row {
	rows := make([]Row, len(results))
	for i, r := range results {
		rows[i] = Row{Index: i + 1, BMI: r.AdjustedBMI, Category: r.Category, Color: r.Color}
	}
	return rows
}

// Rows is shorthand for Rows(s.All()).
func (s *Store) Rows() []Row {
	return Rows(s.All())
}
