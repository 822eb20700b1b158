package game

import (
	"math/rand"

	"github.com/pscheid92/quizpulse/internal/domain"
)

// Selector yields the next question of the pool, or ok=false when none is
// available. "No question" must stay distinguishable from a question, so
// the engine can route pool exhaustion into the stop path.
type Selector interface {
	Next() (*domain.Question, bool)
}

// SequentialSelector walks the pool in order and reports exhaustion at the end.
type SequentialSelector struct {
	pool   []domain.Question
	cursor int
}

func NewSequentialSelector(pool []domain.Question) *SequentialSelector {
	return &SequentialSelector{pool: pool}
}

func (s *SequentialSelector) Next() (*domain.Question, bool) {
	if s.cursor >= len(s.pool) {
		return nil, false
	}
	q := &s.pool[s.cursor]
	s.cursor++
	return q, true
}

// RandomSelector picks uniformly from the pool and never exhausts it.
type RandomSelector struct {
	pool []domain.Question
	rng  *rand.Rand
}

func NewRandomSelector(pool []domain.Question, seed int64) *RandomSelector {
	return &RandomSelector{pool: pool, rng: rand.New(rand.NewSource(seed))}
}

func (s *RandomSelector) Next() (*domain.Question, bool) {
	if len(s.pool) == 0 {
		return nil, false
	}
	return &s.pool[s.rng.Intn(len(s.pool))], true
}
