package game

import (
	"testing"

	"github.com/pscheid92/quizpulse/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequentialSelectorWalksPoolInOrder(t *testing.T) {
	pool := testPool(2)
	sel := NewSequentialSelector(pool)

	q, ok := sel.Next()
	require.True(t, ok)
	assert.Equal(t, "question 1", q.Prompt)

	q, ok = sel.Next()
	require.True(t, ok)
	assert.Equal(t, "question 2", q.Prompt)

	_, ok = sel.Next()
	assert.False(t, ok, "exhaustion must be distinguishable from a question")
}

func TestSequentialSelectorEmptyPool(t *testing.T) {
	sel := NewSequentialSelector(nil)
	_, ok := sel.Next()
	assert.False(t, ok)
}

func TestRandomSelectorDrawsFromPool(t *testing.T) {
	pool := testPool(5)
	sel := NewRandomSelector(pool, 42)

	prompts := make(map[string]struct{})
	for _, q := range pool {
		prompts[q.Prompt] = struct{}{}
	}

	for i := 0; i < 100; i++ {
		q, ok := sel.Next()
		require.True(t, ok, "random selection never exhausts a non-empty pool")
		assert.Contains(t, prompts, q.Prompt)
	}
}

func TestRandomSelectorEmptyPool(t *testing.T) {
	sel := NewRandomSelector(nil, 1)
	_, ok := sel.Next()
	assert.False(t, ok)
}

var _ Selector = (*SequentialSelector)(nil)
var _ Selector = (*RandomSelector)(nil)
var _ domain.UserRepository = (*mockUserRepo)(nil)
var _ domain.Transport = (*mockTransport)(nil)
var _ domain.Localizer = keyLocalizer{}
