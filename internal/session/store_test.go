package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRoundTrip(t *testing.T) {
	store := NewStore()

	p := store.CreatePractice()
	require.NotEmpty(t, p.ID)
	got, ok := store.Practice(p.ID)
	require.True(t, ok)
	assert.Same(t, p, got)

	q := store.CreateQuiz()
	assert.Len(t, q.Questions, 5)
	_, ok = store.Quiz(q.ID)
	assert.True(t, ok)

	c := store.CreateCaseStudy()
	assert.NotEmpty(t, c.Vignette.ID)

	f := store.CreateComparison("Renal")
	assert.Equal(t, "Renal", f.Category)
}

func TestStoreLookupsAreTypeScoped(t *testing.T) {
	store := NewStore()
	p := store.CreatePractice()

	_, ok := store.Quiz(p.ID)
	assert.False(t, ok)
	_, ok = store.CaseStudy(p.ID)
	assert.False(t, ok)
}

func TestStoreDelete(t *testing.T) {
	store := NewStore()
	p := store.CreatePractice()
	q := store.CreateQuiz()

	store.Delete(p.ID)
	_, ok := store.Practice(p.ID)
	assert.False(t, ok)

	_, ok = store.Quiz(q.ID)
	assert.True(t, ok, "deletion only touches the named session")
}
