package delivery

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"srebrnasad/internal/domain"
)

func TestSession_SupersededResultDiscarded(t *testing.T) {
	var s Session

	first := s.Begin()
	second := s.Begin()

	// The second check resolves before the first.
	assert.True(t, s.Apply(second, domain.Eligibility{Valid: true, FeeCents: 2500}))
	// The superseded first check resolves late and must be ignored.
	assert.False(t, s.Apply(first, domain.Ineligible(domain.ReasonNoRoute)))

	got, ok := s.Result()
	assert.True(t, ok)
	assert.True(t, got.Valid)
	assert.Equal(t, int64(2500), got.FeeCents)
}

func TestSession_LateFirstResultRegardlessOfOrder(t *testing.T) {
	var s Session

	first := s.Begin()
	second := s.Begin()

	// First check's result arrives before the second resolves: still stale.
	assert.False(t, s.Apply(first, domain.Eligibility{Valid: true}))
	assert.True(t, s.Apply(second, domain.Ineligible(domain.ReasonOutOfRange)))

	got, ok := s.Result()
	assert.True(t, ok)
	assert.Equal(t, domain.ReasonOutOfRange, got.Reason)
}

func TestSession_NoResultBeforeApply(t *testing.T) {
	var s Session
	_, ok := s.Result()
	assert.False(t, ok)
}

func TestRegistry_ReturnsSameSessionPerKey(t *testing.T) {
	r := NewRegistry()
	a := r.Session("cart-1")
	b := r.Session("cart-1")
	c := r.Session("cart-2")
	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
}
