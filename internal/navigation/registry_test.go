package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistryGetCreatesInitialState(t *testing.T) {
	r := NewRegistry()
	s := r.Get("sub-1")
	assert.Equal(t, NewState(), s)
}

func TestRegistryApplyStoresResult(t *testing.T) {
	r := NewRegistry()
	s := r.Apply("sub-1", func(s State) State {
		return s.BuyerLogin(Profile{UserID: "u-1"})
	})
	assert.Equal(t, ViewBuyer, s.View)
	assert.Equal(t, ViewBuyer, r.Get("sub-1").View)

	// Sessions are independent.
	assert.Equal(t, ViewLanding, r.Get("sub-2").View)
}

func TestRegistryDrop(t *testing.T) {
	r := NewRegistry()
	r.Apply("sub-1", func(s State) State { return s.BecomeBuyer() })
	r.Drop("sub-1")
	assert.Equal(t, NewState(), r.Get("sub-1"))
}
