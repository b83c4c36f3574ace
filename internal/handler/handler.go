// Package handler exposes the directory core over Echo. Handlers absorb
// collaborator failures the same way the reconciler does: the response
// carries the optimistic local state, never a blocking error.
package handler

import (
	"github.com/go-playground/validator/v10"

	"quicksupply/internal/ai"
	"quicksupply/internal/directory"
	"quicksupply/internal/navigation"
	"quicksupply/internal/store"
)

var validate = validator.New()

// Handler bundles the collaborators the HTTP surface drives.
type Handler struct {
	recon  *directory.Reconciler
	ai     *ai.Client
	cache  *ai.MatchCache
	nav    *navigation.Registry
	orders store.OrderStore
}

// New builds the handler set.
func New(recon *directory.Reconciler, aiClient *ai.Client, cache *ai.MatchCache, nav *navigation.Registry, orders store.OrderStore) *Handler {
	return &Handler{
		recon:  recon,
		ai:     aiClient,
		cache:  cache,
		nav:    nav,
		orders: orders,
	}
}

// sessionOwner extracts the directory owner identity for the current
// session from context values set by the auth middleware.
func sessionOwner(userID, email interface{}) directory.Owner {
	owner := directory.Owner{}
	if id, ok := userID.(string); ok {
		owner.UserID = id
	}
	if em, ok := email.(string); ok {
		owner.Email = em
	}
	return owner
}
