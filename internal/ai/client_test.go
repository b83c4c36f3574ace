package ai

import (
	"context"
	"encoding/json"
	"testing"

	"quicksupply/internal/model"
	"quicksupply/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func fallbackClient(t *testing.T) *Client {
	t.Helper()
	c, err := NewClient(context.Background(), &config.AIConfig{Model: "gemini-2.0-flash"}, zap.NewNop())
	require.NoError(t, err, "an empty API key must not be an error")
	return c
}

func TestGenerateProfileFallback(t *testing.T) {
	c := fallbackClient(t)
	fields := c.GenerateProfile(context.Background(), BasicProfile{
		Name:     "Mekong Mills",
		Location: "Phnom Penh",
		Industry: "Garment & Textile",
		Category: "Knitwear",
	})

	assert.Contains(t, fields.Description, "Phnom Penh")
	assert.Contains(t, fields.Description, "Knitwear")
	assert.NotEmpty(t, fields.Certifications)
	assert.NotZero(t, fields.EstablishedYear)
	assert.NotEmpty(t, fields.BusinessType)
}

func TestMatchSuppliersFallbackIsEmptyNotNil(t *testing.T) {
	c := fallbackClient(t)
	result := c.MatchSuppliers(context.Background(), "waterproof jackets", nil)

	require.NotNil(t, result.IDs)
	require.NotNil(t, result.Analysis)
	assert.Empty(t, result.IDs)
	assert.Empty(t, result.Analysis)
}

func TestChatReplyFallback(t *testing.T) {
	c := fallbackClient(t)
	reply := c.ChatReply(context.Background(), "Do you ship to the EU?", model.Supplier{Name: "X"})
	assert.NotEmpty(t, reply)
}

func TestSourcingAdviceFallback(t *testing.T) {
	c := fallbackClient(t)
	advice := c.SourcingAdvice(context.Background(), "best cashew exporters", nil)
	assert.NotEmpty(t, advice.Text)
	require.NotNil(t, advice.Links)
	assert.Empty(t, advice.Links)
}

func TestCandidateJSONTrimsRecords(t *testing.T) {
	raw := candidateJSON([]model.Supplier{{
		ID:       "1",
		Name:     "Phnom Penh Textile",
		Industry: model.IndustryGarmentTextile,
		ImageURL: "https://example.com/huge-image.jpg",
		Products: []model.Product{{
			Name:   "Raincoat",
			Price:  "$15.00",
			Images: []string{"https://example.com/p.jpg"},
		}},
	}})

	var views []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(raw), &views))
	require.Len(t, views, 1)
	assert.Equal(t, "Phnom Penh Textile", views[0]["name"])
	assert.NotContains(t, raw, "huge-image.jpg", "image urls stay out of prompts")
	assert.Contains(t, raw, "Raincoat")
}

func TestNilMatchCacheIsSafe(t *testing.T) {
	cache := NewMatchCache(&config.RedisConfig{}, zap.NewNop())
	require.Nil(t, cache, "no redis address means no cache")

	// Both operations must be no-ops on the nil receiver.
	_, hit := cache.Get(context.Background(), "query")
	assert.False(t, hit)
	cache.Set(context.Background(), "query", MatchResult{IDs: []string{"1"}})
}

func TestMatchKeyNormalisation(t *testing.T) {
	assert.Equal(t, matchKey("  Waterproof Jackets "), matchKey("waterproof jackets"))
	assert.Equal(t, "aimatch:waterproof jackets", matchKey("Waterproof Jackets"))
}
