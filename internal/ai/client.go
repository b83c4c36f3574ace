// Package ai wraps the generative-language collaborator. Every
// operation degrades to a templated fallback value on error; no AI
// failure ever propagates as a fatal error to a caller.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"quicksupply/internal/model"
	"quicksupply/pkg/config"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// ProfileFields are the dossier fields the generator fills in during
// supplier onboarding.
type ProfileFields struct {
	Description     string   `json:"description"`
	Certifications  []string `json:"certifications"`
	EstablishedYear int      `json:"establishedYear"`
	EmployeeCount   string   `json:"employeeCount"`
	FactorySize     string   `json:"factorySize"`
	BusinessType    string   `json:"businessType"`
}

// BasicProfile is the onboarding input the generator expands.
type BasicProfile struct {
	Name     string
	Location string
	Industry string
	Category string
	Capacity string
}

// MatchAnalysis explains one matched supplier.
type MatchAnalysis struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// MatchResult is the ordered match outcome: ids plus a parallel
// explanation list.
type MatchResult struct {
	IDs      []string        `json:"ids"`
	Analysis []MatchAnalysis `json:"analysis"`
}

// Advice is a sourcing advisory answer with any grounding links the
// model surfaced.
type Advice struct {
	Text  string       `json:"text"`
	Links []AdviceLink `json:"links"`
}

// AdviceLink references an external source backing the advice.
type AdviceLink struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// Client calls the generative model. A Client with no backing connection
// (missing API key) is fully functional: every call takes the fallback
// branch.
type Client struct {
	client *genai.Client
	model  string
	log    *zap.Logger
}

// NewClient builds the AI collaborator. An empty API key disables the
// remote model rather than failing: the directory works offline.
func NewClient(ctx context.Context, cfg *config.AIConfig, log *zap.Logger) (*Client, error) {
	if log == nil {
		log = zap.NewNop()
	}
	c := &Client{model: cfg.Model, log: log}
	if cfg.APIKey == "" {
		log.Warn("no AI API key configured, serving fallback responses only")
		return c, nil
	}
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: cfg.APIKey})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	c.client = gc
	return c, nil
}

// GenerateProfile expands basic onboarding data into a full company
// dossier. On any failure it returns a serviceable templated profile.
func (c *Client) GenerateProfile(ctx context.Context, basic BasicProfile) ProfileFields {
	fallback := ProfileFields{
		Description:     fmt.Sprintf("Verified manufacturer in %s specializing in %s. Committed to quality and international standards.", basic.Location, basic.Category),
		Certifications:  []string{"ISO 9001"},
		EstablishedYear: 2020,
		EmployeeCount:   "50+",
		FactorySize:     "1,000 sqm",
		BusinessType:    "Manufacturer",
	}
	if c.client == nil {
		return fallback
	}

	prompt := fmt.Sprintf(`A new supplier is registering on QuickSupply (Cambodia B2B).
Name: %s
Location: %s
Industry: %s
Category: %s
Annual Capacity: %s

Task: Generate a professional B2B factory profile.
Return a JSON object with:
1. "description": A high-quality 3-paragraph company bio highlighting quality, location, and export readiness.
2. "certifications": Array of 2-3 realistic certifications for this industry (e.g., ISO 9001, GOTS, OEKO-TEX).
3. "establishedYear": A realistic year between 2000 and 2023.
4. "employeeCount": A realistic range (e.g., "50-100", "500+").
5. "factorySize": A realistic size in sqm (e.g., "2,500 sqm").
6. "businessType": A professional classification (e.g., "Manufacturer", "Direct Exporter").`,
		basic.Name, basic.Location, basic.Industry, basic.Category, basic.Capacity)

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"description":     {Type: genai.TypeString},
				"certifications":  {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
				"establishedYear": {Type: genai.TypeInteger},
				"employeeCount":   {Type: genai.TypeString},
				"factorySize":     {Type: genai.TypeString},
				"businessType":    {Type: genai.TypeString},
			},
			Required: []string{"description", "certifications", "establishedYear", "employeeCount", "factorySize", "businessType"},
		},
	})
	if err != nil {
		c.log.Warn("profile generation failed, using template", zap.Error(err))
		return fallback
	}

	var fields ProfileFields
	if err := json.Unmarshal([]byte(resp.Text()), &fields); err != nil {
		c.log.Warn("profile generation returned malformed JSON", zap.Error(err))
		return fallback
	}
	return fields
}

// MatchSuppliers asks the model for the top matches against the buyer's
// requirements. An empty result is the failure mode.
func (c *Client) MatchSuppliers(ctx context.Context, requirements string, candidates []model.Supplier) MatchResult {
	if c.client == nil {
		return MatchResult{IDs: []string{}, Analysis: []MatchAnalysis{}}
	}

	prompt := fmt.Sprintf(`Given these supplier profiles: %s
And these user requirements: "%s"
Analyze the requirements and select the top 3 matching suppliers.
Return a JSON object with:
1. "ids": an array of the IDs of the top 3 matching suppliers.
2. "analysis": an array of up to 3 objects, each containing:
   - "name": The name of the supplier.
   - "reason": A one-sentence specific reason why this supplier is a great fit.`,
		candidateJSON(candidates), requirements)

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"ids": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
				"analysis": {Type: genai.TypeArray, Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"name":   {Type: genai.TypeString},
						"reason": {Type: genai.TypeString},
					},
					Required: []string{"name", "reason"},
				}},
			},
			Required: []string{"ids", "analysis"},
		},
	})
	if err != nil {
		c.log.Warn("supplier matching failed", zap.Error(err))
		return MatchResult{IDs: []string{}, Analysis: []MatchAnalysis{}}
	}

	var result MatchResult
	if err := json.Unmarshal([]byte(resp.Text()), &result); err != nil {
		c.log.Warn("supplier matching returned malformed JSON", zap.Error(err))
		return MatchResult{IDs: []string{}, Analysis: []MatchAnalysis{}}
	}
	if result.IDs == nil {
		result.IDs = []string{}
	}
	if result.Analysis == nil {
		result.Analysis = []MatchAnalysis{}
	}
	return result
}

// ChatReply simulates the supplier side of the messaging panel.
func (c *Client) ChatReply(ctx context.Context, message string, supplier model.Supplier) string {
	const fallback = "Thank you for your message. We have received your inquiry and will respond as soon as possible."
	if c.client == nil {
		return fallback
	}

	names := make([]string, len(supplier.Products))
	for i, p := range supplier.Products {
		names[i] = p.Name
	}
	prompt := fmt.Sprintf(`You are the Sales and Export Manager for "%s" based in %s, Cambodia.
Your company profile: %s
Your products: %s

A potential international buyer has sent you this message: "%s"

Instructions:
1. Reply as the owner/manager of the factory.
2. Be professional, polite, and eager to do business.
3. Mention specific details about your products or location if relevant.
4. Keep the response concise (2-3 paragraphs max).
5. Do not mention you are an AI.`,
		supplier.Name, supplier.Location, supplier.Description, strings.Join(names, ", "), message)

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		c.log.Warn("chat reply failed", zap.String("supplier", supplier.Name), zap.Error(err))
		return fallback
	}
	if text := resp.Text(); text != "" {
		return text
	}
	return fallback
}

// SourcingAdvice answers a free-form sourcing question with grounding
// search enabled, citing the highlighted suppliers from the directory.
func (c *Client) SourcingAdvice(ctx context.Context, query string, candidates []model.Supplier) Advice {
	fallback := Advice{Text: "Error connecting to AI. Please try again later.", Links: []AdviceLink{}}
	if c.client == nil {
		return fallback
	}

	prompt := fmt.Sprintf(`User is looking for suppliers in Cambodia.
Context of our internal database: %s

User Query: "%s"

Instructions:
1. If a match exists in our database, highlight them.
2. Use Google Search to find more real-time information or additional reputable suppliers in Cambodia that aren't in our list.
3. Provide helpful advice on sourcing from Cambodia (taxes, shipping, reliability).
4. Be professional and encouraging.`,
		candidateJSON(candidates), query)

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Tools: []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
	})
	if err != nil {
		c.log.Warn("sourcing advice failed", zap.Error(err))
		return fallback
	}

	advice := Advice{Text: resp.Text(), Links: []AdviceLink{}}
	if advice.Text == "" {
		advice.Text = "I'm sorry, I couldn't process that request."
	}
	if len(resp.Candidates) > 0 && resp.Candidates[0].GroundingMetadata != nil {
		for _, chunk := range resp.Candidates[0].GroundingMetadata.GroundingChunks {
			if chunk.Web == nil {
				continue
			}
			link := AdviceLink{Title: chunk.Web.Title, URI: chunk.Web.URI}
			if link.Title == "" {
				link.Title = "Related Source"
			}
			advice.Links = append(advice.Links, link)
		}
	}
	return advice
}

// candidateJSON serialises a trimmed view of the candidates so prompts
// stay compact: directory metadata and product names, no image URLs.
func candidateJSON(candidates []model.Supplier) string {
	type productView struct {
		Name     string `json:"name"`
		Price    string `json:"price"`
		Category string `json:"category"`
	}
	type supplierView struct {
		ID             string        `json:"id"`
		Name           string        `json:"name"`
		Industry       string        `json:"industry"`
		Category       string        `json:"category"`
		Location       string        `json:"location"`
		Rating         float64       `json:"rating"`
		Description    string        `json:"description"`
		Certifications []string      `json:"certifications"`
		Products       []productView `json:"products"`
	}

	views := make([]supplierView, len(candidates))
	for i, s := range candidates {
		v := supplierView{
			ID:             s.ID,
			Name:           s.Name,
			Industry:       string(s.Industry),
			Category:       s.Category,
			Location:       s.Location,
			Rating:         s.Rating,
			Description:    s.Description,
			Certifications: s.Certifications,
		}
		for _, p := range s.Products {
			v.Products = append(v.Products, productView{Name: p.Name, Price: p.Price, Category: p.Category})
		}
		views[i] = v
	}
	data, err := json.Marshal(views)
	if err != nil {
		return "[]"
	}
	return string(data)
}
