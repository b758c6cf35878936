/**
 * @description
 * This file implements category recommendation: mapping a merchant's
 * free-text or enumerated industry signal to a canonical business category
 * and the single best-fit storefront template for it.
 *
 * @notes
 * - The substring fallback is a best-effort classifier, not a validated
 *   business rule; its behavior is pinned by golden snapshots rather than
 *   asserted case-by-case.
 * - A nil result tells the caller to present the generic catalog instead of
 *   a single recommendation.
 */
package app

import (
	"strings"

	"github.com/vayva/onboarding-service/internal/templates"
)

// TemplateRecommendation pairs a canonical category with its best-fit template.
type TemplateRecommendation struct {
	CategorySlug string `json:"category_slug"`
	TemplateID   string `json:"template_id"`
}

// industryKeywords maps free-text fragments to category slugs. Rules are
// evaluated in order; the generic retail words sit last so that, say,
// "shoe store" matches the fashion rule before the bare "store" rule.
var industryKeywords = []struct {
	keywords []string
	category string
}{
	{[]string{"food", "kitchen", "restaurant", "catering", "chef", "bakery"}, "food"},
	{[]string{"fashion", "apparel", "boutique", "clothing", "shoe"}, "retail"},
	{[]string{"salon", "beauty", "spa", "barber", "cleaning"}, "services"},
	{[]string{"estate", "property", "realtor"}, "real-estate"},
	{[]string{"event", "ticket", "conference", "wedding"}, "events"},
	{[]string{"school", "course", "academy", "tutor", "education", "coach"}, "education"},
	{[]string{"wholesale", "bulk", "distributor", "supplier"}, "b2b"},
	{[]string{"charity", "ngo", "nonprofit", "donation"}, "nonprofit"},
	{[]string{"digital", "software", "saas", "download", "ebook"}, "digital"},
	{[]string{"market", "vendor", "mall"}, "marketplace"},
	{[]string{"retail", "shop", "store"}, "retail"},
}

// RecommendTemplate resolves an industry signal to a category and its
// best-fit template. Returns nil when nothing matches.
func RecommendTemplate(industry string) *TemplateRecommendation {
	signal := strings.ToLower(strings.TrimSpace(industry))
	if signal == "" {
		return nil
	}

	if category, ok := templates.CategoryBySlug(signal); ok {
		return recommendationFor(category)
	}
	for _, c := range templates.Categories {
		if strings.ToLower(c.DisplayName) == signal {
			return recommendationFor(c)
		}
	}

	for _, rule := range industryKeywords {
		for _, kw := range rule.keywords {
			if strings.Contains(signal, kw) {
				if category, ok := templates.CategoryBySlug(rule.category); ok {
					return recommendationFor(category)
				}
			}
		}
	}
	return nil
}

func recommendationFor(category templates.CategoryConfig) *TemplateRecommendation {
	if len(category.RecommendedTemplates) == 0 {
		return nil
	}
	return &TemplateRecommendation{
		CategorySlug: category.Slug,
		TemplateID:   category.RecommendedTemplates[0],
	}
}
