/**
 * @description
 * This file holds the canonical storefront template registry: every template
 * the platform ships, its business category, and the plan it requires. The
 * registry is static data compiled into the service; the heavy assets
 * (layouts, previews) live with the storefront renderer, which looks
 * templates up by id.
 */
package templates

import "sort"

// PlanTier is a billing plan level. Tiers are ordered: free < growth < pro.
type PlanTier string

const (
	PlanFree   PlanTier = "free"
	PlanGrowth PlanTier = "growth"
	PlanPro    PlanTier = "pro"
)

var tierRank = map[PlanTier]int{PlanFree: 0, PlanGrowth: 1, PlanPro: 2}

// IsTierAccessible reports whether a merchant on userTier may activate a
// template gated at requiredTier. Unknown tiers rank lowest.
func IsTierAccessible(userTier, requiredTier PlanTier) bool {
	return tierRank[userTier] >= tierRank[requiredTier]
}

// Definition describes one storefront template.
type Definition struct {
	ID           string   `json:"id"`
	Slug         string   `json:"slug"`
	DisplayName  string   `json:"display_name"`
	Category     string   `json:"category"`
	RequiredPlan PlanTier `json:"required_plan"`
	Status       string   `json:"status"` // "active" | "inactive"
	Features     []string `json:"features,omitempty"`
}

// CategoryConfig groups templates under a merchant-facing business category.
// RecommendedTemplates is ordered best-fit first.
type CategoryConfig struct {
	Slug                 string   `json:"slug"`
	DisplayName          string   `json:"display_name"`
	RecommendedTemplates []string `json:"recommended_templates"`
}

// Registry is the full template catalog keyed by template id.
var Registry = map[string]Definition{
	"vayva-standard": {
		ID: "vayva-standard", Slug: "standard", DisplayName: "Vayva Standard",
		Category: "retail", RequiredPlan: PlanFree, Status: "active",
		Features: []string{"Conversion-optimized storefront", "Product grid with quick view", "Mobile-first checkout"},
	},
	"vayva-aa-fashion": {
		ID: "vayva-aa-fashion", Slug: "aa-fashion", DisplayName: "A&A Fashion",
		Category: "retail", RequiredPlan: PlanGrowth, Status: "active",
		Features: []string{"Full-width imagery", "Lookbook collections", "Size guide modal"},
	},
	"vayva-bookly-pro": {
		ID: "vayva-bookly-pro", Slug: "bookly-pro", DisplayName: "Bookly Pro",
		Category: "services", RequiredPlan: PlanGrowth, Status: "active",
		Features: []string{"Appointment booking", "Staff calendars", "Deposit collection"},
	},
	"vayva-salon": {
		ID: "vayva-salon", Slug: "salon", DisplayName: "Salon & Spa",
		Category: "services", RequiredPlan: PlanFree, Status: "active",
		Features: []string{"Service menu", "Before/after gallery", "WhatsApp booking"},
	},
	"vayva-chopnow": {
		ID: "vayva-chopnow", Slug: "chopnow", DisplayName: "ChopNow",
		Category: "food", RequiredPlan: PlanFree, Status: "active",
		Features: []string{"Menu with prep times", "Order batching", "Delivery zones"},
	},
	"vayva-gourmet": {
		ID: "vayva-gourmet", Slug: "gourmet", DisplayName: "Gourmet",
		Category: "food", RequiredPlan: PlanGrowth, Status: "active",
		Features: []string{"Course-style menus", "Table reservations", "Catering quotes"},
	},
	"vayva-file-vault": {
		ID: "vayva-file-vault", Slug: "file-vault", DisplayName: "File Vault",
		Category: "digital", RequiredPlan: PlanFree, Status: "active",
		Features: []string{"Instant downloads", "License keys", "Customer library"},
	},
	"vayva-saas-starter": {
		ID: "vayva-saas-starter", Slug: "saas-starter", DisplayName: "SaaS Starter",
		Category: "digital", RequiredPlan: PlanPro, Status: "active",
		Features: []string{"Subscription plans", "Feature comparison", "Trial signups"},
	},
	"vayva-ticketly": {
		ID: "vayva-ticketly", Slug: "ticketly", DisplayName: "Ticketly",
		Category: "events", RequiredPlan: PlanGrowth, Status: "active",
		Features: []string{"Ticket tiers", "QR check-in", "Attendee lists"},
	},
	"vayva-eduflow": {
		ID: "vayva-eduflow", Slug: "eduflow", DisplayName: "EduFlow",
		Category: "education", RequiredPlan: PlanGrowth, Status: "active",
		Features: []string{"Course curriculum", "Cohort enrolment", "Progress tracking"},
	},
	"vayva-bulktrade": {
		ID: "vayva-bulktrade", Slug: "bulktrade", DisplayName: "BulkTrade",
		Category: "b2b", RequiredPlan: PlanPro, Status: "active",
		Features: []string{"Tiered pricing", "RFQ workflow", "Partial payments"},
	},
	"vayva-markethub": {
		ID: "vayva-markethub", Slug: "markethub", DisplayName: "MarketHub",
		Category: "marketplace", RequiredPlan: PlanPro, Status: "active",
		Features: []string{"Multi-vendor listings", "Vendor payouts", "Commission rules"},
	},
	"vayva-giveflow": {
		ID: "vayva-giveflow", Slug: "giveflow", DisplayName: "GiveFlow",
		Category: "nonprofit", RequiredPlan: PlanFree, Status: "active",
		Features: []string{"Campaign pages", "Recurring donations", "Impact updates"},
	},
	"vayva-homelist": {
		ID: "vayva-homelist", Slug: "homelist", DisplayName: "HomeList",
		Category: "real-estate", RequiredPlan: PlanGrowth, Status: "active",
		Features: []string{"Property listings", "Viewing requests", "Agent profiles"},
	},
}

// Categories is the merchant-facing category catalog, each with its
// best-fit-first template recommendations.
var Categories = []CategoryConfig{
	{Slug: "retail", DisplayName: "Retail", RecommendedTemplates: []string{"vayva-standard", "vayva-aa-fashion"}},
	{Slug: "services", DisplayName: "Services & Appointments", RecommendedTemplates: []string{"vayva-bookly-pro", "vayva-salon"}},
	{Slug: "food", DisplayName: "Food & Dining", RecommendedTemplates: []string{"vayva-chopnow", "vayva-gourmet"}},
	{Slug: "digital", DisplayName: "Digital Products", RecommendedTemplates: []string{"vayva-file-vault", "vayva-saas-starter"}},
	{Slug: "events", DisplayName: "Events & Ticketing", RecommendedTemplates: []string{"vayva-ticketly"}},
	{Slug: "education", DisplayName: "Education & Courses", RecommendedTemplates: []string{"vayva-eduflow"}},
	{Slug: "b2b", DisplayName: "Wholesale & B2B", RecommendedTemplates: []string{"vayva-bulktrade"}},
	{Slug: "marketplace", DisplayName: "Marketplace", RecommendedTemplates: []string{"vayva-markethub"}},
	{Slug: "nonprofit", DisplayName: "Nonprofit", RecommendedTemplates: []string{"vayva-giveflow"}},
	{Slug: "real-estate", DisplayName: "Real Estate", RecommendedTemplates: []string{"vayva-homelist"}},
}

// ByID looks a template up by id.
func ByID(id string) (Definition, bool) {
	def, ok := Registry[id]
	return def, ok
}

// CategoryBySlug looks a category up by slug.
func CategoryBySlug(slug string) (CategoryConfig, bool) {
	for _, c := range Categories {
		if c.Slug == slug {
			return c, true
		}
	}
	return CategoryConfig{}, false
}

// Active returns every active template in category order, recommendation
// order within each category.
func Active() []Definition {
	var defs []Definition
	seen := make(map[string]bool)
	for _, c := range Categories {
		for _, id := range c.RecommendedTemplates {
			if def, ok := Registry[id]; ok && def.Status == "active" && !seen[id] {
				defs = append(defs, def)
				seen[id] = true
			}
		}
	}
	// Active templates outside every recommendation list still belong in
	// the catalog; append them in a stable order.
	var rest []string
	for id, def := range Registry {
		if def.Status == "active" && !seen[id] {
			rest = append(rest, id)
		}
	}
	sort.Strings(rest)
	for _, id := range rest {
		defs = append(defs, Registry[id])
	}
	return defs
}
