package matcher

import (
	"strings"

	"vkrishnan/ledger-match/internal/models"
)

// CategoryIncome and CategoryOther are the categories assigned when no
// expense keyword matches.
const (
	CategoryIncome = "income"
	CategoryOther  = "other"
)

// DefaultCategories is the built-in ordered expense-category table. The
// first category whose keyword appears in the narration wins; do not
// reorder entries, order is the tie-break.
func DefaultCategories() []models.CategoryConfig {
	return []models.CategoryConfig{
		{Name: "salary", Keywords: []string{"salary", "payroll", "wage", "employee", "staff", "pay slip"}},
		{Name: "food", Keywords: []string{"zomato", "swiggy", "food", "restaurant", "cafe", "pizza", "burger", "meal", "dining"}},
		{Name: "travel", Keywords: []string{"uber", "ola", "rapido", "travel", "taxi", "auto", "fuel", "petrol", "diesel", "transport"}},
		{Name: "shopping", Keywords: []string{"amazon", "flipkart", "myntra", "shopping", "store", "market", "purchase"}},
		{Name: "utilities", Keywords: []string{"electricity", "water", "gas", "bill", "mobile", "phone", "internet", "broadband"}},
		{Name: "entertainment", Keywords: []string{"netflix", "hotstar", "movie", "cinema", "theatre", "entertainment"}},
		{Name: "healthcare", Keywords: []string{"hospital", "clinic", "doctor", "medical", "pharmacy", "medicine"}},
		{Name: "education", Keywords: []string{"school", "college", "tuition", "course", "book", "education"}},
		{Name: "vendor", Keywords: []string{"vendor", "supplier", "contractor", "service provider"}},
		{Name: "client", Keywords: []string{"client", "customer", "received from"}},
	}
}

var incomeKeywords = []string{
	"salary", "refund", "interest", "dividend", "commission", "revenue", "income",
}

// Categorize maps a narration to a coarse spending/income category by
// keyword lookup against the given ordered table. Pure function.
func Categorize(narration string, categories []models.CategoryConfig) string {
	lower := strings.ToLower(narration)

	for _, category := range categories {
		for _, keyword := range category.Keywords {
			if strings.Contains(lower, keyword) {
				return category.Name
			}
		}
	}

	for _, keyword := range incomeKeywords {
		if strings.Contains(lower, keyword) {
			return CategoryIncome
		}
	}

	return CategoryOther
}
