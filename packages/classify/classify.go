// Package classify holds the pure taxonomy heuristics. Every function
// here is stateless and operates on normalized text, so the pipeline
// stays unit-testable without any network or store dependency.
package classify

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/abadojack/whatlanggo"

	"ingest/packages/domain"
)

type categoryRule struct {
	re *regexp.Regexp
	id int
}

// Rule order matters: first hit wins, so the more specific groups
// (outerwear before shoes, bags before dresses) are tested first.
var categoryRules = []categoryRule{
	{regexp.MustCompile(`\b(shirt|top|blouse|sweater|hoodie)\b`), domain.CategoryTops},
	{regexp.MustCompile(`\b(pants|jeans|trousers|shorts|skirt)\b`), domain.CategoryBottoms},
	{regexp.MustCompile(`\b(jacket|coat|parka|blazer)\b`), domain.CategoryOuterwear},
	{regexp.MustCompile(`\b(shoes|sneakers|boots|heels|sandals|slippers)\b`), domain.CategoryShoes},
	{regexp.MustCompile(`\b(bag|backpack|purse|handbag|tote|wallet)\b`), domain.CategoryBags},
	{regexp.MustCompile(`\b(dress|gown)\b`), domain.CategoryDresses},
	{regexp.MustCompile(`\b(necklace|ring|earring|bracelet|watch)\b`), domain.CategoryJewelry},
}

var (
	womenRe = regexp.MustCompile(`\b(women|womens|ladies|female)\b`)
	menRe   = regexp.MustCompile(`\b(men|mens|male|guy)\b`)
)

// Category maps title+description keywords onto the fixed 8-way
// taxonomy, defaulting to Accessories.
func Category(title, description string) int {
	text := strings.ToLower(title + " " + description)
	for _, rule := range categoryRules {
		if rule.re.MatchString(text) {
			return rule.id
		}
	}
	return domain.CategoryAccessories
}

func Gender(title, description string) domain.Gender {
	text := strings.ToLower(title + " " + description)
	if womenRe.MatchString(text) {
		return domain.Women
	}
	if menRe.MatchString(text) {
		return domain.Men
	}
	return domain.Unisex
}

// Currency sniffs the raw price text for symbols or codes. The checks
// are independent, so text carrying several markers resolves to the
// last matching one (JPY); that mirrors the original tool and is
// pinned by a test.
func Currency(priceText string) string {
	currency := "USD"
	if strings.Contains(priceText, "€") || strings.Contains(priceText, "EUR") {
		currency = "EUR"
	}
	if strings.Contains(priceText, "£") || strings.Contains(priceText, "GBP") {
		currency = "GBP"
	}
	if strings.Contains(priceText, "¥") || strings.Contains(priceText, "JPY") {
		currency = "JPY"
	}
	return currency
}

// BrandFromURL derives a best-effort brand name from the hostname:
// "www.protemoa.com" -> "Protemoa". No alias dictionary is consulted.
func BrandFromURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Hostname() == "" {
		return "Unknown"
	}
	hostname := strings.TrimPrefix(parsed.Hostname(), "www.")
	brandName := strings.Split(hostname, ".")[0]
	if brandName == "" {
		return "Unknown"
	}
	return strings.ToUpper(brandName[:1]) + brandName[1:]
}

// Language returns the ISO-639-3 code of the page text, or "" when the
// text is empty. The keyword classifiers above are English-only, so a
// non-"eng" result usually means they will fall back to their defaults.
func Language(title, description string) string {
	text := strings.TrimSpace(title + " " + description)
	if text == "" {
		return ""
	}
	info := whatlanggo.Detect(text)
	return info.Lang.Iso6393()
}
