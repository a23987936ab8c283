// Package extract implements ordered-selector field extraction over a
// parsed product page. Each extractor walks its selector list in
// priority order and the first usable value wins; there is no merging
// or scoring across selectors.
package extract

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Selectors holds the per-field candidate lists, highest priority first.
type Selectors struct {
	Title       []string
	Description []string
	Price       []string
	Images      []string
	Colors      []string
	Sizes       []string
}

// Defaults covers the markup conventions of common e-commerce sites.
func Defaults() Selectors {
	return Selectors{
		Title: []string{
			`h1[class*="product"]`,
			`h1[class*="title"]`,
			`h1.product-title`,
			`h1`,
			`[data-testid*="product-title"]`,
			`[itemprop="name"]`,
			`meta[property="og:title"]`,
		},
		Description: []string{
			`[class*="product-description"]`,
			`[class*="description"]`,
			`[itemprop="description"]`,
			`meta[name="description"]`,
			`meta[property="og:description"]`,
		},
		Price: []string{
			`[class*="price"]`,
			`[class*="cost"]`,
			`[itemprop="price"]`,
			`[data-testid*="price"]`,
			`meta[itemprop="price"]`,
		},
		Images: []string{
			`[class*="product-image"] img`,
			`[class*="gallery"] img`,
			`[class*="carousel"] img`,
			`[data-testid*="image"] img`,
			`img[itemprop="image"]`,
			`meta[property="og:image"]`,
		},
		Colors: []string{
			`[class*="color"]`,
			`[class*="swatch"]`,
			`[data-attribute*="color"]`,
		},
		Sizes: []string{
			`[class*="size"]`,
			`[data-attribute*="size"]`,
			`select[name*="size"] option`,
		},
	}
}

var priceRe = regexp.MustCompile(`[\d,]+\.?\d*`)

// Non-color/size strings that commonly match the loose color and size
// selectors: payment methods, promo banners, widget boilerplate.
var excludePatterns = []string{
	"free shipping", "sale", "sold out", "you may also like",
	"american express", "apple pay", "paypal", "visa", "mastercard",
	"discover", "google pay", "shop pay", "venmo", "ideal", "bancontact",
	"diners club", "model", "choose", "selection", "refresh", "window",
}

// Text returns the first selector's first match with non-empty trimmed
// text, falling back to the content or value attribute (meta tags and
// form controls), else def.
func Text(doc *goquery.Document, selectors []string, def string) string {
	for _, selector := range selectors {
		element := doc.Find(selector).First()
		if element.Length() == 0 {
			continue
		}
		if text := strings.TrimSpace(element.Text()); text != "" {
			return text
		}
		attr, ok := element.Attr("content")
		if !ok || attr == "" {
			attr, _ = element.Attr("value")
		}
		if attr != "" {
			return strings.TrimSpace(attr)
		}
	}
	return def
}

// Price scans the selectors in order and returns the first strictly
// positive numeric value found in the candidate's text or attributes.
func Price(doc *goquery.Document, selectors []string) (float64, bool) {
	for _, selector := range selectors {
		element := doc.Find(selector).First()
		if element.Length() == 0 {
			continue
		}
		priceText := strings.TrimSpace(element.Text())
		if priceText == "" {
			priceText, _ = element.Attr("content")
		}
		if priceText == "" {
			priceText, _ = element.Attr("value")
		}

		match := priceRe.FindString(priceText)
		if match == "" {
			continue
		}
		price, err := strconv.ParseFloat(strings.ReplaceAll(match, ",", ""), 64)
		if err == nil && price > 0 {
			return price, true
		}
	}
	return 0, false
}

// PriceText returns the raw text of the first element matching any
// price selector, for currency sniffing. Document order across the
// joined selector list decides which element is first.
func PriceText(doc *goquery.Document, selectors []string) string {
	element := doc.Find(strings.Join(selectors, ", ")).First()
	if element.Length() == 0 {
		return ""
	}
	if text := element.Text(); text != "" {
		return text
	}
	attr, _ := element.Attr("content")
	return attr
}

var imageAttrs = []string{"src", "data-src", "content", "data-lazy-src", "data-original"}

var badExtRe = regexp.MustCompile(`(?i)\.(svg|ico)$`)

// Images collects candidate image URLs across all selectors, buckets
// them into white-background, model, and plain shots, and returns a
// single representative: catalog thumbnails are most consistently the
// clean white-background product shot, while model photos are too
// noisy for a grid and are the last resort.
func Images(doc *goquery.Document, selectors []string, baseURL string) []string {
	var whiteBgImages, plainImages, modelImages []string

	for _, selector := range selectors {
		doc.Find(selector).Each(func(i int, img *goquery.Selection) {
			var imgURL string
			for _, attr := range imageAttrs {
				if v, ok := img.Attr(attr); ok && v != "" {
					imgURL = v
					break
				}
			}
			if imgURL == "" {
				return
			}

			if strings.HasPrefix(imgURL, "//") {
				imgURL = "https:" + imgURL
			} else if strings.HasPrefix(imgURL, "/") {
				parsed, err := url.Parse(baseURL)
				if err != nil {
					return
				}
				imgURL = parsed.Scheme + "://" + parsed.Host + imgURL
			}

			if !strings.HasPrefix(imgURL, "http") ||
				strings.Contains(imgURL, "placeholder") ||
				strings.Contains(imgURL, "logo") ||
				strings.Contains(imgURL, "icon") ||
				strings.Contains(imgURL, "avatar") ||
				badExtRe.MatchString(imgURL) {
				return
			}

			imgURLLower := strings.ToLower(imgURL)
			imgAlt := strings.ToLower(img.AttrOr("alt", ""))
			imgClass := strings.ToLower(img.AttrOr("class", ""))

			switch {
			case strings.Contains(imgURLLower, "white") ||
				strings.Contains(imgURLLower, "background") ||
				strings.Contains(imgURLLower, "flat") ||
				strings.Contains(imgURLLower, "_15") || // vendor convention for white-bg variants
				strings.Contains(imgAlt, "white") ||
				strings.Contains(imgClass, "white"):
				whiteBgImages = append(whiteBgImages, imgURL)
			case strings.Contains(imgURLLower, "model") ||
				strings.Contains(imgAlt, "model") ||
				strings.Contains(imgClass, "model"):
				modelImages = append(modelImages, imgURL)
			default:
				plainImages = append(plainImages, imgURL)
			}
		})
	}

	if len(whiteBgImages) > 0 {
		return []string{whiteBgImages[0]}
	}
	if len(plainImages) > 0 {
		return []string{plainImages[0]}
	}
	if len(modelImages) > 0 {
		return []string{modelImages[0]}
	}
	return nil
}

// Values collects short repeated values (colors, sizes) across all
// selectors, deduplicated in insertion order.
func Values(doc *goquery.Document, selectors []string) []string {
	seen := make(map[string]struct{})
	var values []string

	for _, selector := range selectors {
		doc.Find(selector).Each(func(i int, elem *goquery.Selection) {
			text := strings.TrimSpace(elem.Text())
			if text == "" {
				text = elem.AttrOr("title", "")
			}
			if text == "" {
				text = elem.AttrOr("data-value", "")
			}
			if text == "" {
				text = elem.AttrOr("data-color", "")
			}
			if text == "" || len(text) >= 50 {
				return
			}

			lowerText := strings.ToLower(text)
			for _, pattern := range excludePatterns {
				if strings.Contains(lowerText, pattern) {
					return
				}
			}

			if _, dup := seen[text]; dup {
				return
			}
			seen[text] = struct{}{}
			values = append(values, text)
		})
	}

	return values
}
