package scraper

import (
	"net/url"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
)

const (
	listingBlockSelector = ".js-restaurant__list_items .card__menu"
	paginationSelector   = "div.search-results__column li"
)

type fieldSelector struct {
	Selector string
	Attr     string
	Fallback string
}

// One selector per record field, applied uniformly to every listing
// block. A field whose selector matches nothing yields the fallback.
var listingFields = map[string]fieldSelector{
	"name":          {Selector: ".card__menu-content--title"},
	"location":      {Selector: ".card__menu-footer--location"},
	"price_cuisine": {Selector: ".card__menu-footer--price"},
	"distinction":   {Selector: ".card__menu-content--rating"},
	"source_url":    {Selector: "a.link", Attr: "href"},
}

func _getQueryDoc(data []byte) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(data)))
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func extractField(block *goquery.Selection, fs fieldSelector) string {
	sel := block.Find(fs.Selector).First()
	if sel.Length() == 0 {
		return fs.Fallback
	}
	if fs.Attr != "" {
		attr, exists := sel.Attr(fs.Attr)
		if !exists {
			return fs.Fallback
		}
		return strings.Trim(attr, " \n\t")
	}
	return cleanField(sel.Text())
}

// respToRestaurantList appends one record per listing block found in
// data. Blocks without a name never produce a record.
func respToRestaurantList(data []byte, base *url.URL, target *[]Restaurant) error {
	doc, err := _getQueryDoc(data)
	if err != nil {
		return err
	}
	doc.Find(listingBlockSelector).Each(func(_ int, block *goquery.Selection) {
		fields := make(map[string]string, len(listingFields))
		for name, fs := range listingFields {
			fields[name] = extractField(block, fs)
		}
		if fields["name"] == "" {
			return
		}
		price, cuisine := splitPriceCuisine(fields["price_cuisine"])
		*target = append(*target, Restaurant{
			Name:        fields["name"],
			Location:    fields["location"],
			CuisineType: cuisine,
			PriceRange:  price,
			Distinction: normalizeDistinction(fields["distinction"]),
			SourceURL:   resolveURL(base, fields["source_url"]),
		})
	})
	return nil
}

// respToPageCount counts the pagination entries of a listing page. A
// page without a pagination bar is a single-page result set.
func respToPageCount(data []byte) (int, error) {
	doc, err := _getQueryDoc(data)
	if err != nil {
		return 0, err
	}
	count := doc.Find(paginationSelector).Length()
	if count == 0 {
		return 1, nil
	}
	return count, nil
}

// splitPriceCuisine splits the combined "$$$ · Modern Cuisine" footer
// into its price and cuisine halves.
func splitPriceCuisine(s string) (string, string) {
	if s == "" {
		return "", ""
	}
	parts := strings.SplitN(s, "·", 2)
	if len(parts) == 1 {
		if looksLikePrice(s) {
			return cleanField(s), ""
		}
		return "", cleanField(s)
	}
	price := cleanField(parts[0])
	cuisine := cleanField(parts[1])
	if !looksLikePrice(price) && looksLikePrice(cuisine) {
		price, cuisine = cuisine, price
	}
	return price, cuisine
}

func looksLikePrice(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) || strings.ContainsRune("$€£¥", r) {
			return true
		}
	}
	return false
}

// normalizeDistinction reduces award text like "Two Stars: Excellent
// cooking, worth a detour!" to the bare award name. Unknown award text
// passes through as-is.
func normalizeDistinction(raw string) string {
	if raw == "" {
		return ""
	}
	for _, name := range distinctionNames {
		if strings.Contains(raw, name) {
			return name
		}
	}
	return raw
}

func resolveURL(base *url.URL, href string) string {
	if href == "" || base == nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

func cleanField(s string) string {
	s = strings.Replace(s, "\t", " ", -1)
	s = strings.Replace(s, "\r", " ", -1)
	s = strings.Replace(s, "\n", " ", -1)
	for strings.Contains(s, "  ") {
		s = strings.Replace(s, "  ", " ", -1)
	}
	return strings.Trim(s, " ")
}
