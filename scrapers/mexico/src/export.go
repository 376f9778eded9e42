package scraper

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var csvHeader = []string{
	"name",
	"location",
	"cuisine_type",
	"price_range",
	"distinction",
	"source_url",
}

func removeAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	s, _, _ = transform.String(t, s)
	return s
}

// saveRestaurantsInCSV overwrites outPath with the header row followed
// by one row per record, in collection order.
func saveRestaurantsInCSV(list []Restaurant, outPath string) error {
	out := [][]string{csvHeader}
	for _, r := range list {
		out = append(out, []string{
			removeAccents(r.Name),
			removeAccents(r.Location),
			removeAccents(r.CuisineType),
			r.PriceRange,
			removeAccents(r.Distinction),
			r.SourceURL,
		})
	}
	csvFile, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer csvFile.Close()
	w := csv.NewWriter(csvFile)
	if err := w.WriteAll(out); err != nil {
		return err
	}
	return w.Error()
}

func saveRestaurantsInJson(list []Restaurant, outPath string) error {
	jsonStr, err := json.MarshalIndent(list, "", " ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0777); err != nil {
		return err
	}
	return os.WriteFile(outPath, jsonStr, 0666)
}
