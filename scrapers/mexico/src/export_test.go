package scraper

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func readLines(t *testing.T, path string) []string {
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimRight(string(content), "\n"), "\n")
}

func TestSaveRestaurantsInCSV(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "restaurants.csv")
	list := []Restaurant{
		{
			Name:        "Pujol",
			Location:    "Mexico City",
			CuisineType: "Modern Cuisine",
			PriceRange:  "$$$$",
			Distinction: "Two Stars",
			SourceURL:   "https://guide.michelin.com/en/mx/mexico-city/pujol/restaurant",
		},
		{
			Name:        "Quintonil",
			Location:    "Mexico City",
			Distinction: "One Star",
		},
	}
	require.NoError(t, saveRestaurantsInCSV(list, outPath))

	lines := readLines(t, outPath)
	require.Len(t, lines, len(list)+1)
	require.Equal(t, "name,location,cuisine_type,price_range,distinction,source_url", lines[0])
	require.Equal(t, "Pujol,Mexico City,Modern Cuisine,$$$$,Two Stars,https://guide.michelin.com/en/mx/mexico-city/pujol/restaurant", lines[1])
	require.Equal(t, "Quintonil,Mexico City,,,One Star,", lines[2])
}

func TestSaveRestaurantsInCSVOverwrites(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "restaurants.csv")
	require.NoError(t, saveRestaurantsInCSV([]Restaurant{{Name: "Pujol"}, {Name: "Quintonil"}}, outPath))
	require.NoError(t, saveRestaurantsInCSV([]Restaurant{{Name: "Rosetta"}}, outPath))

	lines := readLines(t, outPath)
	require.Len(t, lines, 2)
	require.Equal(t, "Rosetta,,,,,", lines[1])
}

func TestSaveRestaurantsInCSVQuotesAndAccents(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "restaurants.csv")
	list := []Restaurant{
		{Name: "Máximo Bistrot, Local", Location: "Ciudad de México"},
	}
	require.NoError(t, saveRestaurantsInCSV(list, outPath))

	lines := readLines(t, outPath)
	require.Len(t, lines, 2)
	require.Equal(t, `"Maximo Bistrot, Local",Ciudad de Mexico,,,,`, lines[1])
}

func TestSaveRestaurantsInCSVEmptyDataset(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "restaurants.csv")
	require.NoError(t, saveRestaurantsInCSV(nil, outPath))

	lines := readLines(t, outPath)
	require.Len(t, lines, 1)
}

func TestSaveRestaurantsInJson(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "nested", "restaurants.json")
	list := []Restaurant{{Name: "Pujol", Location: "Mexico City"}}
	require.NoError(t, saveRestaurantsInJson(list, outPath))

	content, err := os.ReadFile(outPath)
	require.NoError(t, err)
	var decoded []Restaurant
	require.NoError(t, json.Unmarshal(content, &decoded))
	require.Equal(t, list, decoded)
}
