package scraper

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/gojetpack/pyos"
)

const (
	defaultBaseUrl    = "https://guide.michelin.com/"
	defaultUserAgent  = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"
	defaultOutputCSV  = "restaurants.csv"
	listingPathFormat = "/en/mx/restaurants/page/%d"
	pageCacheDir      = "pages"
	datasetJsonFile   = "restaurants.json"
)

func BeginPage() int {
	return 1
}

// EndPage requests page-count discovery from the pagination bar of the
// first listing page.
func EndPage() int {
	return -1
}

type CachePolicy struct {
	UseCacheForPages bool
	OutPath          string
}

func (c *CachePolicy) pageFile(page int) string {
	return filepath.Join(c.OutPath, pageCacheDir, fmt.Sprintf("page_%d.html", page))
}

type MichelinGuideScraper struct {
	MaxThreads int
	BaseUrl    string
	UserAgent  string
	Timeout    time.Duration
	OutputCSV  string
}

func (y *MichelinGuideScraper) setup() {
	if y.BaseUrl == "" {
		y.BaseUrl = defaultBaseUrl
	}
	if y.UserAgent == "" {
		y.UserAgent = defaultUserAgent
	}
	if y.Timeout == 0 {
		y.Timeout = 30 * time.Second
	}
	if y.MaxThreads == 0 {
		y.MaxThreads = 1
	}
	if y.OutputCSV == "" {
		y.OutputCSV = defaultOutputCSV
	}
}

func listingPath(page int) string {
	return fmt.Sprintf(listingPathFormat, page)
}

func getRealCachePath(cachePath string) string {
	if cachePath != "" {
		return cachePath
	}
	wd, err := os.Getwd()
	if err != nil {
		return "./"
	}
	return wd
}

func readCachedPage(cachePolicy *CachePolicy, page int) ([]byte, bool) {
	path := cachePolicy.pageFile(page)
	if !pyos.Path.IsFile(path) {
		return nil, false
	}
	content, err := os.ReadFile(path)
	if err != nil {
		log.Print(err)
		return nil, false
	}
	return content, true
}

func writeCachedPage(cachePolicy *CachePolicy, page int, body []byte) {
	err := os.WriteFile(cachePolicy.pageFile(page), body, 0666)
	if err != nil {
		log.Print(err)
	}
}

// loadPage returns one listing page, from cache when allowed, fetching
// and back-filling the cache otherwise.
func (y *MichelinGuideScraper) loadPage(fetcher *pageFetcher, cachePolicy *CachePolicy, page int) ([]byte, error) {
	if cachePolicy.UseCacheForPages {
		if body, ok := readCachedPage(cachePolicy, page); ok {
			return body, nil
		}
	}
	res := fetcher.fetch(listingPath(page))
	if res.Err != nil {
		return nil, res.Err
	}
	if cachePolicy.UseCacheForPages {
		writeCachedPage(cachePolicy, page, res.Body)
	}
	return res.Body, nil
}

// Scrap enumerates the listing pages startPage..stopPage (stopPage -1
// means discover the count from the first page), fetches the ones not
// already cached concurrently, extracts one record per listing block
// and writes the dataset as CSV. A page that fails to fetch or parse
// is skipped and contributes no records.
func (y *MichelinGuideScraper) Scrap(startPage int, stopPage int, cachePolicy *CachePolicy) error {
	y.setup()
	base, err := url.Parse(y.BaseUrl)
	if err != nil {
		return fmt.Errorf("invalid base url %q: %w", y.BaseUrl, err)
	}
	if cachePolicy == nil {
		cachePolicy = &CachePolicy{}
	}
	if cachePolicy.UseCacheForPages {
		cachePolicy.OutPath = getRealCachePath(cachePolicy.OutPath)
		if err := os.MkdirAll(filepath.Join(cachePolicy.OutPath, pageCacheDir), 0777); err != nil {
			return err
		}
		if !pyos.Path.IsDir(cachePolicy.OutPath) {
			return fmt.Errorf("the expected cache dir must be an directory")
		}
	}
	fetcher := newPageFetcher(y.BaseUrl, y.UserAgent, y.Timeout, y.MaxThreads)

	bodies := map[int][]byte{}
	if stopPage == -1 {
		first, err := y.loadPage(fetcher, cachePolicy, startPage)
		if err != nil {
			return fmt.Errorf("loading page %d: %w", startPage, err)
		}
		bodies[startPage] = first
		count, err := respToPageCount(first)
		if err != nil {
			return err
		}
		stopPage = startPage + count - 1
		log.Printf("discovered %d listing pages", count)
	}

	var missing []int
	for page := startPage; page <= stopPage; page++ {
		if _, ok := bodies[page]; ok {
			continue
		}
		if cachePolicy.UseCacheForPages {
			if body, ok := readCachedPage(cachePolicy, page); ok {
				bodies[page] = body
				continue
			}
		}
		missing = append(missing, page)
	}

	paths := make([]string, len(missing))
	for i, page := range missing {
		paths[i] = listingPath(page)
	}
	for i, res := range fetcher.FetchAll(paths) {
		page := missing[i]
		if res.Err != nil {
			log.Printf("skipping page %d: %v", page, res.Err)
			continue
		}
		bodies[page] = res.Body
		if cachePolicy.UseCacheForPages {
			writeCachedPage(cachePolicy, page, res.Body)
		}
	}

	restaurants := make([]Restaurant, 0)
	for page := startPage; page <= stopPage; page++ {
		body, ok := bodies[page]
		if !ok {
			continue
		}
		prevLen := len(restaurants)
		if err := respToRestaurantList(body, base, &restaurants); err != nil {
			log.Printf("skipping page %d: %v", page, err)
			continue
		}
		log.Printf("page %d: %d restaurants", page, len(restaurants)-prevLen)
	}

	if cachePolicy.UseCacheForPages {
		err := saveRestaurantsInJson(restaurants, filepath.Join(cachePolicy.OutPath, datasetJsonFile))
		if err != nil {
			log.Print(err)
		}
	}
	return saveRestaurantsInCSV(restaurants, y.OutputCSV)
}
