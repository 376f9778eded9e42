package scraper

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
)

type FetchResult struct {
	URL  string
	Body []byte
	Err  error
}

type pageFetcher struct {
	client     *resty.Client
	maxThreads int
}

func newPageFetcher(baseUrl string, userAgent string, timeout time.Duration, maxThreads int) *pageFetcher {
	client := resty.New()
	client.SetBaseURL(baseUrl)
	client.SetHeader("user-agent", userAgent)
	client.SetTimeout(timeout)
	if maxThreads < 1 {
		maxThreads = 1
	}
	return &pageFetcher{
		client:     client,
		maxThreads: maxThreads,
	}
}

func (f *pageFetcher) fetch(path string) FetchResult {
	res, err := f.client.R().Get(path)
	if err != nil {
		return FetchResult{URL: path, Err: err}
	}
	if res.StatusCode() != http.StatusOK {
		return FetchResult{URL: path, Err: fmt.Errorf("status code error: %d", res.StatusCode())}
	}
	return FetchResult{URL: path, Body: res.Body()}
}

// FetchAll requests every path concurrently (at most maxThreads in
// flight) and returns the results paired to the input by index, no
// matter the completion order. A failed fetch only marks its own slot.
func (f *pageFetcher) FetchAll(paths []string) []FetchResult {
	type indexed struct {
		idx int
		res FetchResult
	}
	results := make(chan indexed, len(paths))
	sem := make(chan struct{}, f.maxThreads)
	var wg sync.WaitGroup
	for i, path := range paths {
		wg.Add(1)
		go func(idx int, path string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			results <- indexed{idx: idx, res: f.fetch(path)}
		}(i, path)
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	out := make([]FetchResult, len(paths))
	for r := range results {
		out[r.idx] = r.res
	}
	return out
}
