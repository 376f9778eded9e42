package scraper

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFetchAll(t *testing.T) {
	var inFlight, maxInFlight int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cur := atomic.AddInt32(&inFlight, 1)
		defer atomic.AddInt32(&inFlight, -1)
		for {
			prev := atomic.LoadInt32(&maxInFlight)
			if cur <= prev || atomic.CompareAndSwapInt32(&maxInFlight, prev, cur) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)

		switch r.URL.Path {
		case "/page/2":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			_, _ = w.Write([]byte("body of " + r.URL.Path))
		}
	}))
	defer srv.Close()

	fetcher := newPageFetcher(srv.URL, "test-agent", 5*time.Second, 2)
	results := fetcher.FetchAll([]string{"/page/1", "/page/2", "/page/3", "/page/4"})
	require.Len(t, results, 4)

	require.NoError(t, results[0].Err)
	require.Equal(t, "body of /page/1", string(results[0].Body))

	require.Error(t, results[1].Err)
	require.Contains(t, results[1].Err.Error(), "status code error: 500")

	require.NoError(t, results[2].Err)
	require.Equal(t, "body of /page/3", string(results[2].Body))
	require.NoError(t, results[3].Err)
	require.Equal(t, "body of /page/4", string(results[3].Body))

	require.LessOrEqual(t, maxInFlight, int32(2))
}

func TestFetchAllEmpty(t *testing.T) {
	fetcher := newPageFetcher("http://127.0.0.1:0", "test-agent", time.Second, 4)
	require.Empty(t, fetcher.FetchAll(nil))
}

func TestFetchSetsUserAgent(t *testing.T) {
	var gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("user-agent")
	}))
	defer srv.Close()

	fetcher := newPageFetcher(srv.URL, "test-agent", time.Second, 1)
	res := fetcher.fetch("/page/1")
	require.NoError(t, res.Err)
	require.Equal(t, "test-agent", gotAgent)
}

func TestFetchConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	fetcher := newPageFetcher(srv.URL, "test-agent", time.Second, 1)
	res := fetcher.fetch("/page/1")
	require.Error(t, res.Err)
	require.Nil(t, res.Body)
}
