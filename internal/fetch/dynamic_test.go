package fetch_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arty/backend/internal/fetch"
)

type stubLimits struct {
	timeoutMS int
	maxChars  int
	err       error
}

func (s *stubLimits) FetchLimits(context.Context) (int, int, error) {
	return s.timeoutMS, s.maxChars, s.err
}

func TestDynamicFetcher_MaxCharsUpdateTakesEffect(t *testing.T) {
	long := strings.Repeat("a", 500)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body><p>" + long + "</p></body></html>"))
	}))
	defer server.Close()

	limits := &stubLimits{maxChars: 100}
	f := fetch.NewDynamicFetcher(fetch.New(5*time.Second, 2000), limits)

	text, err := f.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Len(t, text, 100)

	// The next fetch picks up the new limit without rebuilding the fetcher.
	limits.maxChars = 50
	text, err = f.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Len(t, text, 50)
}

func TestDynamicFetcher_TimeoutUpdateTakesEffect(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte("<p>too late</p>"))
	}))
	defer server.Close()

	f := fetch.NewDynamicFetcher(fetch.New(5*time.Second, 2000), &stubLimits{timeoutMS: 20})

	_, err := f.Fetch(context.Background(), server.URL)
	assert.Error(t, err)
}

func TestDynamicFetcher_SourceFailureFallsBackToDefaults(t *testing.T) {
	long := strings.Repeat("a", 500)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body><p>" + long + "</p></body></html>"))
	}))
	defer server.Close()

	f := fetch.NewDynamicFetcher(fetch.New(5*time.Second, 100), &stubLimits{err: errors.New("db down")})

	text, err := f.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Len(t, text, 100)
}

func TestDynamicFetcher_ZeroLimitsKeepDefaults(t *testing.T) {
	long := strings.Repeat("a", 500)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body><p>" + long + "</p></body></html>"))
	}))
	defer server.Close()

	f := fetch.NewDynamicFetcher(fetch.New(5*time.Second, 100), &stubLimits{})

	text, err := f.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Len(t, text, 100)
}
