package ratesapi_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/savings_ledger/internal/adapters/ratesapi"
	"github.com/SscSPs/savings_ledger/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchRates_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v4/latest/RSD", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"base":"RSD","date":"2025-03-01","rates":{"RSD":1,"EUR":0.0085,"usd":0.0093}}`))
	}))
	defer srv.Close()

	client := ratesapi.NewClient(srv.URL + "/v4/latest/")
	rates, err := client.FetchRates(context.Background(), "rsd")

	require.NoError(t, err)
	assert.Equal(t, "0.0085", rates["EUR"].String())
	assert.Equal(t, "0.0093", rates["USD"].String())
	assert.Equal(t, "1", rates["RSD"].String())
}

func TestFetchRates_Non2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := ratesapi.NewClient(srv.URL).FetchRates(context.Background(), "RSD")

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrRateFetch))
	var fetchErr *apperrors.RateFetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, http.StatusTooManyRequests, fetchErr.StatusCode)
}

func TestFetchRates_MalformedPayload(t *testing.T) {
	for name, body := range map[string]string{
		"not json":     `<html>oops</html>`,
		"no rates":     `{"base":"RSD","rates":{}}`,
		"wrong base":   `{"base":"EUR","rates":{"EUR":1}}`,
		"string rates": `{"base":"RSD","rates":{"EUR":"abc"}}`,
	} {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(body))
			}))
			defer srv.Close()

			_, err := ratesapi.NewClient(srv.URL).FetchRates(context.Background(), "RSD")
			assert.True(t, errors.Is(err, apperrors.ErrRateFetch))
		})
	}
}

func TestFetchRates_RespectsDeadline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := ratesapi.NewClient(srv.URL).FetchRates(ctx, "RSD")

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrRateFetch))
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}
