// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pure

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pure-import/internal/httputil"
	"github.com/pdiddy/pure-import/pkg/types"
)

func init() {
	httputil.RetryBaseDelay = time.Millisecond
}

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	cfg := types.PureConfig{
		BaseURL:    ts.URL + "/ws/api",
		APIKey:     "test-key",
		MaxRetries: 2,
		HTTPConfig: types.HTTPConfig{UserAgent: "pure-import-test/0.1"},
	}
	return NewClient(cfg, ts.Client(), zerolog.Nop())
}

func TestCreateExternalPerson(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/ws/api/external-persons", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("api-key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Ada", body["name"]["firstName"])
		assert.Equal(t, "Lovelace", body["name"]["lastName"])

		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"uuid":"ext-123","name":{"firstName":"Ada","lastName":"Lovelace"}}`)
	})

	got, err := c.CreateExternalPerson(context.Background(), "Ada", "Lovelace")
	require.NoError(t, err)
	assert.Equal(t, "ext-123", got)
}

func TestCreateExternalPersonFailure(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, "slow down")
	})

	_, err := c.CreateExternalPerson(context.Background(), "Ada", "Lovelace")
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
	assert.Equal(t, "slow down", apiErr.Body)
	assert.ErrorIs(t, err, ErrRateLimited)
	// Creates are never retried.
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestCreateExternalPersonMissingUUID(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	})
	_, err := c.CreateExternalPerson(context.Background(), "Ada", "Lovelace")
	assert.Error(t, err)
}

func TestSearchJournals(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     []string
	}{
		{name: "one match", response: `{"count":1,"items":[{"uuid":"j-1","title":{"value":"Int J Cancer"}}]}`, want: []string{"j-1"}},
		{name: "no match", response: `{"count":0,"items":[]}`, want: nil},
		{name: "items missing", response: `{"count":0}`, want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/ws/api/journals/search", r.URL.Path)
				b, _ := io.ReadAll(r.Body)
				assert.JSONEq(t, `{"searchString":"0020-7136"}`, string(b))
				fmt.Fprint(w, tt.response)
			})
			items, err := c.SearchJournals(context.Background(), "0020-7136")
			require.NoError(t, err)
			var got []string
			for _, j := range items {
				got = append(got, j.UUID)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSearchJournalsRetriesRateLimit(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, `{"count":1,"items":[{"uuid":"j-1"}]}`)
	})
	items, err := c.SearchJournals(context.Background(), "0020-7136")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestCreateResearchOutput(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/ws/api/research-outputs", r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ResearchOutput", body["systemName"])
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"uuid":"ro-1"}`)
	})

	got, err := c.CreateResearchOutput(context.Background(), &types.SubmissionPayload{SystemName: "ResearchOutput"})
	require.NoError(t, err)
	assert.Equal(t, "ro-1", got)
}

func TestCreateResearchOutputRejected(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"code":400,"description":"managingOrganization is required"}`)
	})

	_, err := c.CreateResearchOutput(context.Background(), &types.SubmissionPayload{})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Contains(t, apiErr.Error(), "managingOrganization is required")
}

func TestGetResearchOutput(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ws/api/research-outputs/ro-1" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		fmt.Fprint(w, `{"uuid":"ro-1","title":{"value":"T"}}`)
	})

	raw, err := c.GetResearchOutput(context.Background(), "ro-1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"uuid":"ro-1","title":{"value":"T"}}`, string(raw))

	_, err = c.GetResearchOutput(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNetworkError(t *testing.T) {
	c := NewClient(types.PureConfig{BaseURL: "http://127.0.0.1:1/ws/api/"}, &http.Client{Timeout: time.Second}, zerolog.Nop())
	_, err := c.CreateExternalPerson(context.Background(), "A", "B")
	assert.Error(t, err)
}
