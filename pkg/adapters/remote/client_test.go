package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aretw0/frasig/pkg/domain"
	"github.com/aretw0/frasig/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestNew_Validation(t *testing.T) {
	_, err := New("")
	assert.Error(t, err)

	_, err = New("localhost:8000")
	assert.Error(t, err)

	c, err := New(" http://localhost:8000/ ")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000", c.baseURL)
}

func TestClient_Parse(t *testing.T) {
	srv := newService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/parse", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req ParseRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Hunden sprang. Katten satt.", req.Text)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(ParseResponse{Sentences: []domain.Sentence{
			{Text: "Hunden sprang.", Parse: "(S (NN Hunden) (VB sprang) (MAD .))"},
			{Text: "Katten satt.", Parse: "(S (NN Katten) (VB satt) (MAD .))"},
		}})
	})

	c, err := New(srv.URL)
	require.NoError(t, err)
	defer c.Close()

	got, err := c.Parse(context.Background(), "Hunden sprang. Katten satt.")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Hunden sprang.", got[0].Text)
	assert.Equal(t, "(S (NN Katten) (VB satt) (MAD .))", got[1].Parse)
}

func TestClient_Parse_NoSentences(t *testing.T) {
	srv := newService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	c, err := New(srv.URL)
	require.NoError(t, err)

	got, err := c.Parse(context.Background(), "")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestClient_Parse_StatusError(t *testing.T) {
	srv := newService(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusServiceUnavailable)
	})

	c, err := New(srv.URL)
	require.NoError(t, err)

	_, err = c.Parse(context.Background(), "Hej.")
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
	assert.Equal(t, "model not loaded", statusErr.Body)
}

func TestClient_Parse_BadJSON(t *testing.T) {
	srv := newService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"sentences": [`))
	})

	c, err := New(srv.URL)
	require.NoError(t, err)

	_, err = c.Parse(context.Background(), "Hej.")
	assert.ErrorContains(t, err, "decode")
}

func TestClient_Parse_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := newService(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	c, err := New(srv.URL, WithTimeout(50*time.Millisecond))
	require.NoError(t, err)

	start := time.Now()
	_, err = c.Parse(context.Background(), "Hej.")
	assert.Error(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestClient_MaxConcurrent(t *testing.T) {
	var current, peak int32
	srv := newService(t, func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&current, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		atomic.AddInt32(&current, -1)
		w.Write([]byte(`{"sentences": []}`))
	})

	c, err := New(srv.URL, WithMaxConcurrent(2))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Parse(context.Background(), "Hej.")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(2))
}

func TestClient_RateLimitHonorsContext(t *testing.T) {
	srv := newService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"sentences": []}`))
	})

	c, err := New(srv.URL, WithRateLimit(0.001, 1))
	require.NoError(t, err)

	_, err = c.Parse(context.Background(), "first")
	require.NoError(t, err, "the burst allows one request")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = c.Parse(ctx, "second")
	assert.ErrorContains(t, err, "rate limit")
}

func TestClient_Ping(t *testing.T) {
	var healthy atomic.Bool
	healthy.Store(true)
	srv := newService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		if !healthy.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"status":"ok"}`))
	})

	c, err := New(srv.URL)
	require.NoError(t, err)

	assert.NoError(t, c.Ping(context.Background()))

	healthy.Store(false)
	assert.Error(t, c.Ping(context.Background()))
}

func TestClient_Contract(t *testing.T) {
	known := map[string]string{
		"Hunden sprang.": "(S (NN Hunden) (VB sprang) (MAD .))",
		"Katten satt.":   "(S (NN Katten) (VB satt) (MAD .))",
	}
	srv := newService(t, func(w http.ResponseWriter, r *http.Request) {
		var req ParseRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		resp := ParseResponse{Sentences: []domain.Sentence{}}
		if parse, ok := known[req.Text]; ok {
			resp.Sentences = append(resp.Sentences, domain.Sentence{Text: req.Text, Parse: parse})
		}
		json.NewEncoder(w).Encode(resp)
	})

	c, err := New(srv.URL)
	require.NoError(t, err)
	defer c.Close()

	tests.SentenceParserContractTest(t, c, known)
}
