package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/careerbuddy/bot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOllamaChatStreamCollectsDeltas(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/chat", r.URL.Path)
		w.Write([]byte(`{"message":{"content":"Hel"},"done":false}` + "\n"))
		w.Write([]byte(`{"message":{"content":"lo!"},"done":false}` + "\n"))
		w.Write([]byte(`{"message":{"content":""},"done":true}` + "\n"))
	}))
	defer srv.Close()

	svc := NewOllamaService(srv.URL)

	var deltas []string
	full, err := svc.ChatStream(context.Background(), "test-model", 0.7,
		[]ChatMessage{{Role: domain.RoleUser, Content: "hi"}},
		func(d string) { deltas = append(deltas, d) })

	require.NoError(t, err)
	assert.Equal(t, "Hello!", full)
	assert.Equal(t, []string{"Hel", "lo!"}, deltas)
}

func TestOllamaChatStreamInterruptedIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Stream ends without a done:true chunk
		w.Write([]byte(`{"message":{"content":"partial"},"done":false}` + "\n"))
	}))
	defer srv.Close()

	svc := NewOllamaService(srv.URL)

	_, err := svc.ChatStream(context.Background(), "test-model", 0.7,
		[]ChatMessage{{Role: domain.RoleUser, Content: "hi"}}, nil)

	assert.ErrorIs(t, err, domain.ErrEmptyStream)
}

func TestOllamaChatStreamServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	svc := NewOllamaService(srv.URL)

	_, err := svc.ChatStream(context.Background(), "test-model", 0.7, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestOllamaChatStreamInlineError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":"model not found"}` + "\n"))
	}))
	defer srv.Close()

	svc := NewOllamaService(srv.URL)

	_, err := svc.ChatStream(context.Background(), "missing", 0.7, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model not found")
}

func TestOllamaListModelsCaches(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		require.Equal(t, "/api/tags", r.URL.Path)
		w.Write([]byte(`{"models":[{"name":"llama3:8b","size":4000000000},{"name":"deepseek-r1:8b","size":5000000000}]}`))
	}))
	defer srv.Close()

	svc := NewOllamaService(srv.URL)

	models, err := svc.ListModels(context.Background())
	require.NoError(t, err)
	require.Len(t, models, 2)
	assert.Equal(t, "llama3:8b", models[0].ID)

	_, err = svc.ListModels(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestOllamaHealthy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/version", r.URL.Path)
		w.Write([]byte(`{"version":"0.5.0"}`))
	}))
	defer srv.Close()

	assert.True(t, NewOllamaService(srv.URL).Healthy(context.Background()))

	srv.Close()
	assert.False(t, NewOllamaService(srv.URL).Healthy(context.Background()))
}
