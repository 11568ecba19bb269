package generative_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/niksmo/shop-assistant/internal/adapter/generative"
	"github.com/niksmo/shop-assistant/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completionsStub(
	t *testing.T, handler http.HandlerFunc,
) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/chat/completions", handler)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func completionBody(content string) map[string]any {
	return map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	}
}

func TestGenerate(t *testing.T) {
	t.Run("ReturnsCompletionContent", func(t *testing.T) {
		var gotAuth string
		var gotReq struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}

		srv := completionsStub(t, func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
			json.NewEncoder(w).Encode(completionBody("¡Hola Carlos!"))
		})

		cl := generative.New(srv.URL, "test-key", "test-model")
		reply, err := cl.Generate(
			t.Context(), "hola",
			domain.Profile{Name: "Carlos"}, domain.VariantAngular,
		)
		require.NoError(t, err)

		assert.Equal(t, "¡Hola Carlos!", reply.Message)
		assert.Equal(t, "Carlos", reply.UserName)
		assert.Equal(t, "Bearer test-key", gotAuth)
		assert.Equal(t, "test-model", gotReq.Model)
		require.Len(t, gotReq.Messages, 2)
		assert.Equal(t, "system", gotReq.Messages[0].Role)
		assert.Contains(t, gotReq.Messages[0].Content, "Carlos")
		assert.Equal(t, "hola", gotReq.Messages[1].Content)
	})

	t.Run("RetriesOn503", func(t *testing.T) {
		var calls atomic.Int32
		srv := completionsStub(t, func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) < 3 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			json.NewEncoder(w).Encode(completionBody("ok"))
		})

		cl := generative.New(srv.URL, "k", "m")
		reply, err := cl.Generate(
			t.Context(), "hola", domain.NewProfile(), domain.VariantAngular,
		)
		require.NoError(t, err)
		assert.Equal(t, "ok", reply.Message)
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("GivesUpAfterMaxAttempts", func(t *testing.T) {
		var calls atomic.Int32
		srv := completionsStub(t, func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusServiceUnavailable)
		})

		cl := generative.New(srv.URL, "k", "m")
		_, err := cl.Generate(
			t.Context(), "hola", domain.NewProfile(), domain.VariantAngular,
		)
		require.Error(t, err)
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("BadRequestIsNotRetried", func(t *testing.T) {
		var calls atomic.Int32
		srv := completionsStub(t, func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusBadRequest)
		})

		cl := generative.New(srv.URL, "k", "m")
		_, err := cl.Generate(
			t.Context(), "hola", domain.NewProfile(), domain.VariantAngular,
		)
		require.Error(t, err)
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("EmptyChoices", func(t *testing.T) {
		srv := completionsStub(t, func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
		})

		cl := generative.New(srv.URL, "k", "m")
		_, err := cl.Generate(
			t.Context(), "hola", domain.NewProfile(), domain.VariantAngular,
		)
		require.Error(t, err)
		assert.ErrorIs(t, err, generative.ErrEmptyCompletion)
	})
}
