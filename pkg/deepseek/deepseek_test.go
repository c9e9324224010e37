package deepseek_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"ticket-triage/pkg/deepseek"
)

func TestNew(t *testing.T) {
	if _, err := deepseek.New(deepseek.Config{}); err == nil {
		t.Fatal("expected error for missing API key")
	}

	client, err := deepseek.New(deepseek.Config{APIKey: "test-key"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.Model() != deepseek.DefaultModel {
		t.Errorf("expected default model, got %q", client.Model())
	}
}

func TestGenerateContent(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if r.Header.Get("Authorization") != "Bearer test-api-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		var req deepseek.Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		if len(req.Messages) > 0 && req.Messages[len(req.Messages)-1].Content == "cause_429" {
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error":{"message":"rate limit reached","type":"rate_limit"}}`))
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(deepseek.Response{
			ID:    "cmpl-1",
			Model: req.Model,
			Choices: []deepseek.Choice{
				{Index: 0, Message: deepseek.Message{Role: "assistant", Content: "generated text"}, FinishReason: "stop"},
			},
			Usage: deepseek.Usage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15},
		})
	}))
	defer ts.Close()

	client, err := deepseek.New(deepseek.Config{
		APIKey:  "test-api-key",
		BaseURL: ts.URL,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("success", func(t *testing.T) {
		resp, err := client.GenerateContent(context.Background(), &deepseek.Request{
			Messages: []deepseek.Message{
				{Role: "system", Content: "You are a classifier."},
				{Role: "user", Content: "classify this"},
			},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(resp.Choices) != 1 || resp.Choices[0].Message.Content != "generated text" {
			t.Errorf("unexpected response %+v", resp)
		}
		if resp.Usage.TotalTokens != 15 {
			t.Errorf("unexpected usage %+v", resp.Usage)
		}
	})

	t.Run("rate limited surfaces APIError", func(t *testing.T) {
		_, err := client.GenerateContent(context.Background(), &deepseek.Request{
			Messages: []deepseek.Message{{Role: "user", Content: "cause_429"}},
		})
		var apiErr *deepseek.APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("expected APIError, got %v", err)
		}
		if apiErr.HTTPStatus() != http.StatusTooManyRequests {
			t.Errorf("expected 429, got %d", apiErr.HTTPStatus())
		}
		if apiErr.Message != "rate limit reached" {
			t.Errorf("expected parsed error message, got %q", apiErr.Message)
		}
	})
}
