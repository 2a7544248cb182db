package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/existflow/taskflow/internal/model"
	"github.com/existflow/taskflow/internal/session"
)

func newTestGateway(t *testing.T, handler http.Handler) (*Client, *session.Store) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	store := session.NewStoreAt(filepath.Join(t.TempDir(), "session.json"))
	return NewClient(server.URL, store, 5*time.Second), store
}

func authedGateway(t *testing.T, handler http.Handler) (*Client, *session.Store) {
	t.Helper()
	client, store := newTestGateway(t, handler)
	if err := store.Establish("tok-123", model.Identity{Email: "john@example.com", Name: "John Doe"}); err != nil {
		t.Fatalf("failed to establish session: %v", err)
	}
	return client, store
}

func TestLoginEstablishesSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Email != "john@example.com" || req.Password != "password123" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]interface{}{"status": 401, "message": "Invalid email or password"})
			return
		}
		_ = json.NewEncoder(w).Encode(LoginResponse{Token: "jwt-abc", Email: req.Email, Name: "John Doe"})
	})

	client, store := newTestGateway(t, mux)

	identity, err := client.Login(context.Background(), "john@example.com", "password123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if identity.Name != "John Doe" {
		t.Errorf("identity.Name = %q, want John Doe", identity.Name)
	}
	if !store.IsAuthenticated() || store.Token() != "jwt-abc" {
		t.Error("session not established after login")
	}
}

func TestLoginBadCredentials(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"status": 401, "message": "Invalid email or password"})
	})

	client, store := newTestGateway(t, mux)
	_, err := client.Login(context.Background(), "john@example.com", "wrong")
	if !IsKind(err, KindUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if store.IsAuthenticated() {
		t.Error("session established from a failed login")
	}
}

func TestBearerTokenAttached(t *testing.T) {
	var gotAuth string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /projects", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode([]model.Project{})
	})

	client, _ := authedGateway(t, mux)
	if _, err := client.ListProjects(context.Background()); err != nil {
		t.Fatalf("ListProjects: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("Authorization = %q, want Bearer tok-123", gotAuth)
	}
}

func TestUnauthorizedClearsSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /projects", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"status": 401, "message": "Token expired"})
	})

	client, store := authedGateway(t, mux)

	_, err := client.ListProjects(context.Background())
	if !IsKind(err, KindUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if store.IsAuthenticated() {
		t.Error("session not cleared after 401")
	}
	if store.Token() != "" || store.Identity() != nil {
		t.Error("credential or identity survived the clear")
	}
}

func TestErrorTaxonomy(t *testing.T) {
	cases := []struct {
		name     string
		status   int
		body     string
		wantKind Kind
	}{
		{"404 is not found", http.StatusNotFound, `{"status":404,"message":"Project not found"}`, KindNotFound},
		{"409 is conflict", http.StatusConflict, `{"status":409,"message":"Concurrent modification"}`, KindConflict},
		{"500 is server failure", http.StatusInternalServerError, `{"status":500,"message":"boom"}`, KindServerFailure},
		{"503 is server failure", http.StatusServiceUnavailable, ``, KindServerFailure},
		{"400 is validation", http.StatusBadRequest, `{"status":400,"message":"Validation failed"}`, KindValidation},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mux := http.NewServeMux()
			mux.HandleFunc("GET /projects/1", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			})

			client, _ := authedGateway(t, mux)
			_, err := client.GetProject(context.Background(), 1)
			if !IsKind(err, tc.wantKind) {
				t.Errorf("status %d: got %v, want kind %v", tc.status, err, tc.wantKind)
			}
		})
	}
}

func TestValidationErrorCarriesField(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /projects", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  400,
			"message": "Validation failed",
			"details": map[string]string{"title": "Title must not exceed 100 characters"},
		})
	})

	client, _ := authedGateway(t, mux)
	_, err := client.CreateProject(context.Background(), ProjectForm{Title: "x"})

	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if apiErr.Kind != KindValidation || apiErr.Field != "title" {
		t.Errorf("got kind=%v field=%q, want validation on title", apiErr.Kind, apiErr.Field)
	}
	if apiErr.Message != "Title must not exceed 100 characters" {
		t.Errorf("message = %q", apiErr.Message)
	}
}

func TestNetworkFailure(t *testing.T) {
	store := session.NewStoreAt(filepath.Join(t.TempDir(), "session.json"))
	// Nothing listens on this port
	client := NewClient("http://127.0.0.1:1", store, time.Second)

	_, err := client.ListProjects(context.Background())
	if !IsKind(err, KindNetworkFailure) {
		t.Fatalf("expected network failure, got %v", err)
	}
}

func TestDeleteReturnsNoBody(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /tasks/5", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	client, _ := authedGateway(t, mux)
	if err := client.DeleteTask(context.Background(), 5); err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}
}

func TestToggleTaskDecodesResult(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("PATCH /tasks/5/complete", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(model.Task{ID: 5, ProjectID: 1, Title: "t", IsCompleted: true})
	})

	client, _ := authedGateway(t, mux)
	task, err := client.ToggleTask(context.Background(), 5)
	if err != nil {
		t.Fatalf("ToggleTask: %v", err)
	}
	if !task.IsCompleted {
		t.Error("toggle result not decoded")
	}
}
