package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func writeEnvelope(w http.ResponseWriter, status int, body map[string]interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func TestClient_UnwrapsEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/access/btn" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("Authorization = %q", got)
		}
		writeEnvelope(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"data":    map[string]interface{}{"feature": "btn", "hasAccess": true},
		})
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, Token: "tok"})
	d, err := c.Access().Check(context.Background(), "btn")
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if !d.HasAccess || d.Feature != "btn" {
		t.Errorf("decision = %+v", d)
	}
}

func TestClient_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		code   string
		check  func(*APIError) bool
	}{
		{"unauthorized", http.StatusUnauthorized, "UNAUTHORIZED", (*APIError).IsUnauthorized},
		{"forbidden", http.StatusForbidden, "FORBIDDEN", (*APIError).IsForbidden},
		{"rate limited", http.StatusTooManyRequests, "RATE_LIMITED", (*APIError).IsRateLimited},
		{"server", http.StatusInternalServerError, "INTERNAL_ERROR", (*APIError).IsServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeEnvelope(w, tt.status, map[string]interface{}{
					"success": false,
					"error":   map[string]interface{}{"code": tt.code, "message": "nope"},
				})
			}))
			defer srv.Close()

			_, err := NewClient(Config{BaseURL: srv.URL}).Jobs().ForceRefresh(context.Background())
			apiErr, ok := err.(*APIError)
			if !ok {
				t.Fatalf("error = %v, want *APIError", err)
			}
			if apiErr.Code != tt.code || !tt.check(apiErr) {
				t.Errorf("APIError = %+v", apiErr)
			}
		})
	}
}

func TestClient_QueryEncoding(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("q") != "fran" || q.Get("equipment") != "barbell,gymnastics" || q.Get("limit") != "5" {
			t.Errorf("query = %s", r.URL.RawQuery)
		}
		writeEnvelope(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"data":    map[string]interface{}{"items": []interface{}{}, "count": 0, "limit": 5},
		})
	}))
	defer srv.Close()

	res, err := NewClient(Config{BaseURL: srv.URL}).Workouts().Search(context.Background(), SearchOptions{
		Query:     "fran",
		Equipment: []string{"barbell", "gymnastics"},
		Limit:     5,
	})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if res.Limit != 5 || len(res.Items) != 0 {
		t.Errorf("result = %+v", res)
	}
}

func TestAdminService_UpdateUserAccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "PATCH" || r.URL.Path != "/api/admin/users/42" {
			t.Errorf("request = %s %s", r.Method, r.URL.Path)
		}
		var body map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body["subscriptionTier"] != "btn" {
			t.Errorf("subscriptionTier = %v", body["subscriptionTier"])
		}
		if _, ok := body["role"]; ok {
			t.Error("unset role was sent")
		}
		writeEnvelope(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"data":    map[string]interface{}{"id": 42, "subscription_tier": "btn", "subscription_status": "active"},
		})
	}))
	defer srv.Close()

	tier, status := "btn", "active"
	u, err := NewClient(Config{BaseURL: srv.URL}).Admin().UpdateUserAccess(context.Background(), 42,
		AccessUpdate{SubscriptionTier: &tier, SubscriptionStatus: &status})
	if err != nil {
		t.Fatalf("UpdateUserAccess() error = %v", err)
	}
	if u.ID != 42 || u.SubscriptionTier != "btn" {
		t.Errorf("user = %+v", u)
	}
}
