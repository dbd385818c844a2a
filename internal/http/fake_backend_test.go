package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"strconv"
	"sync"
	"testing"
)

const (
	sellerEmail    = "ana@example.com"
	sellerPassword = "secret1"
	sellerToken    = "opaque-token"
)

// backend fakes the remote product service and its auth endpoints.
type backend struct {
	*httptest.Server

	mu       sync.Mutex
	products []map[string]any
	sellers  []map[string]any
	down     bool
	tokens   []string
}

func newBackend(t *testing.T, products ...map[string]any) *backend {
	t.Helper()
	b := &backend{
		products: products,
		sellers:  []map[string]any{{"_id": "s1", "name": "Ana's Atelier", "productCount": len(products)}},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.tokens = append(b.tokens, r.Header.Get("Authorization"))
		if b.down {
			http.Error(w, "upstream unavailable", http.StatusBadGateway)
			return
		}
		envelope(w, true, "", b.products)
	})
	mux.HandleFunc("GET /api/sellers", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		envelope(w, true, "", b.sellers)
	})
	mux.HandleFunc("POST /api", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			envelope(w, false, "bad form", nil)
			return
		}
		p := map[string]any{
			"_id":       "srv-" + strconv.Itoa(len(b.products)+1),
			"name":      r.FormValue("name"),
			"price":     r.FormValue("price"),
			"quantity":  r.FormValue("quantity"),
			"createdAt": "2025-04-02T12:00:00Z",
		}
		b.products = append(b.products, p)
		envelope(w, true, "created", p)
	})
	mux.HandleFunc("PUT /api/{id}", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			envelope(w, false, "bad form", nil)
			return
		}
		p := map[string]any{"_id": r.PathValue("id"), "name": r.FormValue("name"), "price": r.FormValue("price"), "quantity": r.FormValue("quantity")}
		envelope(w, true, "updated", p)
	})
	mux.HandleFunc("DELETE /api/{id}", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		id := r.PathValue("id")
		b.products = slices.DeleteFunc(b.products, func(p map[string]any) bool { return p["_id"] == id })
		envelope(w, true, "deleted", nil)
	})
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var creds struct{ Email, Password string }
		_ = json.NewDecoder(r.Body).Decode(&creds)
		if creds.Email != sellerEmail || creds.Password != sellerPassword {
			w.WriteHeader(http.StatusUnauthorized)
			envelope(w, false, "Invalid credentials", nil)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"token":   sellerToken,
			"user":    map[string]any{"userId": "u1", "email": sellerEmail, "firstName": "Ana", "lastName": "Silva"},
		})
	})
	mux.HandleFunc("POST /auth/signup", func(w http.ResponseWriter, r *http.Request) {
		var in struct{ Email string }
		_ = json.NewDecoder(r.Body).Decode(&in)
		if in.Email == sellerEmail {
			envelope(w, false, "Email already registered", nil)
			return
		}
		envelope(w, true, "User registered", nil)
	})

	b.Server = httptest.NewServer(mux)
	t.Cleanup(b.Close)
	return b
}

func (b *backend) setDown(down bool) {
	b.mu.Lock()
	b.down = down
	b.mu.Unlock()
}

func (b *backend) lastAuthorization() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.tokens) == 0 {
		return ""
	}
	return b.tokens[len(b.tokens)-1]
}

func envelope(w http.ResponseWriter, ok bool, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"success": ok, "message": message, "data": data})
}
