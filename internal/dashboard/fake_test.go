package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"slices"
	"strconv"
	"sync"
	"testing"

	"github.com/rogerio-castellano/seller-dashboard/internal/api"
	"github.com/rogerio-castellano/seller-dashboard/internal/models"
)

// fakeService is an in-process ProductService. gate, when set, holds every
// call until it is closed.
type fakeService struct {
	mu        sync.Mutex
	products  []models.Product
	listErr   error
	createErr error
	createBad bool
	updateErr error
	deleteErr error
	calls     int
	gate      chan struct{}
	started   chan struct{}
}

func (f *fakeService) wait(ctx context.Context) {
	f.mu.Lock()
	f.calls++
	gate, started := f.gate, f.started
	f.mu.Unlock()
	if started != nil {
		started <- struct{}{}
	}
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
		}
	}
}

func (f *fakeService) ListProducts(ctx context.Context) ([]models.Product, error) {
	f.wait(ctx)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return slices.Clone(f.products), nil
}

func (f *fakeService) CreateProduct(ctx context.Context, in api.ProductInput) (models.Product, error) {
	f.wait(ctx)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return models.Product{}, f.createErr
	}
	p := models.Product{ID: fmt.Sprintf("new-%d", len(f.products)+1), Name: in.Name, Price: in.Price, Quantity: in.Quantity}
	if f.createBad {
		p.ID = ""
	}
	f.products = append(f.products, p)
	return p, nil
}

func (f *fakeService) UpdateProduct(ctx context.Context, id string, in api.ProductInput) (models.Product, error) {
	f.wait(ctx)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return models.Product{}, f.updateErr
	}
	return models.Product{ID: id, Name: in.Name, Price: in.Price, Quantity: in.Quantity}, nil
}

func (f *fakeService) DeleteProduct(ctx context.Context, id string) error {
	f.wait(ctx)
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.deleteErr
}

func (f *fakeService) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// productServer is a fake remote product service speaking the envelope
// protocol over HTTP.
type productServer struct {
	mu            sync.Mutex
	products      []map[string]any
	createFailure string
}

func newProductServer(t *testing.T, products ...map[string]any) (*productServer, *api.Client) {
	t.Helper()
	ps := &productServer{products: products}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api", func(w http.ResponseWriter, r *http.Request) {
		ps.mu.Lock()
		defer ps.mu.Unlock()
		writeEnvelope(w, true, "", ps.products)
	})
	mux.HandleFunc("POST /api", func(w http.ResponseWriter, r *http.Request) {
		ps.mu.Lock()
		defer ps.mu.Unlock()
		if ps.createFailure != "" {
			writeEnvelope(w, false, ps.createFailure, nil)
			return
		}
		_ = r.ParseMultipartForm(1 << 20)
		p := map[string]any{
			"_id":      "srv-" + strconv.Itoa(len(ps.products)+1),
			"name":     r.FormValue("name"),
			"price":    r.FormValue("price"),
			"quantity": r.FormValue("quantity"),
		}
		ps.products = append(ps.products, p)
		writeEnvelope(w, true, "created", p)
	})
	mux.HandleFunc("DELETE /api/{id}", func(w http.ResponseWriter, r *http.Request) {
		ps.mu.Lock()
		defer ps.mu.Unlock()
		id := r.PathValue("id")
		ps.products = slices.DeleteFunc(ps.products, func(p map[string]any) bool { return p["_id"] == id })
		writeEnvelope(w, true, "deleted", nil)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return ps, api.NewClient(api.Config{BaseURL: srv.URL}, api.StaticToken("test-token"))
}

func writeEnvelope(w http.ResponseWriter, ok bool, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"success": ok, "message": message, "data": data})
}
