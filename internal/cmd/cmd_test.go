package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	mu       sync.Mutex
	products []map[string]any
	updates  []map[string]string
}

func newFakeAPI(t *testing.T) (*fakeAPI, string) {
	t.Helper()
	f := &fakeAPI{products: []map[string]any{
		{"_id": "a", "name": "Linen Shirt", "price": 40, "quantity": 12, "createdAt": "2025-03-01T10:00:00Z"},
		{"_id": "b", "name": "Straw Hat", "price": "15.5", "quantity": 3, "createdAt": "2025-03-05T10:00:00Z"},
	}}

	reply := func(w http.ResponseWriter, ok bool, msg string, data any) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"success": ok, "message": msg, "data": data})
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var creds struct{ Email, Password string }
		_ = json.NewDecoder(r.Body).Decode(&creds)
		if creds.Password != "secret1" {
			reply(w, false, "Invalid credentials", nil)
			return
		}
		reply(w, true, "", map[string]any{
			"token": "opaque-token",
			"user":  map[string]any{"userId": "u1", "email": creds.Email, "firstName": "Ana", "lastName": "Silva"},
		})
	})
	mux.HandleFunc("POST /auth/signup", func(w http.ResponseWriter, r *http.Request) {
		reply(w, true, "User registered", nil)
	})
	mux.HandleFunc("GET /api", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer opaque-token" {
			w.WriteHeader(http.StatusUnauthorized)
			reply(w, false, "Unauthorized", nil)
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		reply(w, true, "", f.products)
	})
	mux.HandleFunc("POST /api", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		_ = r.ParseMultipartForm(1 << 20)
		p := map[string]any{"_id": "srv-" + strconv.Itoa(len(f.products)+1), "name": r.FormValue("name"), "price": r.FormValue("price"), "quantity": r.FormValue("quantity")}
		f.products = append(f.products, p)
		reply(w, true, "created", p)
	})
	mux.HandleFunc("PUT /api/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		_ = r.ParseMultipartForm(1 << 20)
		f.updates = append(f.updates, map[string]string{"id": r.PathValue("id"), "name": r.FormValue("name"), "price": r.FormValue("price")})
		reply(w, true, "updated", map[string]any{"_id": r.PathValue("id"), "name": r.FormValue("name"), "price": r.FormValue("price"), "quantity": r.FormValue("quantity")})
	})
	mux.HandleFunc("DELETE /api/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		id := r.PathValue("id")
		f.products = slices.DeleteFunc(f.products, func(p map[string]any) bool { return p["_id"] == id })
		reply(w, true, "deleted", nil)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return f, srv.URL
}

func (f *fakeAPI) ids() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, p := range f.products {
		out = append(out, p["_id"].(string))
	}
	return out
}

type cli struct {
	t           *testing.T
	configFile  string
	sessionFile string
}

func newCLI(t *testing.T) (*cli, *fakeAPI) {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)

	f, url := newFakeAPI(t)
	cfg := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("env: test\napi:\n  base_url: "+url+"\n"), 0o600))
	return &cli{t: t, configFile: cfg, sessionFile: filepath.Join(dir, "session.json")}, f
}

func (c *cli) run(stdin string, args ...string) (string, error) {
	c.t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--config", c.configFile, "--session-file", c.sessionFile}, args...))
	err := root.Execute()
	return out.String(), err
}

func (c *cli) mustRun(args ...string) string {
	c.t.Helper()
	out, err := c.run("", args...)
	require.NoError(c.t, err, out)
	return out
}

func TestProducts_RequiresLogin(t *testing.T) {
	c, _ := newCLI(t)

	_, err := c.run("", "products", "list")

	assert.True(t, errors.Is(err, errNotLoggedIn))
}

func TestLogin_WhoamiLogout(t *testing.T) {
	c, _ := newCLI(t)

	out := c.mustRun("login", "--email", "ana@example.com", "--password", "secret1")
	assert.Contains(t, out, "Logged in as Ana Silva")

	info, err := os.Stat(c.sessionFile)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	out = c.mustRun("whoami")
	assert.Contains(t, out, "Ana Silva")
	assert.Contains(t, out, "<ana@example.com>")

	assert.Contains(t, c.mustRun("logout"), "Logged out")
	assert.Contains(t, c.mustRun("whoami"), "Not logged in")
}

func TestLogin_PromptsForPassword(t *testing.T) {
	c, _ := newCLI(t)

	out, err := c.run("secret1\n", "login", "--email", "ana@example.com")

	require.NoError(t, err)
	assert.Contains(t, out, "Password: ")
	assert.Contains(t, out, "Logged in as Ana Silva")
}

func TestLogin_Rejected(t *testing.T) {
	c, _ := newCLI(t)

	_, err := c.run("", "login", "--email", "ana@example.com", "--password", "nope")

	require.Error(t, err)
	assert.Equal(t, "Invalid credentials", err.Error())
}

func TestRegister(t *testing.T) {
	c, _ := newCLI(t)

	out := c.mustRun("register", "--first-name", "Bea", "--email", "bea@example.com", "--password", "hunter22")
	assert.Contains(t, out, "User registered")

	_, err := c.run("", "register", "--first-name", "Bea", "--email", "bea@example.com", "--password", "123")
	assert.Error(t, err)
}

func TestProductsListAndStats(t *testing.T) {
	c, _ := newCLI(t)
	c.mustRun("login", "--email", "ana@example.com", "--password", "secret1")

	out := c.mustRun("products", "list")
	assert.Contains(t, out, "Linen Shirt")
	assert.Contains(t, out, "Straw Hat")
	assert.Less(t, strings.Index(out, "Straw Hat"), strings.Index(out, "Linen Shirt"), "newest first")
	assert.Contains(t, out, "Page 1 of 1, 2 products")

	out = c.mustRun("products", "list", "--search", "HAT")
	assert.Contains(t, out, "Straw Hat")
	assert.NotContains(t, out, "Linen Shirt")

	out = c.mustRun("products", "list", "--search", "boots")
	assert.Contains(t, out, `No products match "boots"`)

	out = c.mustRun("products", "stats")
	assert.Contains(t, out, "$526.50")
	assert.Contains(t, out, "$27.75")
	assert.Contains(t, out, "0-50")
}

func TestProductsCreateUpdateDelete(t *testing.T) {
	c, f := newCLI(t)
	c.mustRun("login", "--email", "ana@example.com", "--password", "secret1")

	out := c.mustRun("products", "create", "--name", "Wool Scarf", "--price", "20", "--quantity", "5")
	assert.Contains(t, out, "Product created: Wool Scarf (srv-3)")

	_, err := c.run("", "products", "create", "--price", "20", "--quantity", "5")
	require.Error(t, err)
	assert.Equal(t, "Name is required", err.Error())

	out = c.mustRun("products", "update", "a", "--price", "45")
	assert.Contains(t, out, "Product updated: Linen Shirt")
	require.Len(t, f.updates, 1)
	assert.Equal(t, map[string]string{"id": "a", "name": "Linen Shirt", "price": "45"}, f.updates[0])

	out, err = c.run("n\n", "products", "delete", "b")
	require.NoError(t, err)
	assert.Contains(t, out, "Delete Straw Hat? [y/N]")
	assert.Contains(t, out, "Cancelled")
	assert.Contains(t, f.ids(), "b")

	out = c.mustRun("products", "delete", "b", "--yes")
	assert.Contains(t, out, "Product deleted")
	assert.NotContains(t, f.ids(), "b")

	_, err = c.run("", "products", "delete", "missing", "--yes")
	assert.Error(t, err)
}
