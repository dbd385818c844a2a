// Package dashboard owns the seller's product list and every piece of UI
// state around it, and turns service responses into notifications.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/rogerio-castellano/seller-dashboard/internal/api"
	"github.com/rogerio-castellano/seller-dashboard/internal/catalog"
	"github.com/rogerio-castellano/seller-dashboard/internal/logx"
	"github.com/rogerio-castellano/seller-dashboard/internal/models"
	"github.com/rogerio-castellano/seller-dashboard/internal/session"
)

var (
	ErrClosed          = errors.New("dashboard closed")
	ErrSaveInProgress  = errors.New("a save is already in progress")
	ErrProductNotFound = errors.New("product not found")
	ErrNoPendingDelete = errors.New("no delete awaiting confirmation")
	ErrNoIdentifier    = errors.New("service returned a product without an identifier")
)

// ProductService is the part of the remote service the dashboard drives.
type ProductService interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	CreateProduct(ctx context.Context, in api.ProductInput) (models.Product, error)
	UpdateProduct(ctx context.Context, id string, in api.ProductInput) (models.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

type Tab string

const (
	TabOverview  Tab = "overview"
	TabProducts  Tab = "products"
	TabAnalytics Tab = "analytics"
)

var Tabs = []Tab{TabOverview, TabProducts, TabAnalytics}

// ParseTab maps user input to a Tab, defaulting to the overview.
func ParseTab(s string) Tab {
	t := Tab(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(Tabs, t) {
		return t
	}
	return TabOverview
}

type FormMode string

const (
	FormCreate FormMode = "create"
	FormEdit   FormMode = "edit"
)

// FormModal is the create/edit modal. Closed when Open is false.
type FormModal struct {
	Open      bool
	Mode      FormMode
	ProductID string
	Form      ProductForm
	Errors    map[string]string
}

// DetailModal shows one product read-only.
type DetailModal struct {
	Open      bool
	ProductID string
}

// Options tune a Controller.
type Options struct {
	PageSize        int
	NotificationTTL time.Duration
	Sink            Sink
	Validator       *validator.Validate
}

// Controller is the view-state controller of one seller's dashboard. It is
// safe for concurrent use; service calls run outside its lock and the last
// response to arrive wins.
type Controller struct {
	svc      ProductService
	sess     *session.Context
	notifier *Notifier
	validate *validator.Validate
	pageSize int

	mu               sync.Mutex
	closed           bool
	loaded           bool
	products         []models.Product
	tab              Tab
	search           string
	sort             catalog.SortKey
	page             int
	theme            string
	sidebarCollapsed bool
	loading          int
	saving           bool
	form             FormModal
	detail           DetailModal
	pendingDelete    string
}

// New constructs a Controller. sess may be nil for an anonymous dashboard.
func New(svc ProductService, sess *session.Context, opts Options) *Controller {
	if opts.PageSize <= 0 {
		opts.PageSize = catalog.DefaultPageSize
	}
	if opts.Validator == nil {
		opts.Validator = validator.New()
	}
	c := &Controller{
		svc:      svc,
		sess:     sess,
		notifier: NewNotifier(opts.NotificationTTL, opts.Sink),
		validate: opts.Validator,
		pageSize: opts.PageSize,
		tab:      TabOverview,
		sort:     catalog.SortByDate,
		page:     1,
		theme:    session.ThemeLight,
	}
	if sess != nil {
		cur := sess.Current()
		if cur.Theme == session.ThemeDark {
			c.theme = session.ThemeDark
		}
		c.sidebarCollapsed = cur.SidebarCollapsed
	}
	return c
}

// Notifier exposes the toast queue, e.g. for dismiss controls.
func (c *Controller) Notifier() *Notifier { return c.notifier }

// Loaded reports whether Load has completed at least once.
func (c *Controller) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loaded
}

// Products returns a copy of the raw product list.
func (c *Controller) Products() []models.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.products)
}

// Load replaces the raw list with the service's current list. On failure
// the list is cleared.
func (c *Controller) Load(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	c.loading++
	c.mu.Unlock()

	products, err := c.svc.ListProducts(ctx)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	c.loading--
	c.loaded = true
	if err != nil {
		c.products = nil
		c.mu.Unlock()
		c.fail(ctx, "load products", err, "Failed to load products")
		return fmt.Errorf("load products: %w", err)
	}
	c.products = models.WithIdentifier(products)
	count := len(c.products)
	c.mu.Unlock()

	c.notifier.Push(ctx, KindSuccess, fmt.Sprintf("Loaded %d products", count))
	return nil
}

// Create validates form and submits it. The stored record is prepended to
// the raw list and the form modal closes.
func (c *Controller) Create(ctx context.Context, form ProductForm) (models.Product, error) {
	input, err := c.prepare(ctx, form)
	if err != nil {
		return models.Product{}, err
	}
	if err := c.beginSave(ctx); err != nil {
		return models.Product{}, err
	}

	created, err := c.svc.CreateProduct(ctx, input)
	if err == nil && strings.TrimSpace(created.ID) == "" {
		err = ErrNoIdentifier
	}

	c.mu.Lock()
	c.saving = false
	if c.closed {
		c.mu.Unlock()
		return models.Product{}, ErrClosed
	}
	if err != nil {
		c.keepForm(form)
		c.mu.Unlock()
		c.fail(ctx, "create product", err, "Failed to create product")
		return models.Product{}, err
	}
	c.products = append([]models.Product{created}, c.products...)
	c.form = FormModal{}
	c.mu.Unlock()

	c.notifier.Push(ctx, KindSuccess, "Product created")
	return created, nil
}

// Update validates form and submits it for product id. The stored record
// replaces the matching entry in place.
func (c *Controller) Update(ctx context.Context, id string, form ProductForm) (models.Product, error) {
	input, err := c.prepare(ctx, form)
	if err != nil {
		return models.Product{}, err
	}
	if err := c.beginSave(ctx); err != nil {
		return models.Product{}, err
	}

	updated, err := c.svc.UpdateProduct(ctx, id, input)

	c.mu.Lock()
	c.saving = false
	if c.closed {
		c.mu.Unlock()
		return models.Product{}, ErrClosed
	}
	if err != nil {
		c.keepForm(form)
		c.mu.Unlock()
		c.fail(ctx, "update product", err, "Failed to update product")
		return models.Product{}, err
	}
	if updated.ID == "" {
		updated.ID = id
	}
	products := slices.Clone(c.products)
	if i := slices.IndexFunc(products, func(p models.Product) bool { return p.ID == id }); i >= 0 {
		products[i] = updated
	}
	c.products = products
	c.form = FormModal{}
	c.mu.Unlock()

	c.notifier.Push(ctx, KindSuccess, "Product updated")
	return updated, nil
}

// RequestDelete asks for confirmation before product id is deleted.
func (c *Controller) RequestDelete(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.indexOf(id) < 0 {
		return ErrProductNotFound
	}
	c.pendingDelete = id
	return nil
}

// CancelDelete drops the pending confirmation.
func (c *Controller) CancelDelete() {
	c.mu.Lock()
	c.pendingDelete = ""
	c.mu.Unlock()
}

// ConfirmDelete deletes the product awaiting confirmation.
func (c *Controller) ConfirmDelete(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	id := c.pendingDelete
	c.pendingDelete = ""
	c.mu.Unlock()
	if id == "" {
		return ErrNoPendingDelete
	}

	err := c.svc.DeleteProduct(ctx, id)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if err != nil {
		c.mu.Unlock()
		c.fail(ctx, "delete product", err, "Failed to delete product")
		return err
	}
	c.products = slices.DeleteFunc(slices.Clone(c.products), func(p models.Product) bool { return p.ID == id })
	if c.detail.ProductID == id {
		c.detail = DetailModal{}
	}
	if c.form.ProductID == id {
		c.form = FormModal{}
	}
	c.mu.Unlock()

	c.notifier.Push(ctx, KindSuccess, "Product deleted")
	return nil
}

// OpenCreate opens an empty create form, replacing any open form.
func (c *Controller) OpenCreate() {
	c.mu.Lock()
	c.form = FormModal{Open: true, Mode: FormCreate}
	c.mu.Unlock()
}

// OpenEdit opens the edit form prefilled with product id.
func (c *Controller) OpenEdit(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.indexOf(id)
	if i < 0 {
		return ErrProductNotFound
	}
	c.form = FormModal{Open: true, Mode: FormEdit, ProductID: id, Form: FormFromProduct(c.products[i])}
	return nil
}

func (c *Controller) CloseForm() {
	c.mu.Lock()
	c.form = FormModal{}
	c.mu.Unlock()
}

// OpenDetail shows product id read-only.
func (c *Controller) OpenDetail(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.indexOf(id) < 0 {
		return ErrProductNotFound
	}
	c.detail = DetailModal{Open: true, ProductID: id}
	return nil
}

func (c *Controller) CloseDetail() {
	c.mu.Lock()
	c.detail = DetailModal{}
	c.mu.Unlock()
}

// SetSearch changes the search term and returns to the first page.
func (c *Controller) SetSearch(term string) {
	c.mu.Lock()
	if c.search != term {
		c.page = 1
	}
	c.search = term
	c.mu.Unlock()
}

// SetSort changes the ordering and returns to the first page.
func (c *Controller) SetSort(key string) {
	c.mu.Lock()
	if k := catalog.ParseSortKey(key); k != c.sort {
		c.sort = k
		c.page = 1
	}
	c.mu.Unlock()
}

// SetPage selects a page; View clamps it to the available range.
func (c *Controller) SetPage(page int) {
	c.mu.Lock()
	c.page = max(page, 1)
	c.mu.Unlock()
}

func (c *Controller) SetTab(tab string) {
	c.mu.Lock()
	c.tab = ParseTab(tab)
	c.mu.Unlock()
}

// ToggleTheme switches between light and dark and remembers the choice in
// the session.
func (c *Controller) ToggleTheme(ctx context.Context) error {
	c.mu.Lock()
	if c.theme == session.ThemeDark {
		c.theme = session.ThemeLight
	} else {
		c.theme = session.ThemeDark
	}
	theme := c.theme
	c.mu.Unlock()

	return c.persist(ctx, func(s *session.Session) { s.Theme = theme })
}

// ToggleSidebar collapses or expands the sidebar.
func (c *Controller) ToggleSidebar(ctx context.Context) error {
	c.mu.Lock()
	c.sidebarCollapsed = !c.sidebarCollapsed
	collapsed := c.sidebarCollapsed
	c.mu.Unlock()

	return c.persist(ctx, func(s *session.Session) { s.SidebarCollapsed = collapsed })
}

// Close unmounts the dashboard: responses still in flight are dropped and
// pending toasts are cancelled.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	c.notifier.Close()
}

func (c *Controller) persist(ctx context.Context, fn func(*session.Session)) error {
	if c.sess == nil {
		return nil
	}
	if err := c.sess.Update(ctx, fn); err != nil {
		logx.Warn().Err(err).Msg("save ui preferences")
		return err
	}
	return nil
}

// prepare validates form, keeping it in the open modal with field errors
// when it is rejected.
func (c *Controller) prepare(ctx context.Context, form ProductForm) (api.ProductInput, error) {
	input, err := form.Input(c.validate)
	if err == nil {
		return input, nil
	}

	var ve *ValidationError
	if errors.As(err, &ve) {
		c.mu.Lock()
		if c.form.Open {
			c.form.Form = form
			c.form.Errors = ve.Fields
		}
		c.mu.Unlock()
		c.notifier.Push(ctx, KindError, ve.Message())
	}
	return api.ProductInput{}, err
}

// keepForm leaves the seller's input in the open modal after a rejected
// save. Uploaded image bytes are not kept. Callers hold c.mu.
func (c *Controller) keepForm(form ProductForm) {
	if c.form.Open {
		form.Image = nil
		c.form.Form = form
		c.form.Errors = nil
	}
}

func (c *Controller) beginSave(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.saving {
		c.mu.Unlock()
		c.notifier.Push(ctx, KindInfo, "A save is already in progress")
		return ErrSaveInProgress
	}
	c.saving = true
	c.mu.Unlock()
	return nil
}

func (c *Controller) fail(ctx context.Context, op string, err error, fallback string) {
	logx.Error().Err(err).Str("op", op).Msg("dashboard operation failed")
	c.notifier.Push(ctx, KindError, api.UserMessage(err, fallback))
}

func (c *Controller) indexOf(id string) int {
	if id == "" {
		return -1
	}
	return slices.IndexFunc(c.products, func(p models.Product) bool { return p.ID == id })
}
