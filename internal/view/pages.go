package view

import (
	"github.com/rogerio-castellano/seller-dashboard/internal/catalog"
	"github.com/rogerio-castellano/seller-dashboard/internal/dashboard"
	"github.com/rogerio-castellano/seller-dashboard/internal/models"
)

// LandingPage is the public storefront.
type LandingPage struct {
	Products []dashboard.ProductRow
	Sellers  []models.Seller
	Error    string
}

// AuthPage backs the login and register forms.
type AuthPage struct {
	Email     string
	FirstName string
	LastName  string
	Errors    map[string]string
	Message   string
}

// DashboardPage is the seller dashboard.
type DashboardPage struct {
	View     dashboard.View
	Tabs     []dashboard.Tab
	SortKeys []catalog.SortKey
	Activity []dashboard.Notification
}

type ErrorPage struct {
	Status  int
	Message string
}
