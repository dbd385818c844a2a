package dashboard

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/rogerio-castellano/seller-dashboard/internal/api"
	"github.com/rogerio-castellano/seller-dashboard/internal/models"
)

// ProductForm is the create/edit form as typed by the seller.
type ProductForm struct {
	Name        string
	Description string
	Price       string
	Quantity    string
	Category    string
	SubCategory string
	Sizes       string
	Colors      string
	Image       *api.ImageUpload
}

// FormFromProduct prefills the edit form.
func FormFromProduct(p models.Product) ProductForm {
	return ProductForm{
		Name:        p.Name,
		Description: p.Description,
		Price:       strconv.FormatFloat(p.Price, 'f', -1, 64),
		Quantity:    strconv.Itoa(p.Quantity),
		Category:    p.Category,
		SubCategory: p.SubCategory,
		Sizes:       strings.Join(p.Sizes, ", "),
		Colors:      strings.Join(p.Colors, ", "),
	}
}

type productDraft struct {
	Name     string   `validate:"required"`
	Price    *float64 `validate:"required,gte=0"`
	Quantity *int     `validate:"required,gte=0"`
}

// ValidationError lists the form fields that block a submission.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+" "+e.Fields[k])
	}
	return "invalid product: " + strings.Join(parts, "; ")
}

// Message is the blocking alert shown to the seller.
func (e *ValidationError) Message() string {
	for _, k := range []string{"name", "price", "quantity"} {
		if msg, ok := e.Fields[k]; ok {
			return fmt.Sprintf("%s %s", strings.ToUpper(k[:1])+k[1:], msg)
		}
	}
	return "Please fill in the required fields"
}

// Input validates the form and converts it to the service field set.
func (f ProductForm) Input(v *validator.Validate) (api.ProductInput, error) {
	fields := map[string]string{}
	draft := productDraft{Name: strings.TrimSpace(f.Name)}

	if s := strings.TrimSpace(f.Price); s != "" {
		price, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(price) || math.IsInf(price, 0) {
			fields["price"] = "must be a number"
		} else {
			draft.Price = &price
		}
	}
	if s := strings.TrimSpace(f.Quantity); s != "" {
		qty, err := strconv.Atoi(s)
		if err != nil {
			fields["quantity"] = "must be a whole number"
		} else {
			draft.Quantity = &qty
		}
	}

	if err := v.Struct(draft); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return api.ProductInput{}, err
		}
		for _, fieldErr := range verrs {
			key := strings.ToLower(fieldErr.Field())
			if _, seen := fields[key]; seen {
				continue
			}
			fields[key] = describe(fieldErr)
		}
	}
	if len(fields) > 0 {
		return api.ProductInput{}, &ValidationError{Fields: fields}
	}

	return api.ProductInput{
		Name:        draft.Name,
		Description: strings.TrimSpace(f.Description),
		Price:       *draft.Price,
		Quantity:    *draft.Quantity,
		Category:    strings.TrimSpace(f.Category),
		SubCategory: strings.TrimSpace(f.SubCategory),
		Sizes:       models.SplitList(f.Sizes),
		Colors:      models.SplitList(f.Colors),
		Image:       f.Image,
	}, nil
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gte":
		return "must not be negative"
	default:
		return "is invalid"
	}
}
