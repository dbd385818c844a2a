package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rogerio-castellano/seller-dashboard/internal/models"
)

// ImageUpload is an optional image file sent with a product.
type ImageUpload struct {
	Filename string
	Data     []byte
}

// ProductInput is the field set accepted by create and update.
type ProductInput struct {
	Name        string
	Description string
	Price       float64
	Quantity    int
	Category    string
	SubCategory string
	Sizes       []string
	Colors      []string
	Image       *ImageUpload
}

// ListProducts fetches the seller's full product list.
func (c *Client) ListProducts(ctx context.Context) ([]models.Product, error) {
	env, err := c.do(ctx, request{op: "list products", method: http.MethodGet, path: c.productsPath})
	if err != nil {
		return nil, err
	}
	products, err := decodeProducts(env.payload())
	if err != nil {
		return nil, &TransportError{Op: "list products", Err: err}
	}
	return products, nil
}

// CreateProduct submits a new listing and returns the stored record.
func (c *Client) CreateProduct(ctx context.Context, in ProductInput) (models.Product, error) {
	return c.sendProduct(ctx, "create product", http.MethodPost, c.productsPath, "", in)
}

// UpdateProduct replaces the fields of listing id and returns the stored record.
func (c *Client) UpdateProduct(ctx context.Context, id string, in ProductInput) (models.Product, error) {
	if strings.TrimSpace(id) == "" {
		return models.Product{}, errors.New("update product: empty id")
	}
	return c.sendProduct(ctx, "update product", http.MethodPut, c.productPath(id), strings.TrimSpace(id), in)
}

// DeleteProduct removes listing id.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return errors.New("delete product: empty id")
	}
	_, err := c.do(ctx, request{op: "delete product", method: http.MethodDelete, path: c.productPath(id)})
	return err
}

func (c *Client) productPath(id string) string {
	return c.productsPath + "/" + url.PathEscape(strings.TrimSpace(id))
}

// sendProduct submits in and returns the stored record. knownID fills in the
// identifier when an update response omits it.
func (c *Client) sendProduct(ctx context.Context, op, method, path, knownID string, in ProductInput) (models.Product, error) {
	body, contentType, err := encodeProductForm(in)
	if err != nil {
		return models.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	env, err := c.do(ctx, request{op: op, method: method, path: path, body: body, contentType: contentType})
	if err != nil {
		return models.Product{}, err
	}

	products, err := decodeProducts(env.payload())
	if err != nil {
		return models.Product{}, &TransportError{Op: op, Err: err}
	}
	if len(products) == 0 {
		return models.Product{}, &TransportError{Op: op, Err: errors.New("response carried no product")}
	}
	if strings.TrimSpace(products[0].ID) == "" {
		products[0].ID = knownID
	}
	if products[0].ID == "" {
		return models.Product{}, &TransportError{Op: op, Err: errors.New("response carried no identifier")}
	}
	return products[0], nil
}

func encodeProductForm(in ProductInput) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	fields := []struct{ name, value string }{
		{"name", in.Name},
		{"description", in.Description},
		{"price", strconv.FormatFloat(in.Price, 'f', -1, 64)},
		{"quantity", strconv.Itoa(in.Quantity)},
		{"category", in.Category},
		{"subCategory", in.SubCategory},
		{"sizes", strings.Join(in.Sizes, ",")},
		{"colors", strings.Join(in.Colors, ",")},
	}
	for _, f := range fields {
		if err := writer.WriteField(f.name, f.value); err != nil {
			return nil, "", err
		}
	}

	if in.Image != nil && len(in.Image.Data) > 0 {
		filename := in.Image.Filename
		if filename == "" {
			filename = "image"
		}
		part, err := writer.CreateFormFile("image", filename)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(in.Image.Data); err != nil {
			return nil, "", err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return body, writer.FormDataContentType(), nil
}

// decodeProducts accepts either a single product object or an array of them.
func decodeProducts(data []byte) ([]models.Product, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return []models.Product{}, nil
	}
	if data[0] == '[' {
		var products []models.Product
		if err := json.Unmarshal(data, &products); err != nil {
			return nil, err
		}
		return products, nil
	}
	var p models.Product
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return []models.Product{p}, nil
}

// ListSellers fetches the public seller directory shown on the landing page.
func (c *Client) ListSellers(ctx context.Context) ([]models.Seller, error) {
	env, err := c.do(ctx, request{op: "list sellers", method: http.MethodGet, path: c.sellersPath})
	if err != nil {
		return nil, err
	}
	data := bytes.TrimSpace(env.payload())
	sellers := []models.Seller{}
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return sellers, nil
	}
	if data[0] != '[' {
		var s models.Seller
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, &TransportError{Op: "list sellers", Err: err}
		}
		return append(sellers, s), nil
	}
	if err := json.Unmarshal(data, &sellers); err != nil {
		return nil, &TransportError{Op: "list sellers", Err: err}
	}
	return sellers, nil
}
