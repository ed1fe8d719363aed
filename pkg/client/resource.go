package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/platinummonkey/backoffice/pkg/paginate"
)

// resource implements the calls shared by every collection endpoint
type resource[T any] struct {
	client *Client
	path   string
}

func (r resource[T]) list(ctx context.Context, page, limit int) (*paginate.Page[T], error) {
	return do[*paginate.Page[T]](ctx, r.client, http.MethodGet,
		fmt.Sprintf("%s?page=%d&limit=%d", r.path, page, limit), nil)
}

func (r resource[T]) get(ctx context.Context, id string) (*T, error) {
	return do[*T](ctx, r.client, http.MethodGet, r.itemPath(id), nil)
}

func (r resource[T]) create(ctx context.Context, input any) (*T, error) {
	return do[*T](ctx, r.client, http.MethodPost, r.path, input)
}

func (r resource[T]) update(ctx context.Context, id string, patch any) (*T, error) {
	return do[*T](ctx, r.client, http.MethodPatch, r.itemPath(id), patch)
}

func (r resource[T]) delete(ctx context.Context, id string) error {
	_, err := do[json.RawMessage](ctx, r.client, http.MethodDelete, r.itemPath(id), nil)
	return err
}

func (r resource[T]) fetcher() paginate.Fetcher[T] {
	return r.list
}

func (r resource[T]) itemPath(id string) string {
	return r.path + "/" + url.PathEscape(id)
}

// CategoriesService calls /api/categories
type CategoriesService struct {
	resource[Category]
}

// List returns one page of categories
func (s *CategoriesService) List(ctx context.Context, page, limit int) (*CategoryPage, error) {
	return s.list(ctx, page, limit)
}

// Get returns a single category
func (s *CategoriesService) Get(ctx context.Context, id string) (*Category, error) {
	return s.get(ctx, id)
}

// Create creates a category
func (s *CategoriesService) Create(ctx context.Context, input CategoryInput) (*Category, error) {
	return s.create(ctx, input)
}

// Update applies patch to a category
func (s *CategoriesService) Update(ctx context.Context, id string, patch CategoryPatch) (*Category, error) {
	return s.update(ctx, id, patch)
}

// Delete removes a category
func (s *CategoriesService) Delete(ctx context.Context, id string) error {
	return s.delete(ctx, id)
}

// Fetcher adapts List for a paginate.Resource
func (s *CategoriesService) Fetcher() paginate.Fetcher[Category] {
	return s.fetcher()
}

// ProductsService calls /api/products
type ProductsService struct {
	resource[Product]
}

// List returns one page of products
func (s *ProductsService) List(ctx context.Context, page, limit int) (*ProductPage, error) {
	return s.list(ctx, page, limit)
}

// Get returns a single product
func (s *ProductsService) Get(ctx context.Context, id string) (*Product, error) {
	return s.get(ctx, id)
}

// Create creates a product
func (s *ProductsService) Create(ctx context.Context, input ProductInput) (*Product, error) {
	return s.create(ctx, input)
}

// Update applies patch to a product
func (s *ProductsService) Update(ctx context.Context, id string, patch ProductPatch) (*Product, error) {
	return s.update(ctx, id, patch)
}

// Delete removes a product
func (s *ProductsService) Delete(ctx context.Context, id string) error {
	return s.delete(ctx, id)
}

// Fetcher adapts List for a paginate.Resource
func (s *ProductsService) Fetcher() paginate.Fetcher[Product] {
	return s.fetcher()
}

// SalesService calls /api/sales. Sales cannot be updated or deleted.
type SalesService struct {
	resource[Sale]
}

// List returns one page of sales
func (s *SalesService) List(ctx context.Context, page, limit int) (*SalePage, error) {
	return s.list(ctx, page, limit)
}

// Get returns a single sale with its items
func (s *SalesService) Get(ctx context.Context, id string) (*Sale, error) {
	return s.get(ctx, id)
}

// Create records a sale
func (s *SalesService) Create(ctx context.Context, input SaleInput) (*Sale, error) {
	return s.create(ctx, input)
}

// Fetcher adapts List for a paginate.Resource
func (s *SalesService) Fetcher() paginate.Fetcher[Sale] {
	return s.fetcher()
}
