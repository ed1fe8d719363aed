package client

import (
	"encoding/json"

	"github.com/platinummonkey/backoffice/pkg/paginate"
)

// Ref is the {id, name} summary embedded in related entities
type Ref struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Category is a product category as returned by the upstream API
type Category struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Position      int     `json:"position"`
	ParentID      *string `json:"parentId"`
	Parent        *Ref    `json:"parent"`
	ChildrenCount int     `json:"childrenCount"`
	ProductsCount int     `json:"productsCount"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

// CategoryInput creates a category
type CategoryInput struct {
	Name     string `json:"name"`
	ParentID string `json:"parentId,omitempty"`
}

// CategoryPatch updates a category. Nil fields are left unchanged; set
// ClearParent to move the category to the top level.
type CategoryPatch struct {
	Name        *string
	ParentID    *string
	Position    *int
	ClearParent bool
}

// MarshalJSON emits only the fields being changed, with parentId:null for
// ClearParent
func (p CategoryPatch) MarshalJSON() ([]byte, error) {
	out := make(map[string]any)
	if p.Name != nil {
		out["name"] = *p.Name
	}
	if p.Position != nil {
		out["position"] = *p.Position
	}
	switch {
	case p.ClearParent:
		out["parentId"] = nil
	case p.ParentID != nil:
		out["parentId"] = *p.ParentID
	}
	return json.Marshal(out)
}

// Product is a catalog product. Price is a decimal string.
type Product struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Price        string `json:"price"`
	CategoryID   string `json:"categoryId"`
	CategoryName string `json:"categoryName"`
	CreatedAt    string `json:"createdAt"`
	UpdatedAt    string `json:"updatedAt"`
}

// ProductInput creates a product
type ProductInput struct {
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	CategoryID string  `json:"categoryId"`
}

// ProductPatch updates a product; nil fields are left unchanged
type ProductPatch struct {
	Name       *string  `json:"name,omitempty"`
	Price      *float64 `json:"price,omitempty"`
	CategoryID *string  `json:"categoryId,omitempty"`
}

// SaleItem is one line of a sale. UnitPrice is a decimal string.
type SaleItem struct {
	ID        string `json:"id"`
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unitPrice"`
	Product   Ref    `json:"product"`
}

// Sale is a recorded sale. Total is a decimal string.
type Sale struct {
	ID        string     `json:"id"`
	CreatedAt string     `json:"createdAt"`
	Total     string     `json:"total"`
	Items     []SaleItem `json:"items"`
}

// SaleLine is one requested line of a new sale
type SaleLine struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// SaleInput creates a sale
type SaleInput struct {
	Items []SaleLine `json:"items"`
}

// Identity is the logged-in user returned by /api/auth/me
type Identity struct {
	ID    any    `json:"id"`
	Email string `json:"email"`
}

// CategoryPage is one page of categories
type CategoryPage = paginate.Page[Category]

// ProductPage is one page of products
type ProductPage = paginate.Page[Product]

// SalePage is one page of sales
type SalePage = paginate.Page[Sale]
