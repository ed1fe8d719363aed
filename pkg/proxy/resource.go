package proxy

import "net/http"

// Resource describes an upstream collection exposed under /api/<Name>
type Resource struct {
	// Name is the plural path segment, e.g. "categories"
	Name string
	// Singular is used in item-level error messages, e.g. "category"
	Singular string
	// Update enables PATCH /api/<Name>/{id}
	Update bool
	// Delete enables DELETE /api/<Name>/{id}
	Delete bool
}

var (
	Categories = Resource{Name: "categories", Singular: "category", Update: true, Delete: true}
	Products   = Resource{Name: "products", Singular: "product", Update: true, Delete: true}
	// Sales are immutable once recorded
	Sales = Resource{Name: "sales", Singular: "sale"}
)

// DefaultResources are the collections the console proxies
var DefaultResources = []Resource{Categories, Products, Sales}

// operation is one proxied endpoint
type operation struct {
	resource Resource
	method   string
	// item operations address /<Name>/{id}
	item bool
	// failure is the body message of a local 500
	failure string
}

func (o operation) paginated() bool {
	return !o.item && o.method == http.MethodGet
}

func (o operation) hasBody() bool {
	return o.method == http.MethodPost || o.method == http.MethodPatch
}

func (r Resource) operations() []operation {
	ops := []operation{
		{resource: r, method: http.MethodGet, failure: "Error fetching " + r.Name},
		{resource: r, method: http.MethodPost, failure: "Error creating " + r.Singular},
		{resource: r, method: http.MethodGet, item: true, failure: "Error fetching " + r.Singular},
	}
	if r.Update {
		ops = append(ops, operation{resource: r, method: http.MethodPatch, item: true, failure: "Error updating " + r.Singular})
	}
	if r.Delete {
		ops = append(ops, operation{resource: r, method: http.MethodDelete, item: true, failure: "Error deleting " + r.Singular})
	}
	return ops
}
