package api

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
)

// GeoScope addresses a search by coordinates and radius.
type GeoScope struct {
	Lat      float64
	Lon      float64
	RadiusKm float64
}

// SearchQuery is a fully resolved product search. Exactly one of CityID or
// Geo must be set; the query builder upholds that and Values re-checks it so
// a malformed request can never leave the process.
type SearchQuery struct {
	Q      string
	SortBy string
	CityID *int
	Geo    *GeoScope
}

// ErrAmbiguousScope reports a SearchQuery that carries neither or both
// addressing modes.
var ErrAmbiguousScope = errors.New("api: search must scope by exactly one of city or coordinates")

// Values encodes the query string for /products/search.
func (q SearchQuery) Values() (url.Values, error) {
	if (q.CityID == nil) == (q.Geo == nil) {
		return nil, ErrAmbiguousScope
	}
	v := url.Values{}
	v.Set("q", q.Q)
	v.Set("sort_by", q.SortBy)
	if q.CityID != nil {
		v.Set("city_id", strconv.Itoa(*q.CityID))
	} else {
		v.Set("lat", strconv.FormatFloat(q.Geo.Lat, 'f', -1, 64))
		v.Set("lon", strconv.FormatFloat(q.Geo.Lon, 'f', -1, 64))
		v.Set("radius_km", strconv.FormatFloat(q.Geo.RadiusKm, 'f', -1, 64))
	}
	return v, nil
}

// Search runs a product price search. An empty result is a valid response,
// rendered as an empty state by the UI.
func (c *Client) Search(ctx context.Context, q SearchQuery) ([]PriceSearchResult, error) {
	values, err := q.Values()
	if err != nil {
		return nil, err
	}
	var results []PriceSearchResult
	if err := c.get(ctx, "/products/search", values, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// PricesForProduct lists per-store prices of one product in a city. This is
// the legacy listing used by the product detail page under a manual location.
func (c *Client) PricesForProduct(ctx context.Context, productID, cityID int) ([]PriceSearchResult, error) {
	values := url.Values{}
	values.Set("city_id", strconv.Itoa(cityID))
	var results []PriceSearchResult
	path := fmt.Sprintf("/products/%d/prices", productID)
	if err := c.get(ctx, path, values, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// ProductByBarcode looks up a product by barcode. A miss returns ErrNotFound,
// which callers present as "no match", not as a failure.
func (c *Client) ProductByBarcode(ctx context.Context, code string) (Product, error) {
	var p Product
	if err := c.get(ctx, "/products/barcode/"+url.PathEscape(code), nil, &p); err != nil {
		return Product{}, err
	}
	return p, nil
}

// AllProducts returns the full catalog, used by the dashboard's product picker.
func (c *Client) AllProducts(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := c.get(ctx, "/products/all", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}
