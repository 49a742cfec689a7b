package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		// The transport's idle connections outlive individual tests.
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
	)
}

type staticToken string

func (s staticToken) Token() (string, error) { return string(s), nil }

func TestClient_BearerInjection(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"id":1,"name":"Ada","email":"ada@example.com","role":"consumer","is_active":true}`))
	}))
	defer srv.Close()

	c := New(srv.URL, WithTokenSource(staticToken("tok-123")))
	_, err := c.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestClient_AnonymousWithoutToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := New(srv.URL, WithTokenSource(staticToken("")))
	_, err := c.States(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestClient_LoginSendsForm(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/token", r.URL.Path)
		require.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "ada@example.com", r.PostForm.Get("username"))
		assert.Equal(t, "hunter2", r.PostForm.Get("password"))
		w.Write([]byte(`{"access_token":"tok","token_type":"bearer"}`))
	}))
	defer srv.Close()

	tok, err := New(srv.URL).Login(context.Background(), "ada@example.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "tok", tok.AccessToken)
}

func TestClient_ErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{
			name:   "401 maps to ErrUnauthorized",
			status: http.StatusUnauthorized,
			body:   `{"detail":"Could not validate credentials"}`,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrUnauthorized)
			},
		},
		{
			name:   "404 maps to ErrNotFound",
			status: http.StatusNotFound,
			body:   `{"detail":"Product not found"}`,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrNotFound)
				assert.True(t, IsNotFound(err))
			},
		},
		{
			name:   "other statuses carry the detail",
			status: http.StatusUnprocessableEntity,
			body:   `{"detail":"rating must be between 1 and 5"}`,
			check: func(t *testing.T, err error) {
				var apiErr *Error
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
				assert.Equal(t, "rating must be between 1 and 5", apiErr.Detail)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := New(srv.URL).Me(context.Background())
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestClient_SchemaViolationIsDecodeError(t *testing.T) {
	// max_safe_radius_km must be positive; zero means the backend is broken
	// and the client refuses the payload.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"state_id":25,"state_name":"Lagos","max_safe_radius_km":0}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).StateInfo(context.Background(), 6.52, 3.37)
	var decErr *DecodeError
	require.ErrorAs(t, err, &decErr)
}

func TestClient_InvalidListItemIsDecodeError(t *testing.T) {
	// A zero-quantity, nameless, negative-price line violates the item schema;
	// validation must reach inside the items slice and refuse the payload.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":1,"items":[{"id":7,"product_id":2,"quantity":0,"product_name":"","store_id":3,"store_name":"Mama Nkechi","price_at_addition":-5}],"total_price":0}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).ShoppingList(context.Background())
	var decErr *DecodeError
	require.ErrorAs(t, err, &decErr)
}

func TestClient_NearbyMarketsWithoutCoordinates(t *testing.T) {
	// Coordinates are an optional extension; the pinned backend omits them and
	// the payload must still decode.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":1,"name":"Relief Market","city_name":"Owerri","state_name":"Imo"}]`))
	}))
	defer srv.Close()

	markets, err := New(srv.URL).NearbyMarkets(context.Background(), 5.48, 7.03, 10)
	require.NoError(t, err)
	require.Len(t, markets, 1)
	assert.Zero(t, markets[0].Latitude)
	assert.Zero(t, markets[0].Longitude)
}

func TestClient_MalformedJSONIsDecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).Me(context.Background())
	var decErr *DecodeError
	require.ErrorAs(t, err, &decErr)
}

func TestSearchQuery_Values(t *testing.T) {
	city := 8
	t.Run("city scope", func(t *testing.T) {
		v, err := SearchQuery{Q: "rice", SortBy: "price_asc", CityID: &city}.Values()
		require.NoError(t, err)
		assert.Equal(t, "rice", v.Get("q"))
		assert.Equal(t, "price_asc", v.Get("sort_by"))
		assert.Equal(t, "8", v.Get("city_id"))
		assert.Empty(t, v.Get("lat"))
	})

	t.Run("geo scope", func(t *testing.T) {
		v, err := SearchQuery{Q: "rice", Geo: &GeoScope{Lat: 6.52, Lon: 3.37, RadiusKm: 10}}.Values()
		require.NoError(t, err)
		assert.Equal(t, "6.52", v.Get("lat"))
		assert.Equal(t, "3.37", v.Get("lon"))
		assert.Equal(t, "10", v.Get("radius_km"))
		assert.Empty(t, v.Get("city_id"))
	})

	t.Run("neither scope", func(t *testing.T) {
		_, err := SearchQuery{Q: "rice"}.Values()
		assert.ErrorIs(t, err, ErrAmbiguousScope)
	})

	t.Run("both scopes", func(t *testing.T) {
		_, err := SearchQuery{Q: "rice", CityID: &city, Geo: &GeoScope{}}.Values()
		assert.ErrorIs(t, err, ErrAmbiguousScope)
	})
}

func TestClient_SearchEmptyResultIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	city := 8
	results, err := New(srv.URL).Search(context.Background(), SearchQuery{Q: "unobtainium", CityID: &city})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestClient_LogProductViewAccepts204(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/analytics/log-view", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	require.NoError(t, New(srv.URL).LogProductView(context.Background(), 42))
}
