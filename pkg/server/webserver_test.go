package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/matst80/slask-catalog/pkg/catalog"
	"github.com/matst80/slask-catalog/pkg/common"
	"github.com/matst80/slask-catalog/pkg/common/jsoncompat"
	"github.com/matst80/slask-catalog/pkg/index"
	"github.com/matst80/slask-catalog/pkg/session"
	"github.com/matst80/slask-catalog/pkg/storage"
	"github.com/matst80/slask-catalog/pkg/types"
)

type recordingTracking struct {
	mu      sync.Mutex
	filters []int
}

func (t *recordingTracking) TrackSession(sessionId string, r *http.Request) {}

func (t *recordingTracking) TrackFilter(sessionId string, state types.FilterState, resultLen int, r *http.Request) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.filters = append(t.filters, resultLen)
}

func (t *recordingTracking) Close() error {
	return nil
}

func newTestServer(t *testing.T, store session.Store, trk types.Tracking) http.Handler {
	t.Helper()
	ds, err := storage.EmbeddedDataset()
	require.NoError(t, err)
	views, err := catalog.Join(ds)
	require.NoError(t, err)
	ws := NewWebServer(zap.NewNop(), index.NewItemIndex(views), ds, session.NewHolder(store), trk)
	return ws.Handler()
}

type client struct {
	t       *testing.T
	handler http.Handler
	cookie  *http.Cookie
}

func (c *client) do(method, target string, form url.Values) *httptest.ResponseRecorder {
	c.t.Helper()
	var r *http.Request
	if form != nil {
		r = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		r = httptest.NewRequest(method, target, nil)
	}
	if c.cookie != nil {
		r.AddCookie(c.cookie)
	}
	w := httptest.NewRecorder()
	c.handler.ServeHTTP(w, r)
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == common.SessionCookieName {
			c.cookie = cookie
		}
	}
	return w
}

func (c *client) catalog(method, target string, form url.Values) CatalogResponse {
	c.t.Helper()
	w := c.do(method, target, form)
	require.Equal(c.t, http.StatusOK, w.Code, w.Body.String())
	res := CatalogResponse{}
	require.NoError(c.t, jsoncompat.Unmarshal(w.Body.Bytes(), &res))
	return res
}

func names(items []types.ProductView) []string {
	ret := make([]string, len(items))
	for i, v := range items {
		ret[i] = v.Name
	}
	return ret
}

func iconOf(res CatalogResponse, field types.SortField) string {
	for _, c := range res.Columns {
		if c.Field == field {
			return c.Icon
		}
	}
	return ""
}

func TestHealth(t *testing.T) {
	c := &client{t: t, handler: newTestServer(t, session.NewMemoryStore(), nil)}
	w := c.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}

func TestUsersAndCategories(t *testing.T) {
	c := &client{t: t, handler: newTestServer(t, session.NewMemoryStore(), nil)}

	var users []types.User
	w := c.do(http.MethodGet, "/api/users", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, jsoncompat.Unmarshal(w.Body.Bytes(), &users))
	assert.Len(t, users, 4)
	assert.Equal(t, "Roma", users[0].Name)

	var categories []types.Category
	w = c.do(http.MethodGet, "/api/categories", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, jsoncompat.Unmarshal(w.Body.Bytes(), &categories))
	assert.Len(t, categories, 5)
}

func TestStatelessProducts(t *testing.T) {
	trk := &recordingTracking{}
	c := &client{t: t, handler: newTestServer(t, session.NewMemoryStore(), trk)}

	res := c.catalog(http.MethodGet, "/api/products?q=MILK", nil)
	assert.Equal(t, []string{"Milk"}, names(res.Items))
	assert.Equal(t, 1, res.TotalHits)
	assert.Empty(t, res.Message)
	require.Len(t, res.Columns, 4)
	assert.Equal(t, "Product", res.Columns[1].Label)
	assert.Equal(t, "sort", iconOf(res, types.SortByName))

	res = c.catalog(http.MethodGet, "/api/products?c=3&sort=name&order=desc", nil)
	assert.Equal(t, []string{"Bananas", "Apples"}, names(res.Items))
	assert.Equal(t, "sort-down", iconOf(res, types.SortByName))

	res = c.catalog(http.MethodGet, "/api/products?user=Max&sort=id", nil)
	assert.Equal(t, []string{"Jacket", "T-shirt"}, names(res.Items))

	assert.Equal(t, []int{1, 2, 2}, trk.filters)
}

func TestEmptyResultIsNotAnError(t *testing.T) {
	c := &client{t: t, handler: newTestServer(t, session.NewMemoryStore(), nil)}
	w := c.do(http.MethodGet, "/api/products?q=zzz", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"items":[]`)
	assert.Contains(t, w.Body.String(), types.NoMatchMessage)
}

func TestBadParameters(t *testing.T) {
	c := &client{t: t, handler: newTestServer(t, session.NewMemoryStore(), nil)}
	for _, target := range []string{
		"/api/products?sort=bogus",
		"/api/products?sort=name&order=sideways",
		"/api/products?c=abc",
		"/api/products?c=99",
		"/api/products?c=1&c=99",
	} {
		w := c.do(http.MethodGet, target, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, target)
	}

	assert.Equal(t, http.StatusBadRequest, c.do(http.MethodPost, "/api/session/sort/price", nil).Code)
	assert.Equal(t, http.StatusBadRequest, c.do(http.MethodPost, "/api/session/categories/abc", nil).Code)
	assert.Equal(t, http.StatusBadRequest, c.do(http.MethodPost, "/api/session/categories/99", nil).Code)
}

func TestSessionSortCycle(t *testing.T) {
	c := &client{t: t, handler: newTestServer(t, session.NewMemoryStore(), nil)}

	res := c.catalog(http.MethodGet, "/api/session", nil)
	require.NotNil(t, c.cookie)
	assert.Equal(t, 12, res.TotalHits)
	assert.True(t, res.State.IsIdentity())

	res = c.catalog(http.MethodPost, "/api/session/sort/name", nil)
	assert.Equal(t, types.SortAscending(types.SortByName), res.State.Sort())
	assert.Equal(t, "sort-up", iconOf(res, types.SortByName))
	assert.Equal(t, "Apples", res.Items[0].Name)

	res = c.catalog(http.MethodPost, "/api/session/sort/name", nil)
	assert.Equal(t, types.SortDescending(types.SortByName), res.State.Sort())
	assert.Equal(t, "sort-down", iconOf(res, types.SortByName))
	assert.Equal(t, "T-shirt", res.Items[0].Name)

	res = c.catalog(http.MethodPost, "/api/session/sort/name", nil)
	assert.False(t, res.State.Sort().IsSorted())
	assert.Equal(t, "sort", iconOf(res, types.SortByName))
	assert.Equal(t, "Milk", res.Items[0].Name)
}

func TestSessionFilters(t *testing.T) {
	c := &client{t: t, handler: newTestServer(t, session.NewMemoryStore(), nil)}

	res := c.catalog(http.MethodPost, "/api/session/categories/3", nil)
	assert.Equal(t, []string{"Bananas", "Apples"}, names(res.Items))

	res = c.catalog(http.MethodPost, "/api/session/categories/5", nil)
	assert.Equal(t, []string{"Jacket", "Bananas", "Apples", "T-shirt"}, names(res.Items))

	res = c.catalog(http.MethodPost, "/api/session/user", url.Values{"user": {"Max"}})
	assert.Equal(t, []string{"Jacket", "T-shirt"}, names(res.Items))

	res = c.catalog(http.MethodPost, "/api/session/query", url.Values{"q": {"shirt"}})
	assert.Equal(t, []string{"T-shirt"}, names(res.Items))

	res = c.catalog(http.MethodPost, "/api/session/query", url.Values{"q": {"milk"}})
	assert.Empty(t, res.Items)
	assert.Equal(t, types.NoMatchMessage, res.Message)

	res = c.catalog(http.MethodPost, "/api/session/user", url.Values{"user": {""}})
	_, hasUser := res.State.UserName()
	assert.False(t, hasUser)

	res = c.catalog(http.MethodDelete, "/api/session/categories", nil)
	assert.False(t, res.State.HasCategoryFilter())
	assert.Equal(t, []string{"Milk"}, names(res.Items))

	res = c.catalog(http.MethodGet, "/api/session", nil)
	assert.Equal(t, "milk", res.State.Query())

	res = c.catalog(http.MethodPost, "/api/session/reset", nil)
	assert.True(t, res.State.IsIdentity())
	assert.Equal(t, 12, res.TotalHits)
}

func TestSessionsAreIsolated(t *testing.T) {
	handler := newTestServer(t, session.NewMemoryStore(), nil)
	a := &client{t: t, handler: handler}
	b := &client{t: t, handler: handler}

	a.catalog(http.MethodPost, "/api/session/categories/1", nil)
	res := b.catalog(http.MethodGet, "/api/session", nil)
	assert.Equal(t, 12, res.TotalHits)
	assert.NotEqual(t, a.cookie.Value, b.cookie.Value)
}

type brokenStore struct{}

func (brokenStore) Load(context.Context, string) (types.FilterState, bool, error) {
	return types.NewFilterState(), false, errors.New("store unavailable")
}

func (brokenStore) Save(context.Context, string, types.FilterState) error {
	return errors.New("store unavailable")
}

func TestSessionStoreErrors(t *testing.T) {
	c := &client{t: t, handler: newTestServer(t, brokenStore{}, nil)}
	assert.Equal(t, http.StatusInternalServerError, c.do(http.MethodGet, "/api/session", nil).Code)
	assert.Equal(t, http.StatusInternalServerError, c.do(http.MethodPost, "/api/session/reset", nil).Code)

	// the stateless endpoint does not touch the store
	assert.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/products", nil).Code)
}

func TestOptions(t *testing.T) {
	c := &client{t: t, handler: newTestServer(t, session.NewMemoryStore(), nil)}
	r := httptest.NewRequest(http.MethodOptions, "/api/session/reset", nil)
	r.Header.Set("Origin", "https://shop.example")
	w := httptest.NewRecorder()
	c.handler.ServeHTTP(w, r)
	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, "https://shop.example", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetrics(t *testing.T) {
	c := &client{t: t, handler: newTestServer(t, session.NewMemoryStore(), nil)}
	c.do(http.MethodGet, "/api/products", nil)
	w := c.do(http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "slaskcatalog_filter_total")
	assert.Contains(t, w.Body.String(), "slaskcatalog_requests_total")
}
