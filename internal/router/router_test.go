package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"homebudget/internal/config"
	"homebudget/internal/logger"
	"homebudget/internal/metrics"
	"homebudget/internal/service"
	"homebudget/internal/store/memory"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  []string        `json:"errors"`
}

type apiClient struct {
	t      *testing.T
	engine http.Handler
}

func newClient(t *testing.T, opts service.Options) *apiClient {
	t.Helper()
	cfg := config.Default()
	cfg.Server.Mode = gin.TestMode
	svc := service.New(memory.New(), opts)
	return &apiClient{t: t, engine: Handler(cfg, svc, logger.Nop(), metrics.New())}
}

func (a *apiClient) do(method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	a.t.Helper()
	var rdr *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(a.t, err)
		rdr = bytes.NewReader(b)
	} else {
		rdr = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rdr)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	a.engine.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec, env
}

func (a *apiClient) seed() (personID, categoryID float64) {
	_, env := a.do(http.MethodPost, "/api/person", map[string]any{"name": "Alice", "age": 34})
	var p map[string]any
	require.NoError(a.t, json.Unmarshal(env.Data, &p))
	_, env = a.do(http.MethodPost, "/api/category", map[string]any{"description": "Household", "purpose": 3})
	var c map[string]any
	require.NoError(a.t, json.Unmarshal(env.Data, &c))
	return p["id"].(float64), c["id"].(float64)
}

func TestTransactionFlow(t *testing.T) {
	api := newClient(t, service.Options{})
	personID, categoryID := api.seed()

	rec, env := api.do(http.MethodPost, "/api/transaction", map[string]any{
		"description": "Groceries",
		"value":       100.50,
		"type":        2,
		"categoryId":  categoryID,
		"personId":    personID,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, http.StatusCreated, env.Status)
	var created map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "Groceries", created["description"])
	assert.Equal(t, 100.5, created["value"])
	assert.Equal(t, "Alice", created["person"].(map[string]any)["name"])

	rec, _ = api.do(http.MethodPost, "/api/transaction", map[string]any{
		"description": "Salary", "value": "250", "type": 1,
		"categoryId": categoryID, "personId": personID,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec, env = api.do(http.MethodGet, "/api/transaction/totals", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var totals map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &totals))
	assert.Equal(t, 250.0, totals["totalIncome"])
	assert.Equal(t, 100.5, totals["totalExpense"])
	assert.Equal(t, 149.5, totals["balance"])
	assert.Len(t, totals["transactions"], 2)

	rec, env = api.do(http.MethodPut, "/api/transaction/1", map[string]any{"description": "  ", "value": 80})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updated map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, "Groceries", updated["description"])
	assert.Equal(t, 80.0, updated["value"])

	rec, _ = api.do(http.MethodDelete, "/api/transaction/1", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec, env = api.do(http.MethodGet, "/api/transaction/1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "transaction 1 not found", env.Message)
}

func TestTransactionErrors(t *testing.T) {
	api := newClient(t, service.Options{})
	personID, categoryID := api.seed()

	tests := []struct {
		name       string
		method     string
		path       string
		body       any
		wantStatus int
		wantMsg    string
	}{
		{"missing category wins", http.MethodPost, "/api/transaction", map[string]any{
			"description": "Rent", "value": 10, "type": 2, "categoryId": 99, "personId": 98,
		}, http.StatusNotFound, "category 99 not found"},
		{"missing person", http.MethodPost, "/api/transaction", map[string]any{
			"description": "Rent", "value": 10, "type": 2, "categoryId": categoryID, "personId": 98,
		}, http.StatusNotFound, "person 98 not found"},
		{"zero value", http.MethodPost, "/api/transaction", map[string]any{
			"description": "Rent", "value": 0, "type": 2, "categoryId": categoryID, "personId": personID,
		}, http.StatusBadRequest, ""},
		{"bad type", http.MethodPost, "/api/transaction", map[string]any{
			"description": "Rent", "value": 5, "type": 3, "categoryId": categoryID, "personId": personID,
		}, http.StatusBadRequest, ""},
		{"short description", http.MethodPost, "/api/transaction", map[string]any{
			"description": "R", "value": 5, "type": 1, "categoryId": categoryID, "personId": personID,
		}, http.StatusBadRequest, ""},
		{"update missing", http.MethodPut, "/api/transaction/42", map[string]any{"value": 5}, http.StatusNotFound, "transaction 42 not found"},
		{"bad id", http.MethodGet, "/api/transaction/abc", nil, http.StatusBadRequest, "invalid id"},
		{"totals unknown person", http.MethodGet, "/api/transaction/totals/person/99", nil, http.StatusNotFound, "person 99 not found"},
		{"list unknown category", http.MethodGet, "/api/transaction/category/99", nil, http.StatusNotFound, "category 99 not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := api.do(tt.method, tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			assert.Equal(t, tt.wantStatus, env.Status)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, env.Message)
			}
			if tt.wantStatus == http.StatusBadRequest && tt.wantMsg == "" {
				assert.NotEmpty(t, env.Errors)
			}
		})
	}
}

func TestPersonAndCategoryEndpoints(t *testing.T) {
	api := newClient(t, service.Options{ReferencePolicy: service.ReferenceRestrict})
	personID, categoryID := api.seed()

	rec, env := api.do(http.MethodGet, "/api/person/search?name=Alice", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var p map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &p))
	assert.Equal(t, personID, p["id"])

	rec, _ = api.do(http.MethodGet, "/api/person/search?name=Bob", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, env = api.do(http.MethodPut, "/api/person/1", map[string]any{"age": 35})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(env.Data, &p))
	assert.Equal(t, "Alice", p["name"])
	assert.Equal(t, 35.0, p["age"])

	rec, _ = api.do(http.MethodPost, "/api/person", map[string]any{"name": "Old", "age": 151})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = api.do(http.MethodPost, "/api/transaction", map[string]any{
		"description": "Rent", "value": 10, "type": 2, "categoryId": categoryID, "personId": personID,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, env = api.do(http.MethodDelete, "/api/category/1", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "category 1 is referenced by 1 transaction(s)", env.Message)

	rec, _ = api.do(http.MethodDelete, "/api/person/77", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, env = api.do(http.MethodGet, "/api/category", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var cats []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &cats))
	assert.Len(t, cats, 1)
}

func TestEligibilityReturns422(t *testing.T) {
	api := newClient(t, service.Options{Eligibility: &service.Eligibility{AdultAge: 18}})
	_, env := api.do(http.MethodPost, "/api/person", map[string]any{"name": "Sam", "age": 16})
	var p map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &p))
	_, env = api.do(http.MethodPost, "/api/category", map[string]any{"description": "Allowance", "purpose": 3})
	var c map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &c))

	rec, _ := api.do(http.MethodPost, "/api/transaction", map[string]any{
		"description": "Gift", "value": 100, "type": 1, "categoryId": c["id"], "personId": p["id"],
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestExportEndpoints(t *testing.T) {
	api := newClient(t, service.Options{})
	personID, categoryID := api.seed()
	rec, _ := api.do(http.MethodPost, "/api/transaction", map[string]any{
		"description": "Rent", "value": 10, "type": 2, "categoryId": categoryID, "personId": personID,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, _ = api.do(http.MethodGet, "/api/transaction/export/csv", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), ".csv")
	assert.Contains(t, rec.Body.String(), "Rent,expense,10.00,Household,Alice")

	rec, _ = api.do(http.MethodGet, "/api/transaction/export/xlsx", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")))

	rec, _ = api.do(http.MethodGet, "/api/export/snapshot", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"persons"`)
}

func TestHealthAndMetrics(t *testing.T) {
	api := newClient(t, service.Options{})
	rec, _ := api.do(http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	api.do(http.MethodGet, "/api/person", nil)
	rec, _ = api.do(http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `route="/api/person"`)
}

func TestMixedCaseAPIPathsKeepCORS(t *testing.T) {
	api := newClient(t, service.Options{})
	personID, categoryID := api.seed()

	send := func(method, path string, body any) *httptest.ResponseRecorder {
		var rdr *bytes.Reader
		if body != nil {
			b, err := json.Marshal(body)
			require.NoError(t, err)
			rdr = bytes.NewReader(b)
		} else {
			rdr = bytes.NewReader(nil)
		}
		req := httptest.NewRequest(method, path, rdr)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Origin", "http://localhost:5173")
		rec := httptest.NewRecorder()
		api.engine.ServeHTTP(rec, req)
		return rec
	}

	tests := []struct {
		method string
		path   string
		body   any
		want   int
	}{
		{http.MethodPost, "/api/Transaction", map[string]any{
			"description": "Rent", "value": 10, "type": 2, "categoryId": categoryID, "personId": personID,
		}, http.StatusCreated},
		{http.MethodGet, "/api/Transaction", nil, http.StatusOK},
		{http.MethodGet, "/API/Transaction/Totals/Person/1", nil, http.StatusOK},
		{http.MethodGet, "/api/Person/search?name=Alice", nil, http.StatusOK},
		{http.MethodGet, "/api/transaction", nil, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := send(tt.method, tt.path, tt.body)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
			assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
		})
	}

	// query values keep their case
	rec := send(http.MethodGet, "/api/Person/search?name=alice", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTextFieldsTrimmedAndChecked(t *testing.T) {
	api := newClient(t, service.Options{})
	personID, categoryID := api.seed()
	rec, _ := api.do(http.MethodPost, "/api/transaction", map[string]any{
		"description": "Groceries", "value": 5, "type": 2, "categoryId": categoryID, "personId": personID,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	tests := []struct {
		name  string
		path  string
		field string
		value string
		want  int
		keep  string
	}{
		{"short transaction description", "/api/transaction/1", "description", "a", http.StatusBadRequest, "Groceries"},
		{"padded short description", "/api/transaction/1", "description", "  a  ", http.StatusBadRequest, "Groceries"},
		{"trimmed transaction description", "/api/transaction/1", "description", " Rent ", http.StatusOK, "Rent"},
		{"short person name", "/api/person/1", "name", "B", http.StatusBadRequest, "Alice"},
		{"trimmed person name", "/api/person/1", "name", "  Bob  ", http.StatusOK, "Bob"},
		{"short category description", "/api/category/1", "description", "x", http.StatusBadRequest, "Household"},
		{"trimmed category description", "/api/category/1", "description", "\tFood\n", http.StatusOK, "Food"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := api.do(http.MethodPut, tt.path, map[string]any{tt.field: tt.value})
			require.Equal(t, tt.want, rec.Code, rec.Body.String())
			if tt.want == http.StatusBadRequest {
				assert.Equal(t, "one or more validation errors occurred", env.Message)
				assert.Equal(t, []string{tt.field + " must be at least 2 characters"}, env.Errors)
			}

			_, env = api.do(http.MethodGet, tt.path, nil)
			var got map[string]any
			require.NoError(t, json.Unmarshal(env.Data, &got))
			assert.Equal(t, tt.keep, got[tt.field])
		})
	}

	rec, env := api.do(http.MethodPost, "/api/person", map[string]any{"name": " a ", "age": 20})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"name must be at least 2 characters"}, env.Errors)
}
