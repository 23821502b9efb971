package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"fjacquet/asset-tracker/internal/config"
	"fjacquet/asset-tracker/internal/container"
	"fjacquet/asset-tracker/internal/ids"
	"fjacquet/asset-tracker/internal/logging"
	"fjacquet/asset-tracker/internal/models"
	"fjacquet/asset-tracker/internal/report"
	"fjacquet/asset-tracker/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func household() *models.Dataset {
	return &models.Dataset{
		Owners: []models.Owner{{ID: "o1", Name: "John"}},
		Categories: []models.Category{
			{ID: "c-cash", Name: models.CategoryCash, Type: models.Asset},
			{ID: "c-debt", Name: models.CategoryLiability, Type: models.Liability},
		},
		Accounts: []models.Account{
			{ID: "a-chase", Name: "Chase Checking", Currency: models.USD, CategoryID: "c-cash", OwnerID: "o1"},
			{ID: "a-car", Name: "Car Loan", Currency: models.USD, CategoryID: "c-debt", OwnerID: "o1"},
		},
		Records: []models.Record{
			{ID: "r1", Date: models.MustParseDate("2024-01-15"), AccountID: "a-chase", Amount: decimal.NewFromInt(8000), Timestamp: 1},
			{ID: "r2", Date: models.MustParseDate("2024-01-15"), AccountID: "a-car", Amount: decimal.NewFromInt(18000), Timestamp: 2},
			{ID: "r3", Date: models.MustParseDate("2024-03-15"), AccountID: "a-chase", Amount: decimal.NewFromInt(8400), Timestamp: 3},
		},
	}
}

func newTestServer(t *testing.T) (*gin.Engine, *store.MemoryStore) {
	t.Helper()
	mem := store.NewMemoryStore(household())
	c, err := container.NewContainerWithOptions(config.Defaults(), container.Options{
		Logger: logging.NewMockLogger(),
		Store:  mem,
		IDs:    ids.Sequence("new"),
		Now:    func() time.Time { return fixedNow },
	})
	require.NoError(t, err)
	return NewServer(c).Router(), mem
}

func do(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	r, _ := newTestServer(t)
	w := do(r, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestSummary(t *testing.T) {
	r, _ := newTestServer(t)

	w := do(r, http.MethodGet, "/api/summary", "")
	require.Equal(t, http.StatusOK, w.Code)
	var v report.SummaryView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	assert.True(t, v.NetWorth.Equal(decimal.NewFromInt(-9600)))
	assert.Equal(t, models.USD, v.Currency)
	require.Len(t, v.Breakdown, 2)
	assert.Equal(t, models.CategoryLiability, v.Breakdown[0].Label)

	w = do(r, http.MethodGet, "/api/summary?month=2024-02&groupBy=account", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	assert.Equal(t, "2024-02", v.Month)
	assert.True(t, v.NetWorth.Equal(decimal.NewFromInt(-10000)))
	assert.Equal(t, "Car Loan", v.Breakdown[0].Label)

	w = do(r, http.MethodGet, "/api/summary?currency=EUR", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	assert.Equal(t, models.EUR, v.Currency)
}

func TestSummary_BadQuery(t *testing.T) {
	r, _ := newTestServer(t)
	for _, q := range []string{"currency=XYZ", "groupBy=color", "month=March"} {
		w := do(r, http.MethodGet, "/api/summary?"+q, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
		assert.Contains(t, w.Body.String(), "error")
	}
}

func TestHistory(t *testing.T) {
	r, _ := newTestServer(t)

	w := do(r, http.MethodGet, "/api/history?range=all", "")
	require.Equal(t, http.StatusOK, w.Code)
	var v report.HistoryView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	require.Len(t, v.Months, 2)
	assert.Equal(t, "all", v.Range)

	w = do(r, http.MethodGet, "/api/history?range=all&fillGaps=true", "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	require.Len(t, v.Months, 3)
	assert.Equal(t, "2024-02", v.Months[1].Month.String())
	assert.True(t, v.Months[1].NetWorth.Equal(decimal.NewFromInt(-10000)))

	w = do(r, http.MethodGet, "/api/history?range=1999", "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	assert.Empty(t, v.Months)
	assert.Equal(t, []string{"2024"}, v.AvailableYears)

	w = do(r, http.MethodGet, "/api/history?range=forever", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecords_Lifecycle(t *testing.T) {
	r, mem := newTestServer(t)

	w := do(r, http.MethodPost, "/api/records", `{"date":"2024-04-15","accountId":"a-chase","amount":"9000","note":"  april "}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created models.Record
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "new-1", created.ID)
	assert.Equal(t, "april", created.Note)
	assert.Equal(t, fixedNow.UnixMilli(), created.Timestamp)
	assert.Equal(t, 1, mem.Saves)

	w = do(r, http.MethodGet, "/api/records", "")
	require.Equal(t, http.StatusOK, w.Code)
	var listed []models.Record
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed, 4)
	assert.Equal(t, "new-1", listed[0].ID)

	w = do(r, http.MethodPut, "/api/records/new-1", `{"date":"2024-04-15","accountId":"a-chase","amount":9100,"keepTimestamp":true}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(r, http.MethodDelete, "/api/records/new-1", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(r, http.MethodDelete, "/api/records/new-1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	ds, err := mem.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, ds.Records, 3)
}

func TestRecords_Filter(t *testing.T) {
	r, _ := newTestServer(t)
	w := do(r, http.MethodGet, "/api/records?categoryId=c-debt", "")
	var listed []models.Record
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, "r2", listed[0].ID)
}

func TestCreateRecord_Rejected(t *testing.T) {
	r, mem := newTestServer(t)

	tests := []struct {
		name string
		body string
		code int
	}{
		{"malformed", `{"date":`, http.StatusBadRequest},
		{"negative amount", `{"date":"2024-04-15","accountId":"a-chase","amount":-1}`, http.StatusBadRequest},
		{"unknown account", `{"date":"2024-04-15","accountId":"nope","amount":1}`, http.StatusBadRequest},
		{"missing date", `{"accountId":"a-chase","amount":1}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, http.MethodPost, "/api/records", tt.body)
			assert.Equal(t, tt.code, w.Code)
		})
	}
	assert.Zero(t, mem.Saves)
}

func TestStoreFailure(t *testing.T) {
	r, mem := newTestServer(t)
	mem.SaveError = errors.New("disk full")

	w := do(r, http.MethodPost, "/api/records", `{"date":"2024-04-15","accountId":"a-chase","amount":1}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	mem.LoadError = errors.New("unreadable")
	w = do(r, http.MethodGet, "/api/summary", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestEntityListings(t *testing.T) {
	r, _ := newTestServer(t)

	var accounts []models.Account
	w := do(r, http.MethodGet, "/api/accounts", "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &accounts))
	assert.Len(t, accounts, 2)

	var categories []models.Category
	w = do(r, http.MethodGet, "/api/categories", "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &categories))
	assert.Len(t, categories, 2)

	var owners []models.Owner
	w = do(r, http.MethodGet, "/api/owners", "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &owners))
	assert.Equal(t, []models.Owner{{ID: "o1", Name: "John"}}, owners)
}

func TestExport(t *testing.T) {
	r, _ := newTestServer(t)

	w := do(r, http.MethodGet, "/api/export?format=csv", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "family_asset_tracker_2024-06-01.csv")
	assert.True(t, strings.HasPrefix(w.Body.String(), "Date,Account Name,Owner,Category,Amount,Currency,Note,ID"))

	w = do(r, http.MethodGet, "/api/export", "")
	require.Equal(t, http.StatusOK, w.Code)
	var backup models.Backup
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &backup))
	assert.Equal(t, models.BackupVersion, backup.Metadata.Version)
	assert.Len(t, backup.Records, 3)

	w = do(r, http.MethodGet, "/api/export?format=xml", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCORS(t *testing.T) {
	r, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/summary", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
}
