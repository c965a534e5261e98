package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adepratama/receipt-extractor/internal/common"
	"github.com/adepratama/receipt-extractor/internal/export"
	"github.com/adepratama/receipt-extractor/internal/extract"
	"github.com/adepratama/receipt-extractor/internal/repository"
)

const gomachiPayload = `{
	"tokens": [
		{
			"text": "GOMACHI RESTO",
			"bounding_box": [{"x":0,"y":10},{"x":100,"y":10},{"x":100,"y":25},{"x":0,"y":25}],
			"confidence": 0.95
		},
		{
			"text": "2 GYOZA 25.000",
			"bounding_box": [{"x":0,"y":30},{"x":100,"y":30},{"x":100,"y":45},{"x":0,"y":45}],
			"confidence": 0.95
		},
		{
			"text": "TOTAL 25.000",
			"bounding_box": [{"x":0,"y":50},{"x":100,"y":50},{"x":100,"y":65},{"x":0,"y":65}],
			"confidence": 0.95
		}
	]
}`

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	db, err := repository.Open(context.Background(), common.DatabaseConfig{SQLitePath: ":memory:"}, logger)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	receipts := repository.NewReceiptRepository(db, logger)
	require.NoError(t, receipts.Migrate(context.Background()))

	pipeline := extract.NewPipeline(logger, extract.Config{
		PriceCorrectionThreshold: extract.DefaultCorrectionThreshold,
	})
	exporter := export.NewService(receipts, logger)
	h := NewHandler(pipeline, receipts, exporter)

	srv := New(common.ServerConfig{HTTPAddr: ":0"}, h, db, logger)
	return srv.http.Handler
}

func doRequest(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRoot(t *testing.T) {
	router := newTestServer(t)

	w := doRequest(t, router, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message": "Receipt OCR API is running."}`, w.Body.String())
}

func TestHealthz(t *testing.T) {
	router := newTestServer(t)

	w := doRequest(t, router, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ok"`)
}

func TestExtract_Success(t *testing.T) {
	router := newTestServer(t)

	w := doRequest(t, router, http.MethodPost, "/v1/receipts/extract", gomachiPayload)
	require.Equal(t, http.StatusOK, w.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, true, got["success"])
	assert.Equal(t, "Gomachi", got["merchant_name"])
	assert.Equal(t, "GOMACHI", got["receipt_type"])
	assert.Equal(t, 25000.0, got["total"])
}

func TestExtract_EmptyTokensReturnsFailureWith200(t *testing.T) {
	router := newTestServer(t)

	w := doRequest(t, router, http.MethodPost, "/v1/receipts/extract", `{"tokens": []}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success": false, "error": "No text detected in the image"}`, w.Body.String())
}

func TestExtract_MalformedPayload(t *testing.T) {
	router := newTestServer(t)

	w := doRequest(t, router, http.MethodPost, "/v1/receipts/extract", `{"nope": true}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExtract_PersistAndFetch(t *testing.T) {
	router := newTestServer(t)

	w := doRequest(t, router, http.MethodPost, "/v1/receipts/extract?persist=true", gomachiPayload)
	require.Equal(t, http.StatusOK, w.Code)

	location := w.Header().Get("Location")
	require.NotEmpty(t, location)

	w = doRequest(t, router, http.MethodGet, location, "")
	require.Equal(t, http.StatusOK, w.Code)

	var got struct {
		ID     string         `json:"id"`
		Result extract.Result `json:"result"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, "Gomachi", got.Result.MerchantName)
	require.Len(t, got.Result.Items, 1)
	assert.Equal(t, "GYOZA", got.Result.Items[0].Name)

	w = doRequest(t, router, http.MethodGet, location+"/summary", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "=== RECEIPT SUMMARY ===")
	assert.Contains(t, w.Body.String(), "Merchant: Gomachi")
}

func TestListReceipts(t *testing.T) {
	router := newTestServer(t)

	doRequest(t, router, http.MethodPost, "/v1/receipts/extract?persist=true", gomachiPayload)

	w := doRequest(t, router, http.MethodGet, "/v1/receipts", "")
	require.Equal(t, http.StatusOK, w.Code)

	var got struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, 1, got.Count)
}

func TestListReceipts_BadDateParam(t *testing.T) {
	router := newTestServer(t)

	w := doRequest(t, router, http.MethodGet, "/v1/receipts?from=08-2023", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetReceipt_Errors(t *testing.T) {
	router := newTestServer(t)

	w := doRequest(t, router, http.MethodGet, "/v1/receipts/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, router, http.MethodGet, "/v1/receipts/7b5a1f9e-0f6e-4c7a-9a51-2d3a2df6a111", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExportReceipts(t *testing.T) {
	router := newTestServer(t)

	doRequest(t, router, http.MethodPost, "/v1/receipts/extract?persist=true", gomachiPayload)

	w := doRequest(t, router, http.MethodGet, "/v1/receipts/export", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
	assert.NotEmpty(t, w.Body.Bytes())
}
