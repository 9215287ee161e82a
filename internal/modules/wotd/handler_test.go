package wotd

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRouter(store Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	svc := NewService(store, nil, zap.NewNop())
	NewHandler(svc).RegisterRoutes(r.Group("/api"))
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	return w, payload
}

func TestAddThenDuplicate(t *testing.T) {
	r := newTestRouter(newMemStore())

	w, payload := doJSON(t, r, http.MethodPost, "/api/wotd/add",
		`{"word":"ephemeral","def":"lasting a very short time","date":"2024-01-01"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "WOTD saved successfully!", payload["msg"])

	record, ok := payload["Wotd"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "ephemeral", record["word"])
	assert.Equal(t, "lasting a very short time", record["def"])
	assert.NotNil(t, record["_id"])

	w, payload = doJSON(t, r, http.MethodPost, "/api/wotd/add",
		`{"word":"usurper","date":"2024-01-01"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "WOTD for this date already in DB, skipping.", payload["msg"])
}

func TestAddRejectsMissingWord(t *testing.T) {
	r := newTestRouter(newMemStore())

	w, _ := doJSON(t, r, http.MethodPost, "/api/wotd/add", `{"def":"no word"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = doJSON(t, r, http.MethodPost, "/api/wotd/add", `{"word":"x","date":"not a date"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLatestEmptyDatabaseShape(t *testing.T) {
	r := newTestRouter(newMemStore())

	w, payload := doJSON(t, r, http.MethodGet, "/api/wotd/latest", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "WOTD retrieved successfully!", payload["msg"])

	record, ok := payload["Wotd"].(map[string]interface{})
	require.True(t, ok)
	assert.Nil(t, record["_id"], `empty state serializes as "_id": null`)
	assert.Equal(t, "", record["word"])
	assert.Equal(t, "", record["def"])
}

func TestLatestStorageOutageStillOK(t *testing.T) {
	store := newMemStore()
	store.fail = true
	r := newTestRouter(store)

	w, payload := doJSON(t, r, http.MethodGet, "/api/wotd/latest", "")
	require.Equal(t, http.StatusOK, w.Code, "reads degrade, never error")
	assert.Equal(t, "WOTD unavailable", payload["msg"])

	record, ok := payload["Wotd"].(map[string]interface{})
	require.True(t, ok)
	assert.Nil(t, record["_id"])
}

func TestLatestReturnsNewestRecord(t *testing.T) {
	r := newTestRouter(newMemStore())

	for _, day := range []string{"2024-02-01", "2024-02-03", "2024-02-02"} {
		w, _ := doJSON(t, r, http.MethodPost, "/api/wotd/add",
			`{"word":"w-`+day+`","date":"`+day+`"}`)
		require.Equal(t, http.StatusOK, w.Code)
	}

	_, payload := doJSON(t, r, http.MethodGet, "/api/wotd/latest", "")
	record := payload["Wotd"].(map[string]interface{})
	assert.Equal(t, "w-2024-02-03", record["word"])
}

func TestArchiveShapes(t *testing.T) {
	store := newMemStore()
	r := newTestRouter(store)

	// empty database: 200 with an empty list, not null
	w, payload := doJSON(t, r, http.MethodGet, "/api/wotd/archive", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Archive retrieved successfully!", payload["msg"])
	list, ok := payload["Archive"].([]interface{})
	require.True(t, ok)
	assert.Empty(t, list)

	doJSON(t, r, http.MethodPost, "/api/wotd/add", `{"word":"one","date":"2024-04-01"}`)
	doJSON(t, r, http.MethodPost, "/api/wotd/add", `{"word":"two","date":"2024-04-02"}`)

	_, payload = doJSON(t, r, http.MethodGet, "/api/wotd/archive", "")
	list = payload["Archive"].([]interface{})
	require.Len(t, list, 2)
	first := list[0].(map[string]interface{})
	assert.Equal(t, "two", first["word"], "archive descends by day")

	// storage outage: still 200, empty list
	store.fail = true
	w, payload = doJSON(t, r, http.MethodGet, "/api/wotd/archive", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Archive unavailable", payload["msg"])
	list, ok = payload["Archive"].([]interface{})
	require.True(t, ok)
	assert.Empty(t, list)
}
