package record

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/record-store/internal/storage"
	"github.com/aanand-mishra/record-store/internal/storage/jsonfile"
	"github.com/aanand-mishra/record-store/internal/types"
	"github.com/aanand-mishra/record-store/internal/utils/response"
)

func newRouter(t *testing.T) (*http.ServeMux, *storage.Locked) {
	t.Helper()
	store := storage.NewLocked(jsonfile.New(filepath.Join(t.TempDir(), "people.json")))
	router := http.NewServeMux()
	router.HandleFunc("GET /api/records", GetList(store))
	router.HandleFunc("PUT /api/records", Replace(store))
	router.HandleFunc("POST /api/records", New(store))
	router.HandleFunc("GET /api/records/{index}", GetByIndex(store))
	router.HandleFunc("DELETE /api/records/{index}", Delete(store))
	return router, store
}

func do(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeRecords(t *testing.T, rec *httptest.ResponseRecorder) []types.Record {
	t.Helper()
	var got []types.Record
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	return got
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var got response.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	return got
}

func TestListEmptyStore(t *testing.T) {
	router, _ := newRouter(t)
	rec := do(router, http.MethodGet, "/api/records", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []types.Record{}, decodeRecords(t, rec))
}

func TestReplaceAndList(t *testing.T) {
	router, store := newRouter(t)
	body := `[{"name": "Alice", "age": 30}, {"name": "Bob", "age": 25}, {"name": "Charles", "age": 35}]`

	rec := do(router, http.MethodPut, "/api/records", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"count": 3}`, rec.Body.String())

	rec = do(router, http.MethodGet, "/api/records", "")
	require.Equal(t, http.StatusOK, rec.Code)
	want := []types.Record{{Name: "Alice", Age: 30}, {Name: "Bob", Age: 25}, {Name: "Charles", Age: 35}}
	assert.Equal(t, want, decodeRecords(t, rec))

	onDisk, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, want, onDisk)
}

func TestReplaceRejectsBadBody(t *testing.T) {
	router, store := newRouter(t)
	require.NoError(t, store.Save([]types.Record{{Name: "Keep", Age: 1}}))

	for _, body := range []string{
		``,
		`not json`,
		`[{"name": "Alice"}]`,
		`[{"name": "Alice", "age": -1}]`,
	} {
		rec := do(router, http.MethodPut, "/api/records", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Equal(t, response.StatusError, errorBody(t, rec).Status)
	}

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, []types.Record{{Name: "Keep", Age: 1}}, got)
}

func TestCreateGetDelete(t *testing.T) {
	router, _ := newRouter(t)

	rec := do(router, http.MethodPost, "/api/records", `{"name": "Alice", "age": 30}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"index": 0}`, rec.Body.String())

	rec = do(router, http.MethodPost, "/api/records", `{"name": "Bob", "age": 25}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"index": 1}`, rec.Body.String())

	rec = do(router, http.MethodGet, "/api/records/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"name": "Bob", "age": 25}`, rec.Body.String())

	rec = do(router, http.MethodDelete, "/api/records/0", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(router, http.MethodGet, "/api/records", "")
	assert.Equal(t, []types.Record{{Name: "Bob", Age: 25}}, decodeRecords(t, rec))
}

func TestCreateRejectsBadRecord(t *testing.T) {
	router, _ := newRouter(t)
	for _, body := range []string{``, `{"age": 3}`, `{"name": "x", "age": "3"}`, `{"name": "x"`} {
		rec := do(router, http.MethodPost, "/api/records", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
}

func TestIndexErrors(t *testing.T) {
	router, _ := newRouter(t)

	rec := do(router, http.MethodGet, "/api/records/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(router, http.MethodGet, "/api/records/-1", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(router, http.MethodGet, "/api/records/0", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "no record at index 0", errorBody(t, rec).Error)

	rec = do(router, http.MethodDelete, "/api/records/4", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCorruptStoreIsServerError(t *testing.T) {
	router, store := newRouter(t)
	require.NoError(t, os.WriteFile(store.Path(), []byte(`[{"name": 1}]`), 0o644))

	rec := do(router, http.MethodGet, "/api/records", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = do(router, http.MethodPost, "/api/records", `{"name": "Alice", "age": 30}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
