// Package record contains the HTTP handlers for the record store.
//
// Each exported function is a factory: it receives the store once at
// route registration and returns the http.HandlerFunc that runs on
// every request.
//
//	router.HandleFunc("GET /api/records", record.GetList(store))
//
// All handlers share one *storage.Locked, so concurrent requests never
// touch the underlying file at the same time.
package record

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aanand-mishra/record-store/internal/codec"
	"github.com/aanand-mishra/record-store/internal/storage"
	"github.com/aanand-mishra/record-store/internal/types"
	"github.com/aanand-mishra/record-store/internal/utils/response"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// ErrNoRecord is returned when an index does not name a stored record.
var ErrNoRecord = errors.New("no record at index")

// ─────────────────────────────────────────────────────────────────────────────
// GetList handles GET /api/records
// Returns the stored records as a JSON array, [] if nothing was saved yet.
// ─────────────────────────────────────────────────────────────────────────────
func GetList(store *storage.Locked) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("getting all records")

		records, err := store.LoadOrEmpty()
		if err != nil {
			slog.Error("error loading records", slog.String("error", err.Error()))
			response.WriteError(w, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, records)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Replace handles PUT /api/records
// Replaces the whole store with the JSON array in the request body.
//
// Request body:
//
//	[ { "name": "Alice", "age": 30 }, { "name": "Bob", "age": 25 } ]
//
// Success response (200 OK):
//
//	{ "count": 2 }
//
// The body is decoded with the same rules as the stored file, so an
// invalid body is rejected with 400 before anything is written.
// ─────────────────────────────────────────────────────────────────────────────
func Replace(store *storage.Locked) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("replacing all records")

		body, ok := readBody(w, r)
		if !ok {
			return
		}

		records, err := codec.Decode(body)
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		if err := store.Save(records); err != nil {
			slog.Error("error saving records", slog.String("error", err.Error()))
			response.WriteError(w, err)
			return
		}

		slog.Info("records replaced", slog.Int("count", len(records)))
		response.WriteJSON(w, http.StatusOK, map[string]int{"count": len(records)})
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// New handles POST /api/records
// Appends one record to the end of the store.
//
// Request body:
//
//	{ "name": "Dora", "age": 4 }
//
// Success response (201 Created) with the position of the new record:
//
//	{ "index": 3 }
//
// ─────────────────────────────────────────────────────────────────────────────
func New(store *storage.Locked) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("creating a record")

		body, ok := readBody(w, r)
		if !ok {
			return
		}

		rec, err := codec.DecodeOne(body)
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		var index int
		err = store.Update(func(records []types.Record) ([]types.Record, error) {
			index = len(records)
			return append(records, rec), nil
		})
		if err != nil {
			slog.Error("error creating record", slog.String("error", err.Error()))
			response.WriteError(w, err)
			return
		}

		slog.Info("record created", slog.Int("index", index))
		response.WriteJSON(w, http.StatusCreated, map[string]int{"index": index})
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetByIndex handles GET /api/records/{index}
//
// Error responses:
//
//	400 Bad Request: index is not a non-negative integer
//	404 Not Found:   no record at that index
//
// ─────────────────────────────────────────────────────────────────────────────
func GetByIndex(store *storage.Locked) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		index, ok := parseIndex(w, r)
		if !ok {
			return
		}
		slog.Info("getting a record", slog.Int("index", index))

		records, err := store.LoadOrEmpty()
		if err != nil {
			slog.Error("error loading records",
				slog.Int("index", index),
				slog.String("error", err.Error()))
			response.WriteError(w, err)
			return
		}

		if index >= len(records) {
			response.WriteJSON(w, http.StatusNotFound,
				response.GeneralError(fmt.Errorf("%w %d", ErrNoRecord, index)))
			return
		}

		response.WriteJSON(w, http.StatusOK, records[index])
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Delete handles DELETE /api/records/{index}
// Removes one record; later records move up by one position.
// ─────────────────────────────────────────────────────────────────────────────
func Delete(store *storage.Locked) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		index, ok := parseIndex(w, r)
		if !ok {
			return
		}
		slog.Info("deleting a record", slog.Int("index", index))

		err := store.Update(func(records []types.Record) ([]types.Record, error) {
			if index >= len(records) {
				return nil, fmt.Errorf("%w %d", ErrNoRecord, index)
			}
			return append(records[:index], records[index+1:]...), nil
		})
		if errors.Is(err, ErrNoRecord) {
			response.WriteJSON(w, http.StatusNotFound, response.GeneralError(err))
			return
		}
		if err != nil {
			slog.Error("error deleting record",
				slog.Int("index", index),
				slog.String("error", err.Error()))
			response.WriteError(w, err)
			return
		}

		slog.Info("record deleted", slog.Int("index", index))
		response.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}

// readBody reads the request body and writes a 400 response if it is
// empty or unreadable.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
		return nil, false
	}
	if len(bytes.TrimSpace(body)) == 0 {
		response.WriteJSON(w, http.StatusBadRequest,
			response.GeneralError(errors.New("request body is empty")))
		return nil, false
	}
	return body, true
}

func parseIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil || index < 0 {
		response.WriteJSON(w, http.StatusBadRequest,
			response.GeneralError(errors.New("invalid index: must be a non-negative integer")))
		return 0, false
	}
	return index, true
}
