package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Overland-East-Bay/tapedeck/internal/domain"
	"github.com/Overland-East-Bay/tapedeck/internal/ports/out/cassettestore"
)

type handlers struct {
	store cassettestore.Store
}

type cassetteListResponse struct {
	Cassettes []string `json:"cassettes"`
}

type cassetteResponse struct {
	Name   string          `json:"name"`
	Tracks domain.Cassette `json:"tracks"`
}

func (h *handlers) listCassettes(w http.ResponseWriter, r *http.Request) {
	names, err := h.store.List(r.Context())
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "STORE_ERROR", err.Error())
		return
	}
	out := cassetteListResponse{Cassettes: make([]string, 0, len(names))}
	for _, name := range names {
		out.Cassettes = append(out.Cassettes, string(name))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *handlers) getCassette(w http.ResponseWriter, r *http.Request) {
	name := domain.CassetteName(chi.URLParam(r, "name"))
	cassette, err := h.store.Load(r.Context(), name)
	if err != nil {
		if errors.Is(err, cassettestore.ErrNotFound) {
			writeError(w, r, http.StatusNotFound, "CASSETTE_NOT_FOUND", "no cassette exists under that name")
			return
		}
		ce := (*cassettestore.CorruptError)(nil)
		if errors.As(err, &ce) {
			writeError(w, r, http.StatusUnprocessableEntity, "CASSETTE_CORRUPT", ce.Error())
			return
		}
		writeError(w, r, http.StatusInternalServerError, "STORE_ERROR", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, cassetteResponse{Name: string(name), Tracks: cassette})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code string, message string) {
	var er struct {
		Error struct {
			Code      string `json:"code"`
			Message   string `json:"message"`
			RequestID string `json:"requestId,omitempty"`
		} `json:"error"`
	}
	er.Error.Code = code
	er.Error.Message = message
	er.Error.RequestID = middleware.GetReqID(r.Context())
	writeJSON(w, status, er)
}
