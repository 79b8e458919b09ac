package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/hanwen-zhu/billsnap/internal/common"
	"github.com/hanwen-zhu/billsnap/internal/entity"
	"github.com/hanwen-zhu/billsnap/internal/export"
	"github.com/hanwen-zhu/billsnap/internal/upload"
)

type parseRequest struct {
	Text string `json:"text"`
}

type createRecordRequest struct {
	Text        string `json:"text"`
	CaptureTime *int64 `json:"capture_time,omitempty"`
	AccountID   string `json:"account_id,omitempty"`
}

type errorResponse struct {
	Error  string `json:"error"`
	Reason string `json:"reason,omitempty"`
}

// Router builds the HTTP API over the service.
func Router(svc *Service, exporter *export.Service) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/v1/parse", func(w http.ResponseWriter, req *http.Request) {
		var in parseRequest
		if !readJSON(w, req, &in) {
			return
		}
		writeJSON(w, http.StatusOK, svc.Parse(in.Text))
	})

	r.Post("/v1/records", func(w http.ResponseWriter, req *http.Request) {
		var in createRecordRequest
		if !readJSON(w, req, &in) {
			return
		}
		if in.Text == "" {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "text is required"})
			return
		}
		rec, err := svc.CreateRecord(req.Context(), in.Text, in.CaptureTime, in.AccountID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, rec)
	})

	r.Get("/v1/records", func(w http.ResponseWriter, req *http.Request) {
		from, to, ok := dateWindow(w, req)
		if !ok {
			return
		}
		recs, err := svc.ListRecords(req.Context(), from, to)
		if err != nil {
			writeError(w, err)
			return
		}
		if recs == nil {
			recs = []*entity.Record{}
		}
		writeJSON(w, http.StatusOK, recs)
	})

	r.Post("/v1/records/{id}/upload", func(w http.ResponseWriter, req *http.Request) {
		id, err := uuid.Parse(chi.URLParam(req, "id"))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid record id"})
			return
		}
		if err := svc.UploadRecord(req.Context(), id); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "uploaded"})
	})

	r.Put("/v1/metadata", func(w http.ResponseWriter, req *http.Request) {
		var snap entity.Snapshot
		if !readJSON(w, req, &snap) {
			return
		}
		if err := svc.ReplaceMetadata(req.Context(), snap); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/v1/export.xlsx", func(w http.ResponseWriter, req *http.Request) {
		from, to, ok := dateWindow(w, req)
		if !ok {
			return
		}
		bs, err := exporter.ExportRecordsXLSX(req.Context(), from, to)
		if err != nil {
			writeError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="records.xlsx"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(bs)
	})

	return r
}

func dateWindow(w http.ResponseWriter, req *http.Request) (*time.Time, *time.Time, bool) {
	parse := func(key string) (*time.Time, bool) {
		v := req.URL.Query().Get(key)
		if v == "" {
			return nil, true
		}
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: key + " must be YYYY-MM-DD"})
			return nil, false
		}
		return &t, true
	}
	from, ok := parse("from")
	if !ok {
		return nil, nil, false
	}
	to, ok := parse("to")
	if !ok {
		return nil, nil, false
	}
	return from, to, true
}

func readJSON(w http.ResponseWriter, req *http.Request, dst any) bool {
	if err := json.NewDecoder(req.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	if reason, ok := upload.ReasonOf(err); ok {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:  "record cannot be uploaded",
			Reason: string(reason),
		})
		return
	}
	if errors.Is(err, common.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
		return
	}
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
}
