package apiserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/driftdns/resolver-dns/pkg/backend"
	"github.com/driftdns/resolver-dns/pkg/db"
	"github.com/driftdns/resolver-dns/pkg/model"
	"github.com/driftdns/resolver-dns/pkg/validate"
	"github.com/sirupsen/logrus"
)

func writeJSON(w http.ResponseWriter, httpStatus int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(httpStatus)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logrus.Errorf("failed to encode response body: %v", err)
	}
}

func writeError(w http.ResponseWriter, httpStatus int, msg string, details []string) {
	writeJSON(w, httpStatus, model.ErrorResponse{
		Error:  msg,
		Errors: details,
	})
}

// handleError maps the service error taxonomy onto HTTP statuses. Anything
// unrecognized is logged in full and reported with a generic message.
func handleError(w http.ResponseWriter, err error) {
	var verr *validate.Error
	if errors.As(err, &verr) {
		writeError(w, http.StatusUnprocessableEntity, "validation failed", verr.Messages)
		return
	}

	if errors.Is(err, db.ErrNotFound) {
		writeError(w, http.StatusNotFound, err.Error(), nil)
		return
	}

	if errors.Is(err, db.ErrConflict) {
		writeError(w, http.StatusConflict, err.Error(), nil)
		return
	}

	var serr *backend.SyncError
	if errors.As(err, &serr) {
		// The local mutation committed; the message has to say so.
		writeError(w, http.StatusBadGateway, serr.Error(), nil)
		return
	}

	logrus.Errorf("unexpected error handling request: %v", err)
	writeError(w, http.StatusInternalServerError, "internal server error", nil)
}
