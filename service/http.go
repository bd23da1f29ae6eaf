package service

import (
	"encoding/json"
	"net/http"

	"github.com/dialogs/dialog-push-fcm/pkg/api"
	"github.com/dialogs/dialog-push-fcm/pkg/converter"
	"github.com/dialogs/dialog-push-fcm/pkg/provider/fcm"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Handler routes the push API and the admin endpoints
func (s *Service) Handler() http.Handler {

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Post("/v1/push", s.handlePush)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/info", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, Info())
	})
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	return r
}

func (s *Service) handlePush(w http.ResponseWriter, r *http.Request) {

	push := &api.Push{}

	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.maxBodySize))
	decoder.UseNumber()
	if err := decoder.Decode(push); err != nil {
		writeJSON(w, http.StatusBadRequest, &api.ErrorResponse{
			Error: errors.Wrap(err, "decode push").Error(),
		})
		return
	}

	if push.CorrelationID == "" {
		push.CorrelationID = uuid.NewString()
	}

	res, err := s.impl.SinglePush(r.Context(), push, getPeerAddr(r.RemoteAddr))
	if err != nil {
		s.logger.Error("failed to send push",
			zap.String("id", push.CorrelationID),
			zap.Error(err))

		status := http.StatusInternalServerError
		if errors.Is(err, errEmptyPush) || errors.Is(err, converter.ErrEmptyBody) {
			status = http.StatusBadRequest
		}

		resErr := &api.ErrorResponse{Error: err.Error()}
		var validationErr *fcm.ValidationError
		if errors.As(err, &validationErr) {
			status = http.StatusBadRequest
			resErr.Field = validationErr.Field
		}

		writeJSON(w, status, resErr)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
