package http

import (
	"errors"
	"net/http"

	"budgetu/internal/core"
	"budgetu/internal/log"
)

func handleHealth(w http.ResponseWriter, r *http.Request) {
	NewJSONResponse(map[string]string{"status": "ok"}).Write(w)
}

func handleNotFound(w http.ResponseWriter, r *http.Request) {
	NotFoundError(r.Method, r.URL.Path).Write(w)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	userID := query.Get("userId")
	if userID == "" {
		ValidationError(msgUserIDRequired).Write(w)
		return
	}
	month, err := core.ParseMonth(query.Get("month"))
	if err != nil {
		ValidationError(msgMonthRequired).Write(w)
		return
	}

	payload, err := s.finance.Dashboard(r.Context(), userID, month)
	if err != nil {
		s.internalError(w, r, err, log.OpDashboard, userID, month.String())
		return
	}
	NewJSONResponse(payload).Write(w)
}

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	var req monthRequest
	if err := decodeJSONBody(r, &req); err != nil {
		bodyError(w, err)
		return
	}
	if req.UserID == "" {
		ValidationError(msgUserIDRequired).Write(w)
		return
	}
	month, err := core.ParseMonth(req.Month)
	if err != nil {
		ValidationError(msgMonthRequired).Write(w)
		return
	}

	report, err := s.finance.Insights(r.Context(), req.UserID, month)
	if err != nil {
		s.internalError(w, r, err, log.OpInsights, req.UserID, month.String())
		return
	}
	NewJSONResponse(report).Write(w)
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decodeJSONBody(r, &req); err != nil {
		bodyError(w, err)
		return
	}
	if req.UserID == "" {
		ValidationError(msgUserIDRequired).Write(w)
		return
	}
	if req.Message == "" {
		ValidationError(msgMessageRequired).Write(w)
		return
	}

	NewJSONResponse(s.finance.Chat(r.Context(), req.UserID, req.Message)).Write(w)
}

func bodyError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		ValidationError("request body must not exceed 1 MiB").Write(w)
		return
	}
	var typeErr *fieldTypeError
	if errors.As(err, &typeErr) {
		ValidationError(typeErr.Error()).Write(w)
		return
	}
	ValidationError(msgInvalidJSON).Write(w)
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error, op, userID, month string) {
	ctx := r.Context()
	log.NewStructuredLogger(log.FromContext(ctx)).LogError(ctx, "Finance operation failed", err, op,
		log.NewFields().WithUserMonth(userID, month))
	InternalServerError(err.Error()).Write(w)
}
