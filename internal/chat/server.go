// Package chat serves the functions and the chat assistant over HTTP.
package chat

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/Neruzzz/utility-helper/internal/arith"
	"github.com/Neruzzz/utility-helper/internal/calendar"
	"github.com/Neruzzz/utility-helper/internal/chat/model"
	"github.com/Neruzzz/utility-helper/internal/directory"
	"github.com/Neruzzz/utility-helper/internal/functions"
	"github.com/Neruzzz/utility-helper/internal/httpx"
	"github.com/Neruzzz/utility-helper/internal/tools"
)

const (
	maxBodyBytes      = 64 << 10
	defaultEventLen   = 30 * time.Minute
	calendarMediaType = "text/calendar"
)

type Assistant interface {
	Reply(ctx context.Context, conv *model.Conversation) (string, error)
}

type Server struct {
	tools  *tools.Registry
	assist Assistant
}

func NewServer(reg *tools.Registry, assist Assistant) *Server {
	return &Server{tools: reg, assist: assist}
}

// Routes mounts the API on r.
func (s *Server) Routes(r *mux.Router) {
	r.HandleFunc("/functions", s.ListFunctions).Methods(http.MethodGet)
	r.HandleFunc("/functions/{name}", s.CallFunction).Methods(http.MethodPost)
	r.HandleFunc("/chat", s.Chat).Methods(http.MethodPost)
}

type functionDef struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

func (s *Server) ListFunctions(w http.ResponseWriter, _ *http.Request) {
	defs := make([]functionDef, 0, len(s.tools.AllTools()))
	for _, t := range s.tools.AllTools() {
		defs = append(defs, functionDef{Name: t.Name(), Description: t.Description(), Parameters: t.ParametersSchema()})
	}
	writeJSON(w, http.StatusOK, map[string]any{"functions": defs})
}

type callRequest struct {
	Inputs map[string]any `json:"inputs"`
}

type callResponse struct {
	Outputs json.RawMessage `json:"outputs"`
}

// CallFunction runs one function. Clients accepting text/calendar get date
// outputs back as an iCalendar event.
func (s *Server) CallFunction(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	var req callRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Inputs == nil {
		req.Inputs = map[string]any{}
	}

	out, err := s.tools.Invoke(r.Context(), name, req.Inputs)
	if err != nil {
		writeError(w, r, statusFor(err), err.Error())
		return
	}

	if strings.Contains(r.Header.Get("Accept"), calendarMediaType) {
		var d functions.DateOutput
		if err := json.Unmarshal([]byte(out), &d); err == nil && d.DateValue != "" {
			writeCalendar(w, r, d)
			return
		}
	}
	writeJSON(w, http.StatusOK, callResponse{Outputs: json.RawMessage(out)})
}

func writeCalendar(w http.ResponseWriter, r *http.Request, d functions.DateOutput) {
	summary := r.URL.Query().Get("summary")
	if summary == "" {
		summary = "Reminder"
	}
	length := defaultEventLen
	if m, err := strconv.Atoi(r.URL.Query().Get("minutes")); err == nil && m > 0 {
		length = time.Duration(m) * time.Minute
	}

	w.Header().Set("Content-Type", calendarMediaType+"; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(tools.CalendarEvent(summary, time.Unix(d.TimestampValue, 0), length)))
}

type chatRequest struct {
	User     string           `json:"user"`
	Messages []*model.Message `json:"messages"`
}

func (s *Server) Chat(w http.ResponseWriter, r *http.Request) {
	if s.assist == nil {
		writeError(w, r, http.StatusServiceUnavailable, "assistant is not configured")
		return
	}

	var req chatRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if len(req.Messages) == 0 {
		writeError(w, r, http.StatusBadRequest, "messages must not be empty")
		return
	}

	conv := &model.Conversation{ID: httpx.RequestID(r.Context()), UserID: req.User, Messages: req.Messages}
	reply, err := s.assist.Reply(r.Context(), conv)
	if err != nil {
		writeError(w, r, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"reply": reply})
}

var badInput = []error{
	tools.ErrInvalidArguments,
	calendar.ErrInvalidDate,
	calendar.ErrInvalidClock,
	calendar.ErrInvalidWeekday,
	calendar.ErrUnknownUnit,
	calendar.ErrNegativeSkip,
	calendar.ErrCountOutOfRange,
	arith.ErrUnknownOperator,
	arith.ErrNonFinite,
	arith.ErrEmptyExpression,
	arith.ErrInvalidExpression,
	arith.ErrNotNumeric,
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, tools.ErrUnknownTool), errors.Is(err, directory.ErrUserNotFound):
		return http.StatusNotFound
	}
	for _, target := range badInput {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	if status >= http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "Request failed", "request_id", httpx.RequestID(r.Context()), "status", status, "err", msg)
	}
	writeJSON(w, status, map[string]string{"error": msg})
}
