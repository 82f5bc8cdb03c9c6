package httpadapter

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"notes-assistant/internal/core/ports"
	"notes-assistant/internal/observability/metrics"
)

const serviceName = "api"

// TrafficOptions gate the whole surface; zero values disable a gate.
type TrafficOptions struct {
	RateLimitRPS   int
	RateLimitBurst int
	MaxInFlight    int
}

type Router struct {
	uploads        ports.AttachmentIngestor
	notes          ports.NoteService
	chat           ports.ChatService
	tasks          ports.TaskService
	transcriber    ports.Transcriber
	serverMetrics  *metrics.HTTPServerMetrics
	maxUploadFiles int
	traffic        TrafficOptions
}

func NewRouter(
	uploads ports.AttachmentIngestor,
	notes ports.NoteService,
	chat ports.ChatService,
	tasks ports.TaskService,
	transcriber ports.Transcriber,
	serverMetrics *metrics.HTTPServerMetrics,
	maxUploadFiles int,
	traffic TrafficOptions,
) *Router {
	if maxUploadFiles <= 0 {
		maxUploadFiles = 10
	}
	return &Router{
		uploads:        uploads,
		notes:          notes,
		chat:           chat,
		tasks:          tasks,
		transcriber:    transcriber,
		serverMetrics:  serverMetrics,
		maxUploadFiles: maxUploadFiles,
		traffic:        traffic,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", rt.root)
	mux.HandleFunc("GET /health", rt.health)
	mux.HandleFunc("POST /attachments", rt.uploadAttachments)
	mux.HandleFunc("GET /notes/search", rt.searchNotes)
	mux.HandleFunc("GET /notes/{id}", rt.getNote)
	mux.HandleFunc("GET /notes/{id}/download", rt.downloadNote)
	mux.HandleFunc("DELETE /notes", rt.clearNotes)
	mux.HandleFunc("POST /chat", rt.chatAnswer)
	mux.HandleFunc("POST /transcribe", rt.transcribe)
	mux.HandleFunc("POST /tasks", rt.createTask)
	mux.HandleFunc("GET /tasks", rt.listTasks)
	mux.HandleFunc("POST /tasks/{id}/complete", rt.completeTask)
	mux.Handle("GET /metrics", rt.serverMetrics.Handler())

	handler := http.Handler(mux)
	if rt.traffic.MaxInFlight > 0 {
		handler = backpressureMiddleware(handler, rt.traffic.MaxInFlight, 100*time.Millisecond)
	}
	if rt.traffic.RateLimitRPS > 0 {
		handler = rateLimitMiddleware(handler, rt.traffic.RateLimitRPS, rt.traffic.RateLimitBurst)
	}
	handler = rt.serverMetrics.Middleware(serviceName, handler)
	handler = accessLogMiddleware(handler)
	return requestIDMiddleware(handler)
}

func (rt *Router) root(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": serviceName})
}

func (rt *Router) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
}

func queryUserID(r *http.Request) (int64, bool) {
	userID, err := strconv.ParseInt(r.URL.Query().Get("user_id"), 10, 64)
	return userID, err == nil && userID > 0
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	return id, err == nil && id > 0
}
