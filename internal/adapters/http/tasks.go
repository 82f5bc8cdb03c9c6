package httpadapter

import (
	"encoding/json"
	"net/http"
	"time"

	"notes-assistant/internal/core/domain"
)

func (rt *Router) createTask(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID int64      `json:"user_id"`
		Title  string     `json:"title"`
		DueAt  *time.Time `json:"due_at"`
		NoteID *int64     `json:"note_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	task, err := rt.tasks.Create(r.Context(), &domain.Task{
		UserID: req.UserID,
		Title:  req.Title,
		DueAt:  req.DueAt,
		NoteID: req.NoteID,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

func (rt *Router) listTasks(w http.ResponseWriter, r *http.Request) {
	userID, ok := queryUserID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "query parameter 'user_id' is required"})
		return
	}

	tasks, err := rt.tasks.List(r.Context(), userID, r.URL.Query().Get("status"))
	if err != nil {
		writeError(w, err)
		return
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"tasks": tasks})
}

func (rt *Router) completeTask(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "task id must be a positive integer"})
		return
	}

	task, err := rt.tasks.Complete(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}
