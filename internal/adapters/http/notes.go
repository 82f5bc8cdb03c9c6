package httpadapter

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"notes-assistant/internal/core/domain"
)

const maxUploadMemory = 32 << 20

func (rt *Router) uploadAttachments(w http.ResponseWriter, r *http.Request) {
	userID, ok := queryUserID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "query parameter 'user_id' is required"})
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid multipart body"})
		return
	}
	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "multipart field 'files' is required"})
		return
	}
	if len(files) > rt.maxUploadFiles {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": fmt.Sprintf("too many files: %d (limit %d)", len(files), rt.maxUploadFiles),
		})
		return
	}

	uploaded := make([]domain.UploadResult, 0, len(files))
	for _, fileHeader := range files {
		uploaded = append(uploaded, rt.uploadOne(r, userID, fileHeader))
	}
	writeJSON(w, http.StatusOK, map[string]any{"uploaded": uploaded})
}

func (rt *Router) uploadOne(r *http.Request, userID int64, fileHeader *multipart.FileHeader) domain.UploadResult {
	file, err := fileHeader.Open()
	if err != nil {
		rt.serverMetrics.RecordUpload(serviceName, 0, err)
		return domain.UploadResult{OriginalFilename: fileHeader.Filename}
	}
	defer file.Close()

	res, err := rt.uploads.Upload(
		r.Context(),
		userID,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		file,
	)
	rt.serverMetrics.RecordUpload(serviceName, res.Size, err)
	if err != nil {
		return domain.UploadResult{OriginalFilename: fileHeader.Filename}
	}
	return res
}

func (rt *Router) getNote(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "note id must be a positive integer"})
		return
	}

	note, err := rt.notes.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, note)
}

func (rt *Router) downloadNote(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "note id must be a positive integer"})
		return
	}

	rc, filename, err := rt.notes.AttachmentFile(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	_, _ = io.Copy(w, rc)
}

func (rt *Router) searchNotes(w http.ResponseWriter, r *http.Request) {
	userID, ok := queryUserID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "query parameter 'user_id' is required"})
		return
	}
	term := r.URL.Query().Get("q")

	results, err := rt.notes.Search(r.Context(), userID, term)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": results})
}

func (rt *Router) clearNotes(w http.ResponseWriter, r *http.Request) {
	userID, ok := queryUserID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "query parameter 'user_id' is required"})
		return
	}

	deleted, err := rt.notes.Clear(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": fmt.Sprintf("Deleted %d notes.", deleted)})
}

func (rt *Router) chatAnswer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID   int64  `json:"user_id"`
		Question string `json:"question"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if req.UserID <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "user_id is required"})
		return
	}

	answer, err := rt.chat.Answer(r.Context(), req.UserID, req.Question)
	if err != nil {
		writeError(w, err)
		return
	}
	rt.serverMetrics.RecordChatRequest(serviceName)
	writeJSON(w, http.StatusOK, map[string]string{"answer": answer})
}

func (rt *Router) transcribe(w http.ResponseWriter, r *http.Request) {
	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "multipart field 'file' is required"})
		return
	}
	defer file.Close()

	text, err := rt.transcriber.Transcribe(r.Context(), fileHeader.Filename, file)
	rt.serverMetrics.RecordTranscription(serviceName, err)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"text": text})
}
