package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"notes-assistant/internal/core/domain"
)

// APIClient talks to the assistant HTTP API on behalf of the bot.
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewAPIClient(baseURL string, httpClient *http.Client) *APIClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 120 * time.Second}
	}
	return &APIClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

func (c *APIClient) UploadFile(ctx context.Context, userID int64, filename string, body io.Reader) (domain.UploadResult, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("files", filename)
	if err != nil {
		return domain.UploadResult{}, fmt.Errorf("build multipart body: %w", err)
	}
	if _, err := io.Copy(part, body); err != nil {
		return domain.UploadResult{}, fmt.Errorf("copy file into request: %w", err)
	}
	if err := mw.Close(); err != nil {
		return domain.UploadResult{}, fmt.Errorf("close multipart body: %w", err)
	}

	target := fmt.Sprintf("%s/attachments?user_id=%d", c.baseURL, userID)
	var resp struct {
		Uploaded []domain.UploadResult `json:"uploaded"`
	}
	if err := c.doMultipart(ctx, target, &buf, mw.FormDataContentType(), &resp); err != nil {
		return domain.UploadResult{}, err
	}
	if len(resp.Uploaded) == 0 {
		return domain.UploadResult{}, fmt.Errorf("empty upload response")
	}
	return resp.Uploaded[0], nil
}

func (c *APIClient) Transcribe(ctx context.Context, filename string, body io.Reader) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("build multipart body: %w", err)
	}
	if _, err := io.Copy(part, body); err != nil {
		return "", fmt.Errorf("copy file into request: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("close multipart body: %w", err)
	}

	var resp struct {
		Text string `json:"text"`
	}
	if err := c.doMultipart(ctx, c.baseURL+"/transcribe", &buf, mw.FormDataContentType(), &resp); err != nil {
		return "", err
	}
	return resp.Text, nil
}

func (c *APIClient) Chat(ctx context.Context, userID int64, question string) (string, error) {
	payload := map[string]any{"user_id": userID, "question": question}
	var resp struct {
		Answer string `json:"answer"`
	}
	if err := c.doJSON(ctx, http.MethodPost, c.baseURL+"/chat", payload, &resp); err != nil {
		return "", err
	}
	return resp.Answer, nil
}

func (c *APIClient) GetNote(ctx context.Context, id int64) (*domain.Note, error) {
	var note domain.Note
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("%s/notes/%d", c.baseURL, id), nil, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (c *APIClient) SearchNotes(ctx context.Context, userID int64, term string) ([]domain.NoteSearchResult, error) {
	target := fmt.Sprintf("%s/notes/search?user_id=%d&q=%s", c.baseURL, userID, url.QueryEscape(term))
	var resp struct {
		Results []domain.NoteSearchResult `json:"results"`
	}
	if err := c.doJSON(ctx, http.MethodGet, target, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

func (c *APIClient) ClearNotes(ctx context.Context, userID int64) (string, error) {
	var resp struct {
		Message string `json:"message"`
	}
	target := fmt.Sprintf("%s/notes?user_id=%d", c.baseURL, userID)
	if err := c.doJSON(ctx, http.MethodDelete, target, nil, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (c *APIClient) CreateTask(ctx context.Context, userID int64, title string) (*domain.Task, error) {
	payload := map[string]any{"user_id": userID, "title": title}
	var task domain.Task
	if err := c.doJSON(ctx, http.MethodPost, c.baseURL+"/tasks", payload, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *APIClient) ListTasks(ctx context.Context, userID int64, status string) ([]domain.Task, error) {
	target := fmt.Sprintf("%s/tasks?user_id=%d", c.baseURL, userID)
	if status != "" {
		target += "&status=" + url.QueryEscape(status)
	}
	var resp struct {
		Tasks []domain.Task `json:"tasks"`
	}
	if err := c.doJSON(ctx, http.MethodGet, target, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Tasks, nil
}

func (c *APIClient) CompleteTask(ctx context.Context, id int64) (*domain.Task, error) {
	target := c.baseURL + "/tasks/" + strconv.FormatInt(id, 10) + "/complete"
	var task domain.Task
	if err := c.doJSON(ctx, http.MethodPost, target, nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *APIClient) doJSON(ctx context.Context, method, target string, payload, dst any) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, dst)
}

func (c *APIClient) doMultipart(ctx context.Context, target string, body io.Reader, contentType string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	return c.do(req, dst)
}

func (c *APIClient) do(req *http.Request, dst any) error {
	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call api: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if decodeErr := json.NewDecoder(res.Body).Decode(&apiErr); decodeErr == nil && apiErr.Error != "" {
			return fmt.Errorf("api status %d: %s", res.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("api status %d", res.StatusCode)
	}

	if dst == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode api response: %w", err)
	}
	return nil
}
