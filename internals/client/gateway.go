package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
)

// Gateway talks to the API over HTTP. All resource endpoints share the same
// shape, so one gateway covers schools and every result type alike.
type Gateway struct {
	baseURL string
	client  *http.Client
	token   string
}

func NewGateway(baseURL string) *Gateway {
	return &Gateway{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// SetToken attaches the bearer token issued at login to every later call.
func (g *Gateway) SetToken(token string) {
	g.token = token
}

// ReportData is the /api/reports/all-data aggregate as the client sees it:
// a flat document with "schools" next to one array per test type.
type ReportData map[string][]map[string]interface{}

func (d ReportData) Schools() []map[string]interface{} {
	return d["schools"]
}

// ResultsFor returns the rows of one test type, e.g. "timssResults".
func (d ReportData) ResultsFor(key string) []map[string]interface{} {
	return d[key]
}

type batchResponse struct {
	InsertedCount int `json:"insertedCount"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// ListAll fetches every row of a resource, newest first.
func (g *Gateway) ListAll(ctx context.Context, resource string) ([]map[string]interface{}, error) {
	var rows []map[string]interface{}
	if err := g.do(ctx, http.MethodGet, "/api/"+resource, nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// Create posts one record and returns the server's echo, ids included.
func (g *Gateway) Create(ctx context.Context, resource string, payload interface{}) (map[string]interface{}, error) {
	var created map[string]interface{}
	if err := g.do(ctx, http.MethodPost, "/api/"+resource, payload, &created); err != nil {
		return nil, err
	}
	return created, nil
}

// CreateBatch posts many records in one request. The server writes all of
// them or none.
func (g *Gateway) CreateBatch(ctx context.Context, resource string, payloads interface{}) (int, error) {
	var resp batchResponse
	if err := g.do(ctx, http.MethodPost, "/api/"+resource+"/batch", payloads, &resp); err != nil {
		return 0, err
	}
	return resp.InsertedCount, nil
}

func (g *Gateway) Update(ctx context.Context, resource string, id uint, payload interface{}) (map[string]interface{}, error) {
	var updated map[string]interface{}
	path := fmt.Sprintf("/api/%s/%d", resource, id)
	if err := g.do(ctx, http.MethodPut, path, payload, &updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (g *Gateway) Delete(ctx context.Context, resource string, id uint) error {
	path := fmt.Sprintf("/api/%s/%d", resource, id)
	return g.do(ctx, http.MethodDelete, path, nil, nil)
}

// Login authenticates and remembers the issued token for later calls.
func (g *Gateway) Login(ctx context.Context, username, password string) (Session, error) {
	var session Session
	body := map[string]string{"username": username, "password": password}
	if err := g.do(ctx, http.MethodPost, "/api/auth/login", body, &session); err != nil {
		return Session{}, err
	}
	g.token = session.Token
	return session, nil
}

func (g *Gateway) ChangePassword(ctx context.Context, username, currentPassword, newPassword string) error {
	body := map[string]string{
		"username":        username,
		"currentPassword": currentPassword,
		"newPassword":     newPassword,
	}
	return g.do(ctx, http.MethodPost, "/api/users/change-password", body, nil)
}

// AllReportData pulls the denormalized aggregate behind the report pages.
func (g *Gateway) AllReportData(ctx context.Context) (ReportData, error) {
	var data ReportData
	if err := g.do(ctx, http.MethodGet, "/api/reports/all-data", nil, &data); err != nil {
		return nil, err
	}
	return data, nil
}

func (g *Gateway) do(ctx context.Context, method, path string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		b, err := sonic.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if g.token != "" {
		req.Header.Set("Authorization", "Bearer "+g.token)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Err: err}
	}

	if resp.StatusCode >= 400 {
		var msg messageResponse
		_ = sonic.Unmarshal(raw, &msg)
		return classifyStatus(resp.StatusCode, msg.Message)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	return sonic.Unmarshal(raw, out)
}
