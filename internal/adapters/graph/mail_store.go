package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mikey/inbox-cleanup-agent/internal/core"
	"go.uber.org/zap"
)

const defaultBaseURL = "https://graph.microsoft.com/v1.0"

// deleteTimeout bounds each single-message delete call
const deleteTimeout = 10 * time.Second

// TokenSource supplies the bearer token for Graph requests. Refresh is
// best-effort; a failed refresh leaves the previous token in place.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
	Refresh(ctx context.Context) error
}

// StaticTokenSource wraps a pre-acquired access token. Refresh is a no-op.
type StaticTokenSource struct {
	token string
}

func NewStaticTokenSource(token string) *StaticTokenSource {
	return &StaticTokenSource{token: token}
}

func (s *StaticTokenSource) Token(ctx context.Context) (string, error) {
	if s.token == "" {
		return "", fmt.Errorf("no Graph access token configured")
	}
	return s.token, nil
}

func (s *StaticTokenSource) Refresh(ctx context.Context) error {
	return nil
}

// MailStore implements the MailStore interface against the Microsoft Graph
// REST API.
type MailStore struct {
	httpClient *http.Client
	baseURL    string
	tokens     TokenSource
	logger     *zap.Logger
}

// NewMailStore creates a new Graph mail store
func NewMailStore(httpClient *http.Client, baseURL string, tokens TokenSource, logger *zap.Logger) *MailStore {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &MailStore{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		tokens:     tokens,
		logger:     logger,
	}
}

// graphMessage mirrors the subset of the Graph message resource we select
type graphMessage struct {
	ID      string `json:"id"`
	Subject string `json:"subject"`
	From    struct {
		EmailAddress struct {
			Address string `json:"address"`
			Name    string `json:"name"`
		} `json:"emailAddress"`
	} `json:"from"`
	ReceivedDateTime        string `json:"receivedDateTime"`
	BodyPreview             string `json:"bodyPreview"`
	HasAttachments          bool   `json:"hasAttachments"`
	IsRead                  bool   `json:"isRead"`
	InferenceClassification string `json:"inferenceClassification"`
}

func (m *graphMessage) toEmail() *core.Email {
	return &core.Email{
		ID:               m.ID,
		Subject:          m.Subject,
		FromAddress:      m.From.EmailAddress.Address,
		FromName:         m.From.EmailAddress.Name,
		BodyPreview:      m.BodyPreview,
		ReceivedDateTime: m.ReceivedDateTime,
		HasAttachments:   m.HasAttachments,
		IsRead:           m.IsRead,
		Classification:   m.InferenceClassification,
	}
}

// ListMessages fetches up to limit inbox messages, newest first, optionally
// filtered by inferenceClassification tag ("other" or "focused").
func (s *MailStore) ListMessages(ctx context.Context, tag string, limit int) ([]*core.Email, error) {
	q := url.Values{}
	q.Set("$top", strconv.Itoa(limit))
	q.Set("$select", "id,subject,from,receivedDateTime,bodyPreview,hasAttachments,isRead,inferenceClassification")
	q.Set("$orderby", "receivedDateTime DESC")
	if tag != "" {
		q.Set("$filter", fmt.Sprintf("inferenceClassification eq '%s'", tag))
	}

	endpoint := s.baseURL + "/me/mailFolders/inbox/messages?" + q.Encode()

	body, status, err := s.get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("failed to list messages: status %d: %s", status, firstLine(body))
	}

	var page struct {
		Value []graphMessage `json:"value"`
	}
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("failed to unmarshal message list: %w", err)
	}

	emails := make([]*core.Email, 0, len(page.Value))
	for i := range page.Value {
		emails = append(emails, page.Value[i].toEmail())
	}

	s.logger.Debug("Fetched inbox messages",
		zap.String("tag", tag),
		zap.Int("requested", limit),
		zap.Int("received", len(emails)))

	return emails, nil
}

// DeleteMessage deletes one message by ID. Graph acknowledges a successful
// deletion with 204 No Content.
func (s *MailStore) DeleteMessage(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, deleteTimeout)
	defer cancel()

	token, err := s.tokens.Token(ctx)
	if err != nil {
		return err
	}

	endpoint := s.baseURL + "/me/messages/" + url.PathEscape(id)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build delete request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("delete request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("delete returned status %d: %s", resp.StatusCode, firstLine(body))
	}

	return nil
}

// InboxCount returns the message count for a scope. Filtered counts come from
// a $count=true page of size one; the total comes from the /$count endpoint,
// which returns a bare integer.
func (s *MailStore) InboxCount(ctx context.Context, scope core.CountScope) (int, error) {
	var endpoint string
	switch scope {
	case core.CountOther, core.CountFocused:
		q := url.Values{}
		q.Set("$filter", fmt.Sprintf("inferenceClassification eq '%s'", string(scope)))
		q.Set("$count", "true")
		q.Set("$top", "1")
		endpoint = s.baseURL + "/me/mailFolders/inbox/messages?" + q.Encode()
	case core.CountTotal:
		endpoint = s.baseURL + "/me/mailFolders/inbox/messages/$count"
	default:
		return 0, fmt.Errorf("unknown count scope %q", scope)
	}

	body, status, err := s.get(ctx, endpoint)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch inbox count: %w", err)
	}
	if status != http.StatusOK {
		return 0, fmt.Errorf("failed to fetch inbox count: status %d: %s", status, firstLine(body))
	}

	if scope == core.CountTotal {
		count, err := strconv.Atoi(strings.TrimSpace(string(body)))
		if err != nil {
			return 0, fmt.Errorf("failed to parse total count: %w", err)
		}
		return count, nil
	}

	var page struct {
		Count int `json:"@odata.count"`
	}
	if err := json.Unmarshal(body, &page); err != nil {
		return 0, fmt.Errorf("failed to unmarshal count response: %w", err)
	}
	return page.Count, nil
}

// RefreshCredentials asks the token source for a fresh bearer token
func (s *MailStore) RefreshCredentials(ctx context.Context) error {
	return s.tokens.Refresh(ctx)
}

// get performs an authenticated GET and returns the body and status
func (s *MailStore) get(ctx context.Context, endpoint string) ([]byte, int, error) {
	token, err := s.tokens.Token(ctx)
	if err != nil {
		return nil, 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	// Filtered $count queries require eventual consistency
	req.Header.Set("ConsistencyLevel", "eventual")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read response body: %w", err)
	}

	return body, resp.StatusCode, nil
}

func firstLine(b []byte) string {
	s := string(b)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if len(s) > 200 {
		s = s[:200]
	}
	return s
}
