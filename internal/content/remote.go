package content

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// RemoteConfig configures the adaptive-content service client.
type RemoteConfig struct {
	// BaseURL is the service root, e.g. "https://content.lumikids.app".
	BaseURL string

	// Token is the bearer token minted by the host's auth layer.
	Token string

	// Timeout bounds each request. There are deliberately no retries;
	// the recovery policy for this service is fallback, not waiting.
	Timeout time.Duration
}

// DefaultRemoteTimeout keeps a hung service from wedging the loading
// screen; the session falls back to the local bank instead.
const DefaultRemoteTimeout = 10 * time.Second

// RemoteSource talks JSON over HTTP to the adaptive-content service.
type RemoteSource struct {
	cfg    RemoteConfig
	client *http.Client
	logger *slog.Logger
}

var _ Source = (*RemoteSource)(nil)

// NewRemoteSource creates a client for the adaptive-content service.
func NewRemoteSource(cfg RemoteConfig, logger *slog.Logger) (*RemoteSource, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("remote content: base URL is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultRemoteTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RemoteSource{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}, nil
}

type planRequest struct {
	LearnerID string `json:"learnerId"`
	YearLevel int    `json:"yearLevel"`
}

// CreateSessionPlan requests the item set for a learner. Every failure
// mode (transport, status, schema, item invariants) collapses into
// ErrUnavailable so the caller has exactly one recovery path.
func (r *RemoteSource) CreateSessionPlan(ctx context.Context, learner Learner) (SessionPlan, error) {
	body, err := r.post(ctx, "/v1/session-plans", planRequest{
		LearnerID: learner.ID,
		YearLevel: learner.YearLevel,
	})
	if err != nil {
		return SessionPlan{}, fmt.Errorf("%w: create session plan: %v", ErrUnavailable, err)
	}

	plan, err := ParsePlanPayload(body)
	if err != nil {
		return SessionPlan{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return plan, nil
}

type hintRequest struct {
	QuestionID string `json:"questionId"`
	LearnerID  string `json:"learnerId"`
}

type hintResponse struct {
	Hint string `json:"hint"`
}

// GetHint fetches one hint. The caller substitutes a canned hint on
// error; this method just reports the failure.
func (r *RemoteSource) GetHint(ctx context.Context, sessionID, questionID string, learner Learner) (string, error) {
	body, err := r.post(ctx, "/v1/sessions/"+sessionID+"/hints", hintRequest{
		QuestionID: questionID,
		LearnerID:  learner.ID,
	})
	if err != nil {
		return "", fmt.Errorf("get hint: %w", err)
	}
	var hr hintResponse
	if err := json.Unmarshal(body, &hr); err != nil {
		return "", fmt.Errorf("decode hint: %w", err)
	}
	if strings.TrimSpace(hr.Hint) == "" {
		return "", fmt.Errorf("service returned an empty hint")
	}
	return hr.Hint, nil
}

type submitRequest struct {
	ResponseRecord
	LearnerID string `json:"learnerId"`
}

// SubmitResponse reports one answer. Fire-and-forget: the status is
// logged here and returned for the caller to discard.
func (r *RemoteSource) SubmitResponse(ctx context.Context, sessionID string, rec ResponseRecord, learner Learner) ReportStatus {
	_, err := r.post(ctx, "/v1/sessions/"+sessionID+"/responses", submitRequest{
		ResponseRecord: rec,
		LearnerID:      learner.ID,
	})
	if err != nil {
		r.logger.Warn("response report failed",
			"session_id", sessionID,
			"question_id", rec.QuestionID,
			"err", err)
		return ReportFailed
	}
	return ReportOK
}

type finalizeRequest struct {
	LearnerID string           `json:"learnerId"`
	Responses []ResponseRecord `json:"responses"`
}

// FinalizeSession reports completion with the full response list.
// Fire-and-forget, same contract as SubmitResponse.
func (r *RemoteSource) FinalizeSession(ctx context.Context, sessionID string, recs []ResponseRecord, learner Learner) ReportStatus {
	_, err := r.post(ctx, "/v1/sessions/"+sessionID+"/finalize", finalizeRequest{
		LearnerID: learner.ID,
		Responses: recs,
	})
	if err != nil {
		r.logger.Warn("finalize report failed", "session_id", sessionID, "err", err)
		return ReportFailed
	}
	return ReportOK
}

// post issues one JSON POST and returns the response body on any 2xx.
func (r *RemoteSource) post(ctx context.Context, path string, payload any) (json.RawMessage, error) {
	buf, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	url := strings.TrimRight(r.cfg.BaseURL, "/") + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(buf))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if r.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+r.cfg.Token)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%s returned %d", path, resp.StatusCode)
	}
	return body, nil
}
