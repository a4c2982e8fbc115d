// Package interview is a client for the remote interview API: starting an
// interview session, submitting answers, and fetching or emailing the
// generated report.
package interview

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Client talks to the interview API over HTTP. Requests are single-shot;
// there is no retry logic.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// StartInterview begins a session for the user and returns the formatted
// question list. The remote API responds with a JSON array of raw question
// strings that may bundle several prompts per entry.
func (c *Client) StartInterview(ctx context.Context, userID int64) ([]Question, error) {
	c.log.Debug().Int64("user_id", userID).Msg("starting interview")

	url := fmt.Sprintf("%s/interview/start?userId=%d", c.baseURL, userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return nil, fmt.Errorf("start interview: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("start interview: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("start interview: unexpected status %d", resp.StatusCode)
	}

	var raw []string
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("start interview: decode response: %w", err)
	}

	questions := formatQuestions(raw)
	c.log.Debug().Int("questions", len(questions)).Msg("interview started")
	return questions, nil
}

type submitAnswersRequest struct {
	UserID  int64    `json:"userId"`
	Answers []string `json:"answers"`
}

// SubmitAnswers posts the user's answers, trimmed of surrounding whitespace,
// and returns the API's JSON response.
func (c *Client) SubmitAnswers(ctx context.Context, userID int64, answers []string) (map[string]any, error) {
	c.log.Debug().Int64("user_id", userID).Int("answers", len(answers)).Msg("submitting answers")

	trimmed := make([]string, len(answers))
	for i, a := range answers {
		trimmed[i] = strings.TrimSpace(a)
	}

	body, err := json.Marshal(submitAnswersRequest{UserID: userID, Answers: trimmed})
	if err != nil {
		return nil, fmt.Errorf("submit answers: %w", err)
	}

	url := c.baseURL + "/interview/submit-answers"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("submit answers: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("submit answers: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("submit answers: unexpected status %d", resp.StatusCode)
	}

	var result map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("submit answers: decode response: %w", err)
	}
	return result, nil
}

// DownloadReport fetches the generated report as raw bytes.
func (c *Client) DownloadReport(ctx context.Context, interviewID int64) ([]byte, error) {
	c.log.Debug().Int64("interview_id", interviewID).Msg("downloading report")

	url := c.baseURL + "/interview/download-report?interviewId=" + strconv.FormatInt(interviewID, 10)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("download report: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download report: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("download report: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("download report: read body: %w", err)
	}
	return data, nil
}

// SendReport asks the API to email the report for an interview. The API
// answers with either a JSON envelope or plain text; both are handled, and
// non-2xx responses carry whatever message the server provided.
func (c *Client) SendReport(ctx context.Context, interviewID int64) (string, error) {
	c.log.Debug().Int64("interview_id", interviewID).Msg("sending report")

	url := c.baseURL + "/interview/send-report?interviewId=" + strconv.FormatInt(interviewID, 10)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return "", fmt.Errorf("send report: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("send report: %w", err)
	}
	defer resp.Body.Close()

	msg := readMessage(resp)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if msg == "" {
			msg = resp.Status
		}
		return "", fmt.Errorf("send report: %s", msg)
	}
	return msg, nil
}

// readMessage extracts a human-readable message from a response that may be
// JSON ({"message": ...} or {"error": ...}) or plain text.
func readMessage(resp *http.Response) string {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return ""
	}

	if strings.Contains(resp.Header.Get("Content-Type"), "application/json") {
		var envelope struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		if err := json.Unmarshal(body, &envelope); err == nil {
			if envelope.Message != "" {
				return envelope.Message
			}
			if envelope.Error != "" {
				return envelope.Error
			}
		}
	}
	return strings.TrimSpace(string(body))
}
