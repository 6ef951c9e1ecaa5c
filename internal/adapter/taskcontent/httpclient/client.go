package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"mergeverse/internal/app/ports"
	"mergeverse/internal/domain/merge"
)

// Client talks to the external datapoint service for annotation tasks.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ ports.TaskContentProvider = (*Client)(nil)

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
		},
	}
}

type mcqQuestionPayload struct {
	Q string `json:"q"`
	A string `json:"a"`
}

type mcqPreLabel struct {
	Summary   string               `json:"summary"`
	Questions []mcqQuestionPayload `json:"questions"`
	Keywords  []string             `json:"keywords"`
}

type mcqDatapoint struct {
	ID       string      `json:"_id"`
	TaskID   string      `json:"task_id"`
	MediaURL string      `json:"mediaUrl"`
	PreLabel mcqPreLabel `json:"preLabel"`
}

type mcqFetchResponse struct {
	Datapoints []mcqDatapoint `json:"datapoints"`
}

func (c *Client) FetchMcqTasks(ctx context.Context, n int) ([]merge.McqTask, error) {
	var out mcqFetchResponse
	if err := c.postJSON(ctx, "/api/game/fetch-mcq-datapoints", map[string]int{"numberOfDatapoints": n}, &out); err != nil {
		return nil, err
	}
	tasks := make([]merge.McqTask, 0, len(out.Datapoints))
	for _, d := range out.Datapoints {
		questions := make([]merge.McqQuestion, 0, len(d.PreLabel.Questions))
		for _, q := range d.PreLabel.Questions {
			questions = append(questions, merge.McqQuestion{Question: q.Q, Answer: q.A})
		}
		tasks = append(tasks, merge.McqTask{
			ID:        d.ID,
			TaskID:    d.TaskID,
			MediaURL:  d.MediaURL,
			Summary:   d.PreLabel.Summary,
			Keywords:  d.PreLabel.Keywords,
			Questions: questions,
		})
	}
	return tasks, nil
}

type textQuestionPayload struct {
	DatapointID   string `json:"datapointId"`
	QuestionIndex int    `json:"questionIndex"`
	Question      string `json:"question"`
	MediaURL      string `json:"mediaUrl"`
}

type textFetchResponse struct {
	Questions []textQuestionPayload `json:"questions"`
}

func (c *Client) FetchTextTasks(ctx context.Context, n int) ([]merge.TextTask, error) {
	var out textFetchResponse
	if err := c.postJSON(ctx, "/api/game/fetch-textQ", map[string]int{"numberOfDatapoints": n}, &out); err != nil {
		return nil, err
	}
	tasks := make([]merge.TextTask, 0, len(out.Questions))
	for _, q := range out.Questions {
		tasks = append(tasks, merge.TextTask{
			DatapointID:   q.DatapointID,
			QuestionIndex: q.QuestionIndex,
			Question:      q.Question,
			MediaURL:      q.MediaURL,
		})
	}
	return tasks, nil
}

func (c *Client) SubmitMcqAnswers(ctx context.Context, playerID, datapointID string, answers map[int]string) error {
	payload := map[string]any{
		"playerId":    playerID,
		"datapointId": datapointID,
		"answers":     answers,
	}
	return c.postJSON(ctx, "/api/game/submit-mcq-answers", payload, nil)
}

func (c *Client) SubmitTextAnswer(ctx context.Context, playerID, datapointID string, questionIndex int, text string) error {
	payload := map[string]any{
		"playerId":      playerID,
		"datapointId":   datapointID,
		"questionIndex": questionIndex,
		"answer":        text,
	}
	return c.postJSON(ctx, "/api/game/submit-textQ", payload, nil)
}

func (c *Client) postJSON(ctx context.Context, path string, in any, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("task content request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("task content status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode task content response: %w", err)
	}
	return nil
}
