// Package roster reads courses, students and scores from a Canvas LMS
// instance.
package roster

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tomnomnom/linkheader"
	"github.com/ukaji3/gradecell-go/pkg/gradecell/trace"
)

// Student is an enrolled student.
type Student struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	// SortableName is "Last, First", the order used in gradebook rosters.
	SortableName string `json:"sortable_name"`
}

// Score is a graded submission.
type Score struct {
	Course    string  `json:"course"`
	Activity  string  `json:"activity"`
	StudentID int     `json:"student_id"`
	Score     float64 `json:"score"`
}

// Source provides the course data a gradebook is filled from.
type Source interface {
	// ListCourses returns the caller's courses keyed by ID.
	ListCourses(ctx context.Context) (map[int]string, error)
	// ListStudents returns the students enrolled in a course.
	ListStudents(ctx context.Context, courseID int) ([]Student, error)
	// ListScores returns every scored submission of a course.
	ListScores(ctx context.Context, courseID int) ([]Score, error)
}

// CanvasClient implements Source over the Canvas REST API.
type CanvasClient struct {
	cfg      Config
	http     *http.Client
	observer trace.Observer
}

var _ Source = (*CanvasClient)(nil)

// NewCanvasClient returns a client for cfg. It fails with ErrNotConfigured
// when the URL or token is missing.
func NewCanvasClient(cfg Config, observer trace.Observer) (*CanvasClient, error) {
	if !cfg.Configured() {
		return nil, ErrNotConfigured
	}
	if cfg.TimeoutMs <= 0 {
		cfg.TimeoutMs = DefaultConfig().TimeoutMs
	}
	if cfg.PerPage <= 0 {
		cfg.PerPage = DefaultConfig().PerPage
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &CanvasClient{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		observer: trace.OrNoop(observer),
	}, nil
}

type canvasCourse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type canvasAssignment struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type canvasSubmission struct {
	UserID int      `json:"user_id"`
	Score  *float64 `json:"score"`
}

func (c *CanvasClient) ListCourses(ctx context.Context) (map[int]string, error) {
	courses, err := getPaged[canvasCourse](ctx, c, "/api/v1/courses", nil)
	if err != nil {
		return nil, err
	}
	out := make(map[int]string, len(courses))
	for _, course := range courses {
		out[course.ID] = course.Name
	}
	return out, nil
}

func (c *CanvasClient) ListStudents(ctx context.Context, courseID int) ([]Student, error) {
	query := url.Values{"enrollment_type[]": {"student"}}
	return getPaged[Student](ctx, c, fmt.Sprintf("/api/v1/courses/%d/users", courseID), query)
}

func (c *CanvasClient) ListScores(ctx context.Context, courseID int) ([]Score, error) {
	var course canvasCourse
	if err := c.getJSON(ctx, c.endpoint(fmt.Sprintf("/api/v1/courses/%d", courseID), nil), &course, nil); err != nil {
		return nil, err
	}
	assignments, err := getPaged[canvasAssignment](ctx, c, fmt.Sprintf("/api/v1/courses/%d/assignments", courseID), nil)
	if err != nil {
		return nil, err
	}

	var scores []Score
	for _, a := range assignments {
		path := fmt.Sprintf("/api/v1/courses/%d/assignments/%d/submissions", courseID, a.ID)
		subs, err := getPaged[canvasSubmission](ctx, c, path, nil)
		if err != nil {
			return nil, err
		}
		for _, s := range subs {
			if s.Score == nil {
				continue
			}
			scores = append(scores, Score{
				Course:    course.Name,
				Activity:  a.Name,
				StudentID: s.UserID,
				Score:     *s.Score,
			})
		}
	}
	return scores, nil
}

func (c *CanvasClient) endpoint(path string, query url.Values) string {
	q := url.Values{}
	for k, v := range query {
		q[k] = v
	}
	q.Set("per_page", strconv.Itoa(c.cfg.PerPage))
	return c.cfg.BaseURL + path + "?" + q.Encode()
}

// getPaged follows the Link rel="next" chain starting at path and
// concatenates every page.
func getPaged[T any](ctx context.Context, c *CanvasClient, path string, query url.Values) ([]T, error) {
	var all []T
	next := c.endpoint(path, query)
	for next != "" {
		var page []T
		var link string
		if err := c.getJSON(ctx, next, &page, &link); err != nil {
			return nil, err
		}
		all = append(all, page...)
		next = nextLink(link)
	}
	return all, nil
}

func (c *CanvasClient) getJSON(ctx context.Context, rawURL string, out any, link *string) error {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, time.Duration(c.cfg.TimeoutMs)*time.Millisecond)
	defer cancel()

	status, err := c.doRequest(ctx, rawURL, out, link)
	c.observer.Observe(trace.Event{
		Name:  trace.RosterRequest,
		Level: slog.LevelDebug,
		Fields: map[string]any{
			"path":       urlPath(rawURL),
			"status":     status,
			"latency_ms": time.Since(start).Milliseconds(),
			"ok":         err == nil,
		},
	})
	if err == nil {
		return nil
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s", ErrTimeout, urlPath(rawURL))
	}
	return err
}

func (c *CanvasClient) doRequest(ctx context.Context, rawURL string, out any, link *string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("reading response: %w", err)
	}
	if err := statusError(resp.StatusCode, body); err != nil {
		return resp.StatusCode, err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return resp.StatusCode, fmt.Errorf("decoding response: %w", err)
	}
	if link != nil {
		*link = resp.Header.Get("Link")
	}
	return resp.StatusCode, nil
}

func statusError(status int, body []byte) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return fmt.Errorf("%w: status %d", ErrUnauthorized, status)
	case status == http.StatusNotFound:
		return ErrNotFound
	case status >= 500:
		return fmt.Errorf("%w: status %d", ErrUnavailable, status)
	}
	return fmt.Errorf("canvas returned status %d: %s", status, strings.TrimSpace(string(body)))
}

// nextLink returns the rel="next" target of a Link header, or "".
func nextLink(header string) string {
	next := linkheader.Parse(header).FilterByRel("next")
	if len(next) == 0 {
		return ""
	}
	return next[0].URL
}

func urlPath(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	return u.Path
}
