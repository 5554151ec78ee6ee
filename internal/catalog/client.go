// Package catalog is the read side of the remote learning-content store.
// It fetches raw course/subject/video records and maps them into the
// canonical shapes in internal/domain. All operations are read-only;
// failures surface as typed errors, never partial results.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"edustore/internal/domain"
	"edustore/internal/httpx"
	"edustore/internal/session"
)

const acceptJSON = "application/json"

type Client struct {
	BaseURL string
	HTTP    *http.Client

	// Tokens is consulted just-in-time for admin-scoped reads. Public
	// reads (FetchCourse) never touch it.
	Tokens session.TokenSource

	Log *zap.Logger
}

func New(baseURL string, tokens session.TokenSource, log *zap.Logger) *Client {
	tr := &http.Transport{
		MaxIdleConns:        200,
		MaxIdleConnsPerHost: 200,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	return &Client{
		BaseURL: baseURL,
		HTTP: &http.Client{
			Timeout:   2 * time.Minute,
			Transport: tr,
		},
		Tokens: tokens,
		Log:    log,
	}
}

// FetchCourse fetches one course with its subjects. No auth required.
// A missing course id resolves to domain.ErrNotFound.
func (c *Client) FetchCourse(ctx context.Context, courseID string) (domain.Course, error) {
	var raw rawCourse
	err := httpx.DoJSON(
		ctx,
		c.HTTP,
		func(ctx context.Context) (*http.Request, error) {
			u := c.BaseURL + "/api/courses/" + url.PathEscape(courseID)
			r, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
			if err != nil {
				return nil, err
			}
			r.Header.Set("Accept", acceptJSON)
			return r, nil
		},
		&raw,
	)
	if err != nil {
		return domain.Course{}, Classify("fetch course", err)
	}

	course := mapCourse(raw)
	c.Log.Info("fetched course",
		zap.String("courseID", course.ID),
		zap.Int("subjects", len(course.Subjects)))
	return course, nil
}

// FetchVideos lists the full video library (admin scope).
func (c *Client) FetchVideos(ctx context.Context) ([]domain.Video, error) {
	var raw []rawVideo
	if err := c.getAdminJSON(ctx, "/api/admin/videos", &raw); err != nil {
		return nil, Classify("fetch videos", err)
	}

	videos := make([]domain.Video, 0, len(raw))
	for _, rv := range raw {
		videos = append(videos, mapVideo(rv))
	}
	return videos, nil
}

// FetchSubjects lists the subject catalog with department/year grouping
// (admin scope). This is the option source for the cascading filter.
func (c *Client) FetchSubjects(ctx context.Context) ([]domain.SubjectInfo, error) {
	var raw []rawSubjectInfo
	if err := c.getAdminJSON(ctx, "/api/admin/subjects", &raw); err != nil {
		return nil, Classify("fetch subjects", err)
	}

	infos := make([]domain.SubjectInfo, 0, len(raw))
	for _, rs := range raw {
		infos = append(infos, domain.SubjectInfo{
			ID:         rs.ID,
			Code:       rs.Code,
			Title:      rs.Title,
			Department: rs.Department,
			YearLevel:  rs.YearLevel,
		})
	}
	return infos, nil
}

func (c *Client) getAdminJSON(ctx context.Context, path string, out any) error {
	return httpx.DoJSON(
		ctx,
		c.HTTP,
		func(ctx context.Context) (*http.Request, error) {
			r, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
			if err != nil {
				return nil, err
			}
			r.Header.Set("Accept", acceptJSON)
			if err := c.authorize(ctx, r); err != nil {
				return nil, err
			}
			return r, nil
		},
		out,
	)
}

func (c *Client) authorize(ctx context.Context, r *http.Request) error {
	if c.Tokens == nil {
		return fmt.Errorf("%w: no token source configured", domain.ErrAuth)
	}
	tok, err := c.Tokens.Token(ctx)
	if err != nil {
		return err
	}
	r.Header.Set("Authorization", "Bearer "+tok)
	return nil
}

// Classify maps a transport/remote failure to the error kinds in
// internal/domain, keeping the original detail in the message.
func Classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, domain.ErrAuth) {
		return fmt.Errorf("%s: %w", op, err)
	}

	var herr *httpx.HTTPError
	if errors.As(err, &herr) {
		switch {
		case herr.StatusCode == http.StatusNotFound:
			return fmt.Errorf("%s: %w: %v", op, domain.ErrNotFound, err)
		case herr.StatusCode == http.StatusUnauthorized,
			herr.StatusCode == http.StatusForbidden:
			return fmt.Errorf("%s: %w: %v", op, domain.ErrAuth, err)
		}
	}
	return fmt.Errorf("%s: %w: %v", op, domain.ErrNetwork, err)
}
