// Package admin is the write side of the content store plus the
// admin-scoped reads (users, stats, saved items). Mutations return only an
// acknowledgment: observing the effect is an explicit re-list by the
// caller, issued after the acknowledgment arrives. That keeps the admin
// view read-after-write consistent within one session; concurrent sessions
// are last-write-wins.
package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"edustore/internal/catalog"
	"edustore/internal/domain"
	"edustore/internal/httpx"
)

type Directory struct {
	cat *catalog.Client
	log *zap.Logger
}

// New wraps a catalog client; admin calls reuse its HTTP client and token
// source.
func New(cat *catalog.Client, log *zap.Logger) *Directory {
	return &Directory{cat: cat, log: log}
}

// ListVideos re-reads the full video library.
func (d *Directory) ListVideos(ctx context.Context) ([]domain.Video, error) {
	return d.cat.FetchVideos(ctx)
}

// ListSubjects re-reads the subject catalog (cascading filter options).
func (d *Directory) ListSubjects(ctx context.Context) ([]domain.SubjectInfo, error) {
	return d.cat.FetchSubjects(ctx)
}

// Snapshot fetches videos and subjects concurrently; the admin screen
// needs both before it can render anything.
func (d *Directory) Snapshot(ctx context.Context) ([]domain.Video, []domain.SubjectInfo, error) {
	var (
		videos   []domain.Video
		subjects []domain.SubjectInfo
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		videos, err = d.cat.FetchVideos(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		subjects, err = d.cat.FetchSubjects(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return videos, subjects, nil
}

// CreateVideo stores a new video record and returns its id. The store
// takes full documents keyed by id (PUT), so the id is assigned here when
// the record has none.
func (d *Directory) CreateVideo(ctx context.Context, v domain.Video) (string, error) {
	if err := validateVideo(v); err != nil {
		return "", err
	}
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	if err := d.putVideo(ctx, v); err != nil {
		return "", catalog.Classify("create video", err)
	}
	d.log.Info("video created", zap.String("videoID", v.ID), zap.String("title", v.Title))
	return v.ID, nil
}

// UpdateVideo replaces the stored document wholesale. Callers must send
// the complete record: any field left zero overwrites what the store had.
func (d *Directory) UpdateVideo(ctx context.Context, id string, v domain.Video) error {
	if err := validateVideo(v); err != nil {
		return err
	}
	v.ID = id
	if err := d.putVideo(ctx, v); err != nil {
		return catalog.Classify("update video", err)
	}
	d.log.Info("video updated", zap.String("videoID", id))
	return nil
}

// DeleteVideo removes a record. Confirmation is the caller's concern; the
// operation itself is unconditional.
func (d *Directory) DeleteVideo(ctx context.Context, id string) error {
	err := d.do(ctx, http.MethodDelete, "/api/admin/video/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return catalog.Classify("delete video", err)
	}
	d.log.Info("video deleted", zap.String("videoID", id))
	return nil
}

// ListUsers fetches the registered users (students page).
func (d *Directory) ListUsers(ctx context.Context) ([]domain.User, error) {
	var raw []rawUser
	if err := d.do(ctx, http.MethodGet, "/api/admin/users", nil, &raw); err != nil {
		return nil, catalog.Classify("list users", err)
	}
	users := make([]domain.User, 0, len(raw))
	for _, ru := range raw {
		users = append(users, domain.User{
			ID:                ru.ID,
			Email:             ru.Email,
			DisplayName:       ru.DisplayName,
			Role:              domain.Role(ru.Role),
			PurchasedSubjects: ru.PurchasedSubjects,
		})
	}
	return users, nil
}

// SetUserRole switches a user between "admin" and "user".
func (d *Directory) SetUserRole(ctx context.Context, userID string, role domain.Role) error {
	if role != domain.RoleAdmin && role != domain.RoleUser {
		return fmt.Errorf("%w: unknown role %q", domain.ErrValidation, role)
	}
	body := map[string]string{"role": string(role)}
	err := d.do(ctx, http.MethodPut, "/api/admin/user/"+url.PathEscape(userID)+"/role", body, nil)
	if err != nil {
		return catalog.Classify("set user role", err)
	}
	d.log.Info("user role updated", zap.String("userID", userID), zap.String("role", string(role)))
	return nil
}

// Stats fetches the dashboard overview counters.
func (d *Directory) Stats(ctx context.Context) (domain.Stats, error) {
	var stats domain.Stats
	if err := d.do(ctx, http.MethodGet, "/api/admin/stats", nil, &stats); err != nil {
		return domain.Stats{}, catalog.Classify("fetch stats", err)
	}
	return stats, nil
}

// SavedVideos fetches the signed-in user's saved items (profile page).
func (d *Directory) SavedVideos(ctx context.Context) ([]domain.Video, error) {
	var raw []videoDocument
	if err := d.do(ctx, http.MethodGet, "/api/saved-videos", nil, &raw); err != nil {
		return nil, catalog.Classify("fetch saved videos", err)
	}
	videos := make([]domain.Video, 0, len(raw))
	for _, rv := range raw {
		videos = append(videos, rv.toDomain())
	}
	return videos, nil
}

func (d *Directory) putVideo(ctx context.Context, v domain.Video) error {
	return d.do(ctx, http.MethodPut, "/api/admin/video/"+url.PathEscape(v.ID), toDocument(v), nil)
}

func (d *Directory) do(ctx context.Context, method, path string, body any, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return err
		}
	}

	return httpx.DoJSON(
		ctx,
		d.cat.HTTP,
		func(ctx context.Context) (*http.Request, error) {
			r, err := http.NewRequestWithContext(ctx, method, d.cat.BaseURL+path, bytes.NewReader(payload))
			if err != nil {
				return nil, err
			}
			r.Header.Set("Accept", "application/json")
			if payload != nil {
				r.Header.Set("Content-Type", "application/json")
			}
			if d.cat.Tokens == nil {
				return nil, fmt.Errorf("%w: no token source configured", domain.ErrAuth)
			}
			tok, err := d.cat.Tokens.Token(ctx)
			if err != nil {
				return nil, err
			}
			r.Header.Set("Authorization", "Bearer "+tok)
			return r, nil
		},
		out,
	)
}

func validateVideo(v domain.Video) error {
	if strings.TrimSpace(v.Title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if strings.TrimSpace(v.VideoURL) == "" {
		return fmt.Errorf("%w: videoUrl is required", domain.ErrValidation)
	}
	return nil
}

// videoDocument is the full-document wire shape for PUT /api/admin/video.
type videoDocument struct {
	ID           string `json:"_id,omitempty"`
	SubjectID    string `json:"subjectId"`
	SubjectTitle string `json:"subjectTitle"`
	Title        string `json:"title"`
	ChapterName  string `json:"chapterName"`
	PartNumber   int    `json:"partNumber"`
	VideoURL     string `json:"videoUrl"`
	NoteLink     string `json:"noteLink,omitempty"`
	IsFree       bool   `json:"isFree"`
}

func toDocument(v domain.Video) videoDocument {
	return videoDocument{
		ID:           v.ID,
		SubjectID:    v.SubjectID,
		SubjectTitle: v.SubjectTitle,
		Title:        v.Title,
		ChapterName:  v.ChapterName,
		PartNumber:   v.PartNumber,
		VideoURL:     v.VideoURL,
		NoteLink:     v.NoteLink,
		IsFree:       v.IsFree,
	}
}

func (doc videoDocument) toDomain() domain.Video {
	return domain.Video{
		ID:           doc.ID,
		SubjectID:    doc.SubjectID,
		SubjectTitle: doc.SubjectTitle,
		Title:        doc.Title,
		ChapterName:  doc.ChapterName,
		PartNumber:   doc.PartNumber,
		VideoURL:     doc.VideoURL,
		NoteLink:     doc.NoteLink,
		IsFree:       doc.IsFree,
	}
}

type rawUser struct {
	ID                string   `json:"_id"`
	Email             string   `json:"email"`
	DisplayName       string   `json:"displayName"`
	Role              string   `json:"role"`
	PurchasedSubjects []string `json:"purchasedSubjects"`
}
