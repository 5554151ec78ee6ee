package admin

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"go.uber.org/zap"

	"edustore/internal/catalog"
	"edustore/internal/domain"
	"edustore/internal/session"
)

func newTestDirectory(baseURL string) *Directory {
	cat := catalog.New(baseURL, session.StaticToken("test-token"), zap.NewNop())
	return New(cat, zap.NewNop())
}

func TestCreateVideoAssignsIDAndPutsFullDocument(t *testing.T) {
	var gotPath string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("method = %s, want PUT", r.Method)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Authorization = %q", got)
		}
		gotPath = r.URL.Path
		b, _ := io.ReadAll(r.Body)
		json.Unmarshal(b, &gotBody)
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	dir := newTestDirectory(srv.URL)
	id, err := dir.CreateVideo(context.Background(), domain.Video{
		SubjectID:    "s1",
		SubjectTitle: "Algorithms",
		Title:        "Big-O",
		ChapterName:  "Intro",
		PartNumber:   1,
		VideoURL:     "https://cdn/v1",
	})
	if err != nil {
		t.Fatalf("CreateVideo: %v", err)
	}
	if id == "" {
		t.Fatal("CreateVideo returned an empty id")
	}
	if want := "/api/admin/video/" + id; gotPath != want {
		t.Errorf("path = %q, want %q", gotPath, want)
	}

	// The store takes full documents: every field travels, set or not.
	for _, key := range []string{"subjectId", "subjectTitle", "title", "chapterName", "partNumber", "videoUrl", "isFree"} {
		if _, ok := gotBody[key]; !ok {
			t.Errorf("document missing field %q: %v", key, gotBody)
		}
	}
	if gotBody["title"] != "Big-O" || gotBody["isFree"] != false {
		t.Errorf("document = %v", gotBody)
	}
}

func TestUpdateVideoIsFullReplace(t *testing.T) {
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/api/admin/video/v1" {
			t.Errorf("got %s %s", r.Method, r.URL.Path)
		}
		b, _ := io.ReadAll(r.Body)
		json.Unmarshal(b, &gotBody)
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	dir := newTestDirectory(srv.URL)

	// Caller sends the complete record; an omitted chapter name would be
	// wiped, so it must be present too.
	err := dir.UpdateVideo(context.Background(), "v1", domain.Video{
		SubjectID:    "s1",
		SubjectTitle: "Algorithms",
		Title:        "Big-O revisited",
		ChapterName:  "Intro",
		PartNumber:   1,
		VideoURL:     "https://cdn/v1b",
	})
	if err != nil {
		t.Fatalf("UpdateVideo: %v", err)
	}
	if gotBody["_id"] != "v1" {
		t.Errorf("document _id = %v, want v1", gotBody["_id"])
	}
	if gotBody["chapterName"] != "Intro" {
		t.Errorf("unchanged field lost in replace: %v", gotBody)
	}
}

func TestMutationValidationHappensBeforeAnyCall(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	dir := newTestDirectory(srv.URL)

	testCases := []struct {
		name  string
		video domain.Video
	}{
		{"missing title", domain.Video{VideoURL: "https://cdn/v1"}},
		{"missing videoUrl", domain.Video{Title: "Big-O"}},
		{"blank title", domain.Video{Title: "   ", VideoURL: "https://cdn/v1"}},
	}

	for _, tc := range testCases {
		if _, err := dir.CreateVideo(context.Background(), tc.video); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("create %s: error = %v, want ErrValidation", tc.name, err)
		}
		if err := dir.UpdateVideo(context.Background(), "v1", tc.video); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("update %s: error = %v, want ErrValidation", tc.name, err)
		}
	}

	if n := calls.Load(); n != 0 {
		t.Errorf("invalid records reached the store %d times", n)
	}
}

func TestDeleteVideo(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	if err := newTestDirectory(srv.URL).DeleteVideo(context.Background(), "v9"); err != nil {
		t.Fatalf("DeleteVideo: %v", err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/api/admin/video/v9" {
		t.Errorf("got %s %s, want DELETE /api/admin/video/v9", gotMethod, gotPath)
	}
}

func TestMutateThenListRoundTrip(t *testing.T) {
	// In-memory store: create then list must show the record; update then
	// list must show the replacement.
	store := map[string]json.RawMessage{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPut && strings.HasPrefix(r.URL.Path, "/api/admin/video/"):
			id := strings.TrimPrefix(r.URL.Path, "/api/admin/video/")
			b, _ := io.ReadAll(r.Body)
			store[id] = b
			w.Write([]byte(`{}`))
		case r.Method == http.MethodGet && r.URL.Path == "/api/admin/videos":
			var docs []json.RawMessage
			for _, doc := range store {
				docs = append(docs, doc)
			}
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(docs)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	dir := newTestDirectory(srv.URL)
	ctx := context.Background()

	v := domain.Video{
		SubjectID:   "s1",
		Title:       "Joins",
		ChapterName: "SQL",
		PartNumber:  2,
		VideoURL:    "https://cdn/v2",
		NoteLink:    "https://cdn/n2",
	}
	id, err := dir.CreateVideo(ctx, v)
	if err != nil {
		t.Fatalf("CreateVideo: %v", err)
	}

	videos, err := dir.ListVideos(ctx)
	if err != nil {
		t.Fatalf("ListVideos: %v", err)
	}
	if len(videos) != 1 {
		t.Fatalf("got %d videos after create, want 1", len(videos))
	}
	got := videos[0]
	if got.Title != v.Title || got.NoteLink != v.NoteLink || got.PartNumber != v.PartNumber {
		t.Errorf("listed video = %+v, want fields of %+v", got, v)
	}

	v2 := v
	v2.Title = "Joins, part two"
	if err := dir.UpdateVideo(ctx, id, v2); err != nil {
		t.Fatalf("UpdateVideo: %v", err)
	}

	videos, err = dir.ListVideos(ctx)
	if err != nil {
		t.Fatalf("ListVideos after update: %v", err)
	}
	if len(videos) != 1 || videos[0].Title != "Joins, part two" {
		t.Errorf("update not visible on re-list: %+v", videos)
	}
	// Fields the edit did not touch survive because update replaces the
	// whole document with the complete record.
	if videos[0].NoteLink != "https://cdn/n2" {
		t.Errorf("untouched field lost: %+v", videos[0])
	}
}

func TestListUsers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/admin/users" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"_id": "u1", "email": "a@x.io", "displayName": "Ada",
			 "role": "user", "purchasedSubjects": ["s1", "s2"]},
			{"_id": "u2", "email": "b@x.io", "displayName": "Bob", "role": "admin"}
		]`))
	}))
	defer srv.Close()

	users, err := newTestDirectory(srv.URL).ListUsers(context.Background())
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("got %d users, want 2", len(users))
	}
	if users[0].Role != domain.RoleUser || len(users[0].PurchasedSubjects) != 2 {
		t.Errorf("users[0] = %+v", users[0])
	}
	if users[1].Role != domain.RoleAdmin {
		t.Errorf("users[1].Role = %q", users[1].Role)
	}
}

func TestSetUserRole(t *testing.T) {
	var gotPath string
	var gotBody map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("method = %s, want PUT", r.Method)
		}
		gotPath = r.URL.Path
		b, _ := io.ReadAll(r.Body)
		json.Unmarshal(b, &gotBody)
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	dir := newTestDirectory(srv.URL)
	if err := dir.SetUserRole(context.Background(), "u1", domain.RoleAdmin); err != nil {
		t.Fatalf("SetUserRole: %v", err)
	}
	if gotPath != "/api/admin/user/u1/role" {
		t.Errorf("path = %q", gotPath)
	}
	if gotBody["role"] != "admin" {
		t.Errorf("body = %v", gotBody)
	}

	if err := dir.SetUserRole(context.Background(), "u1", "owner"); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("unknown role error = %v, want ErrValidation", err)
	}
}

func TestStats(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/admin/stats" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"totalUsers": 42, "totalCourses": 3, "totalVideos": 128}`))
	}))
	defer srv.Close()

	stats, err := newTestDirectory(srv.URL).Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	want := domain.Stats{TotalUsers: 42, TotalCourses: 3, TotalVideos: 128}
	if stats != want {
		t.Errorf("stats = %+v, want %+v", stats, want)
	}
}

func TestSnapshotFetchesBoth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/admin/videos":
			w.Write([]byte(`[{"_id": "v1", "subjectId": "s1", "title": "Big-O",
				"chapterName": "Intro", "partNumber": 1, "videoUrl": "https://cdn/v1"}]`))
		case "/api/admin/subjects":
			w.Write([]byte(`[{"_id": "s1", "title": "Algorithms",
				"department": "CSE", "yearLevel": "2nd Year"}]`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	videos, subjects, err := newTestDirectory(srv.URL).Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if len(videos) != 1 || len(subjects) != 1 {
		t.Errorf("snapshot = %d videos, %d subjects, want 1 and 1", len(videos), len(subjects))
	}
}

func TestSnapshotPropagatesFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/admin/subjects" {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	_, _, err := newTestDirectory(srv.URL).Snapshot(context.Background())
	if !errors.Is(err, domain.ErrNetwork) {
		t.Errorf("error = %v, want ErrNetwork", err)
	}
}

func TestDeleteNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	err := newTestDirectory(srv.URL).DeleteVideo(context.Background(), "ghost")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}
