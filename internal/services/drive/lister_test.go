package drive

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"google.golang.org/api/option"

	"github.com/seedplan/seedplan/internal/common"
	"github.com/seedplan/seedplan/internal/interfaces"
	"github.com/seedplan/seedplan/internal/models"
)

type fakeFile struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	MimeType string `json:"mimeType"`
	Size     int64  `json:"size,string,omitempty"`
}

type fakeListPage struct {
	Files         []fakeFile `json:"files"`
	NextPageToken string     `json:"nextPageToken,omitempty"`
}

// fakeDrive serves Files.List and Files.Get(alt=media) for a fixed folder
// layout. Listings are keyed by parent folder ID and split into pages;
// folders in forbidden answer 403.
type fakeDrive struct {
	pages     map[string][][]fakeFile
	contents  map[string][]byte
	forbidden map[string]bool
}

func (f *fakeDrive) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("alt") == "media" {
			parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
			fileID := parts[len(parts)-1]
			content, ok := f.contents[fileID]
			if !ok {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			w.Write(content)
			return
		}

		folderID := parentFromQuery(r.URL.Query().Get("q"))
		if f.forbidden[folderID] {
			w.WriteHeader(http.StatusForbidden)
			fmt.Fprint(w, `{"error":{"code":403,"message":"The user does not have sufficient permissions"}}`)
			return
		}

		pages := f.pages[folderID]
		idx := 0
		if token := r.URL.Query().Get("pageToken"); token != "" {
			fmt.Sscanf(token, "page-%d", &idx)
		}

		var page fakeListPage
		if idx < len(pages) {
			page.Files = pages[idx]
		}
		if idx+1 < len(pages) {
			page.NextPageToken = fmt.Sprintf("page-%d", idx+1)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(page)
	}
}

// parentFromQuery pulls the folder ID out of a "'<id>' in parents" query
func parentFromQuery(q string) string {
	parts := strings.SplitN(q, "'", 3)
	if len(parts) < 3 {
		return ""
	}
	return parts[1]
}

type stubAuthStorage struct {
	cred *models.DriveCredential
	err  error
}

func (s *stubAuthStorage) SaveSession(ctx context.Context, session *models.Session) error {
	return nil
}

func (s *stubAuthStorage) GetSession(ctx context.Context, token string) (*models.Session, error) {
	return nil, interfaces.ErrNotFound
}

func (s *stubAuthStorage) DeleteSession(ctx context.Context, token string) error { return nil }

func (s *stubAuthStorage) SaveDriveCredential(ctx context.Context, cred *models.DriveCredential) error {
	return nil
}

func (s *stubAuthStorage) GetDriveCredential(ctx context.Context, userID string) (*models.DriveCredential, error) {
	return s.cred, s.err
}

func (s *stubAuthStorage) DeleteDriveCredential(ctx context.Context, userID string) error {
	return nil
}

func validCredential() *models.DriveCredential {
	return &models.DriveCredential{
		UserID:      "user-1",
		AccessToken: "ya29.test",
		TokenType:   "Bearer",
		Expiry:      time.Now().Add(time.Hour),
	}
}

func newTestClient(t *testing.T, fake *fakeDrive, maxDepth int) *Client {
	t.Helper()

	srv := httptest.NewServer(fake.handler())
	t.Cleanup(srv.Close)

	cfg := &common.DriveConfig{
		RequestsPerSecond: 1000,
		Burst:             100,
		PageSize:          100,
		MaxPages:          50,
		MaxDepth:          maxDepth,
	}
	svc := NewService(&stubAuthStorage{cred: validCredential()}, cfg, common.GetLogger(),
		option.WithEndpoint(srv.URL))

	client, err := svc.ClientFor(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Failed to build drive client: %v", err)
	}
	return client
}

func TestListFolderPaginates(t *testing.T) {
	fake := &fakeDrive{
		pages: map[string][][]fakeFile{
			"root": {
				{{ID: "f1", Name: "Business_Plan.pdf", MimeType: "application/pdf"}},
				{{ID: "f2", Name: "Budget.xlsx", MimeType: MimeTypeSpreadsheet},
					{ID: "f3", Name: "Research", MimeType: MimeTypeFolder}},
			},
		},
	}
	client := newTestClient(t, fake, 10)

	files, err := client.ListFolder(context.Background(), "root")
	if err != nil {
		t.Fatalf("ListFolder failed: %v", err)
	}
	if len(files) != 3 {
		t.Fatalf("Expected 3 entries across pages, got %d", len(files))
	}

	seen := make(map[string]bool)
	for _, f := range files {
		if seen[f.ID] {
			t.Errorf("Duplicate file %s in listing", f.ID)
		}
		seen[f.ID] = true
	}
	if !seen["f1"] || !seen["f2"] || !seen["f3"] {
		t.Errorf("Listing missing entries: %v", files)
	}
}

func TestListAllFilesWalksNestedFolders(t *testing.T) {
	fake := &fakeDrive{
		pages: map[string][][]fakeFile{
			"root": {{
				{ID: "doc1", Name: "Pitch.pdf", MimeType: "application/pdf"},
				{ID: "sub", Name: "Research", MimeType: MimeTypeFolder},
			}},
			"sub": {{
				{ID: "doc2", Name: "Interviews.txt", MimeType: "text/plain"},
			}},
		},
	}
	client := newTestClient(t, fake, 10)

	files, err := client.ListAllFiles(context.Background(), "root")
	if err != nil {
		t.Fatalf("ListAllFiles failed: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("Expected 2 files, got %d: %v", len(files), files)
	}

	byID := make(map[string]models.RemoteFile)
	for _, f := range files {
		byID[f.ID] = f
	}
	if byID["doc1"].ParentPath != "" {
		t.Errorf("Root file should have empty parent path, got %q", byID["doc1"].ParentPath)
	}
	if byID["doc2"].ParentPath != "Research" {
		t.Errorf("Nested file should carry folder path, got %q", byID["doc2"].ParentPath)
	}
}

func TestListAllFilesSkipsUnreadableSubfolder(t *testing.T) {
	fake := &fakeDrive{
		pages: map[string][][]fakeFile{
			"root": {{
				{ID: "doc1", Name: "Plan.pdf", MimeType: "application/pdf"},
				{ID: "locked", Name: "Private", MimeType: MimeTypeFolder},
			}},
		},
		forbidden: map[string]bool{"locked": true},
	}
	client := newTestClient(t, fake, 10)

	files, err := client.ListAllFiles(context.Background(), "root")
	if err != nil {
		t.Fatalf("Unreadable subfolder must not abort the crawl: %v", err)
	}
	if len(files) != 1 || files[0].ID != "doc1" {
		t.Errorf("Expected readable files to survive, got %v", files)
	}
}

func TestListAllFilesRootFailurePropagates(t *testing.T) {
	fake := &fakeDrive{
		forbidden: map[string]bool{"root": true},
	}
	client := newTestClient(t, fake, 10)

	_, err := client.ListAllFiles(context.Background(), "root")
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("Expected ErrForbidden on root failure, got %v", err)
	}
}

func TestListAllFilesDepthGuard(t *testing.T) {
	fake := &fakeDrive{
		pages: map[string][][]fakeFile{
			"root": {{
				{ID: "sub", Name: "Level1", MimeType: MimeTypeFolder},
			}},
			"sub": {{
				{ID: "doc1", Name: "Kept.txt", MimeType: "text/plain"},
				{ID: "subsub", Name: "Level2", MimeType: MimeTypeFolder},
			}},
			"subsub": {{
				{ID: "doc2", Name: "TooDeep.txt", MimeType: "text/plain"},
			}},
		},
	}
	client := newTestClient(t, fake, 1)

	files, err := client.ListAllFiles(context.Background(), "root")
	if err != nil {
		t.Fatalf("ListAllFiles failed: %v", err)
	}
	if len(files) != 1 || files[0].ID != "doc1" {
		t.Errorf("Expected only the file within the depth guard, got %v", files)
	}
}

func TestListTreeSkipsUnreadableSubfolder(t *testing.T) {
	fake := &fakeDrive{
		pages: map[string][][]fakeFile{
			"root": {{
				{ID: "doc1", Name: "Plan.pdf", MimeType: "application/pdf"},
				{ID: "locked", Name: "Private", MimeType: MimeTypeFolder},
				{ID: "sub", Name: "Research", MimeType: MimeTypeFolder},
			}},
			"sub": {{
				{ID: "doc2", Name: "Notes.txt", MimeType: "text/plain"},
			}},
		},
		forbidden: map[string]bool{"locked": true},
	}
	client := newTestClient(t, fake, 10)

	tree, err := client.ListTree(context.Background(), "root", "My Folder")
	if err != nil {
		t.Fatalf("Unreadable subfolder must not abort the tree walk: %v", err)
	}
	if tree.FileCount != 2 {
		t.Errorf("Expected 2 files counted, got %d", tree.FileCount)
	}
	if tree.CountsByType["pdf"] != 1 || tree.CountsByType["text"] != 1 {
		t.Errorf("Unexpected type counts: %v", tree.CountsByType)
	}
	if len(tree.Root.Children) != 3 {
		t.Errorf("Expected all root children recorded, got %d", len(tree.Root.Children))
	}
}
