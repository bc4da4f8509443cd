package drive

import (
	"context"
	"fmt"
	"path"
	"strings"

	"google.golang.org/api/drive/v3"

	"github.com/seedplan/seedplan/internal/models"
)

// listPage fetches one page of children for a folder, honoring the shared
// rate limiter.
func (c *Client) listPage(ctx context.Context, folderID, pageToken string) (*drive.FileList, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	resp, err := c.svc.Files.List().
		Q(fmt.Sprintf("'%s' in parents and trashed = false", folderID)).
		Fields("nextPageToken, files(id, name, mimeType, size)").
		PageSize(c.config.PageSize).
		PageToken(pageToken).
		Context(ctx).
		Do()
	if err != nil {
		if IsRateLimited(err) {
			c.limiter.RecordRateLimitError(0)
		}
		return nil, WrapError(err)
	}
	return resp, nil
}

// ListFolder returns the immediate children of a folder, folders included.
func (c *Client) ListFolder(ctx context.Context, folderID string) ([]models.RemoteFile, error) {
	var files []models.RemoteFile
	pageToken := ""
	pages := 0

	for {
		resp, err := c.listPage(ctx, folderID, pageToken)
		if err != nil {
			return nil, err
		}

		for _, f := range resp.Files {
			files = append(files, models.RemoteFile{
				ID:       f.Id,
				Name:     f.Name,
				MimeType: f.MimeType,
				Size:     f.Size,
			})
		}

		pages++
		if resp.NextPageToken == "" || pages >= c.config.MaxPages {
			break
		}
		pageToken = resp.NextPageToken
	}

	return files, nil
}

type folderEntry struct {
	id    string
	path  string
	depth int
}

// ListAllFiles walks a folder hierarchy breadth-first and returns every
// non-folder file with its path relative to the crawl root. Depth and total
// page guards bound the crawl on pathological trees. A listing failure on the
// root folder propagates; a failure on a descendant drops that subtree only.
func (c *Client) ListAllFiles(ctx context.Context, folderID string) ([]models.RemoteFile, error) {
	var files []models.RemoteFile
	worklist := []folderEntry{{id: folderID, path: "", depth: 0}}
	totalPages := 0

	for len(worklist) > 0 {
		entry := worklist[0]
		worklist = worklist[1:]

		if entry.depth > c.config.MaxDepth {
			c.logger.Warn().
				Str("folder_id", entry.id).
				Int("depth", entry.depth).
				Msg("Skipping folder beyond max depth")
			continue
		}

		pageToken := ""
		for {
			resp, err := c.listPage(ctx, entry.id, pageToken)
			if err != nil {
				if entry.depth == 0 {
					return nil, err
				}
				c.logger.Warn().
					Str("folder_id", entry.id).
					Str("path", entry.path).
					Err(err).
					Msg("Skipping unreadable subfolder")
				break
			}

			for _, f := range resp.Files {
				if f.MimeType == MimeTypeFolder {
					worklist = append(worklist, folderEntry{
						id:    f.Id,
						path:  path.Join(entry.path, f.Name),
						depth: entry.depth + 1,
					})
					continue
				}
				files = append(files, models.RemoteFile{
					ID:         f.Id,
					Name:       f.Name,
					MimeType:   f.MimeType,
					ParentPath: entry.path,
					Size:       f.Size,
				})
			}

			totalPages++
			if totalPages >= c.config.MaxPages {
				c.logger.Warn().
					Int("pages", totalPages).
					Int("files", len(files)).
					Msg("Folder crawl hit page guard, returning partial listing")
				return files, nil
			}
			if resp.NextPageToken == "" {
				break
			}
			pageToken = resp.NextPageToken
		}
	}

	return files, nil
}

// ListTree walks a folder hierarchy and returns the full structure with file
// counts by coarse type, without downloading any content. Like ListAllFiles,
// only a root listing failure propagates; unreadable subtrees are skipped.
func (c *Client) ListTree(ctx context.Context, folderID, folderName string) (*models.FolderTree, error) {
	tree := &models.FolderTree{
		Root: &models.FolderNode{
			ID:       folderID,
			Name:     folderName,
			MimeType: MimeTypeFolder,
		},
		CountsByType: make(map[string]int),
	}

	type nodeEntry struct {
		node  *models.FolderNode
		depth int
	}
	worklist := []nodeEntry{{node: tree.Root, depth: 0}}
	totalPages := 0

	for len(worklist) > 0 {
		entry := worklist[0]
		worklist = worklist[1:]

		if entry.depth > c.config.MaxDepth {
			continue
		}

		pageToken := ""
		for {
			resp, err := c.listPage(ctx, entry.node.ID, pageToken)
			if err != nil {
				if entry.depth == 0 {
					return nil, err
				}
				c.logger.Warn().
					Str("folder_id", entry.node.ID).
					Str("name", entry.node.Name).
					Err(err).
					Msg("Skipping unreadable subfolder")
				break
			}

			for _, f := range resp.Files {
				child := &models.FolderNode{
					ID:       f.Id,
					Name:     f.Name,
					MimeType: f.MimeType,
				}
				entry.node.Children = append(entry.node.Children, child)

				if f.MimeType == MimeTypeFolder {
					worklist = append(worklist, nodeEntry{node: child, depth: entry.depth + 1})
					continue
				}
				tree.FileCount++
				tree.CountsByType[ClassifyMimeType(f.MimeType)]++
			}

			totalPages++
			if totalPages >= c.config.MaxPages {
				return tree, nil
			}
			if resp.NextPageToken == "" {
				break
			}
			pageToken = resp.NextPageToken
		}
	}

	return tree, nil
}

// ClassifyMimeType maps a MIME type to a coarse display category.
func ClassifyMimeType(mimeType string) string {
	switch {
	case mimeType == MimeTypeDocument:
		return "document"
	case mimeType == MimeTypeSpreadsheet:
		return "spreadsheet"
	case mimeType == MimeTypePresentation:
		return "presentation"
	case mimeType == "application/pdf":
		return "pdf"
	case strings.HasPrefix(mimeType, "image/"):
		return "image"
	case strings.HasPrefix(mimeType, "text/"):
		return "text"
	default:
		return "other"
	}
}
