package drive

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/seedplan/seedplan/internal/models"
)

// maxImageBytes bounds inline image downloads. Larger images are skipped
// rather than ballooning the multimodal prompt.
const maxImageBytes = 8 << 20

// Extract downloads and converts one file's content into an ExtractedDocument.
// Google Workspace files are exported to plain formats, PDFs go through text
// extraction, images are inlined as base64. Text content longer than maxChars
// is truncated with the original length recorded.
func (c *Client) Extract(ctx context.Context, file models.RemoteFile, maxChars int) (*models.ExtractedDocument, error) {
	doc := &models.ExtractedDocument{File: file}

	switch {
	case file.MimeType == MimeTypeDocument:
		content, err := c.exportFile(ctx, file.ID, "text/plain")
		if err != nil {
			return nil, err
		}
		doc.Content = string(content)

	case file.MimeType == MimeTypeSpreadsheet:
		content, err := c.exportFile(ctx, file.ID, "text/csv")
		if err != nil {
			return nil, err
		}
		doc.Content = string(content)

	case file.MimeType == MimeTypePresentation:
		content, err := c.exportFile(ctx, file.ID, "text/plain")
		if err != nil {
			return nil, err
		}
		doc.Content = string(content)

	case file.MimeType == "application/pdf":
		data, err := c.downloadFile(ctx, file.ID)
		if err != nil {
			return nil, err
		}
		text, err := extractPDFText(data)
		if err != nil {
			return nil, fmt.Errorf("failed to extract PDF text from %s: %w", file.Name, err)
		}
		doc.Content = text

	case strings.HasPrefix(file.MimeType, "image/"):
		if file.Size > maxImageBytes {
			return nil, fmt.Errorf("image %s exceeds inline size limit (%d bytes)", file.Name, file.Size)
		}
		data, err := c.downloadFile(ctx, file.ID)
		if err != nil {
			return nil, err
		}
		doc.ImageData = base64.StdEncoding.EncodeToString(data)
		doc.ImageMimeType = file.MimeType

	case strings.HasPrefix(file.MimeType, "text/"):
		data, err := c.downloadFile(ctx, file.ID)
		if err != nil {
			return nil, err
		}
		doc.Content = string(data)

	default:
		return nil, fmt.Errorf("unsupported mime type %s for %s", file.MimeType, file.Name)
	}

	if text, from := truncateContent(doc.Content, maxChars); from > 0 {
		doc.Content = text
		doc.TruncatedFrom = from
	}

	return doc, nil
}

// truncateContent caps text content at maxChars bytes, backing off to a rune
// boundary so truncation never produces invalid UTF-8. Returns the possibly
// shortened text and the original length when truncated (0 otherwise).
func truncateContent(content string, maxChars int) (string, int) {
	if maxChars <= 0 || len(content) <= maxChars {
		return content, 0
	}
	cut := maxChars
	for cut > 0 && !utf8.RuneStart(content[cut]) {
		cut--
	}
	return content[:cut], len(content)
}

// exportFile exports a Google Workspace file to the given target format
func (c *Client) exportFile(ctx context.Context, fileID, mimeType string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	resp, err := c.svc.Files.Export(fileID, mimeType).Context(ctx).Download()
	if err != nil {
		if IsRateLimited(err) {
			c.limiter.RecordRateLimitError(0)
		}
		return nil, WrapError(err)
	}
	return readBody(resp)
}

// downloadFile downloads raw file content
func (c *Client) downloadFile(ctx context.Context, fileID string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	resp, err := c.svc.Files.Get(fileID).Context(ctx).Download()
	if err != nil {
		if IsRateLimited(err) {
			c.limiter.RecordRateLimitError(0)
		}
		return nil, WrapError(err)
	}
	return readBody(resp)
}

func readBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return data, nil
}

// extractPDFText extracts text from PDF bytes using pdfcpu. The library works
// on files, so content goes through a per-call temp directory.
func extractPDFText(pdfContent []byte) (string, error) {
	tempDir := filepath.Join(os.TempDir(), "seedplan-pdf", uuid.New().String())
	if err := os.MkdirAll(tempDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	tempFile := filepath.Join(tempDir, "extract.pdf")
	if err := os.WriteFile(tempFile, pdfContent, 0644); err != nil {
		return "", fmt.Errorf("failed to write temp PDF file: %w", err)
	}

	conf := model.NewDefaultConfiguration()
	pdfCtx, err := api.ReadContextFile(tempFile)
	if err != nil {
		return "", fmt.Errorf("failed to read PDF context: %w", err)
	}
	pageCount := pdfCtx.PageCount

	outDir := filepath.Join(tempDir, "pages")
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output dir: %w", err)
	}

	if err := api.ExtractContentFile(tempFile, outDir, nil, conf); err != nil {
		return "", fmt.Errorf("failed to extract PDF content: %w", err)
	}

	// Read extracted per-page content files
	files, _ := os.ReadDir(outDir)
	pageTexts := make(map[int]string)
	for _, file := range files {
		if file.IsDir() {
			continue
		}
		content, err := os.ReadFile(filepath.Join(outDir, file.Name()))
		if err != nil {
			continue
		}
		var pageNum int
		if _, err := fmt.Sscanf(file.Name(), "Content_page_%d", &pageNum); err == nil {
			pageTexts[pageNum] = string(content)
		} else if _, err := fmt.Sscanf(file.Name(), "page_%d", &pageNum); err == nil {
			pageTexts[pageNum] = string(content)
		}
	}

	var fullText strings.Builder
	for pageNum := 1; pageNum <= pageCount; pageNum++ {
		text, ok := pageTexts[pageNum]
		if !ok || text == "" {
			continue
		}
		if fullText.Len() > 0 {
			fullText.WriteString("\n\n")
		}
		fullText.WriteString(text)
	}

	return fullText.String(), nil
}
