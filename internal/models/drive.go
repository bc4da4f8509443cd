package models

// RemoteFile represents an entry in the remote file store. Read-only from
// this application's perspective.
type RemoteFile struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	MimeType   string `json:"mime_type"`
	ParentPath string `json:"parent_path"` // path of the containing folder relative to the crawl root
	Size       int64  `json:"size,omitempty"`
}

// ExtractedDocument holds the per-file extraction result for one ingestion
// run. Ephemeral; discarded once the structuring engine consumes it.
type ExtractedDocument struct {
	File          RemoteFile `json:"file"`
	Content       string     `json:"content"`                  // text content, capped
	ImageData     string     `json:"image_data,omitempty"`     // base64 payload for inline multimodal submission
	ImageMimeType string     `json:"image_mime_type,omitempty"`
	TruncatedFrom int        `json:"truncated_from,omitempty"` // original length when Content was capped
}

// IsImage reports whether the document carries inline image data
func (d *ExtractedDocument) IsImage() bool {
	return d.ImageData != ""
}

// FolderNode is one entry in the stat-only folder tree returned for UI
// display. Folders carry children; files are leaves.
type FolderNode struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	MimeType string        `json:"mime_type"`
	Children []*FolderNode `json:"children,omitempty"`
}

// FolderTree is the stat-only listing variant: the full hierarchy plus
// file counts by coarse type.
type FolderTree struct {
	Root         *FolderNode    `json:"root"`
	FileCount    int            `json:"file_count"`
	CountsByType map[string]int `json:"counts_by_type"` // document, spreadsheet, presentation, pdf, image, text, other
}
