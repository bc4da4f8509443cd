package ingestion

import (
	"context"
	"fmt"
	"strings"

	"github.com/ternarybob/arbor"
	"golang.org/x/sync/errgroup"

	"github.com/seedplan/seedplan/internal/common"
	"github.com/seedplan/seedplan/internal/models"
	"github.com/seedplan/seedplan/internal/services/drive"
)

// Strategy selects the pipeline output mode
type Strategy string

const (
	// StrategyStructured runs list -> prioritize -> extract -> structured JSON
	StrategyStructured Strategy = "structured"
	// StrategySummary runs list -> extract all (text + images) -> free-text
	// multimodal summary
	StrategySummary Strategy = "summary"
)

// Result is the outcome of one ingestion run. Structure is set for the
// structured strategy, Summary for the summary strategy.
type Result struct {
	Structure   *models.ProjectStructure `json:"structure,omitempty"`
	Summary     string                   `json:"summary,omitempty"`
	FolderName  string                   `json:"folder_name"`
	FilesListed int                      `json:"files_listed"`
	FilesUsed   int                      `json:"files_used"`
}

// Pipeline runs the folder ingestion flow: crawl, prioritize, extract,
// structure. It never writes to the durable store; materialization is the
// caller's concern.
type Pipeline struct {
	driveService *drive.Service
	prioritizer  *Prioritizer
	structurer   *Structurer
	config       *common.IngestionConfig
	logger       arbor.ILogger
}

// NewPipeline creates an ingestion pipeline
func NewPipeline(driveService *drive.Service, structurer *Structurer, config *common.IngestionConfig, logger arbor.ILogger) *Pipeline {
	return &Pipeline{
		driveService: driveService,
		prioritizer:  NewPrioritizer(config.Keywords),
		structurer:   structurer,
		config:       config,
		logger:       logger,
	}
}

// Run executes one ingestion pass over a folder. A root listing failure
// propagates (401 -> drive.ErrReauthRequired); per-file extraction failures
// are logged and skipped. ErrEmptyResult when nothing could be extracted.
func (p *Pipeline) Run(ctx context.Context, userID, folderID, folderName string, strategy Strategy) (*Result, error) {
	client, err := p.driveService.ClientFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	files, err := client.ListAllFiles(ctx, folderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list folder %s: %w", folderID, err)
	}

	candidates := p.selectCandidates(files, strategy)

	p.logger.Info().
		Str("folder", folderName).
		Str("strategy", string(strategy)).
		Int("listed", len(files)).
		Int("candidates", len(candidates)).
		Msg("Extracting folder content")

	docs := p.extractAll(ctx, client, candidates)
	if len(docs) == 0 {
		return nil, ErrEmptyResult
	}

	result := &Result{
		FolderName:  folderName,
		FilesListed: len(files),
		FilesUsed:   len(docs),
	}

	switch strategy {
	case StrategySummary:
		summary, err := p.structurer.Summarize(ctx, docs, folderName)
		if err != nil {
			return nil, err
		}
		result.Summary = summary
	default:
		structure, err := p.structurer.Structure(ctx, docs, folderName)
		if err != nil {
			return nil, err
		}
		result.Structure = structure
	}

	return result, nil
}

// selectCandidates chooses and orders extraction candidates for the strategy,
// capped at the configured per-run file budget.
func (p *Pipeline) selectCandidates(files []models.RemoteFile, strategy Strategy) []models.RemoteFile {
	var candidates []models.RemoteFile
	switch strategy {
	case StrategySummary:
		candidates = p.summaryCandidates(files)
	default:
		candidates = p.prioritizer.Prioritize(files)
	}

	if len(candidates) > p.config.MaxFiles {
		candidates = candidates[:p.config.MaxFiles]
	}
	return candidates
}

// extractAll downloads candidate content with bounded concurrency. Failed or
// empty extractions are dropped; surviving documents keep candidate order.
func (p *Pipeline) extractAll(ctx context.Context, client *drive.Client, candidates []models.RemoteFile) []*models.ExtractedDocument {
	results := make([]*models.ExtractedDocument, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.config.ExtractConcurrency)

	for i, file := range candidates {
		g.Go(func() error {
			doc, err := client.Extract(gctx, file, p.config.MaxCharsPerFile)
			if err != nil {
				p.logger.Warn().
					Str("file", file.Name).
					Str("mime_type", file.MimeType).
					Err(err).
					Msg("Skipping file after extraction failure")
				return nil
			}
			results[i] = doc
			return nil
		})
	}
	// Workers never return errors; Wait only propagates context cancellation
	// observed by errgroup internals.
	_ = g.Wait()

	docs := make([]*models.ExtractedDocument, 0, len(results))
	for _, doc := range results {
		if doc == nil {
			continue
		}
		if doc.Content == "" && !doc.IsImage() {
			continue
		}
		docs = append(docs, doc)
	}
	return docs
}

// summaryCandidates selects files for the single-shot analysis: everything
// extractable, images included, still skipping source/config artifacts.
func (p *Pipeline) summaryCandidates(files []models.RemoteFile) []models.RemoteFile {
	var candidates []models.RemoteFile
	for _, f := range files {
		if strings.HasPrefix(f.MimeType, "image/") {
			candidates = append(candidates, f)
			continue
		}
		if p.prioritizer.excluded(f) {
			continue
		}
		if isRichDocument(f.MimeType) || f.MimeType == drive.MimeTypeSpreadsheet || isPlainText(f) {
			candidates = append(candidates, f)
		}
	}
	return candidates
}
