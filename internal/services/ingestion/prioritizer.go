package ingestion

import (
	"strings"

	"github.com/seedplan/seedplan/internal/models"
	"github.com/seedplan/seedplan/internal/services/drive"
)

// defaultKeywords is the built-in business-keyword vocabulary used to rank
// candidate files by name. English plus Spanish equivalents; overridable via
// the [ingestion] keywords config setting.
var defaultKeywords = []string{
	// English
	"plan", "proposal", "analysis", "roadmap", "strategy", "budget",
	"model", "pitch", "summary", "requirements", "scope", "timeline",
	"milestones", "competitor", "market", "customer", "persona",
	"business", "revenue", "costs", "pricing",
	// Spanish
	"propuesta", "analisis", "análisis", "estrategia", "presupuesto",
	"modelo", "resumen", "requisitos", "alcance", "cronograma", "hitos",
	"competencia", "mercado", "cliente", "negocio", "ingresos", "costos",
	"precios",
}

// excludedExtensions marks source-code, style, and build-artifact file
// extensions that never carry business content.
var excludedExtensions = []string{
	".js", ".jsx", ".ts", ".tsx", ".mjs", ".cjs",
	".css", ".scss", ".sass", ".less",
	".html", ".htm", ".xml", ".svg",
	".go", ".py", ".java", ".c", ".cpp", ".h", ".rb", ".php", ".rs", ".swift", ".kt",
	".sh", ".bash", ".ps1", ".bat",
	".yml", ".yaml", ".toml", ".ini", ".cfg", ".conf",
	".lock", ".log", ".map",
	".zip", ".tar", ".gz", ".rar", ".7z",
	".exe", ".dll", ".so", ".dylib", ".bin",
}

// excludedFileNames marks dependency manifests and tool configs (exact
// lowercase match).
var excludedFileNames = map[string]bool{
	"package.json":      true,
	"package-lock.json": true,
	"yarn.lock":         true,
	"pnpm-lock.yaml":    true,
	"tsconfig.json":     true,
	"jsconfig.json":     true,
	"dockerfile":        true,
	"docker-compose.yml": true,
	"makefile":          true,
	".env":              true,
	".gitignore":        true,
	".gitattributes":    true,
}

// excludedNamePrefixes marks tool config families matched by prefix
var excludedNamePrefixes = []string{
	"webpack.config", "vite.config", "babel.config", "rollup.config",
	".eslintrc", ".prettierrc", ".env.",
}

// excludedDirs marks version-control, dependency, and framework cache
// directory names. Files under these path segments are excluded.
var excludedDirs = map[string]bool{
	"node_modules": true,
	".git":         true,
	".svn":         true,
	"dist":         true,
	"build":        true,
	"out":          true,
	"target":       true,
	"vendor":       true,
	"__pycache__":  true,
	".next":        true,
	".nuxt":        true,
	".cache":       true,
}

// Prioritizer filters and orders candidate files before expensive
// extraction and LLM calls. Pure; no I/O.
type Prioritizer struct {
	keywords []string
}

// NewPrioritizer creates a prioritizer. An empty keyword list selects the
// built-in vocabulary.
func NewPrioritizer(keywords []string) *Prioritizer {
	if len(keywords) == 0 {
		keywords = defaultKeywords
	}
	lowered := make([]string, len(keywords))
	for i, kw := range keywords {
		lowered[i] = strings.ToLower(kw)
	}
	return &Prioritizer{keywords: lowered}
}

// Prioritize returns eligible files ordered high -> medium -> low tier.
// Relative order within a tier matches input order. Folders, media, and
// source/config/build-artifact names are excluded entirely.
func (p *Prioritizer) Prioritize(files []models.RemoteFile) []models.RemoteFile {
	var high, medium, low []models.RemoteFile

	for _, f := range files {
		if p.excluded(f) {
			continue
		}

		switch {
		case isRichDocument(f.MimeType) && p.nameHasKeyword(f.Name):
			high = append(high, f)
		case isRichDocument(f.MimeType) || f.MimeType == drive.MimeTypeSpreadsheet:
			medium = append(medium, f)
		case isPlainText(f):
			low = append(low, f)
		}
	}

	ordered := make([]models.RemoteFile, 0, len(high)+len(medium)+len(low))
	ordered = append(ordered, high...)
	ordered = append(ordered, medium...)
	ordered = append(ordered, low...)
	return ordered
}

// excluded reports whether a file is hard-excluded from prioritization
func (p *Prioritizer) excluded(f models.RemoteFile) bool {
	if f.MimeType == drive.MimeTypeFolder {
		return true
	}
	if strings.HasPrefix(f.MimeType, "image/") ||
		strings.HasPrefix(f.MimeType, "video/") ||
		strings.HasPrefix(f.MimeType, "audio/") {
		return true
	}

	name := strings.ToLower(f.Name)
	if excludedFileNames[name] {
		return true
	}
	for _, prefix := range excludedNamePrefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	for _, ext := range excludedExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}

	for _, segment := range strings.Split(f.ParentPath, "/") {
		if excludedDirs[strings.ToLower(segment)] {
			return true
		}
	}
	return false
}

// nameHasKeyword reports whether a filename contains a business keyword
func (p *Prioritizer) nameHasKeyword(name string) bool {
	name = strings.ToLower(name)
	for _, kw := range p.keywords {
		if strings.Contains(name, kw) {
			return true
		}
	}
	return false
}

// isRichDocument reports whether the MIME type is a document, PDF, or
// presentation format (high/medium tier candidates).
func isRichDocument(mimeType string) bool {
	return mimeType == drive.MimeTypeDocument ||
		mimeType == drive.MimeTypePresentation ||
		mimeType == "application/pdf"
}

// isPlainText reports whether the file is a plain-text or markdown candidate
func isPlainText(f models.RemoteFile) bool {
	if strings.HasPrefix(f.MimeType, "text/") {
		return true
	}
	name := strings.ToLower(f.Name)
	return strings.HasSuffix(name, ".md") || strings.HasSuffix(name, ".txt")
}
