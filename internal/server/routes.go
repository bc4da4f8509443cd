package server

import (
	"net/http"
	"strings"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// API routes - Authentication and Drive credentials
	mux.HandleFunc("/api/auth/session", s.app.AuthHandler.SessionHandler) // POST - issue session token
	mux.HandleFunc("/api/auth/google", s.app.AuthHandler.GoogleHandler)   // GET/POST/DELETE - Drive credential

	// API routes - Projects
	mux.HandleFunc("/api/projects/stats", s.app.ProjectHandler.StatsHandler)
	mux.HandleFunc("/api/projects", s.handleProjectsRoute)
	mux.HandleFunc("/api/projects/", s.handleProjectRoutes) // Handles /api/projects/{id} and subpaths

	// API routes - Workspace records addressed by their own ID
	mux.HandleFunc("/api/notes/", s.handleNoteRoutes)
	mux.HandleFunc("/api/links/", s.handleLinkRoutes)
	mux.HandleFunc("/api/images/", s.handleImageRoutes)
	mux.HandleFunc("/api/milestones/", s.handleMilestoneRoutes)

	// API routes - Google Drive browsing and ingestion
	mux.HandleFunc("/api/drive/folders", s.app.DriveHandler.FoldersHandler)
	mux.HandleFunc("/api/drive/tree", s.app.DriveHandler.TreeHandler)
	mux.HandleFunc("/api/drive/preview", s.app.DriveHandler.PreviewHandler)
	mux.HandleFunc("/api/drive/import", s.app.DriveHandler.ImportHandler)
	mux.HandleFunc("/api/drive/analyze", s.app.DriveHandler.AnalyzeHandler)

	// API routes - Chat assistant
	mux.HandleFunc("/api/chat", s.app.ChatHandler.ChatHandler)

	// API routes - System
	mux.HandleFunc("/api/version", s.app.APIHandler.VersionHandler)
	mux.HandleFunc("/api/health", s.app.APIHandler.HealthHandler)

	// 404 handler for unmatched API routes
	mux.HandleFunc("/api/", s.app.APIHandler.NotFoundHandler)

	return mux
}

// handleProjectsRoute routes the project collection endpoint
func (s *Server) handleProjectsRoute(w http.ResponseWriter, r *http.Request) {
	RouteResourceCollection(w, r, s.app.ProjectHandler.ListHandler, s.app.ProjectHandler.CreateHandler)
}

// handleProjectRoutes routes /api/projects/{id} and its subresources
func (s *Server) handleProjectRoutes(w http.ResponseWriter, r *http.Request) {
	projectID, sub := splitResourcePath(r.URL.Path, "/api/projects/")
	if projectID == "" {
		s.app.APIHandler.NotFoundHandler(w, r)
		return
	}

	switch sub {
	case "":
		RouteResourceItem(w, r, projectID,
			s.app.ProjectHandler.GetHandler,
			s.app.ProjectHandler.UpdateHandler,
			s.app.ProjectHandler.DeleteHandler)
	case "notes":
		s.routeProjectCollection(w, r, projectID,
			s.app.WorkspaceHandler.ListNotesHandler,
			s.app.WorkspaceHandler.CreateNoteHandler)
	case "links":
		s.routeProjectCollection(w, r, projectID,
			s.app.WorkspaceHandler.ListLinksHandler,
			s.app.WorkspaceHandler.CreateLinkHandler)
	case "images":
		s.routeProjectCollection(w, r, projectID,
			s.app.WorkspaceHandler.ListImagesHandler,
			s.app.WorkspaceHandler.CreateImageHandler)
	case "milestones":
		s.routeProjectCollection(w, r, projectID,
			s.app.WorkspaceHandler.ListMilestonesHandler,
			s.app.WorkspaceHandler.CreateMilestoneHandler)
	case "analysis":
		s.app.AnalysisHandler.AnalyzeHandler(w, r, projectID)
	case "document":
		s.app.DocumentHandler.GenerateHandler(w, r, projectID)
	default:
		s.app.APIHandler.NotFoundHandler(w, r)
	}
}

// routeProjectCollection dispatches list/create on a project subresource
func (s *Server) routeProjectCollection(w http.ResponseWriter, r *http.Request, projectID string, list, create IDRouteHandler) {
	switch r.Method {
	case "GET":
		list(w, r, projectID)
	case "POST":
		create(w, r, projectID)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleNoteRoutes routes /api/notes/{id}
func (s *Server) handleNoteRoutes(w http.ResponseWriter, r *http.Request) {
	noteID, sub := splitResourcePath(r.URL.Path, "/api/notes/")
	if noteID == "" || sub != "" {
		s.app.APIHandler.NotFoundHandler(w, r)
		return
	}
	RouteResourceItem(w, r, noteID, nil,
		s.app.WorkspaceHandler.UpdateNoteHandler,
		s.app.WorkspaceHandler.DeleteNoteHandler)
}

// handleLinkRoutes routes /api/links/{id}
func (s *Server) handleLinkRoutes(w http.ResponseWriter, r *http.Request) {
	linkID, sub := splitResourcePath(r.URL.Path, "/api/links/")
	if linkID == "" || sub != "" {
		s.app.APIHandler.NotFoundHandler(w, r)
		return
	}
	RouteResourceItem(w, r, linkID, nil, nil, s.app.WorkspaceHandler.DeleteLinkHandler)
}

// handleImageRoutes routes /api/images/{id}
func (s *Server) handleImageRoutes(w http.ResponseWriter, r *http.Request) {
	imageID, sub := splitResourcePath(r.URL.Path, "/api/images/")
	if imageID == "" || sub != "" {
		s.app.APIHandler.NotFoundHandler(w, r)
		return
	}
	RouteResourceItem(w, r, imageID, nil, nil, s.app.WorkspaceHandler.DeleteImageHandler)
}

// handleMilestoneRoutes routes /api/milestones/{id}
func (s *Server) handleMilestoneRoutes(w http.ResponseWriter, r *http.Request) {
	milestoneID, sub := splitResourcePath(r.URL.Path, "/api/milestones/")
	if milestoneID == "" || sub != "" {
		s.app.APIHandler.NotFoundHandler(w, r)
		return
	}
	RouteResourceItem(w, r, milestoneID, nil,
		s.app.WorkspaceHandler.UpdateMilestoneHandler,
		s.app.WorkspaceHandler.DeleteMilestoneHandler)
}

// splitResourcePath splits "/api/projects/{id}/notes" after the prefix into
// the resource ID and the first subresource segment. Trailing slashes are
// ignored; anything past the subresource makes the path invalid.
func splitResourcePath(path, prefix string) (id, sub string) {
	rest := strings.Trim(strings.TrimPrefix(path, prefix), "/")
	if rest == "" {
		return "", ""
	}
	parts := strings.SplitN(rest, "/", 3)
	if len(parts) >= 3 {
		return "", ""
	}
	id = parts[0]
	if len(parts) == 2 {
		sub = parts[1]
	}
	return id, sub
}
