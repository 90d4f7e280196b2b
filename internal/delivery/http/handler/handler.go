package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/user/video-generator-service/internal/delivery/http/request"
	"github.com/user/video-generator-service/internal/delivery/http/response"
	"github.com/user/video-generator-service/internal/entity"
	"github.com/user/video-generator-service/internal/repository"
	"github.com/user/video-generator-service/internal/usecase"
)

const (
	serviceName     = "Roofing Video Generator"
	maxRequestBytes = 50 << 20
	listLimit       = 500
)

// HealthCheck reports whether a dependency is reachable.
type HealthCheck func(ctx context.Context) error

type Handler struct {
	generator usecase.VideoGenerator
	library   usecase.VideoLibrary
	port      string
	checks    map[string]HealthCheck
}

func NewHandler(generator usecase.VideoGenerator, library usecase.VideoLibrary, port string, checks map[string]HealthCheck) *Handler {
	return &Handler{
		generator: generator,
		library:   library,
		port:      port,
		checks:    checks,
	}
}

func (h *Handler) HandleGenerateVideo(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)

	var req request.GenerateVideoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.writeJSONError(w, "Request body too large", http.StatusRequestEntityTooLarge)
			return
		}
		h.writeJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.BusinessName == "" {
		h.writeJSONError(w, "business_name is required", http.StatusBadRequest)
		return
	}
	if req.HTMLContent == "" {
		h.writeJSONError(w, "html_content is required", http.StatusBadRequest)
		return
	}

	slog.Info("Starting video generation", "business", req.BusinessName, "html_bytes", len(req.HTMLContent))

	artifact, err := h.generator.Generate(r.Context(), entity.RenderRequest{
		BusinessLabel: req.BusinessName,
		HTMLDocument:  req.HTMLContent,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidRequest) {
			h.writeJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.writeJSON(w, http.StatusInternalServerError, response.ErrorResponse{
			Error:   "Video generation failed",
			Details: err.Error(),
		})
		return
	}

	resp := response.GenerateVideoResponse{
		Success:          true,
		Message:          "Video generated successfully",
		BusinessName:     req.BusinessName,
		RenderID:         artifact.RenderID,
		VideoURL:         artifact.VideoURL,
		FileName:         artifact.FileName,
		FileSize:         artifact.SizeBytes,
		FileSizeReadable: artifact.SizeReadable,
		DurationEstimate: artifact.DurationSeconds,
		SettingsUsed:     *settingsUsed(artifact.Settings),
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) HandleListVideos(w http.ResponseWriter, r *http.Request) {
	artifacts, err := h.library.List(r.Context(), listLimit)
	if err != nil {
		slog.Error("Failed to list videos", "error", err)
		h.writeJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	videos := make([]response.VideoEntry, 0, len(artifacts))
	for _, a := range artifacts {
		videos = append(videos, response.VideoEntry{
			FileName: a.FileName,
			Size:     a.SizeReadable,
			Created:  a.CreatedAt,
			URL:      a.VideoURL,
		})
	}
	h.writeJSON(w, http.StatusOK, response.VideoListResponse{Videos: videos, Total: len(videos)})
}

func (h *Handler) HandleGetVideo(w http.ResponseWriter, r *http.Request) {
	path, err := h.library.ResolveVideo(chi.URLParam(r, "filename"))
	if err != nil {
		h.writeJSONError(w, "Video not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "video/mp4")
	http.ServeFile(w, r, path)
}

func (h *Handler) HandleGetVideoInfo(w http.ResponseWriter, r *http.Request) {
	fileName := chi.URLParam(r, "filename")
	artifact, err := h.library.Video(r.Context(), fileName)
	if err != nil {
		if errors.Is(err, usecase.ErrVideoNotFound) {
			h.writeJSONError(w, "Video not found", http.StatusNotFound)
			return
		}
		slog.Error("Failed to look up video", "file", fileName, "error", err)
		h.writeJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	resp := response.VideoDetailResponse{
		VideoEntry: response.VideoEntry{
			FileName: artifact.FileName,
			Size:     artifact.SizeReadable,
			Created:  artifact.CreatedAt,
			URL:      artifact.VideoURL,
		},
		SizeBytes:       artifact.SizeBytes,
		RenderID:        artifact.RenderID,
		BusinessName:    artifact.BusinessLabel,
		DocumentTitle:   artifact.DocumentTitle,
		DurationSeconds: artifact.DurationSeconds,
	}
	if artifact.Settings.TotalFrames > 0 {
		resp.SettingsUsed = settingsUsed(artifact.Settings)
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) HandleGetRenderStatus(w http.ResponseWriter, r *http.Request) {
	renderID := chi.URLParam(r, "id")
	status, err := h.library.RenderStatus(r.Context(), renderID)
	if err != nil {
		if errors.Is(err, repository.ErrStatusNotFound) {
			h.writeJSONError(w, "Render status not found", http.StatusNotFound)
			return
		}
		slog.Error("Failed to get render status", "render_id", renderID, "error", err)
		h.writeJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	resp := response.RenderStatusResponse{
		RenderID:      status.RenderID,
		BusinessName:  status.BusinessLabel,
		State:         string(status.State),
		FileName:      status.FileName,
		FailureReason: status.FailureReason,
		UpdatedAt:     status.UpdatedAt,
	}
	if status.FileName != "" {
		resp.VideoURL = usecase.VideoURL(status.FileName)
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	resp := response.HealthResponse{
		Status:    "healthy",
		Service:   serviceName,
		Port:      h.port,
		Timestamp: time.Now().UTC(),
	}
	code := http.StatusOK
	if len(h.checks) > 0 {
		resp.Checks = make(map[string]string, len(h.checks))
	}
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			slog.Error("Health check failed", "dependency", name, "error", err)
			resp.Checks[name] = "unhealthy"
			resp.Status = "unhealthy"
			code = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[name] = "healthy"
	}
	h.writeJSON(w, code, resp)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Failed to write JSON response", "error", err)
	}
}

func (h *Handler) writeJSONError(w http.ResponseWriter, message string, status int) {
	h.writeJSON(w, status, response.ErrorResponse{Error: message})
}

func settingsUsed(s entity.EncodingSettings) *response.SettingsUsed {
	return &response.SettingsUsed{
		Width:      s.Width,
		Height:     s.Height,
		FPS:        s.FPS,
		Duration:   s.DurationSeconds,
		Frames:     s.TotalFrames,
		VideoCRF:   s.CRF,
		VideoCodec: s.Codec,
	}
}
