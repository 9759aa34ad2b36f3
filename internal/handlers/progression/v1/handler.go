// Package v1 exposes the progression service over HTTP.
package v1

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sagaforge/progression-api/internal/engine"
	"github.com/sagaforge/progression-api/internal/entities/saga"
	"github.com/sagaforge/progression-api/internal/errors"
	"github.com/sagaforge/progression-api/internal/services/progression"
)

// HandlerConfig contains configuration for creating a new Handler.
type HandlerConfig struct {
	Service progression.Service
}

// Validate checks that all required dependencies are provided.
func (c *HandlerConfig) Validate() error {
	if c.Service == nil {
		return errors.InvalidArgument("service is required")
	}
	return nil
}

// Handler translates HTTP requests into service calls.
type Handler struct {
	service progression.Service
}

// NewHandler creates a new progression HTTP handler.
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Handler{service: cfg.Service}, nil
}

// RegisterRoutes mounts the v1 API onto the router.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.health)

	chars := r.Group("/v1/characters/:id")
	chars.POST("/suggestions/features", h.suggestFeatures)
	chars.POST("/suggestions/classes", h.suggestClasses)
	chars.GET("/build-intent", h.getBuildIntent)
	chars.DELETE("/build-intent", h.invalidateIntent)
	chars.GET("/synergies", h.listSynergies)
	chars.POST("/prerequisites/check", h.checkPrerequisites)
	chars.POST("/sessions", h.startSession)
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// suggestFeaturesRequest is the body for feature suggestions.
type suggestFeaturesRequest struct {
	Pending       *saga.PendingSelections `json:"pending,omitempty"`
	Candidates    []string                `json:"candidates,omitempty"`
	IncludeFuture bool                    `json:"include_future,omitempty"`
}

func (h *Handler) suggestFeatures(c *gin.Context) {
	var req suggestFeaturesRequest
	// Empty bodies are fine; every field is optional
	if err := c.ShouldBindJSON(&req); err != nil && err != io.EOF {
		respondError(c, errors.InvalidArgumentf("invalid request body: %v", err))
		return
	}

	out, err := h.service.SuggestFeatures(c.Request.Context(), &progression.SuggestFeaturesInput{
		CharacterID:   c.Param("id"),
		Pending:       req.Pending,
		Candidates:    req.Candidates,
		IncludeFuture: req.IncludeFuture,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"suggestions": out.Suggestions,
		"future":      out.Future,
		"intent":      out.Intent,
	})
}

// suggestClassesRequest is the body for class suggestions.
type suggestClassesRequest struct {
	Pending    *saga.PendingSelections `json:"pending,omitempty"`
	Candidates []string                `json:"candidates,omitempty"`
}

func (h *Handler) suggestClasses(c *gin.Context) {
	var req suggestClassesRequest
	if err := c.ShouldBindJSON(&req); err != nil && err != io.EOF {
		respondError(c, errors.InvalidArgumentf("invalid request body: %v", err))
		return
	}

	out, err := h.service.SuggestClasses(c.Request.Context(), &progression.SuggestClassesInput{
		CharacterID: c.Param("id"),
		Pending:     req.Pending,
		Candidates:  req.Candidates,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"suggestions": out.Suggestions,
		"intent":      out.Intent,
	})
}

func (h *Handler) getBuildIntent(c *gin.Context) {
	out, err := h.service.AnalyzeBuildIntent(c.Request.Context(), &progression.AnalyzeBuildIntentInput{
		CharacterID: c.Param("id"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"intent": out.Intent,
		"cached": out.Cached,
	})
}

func (h *Handler) invalidateIntent(c *gin.Context) {
	out, err := h.service.InvalidateIntent(c.Request.Context(), &progression.InvalidateIntentInput{
		CharacterID: c.Param("id"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"dropped": out.Dropped})
}

// synergyResponse flattens an active synergy for transport.
type synergyResponse struct {
	ID        string             `json:"id"`
	Archetype string             `json:"archetype,omitempty"`
	Priority  string             `json:"priority"`
	FollowUps []followUpResponse `json:"follow_ups"`
}

type followUpResponse struct {
	Name   string `json:"name"`
	Kind   string `json:"kind"`
	Reason string `json:"reason,omitempty"`
}

func (h *Handler) listSynergies(c *gin.Context) {
	out, err := h.service.ListActiveSynergies(c.Request.Context(), &progression.ListActiveSynergiesInput{
		CharacterID: c.Param("id"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"active": toSynergyResponses(out.Active)})
}

func toSynergyResponses(active []engine.ActiveSynergy) []synergyResponse {
	resp := make([]synergyResponse, 0, len(active))
	for _, syn := range active {
		followUps := make([]followUpResponse, 0, len(syn.FollowUps))
		for _, f := range syn.FollowUps {
			followUps = append(followUps, followUpResponse{
				Name:   f.Name,
				Kind:   string(f.Kind),
				Reason: f.Reason,
			})
		}
		resp = append(resp, synergyResponse{
			ID:        syn.ID,
			Archetype: syn.Archetype,
			Priority:  syn.Priority,
			FollowUps: followUps,
		})
	}
	return resp
}

// checkPrerequisitesRequest is the body for a prerequisite check.
type checkPrerequisitesRequest struct {
	Pending     *saga.PendingSelections `json:"pending,omitempty"`
	FeatureName string                  `json:"feature_name,omitempty"`
	ClassID     string                  `json:"class_id,omitempty"`
}

func (h *Handler) checkPrerequisites(c *gin.Context) {
	var req checkPrerequisitesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.InvalidArgumentf("invalid request body: %v", err))
		return
	}

	out, err := h.service.CheckPrerequisites(c.Request.Context(), &progression.CheckPrerequisitesInput{
		CharacterID: c.Param("id"),
		Pending:     req.Pending,
		FeatureName: req.FeatureName,
		ClassID:     req.ClassID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"satisfied":     out.Satisfied,
		"unmet_reasons": out.UnmetReasons,
	})
}

func (h *Handler) startSession(c *gin.Context) {
	out, err := h.service.StartSession(c.Request.Context(), &progression.StartSessionInput{
		CharacterID: c.Param("id"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"session_id":   out.SessionID,
		"character_id": out.CharacterID,
	})
}

// respondError maps service errors onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	code := errors.GetCode(err)
	if code == errors.CodeInternal {
		slog.Error("request failed",
			"path", c.FullPath(),
			"error", err)
	}
	c.JSON(code.HTTPStatus(), gin.H{
		"code":    code.String(),
		"message": errors.GetMessage(err),
	})
}
