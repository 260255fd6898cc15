// Package handlers exposes the engine's three call-level contracts over
// HTTP: evaluate, build assistant response and apply suggestion, plus the
// scenario and session stores the contracts lean on. Handlers stay thin:
// bind the request, call the service, map the result.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hostwell/shiftengine/pkg/core/applier"
	"github.com/hostwell/shiftengine/pkg/core/model"
	"github.com/hostwell/shiftengine/pkg/core/services"
	"github.com/hostwell/shiftengine/pkg/db"
)

// Handler contains dependencies for the route handlers
type Handler struct {
	Scenarios db.ScenarioStore
	Sessions  db.SessionStore
	Applied   db.AppliedSuggestionStore
	Logger    *zap.Logger
	Mode      applier.Mode
}

// Register wires all routes onto the router
func (h *Handler) Register(r *gin.Engine) {
	v1 := r.Group("/v1")
	v1.POST("/evaluate", h.Evaluate)
	v1.POST("/assistant/response", h.AssistantResponse)
	v1.POST("/suggestions/apply", h.ApplySuggestion)
	v1.POST("/sessions/:id/decisions", h.RecordDecision)
	v1.POST("/scenarios", h.AddScenario)
	v1.GET("/scenarios", h.ListScenarios)
	v1.DELETE("/scenarios/:id", h.DeleteScenario)
}

type evaluateRequest struct {
	Input     engineInputDTO `json:"input" binding:"required"`
	Scenarios []scenarioDTO  `json:"scenarios,omitempty"`
}

// Evaluate runs the evaluation pipeline. Inline scenarios take precedence;
// without them the stored scenarios for the input's week are applied.
func (h *Handler) Evaluate(c *gin.Context) {
	var req evaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	input := req.Input.toModel()

	var result *services.EvaluateResult
	if req.Scenarios != nil {
		scenarios := make([]model.Scenario, 0, len(req.Scenarios))
		for _, sc := range req.Scenarios {
			scenarios = append(scenarios, sc.toModel())
		}
		result = services.Evaluate(input, scenarios, h.Logger)
	} else {
		var err error
		result, err = services.EvaluateWeek(c.Request.Context(), h.Scenarios, input, h.Logger)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	c.JSON(http.StatusOK, evaluateResultToDTO(result))
}

type assistantRequest struct {
	Input     engineInputDTO `json:"input" binding:"required"`
	Scenarios []scenarioDTO  `json:"scenarios,omitempty"`
	SessionID string         `json:"sessionId,omitempty"`
}

// AssistantResponse evaluates and builds the decision-aware suggestion and
// explanation payload.
func (h *Handler) AssistantResponse(c *gin.Context) {
	var req assistantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	input := req.Input.toModel()

	var result *services.EvaluateResult
	if req.Scenarios != nil {
		scenarios := make([]model.Scenario, 0, len(req.Scenarios))
		for _, sc := range req.Scenarios {
			scenarios = append(scenarios, sc.toModel())
		}
		result = services.Evaluate(input, scenarios, h.Logger)
	} else {
		var err error
		result, err = services.EvaluateWeek(c.Request.Context(), h.Scenarios, input, h.Logger)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	var session *model.AssistantSession
	if req.SessionID != "" {
		var err error
		session, err = services.LoadSession(c.Request.Context(), h.Sessions, req.SessionID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	response := services.BuildAssistantResponse(input, result, session, h.Logger)

	suggestions := make([]suggestionDTO, 0, len(response.Suggestions))
	for _, s := range response.Suggestions {
		suggestions = append(suggestions, suggestionToDTO(s.ID, s.Suggestion))
	}
	c.JSON(http.StatusOK, gin.H{
		"suggestions":  suggestions,
		"explanations": explanationsToDTO(response.Explanations),
	})
}

type applyRequest struct {
	DraftID      string        `json:"draftId" binding:"required"`
	SuggestionID string        `json:"suggestionId" binding:"required"`
	Suggestion   suggestionDTO `json:"suggestion" binding:"required"`
	Schedule     struct {
		Shifts []shiftDTO `json:"shifts"`
	} `json:"scheduleState"`
}

// ApplySuggestion applies one suggestion to a draft schedule atomically
func (h *Handler) ApplySuggestion(c *gin.Context) {
	var req applyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	schedule := model.ScheduleState{}
	for _, shift := range req.Schedule.Shifts {
		schedule.Shifts = append(schedule.Shifts, model.Shift(shift))
	}

	result, err := services.ApplySuggestion(c.Request.Context(), h.Applied,
		req.DraftID, req.SuggestionID, req.Suggestion.toModel(), schedule, h.Mode, h.Logger)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, applyResultToDTO(result))
}

type decisionRequest struct {
	SuggestionID string `json:"suggestionId" binding:"required"`
	Decision     string `json:"decision" binding:"required,oneof=accepted rejected"`
	Reason       string `json:"reason,omitempty"`
	Source       string `json:"source,omitempty" binding:"omitempty,oneof=user system"`
}

// RecordDecision appends an accept/reject decision to a session
func (h *Handler) RecordDecision(c *gin.Context) {
	var req decisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sessionID := c.Param("id")

	session, err := services.LoadSession(c.Request.Context(), h.Sessions, sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	record := model.DecisionRecord{
		SuggestionID: req.SuggestionID,
		Decision:     model.Decision(req.Decision),
		Reason:       req.Reason,
		Source:       model.DecisionSource(req.Source),
	}
	if err := services.RecordDecision(c.Request.Context(), h.Sessions, session, record, h.Logger); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"sessionId": sessionID, "decisions": len(session.Decisions)})
}

// AddScenario stores a what-if scenario
func (h *Handler) AddScenario(c *gin.Context) {
	var req scenarioDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	stored, err := services.AddScenario(c.Request.Context(), h.Scenarios, req.toModel(), h.Logger)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, scenarioToDTO(stored))
}

// ListScenarios returns the stored scenarios for a unit and week
func (h *Handler) ListScenarios(c *gin.Context) {
	unitID := c.Query("unitId")
	weekStart := c.Query("weekStartDate")
	if weekStart == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "weekStartDate is required"})
		return
	}

	scenarios, err := services.ListScenarios(c.Request.Context(), h.Scenarios, unitID, weekStart)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := make([]scenarioDTO, 0, len(scenarios))
	for _, sc := range scenarios {
		out = append(out, scenarioToDTO(sc))
	}
	c.JSON(http.StatusOK, gin.H{"scenarios": out})
}

// DeleteScenario removes a stored scenario
func (h *Handler) DeleteScenario(c *gin.Context) {
	if err := services.RemoveScenario(c.Request.Context(), h.Scenarios, c.Param("id"), h.Logger); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
