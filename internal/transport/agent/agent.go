package agent

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainagent "github.com/untangle-ai/agent-broker/internal/domain/agent"
	portagent "github.com/untangle-ai/agent-broker/internal/port/agent"
	agentsvc "github.com/untangle-ai/agent-broker/internal/service/agent"
	"github.com/untangle-ai/agent-broker/internal/transport/auth"
)

func Register(rg *gin.RouterGroup, svc *agentsvc.Service) {
	rg.POST("/", createAgent(svc))
	rg.GET("/", listAgents(svc))
	rg.GET("/:id", getAgent(svc))
	rg.PATCH("/:id", updateAgent(svc))
	rg.DELETE("/:id", deleteAgent(svc))
}

type createReq struct {
	Name            string           `json:"name" binding:"required"`
	Description     string           `json:"description" binding:"required"`
	DeployedURL     string           `json:"deployed_url" binding:"required"`
	LLMProvider     string           `json:"llm_provider" binding:"required"`
	Skills          []string         `json:"skills"`
	AgentCost       string           `json:"agent_cost"`
	InputTokenCost  *decimal.Decimal `json:"input_token_cost"`
	OutputTokenCost *decimal.Decimal `json:"output_token_cost"`
	Framework       string           `json:"framework" binding:"required"`
	OwnerWallet     string           `json:"owner_wallet"`
}

func createAgent(svc *agentsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		callerID, ok := auth.CallerID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "caller not authenticated"})
			return
		}

		var req createReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		fw := domainagent.Framework(req.Framework)
		if !fw.Known() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown framework"})
			return
		}

		in := agentsvc.CreateInput{
			Name:        req.Name,
			Description: req.Description,
			DeployedURL: req.DeployedURL,
			LLMProvider: req.LLMProvider,
			Skills:      req.Skills,
			AgentCost:   req.AgentCost,
			Framework:   fw,
			OwnerWallet: req.OwnerWallet,
		}
		if req.InputTokenCost != nil {
			in.InputTokenCost = *req.InputTokenCost
		}
		if req.OutputTokenCost != nil {
			in.OutputTokenCost = *req.OutputTokenCost
		}

		a, err := svc.Create(c.Request.Context(), callerID, in)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, a)
	}
}

func listAgents(svc *agentsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var filters domainagent.ListFilters

		if v := c.Query("owner_id"); v != "" {
			id, err := uuid.Parse(v)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid owner_id"})
				return
			}
			filters.OwnerID = &id
		}
		filters.ActiveOnly = c.Query("active") == "true"
		filters.PublicOnly = c.Query("public") == "true"

		agents, err := svc.List(c.Request.Context(), filters)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if agents == nil {
			agents = []domainagent.Agent{}
		}
		c.JSON(http.StatusOK, agents)
	}
}

func getAgent(svc *agentsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		a, err := svc.GetByID(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, portagent.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "agent not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, a)
	}
}

type updateReq struct {
	Name            *string          `json:"name"`
	Description     *string          `json:"description"`
	DeployedURL     *string          `json:"deployed_url"`
	LLMProvider     *string          `json:"llm_provider"`
	Skills          []string         `json:"skills"`
	AgentCost       *string          `json:"agent_cost"`
	InputTokenCost  *decimal.Decimal `json:"input_token_cost"`
	OutputTokenCost *decimal.Decimal `json:"output_token_cost"`
	Framework       *string          `json:"framework"`
	IsActive        *bool            `json:"is_active"`
}

func updateAgent(svc *agentsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		callerID, ok := auth.CallerID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "caller not authenticated"})
			return
		}

		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		var req updateReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		in := agentsvc.UpdateInput{
			Name:            req.Name,
			Description:     req.Description,
			DeployedURL:     req.DeployedURL,
			LLMProvider:     req.LLMProvider,
			Skills:          req.Skills,
			AgentCost:       req.AgentCost,
			InputTokenCost:  req.InputTokenCost,
			OutputTokenCost: req.OutputTokenCost,
			IsActive:        req.IsActive,
		}
		if req.Framework != nil {
			fw := domainagent.Framework(*req.Framework)
			if !fw.Known() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "unknown framework"})
				return
			}
			in.Framework = &fw
		}

		a, err := svc.Update(c.Request.Context(), callerID, id, in)
		if err != nil {
			c.JSON(statusForWrite(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, a)
	}
}

func deleteAgent(svc *agentsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		callerID, ok := auth.CallerID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "caller not authenticated"})
			return
		}

		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		if err := svc.Delete(c.Request.Context(), callerID, id); err != nil {
			c.JSON(statusForWrite(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "deleted"})
	}
}

func statusForWrite(err error) int {
	switch {
	case errors.Is(err, portagent.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, agentsvc.ErrNotOwner):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
