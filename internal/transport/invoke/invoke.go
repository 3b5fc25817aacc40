package invoke

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainbroker "github.com/untangle-ai/agent-broker/internal/domain/broker"
	portdispatch "github.com/untangle-ai/agent-broker/internal/port/dispatch"
	portembedding "github.com/untangle-ai/agent-broker/internal/port/embedding"
	brokersvc "github.com/untangle-ai/agent-broker/internal/service/broker"
	settlementsvc "github.com/untangle-ai/agent-broker/internal/service/settlement"
	"github.com/untangle-ai/agent-broker/internal/transport/auth"
)

// pinCookie carries the agent id a caller is pinned to across invokes.
const pinCookie = "agent_id"

const pinCookieMaxAge = 60 * 60 * 24 // one day

func Register(rg *gin.RouterGroup, svc *brokersvc.Service) {
	rg.POST("/", invokeAgent(svc))
}

type invokeReq struct {
	Requirement domainbroker.Requirement `json:"requirement"`
	Message     string                   `json:"message" binding:"required"`
}

type invokeResp struct {
	Content      *string `json:"content"`
	InputTokens  *int64  `json:"input_tokens,omitempty"`
	OutputTokens *int64  `json:"output_tokens,omitempty"`
}

func invokeAgent(svc *brokersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		callerID, ok := auth.CallerID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "caller not authenticated"})
			return
		}

		var req invokeReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		in := brokersvc.InvokeInput{
			CallerID:    callerID,
			Requirement: req.Requirement,
			Message:     req.Message,
		}
		// A malformed pin cookie is treated as no pin; ranking takes over.
		if v, err := c.Cookie(pinCookie); err == nil && v != "" {
			if id, err := uuid.Parse(v); err == nil {
				in.PinnedAgentID = &id
			}
		}

		result, err := svc.Invoke(c.Request.Context(), in)
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}

		if result.PinAgentID != nil {
			c.SetCookie(pinCookie, result.PinAgentID.String(), pinCookieMaxAge, "/", "", false, true)
		}

		c.JSON(http.StatusOK, invokeResp{
			Content:      result.Content,
			InputTokens:  result.InputTokens,
			OutputTokens: result.OutputTokens,
		})
	}
}

// statusFor maps orchestrator errors onto HTTP statuses. Payment failures use
// 402 so callers can distinguish a funding problem from a routing problem.
func statusFor(err error) int {
	switch {
	case errors.Is(err, brokersvc.ErrNoMatch),
		errors.Is(err, brokersvc.ErrAgentNotConfigured):
		return http.StatusNotFound
	case errors.Is(err, settlementsvc.ErrInsufficientStake),
		errors.Is(err, settlementsvc.ErrWalletNotFound):
		return http.StatusPaymentRequired
	case errors.Is(err, portdispatch.ErrUnsupportedFramework):
		return http.StatusUnprocessableEntity
	case errors.Is(err, portdispatch.ErrUpstreamUnavailable),
		errors.Is(err, portembedding.ErrUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
