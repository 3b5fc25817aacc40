package wallet

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	settlementsvc "github.com/untangle-ai/agent-broker/internal/service/settlement"
	"github.com/untangle-ai/agent-broker/internal/transport/auth"
)

func Register(rg *gin.RouterGroup, svc *settlementsvc.Service) {
	rg.GET("/balance", getBalance(svc))
}

func getBalance(svc *settlementsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		callerID, ok := auth.CallerID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "caller not authenticated"})
			return
		}

		balance, err := svc.Balance(c.Request.Context(), callerID)
		if err != nil {
			if errors.Is(err, settlementsvc.ErrWalletNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "no wallet address for caller"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		// Balance is denominated in ETH.
		c.JSON(http.StatusOK, gin.H{"balance": balance})
	}
}
