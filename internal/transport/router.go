package transport

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/untangle-ai/agent-broker/internal/domain/event"
	portapikey "github.com/untangle-ai/agent-broker/internal/port/apikey"
	porteventbus "github.com/untangle-ai/agent-broker/internal/port/eventbus"
	agentsvc "github.com/untangle-ai/agent-broker/internal/service/agent"
	brokersvc "github.com/untangle-ai/agent-broker/internal/service/broker"
	settlementsvc "github.com/untangle-ai/agent-broker/internal/service/settlement"

	agenthandler "github.com/untangle-ai/agent-broker/internal/transport/agent"
	invokehandler "github.com/untangle-ai/agent-broker/internal/transport/invoke"
	wallethandler "github.com/untangle-ai/agent-broker/internal/transport/wallet"
	wshandler "github.com/untangle-ai/agent-broker/internal/transport/ws"
)

func NewRouter(
	ctx context.Context,
	brokerSvc *brokersvc.Service,
	agentSvc *agentsvc.Service,
	settlementSvc *settlementsvc.Service,
	apiKeys portapikey.Reader,
	eventBus porteventbus.EventBus,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(RequestLogger())
	r.Use(CORSMiddleware())

	api := r.Group("/api")

	authed := api.Group("", APIKeyAuth(apiKeys))
	invokehandler.Register(authed.Group("/invoke"), brokerSvc)
	agenthandler.Register(authed.Group("/agents"), agentSvc)
	wallethandler.Register(authed.Group("/wallet"), settlementSvc)

	hub := wshandler.NewHub()
	hub.Register(api.Group("/ws"))

	// Bridge: one subscription per domain channel (2 Postgres connections).
	// All events within a channel are forwarded to WS clients; event.Type in
	// the payload lets the client filter.
	for _, ch := range []event.Channel{
		event.ChannelAgent,
		event.ChannelInvoke,
	} {
		c := ch
		if _, err := eventBus.Subscribe(ctx, c, func(_ context.Context, e event.Event) {
			hub.Broadcast(e)
		}); err != nil {
			slog.Error("failed to subscribe channel to WS hub", "channel", c, "error", err)
		}
	}

	return r
}
