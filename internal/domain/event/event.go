package event

import (
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeAgentCreated       Type = "agent_created"
	TypeAgentUpdated       Type = "agent_updated"
	TypeAgentDeleted       Type = "agent_deleted"
	TypeDispatchCompleted  Type = "dispatch_completed"
	TypeSettlementRecorded Type = "settlement_recorded"
)

// Channel is a domain-scoped Postgres NOTIFY channel.
// All event types within a domain share one LISTEN connection.
type Channel string

const (
	ChannelAgent  Channel = "agent"
	ChannelInvoke Channel = "invoke"
)

var typeToChannel = map[Type]Channel{
	TypeAgentCreated:       ChannelAgent,
	TypeAgentUpdated:       ChannelAgent,
	TypeAgentDeleted:       ChannelAgent,
	TypeDispatchCompleted:  ChannelInvoke,
	TypeSettlementRecorded: ChannelInvoke,
}

// ChannelFor returns the domain channel for a given event type.
func ChannelFor(t Type) Channel { return typeToChannel[t] }

// Event carries identifiers only, not full state. Subscribers fetch fresh
// state from the appropriate repository when they need it.
type Event struct {
	Type      Type      `json:"type"`
	EntityID  uuid.UUID `json:"entity_id"`
	Timestamp time.Time `json:"timestamp"`
}

func New(eventType Type, entityID uuid.UUID) Event {
	return Event{
		Type:      eventType,
		EntityID:  entityID,
		Timestamp: time.Now().UTC(),
	}
}
