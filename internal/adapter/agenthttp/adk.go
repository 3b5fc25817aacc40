package agenthttp

import (
	"context"
	"fmt"
	"strings"

	"github.com/untangle-ai/agent-broker/internal/domain/broker"
)

// adkAppName is the application slug ADK deployments expose their sessions
// and run endpoint under.
const adkAppName = "untangle-adk"

// ADKAdapter speaks the Google ADK dialect: a session-bootstrap call first,
// then the main /run call.
type ADKAdapter struct {
	client *Client
}

func NewADKAdapter(client *Client) *ADKAdapter {
	return &ADKAdapter{client: client}
}

type adkPart struct {
	Text string `json:"text"`
}

type adkMessage struct {
	Parts []adkPart `json:"parts"`
	Role  string    `json:"role"`
}

type adkRunRequest struct {
	AppName    string         `json:"appName"`
	UserID     string         `json:"userId"`
	SessionID  string         `json:"sessionId"`
	NewMessage adkMessage     `json:"newMessage"`
	Streaming  bool           `json:"streaming"`
	StateDelta map[string]any `json:"stateDelta"`
}

func (a *ADKAdapter) Invoke(ctx context.Context, deployedURL, message, sessionID, callerID string) (broker.CanonicalResponse, error) {
	base := strings.TrimRight(deployedURL, "/")

	// ADK requires the session to exist before /run will accept it.
	sessionURL := fmt.Sprintf("%s/apps/%s/users/%s/sessions/%s", base, adkAppName, callerID, sessionID)
	if _, err := a.client.PostJSON(ctx, sessionURL, nil); err != nil {
		return broker.CanonicalResponse{}, fmt.Errorf("bootstrap adk session: %w", err)
	}

	body := adkRunRequest{
		AppName:   adkAppName,
		UserID:    callerID,
		SessionID: sessionID,
		NewMessage: adkMessage{
			Parts: []adkPart{{Text: message}},
			Role:  "user",
		},
		Streaming:  false,
		StateDelta: map[string]any{},
	}
	raw, err := a.client.PostJSON(ctx, base+"/run", body)
	if err != nil {
		return broker.CanonicalResponse{}, fmt.Errorf("run adk agent: %w", err)
	}

	return ParseADKResponse(raw)
}
