package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/custodia-labs/mission-control/internal/core/ports/driving"
	"github.com/custodia-labs/mission-control/internal/logger"
)

type agentHandler struct {
	svc driving.AgentService
}

// AgentStatusOutput wraps the presence read model.
type AgentStatusOutput struct {
	Body AgentStatusBody
}

// UpdateAgentStatusInput is posted by the agent.
type UpdateAgentStatusInput struct {
	Body struct {
		Active   bool     `json:"active" required:"false"`
		Sessions []string `json:"sessions,omitempty"`
	}
}

// UpdateAgentStatusOutput acknowledges a status update.
type UpdateAgentStatusOutput struct {
	Body struct {
		OK bool `json:"ok"`
	}
}

func (h *agentHandler) register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "getAgentStatus", Method: http.MethodGet, Path: "/api/agent-status",
		Summary: "Agent presence", Tags: []string{"Agent"},
		Description: "Always 200; store failures are reported in the error field",
	}, h.status)
	huma.Register(api, huma.Operation{
		OperationID: "updateAgentStatus", Method: http.MethodPost, Path: "/api/agent-status",
		Summary: "Record agent presence", Tags: []string{"Agent"},
	}, h.update)
}

func (h *agentHandler) status(ctx context.Context, _ *struct{}) (*AgentStatusOutput, error) {
	return &AgentStatusOutput{Body: newAgentStatusBody(h.svc.Status(ctx))}, nil
}

func (h *agentHandler) update(ctx context.Context, in *UpdateAgentStatusInput) (*UpdateAgentStatusOutput, error) {
	if err := h.svc.Update(ctx, in.Body.Active, in.Body.Sessions); err != nil {
		logger.Error("Failed to update agent status: %v", err)
		return nil, huma.Error500InternalServerError("Failed to update status")
	}
	out := &UpdateAgentStatusOutput{}
	out.Body.OK = true
	return out, nil
}
