package converter

import (
	"cosmetic-platform-dataset/internal/delivery/dto"
	"cosmetic-platform-dataset/internal/domain/policy"
)

func DecisionToResponse(table string, action policy.Action, req policy.Requester, d policy.Decision) *dto.PolicyDecisionResponse {
	resp := &dto.PolicyDecisionResponse{
		Table:     table,
		Action:    string(action),
		Role:      string(req.Role),
		Allowed:   d.Allowed,
		Policy:    d.Policy,
		Using:     d.Using,
		WithCheck: d.WithCheck,
		Reason:    d.Reason,
	}
	if req.UserID != nil {
		id := req.UserID.String()
		resp.UserID = &id
	}
	return resp
}
