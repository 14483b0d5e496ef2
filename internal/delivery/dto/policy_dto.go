package dto

// Request DTOs

// EvaluatePolicyRequest describes the row a simulated request touches. The
// requester comes from the bearer token.
type EvaluatePolicyRequest struct {
	Table    string `json:"table" validate:"required"`
	Action   string `json:"action" validate:"required,oneof=SELECT INSERT UPDATE DELETE select insert update delete"`
	RowOwner string `json:"row_owner" validate:"omitempty,uuid"`
	NewOwner string `json:"new_owner" validate:"omitempty,uuid"`
}

// Response DTOs

type PolicyDecisionResponse struct {
	Table     string  `json:"table"`
	Action    string  `json:"action"`
	Role      string  `json:"role"`
	UserID    *string `json:"user_id,omitempty"`
	Allowed   bool    `json:"allowed"`
	Policy    string  `json:"policy,omitempty"`
	Using     string  `json:"using,omitempty"`
	WithCheck string  `json:"with_check,omitempty"`
	Reason    string  `json:"reason"`
}
