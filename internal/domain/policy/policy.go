// Package policy models the row-level-security policy set. The same rule
// table renders the SQL script applied to Postgres and drives the in-process
// evaluator used to verify it.
package policy

import (
	"errors"
	"fmt"
	"strings"

	"cosmetic-platform-dataset/internal/domain/catalog"
	"cosmetic-platform-dataset/internal/domain/entity"

	"github.com/google/uuid"
)

var ErrUnknownAction = errors.New("unknown action")

// Action is the statement kind a policy applies to
type Action string

const (
	ActionSelect Action = "SELECT"
	ActionInsert Action = "INSERT"
	ActionUpdate Action = "UPDATE"
	ActionDelete Action = "DELETE"
)

// ParseAction accepts an action name in any case
func ParseAction(s string) (Action, error) {
	switch a := Action(strings.ToUpper(strings.TrimSpace(s))); a {
	case ActionSelect, ActionInsert, ActionUpdate, ActionDelete:
		return a, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAction, s)
}

type predicate int

const (
	predNone predicate = iota
	predTrue
	predFalse
	predOwner
	predSignedIn
)

type rule struct {
	action Action
	name   string
	using  predicate
	check  predicate
}

var rules = map[catalog.AccessClass][]rule{
	catalog.AccessReference: {
		{action: ActionSelect, name: "public_read", using: predTrue},
	},
	catalog.AccessUserOwned: {
		{action: ActionSelect, name: "owner_read", using: predOwner},
		{action: ActionInsert, name: "owner_insert", check: predOwner},
		{action: ActionUpdate, name: "owner_update", using: predOwner, check: predOwner},
	},
	catalog.AccessCommunity: {
		{action: ActionSelect, name: "public_read", using: predTrue},
		{action: ActionInsert, name: "authenticated_insert", check: predSignedIn},
		{action: ActionUpdate, name: "author_update", using: predOwner, check: predOwner},
	},
	catalog.AccessRestricted: {
		{action: ActionSelect, name: "deny_all", using: predFalse},
	},
}

func ruleFor(class catalog.AccessClass, action Action) (rule, bool) {
	for _, r := range rules[class] {
		if r.action == action {
			return r, true
		}
	}
	return rule{}, false
}

// Requester is the identity a request runs as. UserID is what auth.uid()
// returns and is nil for anonymous requests.
type Requester struct {
	UserID *uuid.UUID
	Role   entity.Role
}

func Anonymous() Requester {
	return Requester{Role: entity.RoleAnon}
}

func Authenticated(id uuid.UUID) Requester {
	return Requester{UserID: &id, Role: entity.RoleAuthenticated}
}

func ServiceRole() Requester {
	return Requester{Role: entity.RoleServiceRole}
}

// Row carries the owner of the existing row and, for INSERT and UPDATE, the
// owner the written row would have. A nil NewOwner on UPDATE keeps Owner.
type Row struct {
	Owner    *uuid.UUID
	NewOwner *uuid.UUID
}

// Decision is the outcome of evaluating one request
type Decision struct {
	Allowed   bool   `json:"allowed"`
	Policy    string `json:"policy,omitempty"`
	Using     string `json:"using,omitempty"`
	WithCheck string `json:"with_check,omitempty"`
	Reason    string `json:"reason"`
}

// Evaluate decides whether req may perform action on row of table t, with
// the semantics Postgres applies to the rendered policies: no matching
// policy denies, and auth.uid() = owner is false when either side is null.
func Evaluate(t catalog.TableSpec, action Action, req Requester, row Row) Decision {
	if req.Role == entity.RoleServiceRole {
		return Decision{Allowed: true, Reason: "service_role bypasses row level security"}
	}

	r, ok := ruleFor(t.Access, action)
	if !ok {
		return Decision{Reason: fmt.Sprintf("no policy on %s permits %s", t.Name, action)}
	}

	d := Decision{
		Policy:    policyName(t, r),
		Using:     predicateSQL(t, r.using),
		WithCheck: predicateSQL(t, r.check),
	}

	if r.using != predNone && !holds(r.using, req, row.Owner) {
		d.Reason = "existing row fails USING"
		return d
	}
	if r.check != predNone {
		target := row.NewOwner
		if target == nil && action == ActionUpdate {
			target = row.Owner
		}
		if !holds(r.check, req, target) {
			d.Reason = "new row fails WITH CHECK"
			return d
		}
	}

	d.Allowed = true
	d.Reason = "permitted by " + d.Policy
	return d
}

func holds(p predicate, req Requester, owner *uuid.UUID) bool {
	switch p {
	case predTrue:
		return true
	case predOwner:
		return req.UserID != nil && owner != nil && *req.UserID == *owner
	case predSignedIn:
		return req.UserID != nil
	}
	return false
}

func policyName(t catalog.TableSpec, r rule) string {
	return t.Name + "_" + r.name
}

func predicateSQL(t catalog.TableSpec, p predicate) string {
	switch p {
	case predTrue:
		return "true"
	case predFalse:
		return "false"
	case predOwner:
		return "auth.uid() = " + t.Owner
	case predSignedIn:
		return "auth.uid() IS NOT NULL"
	}
	return ""
}
