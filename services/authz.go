package services

import (
	"github.com/bigbadbobbo/foodtruck-api/entity"
	"github.com/bigbadbobbo/foodtruck-api/pkg/apperr"
)

// Principal is the authenticated caller.
type Principal struct {
	ID   string
	Role string
}

func (p Principal) IsAdmin() bool    { return p.Role == entity.RoleAdmin }
func (p Principal) IsOperator() bool { return p.Role == entity.RoleOperator }

// ownerOrElevated is the single ownership rule: admins pass, everybody else
// must be the recorded owner.
func ownerOrElevated(ownerID string, p Principal) bool {
	if p.IsAdmin() {
		return true
	}
	return p.ID != "" && p.ID == ownerID
}

func requireOwner(ownerID string, p Principal, action, what string) error {
	if ownerOrElevated(ownerID, p) {
		return nil
	}
	return apperr.Unauthorized("User %s is not authorized to %s %s", p.ID, action, what)
}

// rejectOperator blocks operators from customer-side actions.
func rejectOperator(p Principal, action string) error {
	if p.IsOperator() {
		return apperr.Unauthorized("User %s is not authorized to %s", p.ID, action)
	}
	return nil
}
