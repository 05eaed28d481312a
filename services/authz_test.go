package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bigbadbobbo/foodtruck-api/entity"
	"github.com/bigbadbobbo/foodtruck-api/pkg/apperr"
)

func TestOwnerOrElevated(t *testing.T) {
	owner := Principal{ID: "u1", Role: entity.RoleOperator}
	other := Principal{ID: "u2", Role: entity.RoleUser}
	admin := Principal{ID: "u3", Role: entity.RoleAdmin}

	assert.True(t, ownerOrElevated("u1", owner))
	assert.False(t, ownerOrElevated("u1", other))
	assert.True(t, ownerOrElevated("u1", admin))
	assert.False(t, ownerOrElevated("", Principal{Role: entity.RoleUser}))
}

func TestRequireOwnerMessage(t *testing.T) {
	err := requireOwner("u1", Principal{ID: "u2", Role: entity.RoleUser}, "update", "this food truck")
	assert.True(t, apperr.Is(err, apperr.KindUnauthorized))
	assert.Equal(t, "User u2 is not authorized to update this food truck", err.Error())
}

func TestRejectOperator(t *testing.T) {
	assert.Error(t, rejectOperator(Principal{ID: "o", Role: entity.RoleOperator}, "make orders"))
	assert.NoError(t, rejectOperator(Principal{ID: "u", Role: entity.RoleUser}, "make orders"))
}
