package repository

import (
	"context"

	"github.com/bigbadbobbo/foodtruck-api/entity"

	"gorm.io/gorm"
)

type MembershipRepository struct {
	store[entity.Membership]
}

func NewMembershipRepository(db *gorm.DB) *MembershipRepository {
	return &MembershipRepository{store[entity.Membership]{DB: db}}
}

func (r *MembershipRepository) WithTx(tx *gorm.DB) *MembershipRepository {
	return NewMembershipRepository(tx)
}

func (r *MembershipRepository) IsMember(ctx context.Context, userID, groupID string) (bool, error) {
	return r.Exists(ctx, map[string]any{"user_id": userID, "user_group_id": groupID})
}

func (r *MembershipRepository) DeleteByGroup(ctx context.Context, groupID string) error {
	return r.DeleteWhere(ctx, map[string]any{"user_group_id": groupID})
}
