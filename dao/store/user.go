package store

import (
	"context"

	"github.com/sitegrid-labs/sitegrid/dao/model"
)

func (s *Store) CreateUser(ctx context.Context, user *model.User) error {
	return asStoreErr(s.db.WithContext(ctx).Create(user).Error)
}

func (s *Store) GetUserByName(ctx context.Context, name string) (*model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).Where("name = ?", name).First(&user).Error; err != nil {
		return nil, asStoreErr(err)
	}
	return &user, nil
}

func (s *Store) GetUserByID(ctx context.Context, userID uint) (*model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		return nil, asStoreErr(err)
	}
	return &user, nil
}

// GetMembership returns the user's membership in the given tenant, or
// ErrNotFound when the user does not belong to it.
func (s *Store) GetMembership(ctx context.Context, tenantID, userID uint) (*model.UserTenant, error) {
	var membership model.UserTenant
	err := s.scoped(ctx, tenantID).Where("user_id = ?", userID).First(&membership).Error
	if err != nil {
		return nil, asStoreErr(err)
	}
	return &membership, nil
}
