package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/sitegrid-labs/sitegrid/dao/model"
)

// ContactFilter narrows and pages ListContacts.
type ContactFilter struct {
	Type     *model.ContactType
	NameLike *string
	Offset   int
	Limit    int
}

func (s *Store) CreateContact(ctx context.Context, tenantID uint, contact *model.Contact) error {
	contact.TenantID = tenantID
	return asStoreErr(s.db.WithContext(ctx).Create(contact).Error)
}

func (s *Store) GetContact(ctx context.Context, tenantID, contactID uint) (*model.Contact, error) {
	var contact model.Contact
	err := s.scoped(ctx, tenantID).Where("id = ?", contactID).First(&contact).Error
	if err != nil {
		return nil, asStoreErr(err)
	}
	return &contact, nil
}

func (s *Store) ListContacts(ctx context.Context, tenantID uint, f ContactFilter) ([]*model.Contact, int64, error) {
	q := s.scoped(ctx, tenantID).Model(&model.Contact{})
	if f.Type != nil {
		q = q.Where("type = ?", *f.Type)
	}
	if f.NameLike != nil {
		q = q.Where("name ILIKE ?", "%"+*f.NameLike+"%")
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return nil, 0, asStoreErr(err)
	}
	var contacts []*model.Contact
	if err := q.Order("name ASC").Offset(f.Offset).Limit(f.Limit).Find(&contacts).Error; err != nil {
		return nil, 0, asStoreErr(err)
	}
	return contacts, count, nil
}

// ContactUpdate carries the mutable contact fields. Nil means unchanged.
type ContactUpdate struct {
	Name    *string
	Type    *model.ContactType
	Email   *string
	Phone   *string
	Company *string
	Notes   *string
}

func (s *Store) UpdateContact(ctx context.Context, tenantID, contactID uint, u ContactUpdate) error {
	updates := map[string]any{}
	if u.Name != nil {
		updates["name"] = *u.Name
	}
	if u.Type != nil {
		updates["type"] = *u.Type
	}
	if u.Email != nil {
		updates["email"] = *u.Email
	}
	if u.Phone != nil {
		updates["phone"] = *u.Phone
	}
	if u.Company != nil {
		updates["company"] = *u.Company
	}
	if u.Notes != nil {
		updates["notes"] = *u.Notes
	}
	if len(updates) == 0 {
		return nil
	}
	res := s.scoped(ctx, tenantID).Model(&model.Contact{}).Where("id = ?", contactID).Updates(updates)
	if res.Error != nil {
		return asStoreErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteContact removes a directory entry. Tasks assigned to it fall back
// to unassigned in the same transaction so no task is left pointing at a
// dead contact.
func (s *Store) DeleteContact(ctx context.Context, tenantID, contactID uint) error {
	return s.transaction(ctx, func(tx *gorm.DB) error {
		var contact model.Contact
		err := tx.Where("tenant_id = ? AND id = ?", tenantID, contactID).First(&contact).Error
		if err != nil {
			return asStoreErr(err)
		}
		err = tx.Model(&model.Task{}).
			Where("tenant_id = ? AND assignee_id = ?", tenantID, contactID).
			Update("assignee_id", nil).Error
		if err != nil {
			return err
		}
		return tx.Delete(&contact).Error
	})
}
