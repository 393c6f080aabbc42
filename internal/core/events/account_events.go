package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeAccountCreated  = "account.created"
	EventTypeAccountUpdated  = "account.updated"
	EventTypeAccountDeleted  = "account.deleted"
	EventTypeAccountSignedIn = "account.signed_in"
)

type AccountCreatedEvent struct {
	BaseEvent
	AccountID int64  `json:"account_id"`
	AuthID    string `json:"auth_id"`
	Email     string `json:"email"`
	Role      int    `json:"role"`
}

func NewAccountCreatedEvent(accountID int64, authID, email string, role int) *AccountCreatedEvent {
	return &AccountCreatedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeAccountCreated,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"account_id": accountID,
				"auth_id":    authID,
				"email":      email,
				"role":       role,
			},
		},
		AccountID: accountID,
		AuthID:    authID,
		Email:     email,
		Role:      role,
	}
}

type AccountUpdatedEvent struct {
	BaseEvent
	AccountID int64    `json:"account_id"`
	UpdatedBy string   `json:"updated_by"`
	Fields    []string `json:"fields"`
}

func NewAccountUpdatedEvent(accountID int64, updatedBy string, fields []string) *AccountUpdatedEvent {
	return &AccountUpdatedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeAccountUpdated,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"account_id": accountID,
				"updated_by": updatedBy,
				"fields":     fields,
			},
		},
		AccountID: accountID,
		UpdatedBy: updatedBy,
		Fields:    fields,
	}
}

type AccountDeletedEvent struct {
	BaseEvent
	AccountID int64  `json:"account_id"`
	DeletedBy string `json:"deleted_by"`
}

func NewAccountDeletedEvent(accountID int64, deletedBy string) *AccountDeletedEvent {
	return &AccountDeletedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeAccountDeleted,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"account_id": accountID,
				"deleted_by": deletedBy,
			},
		},
		AccountID: accountID,
		DeletedBy: deletedBy,
	}
}

type AccountSignedInEvent struct {
	BaseEvent
	AuthID string `json:"auth_id"`
	Email  string `json:"email"`
}

func NewAccountSignedInEvent(authID, email string) *AccountSignedInEvent {
	return &AccountSignedInEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeAccountSignedIn,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"auth_id": authID,
				"email":   email,
			},
		},
		AuthID: authID,
		Email:  email,
	}
}
