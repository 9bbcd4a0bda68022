package data

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	PendingStatus   = Status("pending")
	ApprovedStatus  = Status("approved")
	CompletedStatus = Status("completed")
	RejectedStatus  = Status("rejected")
)

// AllStatusesFilter is the list filter that matches every row.
const AllStatusesFilter = "all"

type Withdrawal struct {
	CreatedAt   time.Time
	ProcessedAt *time.Time
	PhoneNumber string
	BankName    string
	Status      Status
	Amount      decimal.Decimal
	ID          int64
}

// StatusSet is the set of statuses an admin may assign. An empty set accepts
// any status.
type StatusSet map[Status]struct{}

func NewStatusSet(statuses ...Status) StatusSet {
	set := make(StatusSet, len(statuses))
	for _, status := range statuses {
		set[status] = struct{}{}
	}
	return set
}

func DefaultStatusSet() StatusSet {
	return NewStatusSet(PendingStatus, ApprovedStatus, CompletedStatus, RejectedStatus)
}

func (s StatusSet) Allows(status Status) bool {
	if len(s) == 0 {
		return true
	}
	_, ok := s[status]
	return ok
}

// Notification is what the admin channel is told about a new submission.
type Notification struct {
	PhoneNumber  string
	BankName     string
	Timestamp    string
	Amount       decimal.Decimal
	WithdrawalID int64
}
