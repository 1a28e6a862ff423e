package domain

import "time"

type TransferStatus string

const (
	TransferStatusOffered   TransferStatus = "offered"
	TransferStatusCompleted TransferStatus = "completed"
)

// Transfer records a pending or completed ownership handoff of an item.
// TransferID is the opaque identifier embedded in the offer link; a transfer
// is single-use and bound to both the item and the intended recipient.
type Transfer struct {
	ID          int64
	TransferID  string
	ItemID      int64
	SenderID    int64
	RecipientID int64
	Status      TransferStatus
	CreatedAt   time.Time
	CompletedAt *time.Time
}
