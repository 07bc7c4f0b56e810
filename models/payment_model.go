package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
)

// Payment is one attempt to collect funds for a booking via Chapa. Rows are
// never deleted; the lifecycle is recorded through status transitions. At most
// one payment per booking may be pending or completed at any time.
type Payment struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	BookingID uint    `gorm:"not null;index" json:"booking_id"`
	Amount    float64 `gorm:"type:numeric(10,2);not null" json:"amount"`
	Currency  string  `gorm:"size:3;not null;default:'ETB'" json:"currency"`

	// TransactionRef is our locally generated idempotency key; ChapaReference
	// is the identifier Chapa assigns to the transaction.
	TransactionRef *string `gorm:"size:255;unique" json:"transaction_id"`
	ChapaReference *string `gorm:"size:255;unique" json:"chapa_reference"`

	Status string `gorm:"size:20;not null;default:'pending'" json:"status"`

	// Latest raw Chapa payload, kept for audit and debugging.
	ChapaResponse datatypes.JSON `json:"chapa_response,omitempty"`
	ReceiptURL    *string        `gorm:"size:255" json:"receipt_url,omitempty"`

	Booking Booking `gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
