package services

import (
	"encoding/json"
	"errors"
	"log"
	"sync"

	"github.com/abdellah799/travel_booking/jobs"
	"github.com/abdellah799/travel_booking/models"
	"github.com/abdellah799/travel_booking/payments"
	"github.com/abdellah799/travel_booking/utils"
	"github.com/abdellah799/travel_booking/websocket"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrBookingNotFound    = errors.New("booking not found")
	ErrPaymentNotFound    = errors.New("payment not found")
	ErrDuplicatePayment   = errors.New("a payment already exists for this booking")
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
	ErrVerificationFailed = errors.New("payment verification failed")
)

// GatewayError carries the raw Chapa payload when the gateway answered but
// reported failure, so callers can surface it for diagnostics.
type GatewayError struct {
	Details json.RawMessage
}

func (e *GatewayError) Error() string { return "payment gateway returned a failure response" }
func (e *GatewayError) Unwrap() error { return ErrGatewayUnavailable }

// VerificationError is the client-error outcome of a verify call whose
// top-level status was not success. The local payment is left untouched.
type VerificationError struct {
	Details json.RawMessage
}

func (e *VerificationError) Error() string { return "payment verification failed" }
func (e *VerificationError) Unwrap() error { return ErrVerificationFailed }

// ChapaGateway is the slice of the Chapa client the orchestrator needs.
type ChapaGateway interface {
	InitializeTransaction(amount float64, email, firstName, lastName, txRef, callbackURL, returnURL string) (*payments.ChapaResult, error)
	VerifyTransaction(txRef string) (*payments.ChapaResult, error)
}

// JobQueue is the async execution facility confirmations are handed to.
type JobQueue interface {
	Submit(job jobs.Job) jobs.Handle
}

// PaymentService drives the payment lifecycle for bookings: it is the only
// component that creates or mutates payment records.
type PaymentService struct {
	db      *gorm.DB
	gateway ChapaGateway
	queue   JobQueue

	mu           sync.Mutex
	bookingLocks map[uint]*sync.Mutex
}

func NewPaymentService(db *gorm.DB, gateway ChapaGateway, queue JobQueue) *PaymentService {
	return &PaymentService{
		db:           db,
		gateway:      gateway,
		queue:        queue,
		bookingLocks: make(map[uint]*sync.Mutex),
	}
}

// bookingLock serializes initiation per booking. Initiations for different
// bookings proceed independently.
func (s *PaymentService) bookingLock(bookingID uint) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.bookingLocks[bookingID]
	if !ok {
		lock = &sync.Mutex{}
		s.bookingLocks[bookingID] = lock
	}
	return lock
}

// releaseBookingLock evicts a booking's lock entry. Only called once the
// payment is completed: from then on the duplicate guard rejects every new
// initiation, so the lock has nothing left to serialize.
func (s *PaymentService) releaseBookingLock(bookingID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.bookingLocks, bookingID)
}

type InitiateResult struct {
	PaymentURL     string
	TransactionRef string
}

// Initiate starts a payment for a booking: duplicate guard, gateway
// initialization, then a pending payment record. No record is written unless
// Chapa accepted the transaction.
func (s *PaymentService) Initiate(bookingID uint, callbackURL, returnURL string) (*InitiateResult, error) {
	lock := s.bookingLock(bookingID)
	lock.Lock()
	defer lock.Unlock()

	var booking models.Booking
	if err := s.db.Preload("User").First(&booking, "id = ?", bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	var existing int64
	if err := s.db.Model(&models.Payment{}).
		Where("booking_id = ? AND status IN ?", booking.ID, []string{models.PaymentStatusPending, models.PaymentStatusCompleted}).
		Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, ErrDuplicatePayment
	}

	txRef := utils.GenerateTransactionRef(booking.ID)
	email, firstName, lastName := payerIdentity(&booking)

	result, err := s.gateway.InitializeTransaction(booking.TotalPrice, email, firstName, lastName, txRef, callbackURL, returnURL)
	if err != nil {
		log.Printf("🔥 Chapa initialization failed for booking %d: %v", booking.ID, err)
		return nil, ErrGatewayUnavailable
	}
	if result.Status != "success" {
		log.Printf("🔥 Chapa rejected initialization for booking %d: %s", booking.ID, result.Message)
		return nil, &GatewayError{Details: result.Raw}
	}

	payment := models.Payment{
		BookingID:      booking.ID,
		Amount:         booking.TotalPrice,
		Currency:       payments.Currency,
		TransactionRef: &txRef,
		Status:         models.PaymentStatusPending,
		ChapaResponse:  datatypes.JSON(result.Raw),
	}
	if ref := result.Reference(); ref != "" {
		payment.ChapaReference = &ref
	}

	if err := s.db.Create(&payment).Error; err != nil {
		return nil, err
	}

	return &InitiateResult{
		PaymentURL:     result.Data.CheckoutURL,
		TransactionRef: txRef,
	}, nil
}

type VerifyResult struct {
	Status  string
	Message string
	Details payments.ChapaData
}

// Verify reconciles Chapa's reported status into the local payment and, on
// success, confirms the booking and enqueues the confirmation email.
func (s *PaymentService) Verify(txRef string) (*VerifyResult, error) {
	var payment models.Payment
	if err := s.db.First(&payment, "transaction_ref = ?", txRef).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}

	result, err := s.gateway.VerifyTransaction(txRef)
	if err != nil {
		log.Printf("🔥 Chapa verification failed for %s: %v", txRef, err)
		return nil, ErrGatewayUnavailable
	}
	if result.Status != "success" {
		return nil, &VerificationError{Details: result.Raw}
	}

	var booking models.Booking
	var message string

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if result.Data.Status == "success" {
			if err := tx.Preload("User").Preload("Listing").First(&booking, "id = ?", payment.BookingID).Error; err != nil {
				return err
			}
			booking.Status = models.BookingStatusConfirmed
			if err := tx.Save(&booking).Error; err != nil {
				return err
			}
			payment.Status = models.PaymentStatusCompleted
			message = "Payment verified and booking confirmed."
		} else {
			payment.Status = models.PaymentStatusFailed
			message = "Payment verification returned as failed."
		}

		payment.ChapaResponse = datatypes.JSON(result.Raw)
		return tx.Save(&payment).Error
	})
	if err != nil {
		return nil, err
	}

	if payment.Status == models.PaymentStatusCompleted {
		s.releaseBookingLock(payment.BookingID)
		s.enqueueConfirmation(&booking, &payment)
		go s.generateReceipt(payment, booking)
	}

	websocket.BroadcastStatus(txRef, payment.Status, message)

	return &VerifyResult{
		Status:  payment.Status,
		Message: message,
		Details: result.Data,
	}, nil
}

func (s *PaymentService) enqueueConfirmation(booking *models.Booking, payment *models.Payment) {
	if s.queue == nil {
		return
	}

	userName, userEmail := guestContact(booking)
	amount := payment.Amount

	s.queue.Submit(&jobs.BookingConfirmationJob{
		BookingID:     booking.ID,
		UserName:      userName,
		UserEmail:     userEmail,
		ListingTitle:  booking.Listing.Name,
		CheckInDate:   booking.StartDate.Format("2006-01-02"),
		CheckOutDate:  booking.EndDate.Format("2006-01-02"),
		PaymentAmount: &amount,
	})
}

// payerIdentity resolves who Chapa should bill, substituting a guest
// placeholder when the booking carries no linked user.
func payerIdentity(booking *models.Booking) (email, firstName, lastName string) {
	if booking.User == nil {
		return "guest@example.com", "Guest", "User"
	}
	return booking.User.Email, booking.User.Username, ""
}

func guestContact(booking *models.Booking) (name, email string) {
	if booking.User == nil {
		return "Guest", "guest@example.com"
	}
	return booking.User.Username, booking.User.Email
}
