// Package billing implements checkout: outstanding bills and payment
// capture. Payments are serialized per bill and deduplicated by client
// idempotency key so a double-submitted checkout cannot charge twice.
package billing

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/clinicdesk/clinicdesk_backend/internal/model"
	"github.com/clinicdesk/clinicdesk_backend/internal/store"
	"github.com/clinicdesk/clinicdesk_backend/pkg/reqctx"
)

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type PaymentRequest struct {
	Amount float64             `json:"amount"`
	Method model.PaymentMethod `json:"method"`
	// IdempotencyKey deduplicates retries. A replayed key returns the
	// bill as it stood after the original payment.
	IdempotencyKey string `json:"idempotencyKey"`
}

// BillView joins a bill with the patient name the checkout screen shows.
type BillView struct {
	model.Bill
	PatientName string `json:"patientName"`
}

// ---------------------------------------------------------------------------
// Service interface
// ---------------------------------------------------------------------------

type Service interface {
	List(ctx context.Context) ([]BillView, error)
	Pending(ctx context.Context) ([]BillView, error)
	Get(ctx context.Context, id string) (*BillView, error)
	ProcessPayment(ctx context.Context, billID string, req PaymentRequest) (*model.Bill, error)
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type billingService struct {
	st *store.Store

	mu       sync.Mutex
	locks    map[string]*sync.Mutex
	payments map[string]model.Bill
}

func New(st *store.Store) Service {
	return &billingService{
		st:       st,
		locks:    make(map[string]*sync.Mutex),
		payments: make(map[string]model.Bill),
	}
}

func (s *billingService) List(ctx context.Context) ([]BillView, error) {
	return s.views(func(model.Bill) bool { return true }), nil
}

func (s *billingService) Pending(ctx context.Context) ([]BillView, error) {
	return s.views(func(b model.Bill) bool { return b.Status != model.BillPaid }), nil
}

func (s *billingService) Get(ctx context.Context, id string) (*BillView, error) {
	b, err := s.st.BillByID(id)
	if err != nil {
		return nil, ErrBillNotFound
	}
	v := s.view(b)
	return &v, nil
}

func (s *billingService) ProcessPayment(ctx context.Context, billID string, req PaymentRequest) (*model.Bill, error) {
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if !model.ValidPaymentMethod(req.Method) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidMethod, req.Method)
	}

	lock := s.billLock(billID)
	lock.Lock()
	defer lock.Unlock()

	if req.IdempotencyKey != "" {
		s.mu.Lock()
		recorded, seen := s.payments[req.IdempotencyKey]
		s.mu.Unlock()
		if seen {
			return &recorded, nil
		}
	}

	bill, err := s.st.BillByID(billID)
	if err != nil {
		return nil, ErrBillNotFound
	}
	if bill.Status == model.BillPaid {
		return nil, ErrAlreadyPaid
	}
	if req.Amount > bill.Balance() {
		return nil, fmt.Errorf("%w: balance %.2f, got %.2f", ErrOverpayment, bill.Balance(), req.Amount)
	}

	updated, err := s.st.UpdateBill(billID, func(b *model.Bill) {
		b.PaidAmount += req.Amount
		b.PaymentMethod = req.Method
		if b.PaidAmount >= b.TotalAmount {
			b.Status = model.BillPaid
		} else {
			b.Status = model.BillPartial
		}
	})
	if err != nil {
		return nil, fmt.Errorf("update bill: %w", err)
	}

	if req.IdempotencyKey != "" {
		s.mu.Lock()
		s.payments[req.IdempotencyKey] = updated
		s.mu.Unlock()
	}

	slog.Info("payment applied",
		"req_id", reqctx.RequestIDFromContext(ctx),
		"bill", billID,
		"amount", req.Amount,
		"method", req.Method,
		"status", updated.Status,
	)
	return &updated, nil
}

func (s *billingService) billLock(billID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[billID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[billID] = l
	}
	return l
}

func (s *billingService) views(keep func(model.Bill) bool) []BillView {
	var out []BillView
	for _, b := range s.st.Bills() {
		if !keep(b) {
			continue
		}
		out = append(out, s.view(b))
	}
	return out
}

func (s *billingService) view(b model.Bill) BillView {
	v := BillView{Bill: b}
	if p, err := s.st.PatientByID(b.PatientID); err == nil {
		v.PatientName = p.Name
	}
	return v
}
