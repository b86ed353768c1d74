package services

import (
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"audiotech/internal/domain"
	"audiotech/internal/metrics"
	"audiotech/internal/validate"
)

var ErrEmptyCart = errors.New("cart empty")

const (
	PaymentCOD    = "cod"
	PaymentCredit = "credit"
)

// CheckoutRequest is the shipping and payment form.
type CheckoutRequest struct {
	FullName      string
	Email         string
	Phone         string
	Address       string
	City          string
	PaymentMethod string
}

// Validate checks required fields and normalizes the payment method.
func (r *CheckoutRequest) Validate() error {
	if err := validate.Required(r.FullName, r.Email, r.Phone, r.Address, r.City); err != nil {
		return err
	}
	email, ok := validate.Email(r.Email)
	if !ok {
		return validate.ErrInvalidEmail
	}
	r.Email = email
	switch pm := strings.ToLower(strings.TrimSpace(r.PaymentMethod)); pm {
	case "", PaymentCOD:
		r.PaymentMethod = PaymentCOD
	case PaymentCredit:
		r.PaymentMethod = PaymentCredit
	default:
		return validate.ErrInvalidPayment
	}
	return nil
}

type OrderService struct {
	Latency Latency
	now     func() time.Time
}

func NewOrderService(lat Latency) *OrderService {
	return &OrderService{Latency: lat, now: time.Now}
}

// Place turns the cart into an order receipt. Nothing is persisted.
func (s *OrderService) Place(items []domain.CartItem, req CheckoutRequest) (domain.Order, error) {
	defer observe("place_order")()
	if len(items) == 0 {
		return domain.Order{}, ErrEmptyCart
	}
	if err := req.Validate(); err != nil {
		return domain.Order{}, err
	}
	pause(s.Latency.Checkout)

	t := domain.CartTotals(items)
	o := domain.Order{
		ID: uuid.NewString(),
		Customer: domain.Customer{
			FullName: strings.TrimSpace(req.FullName),
			Email:    req.Email,
			Phone:    strings.TrimSpace(req.Phone),
			Address:  strings.TrimSpace(req.Address),
			City:     strings.TrimSpace(req.City),
		},
		Items:    slices.Clone(items),
		Subtotal: t.Subtotal,
		Tax:      t.Tax,
		Total:    t.Total,
		Payment:  req.PaymentMethod,
		PlacedAt: s.now().UTC().Format(time.RFC3339),
	}
	metrics.Orders.Inc()
	return o, nil
}
