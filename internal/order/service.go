package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"brytashop-be/internal/auth"
	"brytashop-be/internal/cart"
	"brytashop-be/internal/events"
	"brytashop-be/internal/logger"
	"brytashop-be/internal/metrics"
	"brytashop-be/internal/payment"

	"go.uber.org/zap"
)

type Service interface {
	CreateOrder(ctx context.Context, actor auth.Actor, token string) (*Order, error)
	CreateOrderPaystack(ctx context.Context, actor auth.Actor, p PaystackParams) (*Order, error)
	GetOrder(ctx context.Context, actor auth.Actor, id uint) (*Order, error)
	ListOrders(ctx context.Context, actor auth.Actor, sort *Sort) ([]*Order, error)
	ReconcilePaystackCharge(ctx context.Context, reference string, amount int) error
}

const (
	// SettleTimeout bounds persisting, refunding and publishing once money has moved.
	SettleTimeout = 30 * time.Second

	// DefaultReconcileDelay is how long a webhook charge may wait for its checkout mutation.
	DefaultReconcileDelay = 15 * time.Minute
)

type Deps struct {
	Repo      Repository
	Carts     cart.Repository
	Stripe    payment.ChargeGateway
	Paystack  payment.VerifyGateway
	Publisher events.Publisher
	Metrics   *metrics.Registry
	Currency  string

	ReconcileDelay time.Duration
}

type service struct {
	repo      Repository
	carts     cart.Repository
	stripe    payment.ChargeGateway
	paystack  payment.VerifyGateway
	publisher events.Publisher
	metrics   *metrics.Registry
	currency  string

	reconcileDelay time.Duration
	after          func(d time.Duration, f func())
}

func NewService(d Deps) Service {
	if d.Publisher == nil {
		d.Publisher = events.NopPublisher{}
	}
	if d.Metrics == nil {
		d.Metrics = metrics.NewRegistry()
	}
	if d.ReconcileDelay <= 0 {
		d.ReconcileDelay = DefaultReconcileDelay
	}
	return &service{
		repo:      d.Repo,
		carts:     d.Carts,
		stripe:    d.Stripe,
		paystack:  d.Paystack,
		publisher: d.Publisher,
		metrics:   d.Metrics,
		currency:  d.Currency,

		reconcileDelay: d.ReconcileDelay,
		after:          func(d time.Duration, f func()) { time.AfterFunc(d, f) },
	}
}

// settleContext keeps request values but drops cancellation, so a client that
// disconnects after paying cannot abort the order write or its compensation.
func settleContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), SettleTimeout)
}

func (s *service) CreateOrder(ctx context.Context, actor auth.Actor, token string) (*Order, error) {
	log := logger.FromCtx(ctx).With(zap.Uint("user_id", actor.ID), zap.String("platform", string(payment.PlatformStripe)))

	if actor.ID == 0 {
		return nil, auth.ErrNotLoggedIn
	}
	if strings.TrimSpace(token) == "" {
		return nil, ErrMissingPaymentToken
	}

	lines, total, err := s.loadCart(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	charge, err := s.stripe.Charge(ctx, payment.ChargeParams{
		Amount:         total,
		Currency:       s.currency,
		Source:         token,
		Description:    fmt.Sprintf("order for %s", actor.Email),
		IdempotencyKey: token,
	})
	if err != nil {
		s.metrics.Counter(metrics.PaymentFailures).Inc()
		log.Warn("charge failed", zap.Int("total", total), zap.Error(err))
		return nil, err
	}

	settleCtx, cancel := settleContext(ctx)
	defer cancel()

	o := buildOrder(actor.ID, lines, total)
	o.Charge = charge.ID
	o.PaymentPlatform = payment.PlatformStripe

	saved, err := s.repo.CreateOrderTx(settleCtx, o, cart.IDs(lines))
	if err != nil {
		return nil, s.compensate(settleCtx, o, err)
	}

	s.placed(settleCtx, saved)
	return saved, nil
}

func (s *service) CreateOrderPaystack(ctx context.Context, actor auth.Actor, p PaystackParams) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.Uint("user_id", actor.ID),
		zap.String("platform", string(payment.PlatformPaystack)),
		zap.String("reference", p.Reference),
	)

	if actor.ID == 0 {
		return nil, auth.ErrNotLoggedIn
	}
	if strings.TrimSpace(p.Reference) == "" {
		return nil, payment.ErrEmptyReference
	}

	used, err := s.repo.ExistsByCharge(ctx, payment.PlatformPaystack, p.Reference)
	if err != nil {
		return nil, err
	}
	if used {
		return nil, ErrPaymentAlreadyUsed
	}

	lines, total, err := s.loadCart(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	v, err := s.paystack.Verify(ctx, p.Reference)
	if err != nil {
		s.metrics.Counter(metrics.PaymentFailures).Inc()
		log.Warn("paystack verification failed", zap.Error(err))
		return nil, err
	}
	if !v.Succeeded() {
		s.metrics.Counter(metrics.PaymentFailures).Inc()
		log.Warn("paystack transaction not successful", zap.String("status", v.Status))
		return nil, ErrPaymentNotSuccessful
	}

	settleCtx, cancel := settleContext(ctx)
	defer cancel()

	o := buildOrder(actor.ID, lines, total)
	o.Charge = p.Reference
	o.PaymentPlatform = payment.PlatformPaystack
	o.Reference = &p.Reference
	o.Trans = p.Trans
	o.Transaction = p.Transaction
	o.Trxref = p.Trxref

	if v.Amount != total {
		s.metrics.Counter(metrics.PaymentFailures).Inc()
		log.Warn("paystack amount mismatch", zap.Int("paid", v.Amount), zap.Int("total", total))
		return nil, s.compensate(settleCtx, o, ErrAmountMismatch)
	}

	saved, err := s.repo.CreateOrderTx(settleCtx, o, cart.IDs(lines))
	if err != nil {
		return nil, s.compensate(settleCtx, o, err)
	}

	s.placed(settleCtx, saved)
	return saved, nil
}

func (s *service) GetOrder(ctx context.Context, actor auth.Actor, id uint) (*Order, error) {
	if actor.ID == 0 {
		return nil, ErrNotLoggedIn
	}

	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if o.UserID != actor.ID && !actor.Can(auth.PermissionAdmin) {
		logger.FromCtx(ctx).Warn("order access denied", zap.Uint("order_id", id), zap.Uint("user_id", actor.ID))
		return nil, ErrCannotSeeOrder
	}
	return o, nil
}

func (s *service) ListOrders(ctx context.Context, actor auth.Actor, sort *Sort) ([]*Order, error) {
	if actor.ID == 0 {
		return nil, ErrNotLoggedIn
	}
	return s.repo.ListByUser(ctx, actor.ID, sort)
}

// ReconcilePaystackCharge flags a settled Paystack charge that no order records.
// Paystack usually calls before the browser finishes checkout, so a charge
// without an order is rechecked after the reconcile delay before it is flagged.
func (s *service) ReconcilePaystackCharge(ctx context.Context, reference string, amount int) error {
	exists, err := s.repo.ExistsByCharge(ctx, payment.PlatformPaystack, reference)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	logger.FromCtx(ctx).Info("paystack charge has no order yet, rechecking later",
		zap.String("reference", reference),
		zap.Duration("delay", s.reconcileDelay),
	)

	recheckCtx := context.WithoutCancel(ctx)
	s.after(s.reconcileDelay, func() {
		ctx, cancel := context.WithTimeout(recheckCtx, SettleTimeout)
		defer cancel()
		if err := s.flagOrphanCharge(ctx, reference, amount); err != nil {
			logger.FromCtx(ctx).Error("paystack reconcile recheck failed",
				zap.String("reference", reference),
				zap.Error(err),
			)
		}
	})
	return nil
}

func (s *service) flagOrphanCharge(ctx context.Context, reference string, amount int) error {
	exists, err := s.repo.ExistsByCharge(ctx, payment.PlatformPaystack, reference)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	s.metrics.Counter(metrics.Unreconciled).Inc()
	logger.FromCtx(ctx).Warn("paystack charge without order",
		zap.String("reference", reference),
		zap.Int("amount", amount),
	)
	return s.publisher.Publish(ctx, chargeKey(payment.PlatformPaystack, reference),
		events.New(events.PaymentUnreconciled, map[string]any{
			"platform":  payment.PlatformPaystack,
			"charge":    reference,
			"amount":    amount,
			"source":    "webhook",
			"refunded":  false,
			"has_order": false,
		}))
}

func (s *service) loadCart(ctx context.Context, userID uint) ([]*cart.CartItem, int, error) {
	lines, err := s.carts.ListByUser(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	if len(lines) == 0 {
		return nil, 0, cart.ErrCartEmpty
	}
	return lines, cart.Total(lines), nil
}

// compensate returns money taken for an order that could not be stored.
func (s *service) compensate(ctx context.Context, o *Order, cause error) error {
	log := logger.FromCtx(ctx).With(
		zap.Uint("user_id", o.UserID),
		zap.String("platform", string(o.PaymentPlatform)),
		zap.String("charge", o.Charge),
		zap.Int("total", o.Total),
	)

	// The charge backs another order already; refunding would undo that one.
	if errors.Is(cause, ErrPaymentAlreadyUsed) {
		return cause
	}

	var refundErr error
	switch o.PaymentPlatform {
	case payment.PlatformStripe:
		_, refundErr = s.stripe.Refund(ctx, o.Charge)
	case payment.PlatformPaystack:
		_, refundErr = s.paystack.Refund(ctx, o.Charge)
	default:
		refundErr = fmt.Errorf("unknown payment platform %q", o.PaymentPlatform)
	}

	if refundErr == nil {
		s.metrics.Counter(metrics.Refunds).Inc()
		log.Warn("order not stored, payment refunded", zap.Error(cause))
		return fmt.Errorf("your payment was refunded: %w", cause)
	}

	s.metrics.Counter(metrics.Unreconciled).Inc()
	log.Error("order not stored and refund failed",
		zap.NamedError("cause", cause),
		zap.NamedError("refund_error", refundErr),
	)

	pubErr := s.publisher.Publish(ctx, chargeKey(o.PaymentPlatform, o.Charge),
		events.New(events.PaymentUnreconciled, map[string]any{
			"platform":     o.PaymentPlatform,
			"charge":       o.Charge,
			"amount":       o.Total,
			"user_id":      o.UserID,
			"source":       "checkout",
			"refunded":     false,
			"cause":        cause.Error(),
			"refund_error": refundErr.Error(),
		}))
	if pubErr != nil {
		log.Error("failed to publish unreconciled payment", zap.Error(pubErr))
	}

	return fmt.Errorf("your payment could not be recorded, please contact support: %w", cause)
}

func (s *service) placed(ctx context.Context, o *Order) {
	s.metrics.Counter(metrics.OrdersCreated).Inc()

	log := logger.FromCtx(ctx)
	log.Info("order placed",
		zap.Uint("order_id", o.ID),
		zap.Uint("user_id", o.UserID),
		zap.Int("total", o.Total),
		zap.String("platform", string(o.PaymentPlatform)),
	)

	err := s.publisher.Publish(ctx, fmt.Sprintf("order-%d", o.ID),
		events.New(events.OrderPlaced, map[string]any{
			"order_id": o.ID,
			"user_id":  o.UserID,
			"total":    o.Total,
			"platform": o.PaymentPlatform,
			"charge":   o.Charge,
			"items":    len(o.Items),
		}))
	if err != nil {
		log.Warn("failed to publish order placed", zap.Uint("order_id", o.ID), zap.Error(err))
	}
}

func buildOrder(userID uint, lines []*cart.CartItem, total int) *Order {
	o := &Order{
		UserID: userID,
		Total:  total,
		Items:  make([]OrderItem, 0, len(lines)),
	}
	for _, l := range lines {
		itemID := l.Item.ID
		o.Items = append(o.Items, OrderItem{
			ItemID:      &itemID,
			Title:       l.Item.Title,
			Description: l.Item.Description,
			Image:       l.Item.Image,
			LargeImage:  l.Item.LargeImage,
			Price:       l.Item.Price,
			Quantity:    l.Quantity,
			UserID:      userID,
		})
	}
	return o
}

func chargeKey(platform payment.Platform, charge string) string {
	return fmt.Sprintf("payment-%s-%s", strings.ToLower(string(platform)), charge)
}
