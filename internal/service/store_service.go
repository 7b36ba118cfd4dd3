package service

import (
	"fmt"
	"log"

	"pawhaven/internal/db"
	"pawhaven/internal/entities"
	"pawhaven/internal/repository"

	"github.com/google/uuid"
)

const (
	orderPending  = "pending"
	orderPaid     = "paid"
	orderCanceled = "canceled"
	orderRefunded = "refunded"
)

type StoreService struct {
	Repo          *repository.StoreRepository
	OrderRepo     *repository.OrderRepository
	UserRepo      repository.UserRepository
	stripeService *StripeService
	sender        *SenderService
}

func NewStoreService(repo *repository.StoreRepository, orderRepo *repository.OrderRepository, userRepo repository.UserRepository, stripeService *StripeService, sender *SenderService) *StoreService {
	return &StoreService{
		Repo:          repo,
		OrderRepo:     orderRepo,
		UserRepo:      userRepo,
		stripeService: stripeService,
		sender:        sender,
	}
}

func (s *StoreService) CreateProduct(req entities.ProductRequest) (*db.Product, error) {
	p := &db.Product{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		PriceCents:  req.PriceCents,
		Stock:       req.Stock,
		PhotoURL:    req.PhotoURL,
	}
	if err := s.Repo.CreateProduct(p); err != nil {
		return nil, fmt.Errorf("error creating product: %w", err)
	}
	return p, nil
}

func (s *StoreService) UpdateProduct(id int, req entities.ProductRequest) error {
	p, err := s.Repo.GetProductByID(id)
	if err != nil {
		return err
	}
	p.Name = req.Name
	p.Description = req.Description
	p.Category = req.Category
	p.PriceCents = req.PriceCents
	p.Stock = req.Stock
	p.PhotoURL = req.PhotoURL
	return s.Repo.UpdateProduct(p)
}

func (s *StoreService) DeleteProduct(id int) error {
	return s.Repo.DeleteProduct(id)
}

func (s *StoreService) GetProduct(id int) (*db.Product, error) {
	return s.Repo.GetProductByID(id)
}

func (s *StoreService) ListProducts(category string) ([]db.Product, error) {
	return s.Repo.ListProducts(category)
}

func (s *StoreService) AddToCart(userID int, req entities.CartItemRequest) error {
	product, err := s.Repo.GetProductByID(req.ProductID)
	if err != nil {
		return err
	}
	if product.Stock < req.Quantity {
		return fmt.Errorf("only %d of %q in stock", product.Stock, product.Name)
	}
	return s.Repo.UpsertCartItem(userID, req.ProductID, req.Quantity)
}

func (s *StoreService) RemoveFromCart(userID, productID int) error {
	return s.Repo.RemoveCartItem(userID, productID)
}

func (s *StoreService) ClearCart(userID int) error {
	return s.Repo.ClearCart(userID)
}

func (s *StoreService) GetCart(userID int) (*entities.CartResponse, error) {
	items, err := s.Repo.GetCart(userID)
	if err != nil {
		return nil, err
	}
	resp := &entities.CartResponse{Items: items}
	for _, it := range items {
		resp.TotalCents += it.LineTotalCents
	}
	return resp, nil
}

// Checkout snapshots the cart into a pending order and opens a Stripe
// Checkout session. Stock is not touched until the payment webhook lands.
func (s *StoreService) Checkout(userID int) (*entities.CheckoutResponse, error) {
	cart, err := s.GetCart(userID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, fmt.Errorf("cart is empty")
	}
	for _, it := range cart.Items {
		product, err := s.Repo.GetProductByID(it.ProductID)
		if err != nil {
			return nil, err
		}
		if product.Stock < it.Quantity {
			return nil, fmt.Errorf("only %d of %q in stock", product.Stock, product.Name)
		}
	}

	user, err := s.UserRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %d not found", userID)
	}

	code := uuid.NewString()
	sessionURL, sessionID, err := s.stripeService.CreateCheckoutSession(
		int64(cart.TotalCents), "eur", fmt.Sprintf("PawHaven order %s", code), user.Email)
	if err != nil {
		return nil, fmt.Errorf("error creating checkout session: %w", err)
	}

	order := &db.Order{
		Code:            code,
		UserID:          userID,
		TotalCents:      cart.TotalCents,
		Status:          orderPending,
		PaymentStatus:   orderPending,
		StripeSessionID: sessionID,
	}
	items := make([]db.OrderItem, 0, len(cart.Items))
	for _, it := range cart.Items {
		items = append(items, db.OrderItem{
			ProductID:      it.ProductID,
			Quantity:       it.Quantity,
			UnitPriceCents: it.UnitPriceCents,
		})
	}
	if err := s.OrderRepo.CreateOrder(order, items); err != nil {
		log.Printf("Error creating order in repository: %v", err)
		return nil, err
	}

	return &entities.CheckoutResponse{
		OrderCode: code,
		URL:       sessionURL,
		SessionID: sessionID,
	}, nil
}

// SettlePaidOrder is invoked by the Stripe webhook on checkout.session.completed.
func (s *StoreService) SettlePaidOrder(sessionID, paymentIntentID string) error {
	order, err := s.OrderRepo.GetOrderByStripeSessionID(sessionID)
	if err != nil {
		return err
	}
	if order.Status == orderPaid {
		// duplicate webhook delivery
		return nil
	}
	if err := s.OrderRepo.MarkPaidAndDecrementStock(order.ID, order.UserID, paymentIntentID); err != nil {
		return err
	}

	user, err := s.UserRepo.GetByID(order.UserID)
	if err != nil || user == nil {
		log.Printf("Order %s settled but buyer %d could not be loaded for receipt", order.Code, order.UserID)
		return nil
	}
	s.sender.SendOrderEmail(user.Email, user.Name, order.Code, order.TotalCents, orderPaid)
	return nil
}

// MarkOrderRefunded is invoked by the Stripe webhook on charge.refunded.
func (s *StoreService) MarkOrderRefunded(sessionID string) error {
	order, err := s.OrderRepo.GetOrderByStripeSessionID(sessionID)
	if err != nil {
		return err
	}
	return s.OrderRepo.UpdateOrderAndPaymentStatus(order.ID, orderCanceled, orderRefunded)
}

func (s *StoreService) CancelOrder(userID int, code string) error {
	order, err := s.OrderRepo.GetOrderByCode(code)
	if err != nil {
		return err
	}
	if order.UserID != userID {
		return fmt.Errorf("order %q does not belong to caller", code)
	}
	switch order.Status {
	case orderPending:
		return s.OrderRepo.UpdateOrderAndPaymentStatus(order.ID, orderCanceled, order.PaymentStatus)
	case orderPaid:
		if err := s.stripeService.RefundPaymentBySessionID(order.StripeSessionID); err != nil {
			return err
		}
		// final status lands via the charge.refunded webhook
		return nil
	default:
		return fmt.Errorf("order %q cannot be canceled in status %q", code, order.Status)
	}
}

func (s *StoreService) GetOrder(userID int, code string) (*entities.OrderResponse, error) {
	order, err := s.OrderRepo.GetOrderByCode(code)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, fmt.Errorf("order %q does not belong to caller", code)
	}
	items, err := s.OrderRepo.ListOrderItems(order.ID)
	if err != nil {
		return nil, err
	}
	return &entities.OrderResponse{
		Code:          order.Code,
		TotalCents:    order.TotalCents,
		Status:        order.Status,
		PaymentStatus: order.PaymentStatus,
		Items:         items,
		CreatedAt:     order.CreatedAt,
	}, nil
}

func (s *StoreService) ListOrders(userID int) ([]entities.OrderResponse, error) {
	return s.OrderRepo.ListOrdersByUser(userID)
}

func (s *StoreService) GetOrderBySessionID(sessionID string) (*entities.OrderResponse, error) {
	order, err := s.OrderRepo.GetOrderByStripeSessionID(sessionID)
	if err != nil {
		return nil, err
	}
	return &entities.OrderResponse{
		Code:          order.Code,
		TotalCents:    order.TotalCents,
		Status:        order.Status,
		PaymentStatus: order.PaymentStatus,
		CreatedAt:     order.CreatedAt,
	}, nil
}
