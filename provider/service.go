package provider

import (
	"context"
	"fmt"
	"sync"
)

// GatewayService manages configured gateway instances and routes
// operations to them by name.
type GatewayService struct {
	gateways       map[string]Gateway
	defaultGateway string
	mu             sync.RWMutex
}

// NewGatewayService creates a new gateway service
func NewGatewayService() *GatewayService {
	return &GatewayService{
		gateways: make(map[string]Gateway),
	}
}

// AddGateway creates a gateway from the default registry, initializes it
// with the given configuration and makes it available under name.
func (s *GatewayService) AddGateway(name string, config map[string]string) error {
	gateway, err := CreateGateway(name)
	if err != nil {
		return err
	}

	if err := gateway.Initialize(config); err != nil {
		return fmt.Errorf("failed to initialize gateway %s: %w", name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.gateways[name] = gateway
	return nil
}

// SetDefaultGateway marks a previously added gateway as the default
func (s *GatewayService) SetDefaultGateway(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.gateways[name]; !exists {
		return fmt.Errorf("gateway '%s' has not been added", name)
	}

	s.defaultGateway = name
	return nil
}

// Gateway returns the gateway registered under name, or the default
// gateway when name is empty.
func (s *GatewayService) Gateway(name string) (Gateway, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if name == "" {
		name = s.defaultGateway
	}
	if name == "" {
		return nil, fmt.Errorf("no default gateway configured")
	}

	gateway, exists := s.gateways[name]
	if !exists {
		return nil, fmt.Errorf("gateway '%s' has not been added", name)
	}

	return gateway, nil
}

// GatewayNames returns the names of all added gateways
func (s *GatewayService) GatewayNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.gateways))
	for name := range s.gateways {
		names = append(names, name)
	}
	return names
}

// SubmitTransaction charges the card through the named gateway
func (s *GatewayService) SubmitTransaction(ctx context.Context, gatewayName string, order Order, card CreditCard, prospect Prospect) (*TransactionResult, error) {
	gateway, err := s.Gateway(gatewayName)
	if err != nil {
		return nil, err
	}
	return gateway.SubmitTransaction(ctx, order, card, prospect)
}

// AuthorizeTransaction places a hold through the named gateway
func (s *GatewayService) AuthorizeTransaction(ctx context.Context, gatewayName string, order Order, card CreditCard, prospect Prospect) (*TransactionResult, error) {
	gateway, err := s.Gateway(gatewayName)
	if err != nil {
		return nil, err
	}
	return gateway.AuthorizeTransaction(ctx, order, card, prospect)
}

// RefundTransaction refunds a sale through the named gateway
func (s *GatewayService) RefundTransaction(ctx context.Context, gatewayName, transactionID string, opts *RefundOptions) (*RawResult, error) {
	gateway, err := s.Gateway(gatewayName)
	if err != nil {
		return nil, err
	}
	return gateway.RefundTransaction(ctx, transactionID, opts)
}

// VoidTransaction releases an authorization through the named gateway
func (s *GatewayService) VoidTransaction(ctx context.Context, gatewayName, authorizationID string, opts *VoidOptions) (*RawResult, error) {
	gateway, err := s.Gateway(gatewayName)
	if err != nil {
		return nil, err
	}
	return gateway.VoidTransaction(ctx, authorizationID, opts)
}

// CreateCustomerProfile stores a card through the named gateway
func (s *GatewayService) CreateCustomerProfile(ctx context.Context, gatewayName string, card CreditCard, prospect Prospect, opts map[string]any) (*CustomerProfileResult, error) {
	gateway, err := s.Gateway(gatewayName)
	if err != nil {
		return nil, err
	}
	return gateway.CreateCustomerProfile(ctx, card, prospect, opts)
}

// ChargeCustomer charges a stored instrument through the named gateway
func (s *GatewayService) ChargeCustomer(ctx context.Context, gatewayName string, order Order, prospect Prospect) (*TransactionResult, error) {
	gateway, err := s.Gateway(gatewayName)
	if err != nil {
		return nil, err
	}
	return gateway.ChargeCustomer(ctx, order, prospect)
}
