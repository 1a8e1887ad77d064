package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go-pos-dashboard/internal/model"
	"go-pos-dashboard/internal/repository"
	"go-pos-dashboard/internal/search"
	"go-pos-dashboard/internal/ws"
	"go-pos-dashboard/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Search strategy names accepted by SearchProducts.
const (
	StrategyLinear = "linear"
	StrategyBinary = "binary"
)

type CatalogService interface {
	CreateProduct(req *model.Product, actor string) error
	UpdateProduct(id uuid.UUID, req *model.Product, actor string) (*model.Product, error)
	Restock(id uuid.UUID, quantity int, actor string) error
	GetAllProducts() ([]model.Product, error)
	SearchProducts(key, query, strategy string) ([]model.Product, error)

	AddCategory(name string) (*model.Category, error)
	RenameCategory(id uint, newName string) error
	ListCategories() ([]model.Category, error)

	RegisterCustomer(req *model.Customer, country string) error
	GetCustomer(mobile string) (*model.Customer, error)
	ListCustomers() ([]model.Customer, error)
}

type catalogService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	customerRepo repository.CustomerRepository
	db           *gorm.DB
	wsHub        *ws.Hub
}

func NewCatalogService(
	pRepo repository.ProductRepository,
	catRepo repository.CategoryRepository,
	cRepo repository.CustomerRepository,
	db *gorm.DB,
	hub *ws.Hub,
) CatalogService {
	return &catalogService{
		productRepo:  pRepo,
		categoryRepo: catRepo,
		customerRepo: cRepo,
		db:           db,
		wsHub:        hub,
	}
}

func (s *catalogService) CreateProduct(req *model.Product, actor string) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		return validationErr("validation failed: field '%s' failed on tag '%s'", first.FailedField, first.Tag)
	}

	if _, err := s.categoryRepo.FindByID(req.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return validationErr("unknown category %d", req.CategoryID)
		}
		return consistencyErr("category lookup failed", err)
	}

	req.CreatedBy = actor
	req.UpdatedBy = actor
	if err := s.productRepo.Create(req); err != nil {
		return consistencyErr("product persist failed", err)
	}

	s.broadcastStock("product_created", req, actor)
	return nil
}

func (s *catalogService) UpdateProduct(id uuid.UUID, req *model.Product, actor string) (*model.Product, error) {
	var updated *model.Product

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing model.Product
		if err := tx.Set("gorm:query_option", "FOR UPDATE").First(&existing, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundErr("product %s not found", id)
			}
			return consistencyErr("product lookup failed", err)
		}

		existing.Name = req.Name
		existing.CategoryID = req.CategoryID
		existing.SellingPrice = req.SellingPrice
		existing.CostPrice = req.CostPrice
		existing.Stock = req.Stock
		existing.UpdatedBy = actor

		if errs := validator.ValidateStruct(&existing); len(errs) > 0 {
			first := errs[0]
			return validationErr("validation failed: field '%s' failed on tag '%s'", first.FailedField, first.Tag)
		}
		if err := tx.Save(&existing).Error; err != nil {
			return consistencyErr("product update failed", err)
		}
		updated = &existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.broadcastStock("product_updated", updated, actor)
	return updated, nil
}

// Restock adds quantity units to stock. Quantity must be positive and the
// product must exist; otherwise nothing changes.
func (s *catalogService) Restock(id uuid.UUID, quantity int, actor string) error {
	if quantity <= 0 {
		return validationErr("restock quantity must be positive, got %d", quantity)
	}

	var restocked *model.Product
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var product model.Product
		if err := tx.Set("gorm:query_option", "FOR UPDATE").First(&product, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return validationErr("unknown product %s", id)
			}
			return consistencyErr("product lookup failed", err)
		}
		if err := s.productRepo.AddStock(tx, id, quantity, actor); err != nil {
			return consistencyErr("stock update failed", err)
		}
		product.Stock += quantity
		restocked = &product
		return nil
	})
	if err != nil {
		return err
	}

	s.broadcastStock("product_restocked", restocked, actor)
	return nil
}

func (s *catalogService) GetAllProducts() ([]model.Product, error) {
	return s.productRepo.FindAll()
}

// SearchProducts runs one of the two lookup strategies over the full product
// list. Both return the same set of prefix matches; their ordering differs
// and that difference is part of the contract.
func (s *catalogService) SearchProducts(key, query, strategy string) ([]model.Product, error) {
	products, err := s.productRepo.FindAll()
	if err != nil {
		return nil, consistencyErr("product list failed", err)
	}

	switch strategy {
	case StrategyBinary:
		return search.Binary(products, key, query), nil
	case StrategyLinear, "":
		return search.Linear(products, key, query), nil
	default:
		return nil, validationErr("unknown search strategy %q", strategy)
	}
}

func (s *catalogService) AddCategory(name string) (*model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, validationErr("category name is required")
	}

	// The unique index is the duplicate check; a pre-lookup would race with
	// concurrent inserts.
	category := &model.Category{Name: name}
	if err := s.categoryRepo.Create(category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, conflictErr("category %q already exists", name)
		}
		return nil, consistencyErr("category persist failed", err)
	}
	return category, nil
}

func (s *catalogService) RenameCategory(id uint, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return validationErr("category name is required")
	}
	if _, err := s.categoryRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundErr("category %d not found", id)
		}
		return consistencyErr("category lookup failed", err)
	}
	if err := s.categoryRepo.Rename(id, newName); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return conflictErr("category %q already exists", newName)
		}
		return consistencyErr("category rename failed", err)
	}
	return nil
}

func (s *catalogService) ListCategories() ([]model.Category, error) {
	return s.categoryRepo.FindAll()
}

// RegisterCustomer creates a customer keyed by mobile number, validated
// against the per-country numeric pattern.
func (s *catalogService) RegisterCustomer(req *model.Customer, country string) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		return validationErr("validation failed: field '%s' failed on tag '%s'", first.FailedField, first.Tag)
	}
	if country == "" {
		country = "IN"
	}
	if !model.ValidMobile(country, req.Mobile) {
		return validationErr("mobile %q is not a valid %s number", req.Mobile, country)
	}
	if err := s.customerRepo.Create(req); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return conflictErr("customer %s already registered", req.Mobile)
		}
		return consistencyErr("customer persist failed", err)
	}
	return nil
}

func (s *catalogService) GetCustomer(mobile string) (*model.Customer, error) {
	customer, err := s.customerRepo.FindByMobile(mobile)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundErr("customer %s not found", mobile)
		}
		return nil, consistencyErr("customer lookup failed", err)
	}
	return customer, nil
}

func (s *catalogService) ListCustomers() ([]model.Customer, error) {
	return s.customerRepo.FindAll()
}

func (s *catalogService) broadcastStock(action string, product *model.Product, actor string) {
	if s.wsHub == nil || product == nil {
		return
	}
	go func() {
		payload := map[string]interface{}{
			"type":   "stock_update",
			"action": action,
			"product": map[string]interface{}{
				"id":    product.ID,
				"name":  product.Name,
				"stock": product.Stock,
				"price": product.SellingPrice,
			},
			"message": fmt.Sprintf("%s: %s '%s'", actor, action, product.Name),
		}
		msg, _ := json.Marshal(payload)
		s.wsHub.Broadcast <- msg
	}()
}
