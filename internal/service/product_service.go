package service

import (
	"errors"

	"go-retail-pos/internal/model"
	"go-retail-pos/internal/repository"
	"go-retail-pos/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductService interface {
	GetAllProducts(category, search string) ([]model.Product, error)
	GetProductByID(id uuid.UUID) (*model.Product, error)
	CreateProduct(req *model.CreateProductRequest) (*model.Product, error)
	UpdateProduct(id uuid.UUID, req *model.UpdateProductRequest) (*model.Product, error)
	DeleteProduct(id uuid.UUID) error
}

type productService struct {
	productRepo   repository.ProductRepository
	inventoryRepo repository.InventoryRepository
	db            *gorm.DB
}

func NewProductService(productRepo repository.ProductRepository, inventoryRepo repository.InventoryRepository, db *gorm.DB) ProductService {
	return &productService{
		productRepo:   productRepo,
		inventoryRepo: inventoryRepo,
		db:            db,
	}
}

func (s *productService) GetAllProducts(category, search string) ([]model.Product, error) {
	products, err := s.productRepo.FindAll(category, search)
	if err != nil {
		return nil, model.NewPersistenceError("product.findAll", err)
	}
	return products, nil
}

func (s *productService) GetProductByID(id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.NewNotFoundError("product", id.String())
		}
		return nil, model.NewPersistenceError("product.findByID", err)
	}
	return product, nil
}

// CreateProduct writes the product together with its zero-stock inventory
// row in one transaction. Every product owns exactly one inventory ledger.
func (s *productService) CreateProduct(req *model.CreateProductRequest) (*model.Product, error) {
	if msg := validator.FirstError(req); msg != "" {
		return nil, model.NewValidationError("%s", msg)
	}

	existing, err := s.productRepo.FindBySKU(req.SKU)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, model.NewPersistenceError("product.findBySKU", err)
	}
	if existing != nil {
		return nil, model.NewConflictError("product with SKU %s already exists", req.SKU)
	}

	product, err := model.NewProduct(*req)
	if err != nil {
		return nil, err
	}
	product.ID = uuid.New()

	inventory, err := model.NewInventory(product.ID, 0, model.DefaultReorderThreshold)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.productRepo.Create(tx, product); err != nil {
			return err
		}
		return s.inventoryRepo.Create(tx, inventory)
	})
	if err != nil {
		return nil, model.NewPersistenceError("product.create", err)
	}

	product.Inventory = inventory
	return product, nil
}

func (s *productService) UpdateProduct(id uuid.UUID, req *model.UpdateProductRequest) (*model.Product, error) {
	product, err := s.GetProductByID(id)
	if err != nil {
		return nil, err
	}

	if req.SKU != nil && *req.SKU != product.SKU {
		existing, err := s.productRepo.FindBySKU(*req.SKU)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.NewPersistenceError("product.findBySKU", err)
		}
		if existing != nil {
			return nil, model.NewConflictError("product with SKU %s already exists", *req.SKU)
		}
	}

	if err := product.ApplyUpdate(*req); err != nil {
		return nil, err
	}
	if err := s.productRepo.Update(product); err != nil {
		return nil, model.NewPersistenceError("product.update", err)
	}
	return product, nil
}

func (s *productService) DeleteProduct(id uuid.UUID) error {
	if _, err := s.GetProductByID(id); err != nil {
		return err
	}
	if err := s.productRepo.Delete(id); err != nil {
		return model.NewPersistenceError("product.delete", err)
	}
	return nil
}
