package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sursrinu/artandcraft-platform/internal/apperr"
	"github.com/sursrinu/artandcraft-platform/internal/logging"
	"github.com/sursrinu/artandcraft-platform/internal/models"
	"github.com/sursrinu/artandcraft-platform/internal/repo"
)

// ProductIndexer keeps the search index in sync; satisfied by
// search.Indexer. Indexing failures are logged, never surfaced.
type ProductIndexer interface {
	IndexProduct(ctx context.Context, p *models.Product) error
	DeleteProduct(ctx context.Context, id uint) error
}

type ProductService struct {
	Repo     *repo.GormRepo
	Producer EventPublisher
	Indexer  ProductIndexer
}

type ProductInput struct {
	Name               string
	Description        string
	CategoryID         uint
	Price              decimal.Decimal
	DiscountPercentage decimal.Decimal
	Stock              int
}

func (in *ProductInput) validate() error {
	if in.Name == "" {
		return apperr.Validation(apperr.CodeValidation, "name is required")
	}
	if in.Price.IsNegative() {
		return apperr.Validation(apperr.CodeValidation, "price must be >= 0")
	}
	if in.Stock < 0 {
		return apperr.Validation(apperr.CodeValidation, "stock must be >= 0")
	}
	return nil
}

func (s *ProductService) index(ctx context.Context, p *models.Product) {
	if s.Indexer == nil {
		return
	}
	if err := s.Indexer.IndexProduct(ctx, p); err != nil {
		logging.FromContext(ctx).Error("product_index_error", "product_id", p.ID, "error", err)
	}
}

func (s *ProductService) Create(ctx context.Context, vendorID uint, in ProductInput) (*models.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	product := models.Product{
		VendorID:           vendorID,
		CategoryID:         in.CategoryID,
		Name:               in.Name,
		Description:        in.Description,
		Price:              in.Price,
		DiscountPercentage: in.DiscountPercentage,
		Stock:              in.Stock,
	}
	if err := s.Repo.CreateProduct(ctx, &product); err != nil {
		return nil, err
	}

	s.index(ctx, &product)
	publish(ctx, s.Producer, TopicProductEvents, fmt.Sprint(product.ID), map[string]interface{}{
		"type":       "product_created",
		"product_id": product.ID,
		"vendor_id":  vendorID,
		"name":       product.Name,
	})
	return &product, nil
}

// Update is vendor-scoped; vendorID 0 (admin) skips the ownership check.
func (s *ProductService) Update(ctx context.Context, productID, vendorID uint, in ProductInput) (*models.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	product, err := s.Repo.ProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Product not found")
		}
		return nil, err
	}
	if vendorID != 0 && product.VendorID != vendorID {
		return nil, apperr.Forbidden("Product belongs to another vendor")
	}

	product.Name = in.Name
	product.Description = in.Description
	product.CategoryID = in.CategoryID
	product.Price = in.Price
	product.DiscountPercentage = in.DiscountPercentage
	product.Stock = in.Stock

	if err := s.Repo.SaveProduct(ctx, product); err != nil {
		return nil, err
	}

	s.index(ctx, product)
	publish(ctx, s.Producer, TopicProductEvents, fmt.Sprint(product.ID), map[string]interface{}{
		"type":       "product_updated",
		"product_id": product.ID,
	})
	return product, nil
}

func (s *ProductService) Delete(ctx context.Context, productID, vendorID uint) error {
	product, err := s.Repo.ProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Product not found")
		}
		return err
	}
	if vendorID != 0 && product.VendorID != vendorID {
		return apperr.Forbidden("Product belongs to another vendor")
	}

	if err := s.Repo.DeleteProduct(ctx, productID); err != nil {
		return err
	}

	if s.Indexer != nil {
		if err := s.Indexer.DeleteProduct(ctx, productID); err != nil {
			logging.FromContext(ctx).Error("product_index_error", "product_id", productID, "error", err)
		}
	}
	publish(ctx, s.Producer, TopicProductEvents, fmt.Sprint(productID), map[string]interface{}{
		"type":       "product_deleted",
		"product_id": productID,
	})
	return nil
}

func (s *ProductService) Get(ctx context.Context, productID uint) (*models.Product, error) {
	product, err := s.Repo.ProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Product not found")
		}
		return nil, err
	}
	return product, nil
}

func (s *ProductService) List(ctx context.Context, offset, limit int) ([]models.Product, int64, error) {
	return s.Repo.Products(ctx, offset, limit)
}

func (s *ProductService) CreateCategory(ctx context.Context, name, description string) (*models.Category, error) {
	if name == "" {
		return nil, apperr.Validation(apperr.CodeValidation, "name is required")
	}
	category := models.Category{Name: name, Description: description}
	if err := s.Repo.CreateCategory(ctx, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *ProductService) Categories(ctx context.Context) ([]models.Category, error) {
	return s.Repo.Categories(ctx)
}
