package usecase

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/data/entity"
	"storefront/internal/data/repository"
	"storefront/internal/dto/request"
	"storefront/internal/dto/response"
	"storefront/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ProductService interface {
	List(ctx context.Context, page, perPage int) ([]response.ProductResponse, int64, error)
	Get(ctx context.Context, id uuid.UUID) (*response.ProductResponse, error)
	GetBySlug(ctx context.Context, slug string) (*response.ProductResponse, error)
	Create(ctx context.Context, req *request.ProductRequest) (*response.ProductResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *request.ProductRequest) (*response.ProductResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type productService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewProductService(repo *repository.Repository, log *zap.Logger) ProductService {
	return &productService{
		repo: repo,
		log:  log,
	}
}

func (s *productService) List(ctx context.Context, page, perPage int) ([]response.ProductResponse, int64, error) {
	offset := (page - 1) * perPage

	products, err := s.repo.Product.FindAll(ctx, perPage, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products")
	}

	total, err := s.repo.Product.CountAll(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count products")
	}

	return response.ProductsToResponse(products), total, nil
}

func (s *productService) Get(ctx context.Context, id uuid.UUID) (*response.ProductResponse, error) {
	product, err := s.repo.Product.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find product")
	}
	if product == nil {
		return nil, ErrNotFound
	}

	resp := response.ProductToResponse(product)
	return &resp, nil
}

func (s *productService) GetBySlug(ctx context.Context, slug string) (*response.ProductResponse, error) {
	product, err := s.repo.Product.FindBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to find product")
	}
	if product == nil {
		return nil, ErrNotFound
	}

	resp := response.ProductToResponse(product)
	return &resp, nil
}

func (s *productService) Create(ctx context.Context, req *request.ProductRequest) (*response.ProductResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Product validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	existing, err := s.repo.Product.FindBySlug(ctx, req.Slug)
	if err != nil {
		return nil, fmt.Errorf("failed to check slug")
	}
	if existing != nil {
		return nil, fmt.Errorf("slug already taken")
	}

	now := time.Now()
	product := &entity.Product{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Price:       req.Price,
		Currency:    req.Currency,
		ImageURL:    req.ImageURL,
		InStock:     req.InStock,
	}

	if err := s.repo.Product.Create(ctx, product); err != nil {
		s.log.Error("Failed to create product", zap.Error(err), zap.String("slug", req.Slug))
		return nil, fmt.Errorf("failed to create product")
	}

	s.log.Info("Product created",
		zap.String("product_id", product.ID.String()),
		zap.String("slug", product.Slug))

	resp := response.ProductToResponse(product)
	return &resp, nil
}

func (s *productService) Update(ctx context.Context, id uuid.UUID, req *request.ProductRequest) (*response.ProductResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Product validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	product, err := s.repo.Product.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find product")
	}
	if product == nil {
		return nil, ErrNotFound
	}

	product.Name = req.Name
	product.Slug = req.Slug
	product.Description = req.Description
	product.Price = req.Price
	product.Currency = req.Currency
	product.ImageURL = req.ImageURL
	product.InStock = req.InStock
	product.UpdatedAt = time.Now()

	if err := s.repo.Product.Update(ctx, product); err != nil {
		s.log.Error("Failed to update product", zap.Error(err), zap.String("product_id", id.String()))
		return nil, fmt.Errorf("failed to update product")
	}

	resp := response.ProductToResponse(product)
	return &resp, nil
}

func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Product.Delete(ctx, id); err != nil {
		return fmt.Errorf("product not found")
	}
	return nil
}
