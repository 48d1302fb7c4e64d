package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// CatalogUseCase casos de uso CRUD para marcas y categorías.
type CatalogUseCase struct {
	brandRepo    repository.BrandRepository
	categoryRepo repository.CategoryRepository
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(brandRepo repository.BrandRepository, categoryRepo repository.CategoryRepository) *CatalogUseCase {
	return &CatalogUseCase{brandRepo: brandRepo, categoryRepo: categoryRepo}
}

// CreateBrand crea una nueva marca.
func (uc *CatalogUseCase) CreateBrand(in dto.CreateBrandRequest) (*dto.BrandResponse, error) {
	now := time.Now()
	brand := &entity.Brand{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.brandRepo.Create(brand); err != nil {
		return nil, err
	}
	return toBrandResponse(brand), nil
}

// GetBrand obtiene una marca por ID.
func (uc *CatalogUseCase) GetBrand(id string) (*dto.BrandResponse, error) {
	brand, err := uc.brandRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if brand == nil {
		return nil, fmt.Errorf("%w: marca %s", domain.ErrNotFound, id)
	}
	return toBrandResponse(brand), nil
}

// UpdateBrand actualiza una marca.
func (uc *CatalogUseCase) UpdateBrand(id string, in dto.UpdateBrandRequest) (*dto.BrandResponse, error) {
	brand, err := uc.brandRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if brand == nil {
		return nil, fmt.Errorf("%w: marca %s", domain.ErrNotFound, id)
	}
	if in.Name != nil {
		brand.Name = *in.Name
	}
	if in.Status != nil {
		brand.Status = *in.Status
	}
	brand.UpdatedAt = time.Now()
	if err := uc.brandRepo.Update(brand); err != nil {
		return nil, err
	}
	return toBrandResponse(brand), nil
}

// ListBrands lista marcas con paginación.
func (uc *CatalogUseCase) ListBrands(limit, offset int) (*dto.BrandListResponse, error) {
	list, err := uc.brandRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.BrandResponse, 0, len(list))
	for _, b := range list {
		items = append(items, *toBrandResponse(b))
	}
	return &dto.BrandListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// DeleteBrand elimina una marca por ID.
func (uc *CatalogUseCase) DeleteBrand(id string) error {
	return uc.brandRepo.Delete(id)
}

// CreateCategory crea una nueva categoría.
func (uc *CatalogUseCase) CreateCategory(in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	now := time.Now()
	category := &entity.Category{
		ID:        uuid.New().String(),
		ParentID:  in.ParentID,
		Name:      in.Name,
		Code:      in.Code,
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if category.ParentID != "" {
		parent, err := uc.categoryRepo.GetByID(category.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, fmt.Errorf("%w: categoría padre %s", domain.ErrNotFound, category.ParentID)
		}
	}
	if err := uc.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// GetCategory obtiene una categoría por ID.
func (uc *CatalogUseCase) GetCategory(id string) (*dto.CategoryResponse, error) {
	category, err := uc.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, fmt.Errorf("%w: categoría %s", domain.ErrNotFound, id)
	}
	return toCategoryResponse(category), nil
}

// UpdateCategory actualiza una categoría.
func (uc *CatalogUseCase) UpdateCategory(id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	category, err := uc.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, fmt.Errorf("%w: categoría %s", domain.ErrNotFound, id)
	}
	if in.Name != nil {
		category.Name = *in.Name
	}
	if in.Status != nil {
		category.Status = *in.Status
	}
	category.UpdatedAt = time.Now()
	if err := uc.categoryRepo.Update(category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// ListCategories lista categorías con paginación.
func (uc *CatalogUseCase) ListCategories(limit, offset int) (*dto.CategoryListResponse, error) {
	list, err := uc.categoryRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCategoryResponse(c))
	}
	return &dto.CategoryListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// DeleteCategory elimina una categoría por ID.
func (uc *CatalogUseCase) DeleteCategory(id string) error {
	return uc.categoryRepo.Delete(id)
}

func toBrandResponse(b *entity.Brand) *dto.BrandResponse {
	if b == nil {
		return nil
	}
	return &dto.BrandResponse{
		ID:        b.ID,
		Name:      b.Name,
		Status:    b.Status,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	if c == nil {
		return nil
	}
	return &dto.CategoryResponse{
		ID:        c.ID,
		ParentID:  c.ParentID,
		Name:      c.Name,
		Code:      c.Code,
		Status:    c.Status,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
