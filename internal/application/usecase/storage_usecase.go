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

// StorageUseCase casos de uso CRUD para sucursales y bodegas.
type StorageUseCase struct {
	branchRepo   repository.BranchRepository
	locationRepo repository.StorageLocationRepository
}

// NewStorageUseCase construye el caso de uso.
func NewStorageUseCase(branchRepo repository.BranchRepository, locationRepo repository.StorageLocationRepository) *StorageUseCase {
	return &StorageUseCase{branchRepo: branchRepo, locationRepo: locationRepo}
}

// CreateBranch crea una nueva sucursal.
func (uc *StorageUseCase) CreateBranch(in dto.CreateBranchRequest) (*dto.BranchResponse, error) {
	now := time.Now()
	branch := &entity.Branch{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Address:   in.Address,
		Phone:     in.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.branchRepo.Create(branch); err != nil {
		return nil, err
	}
	return toBranchResponse(branch), nil
}

// GetBranch obtiene una sucursal por ID.
func (uc *StorageUseCase) GetBranch(id string) (*dto.BranchResponse, error) {
	branch, err := uc.branchRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, fmt.Errorf("%w: sucursal %s", domain.ErrNotFound, id)
	}
	return toBranchResponse(branch), nil
}

// UpdateBranch actualiza una sucursal.
func (uc *StorageUseCase) UpdateBranch(id string, in dto.UpdateBranchRequest) (*dto.BranchResponse, error) {
	branch, err := uc.branchRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, fmt.Errorf("%w: sucursal %s", domain.ErrNotFound, id)
	}
	if in.Name != nil {
		branch.Name = *in.Name
	}
	if in.Address != nil {
		branch.Address = *in.Address
	}
	if in.Phone != nil {
		branch.Phone = *in.Phone
	}
	branch.UpdatedAt = time.Now()
	if err := uc.branchRepo.Update(branch); err != nil {
		return nil, err
	}
	return toBranchResponse(branch), nil
}

// ListBranches lista sucursales con paginación.
func (uc *StorageUseCase) ListBranches(limit, offset int) (*dto.BranchListResponse, error) {
	list, err := uc.branchRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.BranchResponse, 0, len(list))
	for _, b := range list {
		items = append(items, *toBranchResponse(b))
	}
	return &dto.BranchListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// DeleteBranch elimina una sucursal por ID.
func (uc *StorageUseCase) DeleteBranch(id string) error {
	return uc.branchRepo.Delete(id)
}

// CreateLocation crea una bodega dentro de una sucursal existente.
func (uc *StorageUseCase) CreateLocation(in dto.CreateStorageLocationRequest) (*dto.StorageLocationResponse, error) {
	branch, err := uc.branchRepo.GetByID(in.BranchID)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, fmt.Errorf("%w: sucursal %s", domain.ErrNotFound, in.BranchID)
	}
	now := time.Now()
	location := &entity.StorageLocation{
		ID:        uuid.New().String(),
		BranchID:  in.BranchID,
		Name:      in.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.locationRepo.Create(location); err != nil {
		return nil, err
	}
	return toStorageLocationResponse(location), nil
}

// GetLocation obtiene una bodega por ID.
func (uc *StorageUseCase) GetLocation(id string) (*dto.StorageLocationResponse, error) {
	location, err := uc.locationRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, fmt.Errorf("%w: bodega %s", domain.ErrNotFound, id)
	}
	return toStorageLocationResponse(location), nil
}

// UpdateLocation actualiza una bodega.
func (uc *StorageUseCase) UpdateLocation(id string, in dto.UpdateStorageLocationRequest) (*dto.StorageLocationResponse, error) {
	location, err := uc.locationRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, fmt.Errorf("%w: bodega %s", domain.ErrNotFound, id)
	}
	if in.Name != nil {
		location.Name = *in.Name
	}
	location.UpdatedAt = time.Now()
	if err := uc.locationRepo.Update(location); err != nil {
		return nil, err
	}
	return toStorageLocationResponse(location), nil
}

// ListLocations lista las bodegas de una sucursal con paginación.
func (uc *StorageUseCase) ListLocations(branchID string, limit, offset int) (*dto.StorageLocationListResponse, error) {
	list, err := uc.locationRepo.ListByBranch(branchID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StorageLocationResponse, 0, len(list))
	for _, l := range list {
		items = append(items, *toStorageLocationResponse(l))
	}
	return &dto.StorageLocationListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// DeleteLocation elimina una bodega por ID.
func (uc *StorageUseCase) DeleteLocation(id string) error {
	return uc.locationRepo.Delete(id)
}

func toBranchResponse(b *entity.Branch) *dto.BranchResponse {
	if b == nil {
		return nil
	}
	return &dto.BranchResponse{
		ID:        b.ID,
		Name:      b.Name,
		Address:   b.Address,
		Phone:     b.Phone,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func toStorageLocationResponse(l *entity.StorageLocation) *dto.StorageLocationResponse {
	if l == nil {
		return nil
	}
	return &dto.StorageLocationResponse{
		ID:        l.ID,
		BranchID:  l.BranchID,
		Name:      l.Name,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}
