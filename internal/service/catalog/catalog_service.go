package catalog

import (
	"context"
	"strings"

	"github.com/styledecor/styledecor/internal/domain"
	"github.com/styledecor/styledecor/internal/repository"
)

type CatalogUseCase interface {
	List(ctx context.Context, category string) ([]domain.Service, error)
	Get(ctx context.Context, id int64) (*domain.Service, error)
	Create(ctx context.Context, actor domain.Account, input ServiceInput) (*domain.Service, error)
	Update(ctx context.Context, id int64, input ServiceInput) (*domain.Service, error)
	Delete(ctx context.Context, id int64) error
}

// Cache holds the unfiltered listing; filtered queries go to the store.
type Cache interface {
	GetServices(ctx context.Context) ([]domain.Service, error)
	SetServices(ctx context.Context, services []domain.Service) error
	InvalidateServices(ctx context.Context) error
}

type CatalogService struct {
	services repository.ServiceRepository
	cache    Cache
}

type ServiceInput struct {
	Name        string  `json:"service_name"`
	Cost        float64 `json:"cost"`
	Unit        string  `json:"unit"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Image       *string `json:"image,omitempty"`
}

func NewCatalogService(services repository.ServiceRepository, cache Cache) *CatalogService {
	return &CatalogService{services: services, cache: cache}
}

func (s *CatalogService) List(ctx context.Context, category string) ([]domain.Service, error) {
	if category == "" && s.cache != nil {
		if cached, err := s.cache.GetServices(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	services, err := s.services.List(ctx, category)
	if err != nil {
		return nil, err
	}
	if category == "" && s.cache != nil {
		_ = s.cache.SetServices(ctx, services)
	}
	return services, nil
}

func (s *CatalogService) Get(ctx context.Context, id int64) (*domain.Service, error) {
	return s.services.GetByID(ctx, id)
}

func (s *CatalogService) Create(ctx context.Context, actor domain.Account, input ServiceInput) (*domain.Service, error) {
	if err := validateInput(&input); err != nil {
		return nil, err
	}

	svc := &domain.Service{
		Name:           input.Name,
		Cost:           input.Cost,
		Unit:           input.Unit,
		Category:       input.Category,
		Description:    input.Description,
		CreatedByEmail: strings.ToLower(actor.Email),
		Image:          input.Image,
	}
	if err := s.services.Create(ctx, svc); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return svc, nil
}

func (s *CatalogService) Update(ctx context.Context, id int64, input ServiceInput) (*domain.Service, error) {
	svc, err := s.services.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		svc.Name = strings.TrimSpace(input.Name)
	}
	if input.Cost != 0 {
		svc.Cost = input.Cost
	}
	if input.Unit != "" {
		svc.Unit = strings.TrimSpace(input.Unit)
	}
	if input.Category != "" {
		svc.Category = strings.TrimSpace(input.Category)
	}
	if input.Description != "" {
		svc.Description = strings.TrimSpace(input.Description)
	}
	if input.Image != nil {
		svc.Image = input.Image
	}

	if svc.Cost < 0 {
		return nil, domain.E(domain.KindInvalidInput, "cost must be a positive number")
	}
	if !domain.ValidServiceUnit(svc.Unit) {
		return nil, domain.Ef(domain.KindInvalidInput, "unknown unit %q", svc.Unit)
	}
	if !domain.ValidServiceCategory(svc.Category) {
		return nil, domain.Ef(domain.KindInvalidInput, "unknown category %q", svc.Category)
	}

	if err := s.services.Update(ctx, svc); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return svc, nil
}

func (s *CatalogService) Delete(ctx context.Context, id int64) error {
	if err := s.services.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *CatalogService) invalidate(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.InvalidateServices(ctx)
	}
}

func validateInput(input *ServiceInput) error {
	input.Name = strings.TrimSpace(input.Name)
	input.Unit = strings.TrimSpace(input.Unit)
	input.Category = strings.TrimSpace(input.Category)
	input.Description = strings.TrimSpace(input.Description)

	if input.Name == "" || input.Unit == "" || input.Category == "" || input.Description == "" {
		return domain.E(domain.KindInvalidInput, "please provide service_name, cost, unit, category, and description")
	}
	if input.Cost <= 0 {
		return domain.E(domain.KindInvalidInput, "cost must be a positive number")
	}
	if !domain.ValidServiceUnit(input.Unit) {
		return domain.Ef(domain.KindInvalidInput, "unknown unit %q", input.Unit)
	}
	if !domain.ValidServiceCategory(input.Category) {
		return domain.Ef(domain.KindInvalidInput, "unknown category %q", input.Category)
	}
	return nil
}

var _ CatalogUseCase = (*CatalogService)(nil)
