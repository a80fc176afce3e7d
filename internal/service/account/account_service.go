package account

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/styledecor/styledecor/internal/auth"
	"github.com/styledecor/styledecor/internal/domain"
	"github.com/styledecor/styledecor/internal/repository"
)

type AccountUseCase interface {
	Register(ctx context.Context, ident auth.Identity, input RegisterInput) (*domain.Account, error)
	ResolveSubject(ctx context.Context, subjectID string) (*domain.Account, error)
	Promote(ctx context.Context, accountID int64, specialties []string) (*PromotionResult, error)
	ApproveDecorator(ctx context.Context, decoratorID int64) (*domain.Decorator, error)
	DisableDecorator(ctx context.Context, decoratorID int64) (*domain.Decorator, error)
	ListAccounts(ctx context.Context) ([]domain.Account, error)
	ListDecorators(ctx context.Context) ([]domain.Decorator, error)
	TopDecorators(ctx context.Context) ([]domain.Decorator, error)
}

// Cache holds the top-decorators listing between reads.
type Cache interface {
	GetTopDecorators(ctx context.Context) ([]domain.Decorator, error)
	SetTopDecorators(ctx context.Context, decorators []domain.Decorator) error
}

type AccountService struct {
	accounts   repository.AccountRepository
	decorators repository.DecoratorRepository
	cache      Cache
	logger     *zap.Logger
}

type RegisterInput struct {
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Image *string `json:"image,omitempty"`
}

// PromotionResult reports both sides of a committed promotion.
type PromotionResult struct {
	Account   *domain.Account   `json:"account"`
	Decorator *domain.Decorator `json:"decorator"`
}

const topDecoratorsLimit = 10

func NewAccountService(accounts repository.AccountRepository, decorators repository.DecoratorRepository, cache Cache, logger *zap.Logger) *AccountService {
	return &AccountService{accounts: accounts, decorators: decorators, cache: cache, logger: logger}
}

func (s *AccountService) Register(ctx context.Context, ident auth.Identity, input RegisterInput) (*domain.Account, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.E(domain.KindInvalidInput, "name is required")
	}
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		email = strings.ToLower(ident.Email)
	}
	if email == "" {
		return nil, domain.E(domain.KindInvalidInput, "email is required")
	}

	account := &domain.Account{
		SubjectID: ident.SubjectID,
		Name:      name,
		Email:     email,
		Role:      domain.RoleUser,
		Image:     input.Image,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

func (s *AccountService) ResolveSubject(ctx context.Context, subjectID string) (*domain.Account, error) {
	return s.accounts.GetBySubject(ctx, subjectID)
}

// Promote converts an account to the decorator role. The profile write and
// the role write are a two-step commit: if the role write fails the profile
// is deleted again, so no partial promotion survives.
func (s *AccountService) Promote(ctx context.Context, accountID int64, specialties []string) (*PromotionResult, error) {
	cleaned, err := normalizeSpecialties(specialties)
	if err != nil {
		return nil, err
	}

	acct, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if acct.Role == domain.RoleDecorator {
		existing, err := s.decorators.GetByAccount(ctx, acct.ID)
		if err != nil {
			return nil, err
		}
		// Decorator role without a profile is a healed leftover, not a
		// duplicate promotion.
		if existing != nil {
			return nil, domain.E(domain.KindConflict, "account is already a decorator")
		}
	}

	profile := &domain.Decorator{
		AccountID:   acct.ID,
		Specialties: cleaned,
		Status:      domain.DecoratorStatusPending,
	}
	var promoted *domain.Account

	steps := []sagaStep{
		{
			name: "create decorator profile",
			run: func(ctx context.Context) error {
				return s.decorators.Create(ctx, profile)
			},
			undo: func(ctx context.Context) error {
				return s.decorators.Delete(ctx, profile.ID)
			},
		},
		{
			name: "set decorator role",
			run: func(ctx context.Context) error {
				updated, err := s.accounts.UpdateRole(ctx, acct.ID, domain.RoleDecorator)
				if err != nil {
					return err
				}
				promoted = updated
				return nil
			},
		},
	}

	if err := runSaga(ctx, steps); err != nil {
		if domain.KindOf(err) == domain.KindInternal {
			s.logger.Error("promotion compensation failed", zap.Int64("account_id", accountID), zap.Error(err))
		}
		return nil, err
	}

	return &PromotionResult{Account: promoted, Decorator: profile}, nil
}

func (s *AccountService) ApproveDecorator(ctx context.Context, decoratorID int64) (*domain.Decorator, error) {
	return s.decorators.UpdateStatus(ctx, decoratorID, domain.DecoratorStatusApproved)
}

func (s *AccountService) DisableDecorator(ctx context.Context, decoratorID int64) (*domain.Decorator, error) {
	return s.decorators.UpdateStatus(ctx, decoratorID, domain.DecoratorStatusDisabled)
}

func (s *AccountService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	return s.accounts.List(ctx)
}

func (s *AccountService) ListDecorators(ctx context.Context) ([]domain.Decorator, error) {
	return s.decorators.List(ctx)
}

func (s *AccountService) TopDecorators(ctx context.Context) ([]domain.Decorator, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetTopDecorators(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	decorators, err := s.decorators.TopRated(ctx, topDecoratorsLimit)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetTopDecorators(ctx, decorators)
	}
	return decorators, nil
}

func normalizeSpecialties(raw []string) ([]string, error) {
	if len(raw) == 0 {
		return nil, domain.E(domain.KindInvalidInput, "at least one specialty is required")
	}
	cleaned := make([]string, 0, len(raw))
	for _, sp := range raw {
		sp = strings.TrimSpace(sp)
		if sp == "" {
			continue
		}
		if !domain.ValidSpecialty(sp) {
			return nil, domain.Ef(domain.KindInvalidInput, "unknown specialty %q", sp)
		}
		cleaned = append(cleaned, sp)
	}
	if len(cleaned) == 0 {
		return nil, domain.E(domain.KindInvalidInput, "at least one valid, non-empty specialty is required")
	}
	return cleaned, nil
}

var _ AccountUseCase = (*AccountService)(nil)
