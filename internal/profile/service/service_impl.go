package service

import (
	"context"
	"strings"
	"time"

	"github.com/kvoice/kvoice/internal/identity"
	"github.com/kvoice/kvoice/internal/profile/domain"
	"github.com/kvoice/kvoice/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB  *gorm.DB
	Log *zap.Logger
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo repository.Repository[domain.Profile]
}

func New(p Params) domain.Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("profile.service"),
		repo: repository.ProvideStore[domain.Profile](p.DB),
	}
}

func (s *Service) Get(ctx context.Context) (domain.Profile, error) {
	accountID, err := accountFromContext(ctx)
	if err != nil {
		return domain.Profile{}, err
	}

	item, err := s.repo.FindOne(ctx, &domain.Profile{AccountID: accountID})
	if err != nil {
		return domain.Profile{}, err
	}
	if item == nil {
		return domain.Profile{}, domain.ErrNotFound
	}

	return *item, nil
}

func (s *Service) Upsert(ctx context.Context, req domain.UpsertProfileRequest) (domain.Profile, error) {
	accountID, err := accountFromContext(ctx)
	if err != nil {
		return domain.Profile{}, err
	}

	now := time.Now().UTC().UnixMilli()

	existing, err := s.repo.FindOne(ctx, &domain.Profile{AccountID: accountID})
	if err != nil {
		return domain.Profile{}, err
	}

	profile := domain.Profile{
		AccountID:   accountID,
		Name:        strings.TrimSpace(req.Name),
		Email:       strings.TrimSpace(req.Email),
		Address:     strings.TrimSpace(req.Address),
		LogoURL:     strings.TrimSpace(req.LogoURL),
		TIN:         strings.TrimSpace(req.TIN),
		MomoNumber:  strings.TrimSpace(req.MomoNumber),
		MomoNetwork: strings.TrimSpace(req.MomoNetwork),
		UpdatedAt:   now,
	}

	if req.Preferences != nil {
		profile.Preferences = datatypes.NewJSONType(*req.Preferences)
	} else if existing != nil {
		profile.Preferences = existing.Preferences
	} else {
		profile.Preferences = datatypes.NewJSONType(domain.DefaultPreferences())
	}

	if existing == nil {
		profile.CreatedAt = now
		if err := s.repo.Create(ctx, &profile); err != nil {
			return domain.Profile{}, err
		}
		return profile, nil
	}

	profile.CreatedAt = existing.CreatedAt
	if err := s.db.WithContext(ctx).Save(&profile).Error; err != nil {
		return domain.Profile{}, err
	}
	return profile, nil
}

func accountFromContext(ctx context.Context) (string, error) {
	id, ok := identity.FromContext(ctx)
	if !ok {
		return "", domain.ErrInvalidAccount
	}
	return id.AccountID, nil
}
