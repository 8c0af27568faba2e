package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/kvoice/kvoice/internal/client/domain"
	"github.com/kvoice/kvoice/internal/identity"
	"github.com/kvoice/kvoice/pkg/db/option"
	"github.com/kvoice/kvoice/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  repository.Repository[domain.Client]
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("client.service"),
		genID: p.GenID,
		repo:  repository.ProvideStore[domain.Client](p.DB),
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateClientRequest) (domain.Client, error) {
	accountID, err := accountFromContext(ctx)
	if err != nil {
		return domain.Client{}, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Client{}, domain.ErrInvalidName
	}

	now := time.Now().UTC().UnixMilli()
	client := domain.Client{
		ID:          s.genID.Generate(),
		AccountID:   accountID,
		Name:        name,
		Email:       strings.TrimSpace(req.Email),
		MomoNumber:  strings.TrimSpace(req.MomoNumber),
		MomoNetwork: strings.TrimSpace(req.MomoNetwork),
		Location:    strings.TrimSpace(req.Location),
		Status:      domain.ClientStatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, &client); err != nil {
		return domain.Client{}, err
	}

	return client, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Client, error) {
	accountID, err := accountFromContext(ctx)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.Find(ctx, &domain.Client{AccountID: accountID},
		option.OrderBy("created_at DESC"),
	)
	if err != nil {
		return nil, err
	}

	clients := make([]domain.Client, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		clients = append(clients, *item)
	}
	return clients, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Client, error) {
	accountID, err := accountFromContext(ctx)
	if err != nil {
		return domain.Client{}, err
	}

	clientID, err := parseID(id)
	if err != nil {
		return domain.Client{}, err
	}

	item, err := s.repo.FindOne(ctx, &domain.Client{ID: clientID, AccountID: accountID})
	if err != nil {
		return domain.Client{}, err
	}
	if item == nil {
		return domain.Client{}, domain.ErrNotFound
	}

	return *item, nil
}

func (s *Service) Update(ctx context.Context, id string, req domain.UpdateClientRequest) (domain.Client, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return domain.Client{}, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.Client{}, domain.ErrInvalidName
		}
		existing.Name = name
	}
	if req.Email != nil {
		existing.Email = strings.TrimSpace(*req.Email)
	}
	if req.MomoNumber != nil {
		existing.MomoNumber = strings.TrimSpace(*req.MomoNumber)
	}
	if req.MomoNetwork != nil {
		existing.MomoNetwork = strings.TrimSpace(*req.MomoNetwork)
	}
	if req.Location != nil {
		existing.Location = strings.TrimSpace(*req.Location)
	}
	if req.Status != nil {
		existing.Status = *req.Status
	}
	existing.UpdatedAt = time.Now().UTC().UnixMilli()

	if err := s.db.WithContext(ctx).Save(&existing).Error; err != nil {
		return domain.Client{}, err
	}

	return existing, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, existing.ID.String())
}

func (s *Service) ResolveForInvoice(ctx context.Context, req domain.ResolveClientRequest) (domain.Client, error) {
	accountID, err := accountFromContext(ctx)
	if err != nil {
		return domain.Client{}, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Client{}, domain.ErrInvalidName
	}

	now := time.Now().UTC().UnixMilli()

	rawID := strings.TrimSpace(req.ID)
	if rawID == "" || rawID == domain.NewClientID {
		client := domain.Client{
			ID:            s.genID.Generate(),
			AccountID:     accountID,
			Name:          name,
			Email:         strings.TrimSpace(req.Email),
			MomoNumber:    strings.TrimSpace(req.MomoNumber),
			MomoNetwork:   strings.TrimSpace(req.MomoNetwork),
			Location:      strings.TrimSpace(req.Location),
			InvoicesCount: 1,
			Status:        domain.ClientStatusActive,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := s.repo.Create(ctx, &client); err != nil {
			return domain.Client{}, err
		}
		return client, nil
	}

	existing, err := s.GetByID(ctx, rawID)
	if err != nil {
		return domain.Client{}, err
	}

	existing.InvoicesCount++
	existing.UpdatedAt = now
	if err := s.db.WithContext(ctx).Save(&existing).Error; err != nil {
		return domain.Client{}, err
	}

	return existing, nil
}

func accountFromContext(ctx context.Context) (string, error) {
	id, ok := identity.FromContext(ctx)
	if !ok {
		return "", domain.ErrInvalidAccount
	}
	return id.AccountID, nil
}

func parseID(raw string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
