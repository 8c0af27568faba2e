package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	clientdomain "github.com/kvoice/kvoice/internal/client/domain"
	"github.com/kvoice/kvoice/internal/identity"
	"github.com/kvoice/kvoice/internal/invoice/domain"
	"github.com/kvoice/kvoice/internal/invoice/format"
	paymentdomain "github.com/kvoice/kvoice/internal/payment/domain"
	profiledomain "github.com/kvoice/kvoice/internal/profile/domain"
	"github.com/kvoice/kvoice/internal/quota"
	"github.com/kvoice/kvoice/internal/tax"
	"github.com/kvoice/kvoice/pkg/db"
	"github.com/kvoice/kvoice/pkg/db/option"
	"github.com/kvoice/kvoice/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Gate     *quota.Gate
	Clients  clientdomain.Service
	Profiles profiledomain.Service
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	gate     *quota.Gate
	clients  clientdomain.Service
	profiles profiledomain.Service
	repo     repository.Repository[domain.Invoice]
	payments repository.Repository[paymentdomain.Payment]
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("invoice.service"),
		genID:    p.GenID,
		gate:     p.Gate,
		clients:  p.Clients,
		profiles: p.Profiles,
		repo:     repository.ProvideStore[domain.Invoice](p.DB),
		payments: repository.ProvideStore[paymentdomain.Payment](p.DB),
	}
}

// Create validates, prices and persists a new invoice. Ordering is
// deliberate: validation and the guest quota check both run before any
// write, and the guest counter moves only after the row is saved.
func (s *Service) Create(ctx context.Context, req domain.CreateInvoiceRequest) (domain.Invoice, error) {
	id, ok := identity.FromContext(ctx)
	if !ok {
		return domain.Invoice{}, domain.ErrInvalidAccount
	}

	if err := validate(req.Client.Name, req.Items); err != nil {
		return domain.Invoice{}, err
	}

	if s.gate.HasReachedLimit(ctx, id.Guest) {
		return domain.Invoice{}, domain.ErrQuotaExhausted
	}

	prefs, business, err := s.snapshotProfile(ctx)
	if err != nil {
		return domain.Invoice{}, err
	}

	client, err := s.clients.ResolveForInvoice(ctx, clientdomain.ResolveClientRequest{
		ID:          req.Client.ID,
		Name:        req.Client.Name,
		Email:       req.Client.Email,
		MomoNumber:  req.Client.MomoNumber,
		MomoNetwork: req.Client.MomoNetwork,
		Location:    req.Client.Location,
	})
	if err != nil {
		return domain.Invoice{}, err
	}

	vatRate := prefs.DefaultTaxRate
	if vatRate.IsZero() {
		vatRate = tax.DefaultVATRate
	}

	items := toLineItems(req.Items)
	totals, err := tax.Compute(toLines(items), vatRate, tax.Flags{
		VAT:       req.VATEnabled,
		Levies:    req.LeviesEnabled,
		CovidLevy: req.CovidLevyEnabled,
	})
	if err != nil {
		return domain.Invoice{}, err
	}

	now := time.Now().UTC()

	number := strings.TrimSpace(req.InvoiceNumber)
	if number == "" {
		number, err = s.nextInvoiceNumber(ctx, id.AccountID, prefs.InvoicePrefix, now)
		if err != nil {
			return domain.Invoice{}, err
		}
	}

	status := req.Status
	if status == "" {
		status = domain.InvoiceStatusPending
	}

	currency := strings.TrimSpace(req.Currency)
	if currency == "" {
		currency = prefs.DefaultCurrency
	}

	date := strings.TrimSpace(req.Date)
	if date == "" {
		date = now.Format(domain.DateLayout)
	}

	invoice := domain.Invoice{
		ID:            s.genID.Generate(),
		AccountID:     id.AccountID,
		InvoiceNumber: number,
		Date:          date,
		DueDate:       strings.TrimSpace(req.DueDate),
		Status:        status,
		Currency:      currency,

		VATEnabled:       req.VATEnabled,
		LeviesEnabled:    req.LeviesEnabled,
		CovidLevyEnabled: req.CovidLevyEnabled,
		VATRate:          vatRate,

		Subtotal:     totals.Subtotal,
		VATAmount:    totals.VATAmount,
		LeviesAmount: totals.LeviesAmount,
		CovidAmount:  totals.CovidAmount,
		Total:        totals.Total,

		Items:        datatypes.NewJSONType(items),
		Client:       datatypes.NewJSONType(snapshotClient(client)),
		BusinessInfo: datatypes.NewJSONType(business),

		CreatedAt: now.UnixMilli(),
		UpdatedAt: now.UnixMilli(),
	}

	if err := s.repo.Create(ctx, &invoice); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Invoice{}, domain.ErrDuplicateInvoiceNumber
		}
		return domain.Invoice{}, err
	}

	if id.Guest {
		if err := s.gate.Increment(ctx); err != nil {
			// The invoice is already saved; a lost increment only widens
			// the guest allowance, so log and return the invoice.
			s.log.Warn("guest counter increment failed",
				zap.String("invoice_number", invoice.InvoiceNumber),
				zap.Error(err),
			)
		}
	}

	return invoice, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Invoice, error) {
	accountID, err := accountFromContext(ctx)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.Find(ctx, &domain.Invoice{AccountID: accountID},
		option.OrderBy("created_at DESC"),
	)
	if err != nil {
		return nil, err
	}
	return collect(items), nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Invoice, error) {
	item, err := s.findOwned(ctx, id)
	if err != nil {
		return domain.Invoice{}, err
	}
	return *item, nil
}

// Update applies the patch and reprices from the resulting line items.
// Totals are always rederived from raw lines, and the lifecycle state
// moves only when the patch names one.
func (s *Service) Update(ctx context.Context, id string, req domain.UpdateInvoiceRequest) (domain.Invoice, error) {
	item, err := s.findOwned(ctx, id)
	if err != nil {
		return domain.Invoice{}, err
	}

	if req.InvoiceNumber != nil {
		item.InvoiceNumber = strings.TrimSpace(*req.InvoiceNumber)
	}
	if req.Date != nil {
		item.Date = strings.TrimSpace(*req.Date)
	}
	if req.DueDate != nil {
		item.DueDate = strings.TrimSpace(*req.DueDate)
	}
	if req.Status != nil {
		item.Status = *req.Status
	}
	if req.Currency != nil {
		item.Currency = strings.TrimSpace(*req.Currency)
	}
	if req.VATEnabled != nil {
		item.VATEnabled = *req.VATEnabled
	}
	if req.LeviesEnabled != nil {
		item.LeviesEnabled = *req.LeviesEnabled
	}
	if req.CovidLevyEnabled != nil {
		item.CovidLevyEnabled = *req.CovidLevyEnabled
	}
	if req.Items != nil {
		item.Items = datatypes.NewJSONType(toLineItems(req.Items))
	}
	if req.Client != nil {
		snapshot := item.Client.Data()
		snapshot.ID = req.Client.ID
		snapshot.Name = req.Client.Name
		snapshot.Email = req.Client.Email
		snapshot.MomoNumber = req.Client.MomoNumber
		snapshot.MomoNetwork = req.Client.MomoNetwork
		snapshot.Location = req.Client.Location
		item.Client = datatypes.NewJSONType(snapshot)
	}
	if req.BusinessInfo != nil {
		item.BusinessInfo = datatypes.NewJSONType(*req.BusinessInfo)
	}

	if err := validate(item.Client.Data().Name, inputsOf(item.Items.Data())); err != nil {
		return domain.Invoice{}, err
	}

	totals, err := tax.Compute(item.Lines(), item.VATRate, tax.Flags{
		VAT:       item.VATEnabled,
		Levies:    item.LeviesEnabled,
		CovidLevy: item.CovidLevyEnabled,
	})
	if err != nil {
		return domain.Invoice{}, err
	}

	item.Subtotal = totals.Subtotal
	item.VATAmount = totals.VATAmount
	item.LeviesAmount = totals.LeviesAmount
	item.CovidAmount = totals.CovidAmount
	item.Total = totals.Total
	item.UpdatedAt = time.Now().UTC().UnixMilli()

	if err := s.db.WithContext(ctx).Save(item).Error; err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Invoice{}, domain.ErrDuplicateInvoiceNumber
		}
		return domain.Invoice{}, err
	}

	return *item, nil
}

// MarkPaid flips the invoice to Paid and records a verified receipt for
// the full total in one transaction. Already-paid invoices are a no-op.
func (s *Service) MarkPaid(ctx context.Context, id string) (domain.Invoice, error) {
	item, err := s.findOwned(ctx, id)
	if err != nil {
		return domain.Invoice{}, err
	}

	if item.Status == domain.InvoiceStatusPaid {
		return *item, nil
	}

	now := time.Now().UTC().UnixMilli()
	item.Status = domain.InvoiceStatusPaid
	item.UpdatedAt = now

	receipt := paymentdomain.Payment{
		ID:            s.genID.Generate(),
		AccountID:     item.AccountID,
		InvoiceNumber: item.InvoiceNumber,
		Amount:        item.Total,
		Date:          now,
		Method:        paymentdomain.DefaultMethod,
		ClientName:    item.Client.Data().Name,
		Status:        paymentdomain.PaymentStatusVerified,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(item).Error; err != nil {
			return err
		}
		return s.payments.WithTrx(tx).Create(ctx, &receipt)
	})
	if err != nil {
		return domain.Invoice{}, err
	}

	return *item, nil
}

// Delete removes an invoice. Receipts referencing its number survive.
func (s *Service) Delete(ctx context.Context, id string) error {
	item, err := s.findOwned(ctx, id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, item.ID.String())
}

func (s *Service) findOwned(ctx context.Context, id string) (*domain.Invoice, error) {
	accountID, err := accountFromContext(ctx)
	if err != nil {
		return nil, err
	}

	invoiceID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	item, err := s.repo.FindOne(ctx, &domain.Invoice{ID: invoiceID, AccountID: accountID})
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

// snapshotProfile reads the issuer profile for stamping. A missing
// profile is not an error: the invoice carries an empty business block
// and the account defaults apply.
func (s *Service) snapshotProfile(ctx context.Context) (profiledomain.Preferences, domain.BusinessSnapshot, error) {
	profile, err := s.profiles.Get(ctx)
	if errors.Is(err, profiledomain.ErrNotFound) {
		return profiledomain.DefaultPreferences(), domain.BusinessSnapshot{}, nil
	}
	if err != nil {
		return profiledomain.Preferences{}, domain.BusinessSnapshot{}, err
	}

	prefs := profile.Preferences.Data()
	if prefs.DefaultCurrency == "" {
		prefs.DefaultCurrency = profiledomain.DefaultPreferences().DefaultCurrency
	}
	if prefs.InvoicePrefix == "" {
		prefs.InvoicePrefix = profiledomain.DefaultPreferences().InvoicePrefix
	}

	return prefs, domain.BusinessSnapshot{
		Name:        profile.Name,
		Email:       profile.Email,
		Address:     profile.Address,
		LogoURL:     profile.LogoURL,
		TIN:         profile.TIN,
		MomoNumber:  profile.MomoNumber,
		MomoNetwork: profile.MomoNetwork,
	}, nil
}

func (s *Service) nextInvoiceNumber(ctx context.Context, accountID, prefix string, now time.Time) (string, error) {
	count, err := s.repo.Count(ctx, &domain.Invoice{AccountID: accountID})
	if err != nil {
		return "", err
	}
	return format.InvoiceNumber(format.DefaultInvoiceNumberTemplate, prefix, now, count+1)
}

// validate enforces the two save gates: a named client and a
// description on every line item.
func validate(clientName string, items []domain.LineItemInput) error {
	if strings.TrimSpace(clientName) == "" {
		return domain.ErrMissingClientName
	}
	for _, item := range items {
		if strings.TrimSpace(item.Description) == "" {
			return domain.ErrMissingItemDescription
		}
	}
	return nil
}

func toLineItems(inputs []domain.LineItemInput) []domain.LineItem {
	items := make([]domain.LineItem, 0, len(inputs))
	for _, in := range inputs {
		if strings.TrimSpace(in.ID) == "" {
			in.ID = uuid.NewString()
		}
		items = append(items, domain.LineItem{
			ID:          in.ID,
			Description: strings.TrimSpace(in.Description),
			Quantity:    in.Quantity,
			Price:       in.Price,
		})
	}
	return items
}

func inputsOf(items []domain.LineItem) []domain.LineItemInput {
	inputs := make([]domain.LineItemInput, 0, len(items))
	for _, item := range items {
		inputs = append(inputs, domain.LineItemInput{
			ID:          item.ID,
			Description: item.Description,
			Quantity:    item.Quantity,
			Price:       item.Price,
		})
	}
	return inputs
}

func toLines(items []domain.LineItem) []tax.Line {
	lines := make([]tax.Line, 0, len(items))
	for _, item := range items {
		lines = append(lines, tax.Line{Quantity: item.Quantity, Price: item.Price})
	}
	return lines
}

func snapshotClient(c clientdomain.Client) domain.ClientSnapshot {
	return domain.ClientSnapshot{
		ID:          c.ID.String(),
		Name:        c.Name,
		Email:       c.Email,
		MomoNumber:  c.MomoNumber,
		MomoNetwork: c.MomoNetwork,
		Location:    c.Location,
		Status:      string(c.Status),
	}
}

func collect(items []*domain.Invoice) []domain.Invoice {
	invoices := make([]domain.Invoice, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		invoices = append(invoices, *item)
	}
	return invoices
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
