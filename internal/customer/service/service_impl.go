package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	citydomain "github.com/wisphub/netdesk/internal/city/domain"
	customerdomain "github.com/wisphub/netdesk/internal/customer/domain"
	"github.com/wisphub/netdesk/internal/receivable"
	"github.com/wisphub/netdesk/pkg/db/pagination"
	"github.com/wisphub/netdesk/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Service struct {
	db  *gorm.DB
	log *zap.Logger

	genID        *snowflake.Node
	customerRepo repository.Repository[customerdomain.Customer]
	cityRepo     repository.Repository[citydomain.City]
}

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
}

func NewService(p ServiceParam) customerdomain.Service {
	return &Service{
		db:  p.DB,
		log: p.Log.Named("customer.service"),

		genID:        p.GenID,
		customerRepo: repository.ProvideStore[customerdomain.Customer](p.DB),
		cityRepo:     repository.ProvideStore[citydomain.City](p.DB),
	}
}

func (s *Service) Create(ctx context.Context, req customerdomain.CreateCustomerRequest) (customerdomain.Customer, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return customerdomain.Customer{}, customerdomain.ErrCustomerNameMissing
	}
	if req.SubscriptionValue < 0 || req.SetupFeeTotal < 0 {
		return customerdomain.Customer{}, customerdomain.ErrNegativeAmount
	}

	cityID, err := s.resolveCity(ctx, req.CityID)
	if err != nil {
		return customerdomain.Customer{}, err
	}

	now := time.Now().UTC()
	customer := customerdomain.Customer{
		ID:                s.genID.Generate(),
		CityID:            cityID,
		Name:              name,
		Phone:             strings.TrimSpace(req.Phone),
		Address:           strings.TrimSpace(req.Address),
		SubscriptionValue: req.SubscriptionValue,
		StartDate:         req.StartDate,
		MonthlyPayments:   datatypes.NewJSONType(customerdomain.MonthlyPayments{}),
		PartialPayments:   datatypes.NewJSONType(customerdomain.PartialPayments{}),
		SetupFeeTotal:     req.SetupFeeTotal,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.customerRepo.Create(ctx, &customer); err != nil {
		return customerdomain.Customer{}, err
	}
	return customer, nil
}

func (s *Service) List(ctx context.Context, req customerdomain.ListCustomerRequest) ([]customerdomain.Customer, pagination.PageInfo, error) {
	query := s.db.WithContext(ctx).Model(&customerdomain.Customer{})

	if cityID := strings.TrimSpace(req.CityID); cityID != "" {
		id, err := parseID(cityID)
		if err != nil {
			return nil, pagination.PageInfo{}, customerdomain.ErrInvalidCity
		}
		query = query.Where("city_id = ?", id)
	}
	if name := strings.TrimSpace(req.Name); name != "" {
		query = query.Where("name LIKE ?", "%"+name+"%")
	}
	if req.Suspended != nil {
		query = query.Where("is_suspended = ?", *req.Suspended)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, pagination.PageInfo{}, err
	}

	offset := 0
	if token := strings.TrimSpace(req.Page.PageToken); token != "" {
		parsed, err := strconv.Atoi(token)
		if err != nil || parsed < 0 {
			return nil, pagination.PageInfo{}, customerdomain.ErrInvalidPageToken
		}
		offset = parsed
	}
	limit := req.Page.Limit()

	var customers []customerdomain.Customer
	if err := query.Order("name ASC").Offset(offset).Limit(limit).Find(&customers).Error; err != nil {
		return nil, pagination.PageInfo{}, err
	}

	info := pagination.PageInfo{TotalSize: total}
	if next := offset + len(customers); int64(next) < total {
		info.NextPageToken = strconv.Itoa(next)
	}
	return customers, info, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (customerdomain.Customer, error) {
	return s.load(ctx, id)
}

func (s *Service) Update(ctx context.Context, id string, req customerdomain.UpdateCustomerRequest) (customerdomain.Customer, error) {
	customer, err := s.load(ctx, id)
	if err != nil {
		return customerdomain.Customer{}, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return customerdomain.Customer{}, customerdomain.ErrCustomerNameMissing
		}
		customer.Name = name
	}
	if req.Phone != nil {
		customer.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Address != nil {
		customer.Address = strings.TrimSpace(*req.Address)
	}
	if req.SubscriptionValue != nil {
		if *req.SubscriptionValue < 0 {
			return customerdomain.Customer{}, customerdomain.ErrNegativeAmount
		}
		customer.SubscriptionValue = *req.SubscriptionValue
	}
	if req.StartDate != nil {
		customer.StartDate = req.StartDate
	}

	return s.persist(ctx, &customer)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	customer, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	return s.customerRepo.Delete(ctx, "id = ?", customer.ID)
}

func (s *Service) Transfer(ctx context.Context, id string, cityID string) (customerdomain.Customer, error) {
	customer, err := s.load(ctx, id)
	if err != nil {
		return customerdomain.Customer{}, err
	}

	newCityID, err := s.resolveCity(ctx, cityID)
	if err != nil {
		return customerdomain.Customer{}, err
	}

	customer.CityID = newCityID
	return s.persist(ctx, &customer)
}

func (s *Service) SetMonthlyStatus(ctx context.Context, id string, req customerdomain.SetMonthlyStatusRequest) (customerdomain.Customer, error) {
	key := strings.TrimSpace(req.YearMonth)
	if _, _, err := receivable.ParseKey(key); err != nil {
		return customerdomain.Customer{}, customerdomain.ErrInvalidMonthKey
	}
	status := req.Status
	if status != status.Normalize() {
		return customerdomain.Customer{}, customerdomain.ErrInvalidStatus
	}
	if req.Amount < 0 {
		return customerdomain.Customer{}, customerdomain.ErrNegativeAmount
	}

	customer, err := s.load(ctx, id)
	if err != nil {
		return customerdomain.Customer{}, err
	}

	payments := customer.MonthlyPayments.Data()
	if payments == nil {
		payments = customerdomain.MonthlyPayments{}
	}
	partials := customer.PartialPayments.Data()
	if partials == nil {
		partials = customerdomain.PartialPayments{}
	}

	payments[key] = status
	switch status {
	case receivable.StatusPartial:
		partials[key] = req.Amount
		customer.SubscriptionPaid = req.Amount
	default:
		// Leaving partial state drops the month's partial amount so stale
		// history cannot resurface if the month is toggled back.
		delete(partials, key)
	}

	customer.MonthlyPayments = datatypes.NewJSONType(payments)
	customer.PartialPayments = datatypes.NewJSONType(partials)
	return s.persist(ctx, &customer)
}

func (s *Service) ApplyDiscount(ctx context.Context, id string, amount int64) (customerdomain.Customer, error) {
	if amount < 0 {
		return customerdomain.Customer{}, customerdomain.ErrNegativeAmount
	}

	customer, err := s.load(ctx, id)
	if err != nil {
		return customerdomain.Customer{}, err
	}

	// Cap at the current value so the subscription never goes negative.
	if amount > customer.SubscriptionValue {
		amount = customer.SubscriptionValue
	}
	customer.SubscriptionValue -= amount
	customer.DiscountAmount += amount
	customer.HasDiscount = true

	s.log.Info("discount applied",
		zap.String("customer_id", customer.ID.String()),
		zap.Int64("amount", amount),
		zap.Int64("subscription_value", customer.SubscriptionValue),
	)
	return s.persist(ctx, &customer)
}

func (s *Service) RemoveDiscount(ctx context.Context, id string) (customerdomain.Customer, error) {
	customer, err := s.load(ctx, id)
	if err != nil {
		return customerdomain.Customer{}, err
	}
	if !customer.HasDiscount {
		return customerdomain.Customer{}, customerdomain.ErrNoDiscount
	}

	customer.SubscriptionValue += customer.DiscountAmount
	customer.DiscountAmount = 0
	customer.HasDiscount = false
	return s.persist(ctx, &customer)
}

func (s *Service) Suspend(ctx context.Context, id string) (customerdomain.Customer, error) {
	return s.setSuspended(ctx, id, true)
}

func (s *Service) Resume(ctx context.Context, id string) (customerdomain.Customer, error) {
	return s.setSuspended(ctx, id, false)
}

func (s *Service) RecordSetupFeePayment(ctx context.Context, id string, amount int64) (customerdomain.Customer, error) {
	if amount < 0 {
		return customerdomain.Customer{}, customerdomain.ErrNegativeAmount
	}

	customer, err := s.load(ctx, id)
	if err != nil {
		return customerdomain.Customer{}, err
	}

	// Overpayment drives the remaining fee negative; that is recorded as-is.
	customer.SetupFeePaid += amount
	return s.persist(ctx, &customer)
}

func (s *Service) setSuspended(ctx context.Context, id string, suspended bool) (customerdomain.Customer, error) {
	customer, err := s.load(ctx, id)
	if err != nil {
		return customerdomain.Customer{}, err
	}
	customer.IsSuspended = suspended
	return s.persist(ctx, &customer)
}

func (s *Service) load(ctx context.Context, id string) (customerdomain.Customer, error) {
	customerID, err := parseID(id)
	if err != nil {
		return customerdomain.Customer{}, customerdomain.ErrInvalidCustomerID
	}

	customer, err := s.customerRepo.FindOne(ctx, "id = ?", customerID)
	if err != nil {
		return customerdomain.Customer{}, err
	}
	if customer == nil {
		return customerdomain.Customer{}, customerdomain.ErrCustomerNotFound
	}
	return *customer, nil
}

func (s *Service) persist(ctx context.Context, customer *customerdomain.Customer) (customerdomain.Customer, error) {
	customer.UpdatedAt = time.Now().UTC()
	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return customerdomain.Customer{}, err
	}
	return *customer, nil
}

func (s *Service) resolveCity(ctx context.Context, raw string) (snowflake.ID, error) {
	cityID, err := parseID(raw)
	if err != nil {
		return 0, customerdomain.ErrInvalidCity
	}
	city, err := s.cityRepo.FindOne(ctx, "id = ?", cityID)
	if err != nil {
		return 0, err
	}
	if city == nil {
		return 0, customerdomain.ErrCityNotFound
	}
	return cityID, nil
}

func parseID(raw string) (snowflake.ID, error) {
	return snowflake.ParseString(strings.TrimSpace(raw))
}
