package services

import (
	"context"
	"fmt"
	"time"

	"rtw_backend/internal/logger"
	"rtw_backend/internal/models"
	"rtw_backend/internal/repositories"
	"rtw_backend/internal/services/dto"
	"rtw_backend/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BillingService interface {
	ListPlans(ctx context.Context, db *gorm.DB) ([]dto.PlanDTO, error)
	CreatePurchase(ctx context.Context, db *gorm.DB, employerID string, req *dto.CreatePurchaseRequest) (*dto.PurchaseDTO, error)
	ConfirmPurchase(ctx context.Context, db *gorm.DB, employerID string, req *dto.ConfirmPurchaseRequest) (*dto.ConfirmPurchaseResponse, error)
	ListPurchases(ctx context.Context, db *gorm.DB, employerID string, p dto.Pagination) (*dto.PurchaseListResponse, error)
	GetWallet(ctx context.Context, db *gorm.DB, employerID string) (*dto.WalletDTO, error)
	SeedDefaultPlans(ctx context.Context, db *gorm.DB) error
}

type BillingServiceImpl struct {
	planRepo            repositories.PlanRepository
	purchaseRepo        repositories.PurchaseRepository
	employerRepo        repositories.EmployerRepository
	notificationService NotificationService
}

func NewBillingService(
	planRepo repositories.PlanRepository,
	purchaseRepo repositories.PurchaseRepository,
	employerRepo repositories.EmployerRepository,
	notificationService NotificationService,
) BillingService {
	return &BillingServiceImpl{
		planRepo:            planRepo,
		purchaseRepo:        purchaseRepo,
		employerRepo:        employerRepo,
		notificationService: notificationService,
	}
}

func (s *BillingServiceImpl) ListPlans(ctx context.Context, db *gorm.DB) ([]dto.PlanDTO, error) {
	plans, err := s.planRepo.FindActive(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	out := make([]dto.PlanDTO, 0, len(plans))
	for i := range plans {
		out = append(out, dto.PlanDTOFromModel(&plans[i]))
	}
	return out, nil
}

// CreatePurchase opens a pending checkout for the given plan. The reference
// is what the payment provider echoes back on confirmation.
func (s *BillingServiceImpl) CreatePurchase(ctx context.Context, db *gorm.DB, employerID string, req *dto.CreatePurchaseRequest) (*dto.PurchaseDTO, error) {
	plan, err := s.planRepo.FindByID(db, req.PlanID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrPlanNotFound) {
			return nil, apperrors.ErrPlanNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if !plan.IsActive {
		return nil, apperrors.ErrPlanNotFound
	}

	purchase := &models.Purchase{
		EmployerID: employerID,
		PlanID:     plan.ID,
		Amount:     plan.Price,
		Currency:   plan.Currency,
		Status:     models.PurchaseStatusPending,
		Reference:  fmt.Sprintf("RTW-%s", uuid.NewString()),
	}

	if err := s.purchaseRepo.Create(db, purchase); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "purchase created",
		"purchase_id", purchase.ID, "plan_id", plan.ID, "reference", purchase.Reference)

	purchase.Plan = *plan
	out := dto.PurchaseDTOFromModel(purchase)
	return &out, nil
}

// ConfirmPurchase settles a pending checkout: the purchase flips to paid and
// the plan's credits land on the wallet in one transaction. The status guard
// in MarkPaid keeps a replayed confirmation from crediting twice.
func (s *BillingServiceImpl) ConfirmPurchase(ctx context.Context, db *gorm.DB, employerID string, req *dto.ConfirmPurchaseRequest) (*dto.ConfirmPurchaseResponse, error) {
	purchase, err := s.purchaseRepo.FindByReference(db, req.Reference)
	if err != nil {
		if apperrors.Is(err, repositories.ErrPurchaseNotFound) {
			return nil, apperrors.ErrPurchaseNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if purchase.EmployerID != employerID {
		return nil, apperrors.ErrPurchaseNotFound
	}

	plan := purchase.Plan

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.purchaseRepo.MarkPaid(tx, purchase.ID); err != nil {
			return err
		}

		expiresAt := subscriptionExpiry(tx, s.employerRepo, employerID, plan.DurationDays)
		return s.employerRepo.CreditWallet(tx, employerID,
			plan.InterviewCredits, plan.ContactUnlockCredits, plan.ID, expiresAt)
	})
	if err != nil {
		switch {
		case apperrors.Is(err, repositories.ErrPurchaseNotPending):
			return nil, apperrors.ErrPurchaseNotPending
		case apperrors.Is(err, repositories.ErrAccountNotFound):
			return nil, apperrors.ErrAccountNotFound
		default:
			return nil, apperrors.InternalError(err)
		}
	}

	// Dashboard message is best-effort; the payment already settled.
	if err := s.notificationService.Notify(ctx, db, models.AccountKindEmployer, employerID,
		repositories.NotificationTypePurchaseConfirmed,
		"Purchase confirmed",
		fmt.Sprintf("Your %s plan is active. Credits have been added to your wallet.", plan.Name),
		map[string]interface{}{"purchase_id": purchase.ID, "plan_id": plan.ID},
	); err != nil {
		logger.CtxWithError(ctx, "failed to create purchase notification", err)
	}

	logger.CtxInfo(ctx, "purchase confirmed", "purchase_id", purchase.ID, "plan_id", plan.ID)

	settled, err := s.purchaseRepo.FindByID(db, purchase.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	employer, err := s.employerRepo.FindByID(db, employerID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.ConfirmPurchaseResponse{
		Purchase: dto.PurchaseDTOFromModel(settled),
		Wallet: dto.WalletDTO{
			InterviewCredits:     employer.Wallet.InterviewCredits,
			ContactUnlockCredits: employer.Wallet.ContactUnlockCredits,
		},
	}, nil
}

func (s *BillingServiceImpl) ListPurchases(ctx context.Context, db *gorm.DB, employerID string, p dto.Pagination) (*dto.PurchaseListResponse, error) {
	p.Normalize()

	purchases, total, err := s.purchaseRepo.FindByEmployer(db, employerID, p.PageSize, p.Offset())
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]dto.PurchaseDTO, 0, len(purchases))
	for i := range purchases {
		out = append(out, dto.PurchaseDTOFromModel(&purchases[i]))
	}

	return &dto.PurchaseListResponse{
		Purchases: out,
		Meta:      dto.ListMeta{Total: total, Page: p.Page, PageSize: p.PageSize},
	}, nil
}

func (s *BillingServiceImpl) GetWallet(ctx context.Context, db *gorm.DB, employerID string) (*dto.WalletDTO, error) {
	employer, err := s.employerRepo.FindByID(db, employerID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrAccountNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return &dto.WalletDTO{
		InterviewCredits:     employer.Wallet.InterviewCredits,
		ContactUnlockCredits: employer.Wallet.ContactUnlockCredits,
	}, nil
}

// SeedDefaultPlans installs the starter catalog on an empty database.
func (s *BillingServiceImpl) SeedDefaultPlans(ctx context.Context, db *gorm.DB) error {
	count, err := s.planRepo.Count(db)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	plans := []*models.Plan{
		{
			Name:                 "Starter",
			Price:                199,
			Currency:             "SAR",
			InterviewCredits:     3,
			ContactUnlockCredits: 5,
			DurationDays:         30,
			SortOrder:            1,
		},
		{
			Name:                 "Growth",
			Price:                499,
			Currency:             "SAR",
			InterviewCredits:     10,
			ContactUnlockCredits: 20,
			DurationDays:         30,
			SortOrder:            2,
		},
		{
			Name:                 "Enterprise",
			Price:                1499,
			Currency:             "SAR",
			InterviewCredits:     40,
			ContactUnlockCredits: 100,
			DurationDays:         30,
			SortOrder:            3,
		},
	}

	for _, plan := range plans {
		if err := s.planRepo.Create(db, plan); err != nil {
			return err
		}
	}

	logger.CtxInfo(ctx, "seeded default plans", "count", len(plans))
	return nil
}

// subscriptionExpiry extends an active subscription from its current end,
// otherwise counts from now.
func subscriptionExpiry(db *gorm.DB, employerRepo repositories.EmployerRepository, employerID string, durationDays int) time.Time {
	start := time.Now()
	if employer, err := employerRepo.FindByID(db, employerID); err == nil {
		if employer.SubscriptionExpiresAt != nil && employer.SubscriptionExpiresAt.After(start) {
			start = *employer.SubscriptionExpiresAt
		}
	}
	return start.AddDate(0, 0, durationDays)
}
