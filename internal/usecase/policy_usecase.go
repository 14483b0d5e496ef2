package usecase

import (
	"context"

	"cosmetic-platform-dataset/internal/converter"
	"cosmetic-platform-dataset/internal/delivery/dto"
	"cosmetic-platform-dataset/internal/delivery/http/middleware"
	"cosmetic-platform-dataset/internal/domain/catalog"
	"cosmetic-platform-dataset/internal/domain/policy"
	"cosmetic-platform-dataset/internal/domain/repository"
	"cosmetic-platform-dataset/internal/infrastructure/database"
	"cosmetic-platform-dataset/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type PolicyUsecase interface {
	Script() string
	Apply(ctx context.Context) error
	Evaluate(ctx context.Context, req *dto.EvaluatePolicyRequest) (*dto.PolicyDecisionResponse, error)
}

type policyUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	policyRepo   repository.PolicyRepository
	auditService service.AuditService
}

func NewPolicyUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	policyRepo repository.PolicyRepository,
	auditService service.AuditService,
) PolicyUsecase {
	return &policyUsecase{
		db:           db,
		log:          log,
		policyRepo:   policyRepo,
		auditService: auditService,
	}
}

func (u *policyUsecase) Script() string {
	return policy.Render(catalog.All())
}

// Apply runs the policy script in one transaction and records it
func (u *policyUsecase) Apply(ctx context.Context) error {
	if err := requireDB(u.db); err != nil {
		return err
	}

	specs := catalog.All()
	statements := policy.Statements(specs)

	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return database.Classify(tx.Error)
	}
	defer tx.Rollback()

	if err := u.policyRepo.Exec(tx, statements); err != nil {
		u.log.Warnf("Failed to apply policies: %+v", err)
		return database.Classify(err)
	}
	if err := u.auditService.LogPolicyApply(ctx, tx, requesterID(ctx), len(specs), len(statements)); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit policies: %+v", err)
		return database.Classify(err)
	}
	u.log.WithField("statements", len(statements)).Info("Policies applied")
	return nil
}

// Evaluate decides the request for the requester on ctx, anonymous when
// there is none.
func (u *policyUsecase) Evaluate(ctx context.Context, req *dto.EvaluatePolicyRequest) (*dto.PolicyDecisionResponse, error) {
	spec, err := catalog.Lookup(req.Table)
	if err != nil {
		return nil, err
	}
	action, err := policy.ParseAction(req.Action)
	if err != nil {
		return nil, err
	}

	requester, ok := middleware.GetRequesterFromContext(ctx)
	if !ok {
		requester = policy.Anonymous()
	}

	row := policy.Row{}
	if row.Owner, err = parseOptionalUUID(req.RowOwner); err != nil {
		return nil, err
	}
	if row.NewOwner, err = parseOptionalUUID(req.NewOwner); err != nil {
		return nil, err
	}

	decision := policy.Evaluate(spec, action, requester, row)
	return converter.DecisionToResponse(spec.Name, action, requester, decision), nil
}

func parseOptionalUUID(s string) (*uuid.UUID, error) {
	if s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
