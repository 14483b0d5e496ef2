package repository

import (
	domainRepo "cosmetic-platform-dataset/internal/domain/repository"

	"gorm.io/gorm"
)

type policyRepository struct{}

func NewPolicyRepository() domainRepo.PolicyRepository {
	return &policyRepository{}
}

func (r *policyRepository) Exec(db *gorm.DB, statements []string) error {
	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}
