package services

import (
	"context"
	"fmt"

	"staffsync/internal/models"
	"staffsync/internal/repositories"
)

// EmployeeCodeService issues sequential human-readable employee codes of
// the shape PREFIX-00042. The increment is a single atomic statement in the
// store, so codes stay unique across concurrent requests and across
// multiple running instances; no in-process lock is involved. Callers pass
// their transaction so a failed employee insert also rolls the counter back.
type EmployeeCodeService interface {
	Next(ctx context.Context, db repositories.DBTX) (string, error)
}

type employeeCodeService struct {
	prefix string
}

func NewEmployeeCodeService(prefix string) EmployeeCodeService {
	return &employeeCodeService{prefix: prefix}
}

func (s *employeeCodeService) Next(ctx context.Context, db repositories.DBTX) (string, error) {
	value, err := repositories.NewSystemMetadataRepository(db).Increment(ctx, models.MetaKeyEmployeeCode)
	if err != nil {
		return "", fmt.Errorf("failed to advance employee code counter: %w", err)
	}
	return FormatEmployeeCode(s.prefix, value), nil
}

// FormatEmployeeCode zero-pads the sequence value to five digits.
func FormatEmployeeCode(prefix string, value int64) string {
	return fmt.Sprintf("%s-%05d", prefix, value)
}
