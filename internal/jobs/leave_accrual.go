package jobs

import (
	"context"
	"log"

	"staffsync/internal/repositories"
)

// LeaveAccrualService credits each active employee with one twelfth of the
// yearly allowance per leave type. Meant to run once at the start of each
// month; running it twice in a month double-credits, so the scheduler keeps
// it singleton.
type LeaveAccrualService struct {
	employeeRepo repositories.EmployeeRepository
	leaveTypes   repositories.LeaveTypeRepository
	balances     repositories.LeaveBalanceRepository
}

func NewLeaveAccrualService(employeeRepo repositories.EmployeeRepository,
	leaveTypes repositories.LeaveTypeRepository, balances repositories.LeaveBalanceRepository) *LeaveAccrualService {
	return &LeaveAccrualService{
		employeeRepo: employeeRepo,
		leaveTypes:   leaveTypes,
		balances:     balances,
	}
}

func (a *LeaveAccrualService) AccrueMonthly(ctx context.Context) error {
	employees, err := a.employeeRepo.ListActive(ctx)
	if err != nil {
		log.Printf("Failed to list active employees for accrual: %v", err)
		return err
	}

	leaveTypes, err := a.leaveTypes.List(ctx)
	if err != nil {
		log.Printf("Failed to list leave types for accrual: %v", err)
		return err
	}

	credited := 0
	for _, employee := range employees {
		for _, leaveType := range leaveTypes {
			if leaveType.AllowanceDays <= 0 {
				continue
			}
			monthly := float64(leaveType.AllowanceDays) / 12.0
			if err := a.balances.Adjust(ctx, employee.ID, leaveType.ID, monthly); err != nil {
				log.Printf("Failed to accrue %s leave for employee %s: %v", leaveType.Name, employee.ID.String(), err)
				continue
			}
			credited++
		}
	}

	log.Printf("Monthly leave accrual completed: %d balances credited across %d employees", credited, len(employees))
	return nil
}
