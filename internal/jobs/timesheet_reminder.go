package jobs

import (
	"context"
	"log"
	"time"

	"staffsync/internal/repositories"
)

// TimesheetReminderService finds employees who logged no timesheet entry
// for the previous working day and flags them. Delivery is a log line for
// now; a notification channel can hang off the same scan.
type TimesheetReminderService struct {
	timesheetRepo repositories.TimesheetRepository
}

func NewTimesheetReminderService(timesheetRepo repositories.TimesheetRepository) *TimesheetReminderService {
	return &TimesheetReminderService{timesheetRepo: timesheetRepo}
}

func (r *TimesheetReminderService) RemindMissingEntries(ctx context.Context) error {
	yesterday := time.Now().UTC().AddDate(0, 0, -1)
	// Weekend days carry no entries; skip Saturday and Sunday.
	if wd := yesterday.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return nil
	}

	missing, err := r.timesheetRepo.EmployeesWithoutEntry(ctx, yesterday)
	if err != nil {
		log.Printf("Failed to scan for missing timesheet entries: %v", err)
		return err
	}

	for _, employeeID := range missing {
		log.Printf("Timesheet reminder: employee %s has no entry for %s", employeeID.String(), yesterday.Format("2006-01-02"))
	}
	log.Printf("Timesheet reminder scan completed: %d employees missing entries for %s", len(missing), yesterday.Format("2006-01-02"))
	return nil
}
