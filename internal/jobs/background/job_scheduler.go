package background

import (
	"context"
	"log"

	"staffsync/internal/config"
	"staffsync/internal/jobs"

	"github.com/go-co-op/gocron/v2"
)

// JobScheduler runs the periodic HR maintenance jobs.
type JobScheduler struct {
	scheduler  gocron.Scheduler
	accrual    *jobs.LeaveAccrualService
	reminder   *jobs.TimesheetReminderService
	cfg        *config.JobsConfig
	jobsByName map[string]gocron.Job
}

func NewJobScheduler(accrual *jobs.LeaveAccrualService, reminder *jobs.TimesheetReminderService,
	cfg *config.JobsConfig) (*JobScheduler, error) {

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	js := &JobScheduler{
		scheduler:  scheduler,
		accrual:    accrual,
		reminder:   reminder,
		cfg:        cfg,
		jobsByName: make(map[string]gocron.Job),
	}

	js.registerJobs()

	return js, nil
}

func (js *JobScheduler) Start() {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
}

func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) registerJobs() {
	accrualJob, err := js.scheduler.NewJob(
		gocron.CronJob(js.cfg.AccrualCron, false),
		gocron.NewTask(js.accrual.AccrueMonthly, context.Background()),
		gocron.WithName("leave-accrual"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create leave accrual job: %v", err)
	} else {
		js.jobsByName["leave-accrual"] = accrualJob
	}

	reminderJob, err := js.scheduler.NewJob(
		gocron.CronJob(js.cfg.ReminderCron, false),
		gocron.NewTask(js.reminder.RemindMissingEntries, context.Background()),
		gocron.WithName("timesheet-reminder"),
	)
	if err != nil {
		log.Printf("Failed to create timesheet reminder job: %v", err)
	} else {
		js.jobsByName["timesheet-reminder"] = reminderJob
	}

	log.Printf("Registered %d background jobs", len(js.jobsByName))
}
