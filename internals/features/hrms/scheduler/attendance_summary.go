package scheduler

import (
	"context"
	"log"
	"time"

	"hrms_backend/internals/features/hrms/store"
	"hrms_backend/internals/helpers/dbtime"

	"github.com/robfig/cron/v3"
)

// StartAttendanceSummaryScheduler logs, on schedule, how the roster was
// marked on the previous local day. Caller stops the returned cron.
func StartAttendanceSummaryScheduler(st store.Store, schedule string, loc *time.Location) (*cron.Cron, error) {
	if loc == nil {
		loc = time.UTC
	}
	c := cron.New(
		cron.WithLocation(loc),
		cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)),
	)

	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		yesterday := dbtime.Today(time.Now(), loc).AddDate(0, 0, -1)
		if _, err := RunAttendanceSummary(ctx, st, yesterday); err != nil {
			log.Printf("[SCHEDULER] attendance summary error: %v", err)
		}
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[SCHEDULER] attendance summary started schedule=%q tz=%s", schedule, loc)
	c.Start()
	return c, nil
}

// RunAttendanceSummary computes and logs the summary for one day.
func RunAttendanceSummary(ctx context.Context, st store.Store, day time.Time) (store.DaySummary, error) {
	sum, err := st.SummarizeDay(ctx, day)
	if err != nil {
		return sum, err
	}
	log.Printf("[SCHEDULER] attendance %s: employees=%d present=%d absent=%d unmarked=%d",
		dbtime.FormatDate(day), sum.Employees, sum.Present, sum.Absent, sum.Unmarked())
	return sum, nil
}
