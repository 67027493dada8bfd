package service

import (
	"context"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
)

const calendarProductID = "-//teacher-eval//academic-cycles//AR"

// Calendar one all-day event for the first day of the cycle and one for the last
func (s *cycleService) Calendar(ctx context.Context, id string) ([]byte, string, error) {
	cycle, err := s.getCycle(ctx, id)
	if err != nil {
		return nil, "", err
	}

	stamp := s.now().UTC()

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(calendarProductID)
	cal.SetXWRCalName(cycle.Name)

	addAllDayEvent(cal, cycle.CycleID+"-start@teacher-eval", "بداية "+cycle.Name, cycle.StartDate, stamp)
	addAllDayEvent(cal, cycle.CycleID+"-end@teacher-eval", "نهاية "+cycle.Name, cycle.EndDate, stamp)

	filename := fmt.Sprintf("cycle-%s.ics", cycle.StartDate.Format(dateLayout))
	return []byte(cal.Serialize()), filename, nil
}

func addAllDayEvent(cal *ics.Calendar, uid, summary string, day, stamp time.Time) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)

	evt := cal.AddEvent(uid)
	evt.SetDtStampTime(stamp)
	evt.SetSummary(summary)
	evt.SetAllDayStartAt(start)
	evt.SetAllDayEndAt(start.AddDate(0, 0, 1))
}
