package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang-stock-digest/internal/entity"
	"golang-stock-digest/pkg/utils"

	"github.com/robfig/cron/v3"
)

// Slot is the scheduling slot of one cron invocation, in UTC.
type Slot struct {
	Time string // "HH:MM", minutes floored to a quarter hour
	Day  string // lower-case weekday name
	Hour int
	At   time.Time
}

// NewSlot computes the slot that contains now.
func NewSlot(now time.Time) Slot {
	now = now.UTC()
	return Slot{
		Time: fmt.Sprintf("%02d:%02d", now.Hour(), now.Minute()/15*15),
		Day:  utils.DayName(now),
		Hour: now.Hour(),
		At:   now,
	}
}

// Window returns the half-open schedule_time range [from, to) covering the
// slot's hour. For hour 23 the upper bound is "24:00".
func (s Slot) Window() (from, to string) {
	return fmt.Sprintf("%02d:00", s.Hour), fmt.Sprintf("%02d:00", s.Hour+1)
}

// Key identifies the slot's UTC date and hour, e.g. "2026030208".
func (s Slot) Key() string {
	return s.At.Format("2006010215")
}

// Matches reports whether p is due in this slot.
func (s Slot) Matches(p *entity.UserProfile) bool {
	if p == nil || p.EmailsPaused || len(p.Tickers) == 0 {
		return false
	}
	from, to := s.Window()
	if p.ScheduleTime < from || p.ScheduleTime >= to {
		return false
	}
	for _, d := range p.ScheduleDays {
		if d == s.Day {
			return true
		}
	}
	return false
}

// InSameHour reports whether t falls in the slot's UTC date and hour.
func (s Slot) InSameHour(t time.Time) bool {
	return t.UTC().Truncate(time.Hour).Equal(s.At.Truncate(time.Hour))
}

// ParseScheduleTime validates an "HH:MM" value.
func ParseScheduleTime(value string) (hour, minute int, err error) {
	parts := strings.Split(value, ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, 0, fmt.Errorf("%w: time must be HH:MM", ErrInvalidSchedule)
	}
	hour, errH := strconv.Atoi(parts[0])
	minute, errM := strconv.Atoi(parts[1])
	if errH != nil || errM != nil || hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("%w: time must be HH:MM", ErrInvalidSchedule)
	}
	return hour, minute, nil
}

var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// NextDigestAt returns the next UTC time after now at which p is due, or nil
// when p is paused or has no usable schedule.
func NextDigestAt(p *entity.UserProfile, now time.Time) *time.Time {
	if p == nil || p.EmailsPaused || len(p.Tickers) == 0 || len(p.ScheduleDays) == 0 {
		return nil
	}
	hour, minute, err := ParseScheduleTime(p.ScheduleTime)
	if err != nil {
		return nil
	}

	days := make([]string, 0, len(p.ScheduleDays))
	for _, d := range p.ScheduleDays {
		wd, ok := utils.ParseDayName(d)
		if !ok {
			return nil
		}
		days = append(days, strconv.Itoa(int(wd)))
	}

	schedule, err := cronParser.Parse(fmt.Sprintf("%d %d * * %s", minute, hour, strings.Join(days, ",")))
	if err != nil {
		return nil
	}
	next := schedule.Next(now.UTC())
	if next.IsZero() {
		return nil
	}
	return &next
}
