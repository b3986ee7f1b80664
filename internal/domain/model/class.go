//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Weekdays is the closed list of teaching days, Monday first.
var Weekdays = []string{"Thứ 2", "Thứ 3", "Thứ 4", "Thứ 5", "Thứ 6", "Thứ 7", "Chủ nhật"}

// Default schedule used when a new class is created.
const (
	DefaultScheduleDay   = "Thứ 2"
	DefaultScheduleStart = "18:00"
	DefaultScheduleEnd   = "19:30"
)

// Class is a taught class with its monthly fee and weekly slot.
type Class struct {
	ID           ID     `json:"id"`
	Name         string `json:"name"`
	Fee          Number `json:"fee"`
	Schedule     string `json:"schedule,omitempty"`
	StudentCount int    `json:"student_count"`
}

// ClassInput is the create/update body for a class.
type ClassInput struct {
	Name     string  `json:"name"`
	Fee      float64 `json:"fee"`
	Schedule string  `json:"schedule"`
}

// ClassStudent is a member of a class roster.
type ClassStudent struct {
	ID    ID     `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Schedule is the structured form of a class's weekly slot.
type Schedule struct {
	Day   string
	Start string
	End   string
}

var scheduleRe = regexp.MustCompile(`^(.*?) \((.*?) - (.*?)\)$`)

// ParseSchedule splits "Thứ 2 (18:00 - 19:30)" into its parts.
func ParseSchedule(s string) (Schedule, bool) {
	m := scheduleRe.FindStringSubmatch(s)
	if m == nil {
		return Schedule{}, false
	}
	return Schedule{Day: m[1], Start: m[2], End: m[3]}, true
}

// ScheduleOrDefault parses s, falling back to the default weekly slot.
func ScheduleOrDefault(s string) Schedule {
	if sch, ok := ParseSchedule(s); ok {
		return sch
	}
	return Schedule{Day: DefaultScheduleDay, Start: DefaultScheduleStart, End: DefaultScheduleEnd}
}

func (s Schedule) String() string {
	return fmt.Sprintf("%s (%s - %s)", s.Day, s.Start, s.End)
}

// startTime extracts the start time from a schedule string, or "" when absent.
func startTime(schedule string) string {
	open := strings.Index(schedule, "(")
	if open < 0 {
		return ""
	}
	rest := schedule[open+1:]
	dash := strings.Index(rest, "-")
	if dash < 0 {
		return ""
	}
	return strings.TrimSpace(rest[:dash])
}

// DaySchedule lists the classes taught on one weekday.
type DaySchedule struct {
	Day     string
	Classes []Class
}

// GroupByWeekday buckets classes by the weekday their schedule starts with and
// orders each bucket by start time. Classes without a schedule are omitted.
func GroupByWeekday(classes []Class) []DaySchedule {
	out := make([]DaySchedule, 0, len(Weekdays))
	for _, day := range Weekdays {
		var bucket []Class
		for _, c := range classes {
			if c.Schedule != "" && strings.HasPrefix(c.Schedule, day) {
				bucket = append(bucket, c)
			}
		}
		sort.SliceStable(bucket, func(i, j int) bool {
			return startTime(bucket[i].Schedule) < startTime(bucket[j].Schedule)
		})
		out = append(out, DaySchedule{Day: day, Classes: bucket})
	}
	return out
}

// ExcludeMembers returns the students not already in the roster.
func ExcludeMembers(all []Student, roster []ClassStudent) []Student {
	members := make(map[ID]struct{}, len(roster))
	for _, s := range roster {
		members[s.ID] = struct{}{}
	}
	out := make([]Student, 0, len(all))
	for _, s := range all {
		if _, ok := members[s.ID]; !ok {
			out = append(out, s)
		}
	}
	return out
}
