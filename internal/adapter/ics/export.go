// Package ics renders family events as an iCalendar feed.
package ics

import (
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/heartmarshall/family-planner/internal/domain"
)

const productID = "-//family-planner//calendar//EN"

// Encode serializes events into a VCALENDAR named name. Times are written in
// UTC; calendar clients convert them to the viewer's zone.
func Encode(name string, events []domain.Event, now time.Time) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)
	cal.SetXWRCalName(name)

	for _, e := range events {
		ve := cal.AddEvent(e.ID.String() + "@family-planner")
		ve.SetDtStampTime(now.UTC())
		if !e.CreatedAt.IsZero() {
			ve.SetCreatedTime(e.CreatedAt.UTC())
		}
		ve.SetStartAt(e.StartAt.UTC())
		ve.SetEndAt(e.EndAt().UTC())
		ve.SetSummary(e.Title)
		ve.SetProperty(ical.ComponentPropertyCategories, strings.ToUpper(e.Category.String()))
		ve.SetStatus(status(e.Status))
	}

	return cal.Serialize()
}

func status(s domain.EventStatus) ical.ObjectStatus {
	if s == domain.EventStatusConfirmed {
		return ical.ObjectStatusConfirmed
	}
	return ical.ObjectStatusTentative
}
