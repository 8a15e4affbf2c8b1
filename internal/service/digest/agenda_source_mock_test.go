package digest

import (
	"context"
	"sync"
	"time"

	"github.com/heartmarshall/family-planner/internal/service/calendar"
)

var _ agendaSource = &agendaSourceMock{}

type agendaSourceMock struct {
	AgendaFunc func(ctx context.Context, userID int64, date time.Time) (*calendar.Agenda, error)

	calls struct {
		Agenda []struct {
			Ctx    context.Context
			UserID int64
			Date   time.Time
		}
	}
	lockAgenda sync.RWMutex
}

func (mock *agendaSourceMock) Agenda(ctx context.Context, userID int64, date time.Time) (*calendar.Agenda, error) {
	if mock.AgendaFunc == nil {
		panic("agendaSourceMock.AgendaFunc: method is nil but agendaSource.Agenda was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID int64
		Date   time.Time
	}{
		Ctx:    ctx,
		UserID: userID,
		Date:   date,
	}
	mock.lockAgenda.Lock()
	mock.calls.Agenda = append(mock.calls.Agenda, callInfo)
	mock.lockAgenda.Unlock()
	return mock.AgendaFunc(ctx, userID, date)
}

func (mock *agendaSourceMock) AgendaCalls() []struct {
	Ctx    context.Context
	UserID int64
	Date   time.Time
} {
	var calls []struct {
		Ctx    context.Context
		UserID int64
		Date   time.Time
	}
	mock.lockAgenda.RLock()
	calls = mock.calls.Agenda
	mock.lockAgenda.RUnlock()
	return calls
}
