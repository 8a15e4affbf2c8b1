package digest

import (
	"context"
	"sync"

	"github.com/heartmarshall/family-planner/internal/domain"
)

var _ userLister = &userListerMock{}

type userListerMock struct {
	UsersWithDigestAtFunc func(ctx context.Context, hhmm string) ([]domain.User, error)

	calls struct {
		UsersWithDigestAt []struct {
			Ctx  context.Context
			Hhmm string
		}
	}
	lockUsersWithDigestAt sync.RWMutex
}

func (mock *userListerMock) UsersWithDigestAt(ctx context.Context, hhmm string) ([]domain.User, error) {
	if mock.UsersWithDigestAtFunc == nil {
		panic("userListerMock.UsersWithDigestAtFunc: method is nil but userLister.UsersWithDigestAt was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Hhmm string
	}{
		Ctx:  ctx,
		Hhmm: hhmm,
	}
	mock.lockUsersWithDigestAt.Lock()
	mock.calls.UsersWithDigestAt = append(mock.calls.UsersWithDigestAt, callInfo)
	mock.lockUsersWithDigestAt.Unlock()
	return mock.UsersWithDigestAtFunc(ctx, hhmm)
}

func (mock *userListerMock) UsersWithDigestAtCalls() []struct {
	Ctx  context.Context
	Hhmm string
} {
	var calls []struct {
		Ctx  context.Context
		Hhmm string
	}
	mock.lockUsersWithDigestAt.RLock()
	calls = mock.calls.UsersWithDigestAt
	mock.lockUsersWithDigestAt.RUnlock()
	return calls
}
