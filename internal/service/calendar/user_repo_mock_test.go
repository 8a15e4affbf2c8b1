package calendar

import (
	"context"
	"sync"

	"github.com/heartmarshall/family-planner/internal/domain"
)

var _ userRepo = &userRepoMock{}

type userRepoMock struct {
	GetByExternalIDFunc func(ctx context.Context, externalID int64) (*domain.User, error)

	calls struct {
		GetByExternalID []struct {
			Ctx        context.Context
			ExternalID int64
		}
	}
	lockGetByExternalID sync.RWMutex
}

func (mock *userRepoMock) GetByExternalID(ctx context.Context, externalID int64) (*domain.User, error) {
	if mock.GetByExternalIDFunc == nil {
		panic("userRepoMock.GetByExternalIDFunc: method is nil but userRepo.GetByExternalID was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		ExternalID int64
	}{
		Ctx:        ctx,
		ExternalID: externalID,
	}
	mock.lockGetByExternalID.Lock()
	mock.calls.GetByExternalID = append(mock.calls.GetByExternalID, callInfo)
	mock.lockGetByExternalID.Unlock()
	return mock.GetByExternalIDFunc(ctx, externalID)
}

func (mock *userRepoMock) GetByExternalIDCalls() []struct {
	Ctx        context.Context
	ExternalID int64
} {
	var calls []struct {
		Ctx        context.Context
		ExternalID int64
	}
	mock.lockGetByExternalID.RLock()
	calls = mock.calls.GetByExternalID
	mock.lockGetByExternalID.RUnlock()
	return calls
}
