package user

import (
	"context"
	"sync"

	"github.com/heartmarshall/family-planner/internal/domain"
)

var _ userRepo = &userRepoMock{}

type userRepoMock struct {
	CreateFunc          func(ctx context.Context, u *domain.User) (*domain.User, error)
	GetByExternalIDFunc func(ctx context.Context, externalID int64) (*domain.User, error)
	// GetByExternalIDForUpdateFunc falls back to GetByExternalIDFunc when nil.
	GetByExternalIDForUpdateFunc func(ctx context.Context, externalID int64) (*domain.User, error)
	SetPartnerFunc               func(ctx context.Context, externalID int64, partnerID int64) error
	UpdateDigestTimeFunc         func(ctx context.Context, externalID int64, digestTime string) (*domain.User, error)
	ListByDigestTimeFunc         func(ctx context.Context, hhmm string) ([]domain.User, error)

	calls struct {
		Create []struct {
			Ctx context.Context
			U   *domain.User
		}
		GetByExternalID []struct {
			Ctx        context.Context
			ExternalID int64
		}
		GetByExternalIDForUpdate []struct {
			Ctx        context.Context
			ExternalID int64
		}
		SetPartner []struct {
			Ctx        context.Context
			ExternalID int64
			PartnerID  int64
		}
		UpdateDigestTime []struct {
			Ctx        context.Context
			ExternalID int64
			DigestTime string
		}
		ListByDigestTime []struct {
			Ctx  context.Context
			Hhmm string
		}
	}
	lockCreate                   sync.RWMutex
	lockGetByExternalID          sync.RWMutex
	lockGetByExternalIDForUpdate sync.RWMutex
	lockSetPartner               sync.RWMutex
	lockUpdateDigestTime         sync.RWMutex
	lockListByDigestTime         sync.RWMutex
}

func (mock *userRepoMock) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	if mock.CreateFunc == nil {
		panic("userRepoMock.CreateFunc: method is nil but userRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		U   *domain.User
	}{
		Ctx: ctx,
		U:   u,
	}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, u)
}

func (mock *userRepoMock) CreateCalls() []struct {
	Ctx context.Context
	U   *domain.User
} {
	var calls []struct {
		Ctx context.Context
		U   *domain.User
	}
	mock.lockCreate.RLock()
	calls = mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
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

func (mock *userRepoMock) GetByExternalIDForUpdate(ctx context.Context, externalID int64) (*domain.User, error) {
	fn := mock.GetByExternalIDForUpdateFunc
	if fn == nil {
		fn = mock.GetByExternalIDFunc
	}
	if fn == nil {
		panic("userRepoMock.GetByExternalIDForUpdateFunc: method is nil but userRepo.GetByExternalIDForUpdate was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		ExternalID int64
	}{
		Ctx:        ctx,
		ExternalID: externalID,
	}
	mock.lockGetByExternalIDForUpdate.Lock()
	mock.calls.GetByExternalIDForUpdate = append(mock.calls.GetByExternalIDForUpdate, callInfo)
	mock.lockGetByExternalIDForUpdate.Unlock()
	return fn(ctx, externalID)
}

func (mock *userRepoMock) GetByExternalIDForUpdateCalls() []struct {
	Ctx        context.Context
	ExternalID int64
} {
	var calls []struct {
		Ctx        context.Context
		ExternalID int64
	}
	mock.lockGetByExternalIDForUpdate.RLock()
	calls = mock.calls.GetByExternalIDForUpdate
	mock.lockGetByExternalIDForUpdate.RUnlock()
	return calls
}

func (mock *userRepoMock) SetPartner(ctx context.Context, externalID int64, partnerID int64) error {
	if mock.SetPartnerFunc == nil {
		panic("userRepoMock.SetPartnerFunc: method is nil but userRepo.SetPartner was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		ExternalID int64
		PartnerID  int64
	}{
		Ctx:        ctx,
		ExternalID: externalID,
		PartnerID:  partnerID,
	}
	mock.lockSetPartner.Lock()
	mock.calls.SetPartner = append(mock.calls.SetPartner, callInfo)
	mock.lockSetPartner.Unlock()
	return mock.SetPartnerFunc(ctx, externalID, partnerID)
}

func (mock *userRepoMock) SetPartnerCalls() []struct {
	Ctx        context.Context
	ExternalID int64
	PartnerID  int64
} {
	var calls []struct {
		Ctx        context.Context
		ExternalID int64
		PartnerID  int64
	}
	mock.lockSetPartner.RLock()
	calls = mock.calls.SetPartner
	mock.lockSetPartner.RUnlock()
	return calls
}

func (mock *userRepoMock) UpdateDigestTime(ctx context.Context, externalID int64, digestTime string) (*domain.User, error) {
	if mock.UpdateDigestTimeFunc == nil {
		panic("userRepoMock.UpdateDigestTimeFunc: method is nil but userRepo.UpdateDigestTime was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		ExternalID int64
		DigestTime string
	}{
		Ctx:        ctx,
		ExternalID: externalID,
		DigestTime: digestTime,
	}
	mock.lockUpdateDigestTime.Lock()
	mock.calls.UpdateDigestTime = append(mock.calls.UpdateDigestTime, callInfo)
	mock.lockUpdateDigestTime.Unlock()
	return mock.UpdateDigestTimeFunc(ctx, externalID, digestTime)
}

func (mock *userRepoMock) UpdateDigestTimeCalls() []struct {
	Ctx        context.Context
	ExternalID int64
	DigestTime string
} {
	var calls []struct {
		Ctx        context.Context
		ExternalID int64
		DigestTime string
	}
	mock.lockUpdateDigestTime.RLock()
	calls = mock.calls.UpdateDigestTime
	mock.lockUpdateDigestTime.RUnlock()
	return calls
}

func (mock *userRepoMock) ListByDigestTime(ctx context.Context, hhmm string) ([]domain.User, error) {
	if mock.ListByDigestTimeFunc == nil {
		panic("userRepoMock.ListByDigestTimeFunc: method is nil but userRepo.ListByDigestTime was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Hhmm string
	}{
		Ctx:  ctx,
		Hhmm: hhmm,
	}
	mock.lockListByDigestTime.Lock()
	mock.calls.ListByDigestTime = append(mock.calls.ListByDigestTime, callInfo)
	mock.lockListByDigestTime.Unlock()
	return mock.ListByDigestTimeFunc(ctx, hhmm)
}

func (mock *userRepoMock) ListByDigestTimeCalls() []struct {
	Ctx  context.Context
	Hhmm string
} {
	var calls []struct {
		Ctx  context.Context
		Hhmm string
	}
	mock.lockListByDigestTime.RLock()
	calls = mock.calls.ListByDigestTime
	mock.lockListByDigestTime.RUnlock()
	return calls
}
