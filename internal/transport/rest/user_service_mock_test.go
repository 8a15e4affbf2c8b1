package rest

import (
	"context"
	"sync"

	"github.com/heartmarshall/family-planner/internal/domain"
)

var _ userService = &userServiceMock{}

type userServiceMock struct {
	GetUserFunc          func(ctx context.Context, externalID int64) (*domain.User, error)
	FamilyOfFunc         func(ctx context.Context, externalID int64) (*domain.User, domain.FamilyID, error)
	UpdateDigestTimeFunc func(ctx context.Context, externalID int64, digestTime string) (*domain.User, error)
	UnlinkPartnerFunc    func(ctx context.Context, externalID int64) error

	calls struct {
		GetUser []struct {
			Ctx        context.Context
			ExternalID int64
		}
		FamilyOf []struct {
			Ctx        context.Context
			ExternalID int64
		}
		UpdateDigestTime []struct {
			Ctx        context.Context
			ExternalID int64
			DigestTime string
		}
		UnlinkPartner []struct {
			Ctx        context.Context
			ExternalID int64
		}
	}
	lockGetUser          sync.RWMutex
	lockFamilyOf         sync.RWMutex
	lockUpdateDigestTime sync.RWMutex
	lockUnlinkPartner    sync.RWMutex
}

func (mock *userServiceMock) GetUser(ctx context.Context, externalID int64) (*domain.User, error) {
	if mock.GetUserFunc == nil {
		panic("userServiceMock.GetUserFunc: method is nil but userService.GetUser was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		ExternalID int64
	}{
		Ctx:        ctx,
		ExternalID: externalID,
	}
	mock.lockGetUser.Lock()
	mock.calls.GetUser = append(mock.calls.GetUser, callInfo)
	mock.lockGetUser.Unlock()
	return mock.GetUserFunc(ctx, externalID)
}

func (mock *userServiceMock) GetUserCalls() []struct {
	Ctx        context.Context
	ExternalID int64
} {
	var calls []struct {
		Ctx        context.Context
		ExternalID int64
	}
	mock.lockGetUser.RLock()
	calls = mock.calls.GetUser
	mock.lockGetUser.RUnlock()
	return calls
}

func (mock *userServiceMock) FamilyOf(ctx context.Context, externalID int64) (*domain.User, domain.FamilyID, error) {
	if mock.FamilyOfFunc == nil {
		panic("userServiceMock.FamilyOfFunc: method is nil but userService.FamilyOf was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		ExternalID int64
	}{
		Ctx:        ctx,
		ExternalID: externalID,
	}
	mock.lockFamilyOf.Lock()
	mock.calls.FamilyOf = append(mock.calls.FamilyOf, callInfo)
	mock.lockFamilyOf.Unlock()
	return mock.FamilyOfFunc(ctx, externalID)
}

func (mock *userServiceMock) FamilyOfCalls() []struct {
	Ctx        context.Context
	ExternalID int64
} {
	var calls []struct {
		Ctx        context.Context
		ExternalID int64
	}
	mock.lockFamilyOf.RLock()
	calls = mock.calls.FamilyOf
	mock.lockFamilyOf.RUnlock()
	return calls
}

func (mock *userServiceMock) UpdateDigestTime(ctx context.Context, externalID int64, digestTime string) (*domain.User, error) {
	if mock.UpdateDigestTimeFunc == nil {
		panic("userServiceMock.UpdateDigestTimeFunc: method is nil but userService.UpdateDigestTime was just called")
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

func (mock *userServiceMock) UpdateDigestTimeCalls() []struct {
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

func (mock *userServiceMock) UnlinkPartner(ctx context.Context, externalID int64) error {
	if mock.UnlinkPartnerFunc == nil {
		panic("userServiceMock.UnlinkPartnerFunc: method is nil but userService.UnlinkPartner was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		ExternalID int64
	}{
		Ctx:        ctx,
		ExternalID: externalID,
	}
	mock.lockUnlinkPartner.Lock()
	mock.calls.UnlinkPartner = append(mock.calls.UnlinkPartner, callInfo)
	mock.lockUnlinkPartner.Unlock()
	return mock.UnlinkPartnerFunc(ctx, externalID)
}

func (mock *userServiceMock) UnlinkPartnerCalls() []struct {
	Ctx        context.Context
	ExternalID int64
} {
	var calls []struct {
		Ctx        context.Context
		ExternalID int64
	}
	mock.lockUnlinkPartner.RLock()
	calls = mock.calls.UnlinkPartner
	mock.lockUnlinkPartner.RUnlock()
	return calls
}
