package activity

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/family-planner/internal/domain"
)

var _ activityRepo = &activityRepoMock{}

type activityRepoMock struct {
	CreateFunc              func(ctx context.Context, a *domain.Activity) (*domain.Activity, error)
	FindBySourceFunc        func(ctx context.Context, family domain.FamilyID, sourceURL string) (*domain.Activity, error)
	UpdateFunc              func(ctx context.Context, a *domain.Activity) (*domain.Activity, error)
	CountByFamilyFunc       func(ctx context.Context, family domain.FamilyID) (int, error)
	DeleteOldestFunc        func(ctx context.Context, family domain.FamilyID, n int, keep uuid.UUID) (int64, error)
	ListFunc                func(ctx context.Context, f domain.ActivityFilter) ([]domain.Activity, error)
	DeleteFunc              func(ctx context.Context, id uuid.UUID, family domain.FamilyID) error
	DeleteStartedBeforeFunc func(ctx context.Context, cutoff time.Time) (int64, error)

	calls struct {
		Create []struct {
			Ctx context.Context
			A   *domain.Activity
		}
		FindBySource []struct {
			Ctx       context.Context
			Family    domain.FamilyID
			SourceURL string
		}
		Update []struct {
			Ctx context.Context
			A   *domain.Activity
		}
		CountByFamily []struct {
			Ctx    context.Context
			Family domain.FamilyID
		}
		DeleteOldest []struct {
			Ctx    context.Context
			Family domain.FamilyID
			N      int
			Keep   uuid.UUID
		}
		List []struct {
			Ctx context.Context
			F   domain.ActivityFilter
		}
		Delete []struct {
			Ctx    context.Context
			Id     uuid.UUID
			Family domain.FamilyID
		}
		DeleteStartedBefore []struct {
			Ctx    context.Context
			Cutoff time.Time
		}
	}
	lockCreate              sync.RWMutex
	lockFindBySource        sync.RWMutex
	lockUpdate              sync.RWMutex
	lockCountByFamily       sync.RWMutex
	lockDeleteOldest        sync.RWMutex
	lockList                sync.RWMutex
	lockDelete              sync.RWMutex
	lockDeleteStartedBefore sync.RWMutex
}

func (mock *activityRepoMock) Create(ctx context.Context, a *domain.Activity) (*domain.Activity, error) {
	if mock.CreateFunc == nil {
		panic("activityRepoMock.CreateFunc: method is nil but activityRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		A   *domain.Activity
	}{
		Ctx: ctx,
		A:   a,
	}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, a)
}

func (mock *activityRepoMock) CreateCalls() []struct {
	Ctx context.Context
	A   *domain.Activity
} {
	var calls []struct {
		Ctx context.Context
		A   *domain.Activity
	}
	mock.lockCreate.RLock()
	calls = mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *activityRepoMock) FindBySource(ctx context.Context, family domain.FamilyID, sourceURL string) (*domain.Activity, error) {
	if mock.FindBySourceFunc == nil {
		panic("activityRepoMock.FindBySourceFunc: method is nil but activityRepo.FindBySource was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		Family    domain.FamilyID
		SourceURL string
	}{
		Ctx:       ctx,
		Family:    family,
		SourceURL: sourceURL,
	}
	mock.lockFindBySource.Lock()
	mock.calls.FindBySource = append(mock.calls.FindBySource, callInfo)
	mock.lockFindBySource.Unlock()
	return mock.FindBySourceFunc(ctx, family, sourceURL)
}

func (mock *activityRepoMock) FindBySourceCalls() []struct {
	Ctx       context.Context
	Family    domain.FamilyID
	SourceURL string
} {
	var calls []struct {
		Ctx       context.Context
		Family    domain.FamilyID
		SourceURL string
	}
	mock.lockFindBySource.RLock()
	calls = mock.calls.FindBySource
	mock.lockFindBySource.RUnlock()
	return calls
}

func (mock *activityRepoMock) Update(ctx context.Context, a *domain.Activity) (*domain.Activity, error) {
	if mock.UpdateFunc == nil {
		panic("activityRepoMock.UpdateFunc: method is nil but activityRepo.Update was just called")
	}
	callInfo := struct {
		Ctx context.Context
		A   *domain.Activity
	}{
		Ctx: ctx,
		A:   a,
	}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, a)
}

func (mock *activityRepoMock) UpdateCalls() []struct {
	Ctx context.Context
	A   *domain.Activity
} {
	var calls []struct {
		Ctx context.Context
		A   *domain.Activity
	}
	mock.lockUpdate.RLock()
	calls = mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}

func (mock *activityRepoMock) CountByFamily(ctx context.Context, family domain.FamilyID) (int, error) {
	if mock.CountByFamilyFunc == nil {
		panic("activityRepoMock.CountByFamilyFunc: method is nil but activityRepo.CountByFamily was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Family domain.FamilyID
	}{
		Ctx:    ctx,
		Family: family,
	}
	mock.lockCountByFamily.Lock()
	mock.calls.CountByFamily = append(mock.calls.CountByFamily, callInfo)
	mock.lockCountByFamily.Unlock()
	return mock.CountByFamilyFunc(ctx, family)
}

func (mock *activityRepoMock) CountByFamilyCalls() []struct {
	Ctx    context.Context
	Family domain.FamilyID
} {
	var calls []struct {
		Ctx    context.Context
		Family domain.FamilyID
	}
	mock.lockCountByFamily.RLock()
	calls = mock.calls.CountByFamily
	mock.lockCountByFamily.RUnlock()
	return calls
}

func (mock *activityRepoMock) DeleteOldest(ctx context.Context, family domain.FamilyID, n int, keep uuid.UUID) (int64, error) {
	if mock.DeleteOldestFunc == nil {
		panic("activityRepoMock.DeleteOldestFunc: method is nil but activityRepo.DeleteOldest was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Family domain.FamilyID
		N      int
		Keep   uuid.UUID
	}{
		Ctx:    ctx,
		Family: family,
		N:      n,
		Keep:   keep,
	}
	mock.lockDeleteOldest.Lock()
	mock.calls.DeleteOldest = append(mock.calls.DeleteOldest, callInfo)
	mock.lockDeleteOldest.Unlock()
	return mock.DeleteOldestFunc(ctx, family, n, keep)
}

func (mock *activityRepoMock) DeleteOldestCalls() []struct {
	Ctx    context.Context
	Family domain.FamilyID
	N      int
	Keep   uuid.UUID
} {
	var calls []struct {
		Ctx    context.Context
		Family domain.FamilyID
		N      int
		Keep   uuid.UUID
	}
	mock.lockDeleteOldest.RLock()
	calls = mock.calls.DeleteOldest
	mock.lockDeleteOldest.RUnlock()
	return calls
}

func (mock *activityRepoMock) List(ctx context.Context, f domain.ActivityFilter) ([]domain.Activity, error) {
	if mock.ListFunc == nil {
		panic("activityRepoMock.ListFunc: method is nil but activityRepo.List was just called")
	}
	callInfo := struct {
		Ctx context.Context
		F   domain.ActivityFilter
	}{
		Ctx: ctx,
		F:   f,
	}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, f)
}

func (mock *activityRepoMock) ListCalls() []struct {
	Ctx context.Context
	F   domain.ActivityFilter
} {
	var calls []struct {
		Ctx context.Context
		F   domain.ActivityFilter
	}
	mock.lockList.RLock()
	calls = mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *activityRepoMock) Delete(ctx context.Context, id uuid.UUID, family domain.FamilyID) error {
	if mock.DeleteFunc == nil {
		panic("activityRepoMock.DeleteFunc: method is nil but activityRepo.Delete was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Id     uuid.UUID
		Family domain.FamilyID
	}{
		Ctx:    ctx,
		Id:     id,
		Family: family,
	}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, id, family)
}

func (mock *activityRepoMock) DeleteCalls() []struct {
	Ctx    context.Context
	Id     uuid.UUID
	Family domain.FamilyID
} {
	var calls []struct {
		Ctx    context.Context
		Id     uuid.UUID
		Family domain.FamilyID
	}
	mock.lockDelete.RLock()
	calls = mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}

func (mock *activityRepoMock) DeleteStartedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	if mock.DeleteStartedBeforeFunc == nil {
		panic("activityRepoMock.DeleteStartedBeforeFunc: method is nil but activityRepo.DeleteStartedBefore was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Cutoff time.Time
	}{
		Ctx:    ctx,
		Cutoff: cutoff,
	}
	mock.lockDeleteStartedBefore.Lock()
	mock.calls.DeleteStartedBefore = append(mock.calls.DeleteStartedBefore, callInfo)
	mock.lockDeleteStartedBefore.Unlock()
	return mock.DeleteStartedBeforeFunc(ctx, cutoff)
}

func (mock *activityRepoMock) DeleteStartedBeforeCalls() []struct {
	Ctx    context.Context
	Cutoff time.Time
} {
	var calls []struct {
		Ctx    context.Context
		Cutoff time.Time
	}
	mock.lockDeleteStartedBefore.RLock()
	calls = mock.calls.DeleteStartedBefore
	mock.lockDeleteStartedBefore.RUnlock()
	return calls
}
