package calendar

import (
	"context"
	"sync"

	"github.com/heartmarshall/family-planner/internal/domain"
)

var _ factRepo = &factRepoMock{}

type factRepoMock struct {
	UpsertFunc       func(ctx context.Context, f *domain.FamilyFact) (*domain.FamilyFact, error)
	ListByFamilyFunc func(ctx context.Context, family domain.FamilyID) ([]domain.FamilyFact, error)

	calls struct {
		Upsert []struct {
			Ctx context.Context
			F   *domain.FamilyFact
		}
		ListByFamily []struct {
			Ctx    context.Context
			Family domain.FamilyID
		}
	}
	lockUpsert       sync.RWMutex
	lockListByFamily sync.RWMutex
}

func (mock *factRepoMock) Upsert(ctx context.Context, f *domain.FamilyFact) (*domain.FamilyFact, error) {
	if mock.UpsertFunc == nil {
		panic("factRepoMock.UpsertFunc: method is nil but factRepo.Upsert was just called")
	}
	callInfo := struct {
		Ctx context.Context
		F   *domain.FamilyFact
	}{
		Ctx: ctx,
		F:   f,
	}
	mock.lockUpsert.Lock()
	mock.calls.Upsert = append(mock.calls.Upsert, callInfo)
	mock.lockUpsert.Unlock()
	return mock.UpsertFunc(ctx, f)
}

func (mock *factRepoMock) UpsertCalls() []struct {
	Ctx context.Context
	F   *domain.FamilyFact
} {
	var calls []struct {
		Ctx context.Context
		F   *domain.FamilyFact
	}
	mock.lockUpsert.RLock()
	calls = mock.calls.Upsert
	mock.lockUpsert.RUnlock()
	return calls
}

func (mock *factRepoMock) ListByFamily(ctx context.Context, family domain.FamilyID) ([]domain.FamilyFact, error) {
	if mock.ListByFamilyFunc == nil {
		panic("factRepoMock.ListByFamilyFunc: method is nil but factRepo.ListByFamily was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Family domain.FamilyID
	}{
		Ctx:    ctx,
		Family: family,
	}
	mock.lockListByFamily.Lock()
	mock.calls.ListByFamily = append(mock.calls.ListByFamily, callInfo)
	mock.lockListByFamily.Unlock()
	return mock.ListByFamilyFunc(ctx, family)
}

func (mock *factRepoMock) ListByFamilyCalls() []struct {
	Ctx    context.Context
	Family domain.FamilyID
} {
	var calls []struct {
		Ctx    context.Context
		Family domain.FamilyID
	}
	mock.lockListByFamily.RLock()
	calls = mock.calls.ListByFamily
	mock.lockListByFamily.RUnlock()
	return calls
}
