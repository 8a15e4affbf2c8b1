package calendar

import (
	"context"
	"sync"

	"github.com/heartmarshall/family-planner/internal/domain"
)

var _ txManager = &txManagerMock{}

type txManagerMock struct {
	RunInTxFunc    func(ctx context.Context, fn func(ctx context.Context) error) error
	LockFamilyFunc func(ctx context.Context, familyID domain.FamilyID) error

	calls struct {
		RunInTx []struct {
			Ctx context.Context
			Fn  func(ctx context.Context) error
		}
		LockFamily []struct {
			Ctx      context.Context
			FamilyID domain.FamilyID
		}
	}
	lockRunInTx    sync.RWMutex
	lockLockFamily sync.RWMutex
}

func (mock *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if mock.RunInTxFunc == nil {
		panic("txManagerMock.RunInTxFunc: method is nil but txManager.RunInTx was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Fn  func(ctx context.Context) error
	}{
		Ctx: ctx,
		Fn:  fn,
	}
	mock.lockRunInTx.Lock()
	mock.calls.RunInTx = append(mock.calls.RunInTx, callInfo)
	mock.lockRunInTx.Unlock()
	return mock.RunInTxFunc(ctx, fn)
}

func (mock *txManagerMock) RunInTxCalls() []struct {
	Ctx context.Context
	Fn  func(ctx context.Context) error
} {
	var calls []struct {
		Ctx context.Context
		Fn  func(ctx context.Context) error
	}
	mock.lockRunInTx.RLock()
	calls = mock.calls.RunInTx
	mock.lockRunInTx.RUnlock()
	return calls
}

func (mock *txManagerMock) LockFamily(ctx context.Context, familyID domain.FamilyID) error {
	if mock.LockFamilyFunc == nil {
		panic("txManagerMock.LockFamilyFunc: method is nil but txManager.LockFamily was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		FamilyID domain.FamilyID
	}{
		Ctx:      ctx,
		FamilyID: familyID,
	}
	mock.lockLockFamily.Lock()
	mock.calls.LockFamily = append(mock.calls.LockFamily, callInfo)
	mock.lockLockFamily.Unlock()
	return mock.LockFamilyFunc(ctx, familyID)
}

func (mock *txManagerMock) LockFamilyCalls() []struct {
	Ctx      context.Context
	FamilyID domain.FamilyID
} {
	var calls []struct {
		Ctx      context.Context
		FamilyID domain.FamilyID
	}
	mock.lockLockFamily.RLock()
	calls = mock.calls.LockFamily
	mock.lockLockFamily.RUnlock()
	return calls
}
