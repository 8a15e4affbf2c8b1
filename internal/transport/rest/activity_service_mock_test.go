package rest

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/family-planner/internal/domain"
	"github.com/heartmarshall/family-planner/internal/service/activity"
)

var _ activityService = &activityServiceMock{}

type activityServiceMock struct {
	SaveActivityFunc   func(ctx context.Context, input activity.SaveActivityInput, familyID string) (uuid.UUID, error)
	IngestURLFunc      func(ctx context.Context, rawURL string, familyID string) (*domain.Activity, error)
	ListActivitiesFunc func(ctx context.Context, familyID string, date *time.Time) ([]domain.Activity, error)
	DeleteActivityFunc func(ctx context.Context, id uuid.UUID, familyID string) (bool, error)

	calls struct {
		SaveActivity []struct {
			Ctx      context.Context
			Input    activity.SaveActivityInput
			FamilyID string
		}
		IngestURL []struct {
			Ctx      context.Context
			RawURL   string
			FamilyID string
		}
		ListActivities []struct {
			Ctx      context.Context
			FamilyID string
			Date     *time.Time
		}
		DeleteActivity []struct {
			Ctx      context.Context
			Id       uuid.UUID
			FamilyID string
		}
	}
	lockSaveActivity   sync.RWMutex
	lockIngestURL      sync.RWMutex
	lockListActivities sync.RWMutex
	lockDeleteActivity sync.RWMutex
}

func (mock *activityServiceMock) SaveActivity(ctx context.Context, input activity.SaveActivityInput, familyID string) (uuid.UUID, error) {
	if mock.SaveActivityFunc == nil {
		panic("activityServiceMock.SaveActivityFunc: method is nil but activityService.SaveActivity was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		Input    activity.SaveActivityInput
		FamilyID string
	}{
		Ctx:      ctx,
		Input:    input,
		FamilyID: familyID,
	}
	mock.lockSaveActivity.Lock()
	mock.calls.SaveActivity = append(mock.calls.SaveActivity, callInfo)
	mock.lockSaveActivity.Unlock()
	return mock.SaveActivityFunc(ctx, input, familyID)
}

func (mock *activityServiceMock) SaveActivityCalls() []struct {
	Ctx      context.Context
	Input    activity.SaveActivityInput
	FamilyID string
} {
	var calls []struct {
		Ctx      context.Context
		Input    activity.SaveActivityInput
		FamilyID string
	}
	mock.lockSaveActivity.RLock()
	calls = mock.calls.SaveActivity
	mock.lockSaveActivity.RUnlock()
	return calls
}

func (mock *activityServiceMock) IngestURL(ctx context.Context, rawURL string, familyID string) (*domain.Activity, error) {
	if mock.IngestURLFunc == nil {
		panic("activityServiceMock.IngestURLFunc: method is nil but activityService.IngestURL was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		RawURL   string
		FamilyID string
	}{
		Ctx:      ctx,
		RawURL:   rawURL,
		FamilyID: familyID,
	}
	mock.lockIngestURL.Lock()
	mock.calls.IngestURL = append(mock.calls.IngestURL, callInfo)
	mock.lockIngestURL.Unlock()
	return mock.IngestURLFunc(ctx, rawURL, familyID)
}

func (mock *activityServiceMock) IngestURLCalls() []struct {
	Ctx      context.Context
	RawURL   string
	FamilyID string
} {
	var calls []struct {
		Ctx      context.Context
		RawURL   string
		FamilyID string
	}
	mock.lockIngestURL.RLock()
	calls = mock.calls.IngestURL
	mock.lockIngestURL.RUnlock()
	return calls
}

func (mock *activityServiceMock) ListActivities(ctx context.Context, familyID string, date *time.Time) ([]domain.Activity, error) {
	if mock.ListActivitiesFunc == nil {
		panic("activityServiceMock.ListActivitiesFunc: method is nil but activityService.ListActivities was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		FamilyID string
		Date     *time.Time
	}{
		Ctx:      ctx,
		FamilyID: familyID,
		Date:     date,
	}
	mock.lockListActivities.Lock()
	mock.calls.ListActivities = append(mock.calls.ListActivities, callInfo)
	mock.lockListActivities.Unlock()
	return mock.ListActivitiesFunc(ctx, familyID, date)
}

func (mock *activityServiceMock) ListActivitiesCalls() []struct {
	Ctx      context.Context
	FamilyID string
	Date     *time.Time
} {
	var calls []struct {
		Ctx      context.Context
		FamilyID string
		Date     *time.Time
	}
	mock.lockListActivities.RLock()
	calls = mock.calls.ListActivities
	mock.lockListActivities.RUnlock()
	return calls
}

func (mock *activityServiceMock) DeleteActivity(ctx context.Context, id uuid.UUID, familyID string) (bool, error) {
	if mock.DeleteActivityFunc == nil {
		panic("activityServiceMock.DeleteActivityFunc: method is nil but activityService.DeleteActivity was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		Id       uuid.UUID
		FamilyID string
	}{
		Ctx:      ctx,
		Id:       id,
		FamilyID: familyID,
	}
	mock.lockDeleteActivity.Lock()
	mock.calls.DeleteActivity = append(mock.calls.DeleteActivity, callInfo)
	mock.lockDeleteActivity.Unlock()
	return mock.DeleteActivityFunc(ctx, id, familyID)
}

func (mock *activityServiceMock) DeleteActivityCalls() []struct {
	Ctx      context.Context
	Id       uuid.UUID
	FamilyID string
} {
	var calls []struct {
		Ctx      context.Context
		Id       uuid.UUID
		FamilyID string
	}
	mock.lockDeleteActivity.RLock()
	calls = mock.calls.DeleteActivity
	mock.lockDeleteActivity.RUnlock()
	return calls
}
