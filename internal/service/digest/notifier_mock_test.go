package digest

import (
	"context"
	"sync"
)

var _ notifier = &notifierMock{}

type notifierMock struct {
	NotifyFunc func(ctx context.Context, recipientID int64, text string) error

	calls struct {
		Notify []struct {
			Ctx         context.Context
			RecipientID int64
			Text        string
		}
	}
	lockNotify sync.RWMutex
}

func (mock *notifierMock) Notify(ctx context.Context, recipientID int64, text string) error {
	if mock.NotifyFunc == nil {
		panic("notifierMock.NotifyFunc: method is nil but notifier.Notify was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		RecipientID int64
		Text        string
	}{
		Ctx:         ctx,
		RecipientID: recipientID,
		Text:        text,
	}
	mock.lockNotify.Lock()
	mock.calls.Notify = append(mock.calls.Notify, callInfo)
	mock.lockNotify.Unlock()
	return mock.NotifyFunc(ctx, recipientID, text)
}

func (mock *notifierMock) NotifyCalls() []struct {
	Ctx         context.Context
	RecipientID int64
	Text        string
} {
	var calls []struct {
		Ctx         context.Context
		RecipientID int64
		Text        string
	}
	mock.lockNotify.RLock()
	calls = mock.calls.Notify
	mock.lockNotify.RUnlock()
	return calls
}
