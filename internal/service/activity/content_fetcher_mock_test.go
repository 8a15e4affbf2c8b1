package activity

import (
	"context"
	"sync"

	"github.com/heartmarshall/family-planner/internal/provider"
)

var _ contentFetcher = &contentFetcherMock{}

type contentFetcherMock struct {
	FetchPageFunc func(ctx context.Context, rawURL string) (*provider.PageResult, error)

	calls struct {
		FetchPage []struct {
			Ctx    context.Context
			RawURL string
		}
	}
	lockFetchPage sync.RWMutex
}

func (mock *contentFetcherMock) FetchPage(ctx context.Context, rawURL string) (*provider.PageResult, error) {
	if mock.FetchPageFunc == nil {
		panic("contentFetcherMock.FetchPageFunc: method is nil but contentFetcher.FetchPage was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		RawURL string
	}{
		Ctx:    ctx,
		RawURL: rawURL,
	}
	mock.lockFetchPage.Lock()
	mock.calls.FetchPage = append(mock.calls.FetchPage, callInfo)
	mock.lockFetchPage.Unlock()
	return mock.FetchPageFunc(ctx, rawURL)
}

func (mock *contentFetcherMock) FetchPageCalls() []struct {
	Ctx    context.Context
	RawURL string
} {
	var calls []struct {
		Ctx    context.Context
		RawURL string
	}
	mock.lockFetchPage.RLock()
	calls = mock.calls.FetchPage
	mock.lockFetchPage.RUnlock()
	return calls
}
