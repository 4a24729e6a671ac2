package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dtroode/oauthstore/internal/model"
)

// ExpiredCleaner is a mock implementation of model.ExpiredCleaner.
type ExpiredCleaner struct {
	mock.Mock
}

var _ model.ExpiredCleaner = (*ExpiredCleaner)(nil)

func (_m *ExpiredCleaner) CleanupExpired(ctx context.Context) (int64, error) {
	ret := _m.Called(ctx)
	return ret.Get(0).(int64), ret.Error(1)
}
