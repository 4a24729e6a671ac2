package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dtroode/oauthstore/internal/model"
)

// UserStore is a mock implementation of model.UserStore.
type UserStore struct {
	mock.Mock
}

var _ model.UserStore = (*UserStore)(nil)

func (_m *UserStore) Create(ctx context.Context, user model.User) (model.User, error) {
	ret := _m.Called(ctx, user)
	return ret.Get(0).(model.User), ret.Error(1)
}

func (_m *UserStore) Get(ctx context.Context, id string) (*model.User, error) {
	ret := _m.Called(ctx, id)
	return userOrNil(ret.Get(0)), ret.Error(1)
}

func (_m *UserStore) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	ret := _m.Called(ctx, username)
	return userOrNil(ret.Get(0)), ret.Error(1)
}

func (_m *UserStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	ret := _m.Called(ctx, email)
	return userOrNil(ret.Get(0)), ret.Error(1)
}

func (_m *UserStore) List(ctx context.Context) ([]model.User, error) {
	ret := _m.Called(ctx)
	var users []model.User
	if v := ret.Get(0); v != nil {
		users = v.([]model.User)
	}
	return users, ret.Error(1)
}

func (_m *UserStore) Update(ctx context.Context, id string, update model.UserUpdate) error {
	ret := _m.Called(ctx, id, update)
	return ret.Error(0)
}

func (_m *UserStore) Delete(ctx context.Context, id string) error {
	ret := _m.Called(ctx, id)
	return ret.Error(0)
}

func userOrNil(v any) *model.User {
	if v == nil {
		return nil
	}
	return v.(*model.User)
}
