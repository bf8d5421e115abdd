package account

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

type MockStore struct {
	mock.Mock
}

func (_m *MockStore) Insert(ctx context.Context, acc *Account) error {
	ret := _m.Called(ctx, acc)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *Account) error); ok {
		r0 = rf(ctx, acc)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

func (_m *MockStore) FindPage(ctx context.Context, pageNo, size int) ([]*Account, int64, error) {
	ret := _m.Called(ctx, pageNo, size)

	var r0 []*Account
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*Account)
	}

	var r1 int64
	if v, ok := ret.Get(1).(int64); ok {
		r1 = v
	}

	return r0, r1, ret.Error(2)
}

func (_m *MockStore) FindPageByCustomer(ctx context.Context, customerID int64, pageNo, size int) ([]*Account, int64, error) {
	ret := _m.Called(ctx, customerID, pageNo, size)

	var r0 []*Account
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*Account)
	}

	var r1 int64
	if v, ok := ret.Get(1).(int64); ok {
		r1 = v
	}

	return r0, r1, ret.Error(2)
}

func (_m *MockStore) GetByBusinessID(ctx context.Context, bid string) (*Account, error) {
	ret := _m.Called(ctx, bid)

	var r0 *Account
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*Account)
	}

	return r0, ret.Error(1)
}

func (_m *MockStore) SoftDelete(ctx context.Context, id int64) error {
	ret := _m.Called(ctx, id)
	return ret.Error(0)
}

func (_m *MockStore) PurgeDeletedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	ret := _m.Called(ctx, cutoff)

	var r0 int64
	if v, ok := ret.Get(0).(int64); ok {
		r0 = v
	}

	return r0, ret.Error(1)
}
