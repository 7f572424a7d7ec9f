// Package mocks prowl 패키지의 테스트용 Mock 구현체를 제공합니다.
package mocks

import (
	"context"

	"github.com/darkkaiser/go-prowl/pkg/prowl"
	"github.com/stretchr/testify/mock"
)

var _ prowl.Sender = (*MockSender)(nil)

// MockSender prowl.Sender 인터페이스의 testify/mock 구현체입니다.
//
//	sender := mocks.NewMockSender()
//	sender.On("Add", mock.Anything, mock.Anything).Return(&prowl.Quota{Remaining: 999}, nil)
type MockSender struct {
	mock.Mock
}

// NewMockSender 새로운 MockSender 인스턴스를 생성합니다.
func NewMockSender() *MockSender {
	return &MockSender{}
}

func (m *MockSender) Add(ctx context.Context, n *prowl.Notification) (*prowl.Quota, error) {
	args := m.Called(ctx, n)

	var q *prowl.Quota
	if v := args.Get(0); v != nil {
		q = v.(*prowl.Quota)
	}
	return q, args.Error(1)
}
