// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/pdiddy/pure-import/pkg/types"
)

// MockDirectory is a mock implementation of reconcile.Directory.
type MockDirectory struct {
	mock.Mock
}

func (m *MockDirectory) Lookup(ctx context.Context, c types.Contributor, asOf time.Time) (*types.PersonRecord, error) {
	args := m.Called(ctx, c, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.PersonRecord), args.Error(1)
}

// MockResolver is a mock implementation of reconcile.Resolver.
type MockResolver struct {
	mock.Mock
}

func (m *MockResolver) Resolve(ctx context.Context, c types.Contributor, asOf time.Time) (*types.Identity, error) {
	args := m.Called(ctx, c, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Identity), args.Error(1)
}
