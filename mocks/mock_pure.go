// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pdiddy/pure-import/internal/pure"
	"github.com/pdiddy/pure-import/pkg/types"
)

// MockProvisioner is a mock implementation of reconcile.Provisioner.
type MockProvisioner struct {
	mock.Mock
}

func (m *MockProvisioner) CreateExternalPerson(ctx context.Context, firstName, lastName string) (string, error) {
	args := m.Called(ctx, firstName, lastName)
	return args.String(0), args.Error(1)
}

// MockJournalSearcher is a mock implementation of enrich.JournalSearcher.
type MockJournalSearcher struct {
	mock.Mock
}

func (m *MockJournalSearcher) SearchJournals(ctx context.Context, issn string) ([]pure.Journal, error) {
	args := m.Called(ctx, issn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]pure.Journal), args.Error(1)
}

// MockSubmitter is a mock implementation of pipeline.Submitter.
type MockSubmitter struct {
	mock.Mock
}

func (m *MockSubmitter) CreateResearchOutput(ctx context.Context, p *types.SubmissionPayload) (string, error) {
	args := m.Called(ctx, p)
	return args.String(0), args.Error(1)
}
