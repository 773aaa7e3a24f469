package service

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/packhouse/backend/internal/model"
)

// MockAccountStore mocks the AccountStore interface
type MockAccountStore struct {
	mock.Mock
}

func (m *MockAccountStore) GetByEmail(ctx context.Context, email string) (model.Account, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(model.Account), args.Error(1)
}

func (m *MockAccountStore) GetByID(ctx context.Context, id uuid.UUID) (model.Account, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Account), args.Error(1)
}

func (m *MockAccountStore) Create(ctx context.Context, account model.Account) (model.Account, error) {
	args := m.Called(ctx, account)
	return args.Get(0).(model.Account), args.Error(1)
}

func (m *MockAccountStore) UpdateProfileFields(ctx context.Context, id uuid.UUID, displayName, photoName string) error {
	args := m.Called(ctx, id, displayName, photoName)
	return args.Error(0)
}

func (m *MockAccountStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockProfileStore mocks the ProfileStore interface
type MockProfileStore struct {
	mock.Mock
}

func (m *MockProfileStore) GetByUserID(ctx context.Context, userID uuid.UUID) (model.Profile, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(model.Profile), args.Error(1)
}

func (m *MockProfileStore) Create(ctx context.Context, profile model.Profile) (model.Profile, error) {
	args := m.Called(ctx, profile)
	return args.Get(0).(model.Profile), args.Error(1)
}

func (m *MockProfileStore) Update(ctx context.Context, profile model.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileStore) Delete(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockFileRecordStore mocks the FileRecordStore interface
type MockFileRecordStore struct {
	mock.Mock
}

func (m *MockFileRecordStore) Create(ctx context.Context, record model.FileRecord) (model.FileRecord, error) {
	args := m.Called(ctx, record)
	return args.Get(0).(model.FileRecord), args.Error(1)
}

func (m *MockFileRecordStore) GetByUserID(ctx context.Context, userID uuid.UUID) ([]model.FileRecord, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]model.FileRecord), args.Error(1)
}

func (m *MockFileRecordStore) Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// MockObjectStore mocks the ObjectStore interface
type MockObjectStore struct {
	mock.Mock
}

func (m *MockObjectStore) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	args := m.Called(ctx, key, reader, size, contentType)
	return args.Error(0)
}

func (m *MockObjectStore) PresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, key, expiry)
	return args.String(0), args.Error(1)
}

func (m *MockObjectStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockObjectStore) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

// MockTokenManager mocks the TokenManager interface
type MockTokenManager struct {
	mock.Mock
}

func (m *MockTokenManager) Generate(userID uuid.UUID) (string, error) {
	args := m.Called(userID)
	return args.String(0), args.Error(1)
}

func (m *MockTokenManager) Parse(token string) (model.TokenInfo, error) {
	args := m.Called(token)
	return args.Get(0).(model.TokenInfo), args.Error(1)
}
