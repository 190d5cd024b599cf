package minio

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/lifecycle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/turtacn/KeyIP-Descriptors/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/KeyIP-Descriptors/pkg/errors"
)

type MockMinIOAPI struct {
	mock.Mock
}

func (m *MockMinIOAPI) ListBuckets(ctx context.Context) ([]minio.BucketInfo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]minio.BucketInfo), args.Error(1)
}

func (m *MockMinIOAPI) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	args := m.Called(ctx, bucketName)
	return args.Bool(0), args.Error(1)
}

func (m *MockMinIOAPI) MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error {
	args := m.Called(ctx, bucketName, opts)
	return args.Error(0)
}

func (m *MockMinIOAPI) SetBucketLifecycle(ctx context.Context, bucketName string, config *lifecycle.Configuration) error {
	args := m.Called(ctx, bucketName, config)
	return args.Error(0)
}

func (m *MockMinIOAPI) FPutObject(ctx context.Context, bucketName, objectName, filePath string, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	args := m.Called(ctx, bucketName, objectName, filePath, opts)
	return args.Get(0).(minio.UploadInfo), args.Error(1)
}

type ClientTestSuite struct {
	suite.Suite
	api    *MockMinIOAPI
	client *MinIOClient
	ctx    context.Context
}

func (s *ClientTestSuite) SetupTest() {
	s.api = new(MockMinIOAPI)
	cfg := &MinIOConfig{Bucket: "tables", Prefix: "runs/", ExpiryDays: 30}
	applyDefaults(cfg)
	s.client = newMinIOClient(s.api, cfg, logging.NewNopLogger())
	s.ctx = context.Background()
}

func (s *ClientTestSuite) TearDownTest() {
	s.api.AssertExpectations(s.T())
}

func TestClientTestSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

func (s *ClientTestSuite) TestApplyDefaults() {
	cfg := &MinIOConfig{}
	applyDefaults(cfg)
	s.Equal("us-east-1", cfg.Region)
	s.Equal("descriptor-tables", cfg.Bucket)
}

func (s *ClientTestSuite) TestEnsureBucket_Exists() {
	s.api.On("BucketExists", s.ctx, "tables").Return(true, nil).Once()
	s.NoError(s.client.EnsureBucket(s.ctx))
}

func (s *ClientTestSuite) TestEnsureBucket_Creates() {
	s.api.On("BucketExists", s.ctx, "tables").Return(false, nil).Once()
	s.api.On("MakeBucket", s.ctx, "tables", minio.MakeBucketOptions{Region: "us-east-1"}).Return(nil).Once()
	s.NoError(s.client.EnsureBucket(s.ctx))
}

func (s *ClientTestSuite) TestEnsureBucket_CreateFails() {
	s.api.On("BucketExists", s.ctx, "tables").Return(false, nil).Once()
	s.api.On("MakeBucket", s.ctx, "tables", mock.Anything).Return(stderrors.New("access denied")).Once()

	err := s.client.EnsureBucket(s.ctx)
	s.Require().Error(err)
	s.True(errors.IsCode(err, errors.ErrCodeStorageError))
}

func (s *ClientTestSuite) TestSetupLifecycle_RuleScopedToPrefix() {
	s.api.On("SetBucketLifecycle", s.ctx, "tables", mock.MatchedBy(func(c *lifecycle.Configuration) bool {
		return len(c.Rules) == 1 &&
			c.Rules[0].RuleFilter.Prefix == "runs/" &&
			c.Rules[0].Expiration.Days == lifecycle.ExpirationDays(30)
	})).Return(nil).Once()
	s.client.SetupLifecycle(s.ctx)
}

func (s *ClientTestSuite) TestSetupLifecycle_FailureIsNotFatal() {
	s.api.On("SetBucketLifecycle", s.ctx, "tables", mock.Anything).Return(stderrors.New("not implemented")).Once()
	s.NotPanics(func() { s.client.SetupLifecycle(s.ctx) })
}

func (s *ClientTestSuite) TestSetupLifecycle_DisabledWithoutExpiry() {
	s.client.config.ExpiryDays = 0
	s.client.SetupLifecycle(s.ctx)
	s.api.AssertNotCalled(s.T(), "SetBucketLifecycle", mock.Anything, mock.Anything, mock.Anything)
}

func (s *ClientTestSuite) TestHealthCheck() {
	s.api.On("BucketExists", s.ctx, "tables").Return(true, nil).Once()
	s.NoError(s.client.HealthCheck(s.ctx))

	s.api.On("BucketExists", s.ctx, "tables").Return(false, nil).Once()
	err := s.client.HealthCheck(s.ctx)
	s.True(errors.IsCode(err, errors.ErrCodeStorageError))
}

func (s *ClientTestSuite) TestHealthCheck_Closed() {
	s.NoError(s.client.Close())
	assert.ErrorIs(s.T(), s.client.HealthCheck(s.ctx), ErrMinIOClientClosed)
}

//Personal.AI order the ending
