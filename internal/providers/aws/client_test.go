package aws

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"cloudaudit/internal/audit"
	"cloudaudit/internal/providers/aws/mocks"
	"cloudaudit/pkg/logging"
)

func TestVerifyIdentity(t *testing.T) {
	mockSTS := mocks.NewSTSClientAPI(t)
	mockSTS.On("GetCallerIdentity", mock.Anything, mock.Anything).Return(&sts.GetCallerIdentityOutput{
		Account: aws.String("123456789012"),
		Arn:     aws.String("arn:aws:iam::123456789012:user/auditor"),
	}, nil)

	clients := &ClientSet{STS: mockSTS, Region: "eu-west-1"}
	err := clients.VerifyIdentity(context.Background(), logging.NewMockLogger())

	require.NoError(t, err)
	assert.Equal(t, "123456789012", clients.AccountID)
}

func TestVerifyIdentity_InvalidCredential(t *testing.T) {
	mockSTS := mocks.NewSTSClientAPI(t)
	mockSTS.On("GetCallerIdentity", mock.Anything, mock.Anything).Return(nil, apiError("InvalidClientTokenId"))

	clients := &ClientSet{STS: mockSTS}
	err := clients.VerifyIdentity(context.Background(), logging.NewMockLogger())

	assert.ErrorIs(t, err, audit.ErrAuthentication)
	assert.Empty(t, clients.AccountID)
}

func TestNewClientSetFromConfig(t *testing.T) {
	clients := NewClientSetFromConfig(aws.Config{Region: "us-east-1"})

	assert.NotNil(t, clients.RDS)
	assert.NotNil(t, clients.EC2)
	assert.NotNil(t, clients.S3)
	assert.NotNil(t, clients.STS)
	assert.Equal(t, "us-east-1", clients.Region)
}

func TestProfileName(t *testing.T) {
	assert.Equal(t, "default", profileName(""))
	assert.Equal(t, "audit", profileName("audit"))
}
