package secrets

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSecretsManager struct {
	secrets map[string][]byte
	strings map[string]string
	err     error
}

func newFakeSecretsManager() *fakeSecretsManager {
	return &fakeSecretsManager{secrets: map[string][]byte{}, strings: map[string]string{}}
}

func (f *fakeSecretsManager) exists(name string) bool {
	_, bin := f.secrets[name]
	_, str := f.strings[name]
	return bin || str
}

// store mirrors the service's validation: exactly one of the two value
// fields, and SecretBinary must not be empty.
func (f *fakeSecretsManager) store(name string, binary []byte, str *string) error {
	switch {
	case str != nil && binary == nil:
		delete(f.secrets, name)
		f.strings[name] = *str
	case str == nil && len(binary) > 0:
		delete(f.strings, name)
		f.secrets[name] = binary
	default:
		return &types.InvalidParameterException{Message: aws.String("invalid secret value")}
	}
	return nil
}

func (f *fakeSecretsManager) CreateSecret(_ context.Context, in *secretsmanager.CreateSecretInput, _ ...func(*secretsmanager.Options)) (*secretsmanager.CreateSecretOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	name := aws.ToString(in.Name)
	if f.exists(name) {
		return nil, &types.ResourceExistsException{Message: aws.String("exists")}
	}
	if err := f.store(name, in.SecretBinary, in.SecretString); err != nil {
		return nil, err
	}
	return &secretsmanager.CreateSecretOutput{Name: in.Name}, nil
}

func (f *fakeSecretsManager) PutSecretValue(_ context.Context, in *secretsmanager.PutSecretValueInput, _ ...func(*secretsmanager.Options)) (*secretsmanager.PutSecretValueOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	name := aws.ToString(in.SecretId)
	if !f.exists(name) {
		return nil, &types.ResourceNotFoundException{Message: aws.String("missing")}
	}
	if err := f.store(name, in.SecretBinary, in.SecretString); err != nil {
		return nil, err
	}
	return &secretsmanager.PutSecretValueOutput{Name: in.SecretId}, nil
}

func (f *fakeSecretsManager) GetSecretValue(_ context.Context, in *secretsmanager.GetSecretValueInput, _ ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	name := aws.ToString(in.SecretId)
	if s, ok := f.strings[name]; ok {
		return &secretsmanager.GetSecretValueOutput{Name: in.SecretId, SecretString: aws.String(s)}, nil
	}
	b, ok := f.secrets[name]
	if !ok {
		return nil, &types.ResourceNotFoundException{Message: aws.String("missing")}
	}
	return &secretsmanager.GetSecretValueOutput{Name: in.SecretId, SecretBinary: b}, nil
}

func (f *fakeSecretsManager) DeleteSecret(_ context.Context, in *secretsmanager.DeleteSecretInput, _ ...func(*secretsmanager.Options)) (*secretsmanager.DeleteSecretOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	name := aws.ToString(in.SecretId)
	if !f.exists(name) {
		return nil, &types.ResourceNotFoundException{Message: aws.String("missing")}
	}
	if !aws.ToBool(in.ForceDeleteWithoutRecovery) {
		return nil, errors.New("expected forced deletion")
	}
	delete(f.secrets, name)
	delete(f.strings, name)
	return &secretsmanager.DeleteSecretOutput{Name: in.SecretId}, nil
}

func TestAWSSecretsManagerStore(t *testing.T) {
	ctx := context.Background()
	fake := newFakeSecretsManager()
	s := NewAWSSecretsManagerStoreWithClient(fake)

	require.NoError(t, s.Add(ctx, "com.example", "apiToken", []byte("hunter2")))
	assert.Equal(t, []byte("hunter2"), fake.secrets["com.example/apiToken"])
	assert.ErrorIs(t, s.Add(ctx, "com.example", "apiToken", []byte("x")), ErrDuplicateItem)

	require.NoError(t, s.Modify(ctx, "com.example", "apiToken", []byte("hunter3")))
	val, err := s.FindOne(ctx, "com.example", "apiToken")
	require.NoError(t, err)
	assert.Equal(t, "hunter3", string(val))

	require.NoError(t, s.Remove(ctx, "com.example", "apiToken"))
	_, err = s.FindOne(ctx, "com.example", "apiToken")
	assert.ErrorIs(t, err, ErrItemNotFound)
	assert.ErrorIs(t, s.Remove(ctx, "com.example", "apiToken"), ErrItemNotFound)
	assert.ErrorIs(t, s.Modify(ctx, "com.example", "apiToken", []byte("x")), ErrItemNotFound)
}

func TestAWSSecretsManagerStore_SecretString(t *testing.T) {
	fake := newFakeSecretsManager()
	fake.strings["ns/legacy"] = "plain"
	s := NewAWSSecretsManagerStoreWithClient(fake)

	val, err := s.FindOne(context.Background(), "ns", "legacy")
	require.NoError(t, err)
	assert.Equal(t, "plain", string(val))
}

func TestAWSSecretsManagerStore_EmptyValue(t *testing.T) {
	ctx := context.Background()
	fake := newFakeSecretsManager()
	s := NewAWSSecretsManagerStoreWithClient(fake)

	require.NoError(t, s.Add(ctx, "ns", "empty", []byte{}))
	assert.Contains(t, fake.strings, "ns/empty")
	val, err := s.FindOne(ctx, "ns", "empty")
	require.NoError(t, err)
	assert.NotNil(t, val)
	assert.Empty(t, val)

	require.NoError(t, s.Modify(ctx, "ns", "empty", []byte("filled")))
	val, err = s.FindOne(ctx, "ns", "empty")
	require.NoError(t, err)
	assert.Equal(t, "filled", string(val))

	require.NoError(t, s.Modify(ctx, "ns", "empty", nil))
	val, err = s.FindOne(ctx, "ns", "empty")
	require.NoError(t, err)
	assert.Empty(t, val)
}

func TestAWSSecretsManagerStore_OtherErrors(t *testing.T) {
	fake := newFakeSecretsManager()
	fake.err = &types.InternalServiceError{Message: aws.String("boom")}
	s := NewAWSSecretsManagerStoreWithClient(fake)

	_, err := s.FindOne(context.Background(), "ns", "key")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrItemNotFound)

	var internal *types.InternalServiceError
	assert.ErrorAs(t, err, &internal)
}
