package secrets

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"
)

var _ Service = (*AWSSecretsManagerStore)(nil)

const DefaultAWSRegion = "us-east-1"

// SecretsManagerClientAPI is the subset of the Secrets Manager client the
// store uses. Tests substitute a fake.
type SecretsManagerClientAPI interface {
	CreateSecret(ctx context.Context, params *secretsmanager.CreateSecretInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.CreateSecretOutput, error)
	PutSecretValue(ctx context.Context, params *secretsmanager.PutSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.PutSecretValueOutput, error)
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
	DeleteSecret(ctx context.Context, params *secretsmanager.DeleteSecretInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.DeleteSecretOutput, error)
}

// AWSSecretsManagerStore keeps each entry as the secret named {namespace}/{key}.
// Values go into SecretBinary. Secrets Manager refuses an empty SecretBinary,
// so an empty value is stored as an empty SecretString instead.
type AWSSecretsManagerStore struct {
	client SecretsManagerClientAPI
}

type AWSOptions struct {
	Region string
	// Endpoint overrides the service endpoint, e.g. for LocalStack.
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
}

func NewAWSSecretsManagerStoreWithClient(client SecretsManagerClientAPI) *AWSSecretsManagerStore {
	return &AWSSecretsManagerStore{client: client}
}

func NewAWSSecretsManagerStore(ctx context.Context, opts AWSOptions) (*AWSSecretsManagerStore, error) {
	region := opts.Region
	if region == "" {
		region = DefaultAWSRegion
	}

	configOpts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if opts.AccessKeyID != "" && opts.SecretAccessKey != "" {
		configOpts = append(configOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, configOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var clientOpts []func(*secretsmanager.Options)
	if opts.Endpoint != "" {
		endpoint := opts.Endpoint
		clientOpts = append(clientOpts, func(o *secretsmanager.Options) {
			o.BaseEndpoint = &endpoint
		})
	}

	logger.Debugf("Using AWS Secrets Manager in %s", region)
	return NewAWSSecretsManagerStoreWithClient(secretsmanager.NewFromConfig(cfg, clientOpts...)), nil
}

func secretName(namespace, key string) string {
	return namespace + "/" + key
}

func secretValue(data []byte) ([]byte, *string) {
	if len(data) == 0 {
		return nil, aws.String("")
	}
	return data, nil
}

func (a *AWSSecretsManagerStore) Add(ctx context.Context, namespace, key string, data []byte) error {
	binary, str := secretValue(data)
	_, err := a.client.CreateSecret(ctx, &secretsmanager.CreateSecretInput{
		Name:         aws.String(secretName(namespace, key)),
		SecretBinary: binary,
		SecretString: str,
	})
	return translateAWSError(err)
}

func (a *AWSSecretsManagerStore) Modify(ctx context.Context, namespace, key string, data []byte) error {
	binary, str := secretValue(data)
	_, err := a.client.PutSecretValue(ctx, &secretsmanager.PutSecretValueInput{
		SecretId:     aws.String(secretName(namespace, key)),
		SecretBinary: binary,
		SecretString: str,
	})
	return translateAWSError(err)
}

func (a *AWSSecretsManagerStore) FindOne(ctx context.Context, namespace, key string) ([]byte, error) {
	out, err := a.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(secretName(namespace, key)),
	})
	if err != nil {
		return nil, translateAWSError(err)
	}
	if out.SecretBinary != nil {
		return out.SecretBinary, nil
	}
	if out.SecretString != nil {
		return []byte(*out.SecretString), nil
	}
	return nil, fmt.Errorf("secret %s has no value", secretName(namespace, key))
}

func (a *AWSSecretsManagerStore) Remove(ctx context.Context, namespace, key string) error {
	_, err := a.client.DeleteSecret(ctx, &secretsmanager.DeleteSecretInput{
		SecretId:                   aws.String(secretName(namespace, key)),
		ForceDeleteWithoutRecovery: aws.Bool(true),
	})
	return translateAWSError(err)
}

func translateAWSError(err error) error {
	if err == nil {
		return nil
	}
	var notFound *types.ResourceNotFoundException
	if errors.As(err, &notFound) {
		return ErrItemNotFound
	}
	var exists *types.ResourceExistsException
	if errors.As(err, &exists) {
		return ErrDuplicateItem
	}
	return err
}
