package s3

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/hupe1980/kanjigo/blobstore"
)

// CurrentName is the name of the pointer blob kept in DynamoDB.
const CurrentName = "CURRENT"

// DDBCommitStore implements blobstore.BlobStore backed by S3 with DynamoDB
// for atomic CURRENT pointer commits. This enables safe concurrent writers.
//
// Blob content lives in S3. Writes of CURRENT become conditional puts of a
// new version row, so two writers racing on the same version cannot both win.
//
// Table schema:
//   - Partition key: base_uri (string) - the S3 prefix/path
//   - Sort key: version (number) - monotonically increasing version
//
// Create table with:
//
//	aws dynamodb create-table \
//	  --table-name kanjigo-commits \
//	  --attribute-definitions AttributeName=base_uri,AttributeType=S AttributeName=version,AttributeType=N \
//	  --key-schema AttributeName=base_uri,KeyType=HASH AttributeName=version,KeyType=RANGE \
//	  --billing-mode PAY_PER_REQUEST
type DDBCommitStore struct {
	s3Store   *Store
	ddbClient DDBClient
	tableName string
	baseURI   string
}

var _ blobstore.BlobStore = (*DDBCommitStore)(nil)

// DDBClient is the interface for DynamoDB operations.
type DDBClient interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// ErrConcurrentModification is returned when a concurrent write is detected.
var ErrConcurrentModification = errors.New("concurrent modification detected")

// NewDDBCommitStore creates a new S3+DynamoDB commit store.
// The baseURI should be "s3://bucket/prefix" format used as partition key.
func NewDDBCommitStore(s3Store *Store, ddbClient DDBClient, tableName, baseURI string) *DDBCommitStore {
	return &DDBCommitStore{
		s3Store:   s3Store,
		ddbClient: ddbClient,
		tableName: tableName,
		baseURI:   baseURI,
	}
}

// Open opens a blob for reading. CURRENT is served from DynamoDB.
func (s *DDBCommitStore) Open(ctx context.Context, name string) (blobstore.Blob, error) {
	if name == CurrentName {
		version, target, err := s.latestVersion(ctx)
		if err != nil {
			return nil, err
		}
		if version == 0 {
			return nil, blobstore.ErrNotFound
		}
		return blobstore.NewBytesBlob([]byte(target)), nil
	}
	return s.s3Store.Open(ctx, name)
}

// Put writes a blob. For CURRENT, uses a DynamoDB conditional write.
func (s *DDBCommitStore) Put(ctx context.Context, name string, data []byte) error {
	if name == CurrentName {
		return s.commitVersion(ctx, string(data))
	}
	return s.s3Store.Put(ctx, name, data)
}

// Delete deletes a blob. The commit log is append-only, so CURRENT is kept.
func (s *DDBCommitStore) Delete(ctx context.Context, name string) error {
	if name == CurrentName {
		return nil
	}
	return s.s3Store.Delete(ctx, name)
}

// List lists blobs with prefix.
func (s *DDBCommitStore) List(ctx context.Context, prefix string) ([]string, error) {
	return s.s3Store.List(ctx, prefix)
}

// Version returns the latest committed version, or 0 when nothing is committed.
func (s *DDBCommitStore) Version(ctx context.Context) (uint64, error) {
	v, _, err := s.latestVersion(ctx)
	return v, err
}

func (s *DDBCommitStore) latestVersion(ctx context.Context) (uint64, string, error) {
	resp, err := s.ddbClient.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.tableName),
		KeyConditionExpression: aws.String("base_uri = :uri"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uri": &types.AttributeValueMemberS{Value: s.baseURI},
		},
		ScanIndexForward: aws.Bool(false),
		Limit:            aws.Int32(1),
		ConsistentRead:   aws.Bool(true),
	})
	if err != nil {
		return 0, "", fmt.Errorf("failed to query DynamoDB: %w", err)
	}

	if len(resp.Items) == 0 {
		return 0, "", nil
	}

	item := resp.Items[0]
	versionAttr, ok := item["version"].(*types.AttributeValueMemberN)
	if !ok {
		return 0, "", errors.New("invalid version attribute in DynamoDB")
	}
	targetAttr, ok := item["target"].(*types.AttributeValueMemberS)
	if !ok {
		return 0, "", errors.New("invalid target attribute in DynamoDB")
	}

	version, err := strconv.ParseUint(versionAttr.Value, 10, 64)
	if err != nil {
		return 0, "", fmt.Errorf("failed to parse version: %w", err)
	}

	return version, targetAttr.Value, nil
}

func (s *DDBCommitStore) commitVersion(ctx context.Context, target string) error {
	current, _, err := s.latestVersion(ctx)
	if err != nil {
		return err
	}

	_, err = s.ddbClient.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item: map[string]types.AttributeValue{
			"base_uri": &types.AttributeValueMemberS{Value: s.baseURI},
			"version":  &types.AttributeValueMemberN{Value: strconv.FormatUint(current+1, 10)},
			"target":   &types.AttributeValueMemberS{Value: target},
		},
		ConditionExpression: aws.String("attribute_not_exists(version)"),
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return ErrConcurrentModification
		}
		return fmt.Errorf("failed to commit version to DynamoDB: %w", err)
	}

	return nil
}
