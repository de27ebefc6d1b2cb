package shiptracker

import (
	"context"
	"database/sql"
	"slices"
	"sync"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/vvatanabe/shiptracker/internal/constant"
)

// Store persists the ordered sequence of shipments of a ledger between calls.
// It is append-only: a Store never overwrites a shipment whose id is already stored.
type Store interface {
	// Load returns every stored shipment in creation order. An empty ledger has no shipments.
	Load(ctx context.Context) ([]Shipment, error)
	// Append stores new shipments at the end of the sequence.
	// The id of the first shipment must equal the number of shipments already stored.
	Append(ctx context.Context, shipments ...Shipment) error
}

// StoreOptions defines configuration options for the persistent stores.
//
// Note: MarshalMap, UnmarshalListOfMaps and BuildExpression are used for testing purposes only.
type StoreOptions struct {
	// LedgerName keeps several ledgers apart in the same table.
	LedgerName string

	// DynamoDB is a pointer to the DynamoDB client used by DynamoDBStore.
	DynamoDB *dynamodb.Client
	// TableName is the name of the DynamoDB table used by DynamoDBStore.
	TableName string
	// BaseEndpoint is the base endpoint URL for DynamoDB requests.
	BaseEndpoint string
	// RetryMaxAttempts is the maximum number of attempts for retrying failed DynamoDB operations.
	RetryMaxAttempts int

	// DB is an already opened database used by SQLiteStore instead of opening one from a path.
	DB *sql.DB

	MarshalMap          func(in interface{}) (map[string]types.AttributeValue, error)
	UnmarshalListOfMaps func(l []map[string]types.AttributeValue, out interface{}) error
	BuildExpression     func(b expression.Builder) (expression.Expression, error)
}

func defaultStoreOptions() *StoreOptions {
	return &StoreOptions{
		LedgerName:          constant.DefaultLedgerName,
		TableName:           constant.DefaultTableName,
		RetryMaxAttempts:    constant.DefaultRetryMaxAttempts,
		MarshalMap:          attributevalue.MarshalMap,
		UnmarshalListOfMaps: attributevalue.UnmarshalListOfMaps,
		BuildExpression: func(b expression.Builder) (expression.Expression, error) {
			return b.Build()
		},
	}
}

// WithLedgerName is an option function to set the name of the ledger kept by a store.
// By default, the ledger name is "default".
func WithLedgerName(ledgerName string) func(*StoreOptions) {
	return func(o *StoreOptions) {
		o.LedgerName = ledgerName
	}
}

// WithTableName is an option function to set the DynamoDB table name.
// By default, the table name is "shiptracker-table".
func WithTableName(tableName string) func(*StoreOptions) {
	return func(o *StoreOptions) {
		o.TableName = tableName
	}
}

// WithAWSDynamoDBClient is an option function to set a pre-configured DynamoDB client.
func WithAWSDynamoDBClient(client *dynamodb.Client) func(*StoreOptions) {
	return func(o *StoreOptions) {
		o.DynamoDB = client
	}
}

// WithAWSBaseEndpoint is an option function to set a custom base endpoint for DynamoDB,
// such as DynamoDB Local. It is ignored when the client is set with WithAWSDynamoDBClient.
func WithAWSBaseEndpoint(baseEndpoint string) func(*StoreOptions) {
	return func(o *StoreOptions) {
		o.BaseEndpoint = baseEndpoint
	}
}

// WithAWSRetryMaxAttempts is an option function to set the maximum number of retry attempts for DynamoDB calls.
// It is ignored when the client is set with WithAWSDynamoDBClient.
func WithAWSRetryMaxAttempts(retryMaxAttempts int) func(*StoreOptions) {
	return func(o *StoreOptions) {
		o.RetryMaxAttempts = retryMaxAttempts
	}
}

// WithSQLiteDB is an option function to set an already opened database for SQLiteStore.
func WithSQLiteDB(db *sql.DB) func(*StoreOptions) {
	return func(o *StoreOptions) {
		o.DB = db
	}
}

// MemoryStore keeps shipments in process memory. It is safe for concurrent use.
type MemoryStore struct {
	mu        sync.Mutex
	shipments []Shipment
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(_ context.Context) ([]Shipment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.shipments), nil
}

func (s *MemoryStore) Append(_ context.Context, shipments ...Shipment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := checkAppend(len(s.shipments), shipments); err != nil {
		return err
	}
	s.shipments = append(s.shipments, shipments...)
	return nil
}

func checkAppend(stored int, shipments []Shipment) error {
	for i, sh := range shipments {
		next := stored + i
		if sh.ID < next {
			return &IDDuplicatedError{ID: sh.ID}
		}
		if sh.ID > next {
			return &CorruptLedgerError{Position: next, ID: sh.ID}
		}
	}
	return nil
}
