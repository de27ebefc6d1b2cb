package shiptracker

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/vvatanabe/shiptracker/internal/constant"
)

const (
	attributeLedger = "ledger"
	attributeID     = "id"

	conditionalCheckFailed = "ConditionalCheckFailed"
)

// DynamoDBStore keeps a ledger in a DynamoDB table whose partition key is "ledger" (S)
// and whose sort key is "id" (N). One item holds one shipment.
type DynamoDBStore struct {
	dynamoDB            *dynamodb.Client
	tableName           string
	ledgerName          string
	marshalMap          func(in interface{}) (map[string]types.AttributeValue, error)
	unmarshalListOfMaps func(l []map[string]types.AttributeValue, out interface{}) error
	buildExpression     func(b expression.Builder) (expression.Expression, error)
}

type shipmentItem struct {
	Ledger string `dynamodbav:"ledger"`
	Shipment
}

// NewDynamoDBStoreFromConfig creates a DynamoDB backed store using the provided AWS configuration.
func NewDynamoDBStoreFromConfig(cfg aws.Config, optFns ...func(*StoreOptions)) (*DynamoDBStore, error) {
	o := defaultStoreOptions()
	for _, opt := range optFns {
		opt(o)
	}
	s := &DynamoDBStore{
		dynamoDB:            o.DynamoDB,
		tableName:           o.TableName,
		ledgerName:          o.LedgerName,
		marshalMap:          o.MarshalMap,
		unmarshalListOfMaps: o.UnmarshalListOfMaps,
		buildExpression:     o.BuildExpression,
	}
	if s.dynamoDB != nil {
		return s, nil
	}
	s.dynamoDB = dynamodb.NewFromConfig(cfg, func(options *dynamodb.Options) {
		options.RetryMaxAttempts = o.RetryMaxAttempts
		if o.BaseEndpoint != "" {
			options.BaseEndpoint = aws.String(o.BaseEndpoint)
		}
	})
	return s, nil
}

// Load queries every item of the ledger in ascending id order, following pagination to the end.
func (s *DynamoDBStore) Load(ctx context.Context) ([]Shipment, error) {
	expr, err := s.ledgerKeyCondition()
	if err != nil {
		return nil, err
	}
	var (
		shipments         = make([]Shipment, 0)
		exclusiveStartKey map[string]types.AttributeValue
	)
	for {
		queryOutput, err := s.dynamoDB.Query(ctx, &dynamodb.QueryInput{
			TableName:                 aws.String(s.tableName),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			KeyConditionExpression:    expr.KeyCondition(),
			ScanIndexForward:          aws.Bool(true),
			ConsistentRead:            aws.Bool(true),
			Limit:                     aws.Int32(constant.DefaultQueryLimit),
			ExclusiveStartKey:         exclusiveStartKey,
		})
		if err != nil {
			return nil, handleDynamoDBError(err)
		}
		var items []shipmentItem
		if err := s.unmarshalListOfMaps(queryOutput.Items, &items); err != nil {
			return nil, &UnmarshalingAttributeError{Cause: err}
		}
		for _, item := range items {
			shipments = append(shipments, item.Shipment)
		}
		exclusiveStartKey = queryOutput.LastEvaluatedKey
		if exclusiveStartKey == nil {
			break
		}
	}
	return shipments, nil
}

// Append writes the shipments with TransactWriteItems, DefaultTransactWriteLimit items per transaction.
// A batch within that limit is stored entirely or not at all. Every put is conditioned on the id not
// existing yet, so an already stored shipment is never overwritten, and the first id must follow the
// last stored one.
func (s *DynamoDBStore) Append(ctx context.Context, shipments ...Shipment) error {
	if len(shipments) == 0 {
		return nil
	}
	expr, err := s.buildExpression(expression.NewBuilder().
		WithCondition(expression.AttributeNotExists(expression.Name(attributeID))))
	if err != nil {
		return &BuildingExpressionError{Cause: err}
	}
	writeItems := make([]types.TransactWriteItem, 0, len(shipments))
	for _, sh := range shipments {
		item, err := s.marshalMap(shipmentItem{
			Ledger:   s.ledgerName,
			Shipment: sh,
		})
		if err != nil {
			return &MarshalingAttributeError{Cause: err}
		}
		writeItems = append(writeItems, types.TransactWriteItem{
			Put: &types.Put{
				TableName:                 aws.String(s.tableName),
				Item:                      item,
				ConditionExpression:       expr.Condition(),
				ExpressionAttributeNames:  expr.Names(),
				ExpressionAttributeValues: expr.Values(),
			},
		})
	}

	next, err := s.nextID(ctx)
	if err != nil {
		return err
	}
	if err := checkAppend(next, shipments); err != nil {
		return err
	}

	for start := 0; start < len(writeItems); start += constant.DefaultTransactWriteLimit {
		end := min(start+constant.DefaultTransactWriteLimit, len(writeItems))
		_, err := s.dynamoDB.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
			TransactItems: writeItems[start:end],
		})
		if err != nil {
			return handleTransactWriteError(err, shipments[start:end])
		}
	}
	return nil
}

// nextID returns the id following the last stored shipment, read with a reverse query of one item.
func (s *DynamoDBStore) nextID(ctx context.Context) (int, error) {
	expr, err := s.ledgerKeyCondition()
	if err != nil {
		return 0, err
	}
	queryOutput, err := s.dynamoDB.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(s.tableName),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		KeyConditionExpression:    expr.KeyCondition(),
		ScanIndexForward:          aws.Bool(false),
		ConsistentRead:            aws.Bool(true),
		Limit:                     aws.Int32(1),
	})
	if err != nil {
		return 0, handleDynamoDBError(err)
	}
	var items []shipmentItem
	if err := s.unmarshalListOfMaps(queryOutput.Items, &items); err != nil {
		return 0, &UnmarshalingAttributeError{Cause: err}
	}
	if len(items) == 0 {
		return 0, nil
	}
	return items[0].ID + 1, nil
}

func (s *DynamoDBStore) ledgerKeyCondition() (expression.Expression, error) {
	expr, err := s.buildExpression(expression.NewBuilder().
		WithKeyCondition(expression.Key(attributeLedger).Equal(expression.Value(s.ledgerName))))
	if err != nil {
		return expression.Expression{}, &BuildingExpressionError{Cause: err}
	}
	return expr, nil
}

func handleDynamoDBError(err error) error {
	return &DynamoDBAPIError{Cause: err}
}

// handleTransactWriteError reports the first shipment whose put failed its condition as duplicated.
func handleTransactWriteError(err error, shipments []Shipment) error {
	var canceled *types.TransactionCanceledException
	if errors.As(err, &canceled) {
		for i, reason := range canceled.CancellationReasons {
			if aws.ToString(reason.Code) == conditionalCheckFailed && i < len(shipments) {
				return &IDDuplicatedError{ID: shipments[i].ID}
			}
		}
	}
	return &DynamoDBAPIError{Cause: err}
}
