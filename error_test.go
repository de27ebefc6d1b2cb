package shiptracker_test

import (
	"errors"
	"testing"

	"github.com/vvatanabe/shiptracker"
)

func TestErrors(t *testing.T) {
	type testCase struct {
		err      error
		expected string
	}
	cause := errors.New("sample cause")
	tests := []testCase{
		{shiptracker.UnknownMethodError{Method: "ship"}, `Unknown method: "ship".`},
		{shiptracker.InvalidArgumentError{Method: "track_shipment", Cause: cause}, "Invalid arguments for track_shipment: sample cause."},
		{shiptracker.AlreadyInitializedError{Len: 2}, "Ledger is already initialized with 2 shipments."},
		{shiptracker.CorruptLedgerError{Position: 1, ID: 3}, "Shipment with id 3 was found at position 1."},
		{shiptracker.IDDuplicatedError{ID: 4}, "Provided ID 4 was duplicated."},
		{shiptracker.BuildingExpressionError{Cause: cause}, "Failed to build expression: sample cause."},
		{shiptracker.DynamoDBAPIError{Cause: cause}, "Failed DynamoDB API: sample cause."},
		{shiptracker.UnmarshalingAttributeError{Cause: cause}, "Failed to unmarshal: sample cause."},
		{shiptracker.MarshalingAttributeError{Cause: cause}, "Failed to marshal: sample cause."},
		{shiptracker.SQLiteError{Cause: cause}, "Failed SQLite operation: sample cause."},
	}
	for _, tc := range tests {
		if tc.err.Error() != tc.expected {
			t.Errorf("Unexpected error message. Expected: %v, got: %v", tc.expected, tc.err.Error())
		}
	}
}

func TestErrorsUnwrap(t *testing.T) {
	cause := errors.New("sample cause")
	tests := []error{
		&shiptracker.InvalidArgumentError{Cause: cause},
		&shiptracker.BuildingExpressionError{Cause: cause},
		&shiptracker.DynamoDBAPIError{Cause: cause},
		&shiptracker.UnmarshalingAttributeError{Cause: cause},
		&shiptracker.MarshalingAttributeError{Cause: cause},
		&shiptracker.SQLiteError{Cause: cause},
	}
	for _, err := range tests {
		if !errors.Is(err, cause) {
			t.Errorf("errors.Is(%T, cause) = false, want true", err)
		}
	}
}
