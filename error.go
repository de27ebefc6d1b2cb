package shiptracker

import "fmt"

type UnknownMethodError struct {
	Method string
}

func (e UnknownMethodError) Error() string {
	return fmt.Sprintf("Unknown method: %q.", e.Method)
}

type InvalidArgumentError struct {
	Method string
	Cause  error
}

func (e InvalidArgumentError) Error() string {
	return fmt.Sprintf("Invalid arguments for %s: %v.", e.Method, e.Cause)
}

func (e InvalidArgumentError) Unwrap() error {
	return e.Cause
}

type AlreadyInitializedError struct {
	Len int
}

func (e AlreadyInitializedError) Error() string {
	return fmt.Sprintf("Ledger is already initialized with %d shipments.", e.Len)
}

type CorruptLedgerError struct {
	Position int
	ID       int
}

func (e CorruptLedgerError) Error() string {
	return fmt.Sprintf("Shipment with id %d was found at position %d.", e.ID, e.Position)
}

type IDDuplicatedError struct {
	ID int
}

func (e IDDuplicatedError) Error() string {
	return fmt.Sprintf("Provided ID %d was duplicated.", e.ID)
}

type BuildingExpressionError struct {
	Cause error
}

func (e BuildingExpressionError) Error() string {
	return fmt.Sprintf("Failed to build expression: %v.", e.Cause)
}

func (e BuildingExpressionError) Unwrap() error {
	return e.Cause
}

type DynamoDBAPIError struct {
	Cause error
}

func (e DynamoDBAPIError) Error() string {
	return fmt.Sprintf("Failed DynamoDB API: %v.", e.Cause)
}

func (e DynamoDBAPIError) Unwrap() error {
	return e.Cause
}

type UnmarshalingAttributeError struct {
	Cause error
}

func (e UnmarshalingAttributeError) Error() string {
	return fmt.Sprintf("Failed to unmarshal: %v.", e.Cause)
}

func (e UnmarshalingAttributeError) Unwrap() error {
	return e.Cause
}

type MarshalingAttributeError struct {
	Cause error
}

func (e MarshalingAttributeError) Error() string {
	return fmt.Sprintf("Failed to marshal: %v.", e.Cause)
}

func (e MarshalingAttributeError) Unwrap() error {
	return e.Cause
}

type SQLiteError struct {
	Cause error
}

func (e SQLiteError) Error() string {
	return fmt.Sprintf("Failed SQLite operation: %v.", e.Cause)
}

func (e SQLiteError) Unwrap() error {
	return e.Cause
}
