package constant

const (
	DefaultLedgerName       = "default"
	DefaultTableName        = "shiptracker-table"
	DefaultRetryMaxAttempts = 10
	DefaultSQLitePath       = "shiptracker.db"
	DefaultListenAddr       = ":8080"
	DefaultBackend          = "sqlite"
	DefaultLogLevel         = "info"
	DefaultLogMode          = "development"
	DefaultSubscriberBuffer = 64
	DefaultQueryLimit       = 250
)

// Items per TransactWriteItems call. Older DynamoDB Local releases accept no more than 25.
const DefaultTransactWriteLimit = 25
