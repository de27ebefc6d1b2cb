package cmd

import (
	"github.com/spf13/cobra"
	"github.com/vvatanabe/shiptracker/internal/constant"
)

var flgs = &Flags{}

type Flags struct {
	ConfigPath  string
	Ledger      string
	Backend     string
	TableName   string
	EndpointURL string
	SQLitePath  string
	ListenAddr  string
	LogLevel    string

	ID                  int
	ProductName         string
	ProductDescription  string
	LocationOrigin      string
	LocationDestination string
}

var flagMap = FlagMap{
	ConfigPath: FlagSet[string]{
		Name:  "config",
		Usage: "Path to a TOML config file.",
		Value: "",
	},
	Ledger: FlagSet[string]{
		Name:  "ledger",
		Usage: "The name of the ledger.",
		Value: constant.DefaultLedgerName,
	},
	Backend: FlagSet[string]{
		Name:  "backend",
		Usage: "Where the ledger is stored: sqlite, dynamodb or memory. A memory ledger lasts for one process only.",
		Value: constant.DefaultBackend,
	},
	TableName: FlagSet[string]{
		Name:  "table-name",
		Usage: "The name of the DynamoDB table to contain the ledger.",
		Value: constant.DefaultTableName,
	},
	EndpointURL: FlagSet[string]{
		Name:  "endpoint-url",
		Usage: "Override command's default DynamoDB URL with the given URL.",
		Value: "",
	},
	SQLitePath: FlagSet[string]{
		Name:  "sqlite-path",
		Usage: "Path to the SQLite database file.",
		Value: constant.DefaultSQLitePath,
	},
	ListenAddr: FlagSet[string]{
		Name:  "listen-addr",
		Usage: "Address the HTTP server listens on.",
		Value: constant.DefaultListenAddr,
	},
	LogLevel: FlagSet[string]{
		Name:  "log-level",
		Usage: "Log level: debug, info, warn, error or off.",
		Value: constant.DefaultLogLevel,
	},
	ID: FlagSet[int]{
		Name:  "id",
		Usage: "Shipment ID in the ledger.",
		Value: 0,
	},
	ProductName: FlagSet[string]{
		Name:  "product-name",
		Usage: "Name of the shipped product.",
		Value: "",
	},
	ProductDescription: FlagSet[string]{
		Name:  "product-description",
		Usage: "Description of the shipped product.",
		Value: "",
	},
	LocationOrigin: FlagSet[string]{
		Name:  "origin",
		Usage: "Location the shipment leaves from.",
		Value: "",
	},
	LocationDestination: FlagSet[string]{
		Name:  "destination",
		Usage: "Location the shipment goes to.",
		Value: "",
	},
}

type FlagSet[T any] struct {
	Name  string
	Usage string
	Value T
}

type FlagMap struct {
	ConfigPath          FlagSet[string]
	Ledger              FlagSet[string]
	Backend             FlagSet[string]
	TableName           FlagSet[string]
	EndpointURL         FlagSet[string]
	SQLitePath          FlagSet[string]
	ListenAddr          FlagSet[string]
	LogLevel            FlagSet[string]
	ID                  FlagSet[int]
	ProductName         FlagSet[string]
	ProductDescription  FlagSet[string]
	LocationOrigin      FlagSet[string]
	LocationDestination FlagSet[string]
}

func setDefaultFlags(c *cobra.Command, flgs *Flags) {
	c.Flags().StringVar(&flgs.ConfigPath, flagMap.ConfigPath.Name, flagMap.ConfigPath.Value, flagMap.ConfigPath.Usage)
	c.Flags().StringVar(&flgs.Ledger, flagMap.Ledger.Name, flagMap.Ledger.Value, flagMap.Ledger.Usage)
	c.Flags().StringVar(&flgs.Backend, flagMap.Backend.Name, flagMap.Backend.Value, flagMap.Backend.Usage)
	c.Flags().StringVar(&flgs.TableName, flagMap.TableName.Name, flagMap.TableName.Value, flagMap.TableName.Usage)
	c.Flags().StringVar(&flgs.EndpointURL, flagMap.EndpointURL.Name, flagMap.EndpointURL.Value, flagMap.EndpointURL.Usage)
	c.Flags().StringVar(&flgs.SQLitePath, flagMap.SQLitePath.Name, flagMap.SQLitePath.Value, flagMap.SQLitePath.Usage)
	c.Flags().StringVar(&flgs.LogLevel, flagMap.LogLevel.Name, flagMap.LogLevel.Value, flagMap.LogLevel.Usage)
}
