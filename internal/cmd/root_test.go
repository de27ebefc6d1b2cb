package cmd_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"
	"github.com/vvatanabe/shiptracker"
	"github.com/vvatanabe/shiptracker/internal/cmd"
	"github.com/vvatanabe/shiptracker/internal/config"
	"github.com/vvatanabe/shiptracker/internal/mock"
	"github.com/vvatanabe/shiptracker/internal/test"
	"go.uber.org/zap"
)

func newHostFunc(store shiptracker.Store) cmd.CreateHostFunc {
	return func(ctx context.Context, cfg config.Config, logger *zap.Logger, publisher shiptracker.Publisher) (*shiptracker.Host, func(), error) {
		optFns := []func(*shiptracker.HostOptions){shiptracker.WithHostLogger(zap.NewNop())}
		if publisher != nil {
			optFns = append(optFns, shiptracker.WithPublisher(publisher))
		}
		return shiptracker.NewHost(store, optFns...), func() {}, nil
	}
}

func failingHostFunc(ctx context.Context, cfg config.Config, logger *zap.Logger, publisher shiptracker.Publisher) (*shiptracker.Host, func(), error) {
	return nil, nil, test.ErrorTest
}

func failingStore() shiptracker.Store {
	return mock.Store{
		LoadFunc: func(ctx context.Context) ([]shiptracker.Shipment, error) {
			return nil, test.ErrorTest
		},
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "shiptracker.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestRunRootCommand(t *testing.T) {
	t.Parallel()
	type testCase struct {
		name       string
		createHost cmd.CreateHostFunc
		command    io.Reader
		wantErr    bool
		wantOut    []string
	}
	tests := []testCase{
		{
			name:       "should return error when create host failed",
			createHost: failingHostFunc,
			command:    strings.NewReader("quit\n"),
			wantErr:    true,
		},
		{
			name:       "should return nil when send quit command",
			createHost: newHostFunc(shiptracker.NewMemoryStore()),
			command:    strings.NewReader("quit\n"),
			wantOut:    []string{"Welcome to Shiptracker CLI!", "Backend: sqlite", "SQLitePath: shiptracker.db"},
		},
		{
			name:       "should return nil when send whitespace",
			createHost: newHostFunc(shiptracker.NewMemoryStore()),
			command:    strings.NewReader(" \n"),
		},
		{
			name:       "should return nil when send empty string",
			createHost: newHostFunc(shiptracker.NewMemoryStore()),
			command:    strings.NewReader("\n"),
		},
		{
			name:       "should keep quoted values and report unclosed quotes",
			createHost: newHostFunc(shiptracker.NewMemoryStore()),
			command:    strings.NewReader("create \"Blue Widget\" \"\" \"Port of Kobe\" Warehouse\nls\ncreate \"Red\n"),
			wantOut: []string{
				`"product_name": "Blue Widget"`,
				`"product_description": ""`,
				"* ID: 0, product: Blue Widget, status: Created",
				"ERROR: EOF found when expecting closing quote",
			},
		},
		{
			name:       "should return nil when send unknown command",
			createHost: newHostFunc(shiptracker.NewMemoryStore()),
			command:    strings.NewReader("foo\n"),
			wantOut:    []string{"unrecognized command!"},
		},
		{
			name:       "should print shipments and notifications of a session",
			createHost: newHostFunc(shiptracker.NewMemoryStore()),
			command:    strings.NewReader("init\ncreate Widget Gadget Factory Warehouse\ntrack 0\nls\nq\n"),
			wantOut: []string{
				"Ledger is initialized!",
				"Shipment [0] is created:",
				"Notification [1] ShipmentCreated:",
				"Notification [2] ShipmentTracked:",
				`"current_status": "Created"`,
				"* ID: 0, product: Widget, status: Created",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var out bytes.Buffer
			f := cmd.CommandFactory{
				CreateHost: tt.createHost,
				Stdin:      tt.command,
				Stdout:     &out,
			}
			err := f.CreateRootCommand(&cmd.Flags{}).RunE(&cobra.Command{}, []string{})
			if tt.wantErr {
				if err == nil {
					t.Error("RunE() error should not nil")
				}
				return
			}
			if err != nil {
				t.Errorf("RunE() error = %v", err)
			}
			for _, want := range tt.wantOut {
				if !strings.Contains(out.String(), want) {
					t.Errorf("RunE() output = %q, want to contain %q", out.String(), want)
				}
			}
		})
	}
}

func testRunAllCommand(t *testing.T, f cmd.CommandFactory, wantErr error) {
	type testCase struct {
		name string
		cmd  *cobra.Command
	}
	tests := []testCase{
		{
			name: "init command",
			cmd:  f.CreateInitCommand(&cmd.Flags{}),
		},
		{
			name: "create command",
			cmd:  f.CreateCreateCommand(&cmd.Flags{}),
		},
		{
			name: "track command",
			cmd:  f.CreateTrackCommand(&cmd.Flags{}),
		},
		{
			name: "ls command",
			cmd:  f.CreateLSCommand(&cmd.Flags{}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmd.RunE(&cobra.Command{}, []string{})
			if !errors.Is(err, wantErr) {
				t.Errorf("RunE() error = %v, want %v", err, wantErr)
			}
		})
	}
}

func TestRunAllCommandCreateHostFailed(t *testing.T) {
	t.Parallel()
	testRunAllCommand(t, cmd.CommandFactory{
		CreateHost: failingHostFunc,
		Stdout:     io.Discard,
	}, test.ErrorTest)
}

func TestRunAllCommandStoreFailed(t *testing.T) {
	t.Parallel()
	testRunAllCommand(t, cmd.CommandFactory{
		CreateHost: newHostFunc(failingStore()),
		Stdout:     io.Discard,
	}, test.ErrorTest)
}

func TestRunAllCommandSucceeded(t *testing.T) {
	t.Parallel()
	testRunAllCommand(t, cmd.CommandFactory{
		CreateHost: newHostFunc(shiptracker.NewMemoryStore()),
		Stdout:     io.Discard,
	}, nil)
}

func TestCreateTrackAndListShipments(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	f := cmd.CommandFactory{
		CreateHost: newHostFunc(shiptracker.NewMemoryStore()),
		Stdout:     &out,
	}
	for i := 0; i < 2; i++ {
		in := test.NewCreateShipmentInput(i)
		err := f.CreateCreateCommand(&cmd.Flags{
			ProductName:         in.ProductName,
			ProductDescription:  in.ProductDescription,
			LocationOrigin:      in.LocationOrigin,
			LocationDestination: in.LocationDestination,
		}).RunE(&cobra.Command{}, []string{})
		if err != nil {
			t.Fatalf("create RunE() error = %v", err)
		}
	}
	if !strings.Contains(out.String(), "Shipment [1] is created:") {
		t.Errorf("create output = %q", out.String())
	}

	out.Reset()
	if err := f.CreateTrackCommand(&cmd.Flags{ID: 1}).RunE(&cobra.Command{}, []string{}); err != nil {
		t.Fatalf("track RunE() error = %v", err)
	}
	if !strings.Contains(out.String(), `"product_name": "Product-1"`) {
		t.Errorf("track output = %q", out.String())
	}

	out.Reset()
	if err := f.CreateTrackCommand(&cmd.Flags{ID: 5}).RunE(&cobra.Command{}, []string{}); err != nil {
		t.Fatalf("track RunE() error = %v", err)
	}
	if got, want := out.String(), "ERROR: Shipment [5] not found!\n"; got != want {
		t.Errorf("track output = %q, want %q", got, want)
	}

	out.Reset()
	if err := f.CreateLSCommand(&cmd.Flags{}).RunE(&cobra.Command{}, []string{}); err != nil {
		t.Fatalf("ls RunE() error = %v", err)
	}
	var got cmd.LSResult
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("Unmarshal() error = %v, output = %q", err, out.String())
	}
	want := cmd.LSResult{Shipments: test.GenerateShipments(2)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ls output mismatch (-want +got):\n%s", diff)
	}

	err := f.CreateInitCommand(&cmd.Flags{}).RunE(&cobra.Command{}, []string{})
	var initErr *shiptracker.AlreadyInitializedError
	if !errors.As(err, &initErr) {
		t.Errorf("init RunE() error = %v, want AlreadyInitializedError", err)
	}
}

func TestResolveConfig(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, "ledger = \"from-file\"\nbackend = \"memory\"\nlog_level = \"off\"\n")
	tests := []struct {
		name    string
		args    []string
		config  string
		want    string
		wantErr bool
	}{
		{
			name:   "file value",
			config: path,
			want:   "from-file",
		},
		{
			name:   "flag overrides file",
			args:   []string{"--ledger", "from-flag"},
			config: path,
			want:   "from-flag",
		},
		{
			name: "default without file",
			want: "default",
		},
		{
			name:    "unknown backend flag",
			args:    []string{"--backend", "redis"},
			wantErr: true,
		},
		{
			name:    "unknown key in file",
			config:  writeConfig(t, "ledgers = \"x\"\n"),
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var got config.Config
			f := cmd.CommandFactory{
				CreateHost: func(ctx context.Context, cfg config.Config, logger *zap.Logger, publisher shiptracker.Publisher) (*shiptracker.Host, func(), error) {
					got = cfg
					return shiptracker.NewHost(shiptracker.NewMemoryStore()), nil, nil
				},
				Stdout: io.Discard,
			}
			flgs := &cmd.Flags{ConfigPath: tt.config}
			c := f.CreateLSCommand(flgs)
			c.Flags().StringVar(&flgs.Ledger, "ledger", "", "")
			c.Flags().StringVar(&flgs.Backend, "backend", "", "")
			if err := c.ParseFlags(tt.args); err != nil {
				t.Fatalf("ParseFlags() error = %v", err)
			}
			err := c.RunE(c, []string{})
			if (err != nil) != tt.wantErr {
				t.Fatalf("RunE() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got.Ledger != tt.want {
				t.Errorf("Ledger = %q, want %q", got.Ledger, tt.want)
			}
		})
	}
}

func TestServeCommandShouldReturnError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		createHost cmd.CreateHostFunc
		config     string
	}{
		{
			name:       "create host failed",
			createHost: failingHostFunc,
		},
		{
			name:       "listen failed",
			createHost: newHostFunc(shiptracker.NewMemoryStore()),
			config:     writeConfig(t, "listen_addr = \"127.0.0.1:99999\"\nlog_level = \"off\"\n"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := cmd.CommandFactory{
				CreateHost: tt.createHost,
				Stdout:     io.Discard,
			}
			err := f.CreateServeCommand(&cmd.Flags{ConfigPath: tt.config}).RunE(&cobra.Command{}, []string{})
			if err == nil {
				t.Error("RunE() error should not nil")
			}
		})
	}
}

func TestParseInput(t *testing.T) {
	t.Parallel()
	type args struct {
		input string
	}
	tests := []struct {
		name        string
		args        args
		wantCommand string
		wantParams  []string
		wantErr     bool
	}{
		{
			name: "empty input",
			args: args{
				input: "",
			},
			wantCommand: "",
			wantParams:  nil,
		},
		{
			name: "only spaces",
			args: args{
				input: "    ",
			},
			wantCommand: "",
			wantParams:  nil,
		},
		{
			name: "command without params",
			args: args{
				input: "LS",
			},
			wantCommand: "ls",
			wantParams:  nil,
		},
		{
			name: "command with params",
			args: args{
				input: "  create Widget  Gadget Factory Warehouse ",
			},
			wantCommand: "create",
			wantParams:  []string{"Widget", "Gadget", "Factory", "Warehouse"},
		},
		{
			name: "quoted params with spaces and empty values",
			args: args{
				input: `create "Blue Widget" "" 'Port of Kobe' Warehouse`,
			},
			wantCommand: "create",
			wantParams:  []string{"Blue Widget", "", "Port of Kobe", "Warehouse"},
		},
		{
			name: "unclosed quote",
			args: args{
				input: `create "Blue Widget`,
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			gotCommand, gotParams, err := cmd.ParseInput(tt.args.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseInput() error = %v, wantErr %v", err, tt.wantErr)
			}
			if gotCommand != tt.wantCommand {
				t.Errorf("ParseInput() gotCommand = %v, want %v", gotCommand, tt.wantCommand)
			}
			if !reflect.DeepEqual(gotParams, tt.wantParams) {
				t.Errorf("ParseInput() gotParams = %v, want %v", gotParams, tt.wantParams)
			}
		})
	}
}
