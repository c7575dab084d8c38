package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"cloudaudit/internal/audit"
	auditMocks "cloudaudit/internal/audit/mocks"
	"cloudaudit/internal/audits"
	"cloudaudit/internal/report"
	reportMocks "cloudaudit/internal/report/mocks"
	"cloudaudit/pkg/logging"
)

// createMocks is a helper function to create mock instances for testing
func createMocks(t *testing.T, kind string) (*auditMocks.Source, *reportMocks.IExporter, *reportMocks.IPrinter) {
	sourceMock := auditMocks.NewSource(t)
	sourceMock.On("Kind").Return(kind).Maybe()
	exporterMock := reportMocks.NewIExporter(t)
	printerMock := reportMocks.NewIPrinter(t)
	return sourceMock, exporterMock, printerMock
}

func dbRecord(id string) audit.Record {
	return audit.Record{
		"DBInstanceIdentifier":             id,
		"Engine":                           "postgres",
		"DBInstanceStatus":                 "available",
		"BackupRetentionPeriod":            int32(7),
		"MultiAZ":                          true,
		"ReadReplicaDBInstanceIdentifiers": []string{},
		"DeletionProtection":               false,
		"PubliclyAccessible":               false,
		"StorageEncrypted":                 true,
		"IAMDatabaseAuthenticationEnabled": false,
		"AssociatedRoles":                  []string{},
		"VpcSecurityGroups":                []string{"sg-1"},
		"MonitoringInterval":               int32(0),
		"PerformanceInsightsEnabled":       false,
	}
}

// TestResolveConfig tests the configuration validation logic
func TestResolveConfig(t *testing.T) {
	tests := []struct {
		name      string
		config    Config
		sections  int
		format    report.OutputFormatType
		wantErr   bool
		selection bool
	}{
		{name: "defaults", config: Config{}, sections: 3, format: report.OutputFormatTypeCSV},
		{name: "json and one section", config: Config{Format: "json", Sections: []string{"security"}}, sections: 1, format: report.OutputFormatTypeJSON},
		{name: "unknown format", config: Config{Format: "xml"}, wantErr: true},
		{name: "unknown section", config: Config{Sections: []string{"logging"}}, wantErr: true, selection: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sections, format, err := tt.config.resolve(audits.RDS)
			if tt.wantErr {
				require.Error(t, err)
				var invalid *audit.InvalidSelectionError
				assert.Equal(t, tt.selection, errors.As(err, &invalid))
				assert.Equal(t, !tt.selection, errors.Is(err, ErrInvalidConfig))
				return
			}
			require.NoError(t, err)
			assert.Len(t, sections, tt.sections)
			assert.Equal(t, tt.format, format)
		})
	}
}

// Three instances, no section flags: every section, 14 columns, three rows.
func TestRun_AllSections(t *testing.T) {
	source, exporter, printer := createMocks(t, "RDS instance")
	source.On("DescribeAll", mock.Anything).Return([]audit.Record{dbRecord("db-1"), dbRecord("db-2"), dbRecord("db-3")}, nil)
	exporter.On("Export", mock.Anything, filepath.Join("out", "rds_audit_data.csv"), report.OutputFormatTypeCSV).Return(nil)
	printer.On("PrintSummary", mock.Anything, mock.MatchedBy(func(s report.Summary) bool {
		return s.Audit == "rds" && s.Rows == 3 && s.Account == "123456789012"
	})).Return(nil)

	service := NewService(Config{OutputDir: "out", Account: "123456789012"}, audits.RDS, source, exporter, printer, logging.NewMockLogger())
	result, err := service.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, result.Resources)
	assert.Equal(t, 3, result.Rows)
	assert.Equal(t, 14, result.Columns)
	assert.Equal(t, 0, result.Unavailable)
	assert.Equal(t, filepath.Join("out", "rds_audit_data.csv"), result.Destination)
	source.AssertNotCalled(t, "ListIDs", mock.Anything)
}

// Security only: identifying fields plus the five security columns.
func TestRun_SecuritySection(t *testing.T) {
	source, exporter, printer := createMocks(t, "RDS instance")
	source.On("DescribeAll", mock.Anything).Return([]audit.Record{dbRecord("db-1")}, nil)
	exporter.On("Export", mock.Anything, mock.Anything, report.OutputFormatTypeCSV).Return(nil)
	printer.On("PrintSummary", mock.Anything, mock.Anything).Return(nil)

	service := NewService(Config{Sections: []string{"security"}}, audits.RDS, source, exporter, printer, logging.NewMockLogger())
	result, err := service.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{
		"DBInstanceIdentifier", "Engine", "DBInstanceStatus",
		"PubliclyAccessible", "StorageEncrypted", "IAMDatabaseAuthenticationEnabled",
		"AssociatedRoles", "VpcSecurityGroups",
	}, result.Table.Header)
	assert.Equal(t, filepath.Join(DefaultOutputDir, "rds_audit_data.csv"), result.Destination)
}

// An unknown identifier aborts before anything is written.
func TestRun_UnknownIdentifier(t *testing.T) {
	source, exporter, printer := createMocks(t, "RDS instance")
	source.On("ListIDs", mock.Anything).Return([]string{"db-1"}, nil)

	service := NewService(Config{ResourceIDs: []string{"db-missing"}}, audits.RDS, source, exporter, printer, logging.NewMockLogger())
	result, err := service.Run(context.Background())

	assert.Nil(t, result)
	var notFound *audit.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "db-missing", notFound.ID)
	exporter.AssertNotCalled(t, "Export", mock.Anything, mock.Anything, mock.Anything)
	source.AssertNotCalled(t, "Describe", mock.Anything, mock.Anything)
}

// An unknown section fails before discovery.
func TestRun_InvalidSelection(t *testing.T) {
	source, exporter, printer := createMocks(t, "RDS instance")

	service := NewService(Config{Sections: []string{"logging"}}, audits.RDS, source, exporter, printer, logging.NewMockLogger())
	_, err := service.Run(context.Background())

	var invalid *audit.InvalidSelectionError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, []string{"logging"}, invalid.Unknown)
	source.AssertNotCalled(t, "DescribeAll", mock.Anything)
}

// A bucket without a public access block gets the sentinel; the others are still reported.
func TestRun_BucketWithoutPublicAccessBlock(t *testing.T) {
	source, exporter, printer := createMocks(t, "S3 bucket")
	source.On("DescribeAll", mock.Anything).Return([]audit.Record{
		{"Name": "open", "PolicyPublic": false, "ACLPublic": true, "ACLAuthenticatedUsers": false},
		{"Name": "assets", "PublicAccessBlock": true, "PolicyPublic": false, "ACLPublic": false,
			"ACLAuthenticatedUsers": false, "DefaultEncryption": "AES256"},
	}, nil)
	exporter.On("Export", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	printer.On("PrintSummary", mock.Anything, mock.Anything).Return(nil)

	service := NewService(Config{}, audits.S3, source, exporter, printer, logging.NewMockLogger())
	result, err := service.Run(context.Background())

	require.NoError(t, err)
	table := result.Table
	require.Len(t, table.Rows, 2)
	block := table.Column("PublicAccessBlock")
	assert.Equal(t, audit.Unavailable{Sentinel: audits.NoPublicAccessBlock}, table.Rows[0][block])
	assert.Equal(t, true, table.Rows[1][block])
	assert.Equal(t, audit.Unavailable{Sentinel: audits.NoDefaultEncryption}, table.Rows[0][table.Column("DefaultEncryption")])
	assert.Equal(t, 2, result.Unavailable)
	assert.Equal(t, filepath.Join(DefaultOutputDir, "s3_public_data.csv"), result.Destination)
}

// One VPC with two subnets yields two rows sharing the VPC columns.
func TestRun_VpcWithSubnets(t *testing.T) {
	source, exporter, printer := createMocks(t, "VPC")
	source.On("Describe", mock.Anything, []string{"vpc-1"}).Return([]audit.Record{{
		"VpcId": "vpc-1", "CidrBlock": "10.0.0.0/16", "IsDefault": false, "FlowLogStatus": "INACTIVE",
		"Subnets": []audit.Record{
			{"SubnetId": "subnet-a", "AvailabilityZone": "eu-west-1a", "MapPublicIpOnLaunch": true},
			{"SubnetId": "subnet-b", "AvailabilityZone": "eu-west-1b", "MapPublicIpOnLaunch": false},
		},
	}}, nil)
	source.On("ListIDs", mock.Anything).Return([]string{"vpc-1", "vpc-2"}, nil)
	exporter.On("Export", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	printer.On("PrintSummary", mock.Anything, mock.Anything).Return(nil)

	service := NewService(Config{ResourceIDs: []string{"vpc-1"}}, audits.VPC, source, exporter, printer, logging.NewMockLogger())
	result, err := service.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, result.Resources)
	require.Equal(t, 2, result.Rows)

	table := result.Table
	vpc := table.Column("VpcId")
	subnet := table.Column("SubnetId")
	assert.Equal(t, "vpc-1", table.Rows[0][vpc])
	assert.Equal(t, "vpc-1", table.Rows[1][vpc])
	assert.Equal(t, "subnet-a", table.Rows[0][subnet])
	assert.Equal(t, "subnet-b", table.Rows[1][subnet])
	assert.Equal(t, audit.Unavailable{Sentinel: audit.DefaultSentinel}, table.Rows[0][table.Column("LogDestination")])
}

// Without the subnets section a VPC stays one row.
func TestRun_VpcFlowLogsOnly(t *testing.T) {
	source, exporter, printer := createMocks(t, "VPC")
	source.On("DescribeAll", mock.Anything).Return([]audit.Record{{
		"VpcId": "vpc-1", "CidrBlock": "10.0.0.0/16", "IsDefault": false, "FlowLogStatus": "ACTIVE",
		"LogDestination": "arn:aws:s3:::flow-logs", "TrafficType": "ALL",
		"Subnets": []audit.Record{{"SubnetId": "subnet-a"}, {"SubnetId": "subnet-b"}},
	}}, nil)
	exporter.On("Export", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	printer.On("PrintSummary", mock.Anything, mock.Anything).Return(nil)

	service := NewService(Config{Sections: []string{"flowlogs"}}, audits.VPC, source, exporter, printer, logging.NewMockLogger())
	result, err := service.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, result.Rows)
	assert.Equal(t, -1, result.Table.Column("SubnetId"))
}

func TestRun_DiscoveryAuthorizationFailure(t *testing.T) {
	source, exporter, printer := createMocks(t, "RDS instance")
	source.On("DescribeAll", mock.Anything).Return(nil, errors.Join(audit.ErrAuthorization, errors.New("AccessDenied")))

	service := NewService(Config{}, audits.RDS, source, exporter, printer, logging.NewMockLogger())
	_, err := service.Run(context.Background())

	assert.ErrorIs(t, err, audit.ErrAuthorization)
	exporter.AssertNotCalled(t, "Export", mock.Anything, mock.Anything, mock.Anything)
}

func TestRun_ExportFailure(t *testing.T) {
	source, exporter, printer := createMocks(t, "RDS instance")
	source.On("DescribeAll", mock.Anything).Return([]audit.Record{dbRecord("db-1")}, nil)
	exporter.On("Export", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("disk full"))

	service := NewService(Config{}, audits.RDS, source, exporter, printer, logging.NewMockLogger())
	_, err := service.Run(context.Background())

	assert.ErrorContains(t, err, "disk full")
	printer.AssertNotCalled(t, "PrintSummary", mock.Anything, mock.Anything)
}

// Two runs over unchanged resources produce byte-identical files.
func TestRun_OutputIsDeterministic(t *testing.T) {
	dir := t.TempDir()
	records := []audit.Record{dbRecord("db-1"), {"DBInstanceIdentifier": "db-2", "Engine": "mysql", "DBInstanceStatus": "creating"}}

	run := func() []byte {
		source, _, _ := createMocks(t, "RDS instance")
		source.On("DescribeAll", mock.Anything).Return(records, nil)

		var out bytes.Buffer
		service := NewService(Config{OutputDir: dir}, audits.RDS, source, report.DefaultExporter{}, report.DefaultPrinter{}, logging.NewMockLogger())
		service.out = &out

		result, err := service.Run(context.Background())
		require.NoError(t, err)
		assert.Contains(t, out.String(), "Audit data exported to")

		data, err := os.ReadFile(result.Destination)
		require.NoError(t, err)
		return data
	}

	first := run()
	second := run()
	assert.Equal(t, first, second)
	assert.Contains(t, string(first), "db-2,mysql,creating,N/A")
}
