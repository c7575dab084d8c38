package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	"github.com/aws/aws-sdk-go-v2/service/rds/types"

	"cloudaudit/internal/audit"
	"cloudaudit/pkg/logging"
)

// DatabaseSource lists and describes RDS DB instances
type DatabaseSource struct {
	client RDSClientAPI
	logger logging.Logger
}

// NewDatabaseSource creates a DatabaseSource with a provided client
func NewDatabaseSource(client RDSClientAPI, logger logging.Logger) *DatabaseSource {
	return &DatabaseSource{
		client: client,
		logger: logger,
	}
}

// Kind implements audit.Source
func (s *DatabaseSource) Kind() string {
	return "RDS instance"
}

// ListIDs returns every DB instance identifier in the region
func (s *DatabaseSource) ListIDs(ctx context.Context) ([]string, error) {
	instances, err := s.describe(ctx, nil)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(instances))
	for _, instance := range instances {
		ids = append(ids, aws.ToString(instance.DBInstanceIdentifier))
	}
	return ids, nil
}

// DescribeAll returns a record for every DB instance in the region
func (s *DatabaseSource) DescribeAll(ctx context.Context) ([]audit.Record, error) {
	instances, err := s.describe(ctx, nil)
	if err != nil {
		return nil, err
	}
	return convertDBInstances(instances), nil
}

// Describe returns records for the given DB instance identifiers, in order
func (s *DatabaseSource) Describe(ctx context.Context, ids []string) ([]audit.Record, error) {
	instances, err := s.describe(ctx, ids)
	if err != nil {
		return nil, err
	}
	return orderByID(s.Kind(), "DBInstanceIdentifier", convertDBInstances(instances), ids)
}

func (s *DatabaseSource) describe(ctx context.Context, ids []string) ([]types.DBInstance, error) {
	input := &rds.DescribeDBInstancesInput{}
	if len(ids) > 0 {
		input.Filters = []types.Filter{{
			Name:   aws.String("db-instance-id"),
			Values: ids,
		}}
	}

	resp, err := s.client.DescribeDBInstances(ctx, input)
	if err != nil {
		return nil, ClassifyAWSError(err, RDSResourceType, "")
	}

	s.logger.Debug("DescribeDBInstances returned %d instance(s)", len(resp.DBInstances))
	return resp.DBInstances, nil
}

func convertDBInstances(instances []types.DBInstance) []audit.Record {
	records := make([]audit.Record, 0, len(instances))
	for _, instance := range instances {
		records = append(records, convertDBInstance(instance))
	}
	return records
}

// convertDBInstance maps one DB instance to its audit record
func convertDBInstance(instance types.DBInstance) audit.Record {
	record := audit.Record{}

	setString(record, "DBInstanceIdentifier", instance.DBInstanceIdentifier)
	setString(record, "Engine", instance.Engine)
	setString(record, "DBInstanceStatus", instance.DBInstanceStatus)

	setInt32(record, "BackupRetentionPeriod", instance.BackupRetentionPeriod)
	setBool(record, "MultiAZ", instance.MultiAZ)
	setBool(record, "DeletionProtection", instance.DeletionProtection)
	record["ReadReplicaDBInstanceIdentifiers"] = nonNil(instance.ReadReplicaDBInstanceIdentifiers)

	setBool(record, "PubliclyAccessible", instance.PubliclyAccessible)
	setBool(record, "StorageEncrypted", instance.StorageEncrypted)
	setBool(record, "IAMDatabaseAuthenticationEnabled", instance.IAMDatabaseAuthenticationEnabled)

	roles := make([]string, 0, len(instance.AssociatedRoles))
	for _, role := range instance.AssociatedRoles {
		roles = append(roles, aws.ToString(role.RoleArn))
	}
	record["AssociatedRoles"] = roles

	groups := make([]string, 0, len(instance.VpcSecurityGroups))
	for _, sg := range instance.VpcSecurityGroups {
		groups = append(groups, securityGroupMembership(sg))
	}
	record["VpcSecurityGroups"] = groups

	setInt32(record, "MonitoringInterval", instance.MonitoringInterval)
	setBool(record, "PerformanceInsightsEnabled", instance.PerformanceInsightsEnabled)

	return record
}

// securityGroupMembership renders a group as "id:status", or just the id when
// RDS reports no status.
func securityGroupMembership(sg types.VpcSecurityGroupMembership) string {
	id := aws.ToString(sg.VpcSecurityGroupId)
	if sg.Status == nil {
		return id
	}
	return id + ":" + aws.ToString(sg.Status)
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
