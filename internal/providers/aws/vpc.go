package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"cloudaudit/internal/audit"
	"cloudaudit/pkg/logging"
)

// FlowLogInactive is reported for a VPC without any flow log.
const FlowLogInactive = "INACTIVE"

// SubnetsKey holds the subnet sub-records of a VPC record.
const SubnetsKey = "Subnets"

// NetworkSource lists and describes VPCs together with their flow logs and subnets
type NetworkSource struct {
	client EC2ClientAPI
	logger logging.Logger
}

// NewNetworkSource creates a NetworkSource with a provided client
func NewNetworkSource(client EC2ClientAPI, logger logging.Logger) *NetworkSource {
	return &NetworkSource{
		client: client,
		logger: logger,
	}
}

// Kind implements audit.Source
func (s *NetworkSource) Kind() string {
	return "VPC"
}

// ListIDs returns every VPC id in the region
func (s *NetworkSource) ListIDs(ctx context.Context) ([]string, error) {
	vpcs, err := s.describeVpcs(ctx, nil)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(vpcs))
	for _, vpc := range vpcs {
		ids = append(ids, aws.ToString(vpc.VpcId))
	}
	return ids, nil
}

// DescribeAll returns a record for every VPC in the region
func (s *NetworkSource) DescribeAll(ctx context.Context) ([]audit.Record, error) {
	vpcs, err := s.describeVpcs(ctx, nil)
	if err != nil {
		return nil, err
	}
	return s.convertVpcs(ctx, vpcs)
}

// Describe returns records for the given VPC ids, in order
func (s *NetworkSource) Describe(ctx context.Context, ids []string) ([]audit.Record, error) {
	vpcs, err := s.describeVpcs(ctx, ids)
	if err != nil {
		return nil, err
	}

	records, err := s.convertVpcs(ctx, vpcs)
	if err != nil {
		return nil, err
	}
	return orderByID(s.Kind(), "VpcId", records, ids)
}

func (s *NetworkSource) describeVpcs(ctx context.Context, ids []string) ([]types.Vpc, error) {
	resp, err := s.client.DescribeVpcs(ctx, &ec2.DescribeVpcsInput{VpcIds: ids})
	if err != nil {
		return nil, ClassifyAWSError(err, EC2ResourceType, "")
	}

	s.logger.Debug("DescribeVpcs returned %d VPC(s)", len(resp.Vpcs))
	return resp.Vpcs, nil
}

func (s *NetworkSource) convertVpcs(ctx context.Context, vpcs []types.Vpc) ([]audit.Record, error) {
	records := make([]audit.Record, 0, len(vpcs))
	for _, vpc := range vpcs {
		record, err := s.convertVpc(ctx, vpc)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// convertVpc maps one VPC, its first flow log and its subnets to an audit record
func (s *NetworkSource) convertVpc(ctx context.Context, vpc types.Vpc) (audit.Record, error) {
	vpcID := aws.ToString(vpc.VpcId)
	record := audit.Record{}

	setString(record, "VpcId", vpc.VpcId)
	setString(record, "CidrBlock", vpc.CidrBlock)
	setBool(record, "IsDefault", vpc.IsDefault)

	flowLogs, err := s.client.DescribeFlowLogs(ctx, &ec2.DescribeFlowLogsInput{
		Filter: []types.Filter{{
			Name:   aws.String("resource-id"),
			Values: []string{vpcID},
		}},
	})
	if err != nil {
		return nil, ClassifyAWSError(err, EC2ResourceType, vpcID)
	}

	if len(flowLogs.FlowLogs) == 0 {
		record["FlowLogStatus"] = FlowLogInactive
	} else {
		if len(flowLogs.FlowLogs) > 1 {
			s.logger.Debug("VPC %s has %d flow logs, reporting %s",
				vpcID, len(flowLogs.FlowLogs), aws.ToString(flowLogs.FlowLogs[0].FlowLogId))
		}
		flowLog := flowLogs.FlowLogs[0]
		setString(record, "FlowLogStatus", flowLog.FlowLogStatus)
		setString(record, "LogDestination", flowLog.LogDestination)
		if flowLog.TrafficType != "" {
			record["TrafficType"] = string(flowLog.TrafficType)
		}
	}

	subnets, err := s.client.DescribeSubnets(ctx, &ec2.DescribeSubnetsInput{
		Filters: []types.Filter{{
			Name:   aws.String("vpc-id"),
			Values: []string{vpcID},
		}},
	})
	if err != nil {
		return nil, ClassifyAWSError(err, EC2ResourceType, vpcID)
	}

	children := make([]audit.Record, 0, len(subnets.Subnets))
	for _, subnet := range subnets.Subnets {
		child := audit.Record{}
		setString(child, "SubnetId", subnet.SubnetId)
		setString(child, "AvailabilityZone", subnet.AvailabilityZone)
		setBool(child, "MapPublicIpOnLaunch", subnet.MapPublicIpOnLaunch)
		children = append(children, child)
	}
	record[SubnetsKey] = children

	return record, nil
}

// Subnets returns the subnet sub-records of a VPC record.
func Subnets(record audit.Record) []audit.Record {
	v, ok := record.Lookup(SubnetsKey)
	if !ok {
		return nil
	}
	children, _ := v.([]audit.Record)
	return children
}
