// Package audits declares the resource families cloudaudit can report on:
// their identifying columns, selectable sections and default output file.
package audits

import (
	"fmt"
	"sort"

	"cloudaudit/internal/audit"
	awsprovider "cloudaudit/internal/providers/aws"
	"cloudaudit/pkg/logging"
)

// Sentinels written by the S3 audit when a setting has never been configured.
const (
	NoPublicAccessBlock = "Validate manually - no configuration set"
	NoDefaultEncryption = "NOT_CONFIGURED"
)

// SourceFactory builds the discovery source of an audit from the clients of
// one invocation.
type SourceFactory func(clients *awsprovider.ClientSet, logger logging.Logger) audit.Source

// Definition describes one resource family.
type Definition struct {
	// Name is the subcommand and config block name, e.g. "rds"
	Name string

	// Short is the one-line description shown in help
	Short string

	// IDFlag and IDUsage describe the repeatable identifier flag
	IDFlag  string
	IDShort string
	IDUsage string

	Identifying audit.Section
	Sections    []audit.Section

	// Expand splits a record into sub-resource rows. It only applies when
	// ExpandSection is among the selected sections.
	Expand        audit.Expander
	ExpandSection string

	DefaultOutput string
	NewSource     SourceFactory
}

// SectionIDs returns the declared section ids in order.
func (d Definition) SectionIDs() []string {
	ids := make([]string, len(d.Sections))
	for i, s := range d.Sections {
		ids[i] = s.ID
	}
	return ids
}

// ExpanderFor returns the sub-resource expander to use for the selected
// sections, or nil when rows stay one per resource.
func (d Definition) ExpanderFor(selected []audit.Section) audit.Expander {
	if d.Expand == nil {
		return nil
	}
	for _, s := range selected {
		if s.ID == d.ExpandSection {
			return d.Expand
		}
	}
	return nil
}

// RDS audits database instances.
var RDS = Definition{
	Name:    "rds",
	Short:   "Audit RDS instances for backups, security and monitoring",
	IDFlag:  "instance",
	IDShort: "i",
	IDUsage: "DB instance identifier to audit (repeatable, default all)",
	Identifying: audit.NewSection("identity",
		audit.Fields("DBInstanceIdentifier", "Engine", "DBInstanceStatus")...),
	Sections: []audit.Section{
		audit.NewSection("backups",
			audit.Fields("BackupRetentionPeriod", "MultiAZ", "ReadReplicaDBInstanceIdentifiers", "DeletionProtection")...),
		audit.NewSection("security",
			audit.Fields("PubliclyAccessible", "StorageEncrypted", "IAMDatabaseAuthenticationEnabled", "AssociatedRoles", "VpcSecurityGroups")...),
		audit.NewSection("monitoring",
			audit.Fields("MonitoringInterval", "PerformanceInsightsEnabled")...),
	},
	DefaultOutput: "rds_audit_data.csv",
	NewSource: func(clients *awsprovider.ClientSet, logger logging.Logger) audit.Source {
		return awsprovider.NewDatabaseSource(clients.RDS, logger)
	},
}

// VPC audits networks, their flow logs and subnets.
var VPC = Definition{
	Name:    "vpc",
	Short:   "Audit VPCs for flow logs and subnets",
	IDFlag:  "vpc",
	IDShort: "v",
	IDUsage: "VPC id to audit (repeatable, default all)",
	Identifying: audit.NewSection("identity",
		audit.Fields("VpcId", "CidrBlock", "IsDefault")...),
	Sections: []audit.Section{
		audit.NewSection("flowlogs",
			audit.Fields("FlowLogStatus", "LogDestination", "TrafficType")...),
		audit.NewSection("subnets",
			audit.Fields("SubnetId", "AvailabilityZone", "MapPublicIpOnLaunch")...),
	},
	Expand:        awsprovider.Subnets,
	ExpandSection: "subnets",
	DefaultOutput: "vpc_audit_data.csv",
	NewSource: func(clients *awsprovider.ClientSet, logger logging.Logger) audit.Source {
		return awsprovider.NewNetworkSource(clients.EC2, logger)
	},
}

// S3 audits buckets for public exposure and default encryption.
var S3 = Definition{
	Name:    "s3",
	Short:   "Audit S3 buckets for public access and encryption",
	IDFlag:  "bucket",
	IDShort: "b",
	IDUsage: "bucket name to audit (repeatable, default all)",
	Identifying: audit.NewSection("identity",
		audit.Fields("Name")...),
	Sections: []audit.Section{
		audit.NewSection("block",
			audit.Field{Name: "PublicAccessBlock", Unavailable: NoPublicAccessBlock}),
		audit.NewSection("policy",
			audit.Fields("PolicyPublic")...),
		audit.NewSection("acl",
			audit.Fields("ACLPublic", "ACLAuthenticatedUsers")...),
		audit.NewSection("encryption",
			audit.Field{Name: "DefaultEncryption", Unavailable: NoDefaultEncryption}),
	},
	DefaultOutput: "s3_public_data.csv",
	NewSource: func(clients *awsprovider.ClientSet, logger logging.Logger) audit.Source {
		return awsprovider.NewBucketSource(clients.S3, logger)
	},
}

var catalog = map[string]Definition{
	RDS.Name: RDS,
	VPC.Name: VPC,
	S3.Name:  S3,
}

// Lookup returns the audit definition registered under name.
func Lookup(name string) (Definition, error) {
	def, ok := catalog[name]
	if !ok {
		return Definition{}, fmt.Errorf("unknown audit %q (available: %v)", name, Names())
	}
	return def, nil
}

// All returns every definition sorted by name.
func All() []Definition {
	defs := make([]Definition, 0, len(catalog))
	for _, name := range Names() {
		defs = append(defs, catalog[name])
	}
	return defs
}

// Names returns the registered audit names sorted.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
