package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"cloudaudit/internal/audit"
	"cloudaudit/pkg/logging"
)

// Grantee group URIs that make a bucket ACL public.
const (
	AllUsersURI           = "http://acs.amazonaws.com/groups/global/AllUsers"
	AuthenticatedUsersURI = "http://acs.amazonaws.com/groups/global/AuthenticatedUsers"
)

// PartiallyBlocked is reported when only some public access block flags are set.
const PartiallyBlocked = "Partially Blocked"

// S3 error codes that mean "not configured" rather than failure.
const (
	codeNoPublicAccessBlock = "NoSuchPublicAccessBlockConfiguration"
	codeNoBucketPolicy      = "NoSuchBucketPolicy"
	codeNoEncryption        = "ServerSideEncryptionConfigurationNotFoundError"
)

// BucketSource lists buckets and checks their public exposure settings
type BucketSource struct {
	client S3ClientAPI
	logger logging.Logger
}

// NewBucketSource creates a BucketSource with a provided client
func NewBucketSource(client S3ClientAPI, logger logging.Logger) *BucketSource {
	return &BucketSource{
		client: client,
		logger: logger,
	}
}

// Kind implements audit.Source
func (s *BucketSource) Kind() string {
	return "S3 bucket"
}

// ListIDs returns the name of every bucket owned by the account
func (s *BucketSource) ListIDs(ctx context.Context) ([]string, error) {
	resp, err := s.client.ListBuckets(ctx, &s3.ListBucketsInput{})
	if err != nil {
		return nil, ClassifyAWSError(err, S3ResourceType, "")
	}

	names := make([]string, 0, len(resp.Buckets))
	for _, bucket := range resp.Buckets {
		names = append(names, aws.ToString(bucket.Name))
	}
	s.logger.Debug("ListBuckets returned %d bucket(s)", len(names))
	return names, nil
}

// DescribeAll checks every bucket owned by the account
func (s *BucketSource) DescribeAll(ctx context.Context) ([]audit.Record, error) {
	names, err := s.ListIDs(ctx)
	if err != nil {
		return nil, err
	}
	return s.Describe(ctx, names)
}

// Describe checks the given buckets, in order. A failed check leaves its
// field out of the record. Authentication failures abort, as does a bucket
// on which every check is denied.
func (s *BucketSource) Describe(ctx context.Context, names []string) ([]audit.Record, error) {
	records := make([]audit.Record, 0, len(names))
	for _, name := range names {
		record, err := s.describeBucket(ctx, name)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

func (s *BucketSource) describeBucket(ctx context.Context, name string) (audit.Record, error) {
	record := audit.Record{"Name": name}

	checks := []struct {
		what  string
		check func(context.Context, string, audit.Record) error
	}{
		{"public access block", s.publicAccessBlock},
		{"policy status", s.policyStatus},
		{"ACL", s.acl},
		{"default encryption", s.encryption},
	}

	denied := 0
	var lastDenied *Error
	for _, c := range checks {
		err := c.check(ctx, name, record)
		if err == nil {
			continue
		}

		classified := ClassifyAWSError(err, S3ResourceType, name)
		if classified.IsTerminal() {
			if classified.Category == ErrAuthenticationFailed {
				return nil, classified
			}
			denied++
			lastDenied = classified
		}
		s.logger.Warn("Could not read %s of bucket %s: %v", c.what, name, classified)
	}

	if denied == len(checks) {
		return nil, lastDenied
	}
	return record, nil
}

func (s *BucketSource) publicAccessBlock(ctx context.Context, name string, record audit.Record) error {
	resp, err := s.client.GetPublicAccessBlock(ctx, &s3.GetPublicAccessBlockInput{Bucket: aws.String(name)})
	if err != nil {
		if HasErrorCode(err, codeNoPublicAccessBlock) {
			return nil
		}
		return err
	}

	cfg := resp.PublicAccessBlockConfiguration
	if cfg == nil {
		return nil
	}

	flags := map[string]*bool{
		"BlockPublicAcls":       cfg.BlockPublicAcls,
		"IgnorePublicAcls":      cfg.IgnorePublicAcls,
		"BlockPublicPolicy":     cfg.BlockPublicPolicy,
		"RestrictPublicBuckets": cfg.RestrictPublicBuckets,
	}
	set := 0
	for _, v := range flags {
		if aws.ToBool(v) {
			set++
		}
	}

	switch set {
	case len(flags):
		record["PublicAccessBlock"] = true
	case 0:
		record["PublicAccessBlock"] = false
	default:
		record["PublicAccessBlock"] = PartiallyBlocked
	}
	return nil
}

func (s *BucketSource) policyStatus(ctx context.Context, name string, record audit.Record) error {
	resp, err := s.client.GetBucketPolicyStatus(ctx, &s3.GetBucketPolicyStatusInput{Bucket: aws.String(name)})
	if err != nil {
		if HasErrorCode(err, codeNoBucketPolicy) {
			record["PolicyPublic"] = false
			return nil
		}
		return err
	}

	if resp.PolicyStatus != nil {
		record["PolicyPublic"] = aws.ToBool(resp.PolicyStatus.IsPublic)
	}
	return nil
}

func (s *BucketSource) acl(ctx context.Context, name string, record audit.Record) error {
	resp, err := s.client.GetBucketAcl(ctx, &s3.GetBucketAclInput{Bucket: aws.String(name)})
	if err != nil {
		return err
	}

	public, authenticated := false, false
	for _, grant := range resp.Grants {
		if grant.Grantee == nil || grant.Grantee.Type != types.TypeGroup {
			continue
		}
		switch aws.ToString(grant.Grantee.URI) {
		case AllUsersURI:
			public = true
		case AuthenticatedUsersURI:
			authenticated = true
		}
	}

	record["ACLPublic"] = public
	record["ACLAuthenticatedUsers"] = authenticated
	return nil
}

func (s *BucketSource) encryption(ctx context.Context, name string, record audit.Record) error {
	resp, err := s.client.GetBucketEncryption(ctx, &s3.GetBucketEncryptionInput{Bucket: aws.String(name)})
	if err != nil {
		if HasErrorCode(err, codeNoEncryption) {
			return nil
		}
		return err
	}

	cfg := resp.ServerSideEncryptionConfiguration
	if cfg == nil {
		return nil
	}
	for _, rule := range cfg.Rules {
		if rule.ApplyServerSideEncryptionByDefault != nil && rule.ApplyServerSideEncryptionByDefault.SSEAlgorithm != "" {
			record["DefaultEncryption"] = string(rule.ApplyServerSideEncryptionByDefault.SSEAlgorithm)
			return nil
		}
	}
	return nil
}
