package deploy

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	cfntypes "github.com/aws/aws-sdk-go-v2/service/cloudformation/types"
	"github.com/aws/smithy-go"
)

// pollInterval is how often stack status and events are read while waiting.
const pollInterval = 5 * time.Second

// Sentinel errors callers branch on.
var (
	// ErrStackNotFound indicates the stack does not exist.
	ErrStackNotFound = errors.New("stack not found")

	// errNoChanges indicates an update with nothing to change, which the
	// driver treats as success.
	errNoChanges = errors.New("no updates to perform")
)

// DeployInput carries everything needed to submit a stack.
type DeployInput struct {
	StackName    string
	TemplateBody string
	Parameters   map[string]string
	Tags         map[string]string
}

// StackInfo is the terminal state of a deploy or describe.
type StackInfo struct {
	Name    string
	Status  string
	Reason  string
	Outputs map[string]string
}

// Deploy creates the stack, or updates it when it already exists, then waits
// for a terminal status while streaming stack events through the logger.
// An update with no changes is success.
func (c *Clients) Deploy(ctx context.Context, in DeployInput) (*StackInfo, error) {
	_, err := c.describeStack(ctx, in.StackName)
	switch {
	case errors.Is(err, ErrStackNotFound):
		c.logger.Info().Str("stack", in.StackName).Msg("creating stack")
		if err := c.createStack(ctx, in); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		c.logger.Info().Str("stack", in.StackName).Msg("updating stack")
		if err := c.updateStack(ctx, in); err != nil {
			if errors.Is(err, errNoChanges) {
				c.logger.Info().Str("stack", in.StackName).Msg("no changes to deploy")
				return c.describeStack(ctx, in.StackName)
			}
			return nil, err
		}
	}

	info, err := c.waitForStack(ctx, in.StackName)
	if err != nil {
		return nil, err
	}
	if !isSuccessStatus(info.Status) {
		return info, fmt.Errorf("stack %s ended in %s: %s", in.StackName, info.Status, info.Reason)
	}
	return info, nil
}

// Destroy deletes the stack and waits until it is gone. The file system's
// Delete policy means teardown leaves no residual storage behind.
func (c *Clients) Destroy(ctx context.Context, stackName string) error {
	if _, err := c.describeStack(ctx, stackName); err != nil {
		if errors.Is(err, ErrStackNotFound) {
			c.logger.Info().Str("stack", stackName).Msg("stack already gone")
			return nil
		}
		return err
	}

	c.logger.Info().Str("stack", stackName).Msg("deleting stack")
	_, err := c.CloudFormation.DeleteStack(ctx, &cloudformation.DeleteStackInput{
		StackName: aws.String(stackName),
	})
	if err != nil {
		return fmt.Errorf("deleting stack: %w", err)
	}

	info, err := c.waitForStack(ctx, stackName)
	if errors.Is(err, ErrStackNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if info.Status != string(cfntypes.StackStatusDeleteComplete) {
		return fmt.Errorf("stack %s ended in %s: %s", stackName, info.Status, info.Reason)
	}
	return nil
}

// DeployedTemplate returns the template body CloudFormation currently holds
// for the stack.
func (c *Clients) DeployedTemplate(ctx context.Context, stackName string) (string, error) {
	out, err := c.CloudFormation.GetTemplate(ctx, &cloudformation.GetTemplateInput{
		StackName: aws.String(stackName),
	})
	if err != nil {
		if isStackMissingErr(err) {
			return "", fmt.Errorf("%w: %s", ErrStackNotFound, stackName)
		}
		return "", fmt.Errorf("fetching deployed template: %w", err)
	}
	return aws.ToString(out.TemplateBody), nil
}

func (c *Clients) createStack(ctx context.Context, in DeployInput) error {
	input := &cloudformation.CreateStackInput{
		StackName:    aws.String(in.StackName),
		TemplateBody: aws.String(in.TemplateBody),
		Capabilities: []cfntypes.Capability{cfntypes.CapabilityCapabilityNamedIam},
		Parameters:   toParameters(in.Parameters),
		Tags:         toTags(in.Tags),
	}
	if _, err := c.CloudFormation.CreateStack(ctx, input); err != nil {
		return fmt.Errorf("creating stack: %w", err)
	}
	return nil
}

func (c *Clients) updateStack(ctx context.Context, in DeployInput) error {
	input := &cloudformation.UpdateStackInput{
		StackName:    aws.String(in.StackName),
		TemplateBody: aws.String(in.TemplateBody),
		Capabilities: []cfntypes.Capability{cfntypes.CapabilityCapabilityNamedIam},
		Parameters:   toParameters(in.Parameters),
		Tags:         toTags(in.Tags),
	}
	if _, err := c.CloudFormation.UpdateStack(ctx, input); err != nil {
		if isNoChangesErr(err) {
			return errNoChanges
		}
		return fmt.Errorf("updating stack: %w", err)
	}
	return nil
}

// waitForStack polls until the stack reaches a terminal status, logging each
// new stack event as it appears.
func (c *Clients) waitForStack(ctx context.Context, stackName string) (*StackInfo, error) {
	seen := make(map[string]bool)

	for {
		c.streamEvents(ctx, stackName, seen)

		info, err := c.describeStack(ctx, stackName)
		if err != nil {
			return nil, err
		}
		if isTerminalStatus(info.Status) {
			c.logger.Info().
				Str("stack", stackName).
				Str("status", info.Status).
				Msg("stack reached terminal status")
			return info, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(pollInterval):
		}
	}
}

// streamEvents logs stack events not seen before. Event read failures are
// logged and skipped; the status poll decides when waiting ends.
func (c *Clients) streamEvents(ctx context.Context, stackName string, seen map[string]bool) {
	out, err := c.CloudFormation.DescribeStackEvents(ctx, &cloudformation.DescribeStackEventsInput{
		StackName: aws.String(stackName),
	})
	if err != nil {
		c.logger.Debug().Err(err).Msg("reading stack events")
		return
	}

	// Events arrive newest first; log in chronological order
	events := out.StackEvents
	for i := len(events) - 1; i >= 0; i-- {
		e := events[i]
		id := aws.ToString(e.EventId)
		if seen[id] {
			continue
		}
		seen[id] = true

		evt := c.logger.Info().
			Str("resource", aws.ToString(e.LogicalResourceId)).
			Str("type", aws.ToString(e.ResourceType)).
			Str("status", string(e.ResourceStatus))
		if reason := aws.ToString(e.ResourceStatusReason); reason != "" {
			evt = evt.Str("reason", reason)
		}
		evt.Msg("stack event")
	}
}

// describeStack returns the stack's current state.
func (c *Clients) describeStack(ctx context.Context, stackName string) (*StackInfo, error) {
	out, err := c.CloudFormation.DescribeStacks(ctx, &cloudformation.DescribeStacksInput{
		StackName: aws.String(stackName),
	})
	if err != nil {
		if isStackMissingErr(err) {
			return nil, fmt.Errorf("%w: %s", ErrStackNotFound, stackName)
		}
		return nil, fmt.Errorf("describing stack: %w", err)
	}
	if len(out.Stacks) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrStackNotFound, stackName)
	}

	stack := out.Stacks[0]
	info := &StackInfo{
		Name:    aws.ToString(stack.StackName),
		Status:  string(stack.StackStatus),
		Reason:  aws.ToString(stack.StackStatusReason),
		Outputs: make(map[string]string),
	}
	for _, o := range stack.Outputs {
		info.Outputs[aws.ToString(o.OutputKey)] = aws.ToString(o.OutputValue)
	}
	return info, nil
}

func toParameters(params map[string]string) []cfntypes.Parameter {
	if len(params) == 0 {
		return nil
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	result := make([]cfntypes.Parameter, 0, len(keys))
	for _, k := range keys {
		result = append(result, cfntypes.Parameter{
			ParameterKey:   aws.String(k),
			ParameterValue: aws.String(params[k]),
		})
	}
	return result
}

func toTags(tags map[string]string) []cfntypes.Tag {
	if len(tags) == 0 {
		return nil
	}
	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	result := make([]cfntypes.Tag, 0, len(keys))
	for _, k := range keys {
		result = append(result, cfntypes.Tag{
			Key:   aws.String(k),
			Value: aws.String(tags[k]),
		})
	}
	return result
}

// isTerminalStatus reports whether the stack has stopped moving.
func isTerminalStatus(status string) bool {
	return !strings.HasSuffix(status, "_IN_PROGRESS")
}

// isSuccessStatus reports whether a terminal status is a successful one.
func isSuccessStatus(status string) bool {
	switch cfntypes.StackStatus(status) {
	case cfntypes.StackStatusCreateComplete,
		cfntypes.StackStatusUpdateComplete,
		cfntypes.StackStatusDeleteComplete:
		return true
	}
	return false
}

// isStackMissingErr detects the engine's "stack does not exist" answer.
func isStackMissingErr(err error) bool {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode() == "ValidationError" &&
			strings.Contains(apiErr.ErrorMessage(), "does not exist")
	}
	return false
}

// isNoChangesErr detects the engine's "no updates are to be performed" answer.
func isNoChangesErr(err error) bool {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode() == "ValidationError" &&
			strings.Contains(apiErr.ErrorMessage(), "No updates are to be performed")
	}
	return false
}
