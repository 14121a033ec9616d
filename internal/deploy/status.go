package deploy

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ecs"
	"github.com/aws/aws-sdk-go-v2/service/efs"
	elbv2 "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
)

// Status is a live view of the deployed topology: the stack's own state plus
// direct reads of the load balancer, service, and file system.
type Status struct {
	Stack *StackInfo

	LoadBalancerDNS   string
	LoadBalancerState string

	ServiceDesired int32
	ServiceRunning int32

	FileSystemState string
}

// Status reads the stack outputs and the live resource state behind them.
// The load balancer, service, and file system are looked up by the bare
// application name and the FileSystemId output. Per-resource read failures
// are logged and leave the corresponding fields empty; only a missing stack
// is an error.
func (c *Clients) Status(ctx context.Context, stackName, appName string) (*Status, error) {
	info, err := c.describeStack(ctx, stackName)
	if err != nil {
		return nil, err
	}

	status := &Status{Stack: info}

	if dns, state, err := c.loadBalancerState(ctx, appName); err != nil {
		c.logger.Debug().Err(err).Msg("reading load balancer state")
	} else {
		status.LoadBalancerDNS = dns
		status.LoadBalancerState = state
	}

	if desired, running, err := c.serviceCounts(ctx, appName); err != nil {
		c.logger.Debug().Err(err).Msg("reading service counts")
	} else {
		status.ServiceDesired = desired
		status.ServiceRunning = running
	}

	if fsID := info.Outputs["FileSystemId"]; fsID != "" {
		if state, err := c.fileSystemState(ctx, fsID); err != nil {
			c.logger.Debug().Err(err).Msg("reading file system state")
		} else {
			status.FileSystemState = state
		}
	}

	return status, nil
}

// loadBalancerState reads the load balancer's DNS name and state code.
func (c *Clients) loadBalancerState(ctx context.Context, name string) (dns, state string, err error) {
	out, err := c.ELBv2.DescribeLoadBalancers(ctx, &elbv2.DescribeLoadBalancersInput{
		Names: []string{name},
	})
	if err != nil {
		return "", "", err
	}
	if len(out.LoadBalancers) == 0 {
		return "", "", errors.New("load balancer not found")
	}

	lb := out.LoadBalancers[0]
	dns = aws.ToString(lb.DNSName)
	if lb.State != nil {
		state = string(lb.State.Code)
	}
	return dns, state, nil
}

// serviceCounts reads the service's desired and running task counts.
func (c *Clients) serviceCounts(ctx context.Context, appName string) (desired, running int32, err error) {
	out, err := c.ECS.DescribeServices(ctx, &ecs.DescribeServicesInput{
		Cluster:  aws.String(appName),
		Services: []string{appName},
	})
	if err != nil {
		return 0, 0, err
	}
	if len(out.Services) == 0 {
		return 0, 0, errors.New("service not found")
	}

	svc := out.Services[0]
	return svc.DesiredCount, svc.RunningCount, nil
}

// fileSystemState reads the file system's lifecycle state.
func (c *Clients) fileSystemState(ctx context.Context, fileSystemID string) (string, error) {
	out, err := c.EFS.DescribeFileSystems(ctx, &efs.DescribeFileSystemsInput{
		FileSystemId: aws.String(fileSystemID),
	})
	if err != nil {
		return "", err
	}
	if len(out.FileSystems) == 0 {
		return "", errors.New("file system not found")
	}
	return string(out.FileSystems[0].LifeCycleState), nil
}
