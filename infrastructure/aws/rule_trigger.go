package aws

import (
	"context"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge/types"
)

// RuleTrigger toggles the EventBridge rule that schedules the monitor.
type RuleTrigger struct {
	client   EventBridgeAPI
	ruleName string
}

func NewRuleTrigger(client EventBridgeAPI, ruleName string) *RuleTrigger {
	return &RuleTrigger{client: client, ruleName: ruleName}
}

func (r *RuleTrigger) Disable(ctx context.Context) error {
	if _, err := r.client.DisableRule(ctx, &eventbridge.DisableRuleInput{Name: awssdk.String(r.ruleName)}); err != nil {
		return fmt.Errorf("failed to disable rule %s: %w", r.ruleName, err)
	}
	return nil
}

func (r *RuleTrigger) Enable(ctx context.Context) error {
	if _, err := r.client.EnableRule(ctx, &eventbridge.EnableRuleInput{Name: awssdk.String(r.ruleName)}); err != nil {
		return fmt.Errorf("failed to enable rule %s: %w", r.ruleName, err)
	}
	return nil
}

// Enabled reports whether the rule is in the ENABLED state.
func (r *RuleTrigger) Enabled(ctx context.Context) (bool, error) {
	out, err := r.client.DescribeRule(ctx, &eventbridge.DescribeRuleInput{Name: awssdk.String(r.ruleName)})
	if err != nil {
		return false, fmt.Errorf("failed to describe rule %s: %w", r.ruleName, err)
	}
	return out.State == types.RuleStateEnabled, nil
}
