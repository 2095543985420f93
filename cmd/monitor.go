package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/photoframe/photoframe/core/config"
	domainLiveness "github.com/photoframe/photoframe/domains/liveness"
	"github.com/spf13/cobra"
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Liveness monitor operations",
}

var monitorCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Run one liveness check and print the result",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := config.Global
		if err := cfg.ValidateMonitor(); err != nil {
			return err
		}
		deps := newComponents(cfg)
		defer deps.Close()

		trigger, err := cliTrigger(cmd, deps)
		if err != nil {
			return err
		}
		svc, err := deps.livenessService(cmd.Context(), trigger)
		if err != nil {
			return err
		}

		result := svc.Check(cmd.Context())
		out, _ := json.MarshalIndent(map[string]any{
			"status":  result.Status,
			"record":  result.Record,
			"elapsed": result.Elapsed.String(),
			"message": result.Message,
		}, "", "  ")
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		if !result.Ok() {
			return fmt.Errorf("check failed: %s: %v", result.Status, result.Err)
		}
		return nil
	},
}

var triggerCmd = &cobra.Command{
	Use:   "trigger",
	Short: "Enable or disable the schedule that runs the monitor",
}

var triggerEnableCmd = &cobra.Command{
	Use:   "enable",
	Short: "Re-enable the monitor schedule after an offline alert",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return toggleTrigger(cmd, true)
	},
}

var triggerDisableCmd = &cobra.Command{
	Use:   "disable",
	Short: "Disable the monitor schedule",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return toggleTrigger(cmd, false)
	},
}

func init() {
	monitorCmd.AddCommand(monitorCheckCmd)
	triggerCmd.AddCommand(triggerEnableCmd, triggerDisableCmd)
	rootCmd.AddCommand(monitorCmd, triggerCmd)
}

// cliTrigger returns the EventBridge rule in AWS mode and the shared schedule
// state otherwise.
func cliTrigger(cmd *cobra.Command, deps *components) (domainLiveness.TriggerController, error) {
	if deps.cfg.Liveness.Notify == config.NotifyAWS {
		return deps.ruleTrigger(cmd.Context())
	}
	ticker, err := deps.scheduleTrigger(cmd.Context())
	if err != nil {
		return nil, err
	}
	return ticker, nil
}

func toggleTrigger(cmd *cobra.Command, enable bool) error {
	cfg := config.Global
	deps := newComponents(cfg)
	defer deps.Close()

	trigger, err := cliTrigger(cmd, deps)
	if err != nil {
		return err
	}
	action, run := "disabled", trigger.Disable
	if enable {
		action, run = "enabled", trigger.Enable
	}
	if err := run(cmd.Context()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "rule %s %s\n", cfg.Liveness.RuleName, action)
	return nil
}
