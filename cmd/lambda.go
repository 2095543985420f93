package cmd

import (
	"context"
	"fmt"
	"os"

	awslambda "github.com/aws/aws-lambda-go/lambda"
	"github.com/photoframe/photoframe/core/config"
	uiLambda "github.com/photoframe/photoframe/ui/lambda"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const (
	handlerAuthorizer = "authorizer"
	handlerImage      = "image"
	handlerMonitor    = "monitor"
	handlerPresence   = "presence"
)

var lambdaCmd = &cobra.Command{
	Use:   "lambda",
	Short: "Run one function inside the AWS Lambda runtime",
	Long: `Starts the Lambda runtime loop for the handler named by --handler, or by
_HANDLER when the flag is omitted: authorizer, image, monitor or presence.`,
	RunE: runLambda,
}

func init() {
	lambdaCmd.Flags().String("handler", "", "handler to serve (defaults to $_HANDLER)")
	rootCmd.AddCommand(lambdaCmd)
}

func runLambda(cmd *cobra.Command, _ []string) error {
	name, _ := cmd.Flags().GetString("handler")
	if name == "" {
		name = os.Getenv("_HANDLER")
	}

	handler, err := buildLambdaHandler(cmd.Context(), config.Global, name)
	if err != nil {
		return err
	}

	logrus.Infof("[LAMBDA] Starting %s handler", name)
	awslambda.Start(handler)
	return nil
}

// buildLambdaHandler validates the settings the named handler needs and
// wires it. Clients are built once per cold start.
func buildLambdaHandler(ctx context.Context, cfg *config.Config, name string) (any, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	deps := newComponents(cfg)

	switch name {
	case handlerAuthorizer:
		if err := cfg.ValidateAuthorizer(); err != nil {
			return nil, err
		}
		svc, err := deps.accessService(ctx)
		if err != nil {
			return nil, err
		}
		return uiLambda.NewAuthorizer(svc, cfg.Access.Header).Handle, nil

	case handlerImage:
		if err := cfg.ValidateImage(); err != nil {
			return nil, err
		}
		svc, err := deps.imageService(ctx)
		if err != nil {
			return nil, err
		}
		return uiLambda.NewImage(svc).Handle, nil

	case handlerMonitor, handlerPresence:
		if err := cfg.ValidateMonitor(); err != nil {
			return nil, err
		}
		trigger, err := deps.ruleTrigger(ctx)
		if err != nil {
			return nil, err
		}
		svc, err := deps.livenessService(ctx, trigger)
		if err != nil {
			return nil, err
		}
		if name == handlerPresence {
			return uiLambda.NewPresence(svc).Handle, nil
		}
		return uiLambda.NewMonitor(svc).Handle, nil
	}

	return nil, fmt.Errorf("unknown lambda handler %q (want %s, %s, %s or %s)",
		name, handlerAuthorizer, handlerImage, handlerMonitor, handlerPresence)
}
