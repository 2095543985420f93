package access

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/aws/arn"
)

const DefaultTokenHeader = "x-api-token"

// SecretSource returns the current expected access token. Implementations
// must hit the backing store on every call.
type SecretSource interface {
	Token(ctx context.Context) (string, error)
}

// MethodARN is the parsed form of
// arn:<partition>:execute-api:<region>:<account>:<apiId>/<stage>/<verb>/<path>.
type MethodARN struct {
	Partition string
	Region    string
	AccountID string
	RestAPIID string
	Stage     string
	Verb      string
	Path      string
}

func ParseMethodARN(raw string) (MethodARN, error) {
	parsed, err := arn.Parse(raw)
	if err != nil {
		return MethodARN{}, fmt.Errorf("invalid method arn: %w", err)
	}
	if parsed.Service != "execute-api" {
		return MethodARN{}, fmt.Errorf("invalid method arn: unexpected service %q", parsed.Service)
	}

	parts := strings.SplitN(parsed.Resource, "/", 4)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return MethodARN{}, fmt.Errorf("invalid method arn: resource %q lacks api id and stage", parsed.Resource)
	}

	m := MethodARN{
		Partition: parsed.Partition,
		Region:    parsed.Region,
		AccountID: parsed.AccountID,
		RestAPIID: parts[0],
		Stage:     parts[1],
	}
	if len(parts) > 2 {
		m.Verb = parts[2]
	}
	if len(parts) > 3 {
		m.Path = parts[3]
	}
	return m, nil
}

type IAccessUsecase interface {
	// Authorize checks token against the stored secret and, on match, returns
	// a permission document scoped to the configured resource and GET only.
	Authorize(ctx context.Context, token string, methodARN string) (events.APIGatewayCustomAuthorizerResponse, error)
	// Verify performs the same token check without building a document.
	Verify(ctx context.Context, token string) error
}
