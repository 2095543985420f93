package usecase

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"
	domainAccess "github.com/photoframe/photoframe/domains/access"
	"github.com/photoframe/photoframe/pkg/authpolicy"
	pkgError "github.com/photoframe/photoframe/pkg/error"
	"github.com/sirupsen/logrus"
)

type accessService struct {
	secrets  domainAccess.SecretSource
	resource string
	newID    func() string
}

func NewAccessService(secrets domainAccess.SecretSource, resource string) domainAccess.IAccessUsecase {
	return &accessService{
		secrets:  secrets,
		resource: resource,
		newID:    newPrincipalID,
	}
}

// newPrincipalID returns 32 hex characters from a fresh v4 uuid.
func newPrincipalID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// tokensMatch runs in time independent of where the first mismatch is. An
// empty stored secret never matches.
func tokensMatch(expected, actual string) bool {
	if expected == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(actual)) == 1
}

func (s *accessService) Verify(ctx context.Context, token string) error {
	expected, err := s.secrets.Token(ctx)
	if err != nil {
		logrus.WithError(err).Error("[ACCESS] Failed to read access token from secret store")
		return fmt.Errorf("failed to read access token: %w", err)
	}

	if !tokensMatch(expected, token) {
		logrus.Warn("[ACCESS] Mismatched tokens")
		return pkgError.UnauthorizedError("Unauthorized")
	}
	return nil
}

func (s *accessService) Authorize(ctx context.Context, token string, methodARN string) (events.APIGatewayCustomAuthorizerResponse, error) {
	if err := s.Verify(ctx, token); err != nil {
		return events.APIGatewayCustomAuthorizerResponse{}, err
	}

	target, err := domainAccess.ParseMethodARN(methodARN)
	if err != nil {
		logrus.WithError(err).Error("[ACCESS] Rejecting request with malformed method ARN")
		return events.APIGatewayCustomAuthorizerResponse{}, pkgError.ValidationError(err.Error())
	}

	policy := authpolicy.New(s.newID(), authpolicy.Target{
		Partition: target.Partition,
		Region:    target.Region,
		AccountID: target.AccountID,
		RestAPIID: target.RestAPIID,
		Stage:     target.Stage,
	})
	if err := policy.AllowMethod(authpolicy.VerbGet, s.resource); err != nil {
		return events.APIGatewayCustomAuthorizerResponse{}, fmt.Errorf("failed to scope policy: %w", err)
	}

	resp, err := policy.Build()
	if err != nil {
		return events.APIGatewayCustomAuthorizerResponse{}, fmt.Errorf("failed to build policy: %w", err)
	}

	if doc, err := json.Marshal(resp); err == nil {
		logrus.Infof("[ACCESS] Issued policy %s", doc)
	}
	return resp, nil
}
