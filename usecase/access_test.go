package usecase

import (
	"context"
	"errors"
	"regexp"
	"testing"

	pkgError "github.com/photoframe/photoframe/pkg/error"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testToken     = "s3cr3t-frame-token"
	testMethodARN = "arn:aws:execute-api:us-east-1:123456789012:a1b2c3d4/public/GET/image"
)

type fakeSecretSource struct {
	token string
	err   error
	calls int
}

func (f *fakeSecretSource) Token(ctx context.Context) (string, error) {
	f.calls++
	return f.token, f.err
}

func TestAccess_AuthorizeMatchingToken(t *testing.T) {
	secrets := &fakeSecretSource{token: testToken}
	svc := NewAccessService(secrets, "image")

	resp, err := svc.Authorize(context.Background(), testToken, testMethodARN)
	require.NoError(t, err)

	require.Len(t, resp.PolicyDocument.Statement, 1)
	stmt := resp.PolicyDocument.Statement[0]
	assert.Equal(t, "Allow", stmt.Effect)
	assert.Equal(t, []string{"execute-api:Invoke"}, stmt.Action)
	assert.Equal(t, []string{"arn:aws:execute-api:us-east-1:123456789012:a1b2c3d4/public/GET/image"}, stmt.Resource)
	assert.Equal(t, 1, secrets.calls, "secret must be fetched exactly once per call")
}

func TestAccess_ScopeIgnoresRequestedMethod(t *testing.T) {
	svc := NewAccessService(&fakeSecretSource{token: testToken}, "image")

	resp, err := svc.Authorize(context.Background(), testToken,
		"arn:aws:execute-api:us-east-1:123456789012:a1b2c3d4/public/DELETE/admin")
	require.NoError(t, err)

	require.Len(t, resp.PolicyDocument.Statement, 1)
	assert.Equal(t, []string{"arn:aws:execute-api:us-east-1:123456789012:a1b2c3d4/public/GET/image"},
		resp.PolicyDocument.Statement[0].Resource)
}

func TestAccess_FreshPrincipalPerRequest(t *testing.T) {
	svc := NewAccessService(&fakeSecretSource{token: testToken}, "image")
	hex32 := regexp.MustCompile(`^[0-9a-f]{32}$`)

	first, err := svc.Authorize(context.Background(), testToken, testMethodARN)
	require.NoError(t, err)
	second, err := svc.Authorize(context.Background(), testToken, testMethodARN)
	require.NoError(t, err)

	assert.Regexp(t, hex32, first.PrincipalID)
	assert.Regexp(t, hex32, second.PrincipalID)
	assert.NotEqual(t, first.PrincipalID, second.PrincipalID)
	assert.NotContains(t, first.PrincipalID, testToken)
}

func TestAccess_MismatchIsUnauthorized(t *testing.T) {
	candidates := []string{
		"",
		"s",
		"s3cr3t-frame-toke",
		"s3cr3t-frame-tokeX",
		"s3cr3t-frame-token-extra",
		"S3CR3T-FRAME-TOKEN",
		"xxxxxxxxxxxxxxxxxx",
	}

	for _, candidate := range candidates {
		secrets := &fakeSecretSource{token: testToken}
		svc := NewAccessService(secrets, "image")

		resp, err := svc.Authorize(context.Background(), candidate, testMethodARN)

		var unauthorized pkgError.UnauthorizedError
		require.True(t, errors.As(err, &unauthorized), "candidate %q", candidate)
		assert.Equal(t, "Unauthorized", err.Error())
		assert.Empty(t, resp.PolicyDocument.Statement)
		assert.Empty(t, resp.PrincipalID)
		assert.Equal(t, 1, secrets.calls)
	}
}

func TestAccess_EmptySecretNeverMatches(t *testing.T) {
	svc := NewAccessService(&fakeSecretSource{token: ""}, "image")

	err := svc.Verify(context.Background(), "")
	var unauthorized pkgError.UnauthorizedError
	assert.True(t, errors.As(err, &unauthorized))
}

func TestAccess_SecretStoreFailure(t *testing.T) {
	svc := NewAccessService(&fakeSecretSource{err: errors.New("throttled")}, "image")

	_, err := svc.Authorize(context.Background(), testToken, testMethodARN)
	require.Error(t, err)

	var unauthorized pkgError.UnauthorizedError
	assert.False(t, errors.As(err, &unauthorized))
	assert.Contains(t, err.Error(), "throttled")
}

func TestAccess_MalformedMethodARN(t *testing.T) {
	svc := NewAccessService(&fakeSecretSource{token: testToken}, "image")

	_, err := svc.Authorize(context.Background(), testToken, "garbage")

	var validation pkgError.ValidationError
	assert.True(t, errors.As(err, &validation))
}

func TestAccess_LogsNeverContainTokens(t *testing.T) {
	hook := logtest.NewGlobal()
	t.Cleanup(hook.Reset)

	svc := NewAccessService(&fakeSecretSource{token: testToken}, "image")
	_, _ = svc.Authorize(context.Background(), "wrong-token-value", testMethodARN)
	_, _ = svc.Authorize(context.Background(), testToken, testMethodARN)

	require.NotEmpty(t, hook.AllEntries())
	var sawWarning bool
	for _, entry := range hook.AllEntries() {
		line, err := entry.String()
		require.NoError(t, err)
		assert.NotContains(t, line, testToken)
		assert.NotContains(t, line, "wrong-token-value")
		if entry.Level == logrus.WarnLevel {
			sawWarning = true
		}
	}
	assert.True(t, sawWarning, "mismatch must be logged")
}

func TestTokensMatch(t *testing.T) {
	assert.True(t, tokensMatch("abc", "abc"))
	assert.False(t, tokensMatch("abc", "abd"))
	assert.False(t, tokensMatch("abc", "ab"))
	assert.False(t, tokensMatch("", ""))
}
