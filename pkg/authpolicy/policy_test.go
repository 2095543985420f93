package authpolicy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTarget = Target{
	Region:    "us-east-1",
	AccountID: "123456789012",
	RestAPIID: "a1b2c3d4",
	Stage:     "public",
}

func TestBuild_SingleAllow(t *testing.T) {
	p := New("principal-1", testTarget)
	require.NoError(t, p.AllowMethod(VerbGet, "image"))

	resp, err := p.Build()
	require.NoError(t, err)

	assert.Equal(t, "principal-1", resp.PrincipalID)
	assert.Equal(t, PolicyVersion, resp.PolicyDocument.Version)
	require.Len(t, resp.PolicyDocument.Statement, 1)

	stmt := resp.PolicyDocument.Statement[0]
	assert.Equal(t, EffectAllow, stmt.Effect)
	assert.Equal(t, []string{InvokeAction}, stmt.Action)
	assert.Equal(t, []string{"arn:aws:execute-api:us-east-1:123456789012:a1b2c3d4/public/GET/image"}, stmt.Resource)
}

func TestBuild_LeadingSlashAndPartition(t *testing.T) {
	target := testTarget
	target.Partition = "aws-cn"
	p := New("p", target)
	require.NoError(t, p.AllowMethod(VerbGet, "/image"))
	require.NoError(t, p.DenyMethod(VerbAll, "*"))

	resp, err := p.Build()
	require.NoError(t, err)
	require.Len(t, resp.PolicyDocument.Statement, 2)

	assert.Equal(t, "arn:aws-cn:execute-api:us-east-1:123456789012:a1b2c3d4/public/GET/image",
		resp.PolicyDocument.Statement[0].Resource[0])
	assert.Equal(t, EffectDeny, resp.PolicyDocument.Statement[1].Effect)
	assert.Equal(t, "arn:aws-cn:execute-api:us-east-1:123456789012:a1b2c3d4/public/*/*",
		resp.PolicyDocument.Statement[1].Resource[0])
}

func TestBuild_NoStatements(t *testing.T) {
	_, err := New("p", testTarget).Build()
	assert.ErrorIs(t, err, ErrNoStatements)
}

func TestAllowMethod_RejectsInvalidInput(t *testing.T) {
	p := New("p", testTarget)
	assert.Error(t, p.AllowMethod("FETCH", "image"))
	assert.Error(t, p.AllowMethod(VerbGet, "image?x=1"))
	assert.Error(t, p.AllowMethod(VerbGet, ""))
}
