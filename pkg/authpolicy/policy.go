// Package authpolicy builds the IAM policy documents returned by an API Gateway
// request authorizer.
package authpolicy

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/aws/aws-lambda-go/events"
)

const (
	PolicyVersion = "2012-10-17"
	InvokeAction  = "execute-api:Invoke"
	EffectAllow   = "Allow"
	EffectDeny    = "Deny"
)

type HTTPVerb string

const (
	VerbGet     HTTPVerb = "GET"
	VerbPost    HTTPVerb = "POST"
	VerbPut     HTTPVerb = "PUT"
	VerbPatch   HTTPVerb = "PATCH"
	VerbHead    HTTPVerb = "HEAD"
	VerbDelete  HTTPVerb = "DELETE"
	VerbOptions HTTPVerb = "OPTIONS"
	VerbAll     HTTPVerb = "*"
)

var (
	ErrNoStatements = errors.New("no statements defined for the policy")

	resourcePattern = regexp.MustCompile(`^[/.a-zA-Z0-9\-*]+$`)
)

// Target identifies the API stage the policy is scoped to.
type Target struct {
	Partition string
	Region    string
	AccountID string
	RestAPIID string
	Stage     string
}

type method struct {
	verb     HTTPVerb
	resource string
}

// Policy accumulates allowed and denied methods. Anything not explicitly
// allowed is denied by API Gateway.
type Policy struct {
	principalID string
	target      Target
	allow       []method
	deny        []method
}

func New(principalID string, target Target) *Policy {
	if target.Partition == "" {
		target.Partition = "aws"
	}
	return &Policy{principalID: principalID, target: target}
}

func (p *Policy) AllowMethod(verb HTTPVerb, resource string) error {
	return p.add(&p.allow, verb, resource)
}

func (p *Policy) DenyMethod(verb HTTPVerb, resource string) error {
	return p.add(&p.deny, verb, resource)
}

func (p *Policy) add(list *[]method, verb HTTPVerb, resource string) error {
	switch verb {
	case VerbGet, VerbPost, VerbPut, VerbPatch, VerbHead, VerbDelete, VerbOptions, VerbAll:
	default:
		return fmt.Errorf("invalid HTTP verb %q", verb)
	}
	if !resourcePattern.MatchString(resource) {
		return fmt.Errorf("invalid resource path %q", resource)
	}
	*list = append(*list, method{verb: verb, resource: strings.TrimPrefix(resource, "/")})
	return nil
}

func (p *Policy) resourceARN(m method) string {
	t := p.target
	return fmt.Sprintf("arn:%s:execute-api:%s:%s:%s/%s/%s/%s",
		t.Partition, t.Region, t.AccountID, t.RestAPIID, t.Stage, m.verb, m.resource)
}

func (p *Policy) statement(effect string, methods []method) events.IAMPolicyStatement {
	resources := make([]string, 0, len(methods))
	for _, m := range methods {
		resources = append(resources, p.resourceARN(m))
	}
	return events.IAMPolicyStatement{
		Action:   []string{InvokeAction},
		Effect:   effect,
		Resource: resources,
	}
}

// Build renders the authorizer response. One statement is emitted per effect.
func (p *Policy) Build() (events.APIGatewayCustomAuthorizerResponse, error) {
	if len(p.allow) == 0 && len(p.deny) == 0 {
		return events.APIGatewayCustomAuthorizerResponse{}, ErrNoStatements
	}

	doc := events.APIGatewayCustomAuthorizerPolicy{Version: PolicyVersion}
	if len(p.allow) > 0 {
		doc.Statement = append(doc.Statement, p.statement(EffectAllow, p.allow))
	}
	if len(p.deny) > 0 {
		doc.Statement = append(doc.Statement, p.statement(EffectDeny, p.deny))
	}

	return events.APIGatewayCustomAuthorizerResponse{
		PrincipalID:    p.principalID,
		PolicyDocument: doc,
	}, nil
}
