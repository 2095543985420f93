package lambda

import (
	"context"
	"errors"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	domainAccess "github.com/photoframe/photoframe/domains/access"
	pkgError "github.com/photoframe/photoframe/pkg/error"
)

// ErrUnauthorized is the exact error API Gateway maps to a 401 response.
var ErrUnauthorized = errors.New("Unauthorized")

type Authorizer struct {
	Service domainAccess.IAccessUsecase
	Header  string
}

func NewAuthorizer(service domainAccess.IAccessUsecase, header string) *Authorizer {
	if header == "" {
		header = domainAccess.DefaultTokenHeader
	}
	return &Authorizer{Service: service, Header: header}
}

func (h *Authorizer) Handle(ctx context.Context, req events.APIGatewayCustomAuthorizerRequestTypeRequest) (resp events.APIGatewayCustomAuthorizerResponse, err error) {
	defer shield("authorizer", &err)

	resp, err = h.Service.Authorize(ctx, headerValue(req.Headers, h.Header), req.MethodArn)
	if err != nil {
		var unauthorized pkgError.UnauthorizedError
		if errors.As(err, &unauthorized) {
			return events.APIGatewayCustomAuthorizerResponse{}, ErrUnauthorized
		}
		return events.APIGatewayCustomAuthorizerResponse{}, err
	}
	return resp, nil
}

// headerValue looks name up case-insensitively. A missing header yields "".
func headerValue(headers map[string]string, name string) string {
	if v, ok := headers[name]; ok {
		return v
	}
	for k, v := range headers {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return ""
}
