package lambda

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/aws/aws-lambda-go/events"
	domainImage "github.com/photoframe/photoframe/domains/image"
	pkgError "github.com/photoframe/photoframe/pkg/error"
	"github.com/photoframe/photoframe/pkg/utils"
	"github.com/sirupsen/logrus"
)

type Image struct {
	Service domainImage.IImageUsecase
}

func NewImage(service domainImage.IImageUsecase) *Image {
	return &Image{Service: service}
}

func (h *Image) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (resp events.APIGatewayProxyResponse, err error) {
	defer shield("image", &err)

	img, err := h.Service.Random(ctx)
	if err != nil {
		return errorResponse(err), nil
	}

	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Headers: map[string]string{
			"Content-Type":   img.ContentType,
			"Content-Length": strconv.FormatInt(img.ContentLength, 10),
		},
		Body:            base64.StdEncoding.EncodeToString(img.Data),
		IsBase64Encoded: true,
	}, nil
}

func errorResponse(err error) events.APIGatewayProxyResponse {
	res := utils.ResponseData{
		Status:  http.StatusInternalServerError,
		Code:    "INTERNAL_SERVER_ERROR",
		Message: "internal server error",
	}

	var generic pkgError.GenericError
	if errors.As(err, &generic) {
		res.Status = generic.StatusCode()
		res.Code = generic.ErrCode()
		res.Message = generic.Error()
	} else {
		logrus.WithError(err).Error("[LAMBDA] Image retrieval failed")
	}

	body, _ := json.Marshal(res)
	return events.APIGatewayProxyResponse{
		StatusCode: res.Status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(body),
	}
}
