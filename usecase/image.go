package usecase

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/dustin/go-humanize"
	domainImage "github.com/photoframe/photoframe/domains/image"
	pkgError "github.com/photoframe/photoframe/pkg/error"
	"github.com/sirupsen/logrus"
)

type imageService struct {
	source      domainImage.Source
	transformer domainImage.Transformer
	prefix      string
	pick        func(n int) int
}

// NewImageService serves a uniformly random image stored under prefix. The
// transformer is optional.
func NewImageService(source domainImage.Source, transformer domainImage.Transformer, prefix string) domainImage.IImageUsecase {
	return &imageService{
		source:      source,
		transformer: transformer,
		prefix:      prefix,
		pick:        rand.IntN,
	}
}

func (s *imageService) Random(ctx context.Context) (domainImage.Image, error) {
	objects, err := s.source.List(ctx, s.prefix)
	if err != nil {
		return domainImage.Image{}, fmt.Errorf("failed to list images: %w", err)
	}

	// zero-size keys are folder markers
	candidates := make([]domainImage.Object, 0, len(objects))
	for _, obj := range objects {
		if obj.Size > 0 {
			candidates = append(candidates, obj)
		}
	}
	if len(candidates) == 0 {
		logrus.Errorf("[IMAGE] Bucket is empty under prefix %q", s.prefix)
		return domainImage.Image{}, pkgError.NotFoundError("bucket is empty")
	}

	chosen := candidates[s.pick(len(candidates))]
	logrus.Infof("[IMAGE] Selected %s (%s) out of %d candidates", chosen.Key, humanize.Bytes(uint64(chosen.Size)), len(candidates))

	img, err := s.source.Fetch(ctx, chosen.Key)
	if err != nil {
		return domainImage.Image{}, fmt.Errorf("failed to fetch image %s: %w", chosen.Key, err)
	}

	if s.transformer != nil {
		img, err = s.transformer.Transform(img)
		if err != nil {
			return domainImage.Image{}, fmt.Errorf("failed to fit image %s: %w", chosen.Key, err)
		}
	}

	if img.ContentLength == 0 {
		img.ContentLength = int64(len(img.Data))
	}
	img.ContentType = domainImage.ContentTypeJPEG
	return img, nil
}
