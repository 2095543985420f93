package usecase

import (
	"context"
	"errors"
	"testing"

	domainImage "github.com/photoframe/photoframe/domains/image"
	pkgError "github.com/photoframe/photoframe/pkg/error"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	objects  []domainImage.Object
	data     map[string][]byte
	listErr  error
	fetchErr error
	prefixes []string
	fetched  []string
}

func (s *stubSource) List(ctx context.Context, prefix string) ([]domainImage.Object, error) {
	s.prefixes = append(s.prefixes, prefix)
	return s.objects, s.listErr
}

func (s *stubSource) Fetch(ctx context.Context, key string) (domainImage.Image, error) {
	s.fetched = append(s.fetched, key)
	if s.fetchErr != nil {
		return domainImage.Image{}, s.fetchErr
	}
	data := s.data[key]
	return domainImage.Image{Key: key, Data: data}, nil
}

type upperTransformer struct{ calls int }

func (u *upperTransformer) Transform(img domainImage.Image) (domainImage.Image, error) {
	u.calls++
	img.Data = append([]byte("fit:"), img.Data...)
	return img, nil
}

func TestImage_RandomPicksAmongNonEmptyObjects(t *testing.T) {
	source := &stubSource{
		objects: []domainImage.Object{
			{Key: "public/", Size: 0},
			{Key: "public/a.jpg", Size: 10},
			{Key: "public/b.jpg", Size: 20},
			{Key: "public/c.jpg", Size: 30},
		},
		data: map[string][]byte{
			"public/a.jpg": []byte("aaa"),
			"public/b.jpg": []byte("bbb"),
			"public/c.jpg": []byte("ccc"),
		},
	}
	svc := NewImageService(source, nil, "public")

	seen := map[string]int{}
	for i := 0; i < 300; i++ {
		img, err := svc.Random(context.Background())
		require.NoError(t, err)
		seen[img.Key]++
		assert.Equal(t, domainImage.ContentTypeJPEG, img.ContentType)
		assert.Equal(t, int64(3), img.ContentLength)
	}

	assert.NotContains(t, seen, "public/")
	assert.Len(t, seen, 3, "every candidate should be reachable")
	assert.Equal(t, "public", source.prefixes[0])
}

func TestImage_PickIndexMapsToCandidate(t *testing.T) {
	source := &stubSource{
		objects: []domainImage.Object{
			{Key: "public/", Size: 0},
			{Key: "public/a.jpg", Size: 10},
			{Key: "public/b.jpg", Size: 20},
		},
		data: map[string][]byte{"public/b.jpg": []byte("bbb")},
	}
	svc := NewImageService(source, nil, "public").(*imageService)
	var gotN int
	svc.pick = func(n int) int { gotN = n; return n - 1 }

	img, err := svc.Random(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, gotN)
	assert.Equal(t, "public/b.jpg", img.Key)
	assert.Equal(t, []byte("bbb"), img.Data)
}

func TestImage_EmptyBucketIsNotFound(t *testing.T) {
	for _, objects := range [][]domainImage.Object{
		nil,
		{{Key: "public/", Size: 0}},
	} {
		source := &stubSource{objects: objects}
		svc := NewImageService(source, nil, "public")

		_, err := svc.Random(context.Background())

		var notFound pkgError.NotFoundError
		assert.True(t, errors.As(err, &notFound))
		assert.Empty(t, source.fetched)
	}
}

func TestImage_ListAndFetchErrors(t *testing.T) {
	svc := NewImageService(&stubSource{listErr: errors.New("access denied")}, nil, "public")
	_, err := svc.Random(context.Background())
	assert.ErrorContains(t, err, "access denied")

	svc = NewImageService(&stubSource{
		objects:  []domainImage.Object{{Key: "public/a.jpg", Size: 1}},
		fetchErr: errors.New("no such key"),
	}, nil, "public")
	_, err = svc.Random(context.Background())
	assert.ErrorContains(t, err, "no such key")
}

func TestImage_TransformerApplied(t *testing.T) {
	source := &stubSource{
		objects: []domainImage.Object{{Key: "public/a.jpg", Size: 3}},
		data:    map[string][]byte{"public/a.jpg": []byte("aaa")},
	}
	transformer := &upperTransformer{}
	svc := NewImageService(source, transformer, "public")

	img, err := svc.Random(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, transformer.calls)
	assert.Equal(t, []byte("fit:aaa"), img.Data)
	assert.Equal(t, int64(7), img.ContentLength)
}
