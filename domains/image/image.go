package image

import "context"

const ContentTypeJPEG = "image/jpeg"

// Object is one entry of a listing. Size is in bytes.
type Object struct {
	Key  string
	Size int64
}

type Image struct {
	Key           string
	Data          []byte
	ContentLength int64
	ContentType   string
}

// Source lists and fetches stored images.
type Source interface {
	List(ctx context.Context, prefix string) ([]Object, error)
	Fetch(ctx context.Context, key string) (Image, error)
}

// Transformer adapts an image to the frame before it is served.
type Transformer interface {
	Transform(img Image) (Image, error)
}

type IImageUsecase interface {
	Random(ctx context.Context) (Image, error)
}
