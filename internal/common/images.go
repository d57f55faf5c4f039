package common

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"mime/multipart"

	"github.com/WeepingDogel/simple-social-board-api/pkg/errorx"
	"github.com/WeepingDogel/simple-social-board-api/pkg/storage"
	"github.com/WeepingDogel/simple-social-board-api/pkg/xcontext"
	"github.com/nfnt/resize"
	"golang.org/x/exp/slices"
	"golang.org/x/image/webp"
)

const thumbnailMaxEdge = 512

var allowedMimeTypes = []string{
	"image/jpeg", "image/png", "image/gif", "image/webp", "application/octet-stream",
}

// UploadedImage is the result of storing one multipart image part: the
// original bytes plus a bounded thumbnail variant.
type UploadedImage struct {
	Original  *storage.UploadResponse
	Thumbnail *storage.UploadResponse
	Filename  string
	Mime      string
	Size      int64
}

// ProcessImage reads a single image part under the given form key, validates
// it and uploads the original together with a thumbnail variant.
func ProcessImage(ctx context.Context, fileStorage storage.Storage, key string) (*UploadedImage, error) {
	req := xcontext.HTTPRequest(ctx)
	if err := req.ParseMultipartForm(xcontext.Configs(ctx).File.MaxSize); err != nil {
		return nil, errorx.New(errorx.BadRequest, "Request must be multipart form")
	}

	file, header, err := req.FormFile(key)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Error retrieving the file")
	}
	defer file.Close()

	return uploadImagePart(ctx, fileStorage, file, header)
}

// ProcessImages handles a repeated form key and uploads every part. It fails
// the whole request if any part is invalid.
func ProcessImages(ctx context.Context, fileStorage storage.Storage, key string) ([]*UploadedImage, error) {
	req := xcontext.HTTPRequest(ctx)
	if err := req.ParseMultipartForm(xcontext.Configs(ctx).File.MaxSize); err != nil {
		return nil, errorx.New(errorx.BadRequest, "Request must be multipart form")
	}

	if req.MultipartForm == nil {
		return nil, errorx.New(errorx.BadRequest, "Request must be multipart form")
	}

	headers := req.MultipartForm.File[key]
	if len(headers) == 0 {
		return nil, errorx.New(errorx.BadRequest, "No file provided")
	}

	maxImages := xcontext.Configs(ctx).File.MaxImages
	if len(headers) > maxImages {
		return nil, errorx.New(errorx.BadRequest, "Cannot upload more than %d images", maxImages)
	}

	uploaded := make([]*UploadedImage, 0, len(headers))
	for _, header := range headers {
		file, err := header.Open()
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Error retrieving the file")
		}

		img, err := uploadImagePart(ctx, fileStorage, file, header)
		file.Close()
		if err != nil {
			return nil, err
		}

		uploaded = append(uploaded, img)
	}

	return uploaded, nil
}

func uploadImagePart(
	ctx context.Context,
	fileStorage storage.Storage,
	file multipart.File,
	header *multipart.FileHeader,
) (*UploadedImage, error) {
	maxSize := xcontext.Configs(ctx).File.MaxSize
	if header.Size > maxSize {
		return nil, errorx.New(errorx.PayloadTooLarge,
			"The file is too large, max size is %d bytes", maxSize)
	}

	data, err := io.ReadAll(io.LimitReader(file, maxSize+1))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot read upload: %v", err)
		return nil, errorx.Unknown
	}

	if int64(len(data)) > maxSize {
		return nil, errorx.New(errorx.PayloadTooLarge,
			"The file is too large, max size is %d bytes", maxSize)
	}

	mime := header.Header.Get("Content-Type")
	if !slices.Contains(allowedMimeTypes, mime) {
		return nil, errorx.New(errorx.BadRequest, "File type %s is not allowed", mime)
	}

	img, err := decodeImg(mime, bytes.NewReader(data))
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "File type %s is not allowed", mime)
	}

	original, err := fileStorage.Upload(ctx, &storage.UploadObject{
		FileName: header.Filename,
		Mime:     mime,
		Data:     data,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot upload image: %v", err)
		return nil, errorx.Unknown
	}

	thumb := resize.Thumbnail(thumbnailMaxEdge, thumbnailMaxEdge, img, resize.Lanczos2)
	thumbData, err := encodeImg(mime, thumb)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot encode thumbnail: %v", err)
		return nil, errorx.Unknown
	}

	thumbnail, err := fileStorage.Upload(ctx, &storage.UploadObject{
		Prefix:   "thumb",
		FileName: header.Filename,
		Mime:     mime,
		Data:     thumbData,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot upload thumbnail: %v", err)
		return nil, errorx.Unknown
	}

	return &UploadedImage{
		Original:  original,
		Thumbnail: thumbnail,
		Filename:  header.Filename,
		Mime:      mime,
		Size:      int64(len(data)),
	}, nil
}

func decodeImg(mime string, data io.Reader) (img image.Image, err error) {
	switch mime {
	case "image/jpeg":
		img, err = jpeg.Decode(data)
	case "image/png", "application/octet-stream":
		img, err = png.Decode(data)
	case "image/gif":
		img, err = gif.Decode(data)
	case "image/webp":
		img, err = webp.Decode(data)
	default:
		return nil, fmt.Errorf("only jpeg, gif, png or webp is accepted")
	}
	return img, err
}

func encodeImg(mime string, img image.Image) (b []byte, err error) {
	buf := new(bytes.Buffer)

	switch mime {
	case "image/jpeg":
		err = jpeg.Encode(buf, img, nil)
	case "image/png", "application/octet-stream":
		err = png.Encode(buf, img)
	case "image/gif":
		err = gif.Encode(buf, img, nil)
	case "image/webp":
		// x/image/webp only decodes, webp thumbnails are stored as png.
		err = png.Encode(buf, img)
	default:
		return nil, fmt.Errorf("only jpeg, gif, png or webp is accepted")
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), err
}
