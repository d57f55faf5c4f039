package domain

import (
	"context"

	"github.com/WeepingDogel/simple-social-board-api/internal/common"
	"github.com/WeepingDogel/simple-social-board-api/internal/entity"
	"github.com/WeepingDogel/simple-social-board-api/internal/model"
	"github.com/WeepingDogel/simple-social-board-api/internal/repository"
	"github.com/WeepingDogel/simple-social-board-api/pkg/errorx"
	"github.com/WeepingDogel/simple-social-board-api/pkg/storage"
	"github.com/WeepingDogel/simple-social-board-api/pkg/xcontext"
	"github.com/google/uuid"
)

type FileDomain interface {
	UploadImage(context.Context, *model.UploadImageRequest) (*model.UploadImageResponse, error)
	UploadImages(context.Context, *model.UploadImagesRequest) (*model.UploadImagesResponse, error)
}

type fileDomain struct {
	mediaFileRepo repository.MediaFileRepository
	fileStorage   storage.Storage
}

func NewFileDomain(
	mediaFileRepo repository.MediaFileRepository,
	fileStorage storage.Storage,
) *fileDomain {
	return &fileDomain{
		mediaFileRepo: mediaFileRepo,
		fileStorage:   fileStorage,
	}
}

func (d *fileDomain) UploadImage(
	ctx context.Context, req *model.UploadImageRequest,
) (*model.UploadImageResponse, error) {
	uploaded, err := common.ProcessImage(ctx, d.fileStorage, "file")
	if err != nil {
		return nil, err
	}

	file := d.newMediaFile(ctx, uploaded)
	if err := d.mediaFileRepo.Create(ctx, file); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot save media file: %v", err)
		return nil, errorx.Unknown
	}

	resp := model.UploadImageResponse(model.ConvertMediaFile(file))
	return &resp, nil
}

func (d *fileDomain) UploadImages(
	ctx context.Context, req *model.UploadImagesRequest,
) (*model.UploadImagesResponse, error) {
	uploaded, err := common.ProcessImages(ctx, d.fileStorage, "files")
	if err != nil {
		return nil, err
	}

	files := make([]*entity.MediaFile, 0, len(uploaded))
	for _, img := range uploaded {
		files = append(files, d.newMediaFile(ctx, img))
	}

	if err := d.mediaFileRepo.BulkInsert(ctx, files); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot save media files: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.UploadImagesResponse{Files: []model.MediaFile{}}
	for _, file := range files {
		resp.Files = append(resp.Files, model.ConvertMediaFile(file))
	}

	return resp, nil
}

func (d *fileDomain) newMediaFile(ctx context.Context, img *common.UploadedImage) *entity.MediaFile {
	return &entity.MediaFile{
		Base:       entity.Base{ID: uuid.NewString()},
		Filename:   img.Filename,
		FilePath:   img.Original.FilePath,
		FileURL:    img.Original.Url,
		MimeType:   img.Mime,
		FileSize:   img.Size,
		UploaderID: xcontext.RequestUserID(ctx),
	}
}
