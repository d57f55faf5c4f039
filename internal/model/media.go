package model

type MediaFile struct {
	ID        string `json:"id"`
	Filename  string `json:"filename"`
	FileURL   string `json:"file_url"`
	MimeType  string `json:"mime_type"`
	FileSize  int64  `json:"file_size"`
	CreatedAt string `json:"created_at"`
}

// UploadImageRequest is bound from a multipart form with a single "file" part.
type UploadImageRequest struct{}

type UploadImageResponse MediaFile

// UploadImagesRequest is bound from a multipart form with repeated "files" parts.
type UploadImagesRequest struct{}

type UploadImagesResponse struct {
	Files []MediaFile `json:"files"`
}
