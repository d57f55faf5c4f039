package entity

type MediaFile struct {
	Base
	Filename   string `gorm:"not null"`
	FilePath   string `gorm:"not null"`
	FileURL    string `gorm:"not null"`
	MimeType   string `gorm:"not null"`
	FileSize   int64  `gorm:"not null"`
	UploaderID string `gorm:"not null;index"`
}
