package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/WeepingDogel/simple-social-board-api/config"
	"github.com/bwmarrin/snowflake"
)

type diskStorage struct {
	cfg  config.FileConfigs
	node *snowflake.Node
}

// NewDiskStorage stores uploads under cfg.MediaDir and serves them from
// cfg.StaticURL. Stored names are snowflake IDs so concurrent uploads of the
// same file name never collide.
func NewDiskStorage(cfg config.FileConfigs) (Storage, error) {
	node, err := snowflake.NewNode(1)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(cfg.MediaDir, 0o755); err != nil {
		return nil, err
	}

	return &diskStorage{cfg: cfg, node: node}, nil
}

func (s *diskStorage) generateName(object *UploadObject) string {
	ext := filepath.Ext(object.FileName)
	name := s.node.Generate().String() + ext
	if object.Prefix != "" {
		name = object.Prefix + "-" + name
	}

	return name
}

func (s *diskStorage) Upload(ctx context.Context, object *UploadObject) (*UploadResponse, error) {
	name := s.generateName(object)
	path := filepath.Join(s.cfg.MediaDir, name)
	if err := os.WriteFile(path, object.Data, 0o644); err != nil {
		return nil, fmt.Errorf("write %s: %w", path, err)
	}

	return &UploadResponse{
		Url:      strings.TrimSuffix(s.cfg.StaticURL, "/") + "/media/" + name,
		FileName: name,
		FilePath: path,
	}, nil
}

func (s *diskStorage) BulkUpload(ctx context.Context, objects []*UploadObject) ([]*UploadResponse, error) {
	out := make([]*UploadResponse, 0, len(objects))
	for _, o := range objects {
		resp, err := s.Upload(ctx, o)
		if err != nil {
			return nil, err
		}

		out = append(out, resp)
	}

	return out, nil
}
