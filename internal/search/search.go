package search

import (
	"context"
	"errors"
	"path"

	"github.com/WeepingDogel/simple-social-board-api/pkg/logger"
	"github.com/WeepingDogel/simple-social-board-api/pkg/xcontext"
	"github.com/blevesearch/bleve/v2"
	"github.com/puzpuzpuz/xsync"
)

const PostDoc = "post"

type PostData struct {
	Content string
}

// Caller indexes and queries documents. The only implementation is an
// in-process bleve index, the interface exists so domains do not depend on
// bleve directly.
type Caller interface {
	IndexPost(ctx context.Context, id string, data PostData) error
	DeletePost(ctx context.Context, id string) error
	SearchPost(ctx context.Context, query string, offset, limit int) ([]string, error)
	Close()
}

type bleveIndex struct {
	logger   logger.Logger
	indexDir string
	indexes  *xsync.MapOf[string, bleve.Index]
}

// NewBleveIndex opens indexes lazily under the configured index directory.
// An empty directory means memory-only indexes, which tests rely on.
func NewBleveIndex(ctx context.Context) *bleveIndex {
	return &bleveIndex{
		logger:   xcontext.Logger(ctx),
		indexDir: xcontext.Configs(ctx).Search.IndexDir,
		indexes:  xsync.NewMapOf[bleve.Index](),
	}
}

func (i *bleveIndex) IndexPost(ctx context.Context, id string, data PostData) error {
	return i.index(PostDoc, id, data)
}

func (i *bleveIndex) DeletePost(ctx context.Context, id string) error {
	index, err := i.getIndexByDocument(PostDoc)
	if err != nil {
		return err
	}

	return index.Delete(id)
}

func (i *bleveIndex) SearchPost(ctx context.Context, query string, offset, limit int) ([]string, error) {
	index, err := i.getIndexByDocument(PostDoc)
	if err != nil {
		return nil, err
	}

	req := bleve.NewSearchRequestOptions(bleve.NewMatchQuery(query), limit, offset, false)
	searchResults, err := index.Search(req)
	if err != nil {
		return nil, err
	}

	ids := []string{}
	for _, match := range searchResults.Hits {
		ids = append(ids, match.ID)
	}

	return ids, nil
}

func (i *bleveIndex) Close() {
	i.logger.Infof("Closing all indexers...")

	i.indexes.Range(func(document string, index bleve.Index) bool {
		if err := index.Close(); err != nil {
			i.logger.Errorf("Cannot close indexer %s: %v", document, err)
		}

		return true
	})

	i.logger.Infof("Closing all indexers...done")
}

func (i *bleveIndex) index(document, id string, data any) error {
	index, err := i.getIndexByDocument(document)
	if err != nil {
		return err
	}

	record, err := index.Document(id)
	if err != nil {
		return err
	}

	// Delete if the record existed.
	if record != nil {
		if err := index.Delete(id); err != nil {
			return err
		}
	}

	return index.Index(id, data)
}

func (i *bleveIndex) getIndexByDocument(document string) (bleve.Index, error) {
	index, ok := i.indexes.Load(document)
	if !ok {
		i.logger.Infof("A new document index is added: %s", document)

		var err error
		if i.indexDir == "" {
			index, err = bleve.NewMemOnly(bleve.NewIndexMapping())
			if err != nil {
				return nil, err
			}
		} else {
			indexPath := path.Join(i.indexDir, document)
			index, err = bleve.New(indexPath, bleve.NewIndexMapping())
			if err != nil {
				if !errors.Is(err, bleve.ErrorIndexPathExists) {
					return nil, err
				}

				index, err = bleve.Open(indexPath)
				if err != nil {
					return nil, err
				}
			}
		}

		i.indexes.Store(document, index)
	}

	return index, nil
}
