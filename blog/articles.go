package blog

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/juliuskrahn/blog-backend/storage"
)

// TagIndex is the global secondary index on the article table keyed by tag,
// projecting the description attributes.
const TagIndex = "tagIndex"

// ArticleStore is the article persistence contract consumed by the handlers.
type ArticleStore interface {
	Get(ctx context.Context, urlTitle string) (*Article, error)
	Put(ctx context.Context, article Article) error
	Update(ctx context.Context, article Article) error
	Delete(ctx context.Context, urlTitle string) error
	Descriptions(ctx context.Context) ([]ArticleDescription, error)
	ByTag(ctx context.Context, tag string) ([]ArticleDescription, error)
	Tags(ctx context.Context) ([]string, error)
}

// ArticleTable implements ArticleStore on a DynamoDB table.
type ArticleTable struct {
	table *storage.Table
}

// NewArticleTable creates the DynamoDB-backed article store.
func NewArticleTable(table *storage.Table) *ArticleTable {
	return &ArticleTable{table: table}
}

func articleKey(urlTitle string) storage.Item {
	return storage.Item{"urlTitle": {S: aws.String(urlTitle)}}
}

// Get fetches one article. Returns ErrNotFound when absent.
func (s *ArticleTable) Get(ctx context.Context, urlTitle string) (*Article, error) {
	item, err := s.table.Get(ctx, articleKey(urlTitle))
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrNotFound
	}
	var article Article
	if err := dynamodbattribute.UnmarshalMap(item, &article); err != nil {
		return nil, fmt.Errorf("unmarshal article: %w", err)
	}
	return &article, nil
}

// Put upserts the article.
func (s *ArticleTable) Put(ctx context.Context, article Article) error {
	item, err := dynamodbattribute.MarshalMap(article)
	if err != nil {
		return fmt.Errorf("marshal article: %w", err)
	}
	return s.table.Put(ctx, item)
}

// Update rewrites the mutable fields of an existing article. Returns
// ErrNotFound when the article does not exist; the write is conditional on the
// key being present.
func (s *ArticleTable) Update(ctx context.Context, article Article) error {
	err := s.table.Update(ctx, storage.UpdateSpec{
		Key:        articleKey(article.URLTitle),
		Expression: "SET title=:title, description=:description, tag=:tag, content=:content",
		Values: storage.Item{
			":title":       {S: aws.String(article.Title)},
			":description": {S: aws.String(article.Description)},
			":tag":         {S: aws.String(article.Tag)},
			":content":     {S: aws.String(article.Content)},
		},
		RequireExists: "urlTitle",
	})
	if errors.Is(err, storage.ErrPreconditionFailed) {
		return ErrNotFound
	}
	return err
}

// Delete removes the article. Deleting an absent article is not an error.
func (s *ArticleTable) Delete(ctx context.Context, urlTitle string) error {
	return s.table.Delete(ctx, articleKey(urlTitle))
}

// Descriptions returns the description projection of every article, newest
// first.
func (s *ArticleTable) Descriptions(ctx context.Context) ([]ArticleDescription, error) {
	items, err := s.table.ScanAll(ctx, &dynamodb.ScanInput{
		ProjectionExpression: aws.String("urlTitle,title,description,#tag,published"),
		ExpressionAttributeNames: map[string]*string{
			"#tag": aws.String("tag"),
		},
	})
	if err != nil {
		return nil, err
	}
	descriptions, err := unmarshalDescriptions(items)
	if err != nil {
		return nil, err
	}
	sort.Slice(descriptions, func(i, j int) bool {
		return descriptions[i].Published > descriptions[j].Published
	})
	return descriptions, nil
}

// ByTag returns the projected articles carrying tag, newest first.
func (s *ArticleTable) ByTag(ctx context.Context, tag string) ([]ArticleDescription, error) {
	items, err := s.table.QueryAll(ctx, &dynamodb.QueryInput{
		IndexName:              aws.String(TagIndex),
		KeyConditionExpression: aws.String("#tag = :tag"),
		ExpressionAttributeNames: map[string]*string{
			"#tag": aws.String("tag"),
		},
		ExpressionAttributeValues: storage.Item{
			":tag": {S: aws.String(tag)},
		},
		Select:           aws.String(dynamodb.SelectAllProjectedAttributes),
		ScanIndexForward: aws.Bool(false),
	})
	if err != nil {
		return nil, err
	}
	return unmarshalDescriptions(items)
}

// Tags returns the distinct set of tags in use.
func (s *ArticleTable) Tags(ctx context.Context) ([]string, error) {
	items, err := s.table.ScanAll(ctx, &dynamodb.ScanInput{
		IndexName:            aws.String(TagIndex),
		ProjectionExpression: aws.String("#tag"),
		ExpressionAttributeNames: map[string]*string{
			"#tag": aws.String("tag"),
		},
	})
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	var tags []string
	for _, item := range items {
		if attr, ok := item["tag"]; ok && attr.S != nil && !seen[*attr.S] {
			seen[*attr.S] = true
			tags = append(tags, *attr.S)
		}
	}
	sort.Strings(tags)
	return tags, nil
}

func unmarshalDescriptions(items []storage.Item) ([]ArticleDescription, error) {
	descriptions := make([]ArticleDescription, 0, len(items))
	if err := dynamodbattribute.UnmarshalListOfMaps(items, &descriptions); err != nil {
		return nil, fmt.Errorf("unmarshal article descriptions: %w", err)
	}
	return descriptions, nil
}
