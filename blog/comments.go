package blog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/google/uuid"
	"github.com/juliuskrahn/blog-backend/storage"
)

// CommentStore is the comment persistence contract consumed by the handlers.
type CommentStore interface {
	ForArticle(ctx context.Context, articleURLTitle string) ([]Comment, error)
	Create(ctx context.Context, comment Comment) (string, error)
	Delete(ctx context.Context, articleURLTitle, id string) error
	AddResp(ctx context.Context, articleURLTitle, commentID, respID string, resp Resp) error
	DeleteResp(ctx context.Context, articleURLTitle, commentID, respID string) error
}

// CommentTable implements CommentStore on a DynamoDB table keyed by
// (articleUrlTitle, id).
type CommentTable struct {
	table *storage.Table
}

// NewCommentTable creates the DynamoDB-backed comment store.
func NewCommentTable(table *storage.Table) *CommentTable {
	return &CommentTable{table: table}
}

func commentKey(articleURLTitle, id string) storage.Item {
	return storage.Item{
		"articleUrlTitle": {S: aws.String(articleURLTitle)},
		"id":              {S: aws.String(id)},
	}
}

// NewCommentID builds a comment or reply identifier: a UTC timestamp prefix
// for sort order, a UUID suffix for uniqueness.
func NewCommentID() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05.000000") + "#" + uuid.NewString()
}

// ForArticle returns every comment on the article, oldest first (the id's
// timestamp prefix is the sort key).
func (s *CommentTable) ForArticle(ctx context.Context, articleURLTitle string) ([]Comment, error) {
	items, err := s.table.QueryAll(ctx, &dynamodb.QueryInput{
		KeyConditionExpression: aws.String("articleUrlTitle = :articleUrlTitle"),
		ExpressionAttributeValues: storage.Item{
			":articleUrlTitle": {S: aws.String(articleURLTitle)},
		},
	})
	if err != nil {
		return nil, err
	}
	comments := make([]Comment, 0, len(items))
	if err := dynamodbattribute.UnmarshalListOfMaps(items, &comments); err != nil {
		return nil, fmt.Errorf("unmarshal comments: %w", err)
	}
	return comments, nil
}

// Create stores the comment under a generated id and returns that id. The
// comment starts with an empty reply map.
func (s *CommentTable) Create(ctx context.Context, comment Comment) (string, error) {
	comment.ID = NewCommentID()
	if comment.Resps == nil {
		comment.Resps = map[string]Resp{}
	}
	item, err := dynamodbattribute.MarshalMap(comment)
	if err != nil {
		return "", fmt.Errorf("marshal comment: %w", err)
	}
	if err := s.table.Put(ctx, item); err != nil {
		return "", err
	}
	return comment.ID, nil
}

// Delete removes the comment. Deleting an absent comment is not an error.
func (s *CommentTable) Delete(ctx context.Context, articleURLTitle, id string) error {
	return s.table.Delete(ctx, commentKey(articleURLTitle, id))
}

// AddResp attaches a reply to an existing comment. Returns ErrNotFound when
// the comment does not exist.
func (s *CommentTable) AddResp(ctx context.Context, articleURLTitle, commentID, respID string, resp Resp) error {
	value, err := dynamodbattribute.Marshal(resp)
	if err != nil {
		return fmt.Errorf("marshal resp: %w", err)
	}
	err = s.table.Update(ctx, storage.UpdateSpec{
		Key:        commentKey(articleURLTitle, commentID),
		Expression: "SET resps.#respId = :resp",
		Names: map[string]*string{
			"#respId": aws.String(respID),
		},
		Values:        storage.Item{":resp": value},
		RequireExists: "id",
	})
	if errors.Is(err, storage.ErrPreconditionFailed) {
		return ErrNotFound
	}
	return err
}

// DeleteResp removes a reply from an existing comment. Returns ErrNotFound
// when the comment does not exist.
func (s *CommentTable) DeleteResp(ctx context.Context, articleURLTitle, commentID, respID string) error {
	err := s.table.Update(ctx, storage.UpdateSpec{
		Key:        commentKey(articleURLTitle, commentID),
		Expression: "REMOVE resps.#respId",
		Names: map[string]*string{
			"#respId": aws.String(respID),
		},
		RequireExists: "id",
	})
	if errors.Is(err, storage.ErrPreconditionFailed) {
		return ErrNotFound
	}
	return err
}
