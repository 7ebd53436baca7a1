// Package blog holds the domain model and the DynamoDB-backed stores for
// articles and comments.
package blog

import "errors"

// ErrNotFound is returned when the addressed article or comment does not
// exist, including when a conditional write failed its existence precondition.
var ErrNotFound = errors.New("blog: not found")

// Article is a full blog article, keyed by its URL title.
type Article struct {
	URLTitle    string `json:"urlTitle" dynamodbav:"urlTitle"`
	Title       string `json:"title" dynamodbav:"title"`
	Description string `json:"description" dynamodbav:"description"`
	Tag         string `json:"tag" dynamodbav:"tag"`
	Content     string `json:"content" dynamodbav:"content"`
	Published   string `json:"published" dynamodbav:"published"`
}

// ArticleDescription is the projection served in article listings.
type ArticleDescription struct {
	URLTitle    string `json:"urlTitle" dynamodbav:"urlTitle"`
	Title       string `json:"title" dynamodbav:"title"`
	Description string `json:"description" dynamodbav:"description"`
	Tag         string `json:"tag" dynamodbav:"tag"`
	Published   string `json:"published" dynamodbav:"published"`
}

// Comment belongs to one article. Replies are nested under Resps, keyed by
// reply id.
type Comment struct {
	ArticleURLTitle string          `json:"articleUrlTitle" dynamodbav:"articleUrlTitle"`
	ID              string          `json:"id" dynamodbav:"id"`
	Author          string          `json:"author" dynamodbav:"author"`
	Content         string          `json:"content" dynamodbav:"content"`
	Resps           map[string]Resp `json:"resps" dynamodbav:"resps"`
}

// Resp is a reply to a comment.
type Resp struct {
	Author  string `json:"author" dynamodbav:"author"`
	Content string `json:"content" dynamodbav:"content"`
}
