// Package storage provides the narrow contracts the blog backend consumes
// from its external collaborators: DynamoDB tables (with transparent
// pagination and precondition-failure mapping) and "fetch secret by name"
// sources backed by AWS Secrets Manager, HashiCorp Vault or a static map.
package storage
