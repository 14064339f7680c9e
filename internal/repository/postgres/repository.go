package postgres

import (
	"context"

	"github.com/BloggingApp/post-editor/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Missing rows are reported as pgx.ErrNoRows.
type Post interface {
	Create(ctx context.Context, post model.Post) (*model.Post, error)
	FindAll(ctx context.Context) ([]*model.Post, error)
	FindByID(ctx context.Context, id int64) (*model.Post, error)
	Update(ctx context.Context, post model.Post) (*model.Post, error)
	Delete(ctx context.Context, id int64) error
}

type PostgresRepository struct {
	Post
}

func New(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{
		Post: newPostRepo(db),
	}
}
