package postgres

import (
	"context"
	"errors"

	"github.com/BloggingApp/post-editor/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postRepo struct {
	db *pgxpool.Pool
}

func newPostRepo(db *pgxpool.Pool) Post {
	return &postRepo{
		db: db,
	}
}

func (r *postRepo) Create(ctx context.Context, post model.Post) (*model.Post, error) {
	if _, err := r.db.Exec(
		ctx,
		"INSERT INTO posts(id, title, body, description, user_email) VALUES($1, $2, $3, $4, $5)",
		*post.ID,
		post.Title,
		post.Body,
		post.Description,
		post.AuthorEmail,
	); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, ErrDuplicatePostID
		}
		return nil, err
	}

	return &post, nil
}

func (r *postRepo) FindAll(ctx context.Context) ([]*model.Post, error) {
	rows, err := r.db.Query(ctx, "SELECT p.id, p.title, p.body, p.description, p.user_email FROM posts p ORDER BY p.id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []*model.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return posts, nil
}

func (r *postRepo) FindByID(ctx context.Context, id int64) (*model.Post, error) {
	row := r.db.QueryRow(ctx, "SELECT p.id, p.title, p.body, p.description, p.user_email FROM posts p WHERE p.id = $1", id)
	return scanPost(row)
}

// Update overwrites the editable fields. The author is never changed.
func (r *postRepo) Update(ctx context.Context, post model.Post) (*model.Post, error) {
	row := r.db.QueryRow(
		ctx,
		`UPDATE posts SET title = $1, body = $2, description = $3
		WHERE id = $4
		RETURNING id, title, body, description, user_email`,
		post.Title,
		post.Body,
		post.Description,
		*post.ID,
	)
	return scanPost(row)
}

func (r *postRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM posts WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanPost(row pgx.Row) (*model.Post, error) {
	var (
		post model.Post
		id   int64
	)
	if err := row.Scan(
		&id,
		&post.Title,
		&post.Body,
		&post.Description,
		&post.AuthorEmail,
	); err != nil {
		return nil, err
	}
	post.ID = &id

	return &post, nil
}
