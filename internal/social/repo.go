package social

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/fittrack/internal/telemetry/tracing"
	"github.com/2beens/fittrack/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

const postColumns = `id, user_id, user_name, user_avatar, content, image_url, likes, liked_by, comments, created_at`

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// Feed returns up to limit posts, newest first, and whether older ones exist.
func (r *Repo) Feed(ctx context.Context, limit, offset int) (_ *Page, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.social.feed")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("limit", limit))
	span.SetAttributes(attribute.Int("offset", offset))

	// one extra row tells if there is a next page
	rows, err := r.db.Query(
		ctx,
		`SELECT `+postColumns+`
			FROM social_post
			ORDER BY created_at DESC, id DESC
			LIMIT $1 OFFSET $2;`,
		limit+1, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	page := &Page{Posts: []Post{}}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		page.Posts = append(page.Posts, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(page.Posts) > limit {
		page.Posts = page.Posts[:limit]
		page.HasMore = true
	}
	return page, nil
}

func (r *Repo) CreatePost(ctx context.Context, p *Post) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.social.createPost")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO social_post (id, user_id, user_name, user_avatar, content, image_url, likes, liked_by, comments, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, 0, '{}', 0, $7);`,
		p.ID, p.UserID, p.UserName, p.UserAvatar, p.Content, p.ImageURL, p.CreatedAt,
	)
	return err
}

// ToggleLike flips the like of userID on the post in a single statement, so
// concurrent toggles of different users never lose an update.
func (r *Repo) ToggleLike(ctx context.Context, postID, userID string) (_ *LikeState, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.social.toggleLike")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("post.id", postID))

	var state LikeState
	err = r.db.QueryRow(
		ctx,
		`UPDATE social_post
			SET liked_by = CASE WHEN $2::text = ANY (liked_by)
					THEN array_remove(liked_by, $2::text)
					ELSE array_append(liked_by, $2::text) END,
				likes = CASE WHEN $2::text = ANY (liked_by)
					THEN GREATEST(likes - 1, 0)
					ELSE likes + 1 END
			WHERE id = $1
			RETURNING $2::text = ANY (liked_by), likes;`,
		postID, userID,
	).Scan(&state.Liked, &state.Likes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	span.SetAttributes(attribute.Bool("liked", state.Liked))
	return &state, nil
}

// CreateComment stores the comment and bumps the post comment counter in one transaction.
func (r *Repo) CreateComment(ctx context.Context, c *Comment) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.social.createComment")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("post.id", c.PostID))

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				err = errors.Join(err, fmt.Errorf("rollback: %w", rollbackErr))
			}
		} else {
			err = tx.Commit(ctx)
		}
	}()

	tag, err := tx.Exec(
		ctx,
		`UPDATE social_post SET comments = comments + 1 WHERE id = $1;`,
		c.PostID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrPostNotFound
	}

	_, err = tx.Exec(
		ctx,
		`INSERT INTO post_comment (id, post_id, user_id, user_name, content, created_at)
			VALUES ($1, $2, $3, $4, $5, $6);`,
		c.ID, c.PostID, c.UserID, c.UserName, c.Content, c.CreatedAt,
	)
	if err != nil {
		if pkg.IsForeignKeyViolationError(err) {
			return ErrPostNotFound
		}
		return err
	}
	return nil
}

// DeleteComment removes the comment only when userID wrote it, and decrements
// the post comment counter in the same transaction.
func (r *Repo) DeleteComment(ctx context.Context, commentID, userID string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.social.deleteComment")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("comment.id", commentID))

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				err = errors.Join(err, fmt.Errorf("rollback: %w", rollbackErr))
			}
		} else {
			err = tx.Commit(ctx)
		}
	}()

	var postID string
	err = tx.QueryRow(
		ctx,
		`DELETE FROM post_comment WHERE id = $1 AND user_id = $2 RETURNING post_id;`,
		commentID, userID,
	).Scan(&postID)
	if errors.Is(err, pgx.ErrNoRows) {
		var exists bool
		if err := tx.QueryRow(
			ctx,
			`SELECT EXISTS (SELECT 1 FROM post_comment WHERE id = $1);`,
			commentID,
		).Scan(&exists); err != nil {
			return err
		}
		if exists {
			return ErrNotCommentOwner
		}
		return ErrCommentNotFound
	}
	if err != nil {
		return err
	}

	_, err = tx.Exec(
		ctx,
		`UPDATE social_post SET comments = GREATEST(comments - 1, 0) WHERE id = $1;`,
		postID,
	)
	return err
}

// Comments lists the comments of a post, oldest first.
func (r *Repo) Comments(ctx context.Context, postID string) (_ []Comment, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.social.comments")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("post.id", postID))

	var exists bool
	if err := r.db.QueryRow(
		ctx,
		`SELECT EXISTS (SELECT 1 FROM social_post WHERE id = $1);`,
		postID,
	).Scan(&exists); err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrPostNotFound
	}

	rows, err := r.db.Query(
		ctx,
		`SELECT id, post_id, user_id, user_name, content, created_at
			FROM post_comment
			WHERE post_id = $1
			ORDER BY created_at, id;`,
		postID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []Comment{}
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.UserID, &c.UserName, &c.Content, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("row scan: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return comments, nil
}

// RepairCounters resets likes and comments of every drifted post to the values
// derived from liked_by and post_comment. It returns the number of repaired posts.
func (r *Repo) RepairCounters(ctx context.Context) (_ int64, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.social.repairCounters")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := r.db.Exec(
		ctx,
		`UPDATE social_post p
			SET comments = live.comments,
				likes = cardinality(p.liked_by)
			FROM (
				SELECT sp.id, COUNT(pc.id) AS comments
					FROM social_post sp
					LEFT JOIN post_comment pc ON pc.post_id = sp.id
					GROUP BY sp.id
			) live
			WHERE live.id = p.id
				AND (p.comments <> live.comments OR p.likes <> cardinality(p.liked_by));`,
	)
	if err != nil {
		return 0, err
	}

	span.SetAttributes(attribute.Int64("repaired", tag.RowsAffected()))
	return tag.RowsAffected(), nil
}

func scanPost(row pgx.Row) (*Post, error) {
	var p Post
	if err := row.Scan(
		&p.ID, &p.UserID, &p.UserName, &p.UserAvatar, &p.Content, &p.ImageURL,
		&p.Likes, &p.LikedBy, &p.Comments, &p.CreatedAt,
	); err != nil {
		return nil, fmt.Errorf("row scan: %w", err)
	}
	if p.LikedBy == nil {
		p.LikedBy = []string{}
	}
	return &p, nil
}
