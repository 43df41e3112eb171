package services

import (
	"context"
	"errors"

	"github.com/anonto42/shayari-hub/backend/internal/repositories"
	"go.uber.org/zap"
)

// Reconciler rewrites every shayari's cached counters from the relational rows.
type Reconciler struct {
	shayaris repositories.ShayariRepository
	likes    repositories.LikeRepository
	comments repositories.CommentRepository
	logger   *zap.Logger
}

func NewReconciler(
	shayaris repositories.ShayariRepository,
	likes repositories.LikeRepository,
	comments repositories.CommentRepository,
	logger *zap.Logger,
) *Reconciler {
	return &Reconciler{shayaris: shayaris, likes: likes, comments: comments, logger: logger}
}

// Reconcile returns how many shayaris were processed. It stops at the first
// storage error or when ctx is done.
func (r *Reconciler) Reconcile(ctx context.Context) (int, error) {
	ids, err := r.shayaris.ListShayariIDs(ctx)
	if err != nil {
		return 0, err
	}

	for i, id := range ids {
		if err := ctx.Err(); err != nil {
			return i, err
		}

		likes, err := r.likes.CountByShayari(ctx, id)
		if err != nil {
			return i, err
		}
		comments, err := r.comments.CountByShayari(ctx, id)
		if err != nil {
			return i, err
		}

		if err := r.shayaris.SetLikesCount(ctx, id, likes); err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return i, err
		}
		if err := r.shayaris.SetCommentsCount(ctx, id, comments); err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return i, err
		}
		r.logger.Debug("shayari reconciled", zap.String("shayari_id", id),
			zap.Int64("likes", likes), zap.Int64("comments", comments))
	}
	return len(ids), nil
}
