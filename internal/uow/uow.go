// Package uow provides the request-scoped transactional boundary. Every
// repository obtained from one UnitOfWork shares a single database
// transaction, so reads see one consistent snapshot and Complete is the
// single point where staged writes become visible. There is no ambient
// persistence context: each request creates its own unit and either
// completes or rolls it back.
package uow

import (
	"context"

	"gorm.io/gorm"

	"match-service/internal/repository"
	"match-service/pkg/apperr"
)

// UnitOfWork batches the stores' writes into one atomic commit. A unit
// that is abandoned without Complete must be rolled back; handlers defer
// Rollback unconditionally, which is a no-op after a commit.
type UnitOfWork interface {
	Members() repository.MemberRepository
	Likes() repository.LikesRepository
	Messages() repository.MessageRepository
	// Complete commits every staged change. On error nothing was
	// persisted; callers report a generic failure and never retry here.
	Complete(ctx context.Context) error
	// Rollback discards staged changes. Safe to call after Complete.
	Rollback()
}

// Factory creates one UnitOfWork per request.
type Factory interface {
	New(ctx context.Context) (UnitOfWork, error)
}

type gormFactory struct {
	db *gorm.DB
}

func NewFactory(db *gorm.DB) Factory {
	return &gormFactory{db: db}
}

func (f *gormFactory) New(ctx context.Context) (UnitOfWork, error) {
	tx := f.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, apperr.Wrap(apperr.Persistence, "failed to start transaction", tx.Error)
	}
	return &gormUnitOfWork{tx: tx}, nil
}

type gormUnitOfWork struct {
	tx   *gorm.DB
	done bool

	members  repository.MemberRepository
	likes    repository.LikesRepository
	messages repository.MessageRepository
}

func (u *gormUnitOfWork) Members() repository.MemberRepository {
	if u.members == nil {
		u.members = repository.NewMemberRepository(u.tx)
	}
	return u.members
}

func (u *gormUnitOfWork) Likes() repository.LikesRepository {
	if u.likes == nil {
		u.likes = repository.NewLikesRepository(u.tx)
	}
	return u.likes
}

func (u *gormUnitOfWork) Messages() repository.MessageRepository {
	if u.messages == nil {
		u.messages = repository.NewMessageRepository(u.tx)
	}
	return u.messages
}

func (u *gormUnitOfWork) Complete(ctx context.Context) error {
	if u.done {
		return apperr.New(apperr.Persistence, "unit of work already completed")
	}
	u.done = true
	if err := u.tx.Commit().Error; err != nil {
		return apperr.Wrap(apperr.Persistence, "failed to commit changes", err)
	}
	return nil
}

func (u *gormUnitOfWork) Rollback() {
	if u.done {
		return
	}
	u.done = true
	u.tx.Rollback()
}
