package uow

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eatech/platform/internal/dal/interfaces/iorderitemrepo"
	"github.com/eatech/platform/internal/dal/interfaces/iorderrepo"
	"github.com/eatech/platform/internal/dal/interfaces/ioutboxrepo"
	"github.com/eatech/platform/internal/dal/postgres"
	orderrepo "github.com/eatech/platform/internal/dal/repositories/order/postgres"
	orderitemrepo "github.com/eatech/platform/internal/dal/repositories/orderitem/postgres"
	outboxrepo "github.com/eatech/platform/internal/dal/repositories/outbox/postgres"
)

type unitOfWork struct {
	db            *pgxpool.Pool
	tx            pgx.Tx
	orderRepo     iorderrepo.IOrderRepository
	orderItemRepo iorderitemrepo.IOrderItemRepository
	outboxRepo    ioutboxrepo.IOutboxRepository
}

func (u *unitOfWork) OrderRepository() iorderrepo.IOrderRepository {
	return u.orderRepo
}

func (u *unitOfWork) OrderItemRepository() iorderitemrepo.IOrderItemRepository {
	return u.orderItemRepo
}

func (u *unitOfWork) OutboxRepository() ioutboxrepo.IOutboxRepository {
	return u.outboxRepo
}

//goland:noinspection GoExportedFuncWithUnexportedType
func NewUnitOfWork(client *postgres.Client) *unitOfWork {
	pool := client.Pool()

	return &unitOfWork{
		db:            pool,
		orderRepo:     orderrepo.NewPostgresOrderRepository(pool),
		orderItemRepo: orderitemrepo.NewPostgresOrderItemRepository(pool),
		outboxRepo:    outboxrepo.NewOutboxRepository(pool),
	}
}

// Begin opens a transaction and rebinds the repositories to it.
func (u *unitOfWork) Begin(ctx context.Context) error {
	tx, err := u.db.Begin(ctx)
	if err != nil {
		return err
	}

	u.tx = tx
	u.orderRepo = orderrepo.NewPostgresOrderRepository(tx)
	u.orderItemRepo = orderitemrepo.NewPostgresOrderItemRepository(tx)
	u.outboxRepo = outboxrepo.NewOutboxRepository(tx)

	return nil
}

func (u *unitOfWork) Commit(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}

	return u.tx.Commit(ctx)
}

// Rollback aborts the open transaction. Calling it after Commit, or with no
// transaction open, is a no-op.
func (u *unitOfWork) Rollback(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}
	if err := u.tx.Rollback(ctx); err != nil && err != pgx.ErrTxClosed {
		return err
	}

	return nil
}
