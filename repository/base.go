package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// BaseRepository implements the generic part of Repository. applyFilter and
// defaultOrder are supplied by the entity repository embedding it.
type BaseRepository[T any, F any] struct {
	DB           *gorm.DB
	applyFilter  func(db *gorm.DB, filter F) *gorm.DB
	defaultOrder string
}

func NewBaseRepository[T any, F any](db *gorm.DB, applyFilter func(*gorm.DB, F) *gorm.DB, defaultOrder string) *BaseRepository[T, F] {
	if applyFilter == nil {
		applyFilter = func(db *gorm.DB, _ F) *gorm.DB { return db }
	}
	if defaultOrder == "" {
		defaultOrder = "id DESC"
	}
	return &BaseRepository[T, F]{
		DB:           db,
		applyFilter:  applyFilter,
		defaultOrder: defaultOrder,
	}
}

// getDB returns the transaction carried by ctx, or the root handle.
func (r *BaseRepository[T, F]) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(TxContextKey).(*gorm.DB); ok && tx != nil {
		return tx.WithContext(ctx)
	}
	return r.DB.WithContext(ctx)
}

func (r *BaseRepository[T, F]) getDBForWrite(ctx context.Context) (*gorm.DB, bool, error) {
	if tx, ok := ctx.Value(TxContextKey).(*gorm.DB); ok && tx != nil {
		return tx.WithContext(ctx), false, nil
	}

	tx := r.DB.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, false, fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	return tx, true, nil
}

// write runs fn on the ctx transaction, or on a new one that is committed when
// fn succeeds.
func (r *BaseRepository[T, F]) write(ctx context.Context, fn func(db *gorm.DB) error) (err error) {
	db, shouldCommit, err := r.getDBForWrite(ctx)
	if err != nil {
		return err
	}

	if shouldCommit {
		defer func() {
			if err != nil {
				db.Rollback()
				return
			}
			if cerr := db.Commit().Error; cerr != nil {
				err = fmt.Errorf("failed to commit transaction: %w", cerr)
			}
		}()
	}

	return fn(db)
}

func (r *BaseRepository[T, F]) ByID(ctx context.Context, id uint) (*T, error) {
	db := r.getDB(ctx)

	var entity T
	err := db.Last(&entity, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find entity by ID %d: %w", id, err)
	}

	return &entity, nil
}

func (r *BaseRepository[T, F]) ByFilter(ctx context.Context, filter F, orderBy string, limit, offset int) ([]*T, error) {
	db := r.applyFilter(r.getDB(ctx).Model(new(T)), filter)

	if orderBy == "" {
		orderBy = r.defaultOrder
	}
	db = db.Order(orderBy)

	if limit > 0 {
		db = db.Limit(limit)
	}
	if offset > 0 {
		db = db.Offset(offset)
	}

	var entities []*T
	if err := db.Find(&entities).Error; err != nil {
		return nil, fmt.Errorf("failed to find entities by filter: %w", err)
	}

	return entities, nil
}

func (r *BaseRepository[T, F]) Count(ctx context.Context, filter F) (int64, error) {
	var count int64
	err := r.applyFilter(r.getDB(ctx).Model(new(T)), filter).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count entities: %w", err)
	}

	return count, nil
}

func (r *BaseRepository[T, F]) Exists(ctx context.Context, filter F) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *BaseRepository[T, F]) Save(ctx context.Context, entity *T) error {
	return r.write(ctx, func(db *gorm.DB) error {
		if err := db.Create(entity).Error; err != nil {
			return fmt.Errorf("failed to save entity: %w", err)
		}
		return nil
	})
}

func (r *BaseRepository[T, F]) SaveBatch(ctx context.Context, entities []*T) error {
	if len(entities) == 0 {
		return nil
	}

	return r.write(ctx, func(db *gorm.DB) error {
		if err := db.CreateInBatches(entities, 100).Error; err != nil {
			return fmt.Errorf("failed to save batch entities: %w", err)
		}
		return nil
	})
}

// Update writes every column of entity.
func (r *BaseRepository[T, F]) Update(ctx context.Context, entity *T) error {
	return r.write(ctx, func(db *gorm.DB) error {
		if err := db.Omit("created_at").Save(entity).Error; err != nil {
			return fmt.Errorf("failed to update entity: %w", err)
		}
		return nil
	})
}

// Delete removes the row by primary key and reports whether it existed.
func (r *BaseRepository[T, F]) Delete(ctx context.Context, id uint) (bool, error) {
	var affected int64
	err := r.write(ctx, func(db *gorm.DB) error {
		res := db.Delete(new(T), id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete entity %d: %w", id, res.Error)
		}
		affected = res.RowsAffected
		return nil
	})
	return affected > 0, err
}

// WithTransaction runs fn inside a transaction carried by the returned context.
func WithTransaction(ctx context.Context, db *gorm.DB, fn func(context.Context) error) (err error) {
	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			err = fmt.Errorf("panic in transaction: %v", r)
		}
	}()

	ctx = context.WithValue(ctx, TxContextKey, tx)

	if err := fn(ctx); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
