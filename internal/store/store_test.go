package store

import (
	"context"
	"errors"
	"testing"

	"fabrisys-backend/internal/livequery"
	"fabrisys-backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupStore(t *testing.T) (*Store, *livequery.Engine, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&model.Item{}, &model.Variant{}))

	engine := livequery.NewEngine(db)
	st, err := Open(db, engine)
	require.NoError(t, err)
	return st, engine, db
}

func TestWriteNotifiesTouchedTables(t *testing.T) {
	st, engine, _ := setupStore(t)

	sub := engine.Subscribe(func(db *gorm.DB) (any, error) {
		var items []model.Item
		err := db.Find(&items).Error
		return items, err
	}, "items")
	defer sub.Unsubscribe()
	<-sub.Updates()

	err := st.Write(context.Background(), func(tx *gorm.DB) error {
		return tx.Create(&model.Item{WarehouseID: 1, Name: "Linen", SKU: "FAB-001", Category: model.CategoryFabric}).Error
	})
	require.NoError(t, err)

	res := <-sub.Updates()
	require.NoError(t, res.Err)
	assert.Len(t, res.Value.([]model.Item), 1)
}

// A transaction touching two tables triggers one coalesced
// notification per subscription, not one per write.
func TestWriteCoalescesMultiTableTransaction(t *testing.T) {
	st, engine, db := setupStore(t)

	item := &model.Item{WarehouseID: 1, Name: "Linen", SKU: "FAB-001", Category: model.CategoryFabric}
	require.NoError(t, db.Create(item).Error)

	sub := engine.Subscribe(func(db *gorm.DB) (any, error) {
		var items []model.Item
		err := db.Find(&items).Error
		return items, err
	}, "items", "variants")
	defer sub.Unsubscribe()
	<-sub.Updates()

	err := st.Write(context.Background(), func(tx *gorm.DB) error {
		if err := tx.Create(&model.Variant{ItemID: item.ID, WarehouseID: 1, Quantity: 5}).Error; err != nil {
			return err
		}
		return tx.Model(&model.Item{}).Where("id = ?", item.ID).
			Update("total_quantity", gorm.Expr("total_quantity + ?", 5)).Error
	})
	require.NoError(t, err)

	res := <-sub.Updates()
	require.NoError(t, res.Err)
	assert.Equal(t, 5, res.Value.([]model.Item)[0].TotalQuantity)

	select {
	case extra := <-sub.Updates():
		t.Fatalf("expected one coalesced delivery, got another: %+v", extra)
	default:
	}
}

// Simulated storage failure after the first write: the whole
// transaction rolls back, prior state is restored and nothing is
// published.
func TestWriteRollsBackAndStaysSilentOnError(t *testing.T) {
	st, engine, db := setupStore(t)

	item := &model.Item{WarehouseID: 1, Name: "Linen", SKU: "FAB-001", Category: model.CategoryFabric}
	require.NoError(t, db.Create(item).Error)

	sub := engine.Subscribe(func(db *gorm.DB) (any, error) {
		var items []model.Item
		err := db.Find(&items).Error
		return items, err
	}, "items", "variants")
	defer sub.Unsubscribe()
	<-sub.Updates()

	boom := errors.New("disk full")
	err := st.Write(context.Background(), func(tx *gorm.DB) error {
		if err := tx.Create(&model.Variant{ItemID: item.ID, WarehouseID: 1, Quantity: 5}).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Item{}).Where("id = ?", item.ID).
			Update("total_quantity", gorm.Expr("total_quantity + ?", 5)).Error; err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	// Neither the variant nor the item update is visible.
	var count int64
	require.NoError(t, db.Model(&model.Variant{}).Count(&count).Error)
	assert.Zero(t, count)

	var got model.Item
	require.NoError(t, db.First(&got, item.ID).Error)
	assert.Zero(t, got.TotalQuantity)

	// No notification for a rolled-back transaction.
	select {
	case res := <-sub.Updates():
		t.Fatalf("unexpected delivery after rollback: %+v", res)
	default:
	}
}

func TestWritesOutsideStoreAreNotTracked(t *testing.T) {
	_, engine, db := setupStore(t)

	sub := engine.Subscribe(func(db *gorm.DB) (any, error) {
		var items []model.Item
		err := db.Find(&items).Error
		return items, err
	}, "items")
	defer sub.Unsubscribe()
	<-sub.Updates()

	require.NoError(t, db.Create(&model.Item{WarehouseID: 1, Name: "Linen", SKU: "FAB-001", Category: model.CategoryFabric}).Error)

	select {
	case res := <-sub.Updates():
		t.Fatalf("unexpected delivery for untracked write: %+v", res)
	default:
	}
}
