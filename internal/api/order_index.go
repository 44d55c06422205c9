package api

import "gorm.io/gorm"

// nextOrderIndex 解析显示序号：有显式值时用显式值，否则追加到末尾
// （max+1，空表为 0）。必须在插入所在的事务内调用，避免并发取号冲突。
func nextOrderIndex(tx *gorm.DB, model any, explicit *int) (int, error) {
	if explicit != nil {
		return *explicit, nil
	}

	var next int
	if err := tx.Model(model).Select("COALESCE(MAX(order_index) + 1, 0)").Scan(&next).Error; err != nil {
		return 0, err
	}
	return next, nil
}
