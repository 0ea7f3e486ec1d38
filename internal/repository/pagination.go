package repository

import "gorm.io/gorm"

// 分页上限，防止一次拉取整张订单表。
const maxPageSize = 100

// applyPagination 应用分页参数，统一修正非法页码、偏移量与超限页大小。
func applyPagination(query *gorm.DB, page, pageSize int) *gorm.DB {
	if query == nil || pageSize <= 0 {
		return query
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	if page < 1 {
		page = 1
	}
	return query.Limit(pageSize).Offset((page - 1) * pageSize)
}
