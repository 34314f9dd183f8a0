package contracts

import "context"

// RecordSource supplies the raw customer snapshot
// ⭐ SSOT: 원본 데이터 로딩 인터페이스 (CSV, XLSX, PostgreSQL, cache)
type RecordSource interface {
	Load(ctx context.Context) ([]Customer, error)
	Name() string
}

// Selector filters raw customers by FilterState and a free-text search
// ⭐ SSOT: Selection Pipeline 필터 인터페이스
type Selector interface {
	Select(records []Customer, filters FilterState, search string) []Customer
}
