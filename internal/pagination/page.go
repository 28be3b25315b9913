package pagination

// Page 一页结果；NextCursor 为空表示没有下一页
type Page[T any] struct {
	Data       []T
	NextCursor *string
	HasMore    bool
}

// BuildPage 由"多取一条"的结果集构造分页结果。
// items 最多 limit+1 条：不足 limit+1 说明取尽；恰好 limit+1 则截断到 limit，
// 并用第 limit 条（最后一条返回项，而非被丢弃的那条）的排序键生成游标。
func BuildPage[T any](items []T, limit int, encode func(T) string) Page[T] {
	if items == nil {
		items = []T{}
	}
	if limit <= 0 || len(items) <= limit {
		return Page[T]{Data: items}
	}
	items = items[:limit]
	token := encode(items[limit-1])
	return Page[T]{Data: items, NextCursor: &token, HasMore: true}
}

// ClampLimit 非法或越界的页大小收敛到默认/上限
func ClampLimit(n, def, max int) int {
	if n <= 0 {
		return def
	}
	if n > max {
		return max
	}
	return n
}
