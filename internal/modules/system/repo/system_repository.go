package repo

import "context"

// TableCounts 各业务表的行数快照。
type TableCounts struct {
	Users    int64
	Images   int64
	Patients int64
	Services int64
	Results  int64
}

type SystemStore interface {
	CountTables(ctx context.Context) (TableCounts, error)
	SumImageSize(ctx context.Context) (int64, error)
}
