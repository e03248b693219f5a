package booking

import "github.com/m04kA/SMC-ConflictService/pkg/dbmetrics"

// Переиспользуем интерфейс из dbmetrics для работы с БД
// Подходит *sql.DB, *sql.Tx и *dbmetrics.DB
type DBExecutor = dbmetrics.DBExecutor
