package assignment

import "github.com/m04kA/SMC-ConflictService/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor
