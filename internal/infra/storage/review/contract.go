package review

import "github.com/abhi96256/Appoinment/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor
