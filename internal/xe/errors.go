package xe

import "github.com/go-orz/orz"

var (
	ErrInvalidParams          = orz.NewError(10400, "invalid request parameters")
	ErrTransactionNotFound    = orz.NewError(10404, "transaction not found")
	ErrUnknownTransactionType = orz.NewError(10422, "unknown transaction type")

	ErrFileMissing        = orz.NewError(10410, "no file provided")
	ErrFileTooLarge       = orz.NewError(10411, "file exceeds the size limit")
	ErrNotASpreadsheet    = orz.NewError(10412, "file is not an xlsx spreadsheet")
	ErrMalformedStatement = orz.NewError(10413, "malformed account statement")
)
