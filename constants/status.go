package constants

// Status is the transaction status read off a receipt.
type Status string

const (
	StatusSuccess Status = "SUCCESS"
	StatusRefund  Status = "REFUND"
	StatusFailed  Status = "FAILED"
)

// Direction is whether a transaction is income, expense, or a transfer.
type Direction string

const (
	DirectionExpense  Direction = "EXPENSE"
	DirectionIncome   Direction = "INCOME"
	DirectionTransfer Direction = "TRANSFER"
)

// TimeSource records where a record's pay time came from, so consumers can
// tell a trusted parse from a guess.
type TimeSource string

const (
	TimeSourceOCR     TimeSource = "OCR"     // parsed out of the receipt text
	TimeSourceCapture TimeSource = "CAPTURE" // screenshot capture timestamp
	TimeSourceNow     TimeSource = "NOW"     // neither was plausible
)
