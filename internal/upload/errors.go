package upload

import "errors"

// FailureReason is a user-facing explanation of why a record cannot be
// posted. These are shown to the user verbatim, not internal fault codes.
type FailureReason string

const (
	ReasonMissingConfig     FailureReason = "记账服务地址或凭证未配置"
	ReasonNoLeafAccount     FailureReason = "没有可用的末级账户"
	ReasonNoLeafCategory    FailureReason = "没有可用的末级分类"
	ReasonTransferCategory  FailureReason = "转账类分类不支持按支出/收入上报"
	ReasonDirectionConflict FailureReason = "分类方向与金额方向冲突且没有可替换的分类"
)

// Error carries a failure reason through the error chain while keeping
// reasons distinguishable by category.
type Error struct {
	Reason FailureReason
}

func (e *Error) Error() string {
	return string(e.Reason)
}

func failure(reason FailureReason) error {
	return &Error{Reason: reason}
}

// ReasonOf extracts the failure reason from an error, if it carries one.
func ReasonOf(err error) (FailureReason, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Reason, true
	}
	return "", false
}
