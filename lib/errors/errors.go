package errors

import "encoding/json"

type Error struct {
	Code    uint   `json:"code"`
	Message string `json:"message"`
}

func (o *Error) Serialize() (b []byte, err error) {
	b, err = json.Marshal(o)
	return
}

func (o *Error) Error() string {
	b, _ := o.Serialize()
	return string(b)
}

func NewError(code uint, message string) *Error {
	return &Error{Code: code, Message: message}
}

var (
	// governance
	Unauthorized        = NewError(100, "caller does not hold a balance")
	NoCapacity          = NewError(101, "no free proposal slot")
	InvalidAmount       = NewError(102, "vote amount must be over zero")
	InsufficientBalance = NewError(103, "vote amount exceeds current balance")
	NotFound            = NewError(104, "proposal not found")
	ProposalExpired     = NewError(105, "proposal is expired or already resolved")
	AlreadyVoted        = NewError(106, "vote was already cast on this proposal")
	InvalidDirection    = NewError(107, "vote direction must be FOR or AGAINST")

	// ledger
	AccountNotFound         = NewError(120, "account does not exist")
	AccountAlreadyExists    = NewError(121, "account already exists")
	AccountBalanceUnderZero = NewError(122, "account balance would be under zero")
	MaximumBalanceReached   = NewError(123, "monetary amount would exceed the maximum supply")
	SupplyAlreadyIssued     = NewError(124, "supply was already issued at genesis")
	SupplyNotIssued         = NewError(125, "supply was not issued yet")

	// storage
	StorageCoreError           = NewError(150, "storage error")
	StorageRecordDoesNotExist  = NewError(151, "record does not exist in storage")
	StorageRecordAlreadyExists = NewError(152, "record already exists in storage")
)
