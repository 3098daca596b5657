package models

// TransactionType classifies an advice record.
type TransactionType string

const (
	Debit  TransactionType = "DEBIT"
	Credit TransactionType = "CREDIT"
	// BalanceForward marks an opening-balance entry rather than a movement.
	BalanceForward TransactionType = "BF"
)

// BankType identifies a supported advice dialect.
type BankType string

const (
	BankKrungthai BankType = "krungthai"
	BankCIMB      BankType = "cimb"
	// BankGeneric is the fallback when no bank signature is found in the
	// document. The generic extractor never asserts a bank name.
	BankGeneric BankType = ""
)

// Record is one structured transaction extracted from an advice document.
// An empty string means the field was not found in the text; extraction
// degrades to partially-populated records rather than failing.
type Record struct {
	AccountNo    string          `json:"accountNo,omitempty"`
	BankName     string          `json:"bankName,omitempty"`
	CompanyName  string          `json:"companyName,omitempty"`
	Currency     string          `json:"currency,omitempty"`
	DocumentDate string          `json:"documentDate,omitempty"`
	ReferenceNo  string          `json:"referenceNo,omitempty"`
	TotalValue   string          `json:"totalValue,omitempty"` // separators stripped, two decimals
	Transaction  TransactionType `json:"transaction,omitempty"`
	Page         int             `json:"page"`
	SourceFile   string          `json:"sourceFile,omitempty"`
}
