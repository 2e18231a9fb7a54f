package importer

import (
	"fmt"
	"io"
	"os"

	"github.com/stmtfmt/stmtfmt/internal/model"
)

// Reader converts one bank's statement export into Transactions.
type Reader interface {
	Read(r io.Reader) ([]model.Transaction, error)
}

// ForBank returns the reader for bank.
func ForBank(bank model.Bank) (Reader, error) {
	switch bank {
	case model.BankMonzo:
		return MonzoReader{}, nil
	case model.BankRevolut:
		return RevolutReader{}, nil
	case model.BankWise:
		return WiseReader{}, nil
	case model.BankAmex:
		return AmexReader{}, nil
	default:
		return nil, fmt.Errorf("no reader for bank %q", bank)
	}
}

// ReadFile parses the statement at path with the reader for bank. The file
// is closed before ReadFile returns.
func ReadFile(bank model.Bank, path string) ([]model.Transaction, error) {
	rd, err := ForBank(bank)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s statement: %w", bank, err)
	}
	defer f.Close()

	return rd.Read(f)
}
