package wallet

import (
	"fmt"
	"regexp"
	"strings"

	"matka-ledger-go/internal/models"
)

var (
	cardNumberPattern = regexp.MustCompile(`^[0-9]{16}$`)
	expiryPattern     = regexp.MustCompile(`^(0[1-9]|1[0-2])/[0-9]{2}$`)
	cvvPattern        = regexp.MustCompile(`^[0-9]{3,4}$`)
)

// ValidateMethod checks the fields each payout variant requires.
func ValidateMethod(method models.PayoutMethod) error {
	switch m := method.(type) {
	case models.UPIMethod:
		if !strings.Contains(m.VPA, "@") {
			return fmt.Errorf("%w: UPI ID must contain '@', got %q", ErrInvalidMethod, m.VPA)
		}
	case models.BankMethod:
		if strings.TrimSpace(m.AccountNumber) == "" {
			return fmt.Errorf("%w: bank account number is required", ErrInvalidMethod)
		}
		if strings.TrimSpace(m.IFSC) == "" {
			return fmt.Errorf("%w: IFSC code is required", ErrInvalidMethod)
		}
		if strings.TrimSpace(m.Holder) == "" {
			return fmt.Errorf("%w: account holder name is required", ErrInvalidMethod)
		}
	case models.CardMethod:
		if !cardNumberPattern.MatchString(strings.ReplaceAll(m.Number, " ", "")) {
			return fmt.Errorf("%w: card number must be 16 digits", ErrInvalidMethod)
		}
		if strings.TrimSpace(m.Holder) == "" {
			return fmt.Errorf("%w: card holder name is required", ErrInvalidMethod)
		}
		if !expiryPattern.MatchString(m.Expiry) {
			return fmt.Errorf("%w: expiry must be MM/YY, got %q", ErrInvalidMethod, m.Expiry)
		}
		if !cvvPattern.MatchString(m.CVV) {
			return fmt.Errorf("%w: CVV must be 3 or 4 digits", ErrInvalidMethod)
		}
	case nil:
		return fmt.Errorf("%w: no payout method given", ErrInvalidMethod)
	default:
		return fmt.Errorf("%w: unsupported method %T", ErrInvalidMethod, method)
	}
	return nil
}
