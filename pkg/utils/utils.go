package utils

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type IUtils interface {
	NewULIDFromTimestamp(t time.Time) (string, error)
	FormatAmount(amount float64) string
}

type utils struct {
	printer *message.Printer
}

func New() IUtils {
	return &utils{
		printer: message.NewPrinter(language.English),
	}
}

func (u *utils) NewULIDFromTimestamp(t time.Time) (string, error) {
	ms := ulid.Timestamp(t)
	entropy := ulid.Monotonic(rand.Reader, 0)

	id, err := ulid.New(ms, entropy)
	if err != nil {
		return "", err
	}

	return id.String(), nil
}

// FormatAmount renders a currency amount with thousands separators, e.g. $85,000.00.
func (u *utils) FormatAmount(amount float64) string {
	return u.printer.Sprintf("$%.2f", amount)
}
