package repositories

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrNotFound           = errors.New("record not found")
	ErrDuplicateReference = errors.New("a shipment with this reference code already exists")
	ErrDuplicateHoliday   = errors.New("this holiday already exists for the country and date")
	ErrDuplicateTaxID     = errors.New("a partner with this tax ID already exists")
	ErrPartnerInUse       = errors.New("partner is referenced by shipments and cannot be deleted")
)

// isUniqueViolation recognises unique-constraint failures from every
// supported driver, translated or not.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	msg := err.Error()
	for _, marker := range []string{
		"UNIQUE constraint failed",
		"duplicate key",
		"Duplicate entry",
		"Cannot insert duplicate",
	} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

func isForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	msg := err.Error()
	return strings.Contains(msg, "FOREIGN KEY constraint failed") ||
		strings.Contains(msg, "foreign key constraint")
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
