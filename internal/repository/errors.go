package repository

import (
	"errors"
	"fmt"

	"subscriptionservice/internal/database"
)

// ErrDuplicate marks an insert or update rejected by a unique index.
var ErrDuplicate = errors.New("duplicate key")

func translate(err error) error {
	if err == nil {
		return nil
	}
	if database.IsUniqueViolation(err) {
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	}
	return err
}
