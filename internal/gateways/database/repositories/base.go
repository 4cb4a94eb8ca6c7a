package repositories

import (
	"fmt"
	"time"

	"github.com/disgoorg/snowflake/v2"
)

const defaultTimeout = 10 * time.Second

// RepositoryError represents a repository-level error
type RepositoryError struct {
	Operation string
	Entity    string
	Err       error
}

func (re *RepositoryError) Error() string {
	return fmt.Sprintf("repository error during %s for %s: %v", re.Operation, re.Entity, re.Err)
}

func (re *RepositoryError) Unwrap() error {
	return re.Err
}

func wrapErr(operation, entity string, err error) error {
	if err == nil {
		return nil
	}
	return &RepositoryError{Operation: operation, Entity: entity, Err: err}
}

func parseSnowflake(entity, raw string) (snowflake.ID, error) {
	id, err := snowflake.Parse(raw)
	if err != nil {
		return 0, wrapErr("decode", entity, fmt.Errorf("invalid snowflake %q: %w", raw, err))
	}
	return id, nil
}
