package auth

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophfav/internal/common"
)

var (
	errMissingHeader = errors.New("missing authorization header")
	errBadScheme     = errors.New("invalid authorization header format")
)

func unauthenticated(reason error) error {
	return fmt.Errorf("%w: %w", common.ErrUnauthenticated, reason)
}
