package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/existflow/taskflow/internal/api"
)

// friendlyErr rewrites gateway failures into messages that tell the user
// what to do next
func friendlyErr(err error) error {
	var apiErr *api.Error
	if !errors.As(err, &apiErr) {
		return err
	}
	switch apiErr.Kind {
	case api.KindUnauthorized:
		return fmt.Errorf("session expired, run 'taskflow login' to sign in again")
	case api.KindValidation:
		if apiErr.Field != "" {
			return fmt.Errorf("invalid %s: %s", apiErr.Field, apiErr.Message)
		}
		return fmt.Errorf("invalid input: %s", apiErr.Message)
	case api.KindNotFound:
		return fmt.Errorf("not found: %s (it may have been deleted, try again)", apiErr.Message)
	case api.KindConflict:
		return fmt.Errorf("conflict: %s (someone else changed this, reload and retry)", apiErr.Message)
	case api.KindNetworkFailure:
		return fmt.Errorf("could not reach the server: %s", apiErr.Message)
	default:
		return fmt.Errorf("server error: %s", apiErr.Message)
	}
}

// parseID parses a positional numeric id argument
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

// progressBar renders an ASCII bar for a percentage
func progressBar(pct, width int) string {
	if width <= 0 {
		width = 20
	}
	filled := pct * width / 100
	bar := ""
	for i := 0; i < width; i++ {
		if i < filled {
			bar += "█"
		} else {
			bar += "░"
		}
	}
	return bar
}
