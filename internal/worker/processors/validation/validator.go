package validation

import (
	"errors"
	"fmt"
	"strings"

	"felmel/internal/config"
	"felmel/internal/events"
	"felmel/internal/export"
	"felmel/internal/logger"
	"felmel/internal/models"
)

// ValidationError lists every problem found in one export request.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid export request: " + strings.Join(e.Problems, "; ")
}

type Validator struct {
	config *config.Config
	logger *logger.Logger
}

func New(cfg *config.Config, logger *logger.Logger) *Validator {
	return &Validator{
		config: cfg,
		logger: logger,
	}
}

// ValidateExportRequest checks format, mode, page size hint, sort and price bound.
func (v *Validator) ValidateExportRequest(req events.ExportRequest) error {
	var problems []string

	if _, ok := export.ParseFormat(req.Format); !ok {
		problems = append(problems, fmt.Sprintf("unknown format %q", req.Format))
	}
	if _, ok := models.ParseLoadMode(req.Mode); !ok {
		problems = append(problems, fmt.Sprintf("unknown mode %q", req.Mode))
	}
	if req.PageSizeHint < 0 {
		problems = append(problems, "page_size_hint is negative")
	} else if req.PageSizeHint > v.config.MaxPageSize {
		problems = append(problems, fmt.Sprintf("page_size_hint exceeds %d", v.config.MaxPageSize))
	}

	if req.Sort != nil {
		if _, ok := models.ParseField(string(req.Sort.Field)); !ok {
			problems = append(problems, fmt.Sprintf("unknown sort field %q", req.Sort.Field))
		}
		switch req.Sort.Direction {
		case models.Ascending, models.Descending:
		default:
			problems = append(problems, fmt.Sprintf("unknown sort direction %q", req.Sort.Direction))
		}
	}

	if req.Filters.MaxPrice != nil && req.Filters.MaxPrice.IsNegative() {
		problems = append(problems, "max_price is negative")
	}

	if len(problems) > 0 {
		v.logger.Debug("Rejected export request: %v", problems)
		return &ValidationError{Problems: problems}
	}
	return nil
}

// IsValidationError reports whether err came from ValidateExportRequest.
func IsValidationError(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}
