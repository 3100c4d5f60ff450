package pagination

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

const (
	DefaultLimit     = 20
	MaxLimit         = 1000
	DefaultSortField = "id"
	SortOrderAsc     = "asc"
	SortOrderDesc    = "desc"

	sortPartsMax = 2
)

var (
	ErrInvalidLimit      = fmt.Errorf("limit must be between 1 and %d", MaxLimit)
	ErrInvalidSortOrder  = errors.New("sort order must be 'asc' or 'desc'")
	ErrInvalidSortFormat = errors.New("invalid sort format: use 'field' or 'field:order' (e.g., 'name:desc')")
	ErrEmptySortField    = errors.New("sort field cannot be empty")
	ErrInvalidSortField  = errors.New("invalid sort field")
)

// Params holds the paging flags. Offset mode (--limit/--offset) and page mode
// (--page/--page-size) are mutually exclusive.
type Params struct {
	Limit    int
	Offset   int
	Page     int
	PageSize int
	Sort     string
}

// NewParams returns offset mode with DefaultLimit.
func NewParams() *Params {
	return &Params{Limit: DefaultLimit}
}

// AddFlags registers the paging flags on cmd, bound to p.
func (p *Params) AddFlags(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.IntVar(&p.Limit, "limit", p.Limit, "maximum number of entries to return")
	fs.IntVar(&p.Offset, "offset", p.Offset, "number of entries to skip")
	fs.IntVar(&p.Page, "page", p.Page, "1-based page number (requires --page-size)")
	fs.IntVar(&p.PageSize, "page-size", p.PageSize, "entries per page (requires --page)")
	fs.StringVar(&p.Sort, "sort", p.Sort, "sort the returned entries: id|name[:asc|desc]")
	cmd.MarkFlagsMutuallyExclusive("offset", "page")
}

// Validate checks bounds and that the two modes are not mixed.
func (p Params) Validate() error {
	switch {
	case p.Offset < 0:
		return errors.New("offset cannot be negative")
	case p.Page < 0:
		return errors.New("page cannot be negative")
	case p.PageSize < 0:
		return errors.New("page-size cannot be negative")
	case p.Page > 0 && p.Offset > 0:
		return errors.New("page and offset parameters are mutually exclusive")
	case p.Page == 0 && p.PageSize > 0:
		return errors.New("page must be specified when using page-size")
	case p.Page > 0 && p.PageSize == 0:
		return errors.New("page-size must be specified when using page")
	}
	if _, limit := p.OffsetLimit(); limit < 1 || limit > MaxLimit {
		return fmt.Errorf("%w: got %d", ErrInvalidLimit, limit)
	}
	if p.Sort != "" {
		if _, _, err := ParseSort(p.Sort); err != nil {
			return err
		}
	}
	return nil
}

// IsPageBased reports whether --page is in effect.
func (p Params) IsPageBased() bool {
	return p.Page > 0
}

// OffsetLimit returns the request window for either mode.
func (p Params) OffsetLimit() (int, int) {
	if p.IsPageBased() {
		return (p.Page - 1) * p.PageSize, p.PageSize
	}
	return p.Offset, p.Limit
}

// ParseSort splits "field" or "field:order"; the order defaults to asc.
func ParseSort(expr string) (string, string, error) {
	if strings.TrimSpace(expr) == "" {
		return DefaultSortField, SortOrderAsc, nil
	}

	parts := strings.Split(expr, ":")
	if len(parts) > sortPartsMax {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidSortFormat, expr)
	}
	field := strings.TrimSpace(parts[0])
	order := SortOrderAsc
	if len(parts) == sortPartsMax {
		order = strings.ToLower(strings.TrimSpace(parts[1]))
	}

	if field == "" {
		return "", "", ErrEmptySortField
	}
	if order != SortOrderAsc && order != SortOrderDesc {
		return "", "", fmt.Errorf("%w: got %q", ErrInvalidSortOrder, order)
	}
	return field, order, nil
}
