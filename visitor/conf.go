package visitor

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	errors "github.com/zeuson0/fedlearner/errors"
	"github.com/zeuson0/fedlearner/filelist"
	"go.uber.org/zap"
)

// Conf configures an Engine
type Conf struct {
	BatchSize        int         // The number of rows per batch. Must be at least 1.
	Columns          []string    // If non-empty, only these columns are materialized. Names are not validated until read.
	ConsumeRemainder bool        // Merge the trailing undersized batch of each file into the last full-sized one
	RequireNonEmpty  bool        // Reject an empty file list at construction time
	Logger           *zap.Logger // Defaults to a no-op logger
}

func (c *Conf) validate(files *filelist.List) error {
	var errs *multierror.Error
	if c.BatchSize < 1 {
		errs = multierror.Append(errs, fmt.Errorf("batch size must be at least 1, was %d", c.BatchSize))
	}
	if files == nil {
		errs = multierror.Append(errs, fmt.Errorf("file list is nil"))
	} else if c.RequireNonEmpty && files.Len() == 0 {
		errs = multierror.Append(errs, fmt.Errorf("file list is empty"))
	}
	if err := errs.ErrorOrNil(); err != nil {
		return errors.ConfigurationError{Err: err}
	}
	return nil
}
