package errors

import "errors"

// ErrOptimisticLock signals the row changed under a versioned update; the
// caller should reload and retry.
var ErrOptimisticLock = errors.New("record was modified by another operation, reload and retry")
