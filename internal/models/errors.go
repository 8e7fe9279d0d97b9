package models

import "errors"

// ErrDuplicateEntry is returned by the journal when a ledger entry with the
// same id was already journaled by this run
var ErrDuplicateEntry = errors.New("duplicate ledger entry")
