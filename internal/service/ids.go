package service

import "sync/atomic"

// EntityClass names a family of records that share an id sequence
type EntityClass int

const (
	ClassAccount EntityClass = iota
	ClassTransaction
	ClassLoan
	ClassCard
)

// Default first ids per class
const (
	AccountIDBase     int64 = 1000
	TransactionIDBase int64 = 1
	LoanIDBase        int64 = 5000
	CardIDBase        int64 = 7000
)

// IDAllocator issues monotonically increasing ids per entity class. It is safe
// for concurrent use and scoped to the process; Reset exists for tests.
type IDAllocator struct {
	bases [4]int64
	next  [4]atomic.Int64
}

// NewIDAllocator creates an allocator starting each class at its default base
func NewIDAllocator() *IDAllocator {
	return NewIDAllocatorWithBases(AccountIDBase, TransactionIDBase, LoanIDBase, CardIDBase)
}

// NewIDAllocatorWithBases creates an allocator with explicit starting ids
func NewIDAllocatorWithBases(account, transaction, loan, card int64) *IDAllocator {
	a := &IDAllocator{bases: [4]int64{account, transaction, loan, card}}
	a.Reset()
	return a
}

// Next returns the next id for class
func (a *IDAllocator) Next(class EntityClass) int64 {
	return a.next[class].Add(1) - 1
}

// Peek returns the id the next call to Next would return, without consuming it
func (a *IDAllocator) Peek(class EntityClass) int64 {
	return a.next[class].Load()
}

// Reset rewinds every sequence to its base
func (a *IDAllocator) Reset() {
	for i := range a.next {
		a.next[i].Store(a.bases[i])
	}
}
