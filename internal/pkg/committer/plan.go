// Package committer collects Spanner mutations from repositories into a plan
// and applies the plan atomically.
//
// Repositories build mutations without applying them. A caller gathers the
// mutations of an aggregate and its outbox events into one CommitPlan and
// hands it to a Committer:
//
//	plan := committer.NewPlan()
//	plan.Add(model.UpdateMut(id, updates))
//	plan.AddMultiple(outboxMuts)
//	err := c.ApplyWithVersionCheck(ctx, guard, plan)
package committer

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/grpc/codes"
)

var (
	// ErrVersionMismatch is returned when the guarded row changed since it
	// was read.
	ErrVersionMismatch = errors.New("version mismatch")

	// ErrRowNotFound is returned when the guarded row no longer exists.
	ErrRowNotFound = errors.New("guarded row not found")
)

// CommitPlan is a typed wrapper around Spanner mutations.
type CommitPlan struct {
	mutations []*spanner.Mutation
}

// NewPlan creates a new empty CommitPlan.
func NewPlan() *CommitPlan {
	return &CommitPlan{
		mutations: make([]*spanner.Mutation, 0),
	}
}

// Add adds a mutation to the plan.
// Nil mutations are silently ignored for convenience.
func (cp *CommitPlan) Add(mut *spanner.Mutation) {
	if mut != nil {
		cp.mutations = append(cp.mutations, mut)
	}
}

// AddMultiple adds multiple mutations to the plan.
func (cp *CommitPlan) AddMultiple(muts []*spanner.Mutation) {
	for _, mut := range muts {
		cp.Add(mut)
	}
}

// Mutations returns all collected mutations.
func (cp *CommitPlan) Mutations() []*spanner.Mutation {
	return cp.mutations
}

// IsEmpty returns true if the plan has no mutations.
func (cp *CommitPlan) IsEmpty() bool {
	return len(cp.mutations) == 0
}

// Count returns the number of mutations in the plan.
func (cp *CommitPlan) Count() int {
	return len(cp.mutations)
}

// VersionGuard names the row and version column checked before a plan is
// applied.
type VersionGuard struct {
	Table    string
	Key      spanner.Key
	Column   string
	Expected int64
}

// Committer provides transaction execution for CommitPlans.
type Committer struct {
	client *spanner.Client
}

// NewCommitter creates a new Committer.
func NewCommitter(client *spanner.Client) *Committer {
	return &Committer{client: client}
}

// Apply executes the CommitPlan atomically.
func (c *Committer) Apply(ctx context.Context, plan *CommitPlan) error {
	if plan.IsEmpty() {
		return nil
	}

	if _, err := c.client.Apply(ctx, plan.Mutations()); err != nil {
		return fmt.Errorf("failed to apply commit plan: %w", err)
	}

	return nil
}

// ReadWrite runs fn in a read-write transaction. fn reads what it needs and
// returns the plan to buffer; a nil plan commits nothing.
func (c *Committer) ReadWrite(ctx context.Context, fn func(context.Context, *spanner.ReadWriteTransaction) (*CommitPlan, error)) error {
	_, err := c.client.ReadWriteTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		plan, err := fn(ctx, txn)
		if err != nil {
			return err
		}
		if plan == nil || plan.IsEmpty() {
			return nil
		}
		return txn.BufferWrite(plan.Mutations())
	})
	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}
	return nil
}

// ApplyWithVersionCheck applies the plan only if the guarded row still holds
// the expected version. It returns ErrVersionMismatch or ErrRowNotFound
// (wrapped) when the check fails.
func (c *Committer) ApplyWithVersionCheck(ctx context.Context, guard VersionGuard, plan *CommitPlan) error {
	if plan.IsEmpty() {
		return nil
	}

	return c.ReadWrite(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) (*CommitPlan, error) {
		row, err := txn.ReadRow(ctx, guard.Table, guard.Key, []string{guard.Column})
		if err != nil {
			if spanner.ErrCode(err) == codes.NotFound {
				return nil, ErrRowNotFound
			}
			return nil, fmt.Errorf("failed to read %s.%s: %w", guard.Table, guard.Column, err)
		}

		var current int64
		if err := row.Column(0, &current); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", guard.Column, err)
		}

		if current != guard.Expected {
			return nil, fmt.Errorf("%w: expected %d, got %d", ErrVersionMismatch, guard.Expected, current)
		}

		return plan, nil
	})
}
