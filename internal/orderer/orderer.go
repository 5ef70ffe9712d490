// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package orderer

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	pkgmodel "github.com/platform-engineering-labs/xmlupload/pkg/model"
)

// MaxPasses bounds the number of ordering passes. Stall detection ends every
// run long before, the ceiling only guards against a broken invariant.
const MaxPasses = 10000

var ErrPassLimit = fmt.Errorf("ordering did not finish within %d passes", MaxPasses)

// Observer is notified after every ordering pass. Remaining is reported once,
// when ordering finishes or stalls.
type Observer interface {
	Pass(n int)
	Remaining(n int)
}

type StuckResource struct {
	ID string
	// Referenced ids that were never resolved
	Unresolved []string
}

// OrderingStallError is returned when a pass makes no progress. This happens
// for cycles, self references and references to ids missing from the
// document.
type OrderingStallError struct {
	Stuck []StuckResource
}

func (e *OrderingStallError) Error() string {
	ids := make([]string, 0, len(e.Stuck))
	for _, s := range e.Stuck {
		ids = append(ids, s.ID)
	}
	return fmt.Sprintf("%d resources could not be ordered: %s", len(e.Stuck), strings.Join(ids, ", "))
}

// Order returns the resources such that every resource appears after all the
// resources it references. Resources that are ready in the same pass keep
// their relative input order. The observer may be nil.
func Order(resources []pkgmodel.Resource, observer Observer) ([]pkgmodel.Resource, error) {
	ordered := make([]pkgmodel.Resource, 0, len(resources))
	resolved := make(map[string]struct{}, len(resources))

	refs := make(map[string][]string, len(resources))
	for i := range resources {
		refs[resources[i].ID] = resources[i].References()
	}

	remaining := resources
	for pass := 1; len(remaining) > 0; pass++ {
		if pass > MaxPasses {
			return nil, ErrPassLimit
		}

		var pending []pkgmodel.Resource
		for _, res := range remaining {
			if allResolved(refs[res.ID], resolved) {
				ordered = append(ordered, res)
				resolved[res.ID] = struct{}{}
				continue
			}
			pending = append(pending, res)
		}

		slog.Debug("Ordering pass finished", "pass", pass, "ordered", len(ordered), "remaining", len(pending))
		if observer != nil {
			observer.Pass(pass)
		}

		if len(pending) == len(remaining) {
			if observer != nil {
				observer.Remaining(len(pending))
			}
			return nil, stallError(pending, refs, resolved)
		}
		remaining = pending
	}

	if observer != nil {
		observer.Remaining(0)
	}
	return ordered, nil
}

func allResolved(ids []string, resolved map[string]struct{}) bool {
	for _, id := range ids {
		if _, ok := resolved[id]; !ok {
			return false
		}
	}
	return true
}

func stallError(stuck []pkgmodel.Resource, refs map[string][]string, resolved map[string]struct{}) error {
	err := &OrderingStallError{}
	for _, res := range stuck {
		s := StuckResource{ID: res.ID}
		for _, id := range refs[res.ID] {
			if _, ok := resolved[id]; !ok {
				s.Unresolved = append(s.Unresolved, id)
			}
		}
		err.Stuck = append(err.Stuck, s)
	}
	return err
}

// IsStall reports whether err is caused by an ordering stall.
func IsStall(err error) bool {
	var stall *OrderingStallError
	return errors.As(err, &stall)
}
