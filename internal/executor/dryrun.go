package executor

import (
	"context"
	"fmt"
)

// DryRun reports what would have been done without touching Wires-X. It is
// used when no executor URL is configured.
type DryRun struct{}

var _ Executor = DryRun{}

func (DryRun) Execute(ctx context.Context, req Request) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, &Error{Kind: KindTimeout, Err: err}
	}
	return Result{Status: fmt.Sprintf("dry run: %s", req.Summary())}, nil
}
