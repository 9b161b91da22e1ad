// Package errors provides examples of structured error handling in Spider.
package errors_test

import (
	stderrors "errors"
	"fmt"

	"github.com/spidergraph/spider/pkg/errors"
)

// Example demonstrates basic error creation and matching.
func Example() {
	err := errors.New(errors.ErrorTypeConnectionNotFound, "alias neo is not in the manifest").
		WithDetail("alias", "neo")

	fmt.Println(err.Error())
	fmt.Println(stderrors.Is(err, errors.ErrConnectionNotFound))
	fmt.Println(stderrors.Is(err, errors.ErrServiceNotFound))

	// Output:
	// connection_not_found: alias neo is not in the manifest
	// true
	// false
}

// ExampleWrap shows how wrapping keeps the cause reachable.
func ExampleWrap() {
	cause := stderrors.New("unknown driver")
	err := errors.Wrap(cause, errors.ErrorTypeConnectionNotFound, "cannot open connection orient")

	fmt.Println(errors.IsType(err, errors.ErrorTypeConnectionNotFound))
	fmt.Println(stderrors.Is(err, cause))

	// Output:
	// true
	// true
}

// ExamplePolicy_NotSupportedf shows the three policy levels.
func ExamplePolicy_NotSupportedf() {
	for _, level := range []errors.Level{errors.LevelFatal, errors.LevelQuiet, errors.LevelSilent} {
		p := errors.Policy{NotSupported: level}
		err := p.NotSupportedf(nil, "%s cannot traverse in reverse", "orientdb")
		fmt.Printf("%s: %v\n", level, err)
	}

	// Output:
	// fatal: not_supported: orientdb cannot traverse in reverse
	// quiet: <nil>
	// silent: <nil>
}
