// Package mocks provides hand-written mock implementations of the service
// interfaces for handler and middleware tests.
//
// Every mock follows the same shape: one function field per interface
// method, plus default return values used when the function is nil.
//
//	issuer := &mocks.MockTokenIssuer{
//	    AuthenticateFn: func(ctx context.Context, token string) (int64, error) {
//	        return 42, nil
//	    },
//	}
//
// Calls are recorded where tests commonly need to assert on arguments.
package mocks
