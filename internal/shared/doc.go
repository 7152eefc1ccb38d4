// Package shared holds helpers used across layers that belong to none of them.
//
// The testutil subpackage provides a buffered slog handler for asserting on
// log output:
//
//	logger, logs := testutil.NewTestLogger(t)
//	svc := services.NewClientLogService(logger, nil)
//	...
//	testutil.AssertLogAttr(t, logs, "component", "client")
package shared
