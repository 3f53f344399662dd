// Package shell is the single choke point between kira and a device.
//
// An Executor sends one shell command and returns its captured output as
// text. The ADB implementation runs `adb -s SERIAL shell COMMAND` through
// k8s.io/utils/exec, so tests can substitute a fake process runner.
//
// Errors are structured (see pkg/errors):
//
//   - errors.ErrCodeTransport: adb is missing, the device is offline or
//     unauthorized, or the command timed out (the cause then carries
//     errors.ErrCodeTimeout).
//   - errors.ErrCodeInvalidEncoding: the device printed bytes that are not UTF-8.
//
// Executors never retry. Wrappers add cross-cutting behavior:
//
//	exec := shell.Serialize(shell.WithRateLimit(shell.NewADB(serial), rate.NewLimiter(5, 1)))
//	out, err := exec.Execute(ctx, "cat /proc/meminfo")
package shell
