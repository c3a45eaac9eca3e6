// Package logger wraps zap for the alarm clock binaries:
//   - a global sugared logger writing a console format to stderr,
//   - context helpers (ToContext/FromContext/WithName/WithKV/WithFields),
//   - a per-context minimum level, used to keep logs quiet while the
//     terminal clock is being redrawn,
//   - level parsing and leveled convenience functions (InfoKV, WarnKV, ...).
package logger
