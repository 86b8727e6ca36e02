// Package field implements form controls bound to a schema. Field is the
// capability set every control exposes; ControlField carries the shared
// lifecycle (settings, container, value, change listeners, required check)
// and concrete controls such as TextField compose it and call into it
// explicitly.
//
// Lifecycle: construct, Setup, Render, then any mix of SetValue, Value,
// Validate, Enable, Disable and Focus. Field operations never fail: bad
// settings are defaulted or ignored and validation failures are reported
// through the boolean result plus ValidationInfo.
package field
