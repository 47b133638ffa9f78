package mode

import "fmt"

// SchemaParseError reports a script whose settings-schema metadata line is
// missing or not valid structured data. The script is excluded from the
// registry; the process continues.
type SchemaParseError struct {
	Path string
	Err  error
}

func (e *SchemaParseError) Error() string {
	return fmt.Sprintf("script %s: settings schema: %v", e.Path, e.Err)
}

func (e *SchemaParseError) Unwrap() error { return e.Err }

// ContractError reports a script that does not satisfy the mode contract
// (missing or invalid entry-point definition). The script is excluded from
// the registry; the process continues.
type ContractError struct {
	Path   string
	Reason string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("script %s: contract: %s", e.Path, e.Reason)
}

// ModeNotFoundError reports a processing run requesting a mode the registry
// does not hold. Fatal to the run.
type ModeNotFoundError struct {
	Name string
}

func (e *ModeNotFoundError) Error() string {
	return fmt.Sprintf("mode %q not found", e.Name)
}

// ModeExecutionError wraps any failure raised inside a mode's entry point,
// naming the offending mode. Fatal to the run but never to the process.
type ModeExecutionError struct {
	Mode string
	Err  error
}

func (e *ModeExecutionError) Error() string {
	return fmt.Sprintf("mode %q failed: %v", e.Mode, e.Err)
}

func (e *ModeExecutionError) Unwrap() error { return e.Err }
