package mode

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ScriptExt is the file extension of discoverable script modes.
const ScriptExt = ".pps"

// schemaLinePrefix marks the mandatory first-line settings-schema metadata.
const schemaLinePrefix = "# SCRIPT_SETTINGS:"

// scriptSpec is the JSON body of a script file: presentation metadata, the
// built-in kernel the script binds to and the settings it pins.
type scriptSpec struct {
	Description string         `json:"description"`
	Kernel      string         `json:"kernel"`
	Settings    map[string]any `json:"settings"`
}

// ScriptMode is a mode authored as an on-disk script: a schema metadata line
// followed by a declarative body binding one of the registered kernels with
// pinned settings. Validation happens entirely at load time; a ScriptMode
// that exists in the registry is safe to run.
type ScriptMode struct {
	name        string
	description string
	schema      SettingSchema
	kernel      Mode
	pinned      Settings
}

func (s *ScriptMode) Name() string          { return s.name }
func (s *ScriptMode) Description() string   { return s.description }
func (s *ScriptMode) Schema() SettingSchema { return s.schema }

// Run resolves the caller's settings against the script's own schema, layers
// the script's pinned values over keys the script does not expose, then
// fills whatever the kernel still declares and hands off to the kernel.
func (s *ScriptMode) Run(settings Settings, lines []string) (Result, error) {
	resolved := s.schema.Resolve(settings)
	for k, v := range s.pinned {
		if _, exposed := s.schema.Get(k); !exposed {
			resolved[k] = v
		}
	}
	return s.kernel.Run(s.kernel.Schema().Resolve(resolved), lines)
}

// LoadScript parses and validates one script file. The returned error is a
// SchemaParseError when the metadata line is missing or invalid and a
// ContractError when the body does not bind a usable kernel.
func LoadScript(path string, kernels *Registry) (*ScriptMode, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &SchemaParseError{Path: path, Err: err}
	}

	scanner := bufio.NewScanner(strings.NewReader(string(data)))
	if !scanner.Scan() {
		return nil, &SchemaParseError{Path: path, Err: fmt.Errorf("empty file")}
	}
	first := strings.TrimSpace(scanner.Text())
	if !strings.HasPrefix(first, schemaLinePrefix) {
		return nil, &SchemaParseError{Path: path, Err: fmt.Errorf("missing %s metadata line", strings.TrimSuffix(schemaLinePrefix, ":"))}
	}
	schema, err := ParseSchema([]byte(strings.TrimSpace(strings.TrimPrefix(first, schemaLinePrefix))))
	if err != nil {
		return nil, &SchemaParseError{Path: path, Err: err}
	}

	var body strings.Builder
	for scanner.Scan() {
		body.WriteString(scanner.Text())
		body.WriteString("\n")
	}

	var spec scriptSpec
	if err := json.Unmarshal([]byte(body.String()), &spec); err != nil {
		return nil, &ContractError{Path: path, Reason: fmt.Sprintf("script body is not valid JSON: %v", err)}
	}
	if spec.Kernel == "" {
		return nil, &ContractError{Path: path, Reason: "no kernel declared"}
	}
	kernel, err := kernels.Get(spec.Kernel)
	if err != nil {
		return nil, &ContractError{Path: path, Reason: fmt.Sprintf("unknown kernel %q", spec.Kernel)}
	}
	if _, isScript := kernel.(*ScriptMode); isScript {
		return nil, &ContractError{Path: path, Reason: fmt.Sprintf("kernel %q is itself a script", spec.Kernel)}
	}

	// Every key the script exposes or pins must be one the kernel declares,
	// so a typo surfaces at load time rather than silently doing nothing.
	kernelSchema := kernel.Schema()
	for _, def := range schema {
		if _, ok := kernelSchema.Get(def.Key); !ok {
			return nil, &ContractError{Path: path, Reason: fmt.Sprintf("setting %q is not declared by kernel %q", def.Key, spec.Kernel)}
		}
	}
	for k := range spec.Settings {
		if _, ok := kernelSchema.Get(k); !ok {
			return nil, &ContractError{Path: path, Reason: fmt.Sprintf("pinned setting %q is not declared by kernel %q", k, spec.Kernel)}
		}
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	description := spec.Description
	if description == "" {
		description = fmt.Sprintf("Script mode (%s kernel)", spec.Kernel)
	}

	return &ScriptMode{
		name:        name,
		description: description,
		schema:      schema,
		kernel:      kernel,
		pinned:      Settings(spec.Settings),
	}, nil
}
