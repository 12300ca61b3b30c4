package types

type Operation string

const (
	OperationPack       Operation = "pack"
	OperationSpec       Operation = "spec"
	OperationPush       Operation = "push"
	OperationClearCache Operation = "clear-cache"
	OperationRaw        Operation = "raw"
)

// InvocationRequest describes one call into the packaging executable. Only
// the fields relevant to Operation are read.
type InvocationRequest struct {
	Operation        Operation
	ProjectPath      string
	OutputDir        string
	AssemblyNameHint string
	VersionOverride  string
	WorkingDirectory string
	RawCommand       string
	RawArguments     string
	PackagePath      string
	Force            bool
}

type ProcessOutcome struct {
	ExitCode int32
}

func (o ProcessOutcome) Succeeded() bool {
	return o.ExitCode == 0
}
