package operations

import (
	"context"

	"idpflow/pkg/contracts/domain"
)

// Procedure is one standalone batch transformation. Each reads its inputs
// whole, transforms them in memory and writes a single output file.
type Procedure interface {
	// ID returns the unique identifier for this procedure
	ID() domain.ProcedureID

	// Name returns the human-readable name for this procedure
	Name() string

	// Inputs returns the resolved paths of the files the procedure reads
	Inputs() []string

	// Output returns the resolved path of the file the procedure writes
	Output() string

	// Execute runs the transformation
	Execute(ctx context.Context) (*Result, error)
}

// Result summarizes a completed procedure
type Result struct {
	RowsRead    int
	RowsWritten int
	Rejections  []domain.Rejection
	OutputPath  string
}

// BaseProcedure provides the identity half of a Procedure
type BaseProcedure struct {
	id     domain.ProcedureID
	name   string
	inputs []string
	output string
}

// NewBaseProcedure creates a new base procedure
func NewBaseProcedure(id domain.ProcedureID, name string, inputs []string, output string) BaseProcedure {
	return BaseProcedure{
		id:     id,
		name:   name,
		inputs: inputs,
		output: output,
	}
}

// ID returns the procedure ID
func (b *BaseProcedure) ID() domain.ProcedureID {
	return b.id
}

// Name returns the procedure name
func (b *BaseProcedure) Name() string {
	return b.name
}

// Inputs returns the input paths
func (b *BaseProcedure) Inputs() []string {
	return b.inputs
}

// Output returns the output path
func (b *BaseProcedure) Output() string {
	return b.output
}
