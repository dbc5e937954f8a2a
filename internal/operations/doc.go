// Package operations runs the idpflow batch procedures.
//
// Each procedure (column projection, demographic cleaning, conflict
// normalization, IDP aggregation and the monthly merge) is a Procedure:
// it names its input and output files and transforms them in a single
// synchronous pass. Procedures do not depend on one another at runtime;
// one procedure's output file is simply another's input.
//
// Runner wraps a Procedure with input validation, a run ID, an
// OpenTelemetry span (with read, transform and write child spans), row
// metrics and structured logs:
//
//	env, err := operations.NewEnv(cfg, logger)
//	if err != nil {
//	    return err
//	}
//	runner := operations.NewRunner(logger, telemetry.Metrics, telemetry.Tracer)
//	run, err := runner.Run(ctx, operations.NewMonthlyMerger(env, operations.DefaultMergeOptions(cfg)))
//
// Structural failures (missing files or columns, unreadable dates) abort the
// run before anything is written. Rows dropped for missing or non-numeric
// values are counted, logged and optionally written to a rejection report.
package operations
