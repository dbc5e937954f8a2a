// Package shared holds helpers used across idpflow packages that belong to
// no single layer.
//
// The testutil subpackage provides log capture for slog-based code and
// writers for small CSV datasets shaped like the published inputs:
//
//	func TestSomething(t *testing.T) {
//	    logger, logs := testutil.NewTestLogger(t)
//	    data := testutil.NewDatasetFixtures(t, t.TempDir())
//	    path := data.WriteConflict("conflict.csv")
//	    ...
//	    testutil.AssertLogContains(t, logs, slog.LevelInfo, "Procedure completed")
//	}
//
// Nothing here may import business packages.
package shared
