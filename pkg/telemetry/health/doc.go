// Package health provides liveness and readiness probes for the watch
// server.
//
// Liveness only reports that the process is up. Readiness runs the
// registered checks concurrently with a per-check timeout; the watch command
// registers one for the active filter and one for the most recent scan.
//
//	checker := health.New(2 * time.Second)
//	checker.Register("scan", health.LastErrorCheck(runner.LastError))
//	health.Mount(mux, checker, health.NewVersionInfo(version, commit, buildTime))
package health
