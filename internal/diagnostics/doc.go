// Package diagnostics reports host resource usage and persists crash dumps
// for panics recovered inside workflows.
//
//   - Collector samples memory, CPU, load, disk and GPU information of the
//     host running the console. The API serves it at /api/v1/system.
//
//   - CrashDumpWriter receives panics recovered by the workflow runner and
//     writes one JSON dump per panic, keeping the newest MaxFiles dumps.
//
// Both are configured through the diagnostics section of the devcontent
// configuration file.
package diagnostics
