// Package wsrun runs a command, or any Go task, once per workspace of a
// JavaScript monorepo.
//
// Workspaces are discovered from the root package.json "workspaces" field or
// pnpm-workspace.yaml, narrowed with name and path globs, and executed with
// one of four strategies:
//
//   - serial – one workspace at a time in discovery order
//   - serial ordered – one at a time, dependencies first
//   - parallel – bounded concurrency, no ordering
//   - parallel ordered – bounded concurrency, a workspace starts once all of
//     its dependencies succeeded
//
// A failure stops the run immediately unless ContinueOnError is set, in
// which case every failure is collected into an *orchestrator.AggregateError.
//
//	srv := wsrun.New()
//	cfg := wsrun.DefaultConfig()
//	cfg.Parallel = "4"
//	cfg.OrderByDeps = "true"
//	err := srv.Exec(ctx, cfg, "npm", []string{"run", "build"})
package wsrun
