// Package setup installs and removes the commitgate pre-commit hook.
//
// Command-layer adapters in cmd/commitgate handle flags and output
// formatting and delegate here for the file operations:
//
//	path, err := setup.PreCommitPath()
//	status := setup.CheckHookStatus(path)
//	result, err := setup.InstallHook(path, setup.InstallOptions{Chain: true})
//	removed, restored, err := setup.UninstallHook(path)
package setup
