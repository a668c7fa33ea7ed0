// Package execshell runs the external commands whose output lands in
// generated documentation. ShellExecutor layers structured logging and
// observer notifications over a CommandRunner, with OSCommandRunner as the
// os/exec backed default.
package execshell
